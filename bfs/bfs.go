// Package bfs provides breadth-first search over a conversion core.Graph,
// returning hop counts, the edge each unit was reached through, and visit order.
package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/rpunits/core"
	"github.com/katalvlaran/rpunits/rule"
)

// queueItem pairs a unit with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph *core.Graph
	opts  Options
	ctx   context.Context
	queue []queueItem
	res   *Result
	done  bool
}

// BFS runs breadth-first search on g starting from startID.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input,
// ErrOptionViolation for bad options, or any hook / context error.
func BFS(g *core.Graph, startID string, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasVertex(startID) {
		return nil, fmt.Errorf("%w: %q", ErrStartVertexNotFound, startID)
	}

	w := &walker{
		graph: g,
		opts:  o,
		ctx:   o.Ctx,
		res: &Result{
			Start: startID,
			Depth: make(map[string]int),
			Via:   make(map[string]*core.Edge),
		},
	}
	w.enqueue(startID, 0, nil)

	return w.res, w.loop()
}

// ShortestChain returns the fewest-hop conversion chain from → to as a
// rule.Chain. A direct relation therefore always beats a detour through a
// basis. Ties are broken by the sorted neighbor order of core.Graph, so the
// result is deterministic. from == to yields the empty (identity) chain.
//
// Errors: ErrGraphNil, ErrStartVertexNotFound, ErrNoPath.
func ShortestChain(g *core.Graph, from, to string, opts ...Option) (rule.Chain, error) {
	opts = append(opts, WithTarget(to))
	res, err := BFS(g, from, opts...)
	if err != nil {
		return nil, err
	}
	edges, err := res.PathTo(to)
	if err != nil {
		return nil, err
	}
	chain := make(rule.Chain, len(edges))
	for i, e := range edges {
		chain[i] = e.Step
	}

	return chain, nil
}

// Reachable returns every unit reachable from start in visit order,
// start first.
func Reachable(g *core.Graph, start string) ([]string, error) {
	res, err := BFS(g, start)
	if err != nil {
		return nil, err
	}

	return res.Order, nil
}

// enqueue records depth and incoming edge, then appends to the queue.
func (w *walker) enqueue(id string, d int, via *core.Edge) {
	w.res.Depth[id] = d
	if via != nil {
		w.res.Via[id] = via
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
	if w.opts.Target != "" && id == w.opts.Target {
		w.done = true
	}
}

// loop processes the queue until empty, target reached, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
		}
		if w.done {
			return nil
		}
		if err := w.enqueueNeighbors(item); err != nil {
			return err
		}
	}

	return nil
}

// enqueueNeighbors applies filtering and MaxDepth and enqueues each unseen
// neighbor.
func (w *walker) enqueueNeighbors(item queueItem) error {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	edges, err := w.graph.Neighbors(item.id)
	if err != nil {
		// vertex removed concurrently; treat as a dead end
		return nil
	}
	for _, e := range edges {
		if !w.opts.FilterEdge(e) {
			continue
		}
		if _, seen := w.res.Depth[e.To]; seen {
			continue
		}
		w.enqueue(e.To, next, e)
		if w.done {
			return nil
		}
	}

	return nil
}
