// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/AddPair/RemoveEdge/HasEdge/Edge/Edges/EdgeCount,
//       plus nextEdgeID().
// Determinism:
//   - Edges() returns edges sorted by numeric Edge.ID (insertion order).
//   - nextEdgeID() is monotonic and stable ("e" + decimal).
// Concurrency:
//   - Mutations under muEdgeAdj write lock.
//   - Read queries under muEdgeAdj read lock.

package core

import (
	"fmt"
	"sort"
	"strconv"
	"sync/atomic"

	"github.com/katalvlaran/rpunits/rule"
)

// edgeIDPrefix is the textual prefix for edge identifiers ("e1", "e2", ...).
const edgeIDPrefix = 'e'

// AddEdge creates a directed edge from→to carrying step.
//
// Steps:
//  1. Validate IDs, step, loops.
//  2. Ensure endpoints via AddVertex.
//  3. Lock muEdgeAdj, reject an existing from→to edge.
//  4. Generate eid atomically, store the edge, link adjacency.
//
// Errors: ErrEmptyVertexID, ErrNilStep, ErrLoopNotAllowed, ErrEdgeExists.
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string, step rule.Step) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if step == nil {
		return "", ErrNilStep
	}
	if from == to {
		return "", fmt.Errorf("%w: %q", ErrLoopNotAllowed, from)
	}

	if err := g.AddVertex(from); err != nil {
		return "", err
	}
	if err := g.AddVertex(to); err != nil {
		return "", err
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	return g.linkLocked(from, to, step)
}

// AddPair inserts both directions of r between a and b: a→b carries
// r.Forward and b→a carries r.Backward. Either both edges are added or
// neither is.
func (g *Graph) AddPair(a, b string, r rule.Rule) error {
	if a == "" || b == "" {
		return ErrEmptyVertexID
	}
	if r.Forward == nil || r.Backward == nil {
		return ErrNilStep
	}
	if a == b {
		return fmt.Errorf("%w: %q", ErrLoopNotAllowed, a)
	}
	if err := g.AddVertex(a); err != nil {
		return err
	}
	if err := g.AddVertex(b); err != nil {
		return err
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if _, ok := g.adjacency[a][b]; ok {
		return fmt.Errorf("%w: %s→%s", ErrEdgeExists, a, b)
	}
	if _, ok := g.adjacency[b][a]; ok {
		return fmt.Errorf("%w: %s→%s", ErrEdgeExists, b, a)
	}
	if _, err := g.linkLocked(a, b, r.Forward); err != nil {
		return err
	}
	_, err := g.linkLocked(b, a, r.Backward)

	return err
}

// linkLocked stores a new edge. Caller holds muEdgeAdj for writing.
func (g *Graph) linkLocked(from, to string, step rule.Step) (string, error) {
	if _, ok := g.adjacency[from][to]; ok {
		return "", fmt.Errorf("%w: %s→%s", ErrEdgeExists, from, to)
	}
	eid := nextEdgeID(g)
	g.edges[eid] = &Edge{ID: eid, From: from, To: to, Step: step}
	if g.adjacency[from] == nil {
		g.adjacency[from] = make(map[string]string)
	}
	g.adjacency[from][to] = eid

	return eid, nil
}

// RemoveEdge deletes one directed edge by ID.
// Complexity: O(1)
func (g *Graph) RemoveEdge(eid string) error {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	e, ok := g.edges[eid]
	if !ok {
		return fmt.Errorf("%w: %q", ErrEdgeNotFound, eid)
	}
	delete(g.edges, eid)
	delete(g.adjacency[e.From], e.To)

	return nil
}

// HasEdge reports whether a directed edge from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	_, ok := g.adjacency[from][to]

	return ok
}

// Edge returns the directed edge from→to.
// Errors: ErrEdgeNotFound when absent.
func (g *Graph) Edge(from, to string) (*Edge, error) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	eid, ok := g.adjacency[from][to]
	if !ok {
		return nil, fmt.Errorf("%w: %s→%s", ErrEdgeNotFound, from, to)
	}

	return g.edges[eid], nil
}

// Edges returns all edges in insertion order.
// Complexity: O(E log E)
func (g *Graph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	g.muEdgeAdj.RUnlock()
	sort.Slice(out, func(i, j int) bool { return edgeSeq(out[i].ID) < edgeSeq(out[j].ID) })

	return out
}

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// nextEdgeID returns "e"+N with N strictly increasing.
func nextEdgeID(g *Graph) string {
	n := atomic.AddUint64(&g.nextEdgeID, 1)
	var buf [21]byte
	b := append(buf[:0], edgeIDPrefix)
	b = strconv.AppendUint(b, n, 10)

	return string(b)
}

// edgeSeq extracts N from "eN"; malformed IDs sort first.
func edgeSeq(id string) uint64 {
	if len(id) < 2 {
		return 0
	}
	n, err := strconv.ParseUint(id[1:], 10, 64)
	if err != nil {
		return 0
	}

	return n
}
