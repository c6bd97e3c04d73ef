// Package bfs provides breadth-first search over a conversion core.Graph.
//
// What
//
//   - Explore units in non-decreasing hop count from a start unit, following
//     directed conversion edges.
//   - Returns a Result containing:
//   - Order: visit sequence
//   - Depth: map from unit → hops from start
//   - Via: map from unit → the edge it was first reached through
//   - ShortestChain(g, from, to) turns the fewest-hop path into a rule.Chain
//     ready to be applied to a magnitude.
//   - Reachable(g, start) lists a unit's whole conversion component.
//
// Determinism
//
//	core.Graph.Neighbors returns edges sorted by destination, and BFS enqueues
//	them in that order, so both the visit sequence and the chosen chain are
//	reproducible.
//
// Complexity (V = units, E = directed relations)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Usage
//
//	chain, err := bfs.ShortestChain(g, "psi", "torr")
//	if err != nil {
//	    // ErrGraphNil, ErrStartVertexNotFound, ErrNoPath, ctx errors
//	}
//	v := chain.Apply(5)
//
// Options
//
//   - WithContext(ctx):     cancellation.
//   - WithMaxDepth(d):      stop exploring beyond d hops (d>0).
//   - WithFilterEdge(fn):   skip edges for which fn(e)==false.
//   - WithTarget(id):       stop once id is reached.
//   - WithOnVisit(fn):      visit hook; returning an error aborts.
package bfs
