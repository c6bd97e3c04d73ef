// Package core provides the thread-safe conversion graph that backs a unit
// registry.
//
// Each vertex is a registered unit symbol ("m", "bar", "F"). Each directed
// edge from→to carries a rule.Step converting a magnitude expressed in
// "from" into one expressed in "to". A relation between two units is stored
// as a pair of directed edges (AddPair), so the two directions can hold
// independently tabulated constants or distinct functions.
//
// Properties:
//
//   - No self-loops, no parallel edges (one edge per ordered pair).
//   - Collision-free atomic Edge.ID generation ("e1", "e2", …).
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency
//     (muEdgeAdj); lock order muVert -> muEdgeAdj.
//   - Deterministic iteration: Vertices() and NeighborIDs() are sorted,
//     Edges() follows insertion order.
//
// Core Methods:
//
//	// Vertex lifecycle
//	AddVertex(id string) error         // O(1)
//	HasVertex(id string) bool          // O(1)
//	RemoveVertex(id string) error      // O(V+deg(v)), drops incident edges
//
//	// Edge lifecycle
//	AddEdge(from, to string, step rule.Step) (edgeID string, err error) // O(1)
//	AddPair(a, b string, r rule.Rule) error                             // O(1)
//	RemoveEdge(edgeID string) error   // O(1)
//	HasEdge(from, to string) bool     // O(1)
//	Edge(from, to string) (*Edge, error)
//
//	// Query
//	Neighbors(id string) ([]*Edge, error)    // O(d·log d)
//	NeighborIDs(id string) ([]string, error) // O(d·log d)
//	Vertices() []string                      // O(V·log V)
//	Edges() []*Edge                          // O(E·log E)
//	VertexCount() int
//	EdgeCount() int
//
//	// Maintenance
//	Clone() *Graph
//	Clear()
//
// Example:
//
//	g := core.NewGraph()
//	_ = g.AddPair("bar", "Pa", rule.Pair(1e5, 1e-5))
//	e, _ := g.Edge("bar", "Pa")
//	fmt.Println(e.Step.Apply(5)) // 500000
package core
