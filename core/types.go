// Package core defines the conversion Graph: vertices are unit symbols and
// directed edges carry the rule.Step that converts a magnitude from the
// edge's source unit into its destination unit.
//
// This file declares Edge, Graph, GraphOption, sentinel errors, and the
// NewGraph constructor.
//
// Errors:
//
//	ErrEmptyVertexID   - vertex ID is the empty string.
//	ErrVertexNotFound  - requested vertex does not exist.
//	ErrEdgeNotFound    - requested edge does not exist.
//	ErrEdgeExists      - a directed edge between the same endpoints already exists.
//	ErrLoopNotAllowed  - self-loop (a unit converting to itself).
//	ErrNilStep         - edge step is nil.
package core

import (
	"errors"
	"sync"

	"github.com/katalvlaran/rpunits/rule"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrEdgeExists indicates a second edge was attempted between the same ordered endpoints.
	ErrEdgeExists = errors.New("core: edge already exists")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrNilStep indicates an edge without a conversion step.
	ErrNilStep = errors.New("core: edge step is nil")
)

// Edge is one directed conversion between two units.
type Edge struct {
	// ID uniquely identifies this edge in the Graph ("e1", "e2", ...).
	ID string

	// From is the source unit symbol.
	From string

	// To is the destination unit symbol.
	To string

	// Step converts a magnitude in From into a magnitude in To.
	Step rule.Step
}

// GraphOption configures a Graph before first use.
type GraphOption func(g *Graph)

// WithCapacity pre-sizes the vertex catalog for n units.
func WithCapacity(n int) GraphOption {
	return func(g *Graph) {
		if n > 0 {
			g.vertices = make(map[string]struct{}, n)
			g.adjacency = make(map[string]map[string]string, n)
		}
	}
}

// Graph is a directed conversion graph without loops or parallel edges.
//
// muVert protects vertices; muEdgeAdj protects edges and adjacency.
// Lock order is always muVert -> muEdgeAdj.
// nextEdgeID is an atomic counter for unique Edge.ID generation.
type Graph struct {
	muVert    sync.RWMutex // guards vertices
	muEdgeAdj sync.RWMutex // guards edges and adjacency

	nextEdgeID uint64              // atomic edge ID generator
	vertices   map[string]struct{} // unit symbol set
	edges      map[string]*Edge    // edge ID → Edge

	// adjacency[from][to] = Edge.ID
	adjacency map[string]map[string]string
}

// NewGraph creates an empty conversion Graph.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices:  make(map[string]struct{}),
		edges:     make(map[string]*Edge),
		adjacency: make(map[string]map[string]string),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
