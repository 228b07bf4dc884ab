// Package handle defines the backing-graph contract consumed by the snarl
// decomposition core (see the top-level [pkg/snarl] package), plus a
// concrete in-memory implementation suitable for tests, CLI tooling, and
// graphs loaded from JSON.
//
// # Overview
//
// A [Handle] is an oriented reference to one side of a node: a node ID plus
// a "reverse" bit. Graphs here are bidirected: an edge attaches to a side
// of each of its two endpoints, and walking "left" off a handle is the same
// connection as walking "right" off its flipped counterpart. This is the
// model variation-graph tooling uses to represent sequences that can be
// traversed in either orientation - a node's neighbors depend on which side
// of it you leave from, not just which node you're at.
//
// # Basic usage
//
// Build a graph with [NewAdjacencyGraph], add nodes with
// [AdjacencyGraph.AddNode], and edges with [AdjacencyGraph.AddEdge]:
//
//	g := handle.NewAdjacencyGraph()
//	g.AddNode(handle.Node{ID: 1})
//	g.AddNode(handle.Node{ID: 2})
//	g.AddEdge(g.GetHandle(1, false), g.GetHandle(2, false))
//
// Walk neighbors with [AdjacencyGraph.FollowEdges], which - like every
// enumerator in this module - takes a visitor returning bool and stops as
// soon as it returns false.
//
// # Edge canonicalization
//
// [AdjacencyGraph.EdgeHandle] resolves a directed edge to a single
// canonical [Edge] regardless of which of the two equivalent handle pairs
// names it, so code that collects edges into a set never double-counts a
// connection described from either side.
//
// # Sequence data
//
// GetSequence and GetLength are optional: this package's implementation
// stores sequences (returning the reverse complement for reverse handles),
// but the [Graph] interface only requires that unsupported implementations
// report an error rather than panic.
package handle
