package handle

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [AdjacencyGraph.AddNode] when the node
	// ID is zero. Node IDs must be positive integers.
	ErrInvalidNodeID = errors.New("node ID must be positive")

	// ErrDuplicateNodeID is returned by [AdjacencyGraph.AddNode] when a node
	// with the same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned when an operation names a node that does
	// not exist in the graph.
	ErrUnknownNode = errors.New("unknown node")
)

// Handle is an oriented reference to one side of a node.
//
// Handle is a plain value type: two handles with the same (ID, Reverse) are
// the same handle. The zero Handle (ID 0, forward) never refers to a real
// node, since node IDs are required to be positive.
type Handle struct {
	ID      uint64
	Reverse bool
}

// NewHandle builds a handle for the given node ID and orientation.
func NewHandle(id uint64, reverse bool) Handle { return Handle{ID: id, Reverse: reverse} }

// Flip returns the handle for the opposite orientation of the same node.
func (h Handle) Flip() Handle { return Handle{ID: h.ID, Reverse: !h.Reverse} }

// String renders the handle the way node orientations are conventionally
// displayed: "<id>+" for forward, "<id>-" for reverse.
func (h Handle) String() string {
	if h.Reverse {
		return fmt.Sprintf("%d-", h.ID)
	}
	return fmt.Sprintf("%d+", h.ID)
}

// Edge is a canonical, order-independent reference to an edge between two
// handles, as returned by [Graph.EdgeHandle].
//
// Two handle pairs that describe the same underlying connection - (u, v)
// and (v.Flip(), u.Flip()) - canonicalize to the same Edge.
type Edge struct {
	From Handle
	To   Handle
}

// String renders the edge as "<from>-><to>".
func (e Edge) String() string { return fmt.Sprintf("%s->%s", e.From, e.To) }

// Visitor is called once per neighbor during a [Graph.FollowEdges] walk. It
// returns false to stop the walk early; every caller in this module honors
// that signal rather than continuing regardless.
type Visitor func(next Handle) bool

// Graph is the read-only backing-graph contract the snarl decomposition
// core consumes. It exposes node existence, handle construction, id and
// orientation extraction, edge canonicalization, and a single
// neighbor-enumeration primitive.
//
// Sequence and length are optional: implementations that don't carry
// sequence data may return [ErrSequenceUnsupported] from GetSequence and 0
// from GetLength. The core never calls either except indirectly through a
// net graph, which always returns an error for both (see
// [pkg/snarl/netgraph]).
type Graph interface {
	// HasNode reports whether a node with the given ID exists.
	HasNode(id uint64) bool

	// GetHandle builds a handle for the given node ID and orientation. The
	// node need not exist; callers that require existence check HasNode
	// first.
	GetHandle(id uint64, reverse bool) Handle

	// GetID returns the node ID a handle refers to.
	GetID(h Handle) uint64

	// GetIsReverse reports whether a handle is in reverse orientation.
	GetIsReverse(h Handle) bool

	// Flip returns the handle for the opposite orientation of the same node.
	Flip(h Handle) Handle

	// FollowEdges calls visit once for each neighbor reachable by leaving h
	// out of its left side (goLeft) or right side (!goLeft). It stops early
	// if visit returns false, and returns false itself in that case so
	// callers can propagate early termination.
	FollowEdges(h Handle, goLeft bool, visit Visitor) bool

	// EdgeHandle canonicalizes the edge from the right side of from to the
	// left side of to, so that (u, v) and (v.Flip(), u.Flip()) produce an
	// identical [Edge].
	EdgeHandle(from, to Handle) Edge

	// GetNodeCount returns the number of nodes in the graph.
	GetNodeCount() int

	// MinNodeID returns the smallest node ID in the graph, or 0 if empty.
	MinNodeID() uint64

	// MaxNodeID returns the largest node ID in the graph, or 0 if empty.
	MaxNodeID() uint64

	// GetLength returns the length of the node's sequence, or an error if
	// the implementation does not carry sequence data.
	GetLength(h Handle) (int, error)

	// GetSequence returns the node's sequence (forward or reverse
	// complemented per h's orientation), or an error if the implementation
	// does not carry sequence data.
	GetSequence(h Handle) (string, error)
}

// ErrSequenceUnsupported is returned by implementations of Graph that carry
// no sequence data.
var ErrSequenceUnsupported = errors.New("sequence data not supported by this graph")

// Node is a vertex in an [AdjacencyGraph]: an ID plus an optional sequence.
//
// The zero value is not usable as a graph member - ID must be positive
// before calling AddNode.
type Node struct {
	ID       uint64
	Sequence string // optional; empty means "no sequence data"
}

// AdjacencyGraph is a concrete, in-memory bidirected [Graph] backed by
// adjacency maps keyed on node ID, in the same non-relocating style as a
// dense map-of-slices adjacency list. It is intended for tests, CLI
// tooling, and small graphs loaded from JSON - it is not tuned for very
// large inputs.
//
// AdjacencyGraph is not safe for concurrent use without external
// synchronization.
type AdjacencyGraph struct {
	nodes map[uint64]*Node
	// left[id] holds the neighbors reached by leaving the node's left side
	// (walking right from its reverse handle); right[id] holds those
	// reached by leaving its right side (walking right from its forward
	// handle). Each entry is the neighbor handle in the orientation that
	// rightward walk arrives in.
	left  map[uint64][]Handle
	right map[uint64][]Handle
}

// NewAdjacencyGraph creates an empty graph.
func NewAdjacencyGraph() *AdjacencyGraph {
	return &AdjacencyGraph{
		nodes: make(map[uint64]*Node),
		left:  make(map[uint64][]Handle),
		right: make(map[uint64][]Handle),
	}
}

// AddNode adds a node to the graph. Returns [ErrInvalidNodeID] if id is
// zero, or [ErrDuplicateNodeID] if a node with that ID already exists.
func (g *AdjacencyGraph) AddNode(n Node) error {
	if n.ID == 0 {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := n
	g.nodes[node.ID] = &node
	return nil
}

// AddEdge connects the right side of from to the left side of to (the
// conventional "from flows into to" orientation). Both endpoints must
// already exist via AddNode. The reciprocal connection - from to's flipped
// side back to from's flipped side - is implicit, since the graph is
// bidirected: walking off to against its orientation reaches from flipped.
//
// Returns [ErrUnknownNode] if either endpoint's node does not exist.
func (g *AdjacencyGraph) AddEdge(from, to Handle) error {
	if !g.HasNode(from.ID) {
		return fmt.Errorf("add edge: %w: %d", ErrUnknownNode, from.ID)
	}
	if !g.HasNode(to.ID) {
		return fmt.Errorf("add edge: %w: %d", ErrUnknownNode, to.ID)
	}

	// Record the forward direction: leaving "from" by its right (relative
	// to from.Reverse) side arrives at "to" from to's left (relative to
	// to.Reverse) side.
	g.appendSide(from.ID, from.Reverse, to)
	// Record the reciprocal: leaving "to" flipped by its right side arrives
	// back at "from" flipped.
	g.appendSide(to.ID, !to.Reverse, from.Flip())

	return nil
}

// appendSide appends neighbor to the adjacency list for the side of id that
// reverse selects: false selects the right side, true selects the left
// side (leaving a reverse handle's right is the same as leaving the
// forward handle's left).
func (g *AdjacencyGraph) appendSide(id uint64, reverse bool, neighbor Handle) {
	if reverse {
		g.left[id] = append(g.left[id], neighbor)
	} else {
		g.right[id] = append(g.right[id], neighbor)
	}
}

// HasNode reports whether a node with the given ID exists.
func (g *AdjacencyGraph) HasNode(id uint64) bool {
	_, ok := g.nodes[id]
	return ok
}

// GetHandle builds a handle for the given node ID and orientation.
func (g *AdjacencyGraph) GetHandle(id uint64, reverse bool) Handle {
	return Handle{ID: id, Reverse: reverse}
}

// GetID returns the node ID a handle refers to.
func (g *AdjacencyGraph) GetID(h Handle) uint64 { return h.ID }

// GetIsReverse reports whether a handle is in reverse orientation.
func (g *AdjacencyGraph) GetIsReverse(h Handle) bool { return h.Reverse }

// Flip returns the handle for the opposite orientation of the same node.
func (g *AdjacencyGraph) Flip(h Handle) Handle { return h.Flip() }

// FollowEdges calls visit once per neighbor off h's left (goLeft) or right
// (!goLeft) side, stopping early if visit returns false.
//
// Leaving h reverse off its "right" side is leaving the underlying node off
// its left side in forward orientation, so FollowEdges resolves the
// effective side as goLeft XOR h.Reverse. The adjacency lists record each
// neighbor as a rightward walk arrives at it, so on a leftward walk each
// neighbor is flipped, yielding the handles whose right side leads into h.
func (g *AdjacencyGraph) FollowEdges(h Handle, goLeft bool, visit Visitor) bool {
	effectiveLeft := goLeft != h.Reverse
	var neighbors []Handle
	if effectiveLeft {
		neighbors = g.left[h.ID]
	} else {
		neighbors = g.right[h.ID]
	}
	for _, n := range neighbors {
		next := n
		if goLeft {
			next = n.Flip()
		}
		if !visit(next) {
			return false
		}
	}
	return true
}

// EdgeHandle canonicalizes the edge leaving from's right side and arriving
// at to's left side, so that (u, v) and (v.Flip(), u.Flip()) produce an
// identical [Edge] regardless of which endpoint is used to name it.
func (g *AdjacencyGraph) EdgeHandle(from, to Handle) Edge {
	if canonicalBefore(from, to) {
		return Edge{From: from, To: to}
	}
	return Edge{From: to.Flip(), To: from.Flip()}
}

// canonicalBefore reports whether (from, to) is already in its canonical
// orientation: lexicographically least among {(from, to), (to.Flip(),
// from.Flip())}.
func canonicalBefore(from, to Handle) bool {
	alt := Edge{From: to.Flip(), To: from.Flip()}
	cur := Edge{From: from, To: to}
	return lessEdge(cur, alt) || cur == alt
}

func lessEdge(a, b Edge) bool {
	if a.From.ID != b.From.ID {
		return a.From.ID < b.From.ID
	}
	if a.From.Reverse != b.From.Reverse {
		return !a.From.Reverse
	}
	if a.To.ID != b.To.ID {
		return a.To.ID < b.To.ID
	}
	return !a.To.Reverse && b.To.Reverse
}

// GetNodeCount returns the number of nodes in the graph.
func (g *AdjacencyGraph) GetNodeCount() int { return len(g.nodes) }

// MinNodeID returns the smallest node ID in the graph, or 0 if empty.
func (g *AdjacencyGraph) MinNodeID() uint64 { return g.extremeID(false) }

// MaxNodeID returns the largest node ID in the graph, or 0 if empty.
func (g *AdjacencyGraph) MaxNodeID() uint64 { return g.extremeID(true) }

func (g *AdjacencyGraph) extremeID(max bool) uint64 {
	var result uint64
	first := true
	for id := range g.nodes {
		if first || (max && id > result) || (!max && id < result) {
			result = id
			first = false
		}
	}
	return result
}

// GetLength returns the length of the node's sequence. Returns
// [ErrUnknownNode] if the node does not exist.
func (g *AdjacencyGraph) GetLength(h Handle) (int, error) {
	n, ok := g.nodes[h.ID]
	if !ok {
		return 0, fmt.Errorf("get length: %w: %d", ErrUnknownNode, h.ID)
	}
	return len(n.Sequence), nil
}

// GetSequence returns the node's sequence, reverse-complemented if h is in
// reverse orientation. Returns [ErrUnknownNode] if the node does not exist.
func (g *AdjacencyGraph) GetSequence(h Handle) (string, error) {
	n, ok := g.nodes[h.ID]
	if !ok {
		return "", fmt.Errorf("get sequence: %w: %d", ErrUnknownNode, h.ID)
	}
	if !h.Reverse {
		return n.Sequence, nil
	}
	return reverseComplement(n.Sequence), nil
}

// NodeIDs returns every node ID in the graph, sorted ascending.
func (g *AdjacencyGraph) NodeIDs() []uint64 {
	ids := make([]uint64, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

var complementBase = map[byte]byte{
	'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C',
	'a': 't', 't': 'a', 'c': 'g', 'g': 'c',
	'N': 'N', 'n': 'n',
}

func reverseComplement(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		c := seq[len(seq)-1-i]
		if comp, ok := complementBase[c]; ok {
			out[i] = comp
		} else {
			out[i] = c
		}
	}
	return string(out)
}
