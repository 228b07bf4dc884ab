package snarl

import (
	"fmt"

	"github.com/tgorski/snarltree/pkg/handle"
)

// Endpoint is an oriented attachment point on a node: a node ID plus a
// facing-reverse bit. Two endpoints are equal iff both fields match;
// endpoints order lexicographically on (NodeID, FacingReverse).
type Endpoint struct {
	NodeID        uint64
	FacingReverse bool
}

// Flip returns the endpoint on the opposite side of the same node.
func (e Endpoint) Flip() Endpoint {
	return Endpoint{NodeID: e.NodeID, FacingReverse: !e.FacingReverse}
}

// Less reports whether e sorts before other in the endpoint's canonical
// lexicographic order: (NodeID, FacingReverse).
func (e Endpoint) Less(other Endpoint) bool {
	if e.NodeID != other.NodeID {
		return e.NodeID < other.NodeID
	}
	return !e.FacingReverse && other.FacingReverse
}

// String renders the endpoint as "<id>+" or "<id>-".
func (e Endpoint) String() string {
	if e.FacingReverse {
		return fmt.Sprintf("%d-", e.NodeID)
	}
	return fmt.Sprintf("%d+", e.NodeID)
}

// ToHandle resolves the endpoint against a backing graph.
func (e Endpoint) ToHandle(g handle.Graph) handle.Handle {
	return g.GetHandle(e.NodeID, e.FacingReverse)
}

// Bound is the minimal boundary identity of a nested snarl as seen by a
// [Visit]: its start and end visits. It is deliberately lighter than a full
// [Snarl] record - a Visit only ever needs its inner snarl's boundary to
// resolve sides, never its classification or connectivity flags.
type Bound struct {
	Start, End Visit
}

// Visit references either a node traversal or a traversal of a nested
// snarl, plus a Backward bit meaning "traverse it in reverse."
//
// Exactly one of (NodeID > 0, Inner != nil) is meaningful: a node visit has
// NodeID set and Inner nil; a snarl visit has Inner set and NodeID zero.
// The zero Visit is not a valid reference to anything.
type Visit struct {
	NodeID   uint64
	Inner    *Bound
	Backward bool
}

// NodeVisit builds a Visit that traverses a node.
func NodeVisit(id uint64, backward bool) Visit {
	return Visit{NodeID: id, Backward: backward}
}

// SnarlVisit builds a Visit that traverses a nested snarl bounded by start
// and end, in the given direction.
func SnarlVisit(start, end Visit, backward bool) Visit {
	return Visit{Inner: &Bound{Start: start, End: end}, Backward: backward}
}

// HasSnarl reports whether the visit references a nested snarl rather than
// a node.
func (v Visit) HasSnarl() bool { return v.Inner != nil }

// Reverse returns a copy of v with Backward inverted. Reverse is
// involutive: Reverse(Reverse(v)) == v.
func Reverse(v Visit) Visit {
	v.Backward = !v.Backward
	return v
}

// Equal reports whether two visits reference the same thing in the same
// direction. Node visits compare NodeID and Backward; snarl visits also
// require their inner bounds to match.
func (v Visit) Equal(other Visit) bool {
	if v.NodeID != other.NodeID || v.Backward != other.Backward {
		return false
	}
	if v.HasSnarl() != other.HasSnarl() {
		return false
	}
	if !v.HasSnarl() {
		return true
	}
	return v.Inner.Start.Equal(other.Inner.Start) && v.Inner.End.Equal(other.Inner.End)
}

// Less reports whether v sorts before other in the visit's canonical
// lexicographic order: (NodeID, inner snarl if any, Backward).
func (v Visit) Less(other Visit) bool {
	if v.NodeID != other.NodeID {
		return v.NodeID < other.NodeID
	}
	if v.HasSnarl() != other.HasSnarl() {
		return !v.HasSnarl()
	}
	if v.HasSnarl() {
		if !v.Inner.Start.Equal(other.Inner.Start) {
			return v.Inner.Start.Less(other.Inner.Start)
		}
		if !v.Inner.End.Equal(other.Inner.End) {
			return v.Inner.End.Less(other.Inner.End)
		}
	}
	return !v.Backward && other.Backward
}

// String renders the visit as its node ID (or inner snarl boundary),
// followed by "fwd" or "rev".
func (v Visit) String() string {
	dir := "fwd"
	if v.Backward {
		dir = "rev"
	}
	if !v.HasSnarl() {
		return fmt.Sprintf("%d %s", v.NodeID, dir)
	}
	return fmt.Sprintf("(%s,%s) %s", v.Inner.Start, v.Inner.End, dir)
}

// ToLeftSide computes the endpoint at the left side of v: for a node, the
// endpoint (NodeID, Backward); for a snarl traversed forward, the left
// side of its start; for a snarl traversed backward, the right side of its
// end.
func ToLeftSide(v Visit) Endpoint {
	if !v.HasSnarl() {
		return Endpoint{NodeID: v.NodeID, FacingReverse: v.Backward}
	}
	if !v.Backward {
		return ToLeftSide(v.Inner.Start)
	}
	return ToRightSide(v.Inner.End)
}

// ToRightSide computes the endpoint at the right side of v, symmetric to
// [ToLeftSide]: for a node, (NodeID, !Backward); for a snarl traversed
// forward, the right side of its end; for a snarl traversed backward, the
// left side of its start.
func ToRightSide(v Visit) Endpoint {
	if !v.HasSnarl() {
		return Endpoint{NodeID: v.NodeID, FacingReverse: !v.Backward}
	}
	if !v.Backward {
		return ToRightSide(v.Inner.End)
	}
	return ToLeftSide(v.Inner.Start)
}

// OutHandle resolves the handle a visit exits through: for a node, the
// visit's own handle; for a forward snarl, the end as stored (it already
// faces out); for a backward snarl, the start flipped.
func OutHandle(g handle.Graph, v Visit) handle.Handle {
	if !v.HasSnarl() {
		return g.GetHandle(v.NodeID, v.Backward)
	}
	if v.Backward {
		return g.GetHandle(v.Inner.Start.NodeID, !v.Inner.Start.Backward)
	}
	return g.GetHandle(v.Inner.End.NodeID, v.Inner.End.Backward)
}

// InHandle resolves the handle a visit enters through: for a node, the
// visit's own handle; for a forward snarl, the start as stored (it already
// faces in); for a backward snarl, the end flipped.
func InHandle(g handle.Graph, v Visit) handle.Handle {
	if !v.HasSnarl() {
		return g.GetHandle(v.NodeID, v.Backward)
	}
	if v.Backward {
		return g.GetHandle(v.Inner.End.NodeID, !v.Inner.End.Backward)
	}
	return g.GetHandle(v.Inner.Start.NodeID, v.Inner.Start.Backward)
}

// ToEdge resolves the directed edge a traversal from v1 to v2 would cross,
// using the outgoing side of v1 and the incoming side of v2.
func ToEdge(g handle.Graph, v1, v2 Visit) handle.Edge {
	return g.EdgeHandle(OutHandle(g, v1), InHandle(g, v2))
}
