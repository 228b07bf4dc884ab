package netgraph

import (
	"context"

	"github.com/tgorski/snarltree/pkg/handle"
	"github.com/tgorski/snarltree/pkg/observability"
	"github.com/tgorski/snarltree/pkg/snarl"
)

// ConnectedSnarl is the capability the net graph needs from a child snarl
// reference beyond [snarl.Snarlish]: its three connectivity flags. The
// manager's records, and bare *snarl.Snarl values in tests, both satisfy
// it via [snarl.Snarl.Connectivity].
type ConnectedSnarl interface {
	snarl.Snarlish
	Connectivity() (startSelfReachable, endSelfReachable, startEndReachable bool)
}

// Connectivity is the (turn-left, turn-right, pass-through) triple a
// meta-node in the net graph presents to its neighbor-walk logic: whether
// a walk entering on the left can turn around and leave on the left again,
// whether a walk entering on the right can turn around and leave on the
// right again, and whether a walk can pass straight through.
type Connectivity struct {
	TurnLeft    bool
	TurnRight   bool
	PassThrough bool
}

// Graph is a virtual view of one snarl's interior: a flat, neighbor-walkable
// graph where each child chain or unary child snarl appears as a single
// meta-node, with edges honoring each meta-node's [Connectivity].
//
// Graph implements [handle.Graph], so any algorithm written against the
// backing graph's interface works unmodified against a net graph - at the
// cost of GetLength and GetSequence, which the structural view cannot
// support (see [Graph.GetLength]).
//
// A Graph borrows from the backing graph it was built over; it is valid
// only as long as that graph (and the manager, if its records informed
// construction) outlives it.
type Graph struct {
	backing handle.Graph
	start   handle.Handle
	end     handle.Handle
	useInternalConnectivity bool

	// chainEndsByStart maps a child chain's inward-start handle to its
	// inward-end handle - the meta-node identity for that chain.
	chainEndsByStart map[handle.Handle]handle.Handle
	// chainEndRewrites maps the flipped inward-end handle to the flipped
	// inward-start handle, so a walk that arrives at a chain's far end
	// is renamed to arrive at its near-end representative instead.
	chainEndRewrites map[handle.Handle]handle.Handle
	unaryBoundaries  map[handle.Handle]struct{}
	// connectivity is keyed by node ID (orientation-independent) of each
	// meta-node's representative handle.
	connectivity map[uint64]Connectivity
}

// New constructs a net graph over the interior of a snarl bounded by start
// and end (both node visits), with no children yet added. Use
// [Graph.AddUnaryChild] and [Graph.AddChainChild] to populate it, or build
// it via [NewFromChildren] in one call.
func New(start, end snarl.Visit, backing handle.Graph, useInternalConnectivity bool) *Graph {
	return &Graph{
		backing:                 backing,
		start:                   backing.GetHandle(start.NodeID, start.Backward),
		end:                     backing.GetHandle(end.NodeID, end.Backward),
		useInternalConnectivity: useInternalConnectivity,
		chainEndsByStart:        make(map[handle.Handle]handle.Handle),
		chainEndRewrites:        make(map[handle.Handle]handle.Handle),
		unaryBoundaries:         make(map[handle.Handle]struct{}),
		connectivity:            make(map[uint64]Connectivity),
	}
}

// NewFromChildren constructs a net graph and immediately adds every given
// child chain and unary child snarl.
func NewFromChildren[S ConnectedSnarl](
	start, end snarl.Visit,
	childChains []*snarl.Chain[S],
	childUnarySnarls []S,
	backing handle.Graph,
	useInternalConnectivity bool,
) *Graph {
	ng := New(start, end, backing, useInternalConnectivity)
	for _, unary := range childUnarySnarls {
		AddUnaryChild(ng, unary)
	}
	for _, chain := range childChains {
		AddChainChild(ng, chain)
	}
	observability.NetGraph().OnBuild(context.Background(), ng.start, ng.end, len(childUnarySnarls)+len(childChains), useInternalConnectivity)
	return ng
}

// AddUnaryChild registers a unary child snarl as a meta-node represented by
// its own inward boundary handle.
//
// Methods cannot carry their own type parameters in Go, so this and
// [AddChainChild] are free functions taking the graph explicitly, rather
// than methods on [Graph].
func AddUnaryChild[S ConnectedSnarl](ng *Graph, unary S) {
	start, _ := unary.Bounds()
	bound := ng.backing.GetHandle(start.NodeID, start.Backward)
	ng.unaryBoundaries[bound] = struct{}{}

	if ng.useInternalConnectivity {
		ss, es, se := unary.Connectivity()
		ng.connectivity[start.NodeID] = Connectivity{TurnLeft: ss, TurnRight: es, PassThrough: se}
	} else {
		// The flat view gives a unary child no connectivity: a walk can
		// neither turn around in it nor pass through it.
		ng.connectivity[start.NodeID] = Connectivity{}
	}
}

// AddChainChild registers a child chain as a meta-node represented by the
// backing-graph handle at the inward side of its first snarl's start.
func AddChainChild[S ConnectedSnarl](ng *Graph, chain *snarl.Chain[S]) {
	startVisit := chain.StartVisit()
	endVisit := chain.EndVisit()
	chainStart := ng.backing.GetHandle(startVisit.NodeID, startVisit.Backward)
	chainEnd := ng.backing.GetHandle(endVisit.NodeID, endVisit.Backward)

	ng.chainEndsByStart[chainStart] = chainEnd
	ng.chainEndRewrites[chainEnd.Flip()] = chainStart.Flip()

	if !ng.useInternalConnectivity {
		ng.connectivity[startVisit.NodeID] = Connectivity{PassThrough: true}
		return
	}

	turnLeft := false
	passThrough := true
	for _, e := range chain.Entries {
		ss, es, se := e.Ref.Connectivity()
		if e.Backward {
			ss, es = es, ss
		}
		if ss {
			turnLeft = true
		}
		if !se {
			passThrough = false
			break
		}
	}

	turnRight := false
	for i := len(chain.Entries) - 1; i >= 0; i-- {
		e := chain.Entries[i]
		ss, es, se := e.Ref.Connectivity()
		if e.Backward {
			ss, es = es, ss
		}
		if es {
			turnRight = true
			break
		}
		if !se {
			break
		}
	}

	ng.connectivity[startVisit.NodeID] = Connectivity{TurnLeft: turnLeft, TurnRight: turnRight, PassThrough: passThrough}
}

func (ng *Graph) rewrite(h handle.Handle) handle.Handle {
	if real, ok := ng.chainEndRewrites[h]; ok {
		return real
	}
	if real, ok := ng.chainEndRewrites[h.Flip()]; ok {
		return real.Flip()
	}
	return h
}

// FollowEdges implements the net graph's neighbor walk: see the package
// doc for how meta-node connectivity shapes it.
func (ng *Graph) FollowEdges(h handle.Handle, goLeft bool, visit handle.Visitor) bool {
	seen := make(map[handle.Handle]struct{})
	handleEdge := func(other handle.Handle) bool {
		real := ng.rewrite(other)
		if _, ok := seen[real]; ok {
			return true
		}
		seen[real] = struct{}{}
		return visit(real)
	}
	flipAndHandleEdge := func(other handle.Handle) bool {
		real := ng.rewrite(other).Flip()
		if _, ok := seen[real]; ok {
			return true
		}
		seen[real] = struct{}{}
		return visit(real)
	}

	if ng.start != ng.end &&
		((h == ng.end && !goLeft) || (h == ng.end.Flip() && goLeft) ||
			(h == ng.start.Flip() && !goLeft) || (h == ng.start && goLeft)) {
		// Outside the boundary this net graph represents: seal it.
		return true
	}

	if _, forward := ng.chainEndsByStart[h]; forward {
		return ng.followChainForward(h, goLeft, handleEdge, flipAndHandleEdge)
	}
	if _, reverse := ng.chainEndsByStart[h.Flip()]; reverse {
		return ng.followChainReverse(h, goLeft, handleEdge, flipAndHandleEdge)
	}

	if _, into := ng.unaryBoundaries[h]; into {
		return ng.followUnaryInward(h, goLeft, handleEdge, flipAndHandleEdge)
	}
	if _, outOf := ng.unaryBoundaries[h.Flip()]; outOf {
		return ng.followUnaryOutward(h, goLeft, handleEdge, flipAndHandleEdge)
	}

	return ng.backing.FollowEdges(h, goLeft, handleEdge)
}

func (ng *Graph) followChainForward(h handle.Handle, goLeft bool, handleEdge, flipAndHandleEdge handle.Visitor) bool {
	conn := ng.connectivity[ng.backing.GetID(h)]
	chainEnd := ng.chainEndsByStart[h]
	if goLeft {
		if conn.TurnRight {
			if !ng.backing.FollowEdges(chainEnd, false, flipAndHandleEdge) {
				return false
			}
		}
		if conn.PassThrough {
			if !ng.backing.FollowEdges(h, true, handleEdge) {
				return false
			}
		}
		return true
	}
	if conn.TurnLeft {
		if !ng.backing.FollowEdges(h, true, flipAndHandleEdge) {
			return false
		}
	}
	if conn.PassThrough {
		if !ng.backing.FollowEdges(chainEnd, false, handleEdge) {
			return false
		}
	}
	return true
}

func (ng *Graph) followChainReverse(h handle.Handle, goLeft bool, handleEdge, flipAndHandleEdge handle.Visitor) bool {
	chainStart := h.Flip()
	conn := ng.connectivity[ng.backing.GetID(chainStart)]
	chainEnd := ng.chainEndsByStart[chainStart]
	if goLeft {
		if conn.TurnLeft {
			if !ng.backing.FollowEdges(h, false, flipAndHandleEdge) {
				return false
			}
		}
		if conn.PassThrough {
			if !ng.backing.FollowEdges(chainEnd, false, flipAndHandleEdge) {
				return false
			}
		}
		return true
	}
	if conn.TurnRight {
		if !ng.backing.FollowEdges(chainEnd, false, handleEdge) {
			return false
		}
	}
	if conn.PassThrough {
		if !ng.backing.FollowEdges(h, false, handleEdge) {
			return false
		}
	}
	return true
}

func (ng *Graph) followUnaryInward(h handle.Handle, goLeft bool, handleEdge, flipAndHandleEdge handle.Visitor) bool {
	conn := ng.connectivity[ng.backing.GetID(h)]
	if goLeft {
		if !ng.useInternalConnectivity {
			return ng.backing.FollowEdges(h, true, handleEdge)
		}
		return true
	}
	if conn.TurnLeft || conn.TurnRight || conn.PassThrough {
		return ng.backing.FollowEdges(h, true, flipAndHandleEdge)
	}
	return true
}

func (ng *Graph) followUnaryOutward(h handle.Handle, goLeft bool, handleEdge, flipAndHandleEdge handle.Visitor) bool {
	conn := ng.connectivity[ng.backing.GetID(h)]
	if goLeft {
		if conn.TurnLeft || conn.TurnRight || conn.PassThrough {
			return ng.backing.FollowEdges(h, false, flipAndHandleEdge)
		}
		return true
	}
	if !ng.useInternalConnectivity {
		return ng.backing.FollowEdges(h, false, handleEdge)
	}
	return true
}
