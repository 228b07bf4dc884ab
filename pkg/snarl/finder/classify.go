package finder

import (
	"github.com/tgorski/snarltree/pkg/handle"
	"github.com/tgorski/snarltree/pkg/snarl"
	"github.com/tgorski/snarltree/pkg/snarl/manager"
	"github.com/tgorski/snarltree/pkg/snarl/netgraph"
)

// classify fills in s's Type and connectivity flags from its already
// classified children, following HandleGraphSnarlFinder's classification
// cascade: unary overrides everything, then start-end reachability, then
// self-reachability, then whether every child is an ultrabubble and the
// flat net graph is tip-free and acyclic.
func classify(s *snarl.Snarl, childChains []*snarl.Chain[*manager.Record], childUnary []*manager.Record, backing handle.Graph) {
	connected := netgraph.NewFromChildren(s.Start, s.End, childChains, childUnary, backing, true)
	s.StartSelfReachable, s.EndSelfReachable, s.StartEndReachable = walkConnectivity(connected)

	flat := netgraph.NewFromChildren(s.Start, s.End, childChains, childUnary, backing, false)
	tips := countTips(flat)
	s.DirectedAcyclicNetGraph = isDirectedAcyclic(flat)

	switch {
	case s.IsUnary():
		s.Type = snarl.KindUnary
	case !s.StartEndReachable:
		s.Type = snarl.KindUnclassified
	case s.StartSelfReachable || s.EndSelfReachable:
		s.Type = snarl.KindUnclassified
	case !allUltrabubbleChildren(childChains, childUnary):
		s.Type = snarl.KindUnclassified
	case tips > 2:
		s.Type = snarl.KindUnclassified
	case !s.DirectedAcyclicNetGraph:
		s.Type = snarl.KindUnclassified
	default:
		s.Type = snarl.KindUltrabubble
	}
}

func allUltrabubbleChildren(chains []*snarl.Chain[*manager.Record], unary []*manager.Record) bool {
	for _, u := range unary {
		if u.Type != snarl.KindUltrabubble {
			return false
		}
	}
	for _, chain := range chains {
		for _, e := range chain.Entries {
			if e.Ref.Type != snarl.KindUltrabubble {
				return false
			}
		}
	}
	return true
}

// walkConnectivity runs the two directed walk searches
// HandleGraphSnarlFinder uses to test connectivity over ng (built with
// internal connectivity on): one from the start handle looking for both a
// start-start turnaround and a start-end through connection, one from the
// end handle (flipped inward) looking for an end-end turnaround.
func walkConnectivity(ng *netgraph.Graph) (startSelfReachable, endSelfReachable, startEndReachable bool) {
	start := ng.GetStart()
	end := ng.GetEnd()

	queue := []handle.Handle{start}
	queued := map[handle.Handle]bool{start: true}
	for len(queue) > 0 {
		here := queue[0]
		queue = queue[1:]

		if here == end {
			startEndReachable = true
		}
		if here == ng.Flip(start) {
			startSelfReachable = true
		}
		if startEndReachable && startSelfReachable {
			break
		}

		ng.FollowEdges(here, false, func(next handle.Handle) bool {
			if !queued[next] {
				queued[next] = true
				queue = append(queue, next)
			}
			return true
		})
	}

	endInward := ng.Flip(end)
	queue = []handle.Handle{endInward}
	queued = map[handle.Handle]bool{endInward: true}
	for len(queue) > 0 {
		here := queue[0]
		queue = queue[1:]

		if here == end {
			endSelfReachable = true
			break
		}

		ng.FollowEdges(here, false, func(next handle.Handle) bool {
			if !queued[next] {
				queued[next] = true
				queue = append(queue, next)
			}
			return true
		})
	}
	return
}

// countTips counts the handle orientations in ng's flat view that are dead
// ends - no edges off their right side. A snarl's two boundary handles are
// always tips; classify disqualifies a snarl from being an ultrabubble once
// any other tip shows up.
func countTips(ng *netgraph.Graph) int {
	tips := 0
	ng.EachHandle(func(h handle.Handle) bool {
		if isDeadEnd(ng, h) {
			tips++
		}
		if isDeadEnd(ng, ng.Flip(h)) {
			tips++
		}
		return true
	})
	return tips
}

func isDeadEnd(g handle.Graph, h handle.Handle) bool {
	empty := true
	g.FollowEdges(h, false, func(handle.Handle) bool {
		empty = false
		return false
	})
	return empty
}

// isDirectedAcyclic reports whether ng has no directed cycle along
// rightward walks. It colors each oriented handle white (unvisited), gray
// (on the current DFS stack), or black (fully explored); finding an edge
// into a gray handle means a directed cycle exists. Coloring is keyed on
// oriented handles rather than plain node IDs, since a bidirected node can
// sit on a directed cycle in one orientation and not the other.
func isDirectedAcyclic(ng *netgraph.Graph) bool {
	const (
		white = iota
		gray
		black
	)
	color := make(map[handle.Handle]int)
	acyclic := true

	var dfs func(h handle.Handle)
	dfs = func(h handle.Handle) {
		color[h] = gray
		ng.FollowEdges(h, false, func(next handle.Handle) bool {
			switch color[next] {
			case white:
				dfs(next)
			case gray:
				acyclic = false
			}
			return acyclic
		})
		color[h] = black
	}

	ng.EachHandle(func(h handle.Handle) bool {
		for _, candidate := range [2]handle.Handle{h, ng.Flip(h)} {
			if color[candidate] == white {
				dfs(candidate)
			}
		}
		return acyclic
	})
	return acyclic
}
