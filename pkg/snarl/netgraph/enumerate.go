package netgraph

import "github.com/tgorski/snarltree/pkg/handle"

// EachHandle enumerates every node the net graph presents - a flood fill
// from its start and end over the backing graph that treats child
// chains/unary boundaries as single stops rather than descending into
// them. It stops early if visit returns false.
//
// This always walks the backing graph directly rather than going through
// FollowEdges, because FollowEdges may hide parts of the interior behind
// internal-connectivity flags that for_each purposes must still see.
func (ng *Graph) EachHandle(visit handle.Visitor) bool {
	var queue []handle.Handle
	queued := make(map[uint64]struct{})

	see := func(h handle.Handle) bool {
		id := ng.backing.GetID(h)
		if _, ok := queued[id]; !ok {
			queue = append(queue, h)
			queued[id] = struct{}{}
		}
		return true
	}

	see(ng.start)
	see(ng.end)

	for len(queue) > 0 {
		here := queue[0]
		queue = queue[1:]

		if _, ok := ng.unaryBoundaries[here.Flip()]; ok {
			here = here.Flip()
		} else if _, ok := ng.chainEndsByStart[here.Flip()]; ok {
			here = here.Flip()
		} else if _, ok := ng.chainEndRewrites[here.Flip()]; ok {
			here = here.Flip()
		}

		if _, isChainEnd := ng.chainEndRewrites[here]; !isChainEnd {
			forward := here
			if ng.backing.GetIsReverse(forward) {
				forward = forward.Flip()
			}
			if !visit(forward) {
				return false
			}
		} else {
			see(ng.chainEndRewrites[here])
		}

		rightFacesIn := (ng.start != ng.end && here != ng.end && here != ng.start.Flip()) || ng.start == ng.end
		if rightFacesIn && !ng.isChildRepresentative(here) {
			ng.backing.FollowEdges(here, false, see)
		}

		leftFacesIn := (ng.start != ng.end && here != ng.start && here != ng.end.Flip()) || ng.start == ng.end
		if leftFacesIn {
			ng.backing.FollowEdges(here, true, see)
		}

		if rewritten, ok := ng.chainEndRewrites[here]; ok {
			ng.backing.FollowEdges(rewritten, false, see)
		}
		if chainEnd, ok := ng.chainEndsByStart[here]; ok {
			ng.backing.FollowEdges(chainEnd, false, see)
		}
	}

	return true
}

// isChildRepresentative reports whether h is a handle this net graph
// treats as a meta-node boundary: a unary child, a chain start, or a
// chain's flipped end (a rewrite source).
func (ng *Graph) isChildRepresentative(h handle.Handle) bool {
	if _, ok := ng.unaryBoundaries[h]; ok {
		return true
	}
	if _, ok := ng.chainEndsByStart[h]; ok {
		return true
	}
	if _, ok := ng.chainEndRewrites[h]; ok {
		return true
	}
	return false
}

// IsChild reports whether h is a meta-node representative: the start
// handle of a child chain in either orientation, or the boundary of a
// unary child.
func (ng *Graph) IsChild(h handle.Handle) bool {
	if _, ok := ng.chainEndsByStart[h]; ok {
		return true
	}
	if _, ok := ng.chainEndsByStart[h.Flip()]; ok {
		return true
	}
	_, ok := ng.unaryBoundaries[h]
	return ok
}

// GetStart returns the net graph's outward-sealed start handle.
func (ng *Graph) GetStart() handle.Handle { return ng.start }

// GetEnd returns the net graph's outward-sealed end handle.
func (ng *Graph) GetEnd() handle.Handle { return ng.end }
