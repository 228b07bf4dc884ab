package manager

import (
	"github.com/tgorski/snarltree/pkg/handle"
	"github.com/tgorski/snarltree/pkg/snarl"
)

// ShallowContents returns the node IDs and edges inside rec's boundary, not
// descending into any child snarl - a child's interior is skipped over by
// jumping straight from one of its boundary nodes to the other. Matches
// SnarlManager::shallow_contents.
func (m *Manager) ShallowContents(rec *Record, backing handle.Graph, includeBoundaryNodes bool) (map[uint64]struct{}, map[handle.Edge]struct{}) {
	return m.walkContents(rec, backing, includeBoundaryNodes, true)
}

// DeepContents is the counterpart of ShallowContents that descends into
// every child snarl's interior rather than skipping over it. Matches
// SnarlManager::deep_contents.
func (m *Manager) DeepContents(rec *Record, backing handle.Graph, includeBoundaryNodes bool) (map[uint64]struct{}, map[handle.Edge]struct{}) {
	return m.walkContents(rec, backing, includeBoundaryNodes, false)
}

func (m *Manager) walkContents(rec *Record, backing handle.Graph, includeBoundaryNodes, shallow bool) (map[uint64]struct{}, map[handle.Edge]struct{}) {
	nodes := make(map[uint64]struct{})
	edges := make(map[handle.Edge]struct{})
	alreadyStacked := make(map[uint64]struct{})

	startNode := backing.GetHandle(rec.Start.NodeID, false)
	endNode := backing.GetHandle(rec.End.NodeID, false)
	alreadyStacked[backing.GetID(startNode)] = struct{}{}
	alreadyStacked[backing.GetID(endNode)] = struct{}{}
	if includeBoundaryNodes {
		nodes[backing.GetID(startNode)] = struct{}{}
		nodes[backing.GetID(endNode)] = struct{}{}
	}

	var stack []handle.Handle
	push := func(h handle.Handle) {
		id := backing.GetID(h)
		if _, ok := alreadyStacked[id]; !ok {
			stack = append(stack, h)
			alreadyStacked[id] = struct{}{}
		}
	}

	backing.FollowEdges(startNode, rec.Start.Backward, func(next handle.Handle) bool {
		push(next)
		if rec.Start.Backward {
			edges[backing.EdgeHandle(next, startNode)] = struct{}{}
		} else {
			edges[backing.EdgeHandle(startNode, next)] = struct{}{}
		}
		return true
	})
	backing.FollowEdges(endNode, !rec.End.Backward, func(next handle.Handle) bool {
		push(next)
		if rec.End.Backward {
			edges[backing.EdgeHandle(endNode, next)] = struct{}{}
		} else {
			edges[backing.EdgeHandle(next, endNode)] = struct{}{}
		}
		return true
	})

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes[backing.GetID(node)] = struct{}{}

		var forwardChild, backwardChild *Record
		if shallow {
			forwardChild = m.IntoWhichSnarl(backing.GetID(node), false)
			backwardChild = m.IntoWhichSnarl(backing.GetID(node), true)
			if forwardChild != nil {
				otherID := forwardChild.Start.NodeID
				if forwardChild.Start.NodeID == backing.GetID(node) {
					otherID = forwardChild.End.NodeID
				}
				push(backing.GetHandle(otherID, false))
			}
			if backwardChild != nil {
				otherID := backwardChild.End.NodeID
				if backwardChild.End.NodeID == backing.GetID(node) {
					otherID = backwardChild.Start.NodeID
				}
				push(backing.GetHandle(otherID, false))
			}
		}

		backing.FollowEdges(node, false, func(next handle.Handle) bool {
			edge := backing.EdgeHandle(node, next)
			if !shallow || (backing.GetIsReverse(node) && backwardChild == nil) || (!backing.GetIsReverse(node) && forwardChild == nil) {
				edges[edge] = struct{}{}
				push(next)
			}
			return true
		})
		backing.FollowEdges(node, true, func(prev handle.Handle) bool {
			edge := backing.EdgeHandle(prev, node)
			if !shallow || (backing.GetIsReverse(node) && forwardChild == nil) || (!backing.GetIsReverse(node) && backwardChild == nil) {
				edges[edge] = struct{}{}
				push(prev)
			}
			return true
		})
	}

	return nodes, edges
}

// VisitsRight enumerates the visits reachable by walking right off visit,
// resolving any neighbor that is a child snarl's boundary into a visit of
// that snarl rather than the raw node, and skipping inSnarl's own boundary
// so a caller walking its own interior never walks back out of it. Matches
// SnarlManager::visits_right.
func (m *Manager) VisitsRight(visit snarl.Visit, backing handle.Graph, inSnarl *Record) []snarl.Visit {
	h := snarl.OutHandle(backing, visit)
	id := backing.GetID(h)
	facing := !backing.GetIsReverse(h)

	if visit.HasSnarl() {
		if child := m.IntoWhichSnarl(id, !facing); child != nil && child != inSnarl && m.IntoWhichSnarl(id, facing) != inSnarl {
			return []snarl.Visit{snarl.SnarlVisit(child.Start, child.End, id == child.End.NodeID)}
		}
	}

	var out []snarl.Visit
	backing.FollowEdges(h, false, func(next handle.Handle) bool {
		nextID := backing.GetID(next)
		attachedFacing := backing.GetIsReverse(next)

		child := m.IntoWhichSnarl(nextID, attachedFacing)
		if child != nil && child != inSnarl && m.IntoWhichSnarl(nextID, !attachedFacing) != inSnarl {
			out = append(out, snarl.SnarlVisit(child.Start, child.End, nextID == child.End.NodeID))
		} else {
			out = append(out, snarl.NodeVisit(nextID, attachedFacing))
		}
		return true
	})
	return out
}

// VisitsLeft is the mirror of VisitsRight: everything reachable by walking
// left off visit. Matches SnarlManager::visits_left.
func (m *Manager) VisitsLeft(visit snarl.Visit, backing handle.Graph, inSnarl *Record) []snarl.Visit {
	right := m.VisitsRight(snarl.Reverse(visit), backing, inSnarl)
	out := make([]snarl.Visit, len(right))
	for i, v := range right {
		out[i] = snarl.Reverse(v)
	}
	return out
}
