package finder

import (
	"slices"

	"github.com/tgorski/snarltree/pkg/handle"
)

// WholeGraphFinder is a minimal, demonstration Finder suitable for driving
// the manager/classification pipeline from the CLI without a full
// cactus-graph construction - the concrete graph-walking strategy a
// production finder would use for recursive decomposition is out of scope
// here (only the [Finder] protocol is specified). It wraps each weakly
// connected component of the backing graph in one flat, top-level snarl
// bounded by two of that component's dead-end handles, with no recursion
// into the interior.
//
// A component with no dead end (a pure cycle) produces no snarl at all -
// its chain opens and closes empty and is dropped, the same way any other
// Finder's empty chain is dropped.
type WholeGraphFinder struct {
	Graph *handle.AdjacencyGraph
}

// TraverseDecomposition implements [Finder].
func (f *WholeGraphFinder) TraverseDecomposition(beginChain, endChain, beginSnarl, endSnarl func(handle.Handle)) {
	for _, component := range componentsOf(f.Graph) {
		traverseComponent(f.Graph, component, beginChain, endChain, beginSnarl, endSnarl)
	}
}

// Roots implements [MultiRootFinder]: one sub-finder per weakly connected
// component, so [FindSnarlsParallel] can walk disjoint components
// concurrently.
func (f *WholeGraphFinder) Roots() []Finder {
	components := componentsOf(f.Graph)
	roots := make([]Finder, len(components))
	for i, component := range components {
		roots[i] = &componentFinder{graph: f.Graph, nodeIDs: component}
	}
	return roots
}

// componentFinder is one weakly connected component's slice of a
// [WholeGraphFinder]'s walk.
type componentFinder struct {
	graph   *handle.AdjacencyGraph
	nodeIDs []uint64
}

func (f *componentFinder) TraverseDecomposition(beginChain, endChain, beginSnarl, endSnarl func(handle.Handle)) {
	traverseComponent(f.graph, f.nodeIDs, beginChain, endChain, beginSnarl, endSnarl)
}

func traverseComponent(g *handle.AdjacencyGraph, nodeIDs []uint64, beginChain, endChain, beginSnarl, endSnarl func(handle.Handle)) {
	start, end, ok := tipsOf(g, nodeIDs)
	if !ok {
		beginChain(start)
		endChain(start)
		return
	}
	beginChain(start)
	beginSnarl(start)
	endSnarl(end)
	endChain(end)
}

// componentsOf partitions g's nodes into weakly connected components,
// following edges off either side regardless of orientation.
func componentsOf(g *handle.AdjacencyGraph) [][]uint64 {
	visited := make(map[uint64]bool)
	var components [][]uint64

	for _, id := range g.NodeIDs() {
		if visited[id] {
			continue
		}
		var component []uint64
		queue := []uint64{id}
		visited[id] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			component = append(component, cur)

			for _, goLeft := range [2]bool{false, true} {
				g.FollowEdges(g.GetHandle(cur, false), goLeft, func(next handle.Handle) bool {
					if !visited[next.ID] {
						visited[next.ID] = true
						queue = append(queue, next.ID)
					}
					return true
				})
			}
		}
		slices.Sort(component)
		components = append(components, component)
	}
	return components
}

// tipsOf finds a source handle (no left neighbors, forward orientation)
// and a sink handle (no right neighbors, forward orientation) within
// nodeIDs, preferring the smallest qualifying ID for each so the result is
// deterministic. ok is false if the component has no such pair - every
// node has both a predecessor and a successor, as in a pure cycle.
func tipsOf(g *handle.AdjacencyGraph, nodeIDs []uint64) (start, end handle.Handle, ok bool) {
	var haveStart, haveEnd bool
	for _, id := range nodeIDs {
		h := g.GetHandle(id, false)
		if !haveStart && isDeadEnd(g, h.Flip()) {
			start, haveStart = h, true
		}
		if !haveEnd && isDeadEnd(g, h) {
			end, haveEnd = h, true
		}
		if haveStart && haveEnd {
			break
		}
	}
	return start, end, haveStart && haveEnd
}
