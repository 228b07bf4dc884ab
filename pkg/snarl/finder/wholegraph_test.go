package finder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tgorski/snarltree/pkg/handle"
	"github.com/tgorski/snarltree/pkg/snarl"
)

func TestWholeGraphFinderClassifiesSingleComponent(t *testing.T) {
	g := diamondGraph(t)

	m, err := FindSnarls(&WholeGraphFinder{Graph: g}, g)
	require.NoError(t, err)
	require.Equal(t, 1, m.NumSnarls())

	rec := m.TopLevelSnarls()[0]
	require.Equal(t, snarl.KindUltrabubble, rec.Type)
	require.Equal(t, uint64(1), rec.Start.NodeID)
	require.Equal(t, uint64(4), rec.End.NodeID)
}

func TestWholeGraphFinderDropsPureCycleComponent(t *testing.T) {
	g := handle.NewAdjacencyGraph()
	for _, id := range []uint64{1, 2, 3} {
		require.NoError(t, g.AddNode(handle.Node{ID: id}))
	}
	for _, e := range [][2]uint64{{1, 2}, {2, 3}, {3, 1}} {
		require.NoError(t, g.AddEdge(g.GetHandle(e[0], false), g.GetHandle(e[1], false)))
	}

	m, err := FindSnarls(&WholeGraphFinder{Graph: g}, g)
	require.NoError(t, err)
	require.Equal(t, 0, m.NumSnarls(), "a pure cycle has no dead end to bound a snarl")
}

func TestWholeGraphFinderRootsSplitByComponent(t *testing.T) {
	g := handle.NewAdjacencyGraph()
	for _, id := range []uint64{1, 2, 3, 4, 11, 12, 13, 14} {
		require.NoError(t, g.AddNode(handle.Node{ID: id}))
	}
	for _, e := range [][2]uint64{{1, 2}, {1, 3}, {2, 4}, {3, 4}, {11, 12}, {11, 13}, {12, 14}, {13, 14}} {
		require.NoError(t, g.AddEdge(g.GetHandle(e[0], false), g.GetHandle(e[1], false)))
	}

	f := &WholeGraphFinder{Graph: g}
	require.Len(t, f.Roots(), 2)

	m, err := FindSnarlsParallel(context.Background(), f, g)
	require.NoError(t, err)
	require.Equal(t, 2, m.NumSnarls())
	require.Len(t, m.TopLevelSnarls(), 2)
}
