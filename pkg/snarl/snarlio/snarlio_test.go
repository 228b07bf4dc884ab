package snarlio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tgorski/snarltree/pkg/snarl"
	"github.com/tgorski/snarltree/pkg/snarl/manager"
)

// buildFixture mirrors pkg/snarl/manager's own fixture: snarl x (1..5) with
// child y (2..4), and a sibling root w (5..9) with a unary child z at node
// 7, so the round trip exercises parents, a regular child, and a unary
// child in one pass.
func buildFixture(t *testing.T) *manager.Manager {
	t.Helper()
	m := manager.New()
	x := m.AddSnarl(snarl.Snarl{Start: snarl.NodeVisit(1, false), End: snarl.NodeVisit(5, false)})
	m.AddSnarl(snarl.Snarl{
		Start:  snarl.NodeVisit(2, false),
		End:    snarl.NodeVisit(4, false),
		Parent: &snarl.Bound{Start: x.Start, End: x.End},
	})
	w := m.AddSnarl(snarl.Snarl{Start: snarl.NodeVisit(5, false), End: snarl.NodeVisit(9, false)})
	m.AddSnarl(snarl.Snarl{
		Start:  snarl.NodeVisit(7, false),
		End:    snarl.NodeVisit(7, true),
		Type:   snarl.KindUnary,
		Parent: &snarl.Bound{Start: w.Start, End: w.End},
	})
	require.NoError(t, m.Finish())
	return m
}

func TestWriteSnarlsEmitsEachSnarlExactlyOnce(t *testing.T) {
	m := buildFixture(t)

	var buf bytes.Buffer
	require.NoError(t, WriteSnarls(&buf, m))

	inputs, err := ReadSnarls(&buf)
	require.NoError(t, err)
	require.Len(t, inputs, m.NumSnarls())

	seen := make(map[snarl.Endpoint]bool)
	for _, in := range inputs {
		key := snarl.Endpoint{NodeID: in.Start.NodeID, FacingReverse: in.Start.Backward}
		require.False(t, seen[key], "snarl starting at %v written more than once", in.Start)
		seen[key] = true
	}
}

func TestWriteSnarlsPreservesParentBoundaryAndClassification(t *testing.T) {
	m := buildFixture(t)

	var buf bytes.Buffer
	require.NoError(t, WriteSnarls(&buf, m))

	inputs, err := ReadSnarls(&buf)
	require.NoError(t, err)

	fresh := manager.New()
	for _, in := range inputs {
		fresh.AddSnarl(in.ToSnarl())
	}
	require.NoError(t, fresh.Finish())

	require.Equal(t, m.NumSnarls(), fresh.NumSnarls())
	require.Len(t, fresh.TopLevelSnarls(), 2)

	var unaryChildren int
	fresh.ForEachSnarlPreorder(func(rec *manager.Record) {
		if rec.Type == snarl.KindUnary {
			unaryChildren++
		}
	})
	require.Equal(t, 1, unaryChildren)
}

func TestReadSnarlsSkipsBlankLines(t *testing.T) {
	inputs, err := ReadSnarls(bytes.NewReader([]byte("\n\n")))
	require.NoError(t, err)
	require.Empty(t, inputs)
}
