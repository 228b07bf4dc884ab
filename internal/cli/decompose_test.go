package cli

import (
	"testing"

	"github.com/tgorski/snarltree/pkg/handle"
)

func diamondGraph(t *testing.T) *handle.AdjacencyGraph {
	t.Helper()
	g := handle.NewAdjacencyGraph()
	for _, id := range []uint64{1, 2, 3, 4} {
		if err := g.AddNode(handle.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%d) = %v", id, err)
		}
	}
	for _, e := range [][2]uint64{{1, 2}, {1, 3}, {2, 4}, {3, 4}} {
		if err := g.AddEdge(g.GetHandle(e[0], false), g.GetHandle(e[1], false)); err != nil {
			t.Fatalf("AddEdge(%d,%d) = %v", e[0], e[1], err)
		}
	}
	return g
}

func TestDecompose(t *testing.T) {
	g := diamondGraph(t)

	m, err := decompose(g)
	if err != nil {
		t.Fatalf("decompose() = %v", err)
	}
	if m.NumSnarls() != 1 {
		t.Errorf("NumSnarls() = %d, want 1", m.NumSnarls())
	}
}

func TestBuildReportTalliesClassification(t *testing.T) {
	g := diamondGraph(t)
	m, err := decompose(g)
	if err != nil {
		t.Fatalf("decompose() = %v", err)
	}

	report := buildReport("graph.json", g, m)
	if report.Graph != "graph.json" {
		t.Errorf("Graph = %q, want %q", report.Graph, "graph.json")
	}
	if report.NodeCount != 4 {
		t.Errorf("NodeCount = %d, want 4", report.NodeCount)
	}
	if report.SnarlCount != 1 || report.Ultrabubble != 1 {
		t.Errorf("report = %+v, want one ultrabubble snarl", report)
	}
	if report.RunID == "" {
		t.Error("RunID should not be empty")
	}
}
