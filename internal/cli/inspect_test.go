package cli

import "testing"

func TestInspectReportsBoundarySnarl(t *testing.T) {
	g := diamondGraph(t)
	m, err := decompose(g)
	if err != nil {
		t.Fatalf("decompose() = %v", err)
	}

	report := inspect(m, 1, false)
	if report.IntoSnarl == "" {
		t.Error("node 1 forward should read into the outer snarl")
	}
	if report.Parent != "" {
		t.Errorf("Parent = %q, want empty for a top-level snarl", report.Parent)
	}
}

func TestInspectReportsNoSnarlForInteriorOrientation(t *testing.T) {
	g := diamondGraph(t)
	m, err := decompose(g)
	if err != nil {
		t.Fatalf("decompose() = %v", err)
	}

	report := inspect(m, 2, true)
	if report.IntoSnarl != "" {
		t.Errorf("IntoSnarl = %q, want empty: node 2 reverse is not a snarl boundary", report.IntoSnarl)
	}
}
