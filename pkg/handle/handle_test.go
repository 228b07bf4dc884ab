package handle

import "testing"

func buildTriangle(t *testing.T) *AdjacencyGraph {
	t.Helper()
	g := NewAdjacencyGraph()
	for _, id := range []uint64{1, 2, 3} {
		if err := g.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%d) = %v", id, err)
		}
	}
	edges := [][2]uint64{{1, 2}, {1, 3}, {2, 3}}
	for _, e := range edges {
		if err := g.AddEdge(g.GetHandle(e[0], false), g.GetHandle(e[1], false)); err != nil {
			t.Fatalf("AddEdge(%d,%d) = %v", e[0], e[1], err)
		}
	}
	return g
}

func TestAddNodeDuplicate(t *testing.T) {
	g := NewAdjacencyGraph()
	if err := g.AddNode(Node{ID: 1}); err != nil {
		t.Fatalf("AddNode() = %v, want nil", err)
	}
	if err := g.AddNode(Node{ID: 1}); err != ErrDuplicateNodeID {
		t.Errorf("AddNode() = %v, want ErrDuplicateNodeID", err)
	}
}

func TestAddNodeInvalidID(t *testing.T) {
	g := NewAdjacencyGraph()
	if err := g.AddNode(Node{ID: 0}); err != ErrInvalidNodeID {
		t.Errorf("AddNode() = %v, want ErrInvalidNodeID", err)
	}
}

func TestAddEdgeUnknownNode(t *testing.T) {
	g := NewAdjacencyGraph()
	_ = g.AddNode(Node{ID: 1})
	if err := g.AddEdge(g.GetHandle(1, false), g.GetHandle(2, false)); err == nil {
		t.Error("AddEdge() = nil, want error for unknown target node")
	}
}

func TestFollowEdgesForward(t *testing.T) {
	g := buildTriangle(t)

	var seen []Handle
	g.FollowEdges(g.GetHandle(1, false), false, func(h Handle) bool {
		seen = append(seen, h)
		return true
	})
	if len(seen) != 2 {
		t.Fatalf("FollowEdges(1+, right) = %v, want 2 neighbors", seen)
	}
}

func TestFollowEdgesReverseIsFlippedLeft(t *testing.T) {
	g := NewAdjacencyGraph()
	_ = g.AddNode(Node{ID: 1})
	_ = g.AddNode(Node{ID: 2})
	_ = g.AddEdge(g.GetHandle(1, false), g.GetHandle(2, false))

	// Leaving 2- on its right side is the same connection as leaving 1+ on
	// its right side, flipped: we should land on 1-.
	var got Handle
	g.FollowEdges(g.GetHandle(2, true), false, func(h Handle) bool {
		got = h
		return true
	})
	want := g.GetHandle(1, true)
	if got != want {
		t.Errorf("FollowEdges(2-, right) = %v, want %v", got, want)
	}
}

func TestFollowEdgesStopsEarly(t *testing.T) {
	g := buildTriangle(t)

	count := 0
	g.FollowEdges(g.GetHandle(1, false), false, func(h Handle) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("FollowEdges() visited %d neighbors after stop, want 1", count)
	}
}

func TestEdgeHandleCanonicalizesFlippedPair(t *testing.T) {
	g := NewAdjacencyGraph()
	u := g.GetHandle(1, false)
	v := g.GetHandle(2, false)

	a := g.EdgeHandle(u, v)
	b := g.EdgeHandle(v.Flip(), u.Flip())
	if a != b {
		t.Errorf("EdgeHandle(u,v) = %v, EdgeHandle(v̄,ū) = %v, want equal", a, b)
	}
}

func TestMinMaxNodeID(t *testing.T) {
	g := buildTriangle(t)
	if got := g.MinNodeID(); got != 1 {
		t.Errorf("MinNodeID() = %d, want 1", got)
	}
	if got := g.MaxNodeID(); got != 3 {
		t.Errorf("MaxNodeID() = %d, want 3", got)
	}
}

func TestGetSequenceReverseComplement(t *testing.T) {
	g := NewAdjacencyGraph()
	_ = g.AddNode(Node{ID: 1, Sequence: "ACGT"})

	seq, err := g.GetSequence(g.GetHandle(1, true))
	if err != nil {
		t.Fatalf("GetSequence() = %v", err)
	}
	if seq != "ACGT" {
		t.Errorf("GetSequence(1-) = %q, want %q (palindromic check)", seq, "ACGT")
	}

	fwd, _ := g.GetSequence(g.GetHandle(1, false))
	if fwd != "ACGT" {
		t.Errorf("GetSequence(1+) = %q, want %q", fwd, "ACGT")
	}
}

func TestGetSequenceUnknownNode(t *testing.T) {
	g := NewAdjacencyGraph()
	if _, err := g.GetSequence(g.GetHandle(99, false)); err == nil {
		t.Error("GetSequence() = nil error, want error for unknown node")
	}
}
