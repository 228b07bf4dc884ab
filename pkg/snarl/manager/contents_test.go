package manager

import (
	"sort"
	"testing"

	"github.com/tgorski/snarltree/pkg/snarl"
)

func sortedIDs(set map[uint64]struct{}) []uint64 {
	ids := make([]uint64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sameIDs(got []uint64, want []uint64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestShallowContentsSkipsChildInterior(t *testing.T) {
	m, g, x, _, _, _ := fixture(t)

	nodes, edges := m.ShallowContents(x, g, false)
	if got, want := sortedIDs(nodes), []uint64{2, 4}; !sameIDs(got, want) {
		t.Errorf("ShallowContents(x) nodes = %v, want %v (node 3 is inside child y)", got, want)
	}
	if len(edges) != 2 {
		t.Errorf("ShallowContents(x) found %d edges, want 2 (1->2 and 4->5)", len(edges))
	}
}

func TestDeepContentsDescendsIntoChild(t *testing.T) {
	m, g, x, _, _, _ := fixture(t)

	nodes, edges := m.DeepContents(x, g, false)
	if got, want := sortedIDs(nodes), []uint64{2, 3, 4}; !sameIDs(got, want) {
		t.Errorf("DeepContents(x) nodes = %v, want %v", got, want)
	}
	if len(edges) != 5 {
		t.Errorf("DeepContents(x) found %d edges, want 5 (1->2, 2->3, 2->4, 3->4, 4->5)", len(edges))
	}
}

func TestShallowContentsIncludesBoundaryNodesWhenAsked(t *testing.T) {
	m, g, x, _, _, _ := fixture(t)

	nodes, _ := m.ShallowContents(x, g, true)
	if got, want := sortedIDs(nodes), []uint64{1, 2, 4, 5}; !sameIDs(got, want) {
		t.Errorf("ShallowContents(x, includeBoundary) nodes = %v, want %v", got, want)
	}
}

func TestVisitsRightResolvesIntoChildSnarl(t *testing.T) {
	m, g, x, y, _, _ := fixture(t)

	got := m.VisitsRight(snarl.NodeVisit(1, false), g, x)
	want := snarl.SnarlVisit(y.Start, y.End, false)
	if len(got) != 1 || !got[0].Equal(want) {
		t.Errorf("VisitsRight(node 1, in x) = %v, want [%v]", got, want)
	}
}

func TestVisitsRightFollowsEdgeOutOfSnarlIntoNextSnarl(t *testing.T) {
	m, g, _, y, w, _ := fixture(t)

	here := snarl.SnarlVisit(y.Start, y.End, false)
	got := m.VisitsRight(here, g, y)
	want := snarl.SnarlVisit(w.Start, w.End, false)
	if len(got) != 1 || !got[0].Equal(want) {
		t.Errorf("VisitsRight(y forward, in y) = %v, want [%v] (edge 4->5 enters w)", got, want)
	}
}

func TestVisitsLeftMirrorsVisitsRight(t *testing.T) {
	m, g, _, y, w, _ := fixture(t)

	here := snarl.SnarlVisit(w.Start, w.End, false)
	got := m.VisitsLeft(here, g, w)
	want := snarl.SnarlVisit(y.Start, y.End, false)
	if len(got) != 1 || !got[0].Equal(want) {
		t.Errorf("VisitsLeft(w forward, in w) = %v, want [%v]", got, want)
	}
}
