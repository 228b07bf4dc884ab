package snarl

import "testing"

func TestSnarlIsUnary(t *testing.T) {
	tests := []struct {
		name string
		s    Snarl
		want bool
	}{
		{"same node opposite orientation", Snarl{Start: NodeVisit(4, false), End: NodeVisit(4, true)}, true},
		{"same node same orientation", Snarl{Start: NodeVisit(4, false), End: NodeVisit(4, false)}, false},
		{"different nodes", Snarl{Start: NodeVisit(1, false), End: NodeVisit(4, true)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.IsUnary(); got != tt.want {
				t.Errorf("IsUnary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnarlFlip(t *testing.T) {
	s := &Snarl{Start: NodeVisit(1, false), End: NodeVisit(9, false)}
	s.Flip()
	if s.Start.NodeID != 9 || s.End.NodeID != 1 {
		t.Fatalf("Flip() boundaries = (%v, %v), want start=9 end=1", s.Start, s.End)
	}
	if !s.Start.Backward || !s.End.Backward {
		t.Errorf("Flip() backward bits = (%v, %v), want both true", s.Start.Backward, s.End.Backward)
	}

	s.Flip()
	if s.Start.NodeID != 1 || s.End.NodeID != 9 || s.Start.Backward || s.End.Backward {
		t.Errorf("Flip(Flip(s)) = %+v, want identity", s)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindUnary, "unary"},
		{KindUltrabubble, "ultrabubble"},
		{KindUnclassified, "unclassified"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}
