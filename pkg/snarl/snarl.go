package snarl

// Kind classifies a snarl's shape once a finder driver has computed its
// connectivity (see [pkg/snarl/finder]).
type Kind int

const (
	// KindUnclassified is a snarl that is none of the other kinds: it
	// fails to connect start to end, has self-reachable ends, contains a
	// non-ultrabubble child, has internal tips, or has a cyclic net
	// graph.
	KindUnclassified Kind = iota
	// KindUnary is a snarl whose start and end name the same node in
	// opposite orientations. This overrides every other check
	// unconditionally - see [Snarl.IsUnary].
	KindUnary
	// KindUltrabubble is a snarl whose net graph is acyclic, has no
	// internal tips, no self-reachability, connects start to end, and
	// whose every child is itself an ultrabubble.
	KindUltrabubble
)

// String renders k as the lowercase name used in the taxonomy.
func (k Kind) String() string {
	switch k {
	case KindUnary:
		return "unary"
	case KindUltrabubble:
		return "ultrabubble"
	default:
		return "unclassified"
	}
}

// Snarl is a subgraph bounded by two oriented node endpoints whose removal
// disconnects the interior from the rest of the backing graph. Start faces
// into the snarl; End faces out of it.
//
// A Snarl carries its own classification and connectivity fields, and
// [Snarl.Flip] changes it in place. Ownership and identity live on the
// manager's record (see [pkg/snarl/manager].Record), which embeds a Snarl.
type Snarl struct {
	Start, End Visit

	// Parent is the boundary of this snarl's parent, when the input
	// source pre-classified the hierarchy. Nil means "resolve parent by
	// position" or "this is a root" - the manager decides which during
	// Finish.
	Parent *Bound

	Type Kind

	// StartSelfReachable and EndSelfReachable report whether a walk from
	// the inward start (resp. inward-flipped end) through the net graph
	// can return to its own side without leaving through the other
	// boundary.
	StartSelfReachable bool
	EndSelfReachable   bool
	// StartEndReachable reports whether the net graph connects the
	// inward start to the inward-flipped end.
	StartEndReachable bool
	// DirectedAcyclicNetGraph reports whether the snarl's flat net graph
	// (internal connectivity off) is acyclic.
	DirectedAcyclicNetGraph bool
}

// IsUnary reports whether the snarl's start and end name the same node in
// opposite orientations. Per spec, a snarl with IsUnary true is classified
// [KindUnary] unconditionally, regardless of any connectivity flag.
func (s Snarl) IsUnary() bool {
	return s.Start.NodeID == s.End.NodeID && s.End.Backward == !s.Start.Backward
}

// Bounds returns the snarl's own boundary, satisfying the [Snarlish]
// constraint that [Chain] and the chain iterator are built over.
func (s *Snarl) Bounds() (start, end Visit) {
	return s.Start, s.End
}

// Connectivity returns the snarl's three connectivity flags, satisfying
// the connectivity-aware constraint the net-graph adaptor builds child
// meta-nodes over (see pkg/snarl/netgraph).
func (s *Snarl) Connectivity() (startSelfReachable, endSelfReachable, startEndReachable bool) {
	return s.StartSelfReachable, s.EndSelfReachable, s.StartEndReachable
}

// Flip swaps start and end and inverts both backward bits, in place. It
// does not touch Parent or any index the manager maintains alongside a
// record - those are the manager's responsibility (see
// [pkg/snarl/manager].Manager.FlipSnarl).
func (s *Snarl) Flip() {
	s.Start, s.End = Reverse(s.End), Reverse(s.Start)
}
