package snarl

import "github.com/tgorski/snarltree/pkg/errors"

// Snarlish is the minimal capability a chain needs from whatever it holds
// references to: its own boundary. The manager's records, and bare
// *[Snarl] values in tests, both satisfy it.
//
// S is required to be comparable so chain entries can be located by
// reference identity (needed by [IterateFrom]).
type Snarlish interface {
	comparable
	Bounds() (start, end Visit)
}

// Entry is one link in a [Chain]: a reference to a snarl plus whether it
// is stored backward relative to the chain's own forward direction.
type Entry[S Snarlish] struct {
	Ref      S
	Backward bool
}

// Chain is an ordered sequence of oriented snarl references. A chain of
// length one holding a single unary snarl is perfectly ordinary; a chain
// of length zero (an "empty chain") is a valid, if inert, value.
type Chain[S Snarlish] struct {
	Entries []Entry[S]
}

// Len returns the number of snarls in the chain.
func (c *Chain[S]) Len() int { return len(c.Entries) }

// IsEmpty reports whether the chain has no snarls.
func (c *Chain[S]) IsEmpty() bool { return len(c.Entries) == 0 }

// StartBackward reports whether the chain's first entry is stored
// backward.
func (c *Chain[S]) StartBackward() bool {
	return !c.IsEmpty() && c.Entries[0].Backward
}

// EndBackward reports whether the chain's last entry is stored backward.
func (c *Chain[S]) EndBackward() bool {
	return !c.IsEmpty() && c.Entries[len(c.Entries)-1].Backward
}

// StartVisit returns the visit at the chain's start side: the start of
// its first entry, or the reverse of that entry's end if the entry is
// stored backward. Returns the zero Visit for an empty chain.
func (c *Chain[S]) StartVisit() Visit {
	if c.IsEmpty() {
		return Visit{}
	}
	front := c.Entries[0]
	start, end := front.Ref.Bounds()
	if front.Backward {
		return Reverse(end)
	}
	return start
}

// EndVisit returns the visit at the chain's end side, symmetric to
// [Chain.StartVisit]. Returns the zero Visit for an empty chain.
func (c *Chain[S]) EndVisit() Visit {
	if c.IsEmpty() {
		return Visit{}
	}
	back := c.Entries[len(c.Entries)-1]
	start, end := back.Ref.Bounds()
	if back.Backward {
		return Reverse(start)
	}
	return end
}

// IsCyclic reports whether the chain is non-empty and its start and end
// visits name the same node - a chain that returns to where it began.
func (c *Chain[S]) IsCyclic() bool {
	if c.IsEmpty() {
		return false
	}
	return c.StartVisit().NodeID == c.EndVisit().NodeID
}

// Direction selects which way an [Iterator] walks a chain.
type Direction int

const (
	// DirForward walks entries left to right.
	DirForward Direction = iota
	// DirReverse walks entries right to left, without inverting the
	// stored Backward bit of each entry.
	DirReverse
)

// Iterator walks a [Chain] in one of the six modes described in
// [ChainBegin], [ChainRBegin], and [ChainRCBegin]: forward, reverse, and
// reverse-complement, each with a matching end sentinel.
//
// The zero Iterator is not usable; construct one with the Chain*
// constructors below.
type Iterator[S Snarlish] struct {
	chain      *Chain[S]
	pos        int
	dir        Direction
	complement bool
	// rend marks the explicit pre-begin state reached by advancing a
	// reverse iterator past the chain's left end. It is distinct from
	// "at forward end": a reverse iterator that is rend has walked off
	// the far side of its direction of travel, not the near side.
	rend bool
}

// ChainBegin returns an iterator positioned at the first entry, walking
// forward with entries dereferenced as stored.
func ChainBegin[S Snarlish](c *Chain[S]) *Iterator[S] {
	return &Iterator[S]{chain: c, pos: 0, dir: DirForward}
}

// ChainEnd returns the forward end sentinel: one past the last entry.
func ChainEnd[S Snarlish](c *Chain[S]) *Iterator[S] {
	return &Iterator[S]{chain: c, pos: c.Len(), dir: DirForward}
}

// ChainRBegin returns an iterator positioned at the last entry, walking
// right to left with entries dereferenced as stored. On an empty chain
// this is the same as [ChainREnd].
func ChainRBegin[S Snarlish](c *Chain[S]) *Iterator[S] {
	if c.IsEmpty() {
		return ChainREnd(c)
	}
	return &Iterator[S]{chain: c, pos: c.Len() - 1, dir: DirReverse}
}

// ChainREnd returns the reverse end sentinel: the explicit pre-begin
// state reached by walking left off the first entry.
func ChainREnd[S Snarlish](c *Chain[S]) *Iterator[S] {
	return &Iterator[S]{chain: c, pos: 0, dir: DirReverse, rend: true}
}

// ChainRCBegin returns an iterator positioned at the last entry, walking
// right to left with every entry's effective Backward bit inverted -
// "reverse complement": the chain read backward as if it were the other
// strand.
func ChainRCBegin[S Snarlish](c *Chain[S]) *Iterator[S] {
	it := ChainRBegin(c)
	it.complement = true
	return it
}

// ChainRCEnd returns the reverse-complement end sentinel.
func ChainRCEnd[S Snarlish](c *Chain[S]) *Iterator[S] {
	it := ChainREnd(c)
	it.complement = true
	return it
}

// ChainBeginFrom implements iterate_from: it returns the forward or
// reverse-complement begin iterator, whichever one starts at the end of
// the chain the caller names. boundingSnarl must be the chain's first or
// last entry's Ref; inwardOrientation is the direction that snarl faces
// when entered from outside the chain. Naming a snarl that is not one of
// the chain's two bounding entries is a precondition violation.
func ChainBeginFrom[S Snarlish](c *Chain[S], boundingSnarl S, inwardOrientation bool) (*Iterator[S], error) {
	if c.IsEmpty() {
		return nil, errors.New(errors.ErrCodePrecondition, "iterate_from: empty chain has no bounding snarl")
	}
	if c.Entries[0].Ref == boundingSnarl && inwardOrientation == c.StartBackward() {
		return ChainBegin(c), nil
	}
	if c.Entries[len(c.Entries)-1].Ref == boundingSnarl {
		return ChainRCBegin(c), nil
	}
	return nil, errors.New(errors.ErrCodePrecondition, "iterate_from: snarl does not bound this chain")
}

// ChainEndFrom returns the end sentinel matching [ChainBeginFrom]'s
// choice of direction for the same arguments.
func ChainEndFrom[S Snarlish](c *Chain[S], boundingSnarl S, inwardOrientation bool) (*Iterator[S], error) {
	if c.IsEmpty() {
		return nil, errors.New(errors.ErrCodePrecondition, "iterate_from: empty chain has no bounding snarl")
	}
	if c.Entries[0].Ref == boundingSnarl && inwardOrientation == c.StartBackward() {
		return ChainEnd(c), nil
	}
	if c.Entries[len(c.Entries)-1].Ref == boundingSnarl {
		return ChainRCEnd(c), nil
	}
	return nil, errors.New(errors.ErrCodePrecondition, "iterate_from: snarl does not bound this chain")
}

// AtEnd reports whether the iterator has no further entry to dereference:
// it is at the forward end sentinel, or it is rend.
func (it *Iterator[S]) AtEnd() bool {
	if it.dir == DirReverse {
		return it.rend
	}
	return it.pos == it.chain.Len()
}

// Value dereferences the iterator, returning the referenced snarl and its
// effective backward flag (the stored flag XOR the complement bit). ok is
// false at either end sentinel.
func (it *Iterator[S]) Value() (ref S, effectiveBackward bool, ok bool) {
	if it.AtEnd() {
		return ref, false, false
	}
	e := it.chain.Entries[it.pos]
	return e.Ref, e.Backward != it.complement, true
}

// Next advances the iterator one step in its direction of travel. It is
// an error to call Next again after reaching the relevant end sentinel.
func (it *Iterator[S]) Next() error {
	if it.dir == DirReverse {
		if it.rend {
			return errors.New(errors.ErrCodePrecondition, "chain iterator: advanced past reverse end")
		}
		if it.pos == 0 {
			it.rend = true
			return nil
		}
		it.pos--
		return nil
	}
	if it.pos == it.chain.Len() {
		return errors.New(errors.ErrCodePrecondition, "chain iterator: advanced past forward end")
	}
	it.pos++
	return nil
}

// Equal reports whether two iterators over the same chain are at the same
// position in the same mode.
func (it *Iterator[S]) Equal(other *Iterator[S]) bool {
	return it.chain == other.chain && it.pos == other.pos && it.dir == other.dir &&
		it.complement == other.complement && it.rend == other.rend
}
