package manager

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/tgorski/snarltree/pkg/errors"
	"github.com/tgorski/snarltree/pkg/handle"
	"github.com/tgorski/snarltree/pkg/observability"
	"github.com/tgorski/snarltree/pkg/snarl"
	"github.com/tgorski/snarltree/pkg/snarl/netgraph"
)

// Manager owns a flat collection of snarls and, after [Manager.Finish],
// the parent/child tree and chain structure computed over them.
//
// The zero Manager is not usable; construct one with [New]. A Manager is
// not safe for concurrent AddSnarl calls, but its query methods are safe
// for concurrent read-only use once Finish has returned.
type Manager struct {
	records []*Record

	roots      []*Record
	rootChains []*snarl.Chain[*Record]

	// boundary indexes a (node, facing-reverse) endpoint to the record one
	// reads into by entering there - the Go analogue of snarl_into.
	boundary map[snarl.Endpoint]*Record
}

// New creates an empty Manager.
func New() *Manager {
	return &Manager{boundary: make(map[snarl.Endpoint]*Record)}
}

// AddSnarl adds s to the manager, returning the owned Record that represents
// it from now on. The manager does not build its tree and chain indexes
// until Finish is called; calling any query method before Finish returns an
// unpopulated view.
func (m *Manager) AddSnarl(s snarl.Snarl) *Record {
	rec := &Record{Snarl: s, index: len(m.records)}
	m.records = append(m.records, rec)
	return rec
}

// NumSnarls returns the number of snarls the manager owns.
func (m *Manager) NumSnarls() int { return len(m.records) }

// Finish builds the parent/child tree and chain indexes from the snarls
// added so far, then regularizes every chain's and snarl's orientation so
// traversal order is predictable. Call it exactly once, after every AddSnarl
// call and before any query method.
func (m *Manager) Finish() error {
	ctx := context.Background()
	observability.Manager().OnFinishStart(ctx, len(m.records))
	start := time.Now()

	if err := m.buildIndexes(); err != nil {
		observability.Manager().OnFinishComplete(ctx, len(m.records), 0, time.Since(start), err)
		return err
	}
	m.regularize()

	observability.Manager().OnFinishComplete(ctx, len(m.records), len(m.rootChains), time.Since(start), nil)
	return nil
}

func (m *Manager) buildIndexes() error {
	m.boundary = make(map[snarl.Endpoint]*Record, len(m.records)*2)
	for _, rec := range m.records {
		startKey := snarl.Endpoint{NodeID: rec.Start.NodeID, FacingReverse: rec.Start.Backward}
		endKey := snarl.Endpoint{NodeID: rec.End.NodeID, FacingReverse: !rec.End.Backward}
		if existing, ok := m.boundary[startKey]; ok && existing != rec {
			return errors.New(errors.ErrCodeInternal, "boundary_into collision: %v already reads into a different snarl", startKey)
		}
		if existing, ok := m.boundary[endKey]; ok && existing != rec {
			return errors.New(errors.ErrCodeInternal, "boundary_into collision: %v already reads into a different snarl", endKey)
		}
		m.boundary[startKey] = rec
		m.boundary[endKey] = rec
	}

	m.roots = nil
	for _, rec := range m.records {
		if rec.Parent == nil {
			rec.parent = nil
			m.roots = append(m.roots, rec)
			continue
		}
		parent, err := m.manageBound(*rec.Parent)
		if err != nil {
			return err
		}
		rec.parent = parent
		parent.children = append(parent.children, rec)
	}

	m.rootChains = m.computeChains(m.roots)
	linkChainBackpointers(m.rootChains)

	for _, rec := range m.records {
		if len(rec.children) == 0 {
			continue
		}
		rec.childChains = m.computeChains(rec.children)
		linkChainBackpointers(rec.childChains)
	}
	return nil
}

func linkChainBackpointers(chains []*snarl.Chain[*Record]) {
	for _, chain := range chains {
		for i, entry := range chain.Entries {
			entry.Ref.parentChain = chain
			entry.Ref.parentChainIndex = i
		}
	}
}

// computeChains groups input into chains by walking snarl_sharing_start and
// snarl_sharing_end from each not-yet-seen snarl, matching
// SnarlManager::compute_chains.
func (m *Manager) computeChains(input []*Record) []*snarl.Chain[*Record] {
	var result []*snarl.Chain[*Record]
	seen := make(map[*Record]bool)

	for _, rec := range input {
		if seen[rec] {
			continue
		}
		entries := []snarl.Entry[*Record]{{Ref: rec, Backward: false}}
		seen[rec] = true

		for walkLeft := m.prevOwned(rec, false); walkLeft != nil && !seen[walkLeft.ref]; walkLeft = m.prevOwned(walkLeft.ref, walkLeft.backward) {
			entries = append([]snarl.Entry[*Record]{{Ref: walkLeft.ref, Backward: walkLeft.backward}}, entries...)
			seen[walkLeft.ref] = true
		}
		for walkRight := m.nextOwned(rec, false); walkRight != nil && !seen[walkRight.ref]; walkRight = m.nextOwned(walkRight.ref, walkRight.backward) {
			entries = append(entries, snarl.Entry[*Record]{Ref: walkRight.ref, Backward: walkRight.backward})
			seen[walkRight.ref] = true
		}

		result = append(result, &snarl.Chain[*Record]{Entries: entries})
	}
	return result
}

// chainStep is one step of the walk computeChains performs: the next record
// reached and whether it was reached backward relative to the chain.
type chainStep struct {
	ref      *Record
	backward bool
}

func (m *Manager) nextOwned(rec *Record, backward bool) *chainStep {
	var next *Record
	if backward {
		next = m.snarlSharingStart(rec)
	} else {
		next = m.snarlSharingEnd(rec)
	}
	if next == nil {
		return nil
	}
	var nextBackward bool
	if backward {
		nextBackward = next.End.NodeID == rec.Start.NodeID
	} else {
		nextBackward = next.Start.NodeID != rec.End.NodeID
	}
	return &chainStep{ref: next, backward: nextBackward}
}

func (m *Manager) prevOwned(rec *Record, backward bool) *chainStep {
	step := m.nextOwned(rec, !backward)
	if step == nil {
		return nil
	}
	return &chainStep{ref: step.ref, backward: !step.backward}
}

// regularize flips any snarl that runs backward in its chain, then - if
// doing so would leave the majority of the chain running against the
// backing graph's node-ID order - flips the whole chain around and flips
// the other set of snarls instead. Matches SnarlManager::regularize.
func (m *Manager) regularize() {
	m.ForEachChainParallel(func(chain *snarl.Chain[*Record]) {
		var backward, forward []*Record
		correctlyOriented := 0

		for _, e := range chain.Entries {
			if e.Backward {
				backward = append(backward, e.Ref)
				if e.Ref.End.NodeID <= e.Ref.Start.NodeID {
					correctlyOriented++
				}
			} else {
				forward = append(forward, e.Ref)
				if e.Ref.Start.NodeID <= e.Ref.End.NodeID {
					correctlyOriented++
				}
			}
		}

		if correctlyOriented*2 < chain.Len() {
			m.FlipChain(chain)
			backward, forward = forward, backward
		}
		for _, rec := range backward {
			m.FlipSnarl(rec)
		}
	})
}

// FlipSnarl swaps and inverts rec's own start and end, and - if rec sits in
// a chain - inverts its chain-orientation flag in place. Matches
// SnarlManager::flip(const Snarl*).
func (m *Manager) FlipSnarl(rec *Record) {
	rec.Snarl.Flip()
	if rec.parentChain != nil {
		e := &rec.parentChain.Entries[rec.parentChainIndex]
		e.Backward = !e.Backward
	}
}

// FlipChain reverses the order of chain's entries and inverts every entry's
// orientation flag and chain-rank index, in place. Matches
// SnarlManager::flip(const Chain*).
func (m *Manager) FlipChain(chain *snarl.Chain[*Record]) {
	if chain.IsEmpty() {
		return
	}
	n := len(chain.Entries)
	reversed := make([]snarl.Entry[*Record], n)
	for i, e := range chain.Entries {
		e.Backward = !e.Backward
		reversed[n-1-i] = e
	}
	chain.Entries = reversed
	for i, e := range chain.Entries {
		e.Ref.parentChainIndex = i
	}
}

// manageBound resolves a parent reference (captured as a boundary, not yet
// a Record) to its owned Record by the endpoint one reads in through at its
// start. Matches SnarlManager::manage.
func (m *Manager) manageBound(b snarl.Bound) (*Record, error) {
	key := snarl.Endpoint{NodeID: b.Start.NodeID, FacingReverse: b.Start.Backward}
	rec, ok := m.boundary[key]
	if !ok {
		return nil, errors.New(errors.ErrCodePrecondition, "manage: snarl bounded by %v is not owned by this manager", b.Start)
	}
	return rec, nil
}

// Manage resolves a visit's inner snarl boundary to the Record it names.
// Calling it on a node visit is a precondition violation.
func (m *Manager) Manage(v snarl.Visit) (*Record, error) {
	if !v.HasSnarl() {
		return nil, errors.New(errors.ErrCodePrecondition, "manage: visit %v does not name a snarl", v)
	}
	return m.manageBound(*v.Inner)
}

// IntoWhichSnarl returns the record one reads into by entering node id from
// the given facing-reverse side, or nil if that endpoint is not a snarl
// boundary.
func (m *Manager) IntoWhichSnarl(id uint64, facingReverse bool) *Record {
	return m.boundary[snarl.Endpoint{NodeID: id, FacingReverse: facingReverse}]
}

// IntoWhichSnarlVisit resolves a visit, node or snarl, to the record it
// reads into.
func (m *Manager) IntoWhichSnarlVisit(v snarl.Visit) *Record {
	if v.HasSnarl() {
		rec, err := m.Manage(v)
		if err != nil {
			return nil
		}
		return rec
	}
	return m.IntoWhichSnarl(v.NodeID, v.Backward)
}

// ChildrenOf returns rec's direct children, or the top-level snarls if rec
// is nil.
func (m *Manager) ChildrenOf(rec *Record) []*Record {
	if rec == nil {
		return m.roots
	}
	return rec.children
}

// ParentOf returns rec's parent, or nil if rec is a root.
func (m *Manager) ParentOf(rec *Record) *Record { return rec.parent }

// snarlSharingStart returns the neighboring snarl reached by walking out of
// rec's start, or nil if that would be rec itself (a unary snarl) or there
// is none.
func (m *Manager) snarlSharingStart(rec *Record) *Record {
	next := m.IntoWhichSnarl(rec.Start.NodeID, !rec.Start.Backward)
	if next == rec {
		return nil
	}
	return next
}

// snarlSharingEnd is the symmetric counterpart of snarlSharingStart, walking
// out of rec's end.
func (m *Manager) snarlSharingEnd(rec *Record) *Record {
	next := m.IntoWhichSnarl(rec.End.NodeID, rec.End.Backward)
	if next == rec {
		return nil
	}
	return next
}

// ChainOf returns the chain rec belongs to.
func (m *Manager) ChainOf(rec *Record) *snarl.Chain[*Record] { return rec.parentChain }

// ChainOrientationOf reports whether rec runs backward relative to its
// chain's own forward direction.
func (m *Manager) ChainOrientationOf(rec *Record) bool {
	chain := m.ChainOf(rec)
	if chain == nil {
		return false
	}
	return chain.Entries[rec.parentChainIndex].Backward
}

// ChainRankOf returns rec's position within its chain. A snarl in a
// single-snarl chain is at rank 0.
func (m *Manager) ChainRankOf(rec *Record) int {
	if m.ChainOf(rec) == nil {
		return 0
	}
	return rec.parentChainIndex
}

// InNontrivialChain reports whether rec's chain holds more than one snarl.
func (m *Manager) InNontrivialChain(rec *Record) bool {
	chain := m.ChainOf(rec)
	return chain != nil && chain.Len() > 1
}

// NextSnarl returns the snarl visit reached by continuing straight on from
// a snarl visit: walking out here's end if here runs forward, or here's
// start if here runs backward. ok is false if here does not name a snarl
// this manager owns, or if there is nothing next.
func (m *Manager) NextSnarl(here snarl.Visit) (next snarl.Visit, ok bool) {
	hereRec, err := m.Manage(here)
	if err != nil {
		return snarl.Visit{}, false
	}

	var nextRec *Record
	if here.Backward {
		nextRec = m.snarlSharingStart(hereRec)
	} else {
		nextRec = m.snarlSharingEnd(hereRec)
	}
	if nextRec == nil {
		return snarl.Visit{}, false
	}

	var backward bool
	if here.Backward {
		backward = nextRec.End.NodeID == hereRec.Start.NodeID
	} else {
		backward = nextRec.Start.NodeID != hereRec.End.NodeID
	}
	return snarl.SnarlVisit(nextRec.Start, nextRec.End, backward), true
}

// PrevSnarl returns the snarl visit reached by continuing backward from
// here: the reverse of NextSnarl applied to the reverse of here.
func (m *Manager) PrevSnarl(here snarl.Visit) (snarl.Visit, bool) {
	next, ok := m.NextSnarl(snarl.Reverse(here))
	if !ok {
		return snarl.Visit{}, false
	}
	return snarl.Reverse(next), true
}

// ChainsOf returns rec's child chains, or the top-level chains if rec is
// nil.
func (m *Manager) ChainsOf(rec *Record) []*snarl.Chain[*Record] {
	if rec == nil {
		return m.rootChains
	}
	return rec.childChains
}

// NetGraphOf builds the net-graph view of rec's interior over backing,
// classifying each of rec's child chains as a true chain or (if it is a
// single already-classified unary snarl) a unary meta-node - matching the
// "mixed" constructor original net-graph tooling offers.
func (m *Manager) NetGraphOf(rec *Record, backing handle.Graph, useInternalConnectivity bool) *netgraph.Graph {
	var chains []*snarl.Chain[*Record]
	var unary []*Record
	for _, chain := range m.ChainsOf(rec) {
		if chain.Len() == 1 && chain.Entries[0].Ref.Type == snarl.KindUnary {
			unary = append(unary, chain.Entries[0].Ref)
			continue
		}
		chains = append(chains, chain)
	}
	start, end := snarl.NodeVisit(0, false), snarl.NodeVisit(0, false)
	if rec != nil {
		start, end = rec.Start, rec.End
	}
	return netgraph.NewFromChildren(start, end, chains, unary, backing, useInternalConnectivity)
}

// IsLeaf reports whether rec has no children.
func (m *Manager) IsLeaf(rec *Record) bool { return len(rec.children) == 0 }

// IsRoot reports whether rec has no parent.
func (m *Manager) IsRoot(rec *Record) bool { return rec.parent == nil }

// IsTrivial reports whether rec is a leaf ultrabubble with nothing inside
// its own boundary nodes.
func (m *Manager) IsTrivial(rec *Record, backing handle.Graph) bool {
	if rec.Type != snarl.KindUltrabubble || !m.IsLeaf(rec) {
		return false
	}
	nodes, _ := m.ShallowContents(rec, backing, false)
	return len(nodes) == 0
}

// AllChildrenTrivial reports whether every direct child of rec is trivial.
func (m *Manager) AllChildrenTrivial(rec *Record, backing handle.Graph) bool {
	for _, child := range m.ChildrenOf(rec) {
		if !m.IsTrivial(child, backing) {
			return false
		}
	}
	return true
}

// TopLevelSnarls returns the manager's root records.
func (m *Manager) TopLevelSnarls() []*Record { return m.roots }

// ForEachTopLevelSnarl calls fn once per root record.
func (m *Manager) ForEachTopLevelSnarl(fn func(*Record)) {
	for _, rec := range m.roots {
		fn(rec)
	}
}

// ForEachTopLevelSnarlParallel calls fn once per root record, concurrently.
func (m *Manager) ForEachTopLevelSnarlParallel(fn func(*Record)) {
	parallelEach(m.roots, fn)
}

// ForEachSnarlPreorder visits every record in preorder: a parent before any
// of its descendants.
func (m *Manager) ForEachSnarlPreorder(fn func(*Record)) {
	var visit func(*Record)
	visit = func(rec *Record) {
		fn(rec)
		for _, child := range m.ChildrenOf(rec) {
			visit(child)
		}
	}
	m.ForEachTopLevelSnarl(visit)
}

// ForEachSnarlParallel visits every record in preorder, running each
// subtree's children concurrently with each other.
func (m *Manager) ForEachSnarlParallel(fn func(*Record)) {
	var visit func(*Record)
	visit = func(rec *Record) {
		fn(rec)
		parallelEach(m.ChildrenOf(rec), visit)
	}
	m.ForEachTopLevelSnarlParallel(visit)
}

// ForEachSnarlUnindexed visits every record in the manager's master list,
// in insertion order, ignoring tree structure entirely.
func (m *Manager) ForEachSnarlUnindexed(fn func(*Record)) {
	for _, rec := range m.records {
		fn(rec)
	}
}

// ForEachTopLevelChain calls fn once per root-level chain.
func (m *Manager) ForEachTopLevelChain(fn func(*snarl.Chain[*Record])) {
	for _, chain := range m.rootChains {
		fn(chain)
	}
}

// ForEachTopLevelChainParallel calls fn once per root-level chain,
// concurrently.
func (m *Manager) ForEachTopLevelChainParallel(fn func(*snarl.Chain[*Record])) {
	parallelEach(m.rootChains, fn)
}

// ForEachChain visits the root-level chains, then every snarl's child
// chains in preorder over the snarl tree.
func (m *Manager) ForEachChain(fn func(*snarl.Chain[*Record])) {
	m.ForEachTopLevelChain(fn)
	m.ForEachSnarlPreorder(func(rec *Record) {
		for _, chain := range m.ChainsOf(rec) {
			fn(chain)
		}
	})
}

// ForEachChainParallel is the concurrent counterpart of ForEachChain.
func (m *Manager) ForEachChainParallel(fn func(*snarl.Chain[*Record])) {
	m.ForEachTopLevelChainParallel(fn)
	m.ForEachSnarlParallel(func(rec *Record) {
		parallelEach(m.ChainsOf(rec), fn)
	})
}

// DiscreteUniformSample returns a record chosen uniformly at random, by r,
// from every snarl the manager owns. ok is false, not an error, if the
// manager owns none.
//
// r is caller-supplied rather than a package-level source so a caller that
// needs a reproducible draw - the CLI's sample --seed, or a test - can pass
// a seeded [rand.Rand], matching SnarlManager::discrete_uniform_sample
// taking its random engine as a parameter.
func (m *Manager) DiscreteUniformSample(r *rand.Rand) (rec *Record, ok bool) {
	if len(m.records) == 0 {
		observability.Manager().OnSample(context.Background(), false)
		return nil, false
	}
	observability.Manager().OnSample(context.Background(), true)
	return m.records[r.IntN(len(m.records))], true
}
