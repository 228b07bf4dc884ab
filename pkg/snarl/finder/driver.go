package finder

import (
	"context"
	"time"

	"github.com/tgorski/snarltree/pkg/errors"
	"github.com/tgorski/snarltree/pkg/handle"
	"github.com/tgorski/snarltree/pkg/observability"
	"github.com/tgorski/snarltree/pkg/snarl"
	"github.com/tgorski/snarltree/pkg/snarl/manager"
)

// frame is one entry of the translation stack driveInto walks while a
// Finder's callbacks fire: the scratch snarl being assembled for the snarl
// currently open, and the child snarls collected for it so far, sorted by
// chain. Matches HandleGraphSnarlFinder::find_snarls_unindexed's
// TranslationFrame.
type frame struct {
	snarl       snarl.Snarl
	childChains [][]snarl.Snarl

	chainStart     handle.Handle
	haveChainStart bool

	// classifyAt is the start handle this frame's beginSnarl call fired
	// with, kept around only so endSnarl can report it to OnSnarlClassified.
	classifyAt handle.Handle
}

// driveInto runs f's decomposition over backing, classifying and adding
// every snarl it reports to m as each one's own boundary becomes known,
// bottom-up. It does not call m.Finish.
func driveInto(m *manager.Manager, f Finder, backing handle.Graph) error {
	var stack []*frame
	var err error

	fail := func(e error) {
		if err == nil {
			err = e
		}
	}

	beginChain := func(chainStart handle.Handle) {
		observability.Finder().OnChainBegin(context.Background(), chainStart)
		if err != nil || len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1]
		top.chainStart = chainStart
		top.haveChainStart = true
		top.childChains = append(top.childChains, nil)
	}

	endChain := func(chainEnd handle.Handle) {
		if err != nil || len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1]
		if top.haveChainStart && top.chainStart == chainEnd && len(top.childChains) > 0 && len(top.childChains[len(top.childChains)-1]) == 0 {
			top.childChains = top.childChains[:len(top.childChains)-1]
		}
	}

	beginSnarl := func(start handle.Handle) {
		observability.Finder().OnSnarlBegin(context.Background(), start)
		if err != nil {
			return
		}
		stack = append(stack, &frame{
			snarl:      snarl.Snarl{Start: snarl.NodeVisit(backing.GetID(start), backing.GetIsReverse(start))},
			classifyAt: start,
		})
	}

	endSnarl := func(end handle.Handle) {
		if err != nil {
			return
		}
		if len(stack) == 0 {
			fail(errors.New(errors.ErrCodePrecondition, "traverse_decomposition: end_snarl called with no snarl open"))
			return
		}
		top := stack[len(stack)-1]
		top.snarl.End = snarl.NodeVisit(backing.GetID(end), backing.GetIsReverse(end))

		classifyStart := time.Now()
		managedChains, managedUnary := manageChildChains(m, top)
		classify(&top.snarl, managedChains, managedUnary, backing)
		observability.Finder().OnSnarlClassified(context.Background(), top.classifyAt, end, top.snarl.Type, time.Since(classifyStart))

		if len(stack) > 1 {
			parent := stack[len(stack)-2]
			if len(parent.childChains) == 0 {
				fail(errors.New(errors.ErrCodePrecondition, "traverse_decomposition: snarl_end reached with no open chain in its parent"))
				stack = stack[:len(stack)-1]
				return
			}
			last := len(parent.childChains) - 1
			parent.childChains[last] = append(parent.childChains[last], top.snarl)
		} else {
			m.AddSnarl(top.snarl)
		}
		stack = stack[:len(stack)-1]
	}

	f.TraverseDecomposition(beginChain, endChain, beginSnarl, endSnarl)
	if err == nil && len(stack) != 0 {
		return errors.New(errors.ErrCodePrecondition, "traverse_decomposition: walk ended with %d snarl(s) still open", len(stack))
	}
	return err
}

// manageChildChains resolves every child snarl collected for top into an
// owned Record, filling in top's own boundary as each child's parent
// before adding it, then groups the managed children back into chains -
// splitting out any singleton already-classified-unary chain as a unary
// child, matching the "mixed" net graph constructor convention
// [manager.Manager.NetGraphOf] also follows.
func manageChildChains(m *manager.Manager, top *frame) ([]*snarl.Chain[*manager.Record], []*manager.Record) {
	var chains []*snarl.Chain[*manager.Record]
	var unary []*manager.Record

	for _, childChain := range top.childChains {
		entries := make([]snarl.Entry[*manager.Record], 0, len(childChain))
		for _, child := range childChain {
			child.Parent = &snarl.Bound{Start: top.snarl.Start, End: top.snarl.End}
			rec := m.AddSnarl(child)
			entries = append(entries, snarl.Entry[*manager.Record]{Ref: rec, Backward: false})
		}
		chain := &snarl.Chain[*manager.Record]{Entries: entries}
		if chain.Len() == 1 && chain.Entries[0].Ref.Type == snarl.KindUnary {
			unary = append(unary, chain.Entries[0].Ref)
			continue
		}
		chains = append(chains, chain)
	}
	return chains, unary
}
