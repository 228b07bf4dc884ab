package finder

import (
	"context"
	"sync"
	"time"

	"github.com/tgorski/snarltree/pkg/handle"
	"github.com/tgorski/snarltree/pkg/observability"
	"github.com/tgorski/snarltree/pkg/snarl/manager"
)

// Finder walks a backing graph and reports its bottom-up snarl/chain
// decomposition through four callbacks, in the order traverse_decomposition
// promises: a chain's start and end bracket the chains nested directly
// inside the snarl currently open, and a snarl's start and end bracket the
// snarl itself. Start handles face into what they bound; end handles face
// out of it. Every snarl is reported oriented forward in its chain.
//
// A finder that roots its walk at a global snarl with no bounding nodes
// never calls the snarl callbacks for that root - only the chain callbacks
// for the chains directly inside it.
type Finder interface {
	TraverseDecomposition(beginChain, endChain, beginSnarl, endSnarl func(handle.Handle))
}

// MultiRootFinder is an optional capability a Finder can implement: one
// whose walk splits into independent pieces - one per weakly connected
// component of the backing graph, say - that touch disjoint parts of it.
// [FindSnarlsParallel] runs each root concurrently instead of falling back
// to the serial path.
type MultiRootFinder interface {
	Finder
	Roots() []Finder
}

// FindSnarls drives f's decomposition over backing into a freshly built and
// finished Manager.
func FindSnarls(f Finder, backing handle.Graph) (*manager.Manager, error) {
	start := time.Now()
	m := manager.New()
	if err := driveInto(m, f, backing); err != nil {
		observability.Finder().OnDriveComplete(context.Background(), 0, time.Since(start), err)
		return nil, err
	}
	if err := m.Finish(); err != nil {
		observability.Finder().OnDriveComplete(context.Background(), m.NumSnarls(), time.Since(start), err)
		return nil, err
	}
	observability.Finder().OnDriveComplete(context.Background(), m.NumSnarls(), time.Since(start), nil)
	return m, nil
}

// FindSnarlsParallel drives f the same way FindSnarls does, but - if f
// implements [MultiRootFinder] and reports more than one root - walks each
// root concurrently in its own goroutine and merges the resulting snarls
// into one Manager before finishing it. It falls back to the serial path
// for a single-root or non-multi-root finder, and for ctx already
// canceled.
func FindSnarlsParallel(ctx context.Context, f Finder, backing handle.Graph) (*manager.Manager, error) {
	multi, ok := f.(MultiRootFinder)
	if !ok || ctx.Err() != nil {
		return FindSnarls(f, backing)
	}
	roots := multi.Roots()
	if len(roots) <= 1 {
		return FindSnarls(f, backing)
	}

	start := time.Now()
	subManagers := make([]*manager.Manager, len(roots))
	errs := make([]error, len(roots))
	var wg sync.WaitGroup
	for i, root := range roots {
		wg.Add(1)
		go func(i int, root Finder) {
			defer wg.Done()
			if ctx.Err() != nil {
				errs[i] = ctx.Err()
				return
			}
			sub := manager.New()
			errs[i] = driveInto(sub, root, backing)
			subManagers[i] = sub
		}(i, root)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			observability.Finder().OnDriveComplete(ctx, 0, time.Since(start), err)
			return nil, err
		}
	}

	combined := manager.New()
	for _, sub := range subManagers {
		sub.ForEachSnarlUnindexed(func(rec *manager.Record) {
			combined.AddSnarl(rec.Snarl)
		})
	}
	if err := combined.Finish(); err != nil {
		observability.Finder().OnDriveComplete(ctx, combined.NumSnarls(), time.Since(start), err)
		return nil, err
	}
	observability.Finder().OnDriveComplete(ctx, combined.NumSnarls(), time.Since(start), nil)
	return combined, nil
}
