package manager

import "github.com/tgorski/snarltree/pkg/snarl"

// Record is the manager's owned copy of one snarl: the boundary and
// classification data in [snarl.Snarl], plus the tree and chain position the
// manager computes during [Manager.Finish].
//
// A Record's embedded Snarl satisfies both [snarl.Snarlish] and
// netgraph.ConnectedSnarl by promotion, so *Record can stand in for *Snarl
// anywhere a [snarl.Chain] or net graph is built.
type Record struct {
	snarl.Snarl

	index int

	parent   *Record
	children []*Record

	parentChain      *snarl.Chain[*Record]
	parentChainIndex int
	childChains      []*snarl.Chain[*Record]
}

// Index returns the record's position in the manager's master list, stable
// for the lifetime of the manager.
func (r *Record) Index() int { return r.index }
