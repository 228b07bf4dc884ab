package netgraph

import (
	"github.com/tgorski/snarltree/pkg/errors"
	"github.com/tgorski/snarltree/pkg/handle"
)

func netGraphErrUnsupported(op string) error {
	return errors.New(errors.ErrCodeUnsupported, "%s: not supported by structural net-graph view", op)
}

// HasNode defers to the backing graph: the net graph never hides a real
// node's existence, only which edges it reports for it.
func (ng *Graph) HasNode(id uint64) bool { return ng.backing.HasNode(id) }

// GetHandle defers to the backing graph.
func (ng *Graph) GetHandle(id uint64, reverse bool) handle.Handle {
	return ng.backing.GetHandle(id, reverse)
}

// GetID defers to the backing graph.
func (ng *Graph) GetID(h handle.Handle) uint64 { return ng.backing.GetID(h) }

// GetIsReverse defers to the backing graph.
func (ng *Graph) GetIsReverse(h handle.Handle) bool { return ng.backing.GetIsReverse(h) }

// Flip defers to the backing graph.
func (ng *Graph) Flip(h handle.Handle) handle.Handle { return ng.backing.Flip(h) }

// EdgeHandle defers to the backing graph's canonicalization.
func (ng *Graph) EdgeHandle(from, to handle.Handle) handle.Edge {
	return ng.backing.EdgeHandle(from, to)
}

// GetNodeCount enumerates the whole structural view to answer - acceptable
// for the minimal snarls net graphs are built over, per spec.
func (ng *Graph) GetNodeCount() int {
	count := 0
	ng.EachHandle(func(handle.Handle) bool {
		count++
		return true
	})
	return count
}

// MinNodeID enumerates the whole structural view to answer.
func (ng *Graph) MinNodeID() uint64 {
	var winner uint64
	first := true
	ng.EachHandle(func(h handle.Handle) bool {
		id := ng.backing.GetID(h)
		if first || id < winner {
			winner = id
			first = false
		}
		return true
	})
	return winner
}

// MaxNodeID enumerates the whole structural view to answer.
func (ng *Graph) MaxNodeID() uint64 {
	var winner uint64
	ng.EachHandle(func(h handle.Handle) bool {
		if id := ng.backing.GetID(h); id > winner {
			winner = id
		}
		return true
	})
	return winner
}

// GetLength always fails: the net graph is a purely structural view and
// does not expose sequence data.
func (ng *Graph) GetLength(handle.Handle) (int, error) {
	return 0, netGraphErrUnsupported("GetLength")
}

// GetSequence always fails: the net graph is a purely structural view and
// does not expose sequence data.
func (ng *Graph) GetSequence(handle.Handle) (string, error) {
	return "", netGraphErrUnsupported("GetSequence")
}
