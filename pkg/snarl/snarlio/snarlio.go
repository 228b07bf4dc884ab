// Package snarlio provides the serialization primitives for a
// [pkg/snarl/manager.Manager]: a preorder stream of the snarls it owns,
// written as one JSON object per line (JSONL) via encoding/json.NewEncoder.
//
// The original SnarlManager::serialize walks its snarl tree with an
// explicit stack but always re-emits the stack's current root rather than
// the snarl it just popped - every snarl after the first per top-level
// tree is written as a duplicate of that tree's root instead of itself.
// WriteSnarls does not repeat that: it writes the preorder node it is
// currently visiting.
package snarlio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tgorski/snarltree/pkg/snarl"
	"github.com/tgorski/snarltree/pkg/snarl/manager"
)

// wireVisit is the JSON-facing shape of a [snarl.Visit]: either a node
// visit (NodeID set) or a snarl visit (Inner set), never both.
type wireVisit struct {
	NodeID   uint64     `json:"node_id,omitempty"`
	Inner    *wireBound `json:"inner,omitempty"`
	Backward bool       `json:"backward,omitempty"`
}

type wireBound struct {
	Start wireVisit `json:"start"`
	End   wireVisit `json:"end"`
}

// Input is the decoded shape of one serialized snarl: everything
// [manager.Manager.AddSnarl] needs to re-own it, plus its resolved
// classification so a reader can skip re-deriving it from the backing
// graph.
type Input struct {
	Start, End snarl.Visit
	Parent     *snarl.Bound
	Type       snarl.Kind

	StartSelfReachable      bool
	EndSelfReachable        bool
	StartEndReachable       bool
	DirectedAcyclicNetGraph bool
}

type wireSnarl struct {
	Start  wireVisit  `json:"start"`
	End    wireVisit  `json:"end"`
	Parent *wireBound `json:"parent,omitempty"`
	Type   snarl.Kind `json:"type"`

	StartSelfReachable      bool `json:"start_self_reachable,omitempty"`
	EndSelfReachable        bool `json:"end_self_reachable,omitempty"`
	StartEndReachable       bool `json:"start_end_reachable,omitempty"`
	DirectedAcyclicNetGraph bool `json:"directed_acyclic_net_graph,omitempty"`
}

func toWireVisit(v snarl.Visit) wireVisit {
	w := wireVisit{NodeID: v.NodeID, Backward: v.Backward}
	if v.HasSnarl() {
		w.Inner = &wireBound{Start: toWireVisit(v.Inner.Start), End: toWireVisit(v.Inner.End)}
	}
	return w
}

func fromWireVisit(w wireVisit) snarl.Visit {
	if w.Inner == nil {
		return snarl.NodeVisit(w.NodeID, w.Backward)
	}
	return snarl.SnarlVisit(fromWireVisit(w.Inner.Start), fromWireVisit(w.Inner.End), w.Backward)
}

func toWireSnarl(rec *manager.Record) wireSnarl {
	w := wireSnarl{
		Start:                   toWireVisit(rec.Start),
		End:                     toWireVisit(rec.End),
		Type:                    rec.Type,
		StartSelfReachable:      rec.StartSelfReachable,
		EndSelfReachable:        rec.EndSelfReachable,
		StartEndReachable:       rec.StartEndReachable,
		DirectedAcyclicNetGraph: rec.DirectedAcyclicNetGraph,
	}
	if rec.Parent != nil {
		w.Parent = &wireBound{Start: toWireVisit(rec.Parent.Start), End: toWireVisit(rec.Parent.End)}
	}
	return w
}

// WriteSnarls writes every snarl m owns to w, one JSON object per line, in
// preorder: a parent before any of its descendants. Each snarl is written
// exactly once, carrying its own resolved parent boundary so ReadSnarls can
// rebuild the same tree without re-running a finder.
func WriteSnarls(w io.Writer, m *manager.Manager) error {
	enc := json.NewEncoder(w)
	var encErr error
	m.ForEachSnarlPreorder(func(rec *manager.Record) {
		if encErr != nil {
			return
		}
		if err := enc.Encode(toWireSnarl(rec)); err != nil {
			encErr = fmt.Errorf("encode snarl %v: %w", rec.Start, err)
		}
	})
	return encErr
}

// ReadSnarls decodes a preorder snarl stream written by WriteSnarls. The
// caller re-owns each Input by calling [manager.Manager.AddSnarl] on a
// fresh manager, in the order returned, followed by one [manager.
// Manager.Finish] call.
func ReadSnarls(r io.Reader) ([]Input, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var inputs []Input
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var w wireSnarl
		if err := json.Unmarshal(line, &w); err != nil {
			return nil, fmt.Errorf("decode snarl: %w", err)
		}
		in := Input{
			Start:                   fromWireVisit(w.Start),
			End:                     fromWireVisit(w.End),
			Type:                    w.Type,
			StartSelfReachable:      w.StartSelfReachable,
			EndSelfReachable:        w.EndSelfReachable,
			StartEndReachable:       w.StartEndReachable,
			DirectedAcyclicNetGraph: w.DirectedAcyclicNetGraph,
		}
		if w.Parent != nil {
			in.Parent = &snarl.Bound{Start: fromWireVisit(w.Parent.Start), End: fromWireVisit(w.Parent.End)}
		}
		inputs = append(inputs, in)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan snarl stream: %w", err)
	}
	return inputs, nil
}

// ToSnarl converts an [Input] back into the [snarl.Snarl] value
// [manager.Manager.AddSnarl] expects.
func (in Input) ToSnarl() snarl.Snarl {
	return snarl.Snarl{
		Start:                   in.Start,
		End:                     in.End,
		Parent:                  in.Parent,
		Type:                    in.Type,
		StartSelfReachable:      in.StartSelfReachable,
		EndSelfReachable:        in.EndSelfReachable,
		StartEndReachable:       in.StartEndReachable,
		DirectedAcyclicNetGraph: in.DirectedAcyclicNetGraph,
	}
}
