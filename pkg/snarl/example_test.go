package snarl_test

import (
	"fmt"

	"github.com/tgorski/snarltree/pkg/snarl"
)

func ExampleChainBegin() {
	first := &snarl.Snarl{Start: snarl.NodeVisit(1, false), End: snarl.NodeVisit(5, false)}
	second := &snarl.Snarl{Start: snarl.NodeVisit(5, false), End: snarl.NodeVisit(9, false)}
	chain := &snarl.Chain[*snarl.Snarl]{Entries: []snarl.Entry[*snarl.Snarl]{
		{Ref: first},
		{Ref: second},
	}}

	for it := snarl.ChainBegin(chain); !it.AtEnd(); it.Next() {
		ref, backward, _ := it.Value()
		start, end := ref.Bounds()
		fmt.Printf("%d -> %d (backward=%v)\n", start.NodeID, end.NodeID, backward)
	}
	// Output:
	// 1 -> 5 (backward=false)
	// 5 -> 9 (backward=false)
}

func ExampleChainRCBegin() {
	first := &snarl.Snarl{Start: snarl.NodeVisit(1, false), End: snarl.NodeVisit(5, false)}
	second := &snarl.Snarl{Start: snarl.NodeVisit(5, false), End: snarl.NodeVisit(9, false)}
	chain := &snarl.Chain[*snarl.Snarl]{Entries: []snarl.Entry[*snarl.Snarl]{
		{Ref: first},
		{Ref: second},
	}}

	for it := snarl.ChainRCBegin(chain); !it.AtEnd(); it.Next() {
		ref, backward, _ := it.Value()
		start, end := ref.Bounds()
		fmt.Printf("%d -> %d (backward=%v)\n", start.NodeID, end.NodeID, backward)
	}
	// Output:
	// 5 -> 9 (backward=true)
	// 1 -> 5 (backward=true)
}
