package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tgorski/snarltree/pkg/handle"
	"github.com/tgorski/snarltree/pkg/snarl/manager"
)

// inspectReport is the JSON shape printed by inspect for one endpoint.
type inspectReport struct {
	Node          uint64 `json:"node"`
	FacingReverse bool   `json:"facing_reverse"`
	IntoSnarl     string `json:"into_snarl,omitempty"`
	Parent        string `json:"parent,omitempty"`
	ChainRank     int    `json:"chain_rank,omitempty"`
	ChainBackward bool   `json:"chain_backward,omitempty"`
	InChain       bool   `json:"in_nontrivial_chain"`
}

func newInspectCmd() *cobra.Command {
	var node uint64
	var reverse bool

	cmd := &cobra.Command{
		Use:   "inspect <graph.json>",
		Short: "Report which snarl a node's endpoint reads into",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			path := args[0]
			g, err := handle.ReadGraphFile(path)
			if err != nil {
				return fmt.Errorf("read graph: %w", err)
			}
			if !g.HasNode(node) {
				return fmt.Errorf("inspect: node %d not found in %s", node, path)
			}

			m, err := decompose(g)
			if err != nil {
				return fmt.Errorf("decompose: %w", err)
			}
			logger.Debugf("inspecting node %d (reverse=%v) against %d snarls", node, reverse, m.NumSnarls())

			report := inspect(m, node, reverse)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().Uint64Var(&node, "node", 0, "node ID to inspect")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "inspect the node's reverse-facing side")
	cmd.MarkFlagRequired("node")

	return cmd
}

func inspect(m *manager.Manager, node uint64, reverse bool) inspectReport {
	report := inspectReport{Node: node, FacingReverse: reverse}

	rec := m.IntoWhichSnarl(node, reverse)
	if rec == nil {
		return report
	}
	report.IntoSnarl = fmt.Sprintf("%v..%v", rec.Start, rec.End)

	if parent := m.ParentOf(rec); parent != nil {
		report.Parent = fmt.Sprintf("%v..%v", parent.Start, parent.End)
	}
	report.ChainRank = m.ChainRankOf(rec)
	report.ChainBackward = m.ChainOrientationOf(rec)
	report.InChain = m.InNontrivialChain(rec)
	return report
}
