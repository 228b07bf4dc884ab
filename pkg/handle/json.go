package handle

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// wireNode and wireEdge are the JSON-facing shapes for [AdjacencyGraph]
// serialization: plain, order-independent lists rather than the adjacency
// maps the graph keeps internally, the same split MarshalGraph/ToDAG uses
// for *dag.DAG.
type wireNode struct {
	ID       uint64 `json:"id"`
	Sequence string `json:"sequence,omitempty"`
}

type wireEdge struct {
	FromID      uint64 `json:"from_id"`
	FromReverse bool   `json:"from_reverse,omitempty"`
	ToID        uint64 `json:"to_id"`
	ToReverse   bool   `json:"to_reverse,omitempty"`
}

type wireGraph struct {
	Nodes []wireNode `json:"nodes"`
	Edges []wireEdge `json:"edges"`
}

// MarshalGraph converts g to JSON bytes. Nodes are emitted in ascending ID
// order for deterministic output.
func MarshalGraph(g *AdjacencyGraph) ([]byte, error) {
	out := toWire(g)
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal graph: %w", err)
	}
	return data, nil
}

// WriteGraph writes g as JSON to w.
func WriteGraph(g *AdjacencyGraph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toWire(g)); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// WriteGraphFile writes g to path as JSON, creating the file with 0644
// permissions.
func WriteGraphFile(g *AdjacencyGraph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraph decodes a JSON graph from r into a fresh [AdjacencyGraph].
func ReadGraph(r io.Reader) (*AdjacencyGraph, error) {
	var data wireGraph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	return fromWire(data)
}

// ReadGraphFile reads a JSON graph from path into a fresh [AdjacencyGraph].
func ReadGraphFile(path string) (*AdjacencyGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

func toWire(g *AdjacencyGraph) wireGraph {
	out := wireGraph{}
	for _, id := range g.NodeIDs() {
		n := g.nodes[id]
		out.Nodes = append(out.Nodes, wireNode{ID: n.ID, Sequence: n.Sequence})
	}

	// Each AddEdge call recorded a forward adjacency entry and its
	// bidirected reciprocal; walking every handle orientation and
	// canonicalizing through EdgeHandle collapses each pair back down to
	// the single Edge AddEdge was originally called with.
	seen := make(map[Edge]bool)
	for _, id := range g.NodeIDs() {
		for _, h := range [2]Handle{{ID: id}, {ID: id, Reverse: true}} {
			g.FollowEdges(h, false, func(next Handle) bool {
				e := g.EdgeHandle(h, next)
				if !seen[e] {
					seen[e] = true
					out.Edges = append(out.Edges, wireEdge{
						FromID: e.From.ID, FromReverse: e.From.Reverse,
						ToID: e.To.ID, ToReverse: e.To.Reverse,
					})
				}
				return true
			})
		}
	}
	return out
}

func fromWire(data wireGraph) (*AdjacencyGraph, error) {
	g := NewAdjacencyGraph()
	for _, n := range data.Nodes {
		if err := g.AddNode(Node{ID: n.ID, Sequence: n.Sequence}); err != nil {
			return nil, fmt.Errorf("add node %d: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		from := Handle{ID: e.FromID, Reverse: e.FromReverse}
		to := Handle{ID: e.ToID, Reverse: e.ToReverse}
		if err := g.AddEdge(from, to); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", from, to, err)
		}
	}
	return g, nil
}
