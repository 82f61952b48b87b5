// Package graph implements the authored script model: node/edge indexing,
// the JSON interchange codec, and static validation against the catalog.
package graph

import (
	"fmt"

	"github.com/nholm/graphquest/catalog"
	"github.com/nholm/graphquest/types"
)

// Index provides O(1) node and edge lookups over an immutable graph.
// Execution and data resolution both go through it.
type Index struct {
	Graph *types.Graph

	nodes map[string]*types.Node
	out   map[string]map[string][]types.Edge // node id → source port → edges, in authored order
	in    map[string]map[string][]types.Edge // node id → dest port → edges
}

// NewIndex builds the lookup tables for a graph.
func NewIndex(g *types.Graph) *Index {
	ix := &Index{
		Graph: g,
		nodes: map[string]*types.Node{},
		out:   map[string]map[string][]types.Edge{},
		in:    map[string]map[string][]types.Edge{},
	}
	for i := range g.Nodes {
		n := &g.Nodes[i]
		ix.nodes[n.ID] = n
	}
	for _, e := range g.Edges {
		if ix.out[e.From] == nil {
			ix.out[e.From] = map[string][]types.Edge{}
		}
		ix.out[e.From][e.FromPort] = append(ix.out[e.From][e.FromPort], e)
		if ix.in[e.To] == nil {
			ix.in[e.To] = map[string][]types.Edge{}
		}
		ix.in[e.To][e.ToPort] = append(ix.in[e.To][e.ToPort], e)
	}
	return ix
}

// Node returns the node with the given id.
func (ix *Index) Node(id string) (*types.Node, bool) {
	n, ok := ix.nodes[id]
	return n, ok
}

// From returns the edges leaving the named output port, in authored order.
func (ix *Index) From(nodeID, port string) []types.Edge {
	return ix.out[nodeID][port]
}

// Into returns the edge feeding the named input port. Data inputs accept at
// most one incoming edge; extras are flagged by validation and the first
// authored edge wins here.
func (ix *Index) Into(nodeID, port string) (types.Edge, bool) {
	edges := ix.in[nodeID][port]
	if len(edges) == 0 {
		return types.Edge{}, false
	}
	return edges[0], true
}

// Check verifies the structural integrity of a graph against the catalog:
// known kinds, existing edge endpoints, declared ports, matching channel
// kinds. It is the defensive subset of Validate that the engine re-runs
// before accepting a graph for play.
func Check(g *types.Graph, cat *catalog.Catalog) []string {
	var errs []string

	seen := map[string]bool{}
	for _, n := range g.Nodes {
		if seen[n.ID] {
			errs = append(errs, fmt.Sprintf("duplicate node id %q", n.ID))
		}
		seen[n.ID] = true
		if _, ok := cat.Lookup(n.Kind); !ok {
			errs = append(errs, fmt.Sprintf("node %q has unknown kind %q", n.ID, n.Kind))
		}
	}

	ix := NewIndex(g)
	for _, e := range g.Edges {
		src, okSrc := ix.Node(e.From)
		if !okSrc {
			errs = append(errs, fmt.Sprintf("edge references missing node %q", e.From))
		}
		dst, okDst := ix.Node(e.To)
		if !okDst {
			errs = append(errs, fmt.Sprintf("edge references missing node %q", e.To))
		}
		if !okSrc || !okDst {
			continue
		}

		srcDef, ok := cat.Lookup(src.Kind)
		if !ok {
			continue
		}
		dstDef, ok := cat.Lookup(dst.Kind)
		if !ok {
			continue
		}

		srcPort, ok := catalog.FindOutput(srcDef, e.FromPort)
		if !ok {
			errs = append(errs, fmt.Sprintf(
				"edge %s.%s -> %s.%s: kind %q declares no output port %q",
				e.From, e.FromPort, e.To, e.ToPort, src.Kind, e.FromPort))
			continue
		}
		dstPort, ok := catalog.FindInput(dstDef, e.ToPort)
		if !ok {
			errs = append(errs, fmt.Sprintf(
				"edge %s.%s -> %s.%s: kind %q declares no input port %q",
				e.From, e.FromPort, e.To, e.ToPort, dst.Kind, e.ToPort))
			continue
		}
		if srcPort.Channel != dstPort.Channel {
			errs = append(errs, fmt.Sprintf(
				"edge %s.%s -> %s.%s connects %s port to %s port",
				e.From, e.FromPort, e.To, e.ToPort, srcPort.Channel, dstPort.Channel))
		}
	}

	return errs
}
