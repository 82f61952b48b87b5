package graph

import (
	"fmt"
	"strings"

	"github.com/nholm/graphquest/catalog"
	"github.com/nholm/graphquest/types"
)

// Validate runs static analysis over one graph: structural integrity,
// trigger/effect presence, execution-edge reachability from trigger to
// effect, and required-property completeness. Invalid graphs are not
// registered for play; the diagnostics are aimed at the script author.
func Validate(g *types.Graph, cat *catalog.Catalog) types.Report {
	var rep types.Report

	if len(g.Nodes) == 0 {
		return rep
	}

	rep.Errors = Check(g, cat)
	rep.Warnings = warnings(g, cat)

	ix := NewIndex(g)

	// Partition by category. Dialogue nodes with an execution input count as
	// effects: a conversation graph's say/end nodes are its payload.
	var triggers []string
	for _, n := range g.Nodes {
		def, ok := cat.Lookup(n.Kind)
		if !ok {
			continue
		}
		switch def.Category {
		case types.CategoryTrigger:
			triggers = append(triggers, n.ID)
			rep.HasTrigger = true
		case types.CategoryEffect, types.CategoryDialogue:
			rep.HasEffect = true
		}
	}

	rep.Incomplete = incompleteNodes(g, cat, ix)

	if rep.HasTrigger && rep.HasEffect {
		rep.Reachable = anyEffectReachable(ix, cat, triggers)
	}

	rep.Valid = rep.HasTrigger && rep.HasEffect && rep.Reachable &&
		len(rep.Incomplete) == 0 && len(rep.Errors) == 0
	return rep
}

// incompleteNodes collects nodes whose required properties have no present,
// non-blank value in the property bag, no declared default, and no edge
// feeding the same-named data input.
func incompleteNodes(g *types.Graph, cat *catalog.Catalog, ix *Index) []types.Incomplete {
	var out []types.Incomplete
	for _, n := range g.Nodes {
		def, ok := cat.Lookup(n.Kind)
		if !ok {
			continue
		}
		var missing []string
		for _, p := range def.Props {
			if !catalog.RequiresValue(p) {
				continue
			}
			if hasValue(n.Props, p) {
				continue
			}
			if _, ok := ix.Into(n.ID, p.Name); ok {
				continue
			}
			missing = append(missing, p.Name)
		}
		if len(missing) > 0 {
			out = append(out, types.Incomplete{
				NodeID:  n.ID,
				Name:    catalog.DisplayName(def),
				Missing: missing,
			})
		}
	}
	return out
}

func hasValue(props map[string]any, p types.PropDef) bool {
	v, ok := props[p.Name]
	if !ok || v == nil {
		return blankable(p.Default)
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return false
	}
	return true
}

// blankable reports whether a declared default satisfies the requirement.
func blankable(def any) bool {
	if def == nil {
		return false
	}
	if s, ok := def.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// anyEffectReachable runs a depth-first search from each trigger, following
// only edges whose source port is an execution output. Data edges never
// represent control flow, so they are ignored; a visited set bounds the walk
// on cyclic graphs.
func anyEffectReachable(ix *Index, cat *catalog.Catalog, triggers []string) bool {
	for _, id := range triggers {
		visited := map[string]bool{}
		if reaches(ix, cat, id, visited) {
			return true
		}
	}
	return false
}

func reaches(ix *Index, cat *catalog.Catalog, nodeID string, visited map[string]bool) bool {
	if visited[nodeID] {
		return false
	}
	visited[nodeID] = true

	node, ok := ix.Node(nodeID)
	if !ok {
		return false
	}
	def, ok := cat.Lookup(node.Kind)
	if !ok {
		return false
	}
	if def.Category == types.CategoryEffect || def.Category == types.CategoryDialogue {
		return true
	}

	for _, port := range catalog.ExecOutputs(def) {
		for _, e := range ix.From(nodeID, port.Name) {
			if reaches(ix, cat, e.To, visited) {
				return true
			}
		}
	}
	return false
}

// warnings surfaces advisory issues: loosely mismatched data-edge value
// types, multiply-connected data inputs, and non-trigger nodes nothing
// points at.
func warnings(g *types.Graph, cat *catalog.Catalog) []string {
	var warns []string
	ix := NewIndex(g)

	inCount := map[string]map[string]int{}
	for _, e := range g.Edges {
		src, okSrc := ix.Node(e.From)
		dst, okDst := ix.Node(e.To)
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
		srcPort, okSP := catalog.FindOutput(srcDef, e.FromPort)
		dstPort, okDP := catalog.FindInput(dstDef, e.ToPort)
		if !okSP || !okDP {
			continue
		}
		if srcPort.Channel == types.ChannelData && dstPort.Channel == types.ChannelData {
			if !typesCompatible(srcPort.Value, dstPort.Value) {
				warns = append(warns, fmt.Sprintf(
					"edge %s.%s -> %s.%s carries %s into a %s input",
					e.From, e.FromPort, e.To, e.ToPort, srcPort.Value, dstPort.Value))
			}
			if inCount[e.To] == nil {
				inCount[e.To] = map[string]int{}
			}
			inCount[e.To][e.ToPort]++
		}
	}
	for nodeID, ports := range inCount {
		for port, n := range ports {
			if n > 1 {
				warns = append(warns, fmt.Sprintf(
					"data input %s.%s has %d incoming edges; only the first is used",
					nodeID, port, n))
			}
		}
	}

	targeted := map[string]bool{}
	for _, e := range g.Edges {
		targeted[e.To] = true
	}
	for _, n := range g.Nodes {
		def, ok := cat.Lookup(n.Kind)
		if !ok || def.Category == types.CategoryTrigger {
			continue
		}
		if !targeted[n.ID] && len(ix.out[n.ID]) == 0 {
			warns = append(warns, fmt.Sprintf("node %q (%s) is not connected to anything", n.ID, n.Kind))
		}
	}
	return warns
}

// typesCompatible applies the loose coercion rules the engine uses at
// runtime: numbers interconvert, strings accept anything.
func typesCompatible(from, to types.ValueKind) bool {
	if from == to || to == types.KindString {
		return true
	}
	numeric := func(k types.ValueKind) bool {
		return k == types.KindInt || k == types.KindFloat
	}
	return numeric(from) && numeric(to)
}
