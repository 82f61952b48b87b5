package graph

import (
	"encoding/json"
	"fmt"

	"github.com/nholm/graphquest/types"
)

// Interchange schema: an ordered node list and an edge list of four string
// fields. Canvas positions are accepted for editor round-trips but carry no
// meaning here.

type fileGraph struct {
	Owner   string     `json:"owner"`
	OwnerID string     `json:"owner_id"`
	Nodes   []fileNode `json:"nodes"`
	Edges   []fileEdge `json:"edges"`
}

type fileNode struct {
	ID      string         `json:"id"`
	Kind    string         `json:"kind"`
	Props   map[string]any `json:"props,omitempty"`
	Comment string         `json:"comment,omitempty"`
	X       float64        `json:"x,omitempty"`
	Y       float64        `json:"y,omitempty"`
}

type fileEdge struct {
	From     string `json:"from"`
	FromPort string `json:"from_port"`
	To       string `json:"to"`
	ToPort   string `json:"to_port"`
}

// Decode parses a serialized graph. Structural validity against the catalog
// is the validator's job; Decode only rejects malformed documents.
func Decode(data []byte) (*types.Graph, error) {
	var fg fileGraph
	if err := json.Unmarshal(data, &fg); err != nil {
		return nil, fmt.Errorf("decoding graph: %w", err)
	}
	if fg.Owner == "" {
		return nil, fmt.Errorf("decoding graph: missing owner")
	}

	g := &types.Graph{Owner: fg.Owner, OwnerID: fg.OwnerID}
	for _, fn := range fg.Nodes {
		if fn.ID == "" || fn.Kind == "" {
			return nil, fmt.Errorf("decoding graph: node missing id or kind")
		}
		g.Nodes = append(g.Nodes, types.Node{
			ID:      fn.ID,
			Kind:    fn.Kind,
			Props:   normalizeProps(fn.Props),
			Comment: fn.Comment,
		})
	}
	for _, fe := range fg.Edges {
		g.Edges = append(g.Edges, types.Edge{
			From: fe.From, FromPort: fe.FromPort,
			To: fe.To, ToPort: fe.ToPort,
		})
	}
	return g, nil
}

// Encode serializes a graph to the interchange form.
func Encode(g *types.Graph) ([]byte, error) {
	fg := fileGraph{Owner: g.Owner, OwnerID: g.OwnerID}
	for _, n := range g.Nodes {
		fg.Nodes = append(fg.Nodes, fileNode{
			ID: n.ID, Kind: n.Kind, Props: n.Props, Comment: n.Comment,
		})
	}
	for _, e := range g.Edges {
		fg.Edges = append(fg.Edges, fileEdge{
			From: e.From, FromPort: e.FromPort, To: e.To, ToPort: e.ToPort,
		})
	}
	return json.MarshalIndent(fg, "", "  ")
}

// normalizeProps converts whole-valued JSON numbers to int, matching the
// literal types the Lua loader produces.
func normalizeProps(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		if f, ok := v.(float64); ok && f == float64(int(f)) {
			out[k] = int(f)
			continue
		}
		out[k] = v
	}
	return out
}
