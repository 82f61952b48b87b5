package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/nholm/graphquest/types"
)

// rawEntity holds a declared entity table before compilation.
type rawEntity struct {
	id       string
	category string
	table    *lua.LTable
}

// rawGraph holds a declared graph table before compilation.
type rawGraph struct {
	owner   string
	ownerID string
	table   *lua.LTable
}

// compile converts the collected Lua tables into a Bundle.
func compile(coll *collector) (*Bundle, error) {
	b := &Bundle{}

	if coll.world != nil {
		b.Title = getString(coll.world, "title")
		b.StartRoom = getString(coll.world, "start_room")
	}

	seen := map[string]bool{}
	for _, raw := range coll.entities {
		if seen[raw.id] {
			return nil, fmt.Errorf("entity %q declared twice", raw.id)
		}
		seen[raw.id] = true
		props, _ := toGoValue(raw.table).(map[string]any)
		b.Entities = append(b.Entities, Entity{
			ID:       raw.id,
			Category: raw.category,
			Props:    props,
		})
	}

	for _, raw := range coll.graphs {
		g, err := compileGraph(raw)
		if err != nil {
			return nil, err
		}
		b.Graphs = append(b.Graphs, g)
	}
	return b, nil
}

func compileGraph(raw rawGraph) (*types.Graph, error) {
	g := &types.Graph{Owner: raw.owner, OwnerID: raw.ownerID}

	nodes := getTable(raw.table, "nodes")
	if nodes != nil {
		for i := 1; i <= nodes.MaxN(); i++ {
			tbl, ok := nodes.RawGetInt(i).(*lua.LTable)
			if !ok {
				return nil, fmt.Errorf("graph %s/%s: node %d is not a table", raw.owner, raw.ownerID, i)
			}
			n := types.Node{
				ID:      getString(tbl, "id"),
				Kind:    getString(tbl, "kind"),
				Comment: getString(tbl, "comment"),
			}
			if n.ID == "" || n.Kind == "" {
				return nil, fmt.Errorf("graph %s/%s: node %d needs id and kind", raw.owner, raw.ownerID, i)
			}
			if props := getTable(tbl, "props"); props != nil {
				n.Props, _ = toGoValue(props).(map[string]any)
			}
			g.Nodes = append(g.Nodes, n)
		}
	}

	edges := getTable(raw.table, "edges")
	if edges != nil {
		for i := 1; i <= edges.MaxN(); i++ {
			tbl, ok := edges.RawGetInt(i).(*lua.LTable)
			if !ok {
				return nil, fmt.Errorf("graph %s/%s: edge %d is not a table", raw.owner, raw.ownerID, i)
			}
			e := types.Edge{
				From:     getString(tbl, "from"),
				FromPort: getString(tbl, "from_port"),
				To:       getString(tbl, "to"),
				ToPort:   getString(tbl, "to_port"),
			}
			// Positional form: { "from", "fromPort", "to", "toPort" }.
			if e.From == "" && tbl.MaxN() == 4 {
				e.From = lua.LVAsString(tbl.RawGetInt(1))
				e.FromPort = lua.LVAsString(tbl.RawGetInt(2))
				e.To = lua.LVAsString(tbl.RawGetInt(3))
				e.ToPort = lua.LVAsString(tbl.RawGetInt(4))
			}
			if e.From == "" || e.FromPort == "" || e.To == "" || e.ToPort == "" {
				return nil, fmt.Errorf("graph %s/%s: edge %d is incomplete", raw.owner, raw.ownerID, i)
			}
			g.Edges = append(g.Edges, e)
		}
	}

	return g, nil
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}

// toGoValue converts a Lua value to a Go value recursively. Whole numbers
// become int, sequential tables become slices, keyed tables become maps.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case lua.LString:
		return string(val)
	case *lua.LNilType:
		return nil
	case *lua.LTable:
		if maxN := val.MaxN(); maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}
