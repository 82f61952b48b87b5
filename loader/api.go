package loader

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the Lua authoring constructors as globals.
//
//	World { title = "...", start_room = "cell" }
//	Room "cell" { name = "Prison Cell" }
//	Object "key" { location = "cell" }
//	Graph("room", "cell", {
//	    nodes = {
//	        Node("enter", "OnEnterRoom"),
//	        Node("msg", "ShowMessage", { Message = "You wake up." }),
//	    },
//	    edges = { Wire("enter", "out", "msg", "in") },
//	})
func registerAPI(L *lua.LState, coll *collector) {
	// World { ... }
	L.SetGlobal("World", L.NewFunction(func(L *lua.LState) int {
		coll.world = L.CheckTable(1)
		return 0
	}))

	// Curried entity constructors: Room("id") returns a function taking the
	// property table, giving the Room "id" { ... } form.
	for _, cat := range []string{"room", "door", "npc", "object", "quest"} {
		category := cat
		name := strings.ToUpper(category[:1]) + category[1:]
		if category == "npc" {
			name = "NPC"
		}
		L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
			id := L.CheckString(1)
			L.Push(L.NewFunction(func(L *lua.LState) int {
				tbl := L.CheckTable(1)
				coll.entities = append(coll.entities, rawEntity{id: id, category: category, table: tbl})
				return 0
			}))
			return 1
		}))
	}

	// Graph("owner", "ownerID", { nodes = {...}, edges = {...} })
	L.SetGlobal("Graph", L.NewFunction(func(L *lua.LState) int {
		owner := L.CheckString(1)
		ownerID := L.CheckString(2)
		tbl := L.CheckTable(3)
		coll.graphs = append(coll.graphs, rawGraph{owner: owner, ownerID: ownerID, table: tbl})
		return 0
	}))

	// Node("id", "Kind", { props }); props optional.
	L.SetGlobal("Node", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		kind := L.CheckString(2)
		tbl := L.NewTable()
		tbl.RawSetString("id", lua.LString(id))
		tbl.RawSetString("kind", lua.LString(kind))
		if props := L.OptTable(3, nil); props != nil {
			tbl.RawSetString("props", props)
		}
		L.Push(tbl)
		return 1
	}))

	// Wire("from", "fromPort", "to", "toPort")
	L.SetGlobal("Wire", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("from", lua.LString(L.CheckString(1)))
		tbl.RawSetString("from_port", lua.LString(L.CheckString(2)))
		tbl.RawSetString("to", lua.LString(L.CheckString(3)))
		tbl.RawSetString("to_port", lua.LString(L.CheckString(4)))
		L.Push(tbl)
		return 1
	}))
}
