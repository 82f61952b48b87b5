// Package loader reads authored game content, Lua scripts and JSON graph
// files, into a validated Bundle. The Lua VM is discarded after loading;
// nothing authored runs at play time except through the engine.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nholm/graphquest/catalog"
	"github.com/nholm/graphquest/engine/state"
	"github.com/nholm/graphquest/graph"
	"github.com/nholm/graphquest/types"
)

// Entity is one declared world entity with its initial properties.
type Entity struct {
	ID       string
	Category string // room, door, npc, object, quest
	Props    map[string]any
}

// Bundle is the compiled, validated content of one game directory.
type Bundle struct {
	Title     string
	StartRoom string
	Entities  []Entity
	Graphs    []*types.Graph
}

// collector accumulates Lua definitions during file execution.
type collector struct {
	world    *lua.LTable
	entities []rawEntity
	graphs   []rawGraph
}

// Load reads every .lua and .json file from dir, compiles the declarations,
// and validates each graph against the catalog. Any invalid graph fails the
// whole load: content errors are authoring-time errors.
func Load(dir string, cat *catalog.Catalog) (*Bundle, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading game directory %s: %w", dir, err)
	}

	var luaFiles, jsonFiles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch {
		case strings.HasSuffix(e.Name(), ".lua"):
			luaFiles = append(luaFiles, e.Name())
		case strings.HasSuffix(e.Name(), ".json"):
			jsonFiles = append(jsonFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 && len(jsonFiles) == 0 {
		return nil, fmt.Errorf("no .lua or .json files found in %s", dir)
	}
	sort.Strings(luaFiles)
	sort.Strings(jsonFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	b, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling game data: %w", err)
	}

	for _, f := range jsonFiles {
		data, err := os.ReadFile(filepath.Join(dir, f))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		g, err := graph.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", f, err)
		}
		b.Graphs = append(b.Graphs, g)
	}

	if err := validate(b, cat); err != nil {
		return nil, err
	}
	return b, nil
}

// Apply seeds a state store with the bundle's entities and places the
// player in the start room.
func (b *Bundle) Apply(s *state.Store) {
	for _, e := range b.Entities {
		s.AddEntity(e.ID, e.Category)
		for k, v := range e.Props {
			s.SetProp(e.ID, k, v)
		}
	}
	if b.StartRoom != "" {
		s.Player.Location = b.StartRoom
	}
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes file access, code loading, and nondeterminism.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
			tbl.RawSetString("random", lua.LNil)
		}
	}
}
