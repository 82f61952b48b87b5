package save

import (
	"encoding/json"
	"testing"

	"github.com/nholm/graphquest/catalog"
	"github.com/nholm/graphquest/engine"
	"github.com/nholm/graphquest/engine/state"
	"github.com/nholm/graphquest/peripheral"
	"github.com/nholm/graphquest/types"
)

func testEngine(seed int64) *engine.Engine {
	s := state.NewStore()
	s.AddEntity("cell", "room")
	s.AddEntity("hall", "room")
	s.AddEntity("key", "object")
	s.Player.Location = "cell"
	return engine.New(engine.Config{
		Features: map[string]bool{"combat": true, "trade": true, "needs": true, "dialogue": true},
		Seed:     seed,
	}, catalog.New(), s, peripheral.Basic(s))
}

func TestRoundTrip(t *testing.T) {
	eng := testEngine(42)
	s := eng.Store()

	s.Player.Location = "hall"
	s.GiveItem("key")
	s.Player.Gold = 17
	s.SetStat("hp", 64)
	s.SetFlag("door_open", true)
	s.SetCounter("visits", 3)
	s.SetProp("cell", "searched", true)
	s.Turn = 7
	eng.RNG().Intn(6)
	eng.RNG().Intn(6)

	data, err := Save(eng, "Dungeon Break")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	sd, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sd.Game != "Dungeon Break" || sd.Version != formatVersion {
		t.Fatalf("header = %q v%d", sd.Game, sd.Version)
	}

	eng2 := testEngine(1)
	Apply(eng2, sd)
	s2 := eng2.Store()

	if s2.Player.Location != "hall" {
		t.Errorf("location = %q", s2.Player.Location)
	}
	if len(s2.Player.Inventory) != 1 || s2.Player.Inventory[0] != "key" {
		t.Errorf("inventory = %v", s2.Player.Inventory)
	}
	if s2.Player.Gold != 17 || s2.Stat("hp") != 64 {
		t.Errorf("gold=%d hp=%d", s2.Player.Gold, s2.Stat("hp"))
	}
	if !s2.Flag("door_open") || s2.Counter("visits") != 3 {
		t.Errorf("flags=%v counters=%v", s2.Flags, s2.Counters)
	}
	if s2.Turn != 7 {
		t.Errorf("turn = %d", s2.Turn)
	}
	if v, ok := s2.Prop("cell", "searched"); !ok || v != true {
		t.Errorf("prop = %v %v", v, ok)
	}
	// Entity registrations come from the bundle, not the save.
	if !s2.Exists("key") {
		t.Error("restore must not clobber the entity registry")
	}
}

func TestRestoreReplaysRNG(t *testing.T) {
	eng := testEngine(42)
	eng.RNG().Intn(4)
	eng.RNG().Intn(4)
	want := []int{eng.RNG().Intn(4), eng.RNG().Intn(4), eng.RNG().Intn(4)}

	eng2 := testEngine(42)
	eng2.RNG().Intn(4)
	eng2.RNG().Intn(4)
	data, err := Save(eng2, "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	sd, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	eng3 := testEngine(1)
	Apply(eng3, sd)
	if eng3.RNG().Seed() != 42 || eng3.RNG().Position() != 2 {
		t.Fatalf("rng seed=%d pos=%d", eng3.RNG().Seed(), eng3.RNG().Position())
	}
	for i, w := range want {
		if got := eng3.RNG().Intn(4); got != w {
			t.Fatalf("draw %d after restore: %d != %d", i, got, w)
		}
	}
}

func TestRestorePreservesOnceGates(t *testing.T) {
	eng := testEngine(42)
	if err := eng.LoadGraph(&types.Graph{
		Owner: "room", OwnerID: "cell",
		Nodes: []types.Node{
			{ID: "t", Kind: "OnEnterRoom"},
			{ID: "o", Kind: "Once"},
			{ID: "a", Kind: "ShowMessage", Props: map[string]any{"Message": "first"}},
			{ID: "b", Kind: "ShowMessage", Props: map[string]any{"Message": "again"}},
		},
		Edges: []types.Edge{
			{From: "t", FromPort: "out", To: "o", ToPort: "in"},
			{From: "o", FromPort: "first", To: "a", ToPort: "in"},
			{From: "o", FromPort: "again", To: "b", ToPort: "in"},
		},
	}); err != nil {
		t.Fatalf("LoadGraph: %v", err)
	}

	eng.TriggerEvent("room", "cell", "OnEnterRoom", nil)
	data, err := Save(eng, "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	sd, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sd.Once) != 1 {
		t.Fatalf("once = %v", sd.Once)
	}

	eng2 := testEngine(1)
	Apply(eng2, sd)
	keys := eng2.FiredOnce()
	if len(keys) != 1 || keys[0] != sd.Once[0] {
		t.Fatalf("restored once = %v", keys)
	}
}

func TestLoadNormalizesNilMaps(t *testing.T) {
	sd, err := Load([]byte(`{"version": 1, "turn": 2}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sd.Flags == nil || sd.Counters == nil || sd.Entities == nil {
		t.Fatal("maps must not be nil after load")
	}
	if sd.Player.Inventory == nil || sd.Player.Stats == nil || sd.Player.Needs == nil {
		t.Fatal("player maps must not be nil after load")
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	if _, err := Load([]byte("{nope")); err == nil {
		t.Fatal("malformed json should error")
	}
	if _, err := Load([]byte(`{"version": 99}`)); err == nil {
		t.Fatal("unknown version should error")
	}
}

func TestSaveIsStableJSON(t *testing.T) {
	eng := testEngine(42)
	data, err := Save(eng, "x")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("save output is not valid JSON: %v", err)
	}
	for _, key := range []string{"version", "game", "turn", "player", "rng_seed", "rng_position"} {
		if _, ok := m[key]; !ok {
			t.Errorf("save output missing %q", key)
		}
	}
}
