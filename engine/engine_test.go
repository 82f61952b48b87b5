package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/nholm/graphquest/catalog"
	"github.com/nholm/graphquest/engine/state"
	"github.com/nholm/graphquest/peripheral"
	"github.com/nholm/graphquest/types"
)

func gnode(id, kind string, props map[string]any) types.Node {
	return types.Node{ID: id, Kind: kind, Props: props}
}

func gedge(from, fromPort, to, toPort string) types.Edge {
	return types.Edge{From: from, FromPort: fromPort, To: to, ToPort: toPort}
}

func graphOf(owner, ownerID string, nodes []types.Node, edges []types.Edge) *types.Graph {
	return &types.Graph{Owner: owner, OwnerID: ownerID, Nodes: nodes, Edges: edges}
}

func allFeatures() map[string]bool {
	return map[string]bool{"combat": true, "trade": true, "needs": true, "dialogue": true}
}

// newTestEngine builds an engine over a store seeded with the standard test
// world: two rooms, an object, an NPC, a door, and a quest.
func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	if cfg.Features == nil {
		cfg.Features = allFeatures()
	}
	if cfg.Seed == 0 {
		cfg.Seed = 7
	}
	s := state.NewStore()
	for id, c := range map[string]string{
		"cell": "room", "hall": "room",
		"key": "object", "potion": "object",
		"guard": "npc", "merchant": "npc",
		"gate": "door", "escape": "quest",
	} {
		s.AddEntity(id, c)
	}
	s.Player.Location = "cell"
	return New(cfg, catalog.New(), s, peripheral.Basic(s))
}

func mustLoad(t *testing.T, e *Engine, g *types.Graph) {
	t.Helper()
	if err := e.LoadGraph(g); err != nil {
		t.Fatalf("LoadGraph: %v", err)
	}
}

func TestTriggerFiresEffect(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("room", "cell",
		[]types.Node{
			gnode("t", "OnEnterRoom", nil),
			gnode("m", "ShowMessage", map[string]any{"Message": "You wake up on cold stone."}),
		},
		[]types.Edge{gedge("t", "out", "m", "in")},
	))

	out := e.TriggerEvent("room", "cell", "OnEnterRoom", map[string]any{"Room": "cell"})
	if out.Runs != 1 || out.Completed != 1 {
		t.Fatalf("runs=%d completed=%d", out.Runs, out.Completed)
	}
	if len(out.Messages) != 1 || out.Messages[0] != "You wake up on cold stone." {
		t.Fatalf("messages = %v", out.Messages)
	}

	// Same event for a different room matches nothing.
	out = e.TriggerEvent("room", "hall", "OnEnterRoom", map[string]any{"Room": "hall"})
	if out.Runs != 0 {
		t.Fatalf("scoped graph fired for the wrong owner: %+v", out)
	}
}

func TestGameGraphSeesScopedEvents(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("game", "",
		[]types.Node{
			gnode("t", "OnEnterRoom", nil),
			gnode("m", "ShowMessage", map[string]any{"Message": "somewhere new"}),
		},
		[]types.Edge{gedge("t", "out", "m", "in")},
	))

	out := e.TriggerEvent("room", "hall", "OnEnterRoom", map[string]any{"Room": "hall"})
	if out.Runs != 1 {
		t.Fatalf("game-owned graph should see every room event, got %+v", out)
	}
}

func TestTriggerFilterProps(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("game", "",
		[]types.Node{
			gnode("t", "OnTake", map[string]any{"Object": "key"}),
			gnode("m", "ShowMessage", map[string]any{"Message": "got the key"}),
		},
		[]types.Edge{gedge("t", "out", "m", "in")},
	))

	out := e.TriggerEvent("object", "potion", "OnTake", map[string]any{"Object": "potion"})
	if out.Runs != 0 {
		t.Fatalf("filter should reject mismatched payload, got %+v", out)
	}
	out = e.TriggerEvent("object", "key", "OnTake", map[string]any{"Object": "key"})
	if out.Runs != 1 || len(out.Messages) != 1 {
		t.Fatalf("filter should accept matching payload, got %+v", out)
	}
}

func TestLoadGraphRejectsInvalid(t *testing.T) {
	e := newTestEngine(t, Config{})
	err := e.LoadGraph(graphOf("room", "cell",
		[]types.Node{gnode("t", "OnEnterRoom", nil)}, nil))
	if err == nil {
		t.Fatal("graph without an effect must be rejected")
	}
	ige, ok := err.(*InvalidGraphError)
	if !ok {
		t.Fatalf("error type = %T", err)
	}
	if ige.Report.HasEffect {
		t.Fatalf("report = %+v", ige.Report)
	}
	if len(e.Graphs()) != 0 {
		t.Fatal("invalid graph was registered")
	}
}

func TestBranchFiresExactlyOneSide(t *testing.T) {
	build := func(e *Engine) {
		mustLoad(t, e, graphOf("room", "cell",
			[]types.Node{
				gnode("t", "OnEnterRoom", nil),
				gnode("b", "FlagIsSet", map[string]any{"Flag": "lit"}),
				gnode("yes", "ShowMessage", map[string]any{"Message": "bright"}),
				gnode("no", "ShowMessage", map[string]any{"Message": "dark"}),
			},
			[]types.Edge{
				gedge("t", "out", "b", "in"),
				gedge("b", "yes", "yes", "in"),
				gedge("b", "no", "no", "in"),
			},
		))
	}

	tests := []struct {
		name string
		lit  bool
		want string
	}{
		{"flag set", true, "bright"},
		{"flag clear", false, "dark"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, Config{})
			build(e)
			e.Store().SetFlag("lit", tt.lit)
			out := e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
			if len(out.Messages) != 1 || out.Messages[0] != tt.want {
				t.Fatalf("messages = %v, want exactly [%s]", out.Messages, tt.want)
			}
		})
	}
}

func TestInputResolutionOrder(t *testing.T) {
	t.Run("data edge wins over property", func(t *testing.T) {
		e := newTestEngine(t, Config{})
		mustLoad(t, e, graphOf("room", "cell",
			[]types.Node{
				gnode("t", "OnEnterRoom", nil),
				gnode("c", "StringValue", map[string]any{"Value": "from edge"}),
				gnode("m", "ShowMessage", map[string]any{"Message": "from prop"}),
			},
			[]types.Edge{
				gedge("t", "out", "m", "in"),
				gedge("c", "value", "m", "Message"),
			},
		))
		out := e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
		if len(out.Messages) != 1 || out.Messages[0] != "from edge" {
			t.Fatalf("messages = %v", out.Messages)
		}
	})

	t.Run("property wins over port default", func(t *testing.T) {
		e := newTestEngine(t, Config{})
		// HasGold's Amount defaults to 0; the property overrides it.
		e.Store().Player.Gold = 5
		mustLoad(t, e, graphOf("room", "cell",
			[]types.Node{
				gnode("t", "OnEnterRoom", nil),
				gnode("b", "HasGold", map[string]any{"Amount": 10}),
				gnode("yes", "ShowMessage", map[string]any{"Message": "rich"}),
				gnode("no", "ShowMessage", map[string]any{"Message": "poor"}),
			},
			[]types.Edge{
				gedge("t", "out", "b", "in"),
				gedge("b", "yes", "yes", "in"),
				gedge("b", "no", "no", "in"),
			},
		))
		out := e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
		if len(out.Messages) != 1 || out.Messages[0] != "poor" {
			t.Fatalf("messages = %v", out.Messages)
		}
	})

	t.Run("port default used when nothing else set", func(t *testing.T) {
		e := newTestEngine(t, Config{})
		mustLoad(t, e, graphOf("room", "cell",
			[]types.Node{
				gnode("t", "OnEnterRoom", nil),
				gnode("b", "HasGold", nil), // default Amount 0
				gnode("yes", "ShowMessage", map[string]any{"Message": "solvent"}),
			},
			[]types.Edge{
				gedge("t", "out", "b", "in"),
				gedge("b", "yes", "yes", "in"),
			},
		))
		out := e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
		if len(out.Messages) != 1 || out.Messages[0] != "solvent" {
			t.Fatalf("messages = %v", out.Messages)
		}
	})
}

// Writes earlier in a run are visible to data reads later in the same run.
func TestReadYourWrites(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("room", "cell",
		[]types.Node{
			gnode("t", "OnEnterRoom", nil),
			gnode("set", "SetCounter", map[string]any{"Counter": "visits", "Value": 2}),
			gnode("b", "CounterCompare", map[string]any{"Counter": "visits", "Op": "eq", "Value": 2}),
			gnode("yes", "ShowMessage", map[string]any{"Message": "fresh value seen"}),
		},
		[]types.Edge{
			gedge("t", "out", "set", "in"),
			gedge("set", "out", "b", "in"),
			gedge("b", "yes", "yes", "in"),
		},
	))
	out := e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
	if len(out.Messages) != 1 || out.Messages[0] != "fresh value seen" {
		t.Fatalf("messages = %v, faults = %v", out.Messages, out.Faults)
	}
}

func TestEffectsChainEvents(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("room", "cell",
		[]types.Node{
			gnode("t", "OnEnterRoom", nil),
			gnode("f", "SetFlag", map[string]any{"Flag": "alarm", "Value": true}),
		},
		[]types.Edge{gedge("t", "out", "f", "in")},
	))
	mustLoad(t, e, graphOf("game", "",
		[]types.Node{
			gnode("t", "OnFlagChanged", map[string]any{"Flag": "alarm"}),
			gnode("m", "ShowMessage", map[string]any{"Message": "klaxons sound"}),
		},
		[]types.Edge{gedge("t", "out", "m", "in")},
	))

	out := e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
	if out.Runs != 2 {
		t.Fatalf("chained event should start a second run, got %+v", out)
	}
	if len(out.Messages) != 1 || out.Messages[0] != "klaxons sound" {
		t.Fatalf("messages = %v", out.Messages)
	}

	// Setting the flag to its current value is not a change.
	out = e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
	if out.Runs != 1 {
		t.Fatalf("unchanged flag should not chain, got %+v", out)
	}
}

func TestEventChainDepthLimit(t *testing.T) {
	e := newTestEngine(t, Config{MaxEventDepth: 4})
	mustLoad(t, e, graphOf("game", "",
		[]types.Node{
			gnode("t", "OnFlagChanged", map[string]any{"Flag": "ping"}),
			gnode("f", "ToggleFlag", map[string]any{"Flag": "ping"}),
		},
		[]types.Edge{gedge("t", "out", "f", "in")},
	))
	mustLoad(t, e, graphOf("game", "",
		[]types.Node{
			gnode("t", "OnGameStart", nil),
			gnode("f", "ToggleFlag", map[string]any{"Flag": "ping"}),
		},
		[]types.Edge{gedge("t", "out", "f", "in")},
	))

	out := e.TriggerEvent("game", "", "OnGameStart", nil)
	found := false
	for _, f := range out.Faults {
		if strings.Contains(f.Reason, "depth") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected depth fault, got %+v", out.Faults)
	}
}

func TestRunStepBudget(t *testing.T) {
	e := newTestEngine(t, Config{MaxRunSteps: 50})
	mustLoad(t, e, graphOf("room", "cell",
		[]types.Node{
			gnode("t", "OnEnterRoom", nil),
			gnode("a", "Sequence", nil),
			gnode("b", "Sequence", nil),
			gnode("m", "ShowMessage", map[string]any{"Message": "spin"}),
		},
		[]types.Edge{
			gedge("t", "out", "a", "in"),
			gedge("a", "then1", "b", "in"),
			gedge("b", "then1", "m", "in"),
			gedge("m", "out", "a", "in"),
		},
	))

	out := e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
	found := false
	for _, f := range out.Faults {
		if strings.Contains(f.Reason, "exceeded") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected step-budget fault, got %+v", out.Faults)
	}
	if len(out.Messages) == 0 || len(out.Messages) > 50 {
		t.Fatalf("run should have fired some bounded number of messages, got %d", len(out.Messages))
	}
}

func TestDelaySuspendsAndTickResumes(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("room", "cell",
		[]types.Node{
			gnode("t", "OnEnterRoom", nil),
			gnode("seq", "Sequence", nil),
			gnode("d", "Delay", map[string]any{"Mode": "turns", "Duration": 2}),
			gnode("a", "ShowMessage", map[string]any{"Message": "after the wait"}),
			gnode("b", "ShowMessage", map[string]any{"Message": "and then the rest"}),
		},
		[]types.Edge{
			gedge("t", "out", "seq", "in"),
			gedge("seq", "then1", "d", "in"),
			gedge("d", "out", "a", "in"),
			gedge("seq", "then2", "b", "in"),
		},
	))

	out := e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
	if out.Suspended != 1 || len(out.Messages) != 0 {
		t.Fatalf("expected clean suspension, got %+v", out)
	}
	if len(e.Pending()) != 1 {
		t.Fatalf("pending = %v", e.Pending())
	}

	if out = e.Tick(); len(out.Messages) != 0 {
		t.Fatalf("resumed a turn early: %v", out.Messages)
	}
	out = e.Tick()
	// The sibling displaced by the suspension runs after the delayed branch.
	want := []string{"after the wait", "and then the rest"}
	if len(out.Messages) != 2 || out.Messages[0] != want[0] || out.Messages[1] != want[1] {
		t.Fatalf("messages = %v, want %v", out.Messages, want)
	}
	if len(e.Pending()) != 0 {
		t.Fatal("run still pending after resume")
	}
}

func TestDelayRealtimeElapse(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("room", "cell",
		[]types.Node{
			gnode("t", "OnEnterRoom", nil),
			gnode("d", "Delay", map[string]any{"Mode": "realtime", "Duration": 1.5}),
			gnode("m", "ShowMessage", map[string]any{"Message": "time passes"}),
		},
		[]types.Edge{
			gedge("t", "out", "d", "in"),
			gedge("d", "out", "m", "in"),
		},
	))

	e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
	if out := e.Elapse(time.Second); len(out.Messages) != 0 {
		t.Fatalf("resumed too early: %v", out.Messages)
	}
	out := e.Elapse(600 * time.Millisecond)
	if len(out.Messages) != 1 || out.Messages[0] != "time passes" {
		t.Fatalf("messages = %v", out.Messages)
	}
}

func TestPlayerChoiceSuspendsAndChooseResumes(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("npc", "guard",
		[]types.Node{
			gnode("t", "OnTalk", nil),
			gnode("say", "SayLine", map[string]any{"Line": "Who goes there?", "Speaker": "Guard"}),
			gnode("ch", "PlayerChoice", map[string]any{"Option1": "A friend", "Option2": "Your doom"}),
			gnode("a", "SayLine", map[string]any{"Line": "Pass, friend.", "Speaker": "Guard"}),
			gnode("b", "SayLine", map[string]any{"Line": "Guards! Seize them!", "Speaker": "Guard"}),
		},
		[]types.Edge{
			gedge("t", "out", "say", "in"),
			gedge("say", "out", "ch", "in"),
			gedge("ch", "choice1", "a", "in"),
			gedge("ch", "choice2", "b", "in"),
		},
	))

	out := e.TriggerEvent("npc", "guard", "OnTalk", map[string]any{"NPC": "guard"})
	if out.Suspended != 1 || len(out.Choices) != 1 {
		t.Fatalf("expected one pending choice, got %+v", out)
	}
	if out.Messages[0] != "Guard: Who goes there?" {
		t.Fatalf("messages = %v", out.Messages)
	}
	ch := out.Choices[0]
	if len(ch.Options) != 2 || ch.Options[1] != "Your doom" {
		t.Fatalf("options = %v", ch.Options)
	}

	if _, err := e.Choose(ch.RunID, 5); err == nil {
		t.Fatal("out-of-range option must error")
	}
	resumed, err := e.Choose(ch.RunID, 1)
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if len(resumed.Messages) != 1 || resumed.Messages[0] != "Guard: Guards! Seize them!" {
		t.Fatalf("messages = %v", resumed.Messages)
	}
	if _, err := e.Choose(ch.RunID, 0); err == nil {
		t.Fatal("answered choice must not be answerable twice")
	}
}

func TestOnceFiresFirstThenAgain(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("room", "cell",
		[]types.Node{
			gnode("t", "OnEnterRoom", nil),
			gnode("o", "Once", nil),
			gnode("a", "ShowMessage", map[string]any{"Message": "first visit"}),
			gnode("b", "ShowMessage", map[string]any{"Message": "been here before"}),
		},
		[]types.Edge{
			gedge("t", "out", "o", "in"),
			gedge("o", "first", "a", "in"),
			gedge("o", "again", "b", "in"),
		},
	))

	out := e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
	if len(out.Messages) != 1 || out.Messages[0] != "first visit" {
		t.Fatalf("messages = %v", out.Messages)
	}
	out = e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
	if len(out.Messages) != 1 || out.Messages[0] != "been here before" {
		t.Fatalf("messages = %v", out.Messages)
	}
}

func TestGateBlocksWhenClosed(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("room", "cell",
		[]types.Node{
			gnode("t", "OnEnterRoom", nil),
			gnode("g", "Gate", map[string]any{"Open": false}),
			gnode("m", "ShowMessage", map[string]any{"Message": "through"}),
		},
		[]types.Edge{
			gedge("t", "out", "g", "in"),
			gedge("g", "out", "m", "in"),
		},
	))

	out := e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
	if len(out.Messages) != 0 || out.Completed != 1 {
		t.Fatalf("closed gate should complete silently, got %+v", out)
	}
}

func TestRandomBranchPicksOnlyConnectedOutputs(t *testing.T) {
	e := newTestEngine(t, Config{Seed: 99})
	mustLoad(t, e, graphOf("room", "cell",
		[]types.Node{
			gnode("t", "OnEnterRoom", nil),
			gnode("r", "RandomBranch", nil),
			gnode("m", "ShowMessage", map[string]any{"Message": "the only way"}),
		},
		[]types.Edge{
			gedge("t", "out", "r", "in"),
			gedge("r", "option3", "m", "in"),
		},
	))

	for i := 0; i < 10; i++ {
		out := e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
		if len(out.Messages) != 1 || out.Messages[0] != "the only way" {
			t.Fatalf("iteration %d: messages = %v", i, out.Messages)
		}
	}
}

func TestRandomBranchDeterministicAcrossSessions(t *testing.T) {
	build := func() *Engine {
		e := newTestEngine(t, Config{Seed: 42})
		mustLoad(t, e, graphOf("room", "cell",
			[]types.Node{
				gnode("t", "OnEnterRoom", nil),
				gnode("r", "RandomBranch", nil),
				gnode("a", "ShowMessage", map[string]any{"Message": "heads"}),
				gnode("b", "ShowMessage", map[string]any{"Message": "tails"}),
			},
			[]types.Edge{
				gedge("t", "out", "r", "in"),
				gedge("r", "option1", "a", "in"),
				gedge("r", "option2", "b", "in"),
			},
		))
		return e
	}

	run := func(e *Engine) []string {
		var seq []string
		for i := 0; i < 20; i++ {
			out := e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
			seq = append(seq, out.Messages...)
		}
		return seq
	}

	first, second := run(build()), run(build())
	if len(first) != 20 {
		t.Fatalf("every trigger should produce one message, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sequences diverge at %d: %v vs %v", i, first, second)
		}
	}
}

func TestDisabledFeatureNodeIsSkipped(t *testing.T) {
	e := newTestEngine(t, Config{Features: map[string]bool{"dialogue": true}})
	mustLoad(t, e, graphOf("room", "cell",
		[]types.Node{
			gnode("t", "OnEnterRoom", nil),
			gnode("d", "DamagePlayer", map[string]any{"Amount": 50}),
			gnode("m", "ShowMessage", map[string]any{"Message": "unhurt"}),
		},
		[]types.Edge{
			gedge("t", "out", "d", "in"),
			gedge("d", "out", "m", "in"),
		},
	))

	out := e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
	if len(out.Faults) != 0 {
		t.Fatalf("gated no-op should not fault: %+v", out.Faults)
	}
	if len(out.Messages) != 1 || out.Messages[0] != "unhurt" {
		t.Fatalf("control should pass through the primary output, got %v", out.Messages)
	}
	if hp := e.Store().Stat("hp"); hp != 100 {
		t.Fatalf("disabled combat node mutated state: hp=%d", hp)
	}
}

func TestDisabledFeatureTriggerNeverFires(t *testing.T) {
	e := newTestEngine(t, Config{Features: map[string]bool{"dialogue": true}})
	mustLoad(t, e, graphOf("game", "",
		[]types.Node{
			gnode("t", "OnCombatStarted", nil),
			gnode("m", "ShowMessage", map[string]any{"Message": "to arms"}),
		},
		[]types.Edge{gedge("t", "out", "m", "in")},
	))

	out := e.TriggerEvent("npc", "guard", "OnCombatStarted", map[string]any{"Enemy": "guard"})
	if out.Runs != 0 {
		t.Fatalf("gated trigger fired with the feature off: %+v", out)
	}
}

func TestDamagePlayerEventAppliesOnce(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("game", "",
		[]types.Node{
			gnode("t", "OnDamagePlayer", nil),
			gnode("d", "DamagePlayer", nil),
			gnode("m", "ShowMessage", map[string]any{"Message": "ouch"}),
			gnode("x", "ShowMessage", map[string]any{"Message": "you died"}),
		},
		[]types.Edge{
			gedge("t", "out", "d", "in"),
			gedge("t", "Amount", "d", "Amount"),
			gedge("d", "out", "m", "in"),
			gedge("d", "died", "x", "in"),
		},
	))

	out := e.TriggerEvent("player", "", "OnDamagePlayer", map[string]any{"Amount": 30})
	if out.Runs != 1 || out.Completed != 1 || len(out.Faults) != 0 {
		t.Fatalf("runs=%d completed=%d faults=%+v", out.Runs, out.Completed, out.Faults)
	}
	if len(out.Messages) != 1 || out.Messages[0] != "ouch" {
		t.Fatalf("messages = %v", out.Messages)
	}
	if hp := e.Store().Stat("hp"); hp != 70 {
		t.Fatalf("hp = %d", hp)
	}

	// A killing blow takes the died output, never both.
	out = e.TriggerEvent("player", "", "OnDamagePlayer", map[string]any{"Amount": 80})
	if len(out.Messages) != 1 || out.Messages[0] != "you died" {
		t.Fatalf("messages = %v", out.Messages)
	}
	if hp := e.Store().Stat("hp"); hp != 0 {
		t.Fatalf("hp = %d", hp)
	}
}

func TestFaultRecoveryContinuesPrimary(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("room", "cell",
		[]types.Node{
			gnode("t", "OnEnterRoom", nil),
			gnode("r", "RemoveItem", map[string]any{"Object": "key"}),
			gnode("m", "ShowMessage", map[string]any{"Message": "life goes on"}),
		},
		[]types.Edge{
			gedge("t", "out", "r", "in"),
			gedge("r", "out", "m", "in"),
		},
	))

	out := e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
	if len(out.Faults) != 1 || !strings.Contains(out.Faults[0].Reason, "does not carry") {
		t.Fatalf("faults = %+v", out.Faults)
	}
	if len(out.Messages) != 1 || out.Messages[0] != "life goes on" {
		t.Fatalf("messages = %v", out.Messages)
	}
	if out.Completed != 1 {
		t.Fatalf("faulted run should still complete, got %+v", out)
	}
}

func TestRemoveGoldSecondaryOutput(t *testing.T) {
	e := newTestEngine(t, Config{})
	e.Store().Player.Gold = 5
	mustLoad(t, e, graphOf("room", "cell",
		[]types.Node{
			gnode("t", "OnEnterRoom", nil),
			gnode("pay", "RemoveGold", map[string]any{"Amount": 10}),
			gnode("ok", "ShowMessage", map[string]any{"Message": "paid"}),
			gnode("broke", "ShowMessage", map[string]any{"Message": "too poor"}),
		},
		[]types.Edge{
			gedge("t", "out", "pay", "in"),
			gedge("pay", "out", "ok", "in"),
			gedge("pay", "notEnough", "broke", "in"),
		},
	))

	out := e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
	if len(out.Messages) != 1 || out.Messages[0] != "too poor" {
		t.Fatalf("messages = %v", out.Messages)
	}
	if e.Store().Player.Gold != 5 {
		t.Fatal("failed payment should not deduct gold")
	}

	e.Store().Player.Gold = 20
	out = e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
	if len(out.Messages) != 1 || out.Messages[0] != "paid" {
		t.Fatalf("messages = %v", out.Messages)
	}
	if e.Store().Player.Gold != 10 {
		t.Fatalf("gold = %d, want 10", e.Store().Player.Gold)
	}
}

func TestTriggerPayloadReadableDownstream(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("game", "",
		[]types.Node{
			gnode("t", "OnEnterRoom", nil),
			gnode("m", "ShowMessage", map[string]any{"Message": "placeholder"}),
		},
		[]types.Edge{
			gedge("t", "out", "m", "in"),
			gedge("t", "Room", "m", "Message"),
		},
	))

	out := e.TriggerEvent("room", "hall", "OnEnterRoom", map[string]any{"Room": "hall"})
	if len(out.Messages) != 1 || out.Messages[0] != "hall" {
		t.Fatalf("messages = %v", out.Messages)
	}
}

func TestDataCycleIsARecoverableFault(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("room", "cell",
		[]types.Node{
			gnode("t", "OnEnterRoom", nil),
			gnode("x", "Add", nil),
			gnode("y", "Add", nil),
			gnode("b", "NumberCompare", map[string]any{"Op": "eq"}),
			gnode("m", "ShowMessage", map[string]any{"Message": "recovered"}),
		},
		[]types.Edge{
			gedge("t", "out", "b", "in"),
			gedge("x", "value", "y", "A"),
			gedge("y", "value", "x", "A"),
			gedge("x", "value", "b", "A"),
			gedge("b", "yes", "m", "in"),
		},
	))

	out := e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
	found := false
	for _, f := range out.Faults {
		if strings.Contains(f.Reason, "cycle") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected cycle fault, got %+v", out.Faults)
	}
	// Recovery continues through the primary (yes) output.
	if len(out.Messages) != 1 || out.Messages[0] != "recovered" {
		t.Fatalf("messages = %v", out.Messages)
	}
}

func TestDivideByZeroFaults(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("room", "cell",
		[]types.Node{
			gnode("t", "OnEnterRoom", nil),
			gnode("d", "Divide", map[string]any{"A": 10}),
			gnode("b", "NumberCompare", map[string]any{"Op": "eq"}),
			gnode("m", "ShowMessage", map[string]any{"Message": "onward"}),
		},
		[]types.Edge{
			gedge("t", "out", "b", "in"),
			gedge("d", "value", "b", "A"),
			gedge("b", "yes", "m", "in"),
		},
	))

	out := e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
	found := false
	for _, f := range out.Faults {
		if strings.Contains(f.Reason, "division by zero") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected division fault, got %+v", out.Faults)
	}
}

func TestMovePlayerChainsRoomEvents(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("game", "",
		[]types.Node{
			gnode("t", "OnGameStart", nil),
			gnode("mv", "MovePlayer", map[string]any{"Room": "hall"}),
		},
		[]types.Edge{gedge("t", "out", "mv", "in")},
	))
	mustLoad(t, e, graphOf("room", "cell",
		[]types.Node{
			gnode("t", "OnExitRoom", nil),
			gnode("m", "ShowMessage", map[string]any{"Message": "the cell door clangs shut"}),
		},
		[]types.Edge{gedge("t", "out", "m", "in")},
	))
	mustLoad(t, e, graphOf("room", "hall",
		[]types.Node{
			gnode("t", "OnEnterRoom", nil),
			gnode("m", "ShowMessage", map[string]any{"Message": "torchlight ahead"}),
		},
		[]types.Edge{gedge("t", "out", "m", "in")},
	))

	out := e.TriggerEvent("game", "", "OnGameStart", nil)
	want := []string{"the cell door clangs shut", "torchlight ahead"}
	if len(out.Messages) != 2 || out.Messages[0] != want[0] || out.Messages[1] != want[1] {
		t.Fatalf("messages = %v, want %v", out.Messages, want)
	}
	if e.Store().Player.Location != "hall" {
		t.Fatalf("location = %s", e.Store().Player.Location)
	}
}

func TestCustomEventBroadcast(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("game", "",
		[]types.Node{
			gnode("t", "OnGameStart", nil),
			gnode("emit", "EmitCustomEvent", map[string]any{"Event": "alarm"}),
		},
		[]types.Edge{gedge("t", "out", "emit", "in")},
	))
	mustLoad(t, e, graphOf("room", "cell",
		[]types.Node{
			gnode("t", "OnCustomEvent", map[string]any{"Event": "alarm"}),
			gnode("m", "ShowMessage", map[string]any{"Message": "bells everywhere"}),
		},
		[]types.Edge{gedge("t", "out", "m", "in")},
	))
	mustLoad(t, e, graphOf("room", "hall",
		[]types.Node{
			gnode("t", "OnCustomEvent", map[string]any{"Event": "fire"}),
			gnode("m", "ShowMessage", map[string]any{"Message": "smoke"}),
		},
		[]types.Edge{gedge("t", "out", "m", "in")},
	))

	out := e.TriggerEvent("game", "", "OnGameStart", nil)
	if len(out.Messages) != 1 || out.Messages[0] != "bells everywhere" {
		t.Fatalf("broadcast should reach matching listeners only, got %v", out.Messages)
	}
}

func TestTickFiresOnGameTick(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("game", "",
		[]types.Node{
			gnode("t", "OnGameTick", nil),
			gnode("m", "ShowMessage", map[string]any{"Message": "tick"}),
		},
		[]types.Edge{
			gedge("t", "out", "m", "in"),
			gedge("t", "Turn", "m", "Message"),
		},
	))

	out := e.Tick()
	if len(out.Messages) != 1 || out.Messages[0] != "1" {
		t.Fatalf("messages = %v", out.Messages)
	}
	out = e.Tick()
	if len(out.Messages) != 1 || out.Messages[0] != "2" {
		t.Fatalf("messages = %v", out.Messages)
	}
	if e.Store().Turn != 2 {
		t.Fatalf("turn = %d", e.Store().Turn)
	}
}

func TestCombatFlow(t *testing.T) {
	e := newTestEngine(t, Config{})
	e.Store().SetProp("guard", "hp", 5)
	mustLoad(t, e, graphOf("game", "",
		[]types.Node{
			gnode("t", "OnGameStart", nil),
			gnode("start", "StartCombat", map[string]any{"Enemy": "guard"}),
			gnode("hit", "DamageEnemy", map[string]any{"Amount": 10}),
			gnode("win", "ShowMessage", map[string]any{"Message": "the guard falls"}),
		},
		[]types.Edge{
			gedge("t", "out", "start", "in"),
			gedge("start", "out", "hit", "in"),
			gedge("hit", "died", "win", "in"),
		},
	))
	mustLoad(t, e, graphOf("npc", "guard",
		[]types.Node{
			gnode("t", "OnEnemyDied", nil),
			gnode("m", "ShowMessage", map[string]any{"Message": "silence in the hall"}),
		},
		[]types.Edge{gedge("t", "out", "m", "in")},
	))

	out := e.TriggerEvent("game", "", "OnGameStart", nil)
	want := []string{"silence in the hall", "the guard falls"}
	if len(out.Messages) != 2 || out.Messages[0] != want[0] || out.Messages[1] != want[1] {
		t.Fatalf("messages = %v, want %v", out.Messages, want)
	}
	if hp, _ := e.Store().Prop("guard", "hp"); toInt(hp) != 0 {
		t.Fatalf("guard hp = %v", hp)
	}
	if e.periph.Combat.Active() {
		t.Fatal("combat should end when the tracked enemy dies")
	}
}

func TestTradeFlow(t *testing.T) {
	e := newTestEngine(t, Config{})
	e.Store().Player.Gold = 10
	mustLoad(t, e, graphOf("npc", "merchant",
		[]types.Node{
			gnode("t", "OnTalk", nil),
			gnode("open", "OpenTrade", map[string]any{"Merchant": "merchant"}),
			gnode("buy", "BuyItem", map[string]any{"Object": "potion", "Price": 6}),
			gnode("done", "ShowMessage", map[string]any{"Message": "a fine purchase"}),
			gnode("broke", "ShowMessage", map[string]any{"Message": "come back richer"}),
		},
		[]types.Edge{
			gedge("t", "out", "open", "in"),
			gedge("open", "out", "buy", "in"),
			gedge("buy", "out", "done", "in"),
			gedge("buy", "notEnough", "broke", "in"),
		},
	))

	out := e.TriggerEvent("npc", "merchant", "OnTalk", map[string]any{"NPC": "merchant"})
	if len(out.Messages) != 1 || out.Messages[0] != "a fine purchase" {
		t.Fatalf("messages = %v", out.Messages)
	}
	s := e.Store()
	if s.Player.Gold != 4 || !s.HasItem("potion") {
		t.Fatalf("gold=%d inventory=%v", s.Player.Gold, s.Player.Inventory)
	}

	out = e.TriggerEvent("npc", "merchant", "OnTalk", map[string]any{"NPC": "merchant"})
	if len(out.Messages) != 1 || out.Messages[0] != "come back richer" {
		t.Fatalf("messages = %v", out.Messages)
	}
}

func TestQuestLifecycle(t *testing.T) {
	e := newTestEngine(t, Config{})
	mustLoad(t, e, graphOf("game", "",
		[]types.Node{
			gnode("t", "OnGameStart", nil),
			gnode("start", "StartQuest", map[string]any{"Quest": "escape"}),
			gnode("adv", "AdvanceQuest", map[string]any{"Quest": "escape"}),
			gnode("done", "CompleteQuest", map[string]any{"Quest": "escape"}),
		},
		[]types.Edge{
			gedge("t", "out", "start", "in"),
			gedge("start", "out", "adv", "in"),
			gedge("adv", "out", "done", "in"),
		},
	))
	mustLoad(t, e, graphOf("quest", "escape",
		[]types.Node{
			gnode("t", "OnQuestCompleted", nil),
			gnode("m", "ShowMessage", map[string]any{"Message": "freedom at last"}),
		},
		[]types.Edge{gedge("t", "out", "m", "in")},
	))

	out := e.TriggerEvent("game", "", "OnGameStart", nil)
	if len(out.Messages) != 1 || out.Messages[0] != "freedom at last" {
		t.Fatalf("messages = %v, faults = %v", out.Messages, out.Faults)
	}
	if st := questState(e.Store(), "escape"); st != "done" {
		t.Fatalf("quest state = %q", st)
	}
	if v, _ := e.Store().Prop("escape", "stage"); toInt(v) != 1 {
		t.Fatalf("stage = %v", v)
	}
}

func TestTraceRecordsFiringOrder(t *testing.T) {
	e := newTestEngine(t, Config{Trace: true})
	mustLoad(t, e, graphOf("room", "cell",
		[]types.Node{
			gnode("t", "OnEnterRoom", nil),
			gnode("m", "ShowMessage", map[string]any{"Message": "hi"}),
		},
		[]types.Edge{gedge("t", "out", "m", "in")},
	))

	out := e.TriggerEvent("room", "cell", "OnEnterRoom", nil)
	if len(out.Trace) != 2 {
		t.Fatalf("trace = %v", out.Trace)
	}
	if !strings.Contains(out.Trace[0], "OnEnterRoom") || !strings.Contains(out.Trace[1], "ShowMessage") {
		t.Fatalf("trace order wrong: %v", out.Trace)
	}
}
