// Package engine executes validated script graphs against the game state.
// Hosts feed it world events through TriggerEvent and advance time through
// Tick, Elapse and Choose; everything a dispatch produced comes back in one
// Outcome. Execution is synchronous and single-threaded: the engine is owned
// by one game session.
package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nholm/graphquest/catalog"
	"github.com/nholm/graphquest/engine/state"
	"github.com/nholm/graphquest/graph"
	"github.com/nholm/graphquest/peripheral"
	"github.com/nholm/graphquest/types"
)

// Config carries the session-level knobs.
type Config struct {
	Features      map[string]bool // enabled feature toggles: combat, trade, needs, dialogue
	MaxEventDepth int             // nested event chain limit, 0 means default
	MaxRunSteps   int             // per-run node firing budget, 0 means default
	Seed          int64           // RNG seed, 0 means time-based
	Trace         bool            // record node firing order in outcomes
}

const (
	defaultMaxEventDepth = 8
	defaultMaxRunSteps   = 1000
)

// Engine is the graph execution core for one session.
type Engine struct {
	cfg    Config
	cat    *catalog.Catalog
	store  *state.Store
	periph peripheral.Set
	rng    *RNG

	graphs  []*graph.Index
	pending []*Run          // suspended runs, in suspension order
	once    map[string]bool // fired Once gates, keyed owner/ownerID/nodeID
	depth   int             // current event chain depth
}

// New creates an engine over a catalog, state store and peripheral set.
func New(cfg Config, cat *catalog.Catalog, store *state.Store, periph peripheral.Set) *Engine {
	if cfg.MaxEventDepth <= 0 {
		cfg.MaxEventDepth = defaultMaxEventDepth
	}
	if cfg.MaxRunSteps <= 0 {
		cfg.MaxRunSteps = defaultMaxRunSteps
	}
	if cfg.Features == nil {
		cfg.Features = map[string]bool{}
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &Engine{
		cfg:    cfg,
		cat:    cat,
		store:  store,
		periph: periph,
		rng:    NewRNG(cfg.Seed),
		once:   map[string]bool{},
	}
}

// RNG exposes the session RNG for hosts that persist replay positions.
func (e *Engine) RNG() *RNG {
	return e.rng
}

// SetRNG replaces the session RNG, used when restoring a saved session.
func (e *Engine) SetRNG(r *RNG) {
	e.rng = r
}

// SetTrace toggles trace recording at runtime.
func (e *Engine) SetTrace(on bool) {
	e.cfg.Trace = on
}

// Store returns the mutable game state the engine runs against.
func (e *Engine) Store() *state.Store {
	return e.store
}

// Catalog returns the node-kind registry the engine interprets.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// FiredOnce returns the Once-gate keys that have fired, sorted, for
// session saves.
func (e *Engine) FiredOnce() []string {
	keys := make([]string, 0, len(e.once))
	for k := range e.once {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RestoreFiredOnce marks Once-gate keys as already fired when restoring a
// saved session.
func (e *Engine) RestoreFiredOnce(keys []string) {
	for _, k := range keys {
		e.once[k] = true
	}
}

// DropPending discards all suspended runs. A session restore replaces the
// state the runs were traversing, so their continuations are meaningless.
func (e *Engine) DropPending() {
	e.pending = nil
}

// InvalidGraphError reports a graph that failed validation at load time.
type InvalidGraphError struct {
	Owner   string
	OwnerID string
	Report  types.Report
}

func (e *InvalidGraphError) Error() string {
	var why []string
	if !e.Report.HasTrigger {
		why = append(why, "no trigger node")
	}
	if !e.Report.HasEffect {
		why = append(why, "no effect node")
	}
	if e.Report.HasTrigger && e.Report.HasEffect && !e.Report.Reachable {
		why = append(why, "no effect reachable from any trigger")
	}
	for _, inc := range e.Report.Incomplete {
		why = append(why, fmt.Sprintf("node %q missing %s", inc.NodeID, strings.Join(inc.Missing, ", ")))
	}
	why = append(why, e.Report.Errors...)
	return fmt.Sprintf("graph %s/%s invalid: %s", e.Owner, e.OwnerID, strings.Join(why, "; "))
}

// LoadGraph validates a graph and registers it for play. Invalid graphs are
// rejected whole; the returned error carries the full validation report.
func (e *Engine) LoadGraph(g *types.Graph) error {
	rep := graph.Validate(g, e.cat)
	if !rep.Valid {
		return &InvalidGraphError{Owner: g.Owner, OwnerID: g.OwnerID, Report: rep}
	}
	e.graphs = append(e.graphs, graph.NewIndex(g))
	return nil
}

// Graphs returns the registered graphs in load order.
func (e *Engine) Graphs() []*types.Graph {
	out := make([]*types.Graph, len(e.graphs))
	for i, ix := range e.graphs {
		out[i] = ix.Graph
	}
	return out
}

// TriggerEvent dispatches one world event. Every matching trigger node in
// every graph scoped to (owner, ownerID) or owned by the game starts a run;
// the outcome aggregates across all of them.
func (e *Engine) TriggerEvent(owner, ownerID, kind string, payload map[string]any) *types.Outcome {
	out := &types.Outcome{}
	e.dispatch(out, owner, ownerID, kind, payload)
	return out
}

// dispatch is the shared entry for host events and engine-chained events.
// The depth counter spans the whole synchronous chain: an effect that emits
// an event re-enters here before its own run continues.
func (e *Engine) dispatch(out *types.Outcome, owner, ownerID, kind string, payload map[string]any) {
	if e.depth >= e.cfg.MaxEventDepth {
		out.Faults = append(out.Faults, types.Fault{
			Kind:   kind,
			Reason: fmt.Sprintf("event chain exceeded depth %d", e.cfg.MaxEventDepth),
		})
		return
	}
	def, ok := e.cat.Lookup(kind)
	if !ok || def.Category != types.CategoryTrigger {
		out.Faults = append(out.Faults, types.Fault{Kind: kind, Reason: "not a trigger kind"})
		return
	}
	if def.Feature != "" && !e.cfg.Features[def.Feature] {
		return
	}

	e.depth++
	defer func() { e.depth-- }()

	for _, ix := range e.graphs {
		g := ix.Graph
		// Owner "*" is the broadcast scope used by custom events: every
		// graph sees it. Game-owned graphs see every event.
		if owner != "*" && g.Owner != "game" && (g.Owner != owner || g.OwnerID != ownerID) {
			continue
		}
		for i := range g.Nodes {
			n := &g.Nodes[i]
			if n.Kind != kind {
				continue
			}
			if !matchesFilters(n, def, payload) {
				continue
			}
			run := e.newRun(ix, out, n.ID, payload)
			out.Runs++
			run.start()
			e.settle(run, out)
		}
	}
}

// settle files a finished or suspended run into the outcome and, for
// suspended runs, the pending queue.
func (e *Engine) settle(run *Run, out *types.Outcome) {
	if !run.suspended {
		out.Completed++
		return
	}
	out.Suspended++
	e.pending = append(e.pending, run)
	if run.choice != nil {
		out.Choices = append(out.Choices, types.Choice{
			RunID:   run.ID,
			Speaker: run.speaker,
			Options: run.choice.options,
		})
	}
}

// matchesFilters applies a trigger node's filter properties: any declared
// property whose name matches a payload key and whose authored value is
// non-blank must equal the payload value.
func matchesFilters(n *types.Node, def types.KindDef, payload map[string]any) bool {
	for _, p := range def.Props {
		raw, ok := n.Props[p.Name]
		if !ok {
			continue
		}
		want := strings.TrimSpace(toString(raw))
		if want == "" {
			continue
		}
		got, ok := payload[p.Name]
		if !ok {
			continue
		}
		if toString(got) != want {
			return false
		}
	}
	return true
}
