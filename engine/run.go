package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nholm/graphquest/catalog"
	"github.com/nholm/graphquest/graph"
	"github.com/nholm/graphquest/types"
)

// Run is one control-flow traversal of one graph, started at a trigger node.
// It fires nodes depth-first along execution edges, resolving data inputs on
// demand as it goes. A run either completes, halts, or suspends waiting on a
// delay or a player choice.
type Run struct {
	ID string

	eng     *Engine
	ix      *graph.Index
	out     *types.Outcome
	payload map[string]any // event payload, readable only through the entry trigger's outputs
	entry   string         // trigger node id this run started at
	speaker string         // current dialogue speaker

	steps     int
	resolving map[string]bool // data resolution cycle guard, keyed node:port
	deferred  []string        // exec targets displaced by a suspension, in firing order
	halted    bool
	suspended bool

	wait   *waitState
	choice *choiceState
}

type waitState struct {
	nodeID    string
	turnsLeft int           // turn-mode delay
	realLeft  time.Duration // realtime-mode delay
	realtime  bool
}

type choiceState struct {
	nodeID  string
	options []string // presented labels
	ports   []string // execution output per option
}

func (e *Engine) newRun(ix *graph.Index, out *types.Outcome, entry string, payload map[string]any) *Run {
	return &Run{
		ID:        uuid.NewString(),
		eng:       e,
		ix:        ix,
		out:       out,
		payload:   payload,
		entry:     entry,
		resolving: map[string]bool{},
	}
}

func (r *Run) start() {
	node, ok := r.ix.Node(r.entry)
	if !ok {
		return
	}
	def, ok := r.eng.cat.Lookup(node.Kind)
	if !ok {
		return
	}
	r.trace(node)
	out, ok := catalog.PrimaryExecOutput(def)
	if !ok {
		return
	}
	r.follow(r.entry, out.Name)
	r.drainDeferred()
}

// fire executes one node and continues along whichever execution outputs its
// interpreter selects.
func (r *Run) fire(nodeID string) {
	if r.halted || r.suspended {
		return
	}
	r.steps++
	if r.steps > r.eng.cfg.MaxRunSteps {
		r.fault(nodeID, "", fmt.Sprintf("run exceeded %d steps", r.eng.cfg.MaxRunSteps))
		r.halted = true
		return
	}
	node, ok := r.ix.Node(nodeID)
	if !ok {
		r.fault(nodeID, "", "edge target does not exist")
		r.halted = true
		return
	}
	def, ok := r.eng.cat.Lookup(node.Kind)
	if !ok {
		r.fault(nodeID, node.Kind, "unknown node kind")
		r.halted = true
		return
	}
	r.trace(node)

	// A node gated behind a disabled feature is a no-op: control passes
	// through its primary output so the rest of the graph still runs.
	if def.Feature != "" && !r.eng.cfg.Features[def.Feature] {
		r.followPrimary(node.ID, def)
		return
	}

	switch def.Category {
	case types.CategoryEffect:
		port, err := r.applyEffect(node, def)
		if err != nil {
			r.fault(node.ID, node.Kind, err.Error())
			r.followPrimary(node.ID, def)
			return
		}
		if port != "" {
			r.follow(node.ID, port)
		}
	case types.CategoryBranch:
		port, err := r.evalBranch(node, def)
		if err != nil {
			r.fault(node.ID, node.Kind, err.Error())
			r.followPrimary(node.ID, def)
			return
		}
		r.follow(node.ID, port)
	case types.CategoryFlow:
		r.fireFlow(node, def)
	case types.CategoryDialogue:
		r.fireDialogue(node, def)
	case types.CategoryTrigger:
		r.fault(node.ID, node.Kind, "trigger node reached through an execution edge")
	case types.CategoryData:
		r.fault(node.ID, node.Kind, "data node reached through an execution edge")
	}
}

// follow fires every target of the named execution output in authored order.
// If a suspension happens mid-traversal, the not-yet-fired targets are
// deferred so the resumed run picks them up in the same order.
func (r *Run) follow(nodeID, port string) {
	for _, e := range r.ix.From(nodeID, port) {
		if r.halted {
			return
		}
		if r.suspended {
			r.deferred = append(r.deferred, e.To)
			continue
		}
		r.fire(e.To)
	}
}

// followPrimary continues through the first declared execution output, the
// recovery path for faulted and feature-gated nodes.
func (r *Run) followPrimary(nodeID string, def types.KindDef) {
	if out, ok := catalog.PrimaryExecOutput(def); ok {
		r.follow(nodeID, out.Name)
	}
}

// drainDeferred fires deferred targets until the run settles. Targets a
// nested suspension defers come before the older remainder: they sit deeper
// in the traversal order.
func (r *Run) drainDeferred() {
	for len(r.deferred) > 0 && !r.halted && !r.suspended {
		next := r.deferred[0]
		rest := append([]string(nil), r.deferred[1:]...)
		r.deferred = nil
		r.fire(next)
		r.deferred = append(r.deferred, rest...)
	}
}

func (r *Run) fault(nodeID, kind, reason string) {
	r.out.Faults = append(r.out.Faults, types.Fault{NodeID: nodeID, Kind: kind, Reason: reason})
}

func (r *Run) trace(node *types.Node) {
	if !r.eng.cfg.Trace {
		return
	}
	g := r.ix.Graph
	r.out.Trace = append(r.out.Trace, fmt.Sprintf("%s/%s %s(%s)", g.Owner, g.OwnerID, node.ID, node.Kind))
}

// suspend parks the run on a delay.
func (r *Run) suspendWait(w *waitState) {
	r.suspended = true
	r.wait = w
}

// suspendChoice parks the run on a player choice.
func (r *Run) suspendChoice(c *choiceState) {
	r.suspended = true
	r.choice = c
}

// input resolves one data input of a node: a connected data edge wins, then
// the node's property bag, then the port's declared default. A missing value
// everywhere is an error the caller reports as a fault.
func (r *Run) input(node *types.Node, def types.KindDef, name string) (any, error) {
	port, ok := catalog.FindInput(def, name)
	if !ok {
		return nil, fmt.Errorf("kind %s declares no input %q", def.Kind, name)
	}
	if e, ok := r.ix.Into(node.ID, name); ok {
		return r.eval(e.From, e.FromPort)
	}
	if v, ok := node.Props[name]; ok && v != nil {
		return v, nil
	}
	if port.Default != nil {
		return port.Default, nil
	}
	return nil, fmt.Errorf("input %q of node %q has no value", name, node.ID)
}

func (r *Run) intInput(node *types.Node, def types.KindDef, name string) (int, error) {
	v, err := r.input(node, def, name)
	return toInt(v), err
}

func (r *Run) floatInput(node *types.Node, def types.KindDef, name string) (float64, error) {
	v, err := r.input(node, def, name)
	return toFloat(v), err
}

func (r *Run) boolInput(node *types.Node, def types.KindDef, name string) (bool, error) {
	v, err := r.input(node, def, name)
	return toBool(v), err
}

func (r *Run) stringInput(node *types.Node, def types.KindDef, name string) (string, error) {
	v, err := r.input(node, def, name)
	return toString(v), err
}

// eval computes the value of one data output by pulling through the graph.
// Evaluation is demand-driven and unmemoized: a source re-reads live state
// every time it is pulled, so writes earlier in the run are visible. The
// resolving set breaks data-dependency cycles.
func (r *Run) eval(nodeID, port string) (any, error) {
	key := nodeID + ":" + port
	if r.resolving[key] {
		return nil, fmt.Errorf("data dependency cycle through %s.%s", nodeID, port)
	}
	r.resolving[key] = true
	defer delete(r.resolving, key)

	r.steps++
	if r.steps > r.eng.cfg.MaxRunSteps {
		return nil, fmt.Errorf("run exceeded %d steps during data resolution", r.eng.cfg.MaxRunSteps)
	}

	node, ok := r.ix.Node(nodeID)
	if !ok {
		return nil, fmt.Errorf("data edge source %q does not exist", nodeID)
	}
	def, ok := r.eng.cat.Lookup(node.Kind)
	if !ok {
		return nil, fmt.Errorf("node %q has unknown kind %q", nodeID, node.Kind)
	}
	if def.Feature != "" && !r.eng.cfg.Features[def.Feature] {
		return nil, fmt.Errorf("node %q (%s) requires disabled feature %q", nodeID, node.Kind, def.Feature)
	}

	switch def.Category {
	case types.CategoryData:
		return r.evalSource(node, def, port)
	case types.CategoryTrigger:
		return r.payloadOutput(node, port)
	default:
		return nil, fmt.Errorf("node %q (%s) has no readable data output", nodeID, node.Kind)
	}
}

// payloadOutput reads an event payload field through a trigger node's data
// output. Only the trigger this run entered through carries a payload.
func (r *Run) payloadOutput(node *types.Node, port string) (any, error) {
	if node.ID != r.entry {
		return nil, fmt.Errorf("trigger %q did not start this run", node.ID)
	}
	v, ok := r.payload[port]
	if !ok {
		return nil, fmt.Errorf("event payload has no field %q", port)
	}
	return v, nil
}
