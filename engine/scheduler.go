package engine

import (
	"fmt"
	"time"

	"github.com/nholm/graphquest/types"
)

// Tick advances game time by one turn: turn-mode delays count down and due
// runs resume, then OnGameTick dispatches. Outcome counters cover what this
// call produced; resumed runs are not re-counted in Runs.
func (e *Engine) Tick() *types.Outcome {
	out := &types.Outcome{}
	e.store.Turn++

	var due []*Run
	snapshot := e.pending
	e.pending = nil
	for _, run := range snapshot {
		if run.wait != nil && !run.wait.realtime {
			run.wait.turnsLeft--
			if run.wait.turnsLeft <= 0 {
				due = append(due, run)
				continue
			}
		}
		e.pending = append(e.pending, run)
	}
	for _, run := range due {
		e.resume(run, out)
	}

	e.dispatch(out, "game", "", "OnGameTick", map[string]any{"Turn": e.store.Turn})
	return out
}

// Elapse reports host wall-clock time to realtime-mode delays and resumes
// the ones that come due.
func (e *Engine) Elapse(d time.Duration) *types.Outcome {
	out := &types.Outcome{}

	var due []*Run
	snapshot := e.pending
	e.pending = nil
	for _, run := range snapshot {
		if run.wait != nil && run.wait.realtime {
			run.wait.realLeft -= d
			if run.wait.realLeft <= 0 {
				due = append(due, run)
				continue
			}
		}
		e.pending = append(e.pending, run)
	}
	for _, run := range due {
		e.resume(run, out)
	}
	return out
}

// resume continues a delay-suspended run through the delay node's output,
// then through whatever traversal the suspension displaced.
func (e *Engine) resume(run *Run, out *types.Outcome) {
	run.out = out
	run.suspended = false
	w := run.wait
	run.wait = nil
	run.follow(w.nodeID, "out")
	run.drainDeferred()
	e.settle(run, out)
}

// Choose answers a suspended player choice by zero-based option index and
// continues the run down the chosen branch.
func (e *Engine) Choose(runID string, option int) (*types.Outcome, error) {
	var run *Run
	idx := -1
	for i, p := range e.pending {
		if p.ID == runID {
			run, idx = p, i
			break
		}
	}
	if run == nil {
		return nil, fmt.Errorf("no suspended run %q", runID)
	}
	if run.choice == nil {
		return nil, fmt.Errorf("run %q is not waiting on a choice", runID)
	}
	if option < 0 || option >= len(run.choice.ports) {
		return nil, fmt.Errorf("run %q has no option %d", runID, option)
	}

	e.pending = append(e.pending[:idx], e.pending[idx+1:]...)
	c := run.choice
	run.choice = nil
	run.suspended = false

	out := &types.Outcome{}
	run.out = out
	run.follow(c.nodeID, c.ports[option])
	run.drainDeferred()
	e.settle(run, out)
	return out, nil
}

// PendingRun describes one suspended run for host UIs and debugging.
type PendingRun struct {
	RunID   string
	Owner   string
	OwnerID string
	Waiting string // "delay" or "choice"
	Options []string
}

// Pending lists suspended runs in suspension order.
func (e *Engine) Pending() []PendingRun {
	var out []PendingRun
	for _, run := range e.pending {
		p := PendingRun{
			RunID:   run.ID,
			Owner:   run.ix.Graph.Owner,
			OwnerID: run.ix.Graph.OwnerID,
			Waiting: "delay",
		}
		if run.choice != nil {
			p.Waiting = "choice"
			p.Options = append([]string(nil), run.choice.options...)
		}
		out = append(out, p)
	}
	return out
}

// Choices lists the suspended player choices, the subset of Pending a host
// must answer through Choose.
func (e *Engine) Choices() []types.Choice {
	var out []types.Choice
	for _, run := range e.pending {
		if run.choice == nil {
			continue
		}
		out = append(out, types.Choice{
			RunID:   run.ID,
			Speaker: run.speaker,
			Options: append([]string(nil), run.choice.options...),
		})
	}
	return out
}
