package engine

import (
	"fmt"
	"time"

	"github.com/nholm/graphquest/catalog"
	"github.com/nholm/graphquest/types"
)

// fireFlow interprets the flow-combinator kinds.
func (r *Run) fireFlow(node *types.Node, def types.KindDef) {
	switch node.Kind {
	case "Sequence":
		for _, port := range catalog.ExecOutputs(def) {
			if r.halted {
				return
			}
			r.follow(node.ID, port.Name)
		}

	case "RandomBranch":
		var connected []string
		for _, port := range catalog.ExecOutputs(def) {
			if len(r.ix.From(node.ID, port.Name)) > 0 {
				connected = append(connected, port.Name)
			}
		}
		if len(connected) == 0 {
			return
		}
		r.follow(node.ID, connected[r.eng.rng.Intn(len(connected))])

	case "Delay":
		dur, err := r.floatInput(node, def, "Duration")
		if err != nil {
			r.fault(node.ID, node.Kind, err.Error())
			r.followPrimary(node.ID, def)
			return
		}
		w := &waitState{nodeID: node.ID}
		if propString(node, "Mode") == "realtime" {
			w.realtime = true
			w.realLeft = time.Duration(dur * float64(time.Second))
		} else {
			w.turnsLeft = toInt(dur)
			if w.turnsLeft < 1 {
				w.turnsLeft = 1
			}
		}
		r.suspendWait(w)

	case "Once":
		g := r.ix.Graph
		key := g.Owner + "/" + g.OwnerID + "/" + node.ID
		if r.eng.once[key] {
			r.follow(node.ID, "again")
			return
		}
		r.eng.once[key] = true
		r.follow(node.ID, "first")

	case "Gate":
		open, err := r.boolInput(node, def, "Open")
		if err != nil {
			r.fault(node.ID, node.Kind, err.Error())
			return
		}
		if open {
			r.follow(node.ID, "out")
		}

	default:
		r.fault(node.ID, node.Kind, fmt.Sprintf("flow kind %q has no interpreter", node.Kind))
	}
}
