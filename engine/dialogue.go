package engine

import (
	"fmt"

	"github.com/nholm/graphquest/types"
)

// fireDialogue interprets the conversation kinds. Say nodes emit and
// continue, choice nodes suspend until Choose, end nodes terminate the run.
func (r *Run) fireDialogue(node *types.Node, def types.KindDef) {
	switch node.Kind {
	case "SayLine":
		speaker := propString(node, "Speaker")
		if speaker == "" {
			speaker = r.speaker
		}
		if speaker == "" {
			speaker = r.eng.periph.Dialogue.NPC()
		}
		r.say(speaker, propString(node, "Line"))
		r.follow(node.ID, "out")

	case "SetSpeaker":
		r.speaker = propString(node, "Speaker")
		r.follow(node.ID, "out")

	case "PlayerChoice":
		c := &choiceState{nodeID: node.ID}
		for i := 1; i <= 4; i++ {
			port := fmt.Sprintf("choice%d", i)
			label := propString(node, fmt.Sprintf("Option%d", i))
			if label == "" || len(r.ix.From(node.ID, port)) == 0 {
				continue
			}
			c.options = append(c.options, label)
			c.ports = append(c.ports, port)
		}
		if len(c.options) == 0 {
			r.fault(node.ID, node.Kind, "choice node offers no wired options")
			return
		}
		r.suspendChoice(c)

	case "EndDialogue":
		r.eng.periph.Dialogue.End()
		r.halted = true

	default:
		r.fault(node.ID, node.Kind, fmt.Sprintf("dialogue kind %q has no interpreter", node.Kind))
	}
}
