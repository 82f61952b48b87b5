package catalog

import "github.com/nholm/graphquest/types"

// Dialogue kinds. Conversation graphs use the same traversal model: say
// nodes emit a line and continue, choice nodes suspend the run until the
// player picks an option, end nodes terminate the run.
func registerDialogue(c *Catalog) {
	c.add(kind("SayLine", "Say Line", types.CategoryDialogue, types.OwnerNPC|types.OwnerGame).
		feature(FeatureDialogue).
		execIn().execOut("out").
		reqProp("Line", types.KindString).
		prop("Speaker", types.KindString, "").def)

	c.add(kind("PlayerChoice", "Player Choice", types.CategoryDialogue, types.OwnerNPC|types.OwnerGame).
		feature(FeatureDialogue).
		execIn().execOut("choice1", "choice2", "choice3", "choice4").
		prop("Option1", types.KindString, "").
		prop("Option2", types.KindString, "").
		prop("Option3", types.KindString, "").
		prop("Option4", types.KindString, "").def)

	c.add(kind("SetSpeaker", "Set Speaker", types.CategoryDialogue, types.OwnerNPC|types.OwnerGame).
		feature(FeatureDialogue).
		execIn().execOut("out").
		reqProp("Speaker", types.KindString).def)

	c.add(kind("EndDialogue", "End Dialogue", types.CategoryDialogue, types.OwnerNPC|types.OwnerGame).
		feature(FeatureDialogue).
		execIn().def)
}
