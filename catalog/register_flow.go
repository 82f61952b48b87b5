package catalog

import "github.com/nholm/graphquest/types"

// Flow-combinator kinds. These shape control flow without touching game
// state: ordered fan-out, uniform random selection, suspension, and gating.
func registerFlow(c *Catalog) {
	c.add(kind("Sequence", "Sequence", types.CategoryFlow, types.OwnerAny).
		execIn().execOut("then1", "then2", "then3", "then4").def)

	c.add(kind("RandomBranch", "Random Branch", types.CategoryFlow, types.OwnerAny).
		execIn().execOut("option1", "option2", "option3", "option4").def)

	// Mode "turns" resumes after Duration game ticks; "realtime" after
	// Duration seconds of host-reported elapsed time.
	c.add(kind("Delay", "Delay", types.CategoryFlow, types.OwnerAny).
		execIn().execOut("out").
		enumProp("Mode", "turns", "turns", "realtime").
		dataIn("Duration", types.KindFloat, 1.0).def)

	c.add(kind("Once", "Only Once", types.CategoryFlow, types.OwnerAny).
		execIn().execOut("first", "again").def)

	c.add(kind("Gate", "Gate", types.CategoryFlow, types.OwnerAny).
		execIn().execOut("out").
		dataIn("Open", types.KindBool, true).def)
}
