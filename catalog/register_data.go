package catalog

import "github.com/nholm/graphquest/types"

// Data-source kinds. All are pure: no execution ports, evaluated on demand
// when a downstream data input pulls their "value" output.
func registerData(c *Catalog) {
	c.add(kind("IntValue", "Integer Constant", types.CategoryData, types.OwnerAny).
		prop("Value", types.KindInt, 0).
		dataOut("value", types.KindInt).def)
	c.add(kind("FloatValue", "Float Constant", types.CategoryData, types.OwnerAny).
		prop("Value", types.KindFloat, 0.0).
		dataOut("value", types.KindFloat).def)
	c.add(kind("BoolValue", "Boolean Constant", types.CategoryData, types.OwnerAny).
		prop("Value", types.KindBool, false).
		dataOut("value", types.KindBool).def)
	c.add(kind("StringValue", "String Constant", types.CategoryData, types.OwnerAny).
		prop("Value", types.KindString, "").
		dataOut("value", types.KindString).def)

	c.add(kind("FlagValue", "Flag Value", types.CategoryData, types.OwnerAny).
		reqProp("Flag", types.KindString).
		dataOut("value", types.KindBool).def)
	c.add(kind("CounterValue", "Counter Value", types.CategoryData, types.OwnerAny).
		reqProp("Counter", types.KindString).
		dataOut("value", types.KindInt).def)
	c.add(kind("PropertyValue", "Entity Property Value", types.CategoryData, types.OwnerAny).
		entityProp("Entity", "entity").
		reqProp("Property", types.KindString).
		dataOut("value", types.KindString).def)
	c.add(kind("PlayerStat", "Player Stat", types.CategoryData, types.OwnerAny).
		enumProp("Stat", "hp", "hp", "max_hp", "attack", "defense").
		dataOut("value", types.KindInt).def)
	c.add(kind("PlayerGold", "Player Gold", types.CategoryData, types.OwnerAny).
		dataOut("value", types.KindInt).def)
	c.add(kind("ItemCount", "Inventory Size", types.CategoryData, types.OwnerAny).
		dataOut("value", types.KindInt).def)
	c.add(kind("TurnNumber", "Turn Number", types.CategoryData, types.OwnerAny).
		dataOut("value", types.KindInt).def)
	c.add(kind("RandomInt", "Random Integer", types.CategoryData, types.OwnerAny).
		dataIn("Min", types.KindInt, 1).
		dataIn("Max", types.KindInt, 6).
		dataOut("value", types.KindInt).def)

	for _, op := range []struct{ id, label string }{
		{"Add", "Add"},
		{"Subtract", "Subtract"},
		{"Multiply", "Multiply"},
		{"Divide", "Divide"},
		{"Modulo", "Modulo"},
		{"Min", "Minimum"},
		{"Max", "Maximum"},
	} {
		c.add(kind(op.id, op.label, types.CategoryData, types.OwnerAny).
			dataIn("A", types.KindFloat, 0.0).
			dataIn("B", types.KindFloat, 0.0).
			dataOut("value", types.KindFloat).def)
	}

	c.add(kind("Negate", "Negate", types.CategoryData, types.OwnerAny).
		dataIn("A", types.KindFloat, 0.0).
		dataOut("value", types.KindFloat).def)

	c.add(kind("Compare", "Compare", types.CategoryData, types.OwnerAny).
		enumProp("Op", "eq", compareOps...).
		dataIn("A", types.KindFloat, 0.0).
		dataIn("B", types.KindFloat, 0.0).
		dataOut("value", types.KindBool).def)

	for _, op := range []struct{ id, label string }{
		{"And", "Logical And"},
		{"Or", "Logical Or"},
		{"Xor", "Logical Xor"},
	} {
		c.add(kind(op.id, op.label, types.CategoryData, types.OwnerAny).
			dataIn("A", types.KindBool, false).
			dataIn("B", types.KindBool, false).
			dataOut("value", types.KindBool).def)
	}
	c.add(kind("Not", "Logical Not", types.CategoryData, types.OwnerAny).
		dataIn("A", types.KindBool, false).
		dataOut("value", types.KindBool).def)

	c.add(kind("Concat", "Concatenate", types.CategoryData, types.OwnerAny).
		dataIn("A", types.KindString, "").
		dataIn("B", types.KindString, "").
		dataOut("value", types.KindString).def)
	c.add(kind("NumberToString", "Number To String", types.CategoryData, types.OwnerAny).
		dataIn("Value", types.KindFloat, 0.0).
		dataOut("value", types.KindString).def)

	// Pure branch-select: chooses between two data values, for use in data
	// resolution only. Only the selected side is evaluated.
	c.add(kind("SelectValue", "Select Value", types.CategoryData, types.OwnerAny).
		dataIn("Condition", types.KindBool, false).
		dataIn("IfTrue", types.KindString, "").
		dataIn("IfFalse", types.KindString, "").
		dataOut("value", types.KindString).def)
}
