package catalog

import "github.com/nholm/graphquest/types"

var compareOps = []string{"eq", "ne", "lt", "le", "gt", "ge"}

// Branch kinds. Each consumes the "in" execution pulse, evaluates its
// predicate, and fires exactly one of "yes"/"no".
func registerBranches(c *Catalog) {
	c.add(kind("FlagIsSet", "Flag Is Set", types.CategoryBranch, types.OwnerAny).
		execIn().execOut("yes", "no").
		reqProp("Flag", types.KindString).def)

	c.add(kind("CounterCompare", "Compare Counter", types.CategoryBranch, types.OwnerAny).
		execIn().execOut("yes", "no").
		reqProp("Counter", types.KindString).
		enumProp("Op", "eq", compareOps...).
		dataIn("Value", types.KindInt, 0).def)

	c.add(kind("HasItem", "Player Carries Item", types.CategoryBranch, types.OwnerAny).
		execIn().execOut("yes", "no").
		entityProp("Object", "object").def)

	c.add(kind("HasGold", "Player Has Gold", types.CategoryBranch, types.OwnerAny).
		execIn().execOut("yes", "no").
		dataIn("Amount", types.KindInt, 0).def)

	c.add(kind("PlayerInRoom", "Player In Room", types.CategoryBranch, types.OwnerAny).
		execIn().execOut("yes", "no").
		entityProp("Room", "room").def)

	c.add(kind("EntityInRoom", "Entity In Room", types.CategoryBranch, types.OwnerAny).
		execIn().execOut("yes", "no").
		entityProp("Entity", "entity").
		entityProp("Room", "room").def)

	c.add(kind("PropertyEquals", "Property Equals", types.CategoryBranch, types.OwnerAny).
		execIn().execOut("yes", "no").
		entityProp("Entity", "entity").
		reqProp("Property", types.KindString).
		dataIn("Value", types.KindString, "").def)

	c.add(kind("DoorIsLocked", "Door Is Locked", types.CategoryBranch, types.OwnerAny).
		execIn().execOut("yes", "no").
		entityProp("Door", "door").def)

	c.add(kind("DoorIsOpen", "Door Is Open", types.CategoryBranch, types.OwnerAny).
		execIn().execOut("yes", "no").
		entityProp("Door", "door").def)

	c.add(kind("QuestStateIs", "Quest State Is", types.CategoryBranch, types.OwnerAny).
		execIn().execOut("yes", "no").
		entityProp("Quest", "quest").
		enumProp("State", "active", "inactive", "active", "done", "failed").def)

	c.add(kind("InCombat", "In Combat", types.CategoryBranch, types.OwnerAny).
		feature(FeatureCombat).
		execIn().execOut("yes", "no").def)

	c.add(kind("EnemyHealthBelow", "Enemy Health Below", types.CategoryBranch, types.OwnerAny).
		feature(FeatureCombat).
		execIn().execOut("yes", "no").
		dataIn("Value", types.KindInt, 0).def)

	c.add(kind("PlayerHealthBelow", "Player Health Below", types.CategoryBranch, types.OwnerAny).
		execIn().execOut("yes", "no").
		dataIn("Value", types.KindInt, 0).def)

	c.add(kind("NeedBelow", "Need Below", types.CategoryBranch, types.OwnerAny).
		feature(FeatureNeeds).
		execIn().execOut("yes", "no").
		enumProp("Need", "hunger", "hunger", "thirst", "fatigue").
		dataIn("Value", types.KindInt, 25).def)

	c.add(kind("NumberCompare", "Compare Numbers", types.CategoryBranch, types.OwnerAny).
		execIn().execOut("yes", "no").
		enumProp("Op", "eq", compareOps...).
		dataIn("A", types.KindFloat, 0.0).
		dataIn("B", types.KindFloat, 0.0).def)

	c.add(kind("StringEquals", "Compare Strings", types.CategoryBranch, types.OwnerAny).
		execIn().execOut("yes", "no").
		dataIn("A", types.KindString, "").
		dataIn("B", types.KindString, "").def)

	c.add(kind("BoolBranch", "Branch On Condition", types.CategoryBranch, types.OwnerAny).
		execIn().execOut("yes", "no").
		dataIn("Condition", types.KindBool, false).def)

	c.add(kind("ItemCountCompare", "Compare Inventory Size", types.CategoryBranch, types.OwnerAny).
		execIn().execOut("yes", "no").
		enumProp("Op", "ge", compareOps...).
		dataIn("Value", types.KindInt, 1).def)
}
