package catalog

import "github.com/nholm/graphquest/types"

// Effect kinds. Each consumes the "in" pulse, performs exactly one state
// mutation or peripheral call, and fires exactly one execution output —
// "out" normally, a named secondary output for alternate outcomes.
func registerEffects(c *Catalog) {
	c.add(kind("ShowMessage", "Show Message", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		reqProp("Message", types.KindString).
		dataIn("Message", types.KindString, nil).def)

	c.add(kind("SetFlag", "Set Flag", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		reqProp("Flag", types.KindString).
		dataIn("Value", types.KindBool, true).def)

	c.add(kind("ToggleFlag", "Toggle Flag", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		reqProp("Flag", types.KindString).def)

	c.add(kind("SetCounter", "Set Counter", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		reqProp("Counter", types.KindString).
		dataIn("Value", types.KindInt, 0).def)

	c.add(kind("AddCounter", "Add To Counter", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		reqProp("Counter", types.KindString).
		dataIn("Amount", types.KindInt, 1).def)

	c.add(kind("SetProperty", "Set Entity Property", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		entityProp("Entity", "entity").
		reqProp("Property", types.KindString).
		dataIn("Value", types.KindString, "").def)

	c.add(kind("GiveItem", "Give Item To Player", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		entityProp("Object", "object").def)

	c.add(kind("RemoveItem", "Remove Item From Player", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		entityProp("Object", "object").def)

	c.add(kind("MoveItemToRoom", "Move Item To Room", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		entityProp("Object", "object").
		entityProp("Room", "room").def)

	c.add(kind("MovePlayer", "Move Player", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		entityProp("Room", "room").def)

	c.add(kind("MoveNPC", "Move NPC", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		entityProp("NPC", "npc").
		entityProp("Room", "room").def)

	c.add(kind("OpenExit", "Open Exit", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		entityProp("Room", "room").
		reqProp("Direction", types.KindString).
		entityProp("Target", "room").def)

	c.add(kind("CloseExit", "Close Exit", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		entityProp("Room", "room").
		reqProp("Direction", types.KindString).def)

	c.add(kind("LockDoor", "Lock Door", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		entityProp("Door", "door").def)

	c.add(kind("UnlockDoor", "Unlock Door", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		entityProp("Door", "door").def)

	c.add(kind("ShowEntity", "Show Entity", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		entityProp("Entity", "entity").def)

	c.add(kind("HideEntity", "Hide Entity", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		entityProp("Entity", "entity").def)

	c.add(kind("AddGold", "Give Gold", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		dataIn("Amount", types.KindInt, 0).def)

	c.add(kind("RemoveGold", "Take Gold", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out", "notEnough").
		dataIn("Amount", types.KindInt, 0).def)

	c.add(kind("StartQuest", "Start Quest", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		entityProp("Quest", "quest").def)

	c.add(kind("AdvanceQuest", "Advance Quest", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		entityProp("Quest", "quest").def)

	c.add(kind("CompleteQuest", "Complete Quest", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		entityProp("Quest", "quest").def)

	c.add(kind("FailQuest", "Fail Quest", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		entityProp("Quest", "quest").def)

	c.add(kind("ModifyNeed", "Modify Need", types.CategoryEffect, types.OwnerAny).
		feature(FeatureNeeds).
		execIn().execOut("out").
		enumProp("Need", "hunger", "hunger", "thirst", "fatigue").
		dataIn("Amount", types.KindInt, 0).def)

	c.add(kind("EmitCustomEvent", "Emit Custom Event", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		reqProp("Event", types.KindString).def)

	c.add(kind("EndGame", "End Game", types.CategoryEffect, types.OwnerAny).
		execIn().execOut("out").
		enumProp("Result", "victory", "victory", "defeat").def)

	c.add(kind("StartCombat", "Start Combat", types.CategoryEffect, types.OwnerAny).
		feature(FeatureCombat).
		execIn().execOut("out").
		entityProp("Enemy", "npc").def)

	c.add(kind("EndCombat", "End Combat", types.CategoryEffect, types.OwnerAny).
		feature(FeatureCombat).
		execIn().execOut("out").
		enumProp("Reason", "resolved", "resolved", "fled", "victory", "defeat").def)

	c.add(kind("DamagePlayer", "Damage Player", types.CategoryEffect, types.OwnerAny).
		feature(FeatureCombat).
		execIn().execOut("out", "died").
		dataIn("Amount", types.KindInt, 0).def)

	c.add(kind("HealPlayer", "Heal Player", types.CategoryEffect, types.OwnerAny).
		feature(FeatureCombat).
		execIn().execOut("out").
		dataIn("Amount", types.KindInt, 0).def)

	c.add(kind("DamageEnemy", "Damage Enemy", types.CategoryEffect, types.OwnerAny).
		feature(FeatureCombat).
		execIn().execOut("out", "died").
		prop("Enemy", types.KindString, "").
		dataIn("Amount", types.KindInt, 0).def)

	c.add(kind("HealEnemy", "Heal Enemy", types.CategoryEffect, types.OwnerAny).
		feature(FeatureCombat).
		execIn().execOut("out").
		prop("Enemy", types.KindString, "").
		dataIn("Amount", types.KindInt, 0).def)

	c.add(kind("EquipWeapon", "Equip Weapon", types.CategoryEffect, types.OwnerAny).
		feature(FeatureCombat).
		execIn().execOut("out").
		entityProp("Object", "object").def)

	c.add(kind("EquipArmor", "Equip Armor", types.CategoryEffect, types.OwnerAny).
		feature(FeatureCombat).
		execIn().execOut("out").
		entityProp("Object", "object").def)

	c.add(kind("OpenTrade", "Open Trade", types.CategoryEffect, types.OwnerAny).
		feature(FeatureTrade).
		execIn().execOut("out").
		entityProp("Merchant", "npc").def)

	c.add(kind("CloseTrade", "Close Trade", types.CategoryEffect, types.OwnerAny).
		feature(FeatureTrade).
		execIn().execOut("out").def)

	c.add(kind("BuyItem", "Buy Item", types.CategoryEffect, types.OwnerAny).
		feature(FeatureTrade).
		execIn().execOut("out", "notEnough").
		entityProp("Object", "object").
		dataIn("Price", types.KindInt, 0).def)

	c.add(kind("SellItem", "Sell Item", types.CategoryEffect, types.OwnerAny).
		feature(FeatureTrade).
		execIn().execOut("out").
		entityProp("Object", "object").
		dataIn("Price", types.KindInt, 0).def)

	c.add(kind("StartConversation", "Start Conversation", types.CategoryEffect, types.OwnerAny).
		feature(FeatureDialogue).
		execIn().execOut("out").
		entityProp("NPC", "npc").def)
}
