package catalog

import "github.com/nholm/graphquest/types"

// Trigger kinds. Every trigger fires its "out" execution output when selected
// as a run's entry point. Data outputs expose event payload values. Optional
// filter properties (Room, Object, Flag, ...) narrow which events match: a
// blank filter matches any payload, a set filter must equal the payload value
// under the same key.
func registerTriggers(c *Catalog) {
	c.add(kind("OnGameStart", "Game Started", types.CategoryTrigger, types.OwnerGame).
		execOut("out").def)
	c.add(kind("OnGameTick", "Game Tick", types.CategoryTrigger, types.OwnerGame).
		execOut("out").
		dataOut("Turn", types.KindInt).def)

	c.add(kind("OnEnterRoom", "Room Entered", types.CategoryTrigger, types.OwnerRoom|types.OwnerGame).
		execOut("out").
		prop("Room", types.KindString, "").
		dataOut("Room", types.KindString).def)
	c.add(kind("OnExitRoom", "Room Left", types.CategoryTrigger, types.OwnerRoom|types.OwnerGame).
		execOut("out").
		prop("Room", types.KindString, "").
		dataOut("Room", types.KindString).def)
	c.add(kind("OnLook", "Looked At", types.CategoryTrigger,
		types.OwnerRoom|types.OwnerDoor|types.OwnerNPC|types.OwnerObject).
		execOut("out").
		dataOut("Entity", types.KindString).def)

	c.add(kind("OnTake", "Item Taken", types.CategoryTrigger, types.OwnerObject|types.OwnerGame).
		execOut("out").
		prop("Object", types.KindString, "").
		dataOut("Object", types.KindString).def)
	c.add(kind("OnDrop", "Item Dropped", types.CategoryTrigger, types.OwnerObject|types.OwnerGame).
		execOut("out").
		prop("Object", types.KindString, "").
		dataOut("Object", types.KindString).def)
	c.add(kind("OnUse", "Item Used", types.CategoryTrigger,
		types.OwnerObject|types.OwnerDoor|types.OwnerGame).
		execOut("out").
		prop("Object", types.KindString, "").
		dataOut("Object", types.KindString).def)
	c.add(kind("OnUseWith", "Item Used On Target", types.CategoryTrigger,
		types.OwnerObject|types.OwnerGame).
		execOut("out").
		prop("Object", types.KindString, "").
		prop("Target", types.KindString, "").
		dataOut("Object", types.KindString).
		dataOut("Target", types.KindString).def)

	c.add(kind("OnOpenDoor", "Door Opened", types.CategoryTrigger, types.OwnerDoor|types.OwnerGame).
		execOut("out").
		dataOut("Door", types.KindString).def)
	c.add(kind("OnCloseDoor", "Door Closed", types.CategoryTrigger, types.OwnerDoor|types.OwnerGame).
		execOut("out").
		dataOut("Door", types.KindString).def)
	c.add(kind("OnUnlockDoor", "Door Unlocked", types.CategoryTrigger, types.OwnerDoor|types.OwnerGame).
		execOut("out").
		dataOut("Door", types.KindString).def)

	c.add(kind("OnTalk", "Conversation Requested", types.CategoryTrigger, types.OwnerNPC|types.OwnerGame).
		execOut("out").
		dataOut("NPC", types.KindString).def)

	c.add(kind("OnItemAcquired", "Item Acquired", types.CategoryTrigger, types.OwnerGame|types.OwnerObject).
		execOut("out").
		prop("Object", types.KindString, "").
		dataOut("Object", types.KindString).def)
	c.add(kind("OnItemLost", "Item Lost", types.CategoryTrigger, types.OwnerGame|types.OwnerObject).
		execOut("out").
		prop("Object", types.KindString, "").
		dataOut("Object", types.KindString).def)

	c.add(kind("OnFlagChanged", "Flag Changed", types.CategoryTrigger, types.OwnerGame).
		execOut("out").
		prop("Flag", types.KindString, "").
		dataOut("Flag", types.KindString).
		dataOut("Value", types.KindBool).def)
	c.add(kind("OnCounterChanged", "Counter Changed", types.CategoryTrigger, types.OwnerGame).
		execOut("out").
		prop("Counter", types.KindString, "").
		dataOut("Counter", types.KindString).
		dataOut("Value", types.KindInt).def)

	c.add(kind("OnQuestStarted", "Quest Started", types.CategoryTrigger, types.OwnerQuest|types.OwnerGame).
		execOut("out").
		prop("Quest", types.KindString, "").
		dataOut("Quest", types.KindString).def)
	c.add(kind("OnQuestCompleted", "Quest Completed", types.CategoryTrigger, types.OwnerQuest|types.OwnerGame).
		execOut("out").
		prop("Quest", types.KindString, "").
		dataOut("Quest", types.KindString).def)

	c.add(kind("OnCombatStarted", "Combat Started", types.CategoryTrigger, types.OwnerGame|types.OwnerNPC).
		feature(FeatureCombat).
		execOut("out").
		dataOut("Enemy", types.KindString).def)
	c.add(kind("OnCombatEnded", "Combat Ended", types.CategoryTrigger, types.OwnerGame|types.OwnerNPC).
		feature(FeatureCombat).
		execOut("out").
		dataOut("Enemy", types.KindString).def)
	c.add(kind("OnDamagePlayer", "Player Damaged", types.CategoryTrigger, types.OwnerGame|types.OwnerPlayer).
		feature(FeatureCombat).
		execOut("out").
		dataOut("Amount", types.KindInt).def)
	c.add(kind("OnPlayerDied", "Player Died", types.CategoryTrigger, types.OwnerGame).
		feature(FeatureCombat).
		execOut("out").def)
	c.add(kind("OnEnemyDied", "Enemy Died", types.CategoryTrigger, types.OwnerGame|types.OwnerNPC).
		feature(FeatureCombat).
		execOut("out").
		dataOut("Enemy", types.KindString).def)

	c.add(kind("OnTradeOpened", "Trade Opened", types.CategoryTrigger, types.OwnerGame|types.OwnerNPC).
		feature(FeatureTrade).
		execOut("out").
		dataOut("Merchant", types.KindString).def)
	c.add(kind("OnTradeClosed", "Trade Closed", types.CategoryTrigger, types.OwnerGame|types.OwnerNPC).
		feature(FeatureTrade).
		execOut("out").
		dataOut("Merchant", types.KindString).def)

	c.add(kind("OnNeedThreshold", "Need Threshold Crossed", types.CategoryTrigger,
		types.OwnerGame|types.OwnerPlayer).
		feature(FeatureNeeds).
		execOut("out").
		enumProp("Need", "", "hunger", "thirst", "fatigue").
		dataOut("Need", types.KindString).
		dataOut("Level", types.KindInt).def)

	c.add(kind("OnCustomEvent", "Custom Event", types.CategoryTrigger, types.OwnerAny).
		execOut("out").
		reqProp("Event", types.KindString).
		dataOut("Event", types.KindString).def)
}
