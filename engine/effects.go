package engine

import (
	"fmt"
	"strings"

	"github.com/nholm/graphquest/engine/state"
	"github.com/nholm/graphquest/peripheral"
	"github.com/nholm/graphquest/types"
)

// applyEffect performs one effect node's mutation and returns the execution
// output to continue through. Errors are recoverable faults: the caller
// reports them and continues through the primary output.
func (r *Run) applyEffect(node *types.Node, def types.KindDef) (string, error) {
	s := r.eng.store

	switch node.Kind {
	case "ShowMessage":
		msg, err := r.stringInput(node, def, "Message")
		if err != nil {
			return "", err
		}
		r.say("", msg)
		return "out", nil

	case "SetFlag":
		name, err := r.entityRef(node, "Flag", "")
		if err != nil {
			return "", err
		}
		val, err := r.boolInput(node, def, "Value")
		if err != nil {
			return "", err
		}
		if s.SetFlag(name, val) != val {
			r.chain("game", "", "OnFlagChanged", map[string]any{"Flag": name, "Value": val})
		}
		return "out", nil

	case "ToggleFlag":
		name, err := r.entityRef(node, "Flag", "")
		if err != nil {
			return "", err
		}
		val := !s.Flag(name)
		s.SetFlag(name, val)
		r.chain("game", "", "OnFlagChanged", map[string]any{"Flag": name, "Value": val})
		return "out", nil

	case "SetCounter":
		name, err := r.entityRef(node, "Counter", "")
		if err != nil {
			return "", err
		}
		val, err := r.intInput(node, def, "Value")
		if err != nil {
			return "", err
		}
		if s.Counter(name) != val {
			s.SetCounter(name, val)
			r.chain("game", "", "OnCounterChanged", map[string]any{"Counter": name, "Value": val})
		}
		return "out", nil

	case "AddCounter":
		name, err := r.entityRef(node, "Counter", "")
		if err != nil {
			return "", err
		}
		amt, err := r.intInput(node, def, "Amount")
		if err != nil {
			return "", err
		}
		if amt != 0 {
			val := s.AddCounter(name, amt)
			r.chain("game", "", "OnCounterChanged", map[string]any{"Counter": name, "Value": val})
		}
		return "out", nil

	case "SetProperty":
		entity, err := r.entityRef(node, "Entity", "entity")
		if err != nil {
			return "", err
		}
		prop, err := r.entityRef(node, "Property", "")
		if err != nil {
			return "", err
		}
		val, err := r.input(node, def, "Value")
		if err != nil {
			return "", err
		}
		s.SetProp(entity, prop, val)
		return "out", nil

	case "GiveItem":
		obj, err := r.entityRef(node, "Object", "object")
		if err != nil {
			return "", err
		}
		s.GiveItem(obj)
		r.chain("object", obj, "OnItemAcquired", map[string]any{"Object": obj})
		return "out", nil

	case "RemoveItem":
		obj, err := r.entityRef(node, "Object", "object")
		if err != nil {
			return "", err
		}
		if !s.RemoveItem(obj) {
			return "", fmt.Errorf("player does not carry %q", obj)
		}
		r.chain("object", obj, "OnItemLost", map[string]any{"Object": obj})
		return "out", nil

	case "MoveItemToRoom":
		obj, err := r.entityRef(node, "Object", "object")
		if err != nil {
			return "", err
		}
		room, err := r.entityRef(node, "Room", "room")
		if err != nil {
			return "", err
		}
		if s.RemoveItem(obj) {
			r.chain("object", obj, "OnItemLost", map[string]any{"Object": obj})
		}
		s.SetProp(obj, "location", room)
		return "out", nil

	case "MovePlayer":
		room, err := r.entityRef(node, "Room", "room")
		if err != nil {
			return "", err
		}
		old := s.Player.Location
		if old == room {
			return "out", nil
		}
		s.Player.Location = room
		if old != "" {
			r.chain("room", old, "OnExitRoom", map[string]any{"Room": old})
		}
		r.chain("room", room, "OnEnterRoom", map[string]any{"Room": room})
		return "out", nil

	case "MoveNPC":
		npc, err := r.entityRef(node, "NPC", "npc")
		if err != nil {
			return "", err
		}
		room, err := r.entityRef(node, "Room", "room")
		if err != nil {
			return "", err
		}
		s.SetProp(npc, "location", room)
		return "out", nil

	case "OpenExit":
		room, err := r.entityRef(node, "Room", "room")
		if err != nil {
			return "", err
		}
		dir, err := r.entityRef(node, "Direction", "")
		if err != nil {
			return "", err
		}
		target, err := r.entityRef(node, "Target", "room")
		if err != nil {
			return "", err
		}
		s.SetProp(room, "exit:"+dir, target)
		return "out", nil

	case "CloseExit":
		room, err := r.entityRef(node, "Room", "room")
		if err != nil {
			return "", err
		}
		dir, err := r.entityRef(node, "Direction", "")
		if err != nil {
			return "", err
		}
		s.SetProp(room, "exit:"+dir, "")
		return "out", nil

	case "LockDoor":
		door, err := r.entityRef(node, "Door", "door")
		if err != nil {
			return "", err
		}
		s.SetProp(door, "locked", true)
		return "out", nil

	case "UnlockDoor":
		door, err := r.entityRef(node, "Door", "door")
		if err != nil {
			return "", err
		}
		s.SetProp(door, "locked", false)
		r.chain("door", door, "OnUnlockDoor", map[string]any{"Door": door})
		return "out", nil

	case "ShowEntity":
		entity, err := r.entityRef(node, "Entity", "entity")
		if err != nil {
			return "", err
		}
		s.SetProp(entity, "hidden", false)
		return "out", nil

	case "HideEntity":
		entity, err := r.entityRef(node, "Entity", "entity")
		if err != nil {
			return "", err
		}
		s.SetProp(entity, "hidden", true)
		return "out", nil

	case "AddGold":
		amt, err := r.intInput(node, def, "Amount")
		if err != nil {
			return "", err
		}
		if amt > 0 {
			s.Player.Gold += amt
		}
		return "out", nil

	case "RemoveGold":
		amt, err := r.intInput(node, def, "Amount")
		if err != nil {
			return "", err
		}
		if s.Player.Gold < amt {
			return "notEnough", nil
		}
		s.Player.Gold -= amt
		return "out", nil

	case "StartQuest":
		quest, err := r.entityRef(node, "Quest", "quest")
		if err != nil {
			return "", err
		}
		if questState(s, quest) != "" && questState(s, quest) != "inactive" {
			return "out", nil
		}
		s.SetProp(quest, "state", "active")
		s.SetProp(quest, "stage", 0)
		r.chain("quest", quest, "OnQuestStarted", map[string]any{"Quest": quest})
		return "out", nil

	case "AdvanceQuest":
		quest, err := r.entityRef(node, "Quest", "quest")
		if err != nil {
			return "", err
		}
		if questState(s, quest) != "active" {
			return "", fmt.Errorf("quest %q is not active", quest)
		}
		stage := 0
		if v, ok := s.Prop(quest, "stage"); ok {
			stage = toInt(v)
		}
		s.SetProp(quest, "stage", stage+1)
		return "out", nil

	case "CompleteQuest":
		quest, err := r.entityRef(node, "Quest", "quest")
		if err != nil {
			return "", err
		}
		if questState(s, quest) != "active" {
			return "", fmt.Errorf("quest %q is not active", quest)
		}
		s.SetProp(quest, "state", "done")
		r.chain("quest", quest, "OnQuestCompleted", map[string]any{"Quest": quest})
		return "out", nil

	case "FailQuest":
		quest, err := r.entityRef(node, "Quest", "quest")
		if err != nil {
			return "", err
		}
		if questState(s, quest) != "active" {
			return "", fmt.Errorf("quest %q is not active", quest)
		}
		s.SetProp(quest, "state", "failed")
		return "out", nil

	case "ModifyNeed":
		need := propString(node, "Need")
		amt, err := r.intInput(node, def, "Amount")
		if err != nil {
			return "", err
		}
		prev := s.Need(need)
		val := s.SetNeed(need, prev+amt)
		if prev >= needLowWater && val < needLowWater {
			r.chain("player", "", "OnNeedThreshold", map[string]any{"Need": need, "Level": val})
		}
		return "out", nil

	case "EmitCustomEvent":
		name := propString(node, "Event")
		if name == "" {
			return "", fmt.Errorf("custom event name is blank")
		}
		r.chain("*", "", "OnCustomEvent", map[string]any{"Event": name})
		return "out", nil

	case "EndGame":
		result := propString(node, "Result")
		s.SetFlag("game_over", true)
		s.SetProp("game", "result", result)
		r.say("", "Game over: "+result+".")
		return "out", nil

	case "StartCombat":
		enemy, err := r.entityRef(node, "Enemy", "npc")
		if err != nil {
			return "", err
		}
		if err := r.eng.periph.Combat.Start(enemy); err != nil {
			return "", err
		}
		r.chain("npc", enemy, "OnCombatStarted", map[string]any{"Enemy": enemy})
		return "out", nil

	case "EndCombat":
		enemy := r.eng.periph.Combat.EnemyID()
		if err := r.eng.periph.Combat.End(propString(node, "Reason")); err != nil {
			return "", err
		}
		r.chain("npc", enemy, "OnCombatEnded", map[string]any{"Enemy": enemy})
		return "out", nil

	case "DamagePlayer":
		amt, err := r.intInput(node, def, "Amount")
		if err != nil {
			return "", err
		}
		outcome, err := r.eng.periph.Combat.Damage("player", amt)
		if err != nil {
			return "", err
		}
		// OnDamagePlayer is a host-level event, never re-emitted here: a
		// graph that applies its own damage would loop on it.
		if outcome == peripheral.CombatTargetDied {
			r.chain("game", "", "OnPlayerDied", nil)
			return "died", nil
		}
		return "out", nil

	case "HealPlayer":
		amt, err := r.intInput(node, def, "Amount")
		if err != nil {
			return "", err
		}
		if err := r.eng.periph.Combat.Heal("player", amt); err != nil {
			return "", err
		}
		return "out", nil

	case "DamageEnemy":
		target := propString(node, "Enemy")
		if target == "" {
			target = r.eng.periph.Combat.EnemyID()
		}
		if target == "" {
			return "", fmt.Errorf("no enemy to damage")
		}
		amt, err := r.intInput(node, def, "Amount")
		if err != nil {
			return "", err
		}
		outcome, err := r.eng.periph.Combat.Damage(target, amt)
		if err != nil {
			return "", err
		}
		if outcome == peripheral.CombatTargetDied {
			r.chain("npc", target, "OnEnemyDied", map[string]any{"Enemy": target})
			return "died", nil
		}
		return "out", nil

	case "HealEnemy":
		target := propString(node, "Enemy")
		if target == "" {
			target = r.eng.periph.Combat.EnemyID()
		}
		if target == "" {
			return "", fmt.Errorf("no enemy to heal")
		}
		amt, err := r.intInput(node, def, "Amount")
		if err != nil {
			return "", err
		}
		if err := r.eng.periph.Combat.Heal(target, amt); err != nil {
			return "", err
		}
		return "out", nil

	case "EquipWeapon":
		obj, err := r.entityRef(node, "Object", "object")
		if err != nil {
			return "", err
		}
		if err := r.eng.periph.Combat.Equip("weapon", obj); err != nil {
			return "", err
		}
		return "out", nil

	case "EquipArmor":
		obj, err := r.entityRef(node, "Object", "object")
		if err != nil {
			return "", err
		}
		if err := r.eng.periph.Combat.Equip("armor", obj); err != nil {
			return "", err
		}
		return "out", nil

	case "OpenTrade":
		merchant, err := r.entityRef(node, "Merchant", "npc")
		if err != nil {
			return "", err
		}
		if err := r.eng.periph.Trade.Open(merchant); err != nil {
			return "", err
		}
		r.chain("npc", merchant, "OnTradeOpened", map[string]any{"Merchant": merchant})
		return "out", nil

	case "CloseTrade":
		merchant := r.eng.periph.Trade.Merchant()
		if err := r.eng.periph.Trade.Close(); err != nil {
			return "", err
		}
		r.chain("npc", merchant, "OnTradeClosed", map[string]any{"Merchant": merchant})
		return "out", nil

	case "BuyItem":
		obj, err := r.entityRef(node, "Object", "object")
		if err != nil {
			return "", err
		}
		price, err := r.intInput(node, def, "Price")
		if err != nil {
			return "", err
		}
		outcome, err := r.eng.periph.Trade.Buy(obj, price)
		if err != nil {
			return "", err
		}
		if outcome == peripheral.TradeNotEnoughGold {
			return "notEnough", nil
		}
		r.chain("object", obj, "OnItemAcquired", map[string]any{"Object": obj})
		return "out", nil

	case "SellItem":
		obj, err := r.entityRef(node, "Object", "object")
		if err != nil {
			return "", err
		}
		price, err := r.intInput(node, def, "Price")
		if err != nil {
			return "", err
		}
		if _, err := r.eng.periph.Trade.Sell(obj, price); err != nil {
			return "", err
		}
		r.chain("object", obj, "OnItemLost", map[string]any{"Object": obj})
		return "out", nil

	case "StartConversation":
		npc, err := r.entityRef(node, "NPC", "npc")
		if err != nil {
			return "", err
		}
		if err := r.eng.periph.Dialogue.Start(npc); err != nil {
			return "", err
		}
		r.chain("npc", npc, "OnTalk", map[string]any{"NPC": npc})
		return "out", nil
	}

	return "", fmt.Errorf("effect kind %q has no interpreter", node.Kind)
}

// Need levels below this fire OnNeedThreshold when crossed downward.
const needLowWater = 25

// chain dispatches an engine-generated event into the shared outcome. It
// runs synchronously before the emitting run continues.
func (r *Run) chain(owner, ownerID, kind string, payload map[string]any) {
	r.eng.dispatch(r.out, owner, ownerID, kind, payload)
}

// say appends a player-facing message, prefixed with a speaker when one is
// in effect.
func (r *Run) say(speaker, line string) {
	if speaker == "" {
		r.out.Messages = append(r.out.Messages, line)
		return
	}
	r.out.Messages = append(r.out.Messages, speaker+": "+line)
}

// entityRef reads a required reference property from the node's bag. When
// the category is non-blank, the referenced entity must be registered.
func (r *Run) entityRef(node *types.Node, prop, category string) (string, error) {
	id := propString(node, prop)
	if id == "" {
		return "", fmt.Errorf("property %q is blank", prop)
	}
	if category != "" && !r.eng.store.Exists(id) {
		return "", fmt.Errorf("unknown %s %q", category, id)
	}
	return id, nil
}

func propString(node *types.Node, name string) string {
	return strings.TrimSpace(toString(node.Props[name]))
}

func questState(s *state.Store, quest string) string {
	if v, ok := s.Prop(quest, "state"); ok {
		return toString(v)
	}
	return ""
}
