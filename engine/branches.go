package engine

import (
	"fmt"

	"github.com/nholm/graphquest/types"
)

// evalBranch evaluates a branch node's predicate and returns exactly one of
// "yes"/"no". Predicate errors surface as faults; the caller then recovers
// through the primary ("yes") output's siblings rule.
func (r *Run) evalBranch(node *types.Node, def types.KindDef) (string, error) {
	ok, err := r.predicate(node, def)
	if err != nil {
		return "", err
	}
	if ok {
		return "yes", nil
	}
	return "no", nil
}

func (r *Run) predicate(node *types.Node, def types.KindDef) (bool, error) {
	s := r.eng.store

	switch node.Kind {
	case "FlagIsSet":
		name, err := r.entityRef(node, "Flag", "")
		if err != nil {
			return false, err
		}
		return s.Flag(name), nil

	case "CounterCompare":
		name, err := r.entityRef(node, "Counter", "")
		if err != nil {
			return false, err
		}
		want, err := r.intInput(node, def, "Value")
		if err != nil {
			return false, err
		}
		return compareNumbers(propString(node, "Op"), float64(s.Counter(name)), float64(want))

	case "HasItem":
		obj, err := r.entityRef(node, "Object", "object")
		if err != nil {
			return false, err
		}
		return s.HasItem(obj), nil

	case "HasGold":
		amt, err := r.intInput(node, def, "Amount")
		if err != nil {
			return false, err
		}
		return s.Player.Gold >= amt, nil

	case "PlayerInRoom":
		room, err := r.entityRef(node, "Room", "room")
		if err != nil {
			return false, err
		}
		return s.Player.Location == room, nil

	case "EntityInRoom":
		entity, err := r.entityRef(node, "Entity", "entity")
		if err != nil {
			return false, err
		}
		room, err := r.entityRef(node, "Room", "room")
		if err != nil {
			return false, err
		}
		loc, _ := s.Prop(entity, "location")
		return toString(loc) == room, nil

	case "PropertyEquals":
		entity, err := r.entityRef(node, "Entity", "entity")
		if err != nil {
			return false, err
		}
		prop, err := r.entityRef(node, "Property", "")
		if err != nil {
			return false, err
		}
		want, err := r.input(node, def, "Value")
		if err != nil {
			return false, err
		}
		got, _ := s.Prop(entity, prop)
		return toString(got) == toString(want), nil

	case "DoorIsLocked":
		door, err := r.entityRef(node, "Door", "door")
		if err != nil {
			return false, err
		}
		v, _ := s.Prop(door, "locked")
		return toBool(v), nil

	case "DoorIsOpen":
		door, err := r.entityRef(node, "Door", "door")
		if err != nil {
			return false, err
		}
		v, _ := s.Prop(door, "open")
		return toBool(v), nil

	case "QuestStateIs":
		quest, err := r.entityRef(node, "Quest", "quest")
		if err != nil {
			return false, err
		}
		state := questState(s, quest)
		if state == "" {
			state = "inactive"
		}
		return state == propString(node, "State"), nil

	case "InCombat":
		return r.eng.periph.Combat.Active(), nil

	case "EnemyHealthBelow":
		enemy := r.eng.periph.Combat.EnemyID()
		if enemy == "" {
			return false, fmt.Errorf("not in combat")
		}
		want, err := r.intInput(node, def, "Value")
		if err != nil {
			return false, err
		}
		v, _ := s.Prop(enemy, "hp")
		return toInt(v) < want, nil

	case "PlayerHealthBelow":
		want, err := r.intInput(node, def, "Value")
		if err != nil {
			return false, err
		}
		return s.Stat("hp") < want, nil

	case "NeedBelow":
		want, err := r.intInput(node, def, "Value")
		if err != nil {
			return false, err
		}
		return s.Need(propString(node, "Need")) < want, nil

	case "NumberCompare":
		a, err := r.floatInput(node, def, "A")
		if err != nil {
			return false, err
		}
		b, err := r.floatInput(node, def, "B")
		if err != nil {
			return false, err
		}
		return compareNumbers(propString(node, "Op"), a, b)

	case "StringEquals":
		a, err := r.stringInput(node, def, "A")
		if err != nil {
			return false, err
		}
		b, err := r.stringInput(node, def, "B")
		if err != nil {
			return false, err
		}
		return a == b, nil

	case "BoolBranch":
		return r.boolInput(node, def, "Condition")

	case "ItemCountCompare":
		want, err := r.intInput(node, def, "Value")
		if err != nil {
			return false, err
		}
		return compareNumbers(propString(node, "Op"),
			float64(len(s.Player.Inventory)), float64(want))
	}

	return false, fmt.Errorf("branch kind %q has no interpreter", node.Kind)
}
