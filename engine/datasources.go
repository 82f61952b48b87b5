package engine

import (
	"fmt"

	"github.com/nholm/graphquest/types"
)

// evalSource computes a pure data node's output. Sources read live state at
// the moment they are pulled.
func (r *Run) evalSource(node *types.Node, def types.KindDef, port string) (any, error) {
	if port != "value" {
		return nil, fmt.Errorf("kind %q declares no data output %q", node.Kind, port)
	}
	s := r.eng.store

	switch node.Kind {
	case "IntValue":
		v, err := r.constant(node, def)
		return toInt(v), err
	case "FloatValue":
		v, err := r.constant(node, def)
		return toFloat(v), err
	case "BoolValue":
		v, err := r.constant(node, def)
		return toBool(v), err
	case "StringValue":
		v, err := r.constant(node, def)
		return toString(v), err

	case "FlagValue":
		name, err := r.entityRef(node, "Flag", "")
		if err != nil {
			return nil, err
		}
		return s.Flag(name), nil

	case "CounterValue":
		name, err := r.entityRef(node, "Counter", "")
		if err != nil {
			return nil, err
		}
		return s.Counter(name), nil

	case "PropertyValue":
		entity, err := r.entityRef(node, "Entity", "entity")
		if err != nil {
			return nil, err
		}
		prop, err := r.entityRef(node, "Property", "")
		if err != nil {
			return nil, err
		}
		v, _ := s.Prop(entity, prop)
		return toString(v), nil

	case "PlayerStat":
		return s.Stat(propString(node, "Stat")), nil
	case "PlayerGold":
		return s.Player.Gold, nil
	case "ItemCount":
		return len(s.Player.Inventory), nil
	case "TurnNumber":
		return s.Turn, nil

	case "RandomInt":
		lo, err := r.intInput(node, def, "Min")
		if err != nil {
			return nil, err
		}
		hi, err := r.intInput(node, def, "Max")
		if err != nil {
			return nil, err
		}
		return r.eng.rng.Range(lo, hi), nil

	case "Add", "Subtract", "Multiply", "Divide", "Modulo", "Min", "Max":
		return r.arith(node, def)

	case "Negate":
		a, err := r.floatInput(node, def, "A")
		if err != nil {
			return nil, err
		}
		return -a, nil

	case "Compare":
		a, err := r.floatInput(node, def, "A")
		if err != nil {
			return nil, err
		}
		b, err := r.floatInput(node, def, "B")
		if err != nil {
			return nil, err
		}
		return compareNumbers(propString(node, "Op"), a, b)

	case "And", "Or", "Xor":
		a, err := r.boolInput(node, def, "A")
		if err != nil {
			return nil, err
		}
		b, err := r.boolInput(node, def, "B")
		if err != nil {
			return nil, err
		}
		switch node.Kind {
		case "And":
			return a && b, nil
		case "Or":
			return a || b, nil
		default:
			return a != b, nil
		}

	case "Not":
		a, err := r.boolInput(node, def, "A")
		if err != nil {
			return nil, err
		}
		return !a, nil

	case "Concat":
		a, err := r.stringInput(node, def, "A")
		if err != nil {
			return nil, err
		}
		b, err := r.stringInput(node, def, "B")
		if err != nil {
			return nil, err
		}
		return a + b, nil

	case "NumberToString":
		v, err := r.floatInput(node, def, "Value")
		if err != nil {
			return nil, err
		}
		return toString(v), nil

	case "SelectValue":
		// Lazy: only the selected side is pulled, so the unselected side
		// may be unconnected or even erroneous without consequence.
		cond, err := r.boolInput(node, def, "Condition")
		if err != nil {
			return nil, err
		}
		if cond {
			return r.input(node, def, "IfTrue")
		}
		return r.input(node, def, "IfFalse")
	}

	return nil, fmt.Errorf("data kind %q has no interpreter", node.Kind)
}

// constant reads a literal kind's Value property, preferring the bag over
// the catalog default.
func (r *Run) constant(node *types.Node, def types.KindDef) (any, error) {
	if v, ok := node.Props["Value"]; ok && v != nil {
		return v, nil
	}
	for _, p := range def.Props {
		if p.Name == "Value" {
			return p.Default, nil
		}
	}
	return nil, fmt.Errorf("kind %q declares no Value property", node.Kind)
}

func (r *Run) arith(node *types.Node, def types.KindDef) (any, error) {
	a, err := r.floatInput(node, def, "A")
	if err != nil {
		return nil, err
	}
	b, err := r.floatInput(node, def, "B")
	if err != nil {
		return nil, err
	}
	switch node.Kind {
	case "Add":
		return a + b, nil
	case "Subtract":
		return a - b, nil
	case "Multiply":
		return a * b, nil
	case "Divide":
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return a / b, nil
	case "Modulo":
		ib := toInt(b)
		if ib == 0 {
			return nil, fmt.Errorf("modulo by zero")
		}
		return float64(toInt(a) % ib), nil
	case "Min":
		if a < b {
			return a, nil
		}
		return b, nil
	case "Max":
		if a > b {
			return a, nil
		}
		return b, nil
	}
	return nil, fmt.Errorf("arithmetic kind %q has no interpreter", node.Kind)
}
