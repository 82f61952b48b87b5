// Package catalog holds the immutable, process-wide registry of node kinds.
// The registry is built once by New in a fixed order grouped by category and
// is read-only afterwards.
package catalog

import (
	"fmt"

	"github.com/nholm/graphquest/types"
)

// Feature toggle names used by gated kinds.
const (
	FeatureCombat   = "combat"
	FeatureTrade    = "trade"
	FeatureNeeds    = "needs"
	FeatureDialogue = "dialogue"
)

// Catalog maps node-kind identifiers to their definitions.
type Catalog struct {
	byKind  map[string]types.KindDef
	ordered []types.KindDef
}

// New builds the full registry. Duplicate kind identifiers or malformed
// definitions panic: these are programming errors, not data errors.
func New() *Catalog {
	c := &Catalog{byKind: map[string]types.KindDef{}}
	registerTriggers(c)
	registerBranches(c)
	registerEffects(c)
	registerFlow(c)
	registerData(c)
	registerDialogue(c)
	return c
}

// add registers one definition, enforcing the build-time invariants:
// unique kind ids, unique port names per direction, and at least one
// execution port on every trigger/branch/effect kind.
func (c *Catalog) add(def types.KindDef) {
	if _, dup := c.byKind[def.Kind]; dup {
		panic(fmt.Sprintf("catalog: duplicate kind %q", def.Kind))
	}
	checkPorts(def.Kind, def.Inputs)
	checkPorts(def.Kind, def.Outputs)
	switch def.Category {
	case types.CategoryTrigger, types.CategoryBranch, types.CategoryEffect:
		if len(execPorts(def.Outputs)) == 0 && len(execPorts(def.Inputs)) == 0 {
			panic(fmt.Sprintf("catalog: kind %q declares no execution port", def.Kind))
		}
	case types.CategoryData:
		if len(execPorts(def.Inputs)) > 0 || len(execPorts(def.Outputs)) > 0 {
			panic(fmt.Sprintf("catalog: data kind %q declares an execution port", def.Kind))
		}
	}
	c.byKind[def.Kind] = def
	c.ordered = append(c.ordered, def)
}

func checkPorts(kind string, ports []types.PortDef) {
	seen := map[string]bool{}
	for _, p := range ports {
		if seen[p.Name] {
			panic(fmt.Sprintf("catalog: kind %q declares port %q twice", kind, p.Name))
		}
		seen[p.Name] = true
	}
}

func execPorts(ports []types.PortDef) []types.PortDef {
	var out []types.PortDef
	for _, p := range ports {
		if p.Channel == types.ChannelExec {
			out = append(out, p)
		}
	}
	return out
}

// Lookup returns the definition for a kind identifier.
func (c *Catalog) Lookup(kind string) (types.KindDef, bool) {
	def, ok := c.byKind[kind]
	return def, ok
}

// Kinds returns all definitions in registration order.
func (c *Catalog) Kinds() []types.KindDef {
	out := make([]types.KindDef, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// KindsFor returns the definitions an author may attach to the given owner
// entity type, filtered by the currently enabled features.
func (c *Catalog) KindsFor(owner string, features map[string]bool) []types.KindDef {
	bit, ok := OwnerBit(owner)
	if !ok {
		return nil
	}
	var out []types.KindDef
	for _, def := range c.ordered {
		if def.Owners&bit == 0 {
			continue
		}
		if def.Feature != "" && !features[def.Feature] {
			continue
		}
		out = append(out, def)
	}
	return out
}

// OwnerBit maps an owner entity type string to its bitset flag.
func OwnerBit(owner string) (types.OwnerSet, bool) {
	switch owner {
	case "room":
		return types.OwnerRoom, true
	case "door":
		return types.OwnerDoor, true
	case "npc":
		return types.OwnerNPC, true
	case "object":
		return types.OwnerObject, true
	case "player":
		return types.OwnerPlayer, true
	case "quest":
		return types.OwnerQuest, true
	case "game":
		return types.OwnerGame, true
	default:
		return 0, false
	}
}

// RequiresValue reports whether a property must have a value set:
// either explicitly required, or selecting an entity reference.
func RequiresValue(p types.PropDef) bool {
	return p.Required || p.EntityRef != ""
}

// FindInput returns the named input port of a definition.
func FindInput(def types.KindDef, name string) (types.PortDef, bool) {
	for _, p := range def.Inputs {
		if p.Name == name {
			return p, true
		}
	}
	return types.PortDef{}, false
}

// FindOutput returns the named output port of a definition.
func FindOutput(def types.KindDef, name string) (types.PortDef, bool) {
	for _, p := range def.Outputs {
		if p.Name == name {
			return p, true
		}
	}
	return types.PortDef{}, false
}

// ExecOutputs returns the execution output ports of a definition in
// declaration order.
func ExecOutputs(def types.KindDef) []types.PortDef {
	return execPorts(def.Outputs)
}

// PrimaryExecOutput returns the first declared execution output, the one a
// recovered no-op node continues through.
func PrimaryExecOutput(def types.KindDef) (types.PortDef, bool) {
	outs := execPorts(def.Outputs)
	if len(outs) == 0 {
		return types.PortDef{}, false
	}
	return outs[0], true
}

// DisplayName returns the authoring-facing name of a kind.
func DisplayName(def types.KindDef) string {
	if def.Label != "" {
		return def.Label
	}
	return def.Kind
}
