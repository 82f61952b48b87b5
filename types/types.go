// Package types defines the shared data structures for the GraphQuest engine.
// This package contains only type definitions — no logic, no methods.
package types

// ValueKind identifies the payload type of a data port or property.
type ValueKind string

const (
	KindInt    ValueKind = "int"
	KindFloat  ValueKind = "float"
	KindBool   ValueKind = "bool"
	KindString ValueKind = "string"
)

// Channel distinguishes execution ports (control pulse, no payload)
// from data ports (typed value, resolved on demand).
type Channel string

const (
	ChannelExec Channel = "exec"
	ChannelData Channel = "data"
)

// Category groups node kinds by interpreter.
type Category string

const (
	CategoryTrigger  Category = "trigger"
	CategoryBranch   Category = "branch"
	CategoryEffect   Category = "effect"
	CategoryFlow     Category = "flow"
	CategoryData     Category = "data"
	CategoryDialogue Category = "dialogue"
)

// OwnerSet is a bitset of the entity types a node kind may attach to.
type OwnerSet uint16

const (
	OwnerRoom OwnerSet = 1 << iota
	OwnerDoor
	OwnerNPC
	OwnerObject
	OwnerPlayer
	OwnerQuest
	OwnerGame
	OwnerAny OwnerSet = 0xFFFF
)

// PortDef declares one input or output port of a node kind.
type PortDef struct {
	Name    string
	Label   string // display label, "" means use Name
	Channel Channel
	Value   ValueKind // data ports only
	Default any       // data inputs only; nil means no default
}

// PropDef declares one configurable property of a node kind.
type PropDef struct {
	Name      string
	Label     string
	Value     ValueKind
	Default   any
	Options   []string // enumerated values; empty otherwise
	EntityRef string   // entity category this selects ("room", "object", ...), "" if none
	Required  bool
}

// KindDef is one immutable Node Catalog entry.
type KindDef struct {
	Kind     string
	Label    string
	Category Category
	Owners   OwnerSet
	Inputs   []PortDef
	Outputs  []PortDef
	Props    []PropDef
	Feature  string // required feature toggle, "" if ungated
}

// Node is one authored node instance in a graph.
type Node struct {
	ID      string
	Kind    string
	Props   map[string]any
	Comment string // cosmetic, ignored at runtime
}

// Edge connects a source output port to a destination input port.
type Edge struct {
	From     string
	FromPort string
	To       string
	ToPort   string
}

// Graph is one authored script attached to an owner entity.
// Graphs are read-only during play.
type Graph struct {
	Owner   string // owner entity type: "room", "door", "npc", "object", "quest", "game"
	OwnerID string
	Nodes   []Node
	Edges   []Edge
}

// Incomplete records a node whose required properties are missing values.
type Incomplete struct {
	NodeID  string
	Name    string // display name of the node kind
	Missing []string
}

// Report is the result of validating one graph.
type Report struct {
	HasTrigger bool
	HasEffect  bool
	Reachable  bool
	Incomplete []Incomplete
	Errors     []string // structural: dangling edges, undeclared ports, unknown kinds
	Warnings   []string // advisory: data-type mismatches, orphan nodes
	Valid      bool
}

// Fault records one recoverable per-node failure during a run.
type Fault struct {
	NodeID string
	Kind   string
	Reason string
}

// Choice describes a suspended player-choice node awaiting input.
type Choice struct {
	RunID   string
	Speaker string
	Options []string
}

// Outcome summarizes everything one triggered event produced.
type Outcome struct {
	Messages  []string
	Faults    []Fault
	Runs      int
	Completed int
	Suspended int
	Choices   []Choice
	Trace     []string // node ids in firing order, when tracing is enabled
}
