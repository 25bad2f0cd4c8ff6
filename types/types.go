// Package types defines the shared data structures for the adventure logic
// core: global variables, logic graphs and their node variants, and
// interaction rules. Structs here are plain data; behavior lives in the
// graph, match, and project packages.
package types

import "encoding/json"

// NodeKind tags a LogicNode variant. The set is closed: persistence rejects
// unknown tags.
type NodeKind string

const (
	KindAction    NodeKind = "Action"
	KindCondition NodeKind = "Condition"
	KindDialogue  NodeKind = "Dialogue"
)

// EdgeLabel names an outgoing edge slot on a node. Which labels a node may
// carry depends on its kind: Action and Dialogue nodes have only "next",
// Condition nodes have exactly "success" and "failure".
type EdgeLabel string

const (
	EdgeNext    EdgeLabel = "next"
	EdgeSuccess EdgeLabel = "success"
	EdgeFailure EdgeLabel = "failure"
)

// Edge is a labeled outgoing connection. A node holds at most one edge per
// label; connecting again replaces the target.
type Edge struct {
	Label  EdgeLabel
	Target string // node id within the same graph
}

// Param is one named, typed parameter of an ActionNode. Parameters keep
// their authored order.
type Param struct {
	Name  string
	Value Value
}

// LogicNode is one node of a logic graph. Kind selects which of the
// variant field groups is meaningful; the others stay zero. X/Y/Width/Height
// are presentation-only but still round-trip through persistence.
type LogicNode struct {
	ID   string
	Kind NodeKind

	X, Y          int
	Width, Height int

	Edges []Edge // ordered, at most one per label

	// Action fields.
	Command string
	Params  []Param

	// Condition fields.
	VariableID    string
	Operator      Operator
	RequiredValue Value

	// Dialogue fields.
	CharacterID    string // empty means narrator / no speaker
	Text           string
	IsPlayerChoice bool

	// Extra holds wire fields this version does not know about, so a later
	// encode does not drop data written by a newer schema.
	Extra map[string]json.RawMessage
}

// LogicGraph is a named, directed graph of logic nodes. Node order is
// insertion order and is preserved by persistence for stable diffs.
type LogicGraph struct {
	ID    string
	Name  string
	Nodes []*LogicNode

	Extra map[string]json.RawMessage
}

// GlobalVariable is a project-scoped variable referenced by id from
// condition nodes and rule predicates. References are weak: deleting a
// variable leaves referers dangling, which validation flags.
type GlobalVariable struct {
	ID           string
	Name         string
	Type         ValueType
	InitialValue Value
	Category     string

	Extra map[string]json.RawMessage
}

// RuleCondition is one predicate of an InteractionRule. All of a rule's
// conditions must hold (logical AND, short-circuit).
type RuleCondition struct {
	VariableID string
	Operator   Operator
	Value      Value
}

// SceneWildcard matches any scene in an InteractionRule.
const SceneWildcard = "*"

// InteractionRule binds a player action shape to a logic graph. SceneID may
// be the "*" wildcard; the optional item/hotspot fields match only when the
// action carries the same value, or when both sides are absent.
type InteractionRule struct {
	ID              string
	SceneID         string // concrete scene id or SceneWildcard
	VerbID          string
	PrimaryItemID   string // optional
	SecondaryItemID string // optional
	TargetHotspotID string // optional
	Priority        int    // higher checked first

	Conditions []RuleCondition

	LogicGraphID       string
	InitialNodeID      string // optional entry override
	FallbackDialogueID string // optional

	Extra map[string]json.RawMessage
}

// PlayerAction is the shape the matcher resolves against. Optional fields
// are empty strings when absent.
type PlayerAction struct {
	SceneID         string
	VerbID          string
	PrimaryItemID   string
	SecondaryItemID string
	TargetHotspotID string
}

// VariableReader reads a variable's current value from a read-only state
// snapshot. Resolve and Traverse never mutate through one. The second
// return is false when the id is unknown.
type VariableReader func(id string) (Value, bool)

// Effect is one emitted command during traversal: an ActionNode's command
// and parameters, tagged with the node that produced it.
type Effect struct {
	NodeID  string
	Command string
	Params  []Param
}
