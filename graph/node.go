// Package graph implements the node and graph model for logic graphs:
// construction, edge mutation, entry-point computation, validation, and the
// traversal contract the game runtime reimplements.
package graph

import "github.com/nathoo/advcore/types"

// NewActionNode constructs an Action node for the given registry command.
// Parameters keep the order they are given.
func NewActionNode(id, command string, params ...types.Param) *types.LogicNode {
	return &types.LogicNode{
		ID:      id,
		Kind:    types.KindAction,
		Command: command,
		Params:  params,
		Width:   240,
		Height:  160,
	}
}

// NewConditionNode constructs a Condition node comparing a variable against
// a required value.
func NewConditionNode(id, variableID string, op types.Operator, required types.Value) *types.LogicNode {
	return &types.LogicNode{
		ID:            id,
		Kind:          types.KindCondition,
		VariableID:    variableID,
		Operator:      op,
		RequiredValue: required,
		Width:         240,
		Height:        160,
	}
}

// NewDialogueNode constructs a Dialogue node. characterID may be empty for
// narrator lines.
func NewDialogueNode(id, characterID, text string, playerChoice bool) *types.LogicNode {
	return &types.LogicNode{
		ID:             id,
		Kind:           types.KindDialogue,
		CharacterID:    characterID,
		Text:           text,
		IsPlayerChoice: playerChoice,
		Width:          240,
		Height:         160,
	}
}

// AllowedLabels returns the outgoing edge labels a node variant defines.
func AllowedLabels(kind types.NodeKind) []types.EdgeLabel {
	switch kind {
	case types.KindCondition:
		return []types.EdgeLabel{types.EdgeSuccess, types.EdgeFailure}
	case types.KindAction, types.KindDialogue:
		return []types.EdgeLabel{types.EdgeNext}
	}
	return nil
}

// LabelAllowed reports whether a node variant defines the given label.
func LabelAllowed(kind types.NodeKind, label types.EdgeLabel) bool {
	for _, l := range AllowedLabels(kind) {
		if l == label {
			return true
		}
	}
	return false
}

// Connect sets the outgoing edge for (node, label) to target. A prior target
// for the same label is replaced: at most one target per label, last write
// wins. Returns an EdgeError if the label is not in the variant's label set.
func Connect(n *types.LogicNode, label types.EdgeLabel, target string) error {
	if !LabelAllowed(n.Kind, label) {
		return &EdgeError{NodeID: n.ID, Kind: n.Kind, Label: label}
	}
	for i := range n.Edges {
		if n.Edges[i].Label == label {
			n.Edges[i].Target = target
			return nil
		}
	}
	n.Edges = append(n.Edges, types.Edge{Label: label, Target: target})
	return nil
}

// Disconnect removes the outgoing edge for (node, label), if any.
func Disconnect(n *types.LogicNode, label types.EdgeLabel) {
	for i := range n.Edges {
		if n.Edges[i].Label == label {
			n.Edges = append(n.Edges[:i], n.Edges[i+1:]...)
			return
		}
	}
}

// EdgeTarget returns the target node id for a label, if connected.
func EdgeTarget(n *types.LogicNode, label types.EdgeLabel) (string, bool) {
	for _, e := range n.Edges {
		if e.Label == label {
			return e.Target, true
		}
	}
	return "", false
}

// SetParam sets or replaces a named parameter, preserving parameter order.
// Mutating parameters never changes the node's id or edge set.
func SetParam(n *types.LogicNode, name string, v types.Value) {
	for i := range n.Params {
		if n.Params[i].Name == name {
			n.Params[i].Value = v
			return
		}
	}
	n.Params = append(n.Params, types.Param{Name: name, Value: v})
}

// ParamValue looks up a parameter by name.
func ParamValue(n *types.LogicNode, name string) (types.Value, bool) {
	for _, p := range n.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return types.Value{}, false
}
