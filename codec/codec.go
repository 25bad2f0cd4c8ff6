// Package codec maps the in-memory project model to its on-disk JSON form
// and back, losslessly. Each top-level collection encodes as one JSON array;
// fields the current schema does not know are carried through a round trip
// untouched. Decode failures are fatal for the file they occur in and carry
// enough context to locate the offending record.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/nathoo/advcore/types"
)

// DecodeError reports a malformed record. It is fatal for the file it came
// from; other collections load independently.
type DecodeError struct {
	File     string // filled by the store layer
	EntityID string // id of the offending record, or "" if unreadable
	Err      error
}

func (e *DecodeError) Error() string {
	msg := "decode"
	if e.File != "" {
		msg += " " + e.File
	}
	if e.EntityID != "" {
		msg += fmt.Sprintf(" (entity %q)", e.EntityID)
	}
	return msg + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// rawID pulls the id out of a record that failed later decoding, for error
// context only.
func rawID(raw json.RawMessage) string {
	var probe struct {
		ID string `json:"id"`
	}
	if json.Unmarshal(raw, &probe) == nil {
		return probe.ID
	}
	return ""
}

// EncodeVariables encodes the global variable collection. An empty (or nil)
// slice encodes as an explicit empty array, so saving a fully emptied
// collection overwrites stale content instead of skipping the write.
func EncodeVariables(vars []types.GlobalVariable) ([]byte, error) {
	records := make([]json.RawMessage, 0, len(vars))
	for i := range vars {
		raw, err := encodeVariable(&vars[i])
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", vars[i].ID, err)
		}
		records = append(records, raw)
	}
	return json.MarshalIndent(records, "", "  ")
}

func encodeVariable(v *types.GlobalVariable) (json.RawMessage, error) {
	iv, err := encodeValue(v.InitialValue)
	if err != nil {
		return nil, fmt.Errorf("initial_value: %w", err)
	}
	w := variableWire{ID: v.ID, Name: v.Name, Type: v.Type, InitialValue: iv, Category: v.Category}
	raw, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return mergeExtra(raw, v.Extra)
}

// DecodeVariables decodes a global variable file.
func DecodeVariables(data []byte) ([]types.GlobalVariable, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &DecodeError{Err: err}
	}
	vars := make([]types.GlobalVariable, 0, len(records))
	for _, raw := range records {
		var w variableWire
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, &DecodeError{EntityID: rawID(raw), Err: err}
		}
		if err := validate.Struct(w); err != nil {
			return nil, &DecodeError{EntityID: w.ID, Err: err}
		}
		iv, err := decodeValue(w.InitialValue)
		if err != nil {
			return nil, &DecodeError{EntityID: w.ID, Err: fmt.Errorf("initial_value: %w", err)}
		}
		extra, err := splitExtra(raw, variableKeys)
		if err != nil {
			return nil, &DecodeError{EntityID: w.ID, Err: err}
		}
		vars = append(vars, types.GlobalVariable{
			ID: w.ID, Name: w.Name, Type: w.Type,
			InitialValue: iv, Category: w.Category, Extra: extra,
		})
	}
	return vars, nil
}

// EncodeGraphs encodes a logic graph collection, nodes in insertion order.
func EncodeGraphs(graphs []*types.LogicGraph) ([]byte, error) {
	records := make([]json.RawMessage, 0, len(graphs))
	for _, g := range graphs {
		raw, err := encodeGraph(g)
		if err != nil {
			return nil, fmt.Errorf("graph %q: %w", g.ID, err)
		}
		records = append(records, raw)
	}
	return json.MarshalIndent(records, "", "  ")
}

func encodeGraph(g *types.LogicGraph) (json.RawMessage, error) {
	w := graphWire{ID: g.ID, Name: g.Name, Nodes: make([]json.RawMessage, 0, len(g.Nodes))}
	for _, n := range g.Nodes {
		raw, err := encodeNode(n)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
		w.Nodes = append(w.Nodes, raw)
	}
	raw, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return mergeExtra(raw, g.Extra)
}

func encodeNode(n *types.LogicNode) (json.RawMessage, error) {
	w := nodeWire{
		ID: n.ID, NodeType: n.Kind,
		X: n.X, Y: n.Y, Width: n.Width, Height: n.Height,
		Edges: make([]edgeWire, 0, len(n.Edges)),
	}
	for _, e := range n.Edges {
		w.Edges = append(w.Edges, edgeWire{Label: e.Label, Target: e.Target})
	}
	switch n.Kind {
	case types.KindAction:
		w.Command = n.Command
		for _, p := range n.Params {
			pv, err := encodeValue(p.Value)
			if err != nil {
				return nil, fmt.Errorf("parameter %q: %w", p.Name, err)
			}
			w.Params = append(w.Params, paramWire{Name: p.Name, Value: pv})
		}
	case types.KindCondition:
		w.VariableID = n.VariableID
		w.Operator = n.Operator
		if n.RequiredValue.Type != "" {
			rv, err := encodeValue(n.RequiredValue)
			if err != nil {
				return nil, fmt.Errorf("required_value: %w", err)
			}
			w.RequiredValue = &rv
		}
	case types.KindDialogue:
		w.CharacterID = n.CharacterID
		w.Text = n.Text
		w.IsPlayerChoice = n.IsPlayerChoice
	}
	raw, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return mergeExtra(raw, n.Extra)
}

// DecodeGraphs decodes a logic graph file. Unknown node_type tags are a
// DecodeError: guessing a variant would corrupt the record on the next save.
func DecodeGraphs(data []byte) ([]*types.LogicGraph, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &DecodeError{Err: err}
	}
	graphs := make([]*types.LogicGraph, 0, len(records))
	for _, raw := range records {
		var w graphWire
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, &DecodeError{EntityID: rawID(raw), Err: err}
		}
		if err := validate.Struct(w); err != nil {
			return nil, &DecodeError{EntityID: w.ID, Err: err}
		}
		g := &types.LogicGraph{ID: w.ID, Name: w.Name, Nodes: make([]*types.LogicNode, 0, len(w.Nodes))}
		for _, nraw := range w.Nodes {
			n, err := decodeNode(nraw)
			if err != nil {
				err.EntityID = w.ID + "/" + err.EntityID
				return nil, err
			}
			g.Nodes = append(g.Nodes, n)
		}
		extra, err := splitExtra(raw, graphKeys)
		if err != nil {
			return nil, &DecodeError{EntityID: w.ID, Err: err}
		}
		g.Extra = extra
		graphs = append(graphs, g)
	}
	return graphs, nil
}

func decodeNode(raw json.RawMessage) (*types.LogicNode, *DecodeError) {
	var w nodeWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, &DecodeError{EntityID: rawID(raw), Err: err}
	}
	if err := validate.Struct(w); err != nil {
		return nil, &DecodeError{EntityID: w.ID, Err: err}
	}
	n := &types.LogicNode{
		ID: w.ID, Kind: w.NodeType,
		X: w.X, Y: w.Y, Width: w.Width, Height: w.Height,
		Command: w.Command, VariableID: w.VariableID, Operator: w.Operator,
		CharacterID: w.CharacterID, Text: w.Text, IsPlayerChoice: w.IsPlayerChoice,
	}
	for _, e := range w.Edges {
		n.Edges = append(n.Edges, types.Edge{Label: e.Label, Target: e.Target})
	}
	for _, p := range w.Params {
		pv, err := decodeValue(p.Value)
		if err != nil {
			return nil, &DecodeError{EntityID: w.ID, Err: fmt.Errorf("parameter %q: %w", p.Name, err)}
		}
		n.Params = append(n.Params, types.Param{Name: p.Name, Value: pv})
	}
	if w.RequiredValue != nil {
		rv, err := decodeValue(*w.RequiredValue)
		if err != nil {
			return nil, &DecodeError{EntityID: w.ID, Err: fmt.Errorf("required_value: %w", err)}
		}
		n.RequiredValue = rv
	}
	extra, err := splitExtra(raw, nodeKeys)
	if err != nil {
		return nil, &DecodeError{EntityID: w.ID, Err: err}
	}
	n.Extra = extra
	return n, nil
}

// EncodeRules encodes the interaction rule collection.
func EncodeRules(rules []types.InteractionRule) ([]byte, error) {
	records := make([]json.RawMessage, 0, len(rules))
	for i := range rules {
		raw, err := encodeRule(&rules[i])
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rules[i].ID, err)
		}
		records = append(records, raw)
	}
	return json.MarshalIndent(records, "", "  ")
}

func encodeRule(r *types.InteractionRule) (json.RawMessage, error) {
	w := ruleWire{
		ID: r.ID, SceneID: r.SceneID, VerbID: r.VerbID,
		PrimaryItemID: r.PrimaryItemID, SecondaryItemID: r.SecondaryItemID,
		TargetHotspotID: r.TargetHotspotID, Priority: r.Priority,
		LogicGraphID: r.LogicGraphID, InitialNodeID: r.InitialNodeID,
		FallbackDialogueID: r.FallbackDialogueID,
		Conditions:         make([]conditionWire, 0, len(r.Conditions)),
	}
	for _, c := range r.Conditions {
		cv, err := encodeValue(c.Value)
		if err != nil {
			return nil, fmt.Errorf("condition on %q: %w", c.VariableID, err)
		}
		w.Conditions = append(w.Conditions, conditionWire{VariableID: c.VariableID, Operator: c.Operator, Value: cv})
	}
	raw, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return mergeExtra(raw, r.Extra)
}

// DecodeRules decodes an interaction rule file.
func DecodeRules(data []byte) ([]types.InteractionRule, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &DecodeError{Err: err}
	}
	rules := make([]types.InteractionRule, 0, len(records))
	for _, raw := range records {
		var w ruleWire
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, &DecodeError{EntityID: rawID(raw), Err: err}
		}
		if err := validate.Struct(w); err != nil {
			return nil, &DecodeError{EntityID: w.ID, Err: err}
		}
		r := types.InteractionRule{
			ID: w.ID, SceneID: w.SceneID, VerbID: w.VerbID,
			PrimaryItemID: w.PrimaryItemID, SecondaryItemID: w.SecondaryItemID,
			TargetHotspotID: w.TargetHotspotID, Priority: w.Priority,
			LogicGraphID: w.LogicGraphID, InitialNodeID: w.InitialNodeID,
			FallbackDialogueID: w.FallbackDialogueID,
		}
		for _, c := range w.Conditions {
			cv, err := decodeValue(c.Value)
			if err != nil {
				return nil, &DecodeError{EntityID: w.ID, Err: fmt.Errorf("condition on %q: %w", c.VariableID, err)}
			}
			r.Conditions = append(r.Conditions, types.RuleCondition{VariableID: c.VariableID, Operator: c.Operator, Value: cv})
		}
		extra, err := splitExtra(raw, ruleKeys)
		if err != nil {
			return nil, &DecodeError{EntityID: w.ID, Err: err}
		}
		r.Extra = extra
		rules = append(rules, r)
	}
	return rules, nil
}
