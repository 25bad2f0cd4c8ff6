package codec

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"github.com/nathoo/advcore/types"
)

// validate checks structural constraints on decoded wire records before they
// are compiled into model types, so a corrupt file surfaces as one located
// DecodeError instead of a half-built project.
var validate = validator.New()

type variableWire struct {
	ID           string          `json:"id" validate:"required"`
	Name         string          `json:"name,omitempty"`
	Type         types.ValueType `json:"type" validate:"required,oneof=boolean integer float string enum"`
	InitialValue valueWire       `json:"initial_value"`
	Category     string          `json:"category,omitempty"`
}

var variableKeys = keySet("id", "name", "type", "initial_value", "category")

type edgeWire struct {
	Label  types.EdgeLabel `json:"label" validate:"required,oneof=next success failure"`
	Target string          `json:"target" validate:"required"`
}

type paramWire struct {
	Name  string    `json:"name" validate:"required"`
	Value valueWire `json:"value"`
}

// nodeWire covers every node variant in one struct; node_type selects which
// optional fields are meaningful. Encoding keeps variant fields omitempty so
// an Action node never carries dialogue keys.
type nodeWire struct {
	ID       string         `json:"id" validate:"required"`
	NodeType types.NodeKind `json:"node_type" validate:"required,oneof=Action Condition Dialogue"`

	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`

	Edges []edgeWire `json:"output_edges" validate:"dive"`

	Command string      `json:"command,omitempty"`
	Params  []paramWire `json:"parameters,omitempty" validate:"dive"`

	VariableID    string         `json:"variable_id,omitempty"`
	Operator      types.Operator `json:"operator,omitempty" validate:"omitempty,oneof=EQ NE GT LT GE LE"`
	RequiredValue *valueWire     `json:"required_value,omitempty"`

	CharacterID    string `json:"character_id,omitempty"`
	Text           string `json:"text,omitempty"`
	IsPlayerChoice bool   `json:"is_player_choice,omitempty"`
}

var nodeKeys = keySet(
	"id", "node_type", "x", "y", "width", "height", "output_edges",
	"command", "parameters",
	"variable_id", "operator", "required_value",
	"character_id", "text", "is_player_choice",
)

type graphWire struct {
	ID    string            `json:"id" validate:"required"`
	Name  string            `json:"name"`
	Nodes []json.RawMessage `json:"nodes"`
}

var graphKeys = keySet("id", "name", "nodes")

type conditionWire struct {
	VariableID string         `json:"variable_id" validate:"required"`
	Operator   types.Operator `json:"operator" validate:"required,oneof=EQ NE GT LT GE LE"`
	Value      valueWire      `json:"value"`
}

type ruleWire struct {
	ID              string `json:"id" validate:"required"`
	SceneID         string `json:"scene_id" validate:"required"`
	VerbID          string `json:"verb_id" validate:"required"`
	PrimaryItemID   string `json:"primary_item_id,omitempty"`
	SecondaryItemID string `json:"secondary_item_id,omitempty"`
	TargetHotspotID string `json:"target_hotspot_id,omitempty"`
	Priority        int    `json:"priority"`

	Conditions []conditionWire `json:"conditions" validate:"dive"`

	LogicGraphID       string `json:"logic_graph_id,omitempty"`
	InitialNodeID      string `json:"initial_node_id,omitempty"`
	FallbackDialogueID string `json:"fallback_dialogue_id,omitempty"`
}

var ruleKeys = keySet(
	"id", "scene_id", "verb_id",
	"primary_item_id", "secondary_item_id", "target_hotspot_id",
	"priority", "conditions",
	"logic_graph_id", "initial_node_id", "fallback_dialogue_id",
)

func keySet(keys ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// splitExtra returns the keys of raw that the current schema does not know,
// so a later encode can write them back untouched.
func splitExtra(raw json.RawMessage, known map[string]struct{}) (map[string]json.RawMessage, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, err
	}
	var extra map[string]json.RawMessage
	for k, v := range all {
		if _, ok := known[k]; !ok {
			if extra == nil {
				extra = map[string]json.RawMessage{}
			}
			extra[k] = v
		}
	}
	return extra, nil
}

// mergeExtra folds preserved unknown fields back into an encoded object.
// Known keys always win over stale extras of the same name.
func mergeExtra(encoded []byte, extra map[string]json.RawMessage) ([]byte, error) {
	if len(extra) == 0 {
		return encoded, nil
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &all); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := all[k]; !ok {
			all[k] = v
		}
	}
	return json.Marshal(all)
}
