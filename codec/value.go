package codec

import (
	"encoding/json"
	"fmt"

	"github.com/nathoo/advcore/types"
)

// valueWire is the on-disk form of a typed scalar: the type tag selects how
// the value payload is read. Unknown tags are a decode error, never guessed.
type valueWire struct {
	Type  types.ValueType `json:"type"`
	Value json.RawMessage `json:"value"`
}

func encodeValue(v types.Value) (valueWire, error) {
	var payload any
	switch v.Type {
	case types.TypeBool:
		payload = v.Bool
	case types.TypeInt:
		payload = v.Int
	case types.TypeFloat:
		payload = v.Float
	case types.TypeString, types.TypeEnum:
		payload = v.Str
	default:
		return valueWire{}, fmt.Errorf("cannot encode value of type %q", v.Type)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return valueWire{}, err
	}
	return valueWire{Type: v.Type, Value: raw}, nil
}

func decodeValue(w valueWire) (types.Value, error) {
	switch w.Type {
	case types.TypeBool:
		var b bool
		if err := json.Unmarshal(w.Value, &b); err != nil {
			return types.Value{}, fmt.Errorf("boolean value: %w", err)
		}
		return types.BoolValue(b), nil
	case types.TypeInt:
		var n int64
		if err := json.Unmarshal(w.Value, &n); err != nil {
			return types.Value{}, fmt.Errorf("integer value: %w", err)
		}
		return types.IntValue(n), nil
	case types.TypeFloat:
		var f float64
		if err := json.Unmarshal(w.Value, &f); err != nil {
			return types.Value{}, fmt.Errorf("float value: %w", err)
		}
		return types.FloatValue(f), nil
	case types.TypeString:
		var s string
		if err := json.Unmarshal(w.Value, &s); err != nil {
			return types.Value{}, fmt.Errorf("string value: %w", err)
		}
		return types.StringValue(s), nil
	case types.TypeEnum:
		var s string
		if err := json.Unmarshal(w.Value, &s); err != nil {
			return types.Value{}, fmt.Errorf("enum value: %w", err)
		}
		return types.EnumValue(s), nil
	}
	return types.Value{}, fmt.Errorf("unknown value type %q", w.Type)
}
