package codec

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/nathoo/advcore/types"
)

// TestValueRoundTripProperties verifies that every representable scalar
// survives encode then decode unchanged, whatever its payload.
func TestValueRoundTripProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	roundTrips := func(v types.Value) bool {
		w, err := encodeValue(v)
		if err != nil {
			return false
		}
		got, err := decodeValue(w)
		if err != nil {
			return false
		}
		return got.Type == v.Type && got.Equals(v)
	}

	properties.Property("bool values round-trip", prop.ForAll(
		func(b bool) bool { return roundTrips(types.BoolValue(b)) },
		gen.Bool(),
	))

	properties.Property("integer values round-trip", prop.ForAll(
		func(n int64) bool { return roundTrips(types.IntValue(n)) },
		gen.Int64(),
	))

	properties.Property("float values round-trip", prop.ForAll(
		func(f float64) bool { return roundTrips(types.FloatValue(f)) },
		gen.Float64Range(-1e12, 1e12),
	))

	properties.Property("string values round-trip", prop.ForAll(
		func(s string) bool { return roundTrips(types.StringValue(s)) },
		gen.AnyString(),
	))

	properties.Property("enum values round-trip", prop.ForAll(
		func(s string) bool { return roundTrips(types.EnumValue(s)) },
		gen.Identifier(),
	))

	properties.Property("variable records round-trip through a file", prop.ForAll(
		func(id string, n int64) bool {
			in := []types.GlobalVariable{{
				ID: "var_" + id, Type: types.TypeInt, InitialValue: types.IntValue(n),
			}}
			data, err := EncodeVariables(in)
			if err != nil {
				return false
			}
			out, err := DecodeVariables(data)
			if err != nil || len(out) != 1 {
				return false
			}
			return out[0].ID == in[0].ID && out[0].InitialValue.Equals(in[0].InitialValue)
		},
		gen.Identifier(),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
