package grid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueText(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"string", String("VH-1001"), "VH-1001"},
		{"integer", Int(42), "42"},
		{"fraction", Number(3.25), "3.25"},
		{"null", Null(), ""},
		{"zero value", Value{}, ""},
		{"nil pointer", NullableString(nil), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Text())
		})
	}
}

func TestCompareValuesAcrossKinds(t *testing.T) {
	assert.Equal(t, -1, compareValues(Int(100), String("1")))
	assert.Equal(t, 1, compareValues(String("a"), Int(5)))
	assert.Equal(t, 0, compareValues(Int(2), Number(2)))
	assert.Equal(t, -1, compareValues(String("Ford"), String("Honda")))
	assert.True(t, Value{}.IsNull())
	assert.Equal(t, KindNumber, Int(1).Kind())
}

func TestValueAnyAndJSON(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		any  any
		json string
	}{
		{"string", String("VH-1001"), "VH-1001", `"VH-1001"`},
		{"number", Number(48.5), 48.5, `48.5`},
		{"int", Int(36), 36.0, `36`},
		{"null", Null(), nil, `null`},
		{"nil pointer", NullableString(nil), nil, `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.any, tt.v.Any())
			data, err := json.Marshal(tt.v)
			require.NoError(t, err)
			assert.JSONEq(t, tt.json, string(data))
		})
	}
}
