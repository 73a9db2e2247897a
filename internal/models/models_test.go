package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"zero", float64(0), false},
		{"nan", math.NaN(), false},
		{"number", float64(12), true},
		{"empty string", "", false},
		{"blank string", " ", true},
		{"zero string", "0", true},
		{"int", 5, true},
		{"int zero", 0, false},
		{"object", map[string]any{}, true},
		{"array", []any{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truthy(tt.in))
		})
	}
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "100", Stringify(float64(100)))
	assert.Equal(t, "1200.5", Stringify(1200.5))
	assert.Equal(t, "abc", Stringify("abc"))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "42", Stringify(42))
	assert.Equal(t, "[object Object]", Stringify(map[string]any{"a": 1}))
	assert.Equal(t, "1,x", Stringify([]any{float64(1), "x"}))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, float64(0), Number(nil))
	assert.Equal(t, float64(100), Number("100"))
	assert.Equal(t, float64(100), Number(" 100 "))
	assert.Equal(t, float64(0), Number("  "))
	assert.Equal(t, 3.5, Number(3.5))
	assert.Equal(t, float64(1), Number(true))
	assert.True(t, math.IsNaN(Number("abc")))
	assert.True(t, math.IsNaN(Number(map[string]any{})))
}

func TestNumberOr(t *testing.T) {
	assert.Equal(t, float64(100), NumberOr(nil, 100))
	assert.Equal(t, float64(100), NumberOr("", 100))
	assert.Equal(t, float64(100), NumberOr(float64(0), 100))
	assert.Equal(t, float64(150), NumberOr("150", 100))
}

func TestValidationHelpers(t *testing.T) {
	assert.True(t, IsAllowedSize("100"))
	assert.True(t, IsAllowedSize("150"))
	assert.False(t, IsAllowedSize("120"))
	assert.False(t, IsAllowedSize(" 100"))

	assert.True(t, IsAllowedImageFormat("JPG"))
	assert.True(t, IsAllowedImageFormat("jpeg"))
	assert.True(t, IsAllowedImageFormat("Png"))
	assert.False(t, IsAllowedImageFormat("gif"))

	assert.Nil(t, OptionalString("   "))
	require.NotNil(t, OptionalString(" a@b.com "))
	assert.Equal(t, "a@b.com", *OptionalString(" a@b.com "))

	code := NormalizePuzzleCode("  pz-12a ")
	require.NotNil(t, code)
	assert.Equal(t, "PZ-12A", *code)
	assert.Nil(t, NormalizePuzzleCode(""))

	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank("   "))
	assert.True(t, IsBlank(float64(0)))
	assert.False(t, IsBlank(float64(38)))
	assert.False(t, IsBlank("A"))
}

func TestNewOrderPayload_Defaults(t *testing.T) {
	var req OrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "A",
		"email": "a@b.com",
		"size": "100",
		"pieces": 100,
		"total": 38,
		"imageUrl": "http://x/y.jpg",
		"imageWidth": 2000
	}`), &req))

	data, err := json.Marshal(NewOrderPayload(&req))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "", got["phone"])
	assert.Equal(t, map[string]any{}, got["addons"])
	assert.Equal(t, float64(2000), got["imageWidth"])
	assert.Equal(t, "", got["imageHeight"])
	assert.Equal(t, "", got["imageFormat"])
	assert.Equal(t, "", got["notes"])
	assert.Equal(t, float64(100), got["pieces"])
	assert.Equal(t, "100", got["size"])
	assert.NotContains(t, got, "company")
}
