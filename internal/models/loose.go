package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// The browser page sends loosely typed JSON: sizes arrive as "100" or 100,
// dimensions as numbers or numeric strings, flags as booleans or "1". The
// helpers below give those values the same meaning the page gives them.

// Truthy reports whether v counts as set. nil, false, 0, NaN and "" do not.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0 && !math.IsNaN(float64(t))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return cast.ToInt64(t) != 0
	default:
		return true
	}
}

// Stringify renders v the way it would be shown to a user: numbers without
// trailing zeros, booleans as true/false, objects as a non-empty marker.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return formatNumber(t)
	case float32:
		return formatNumber(float64(t))
	case map[string]any:
		return "[object Object]"
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return "[object Object]"
	}
	return s
}

// Number converts v to a float64. Blank strings become 0; anything that is
// not numeric becomes NaN.
func Number(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return math.NaN()
		}
		return f
	case map[string]any, []any:
		return math.NaN()
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return math.NaN()
	}
	return f
}

// NumberOr returns Number(v) when v is truthy, otherwise fallback.
func NumberOr(v any, fallback float64) float64 {
	if !Truthy(v) {
		return fallback
	}
	return Number(v)
}

// ValueOr returns v when it is truthy, otherwise fallback.
func ValueOr(v any, fallback any) any {
	if Truthy(v) {
		return v
	}
	return fallback
}

// IsUsableNumber reports whether f is a non-zero, non-NaN number.
func IsUsableNumber(f float64) bool {
	return f != 0 && !math.IsNaN(f)
}

func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatDimension renders an image dimension for user-facing notes.
func FormatDimension(f float64) string {
	return formatNumber(f)
}
