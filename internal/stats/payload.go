package stats

import (
	"encoding/json"
	"math"
)

// Bonus payloads come from loosely typed storage (JSONB, YAML). Every accessor
// here swallows type mismatches and reports ok=false instead of failing.

// group returns the nested object under key, or nil if missing or not an object.
func group(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	switch g := m[key].(type) {
	case map[string]any:
		return g
	case map[any]any:
		out := make(map[string]any, len(g))
		for k, v := range g {
			if ks, ok := k.(string); ok {
				out[ks] = v
			}
		}
		return out
	}
	return nil
}

// number returns a finite numeric value under key.
func number(m map[string]any, key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// toFloat converts any Go numeric kind or json.Number to float64.
// NaN and ±Inf are rejected.
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
