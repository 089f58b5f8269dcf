package provider

import (
	"math"
	"strconv"
	"strings"
)

// ExtractValue normalizes a stat value from the shapes API-Football uses.
//
// Statistics arrive as flat numbers, numeric strings, or nested objects like
// {"total": 15, "home": 8, "away": 7}. This handles all of them, extracting
// the aggregate.
//
// Returns the scalar float64 value, and ok=false if not extractable.
func ExtractValue(val interface{}) (float64, bool) {
	if val == nil {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case float32:
		return ExtractValue(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return ExtractValue(f)
		}
		return 0, false
	case map[string]interface{}:
		// Nested objects: try "total", then "all"
		for _, key := range []string{"total", "all"} {
			if inner, exists := v[key]; exists && inner != nil {
				return ExtractValue(inner)
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

// ExtractMetric is ExtractValue for display metrics: it also understands
// percentage strings ("55%") and keeps unreadable strings as Raw text.
func ExtractMetric(val interface{}) Metric {
	if s, ok := val.(string); ok {
		trimmed := strings.TrimSpace(s)
		if pct, found := strings.CutSuffix(trimmed, "%"); found {
			if f, ok := ExtractValue(pct); ok {
				return Metric{Value: f, Percent: true, Available: true}
			}
		}
		if f, ok := ExtractValue(trimmed); ok {
			return Metric{Value: f, Available: true}
		}
		return Metric{Raw: trimmed}
	}

	if f, ok := ExtractValue(val); ok {
		return Metric{Value: f, Available: true}
	}
	return Metric{}
}
