package resolve

import (
	"fmt"
	"strconv"
	"strings"
)

const metersPerFoot = 0.3048

// Feet coerces a raw height value into whole feet. The sources spell
// heights three ways: a unit/value object (METRE values are converted,
// FOOT and anything else is taken as feet already), a bare number
// (assumed feet), or a string ("50", "45'", or a decimal meter count).
// Returns false when the value cannot be coerced.
func Feet(raw any) (int, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false

	case map[string]any:
		val, ok := Float(v["value"])
		if !ok {
			return 0, false
		}
		unit, _ := v["unit"].(string)
		if strings.HasPrefix(strings.ToLower(unit), "met") {
			return int(roundHalf(val / metersPerFoot)), true
		}
		return int(roundHalf(val)), true

	case float64:
		return int(roundHalf(v)), true
	case int:
		return v, true

	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		if i := strings.IndexAny(s, "'′"); i >= 0 {
			if n, err := strconv.Atoi(strings.TrimSpace(s[:i])); err == nil {
				return n, true
			}
			return 0, false
		}
		// Decimal strings are meter counts from metric exports.
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(roundHalf(f / metersPerFoot)), true
		}
		return 0, false
	}
	return 0, false
}

// FormatPercent renders a raw loading value as a two-decimal percent
// string, e.g. "65.40%". Fractional inputs (≤ 1.01) are scaled by 100;
// anything already in percent units is formatted as-is. Returns "" for
// absent or unparseable input. Agreement flags compare these formatted
// strings directly, so the two-decimal rounding is part of the contract:
// near-ties that round together count as equal.
func FormatPercent(raw any) string {
	f, ok := Float(raw)
	if !ok {
		return ""
	}
	if f > 1.01 {
		return fmt.Sprintf("%.2f%%", f)
	}
	return fmt.Sprintf("%.2f%%", f*100)
}

// Float coerces numbers and numeric strings (with an optional trailing
// percent sign) into a float64.
func Float(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(v), "%")
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// roundHalf rounds half away from zero, matching how feet values are
// conventionally printed on pole tags.
func roundHalf(f float64) float64 {
	if f < 0 {
		return -roundHalf(-f)
	}
	return float64(int(f + 0.5))
}
