package resolve

import (
	"regexp"
	"strings"
)

// SpecComponents is the structured form of a pole spec string such as
// "45-3 Southern Pine": height in feet, class token, species text.
// Absent components stay zero-valued with HasHeight false / empty
// strings; absent means unknown, never zero.
type SpecComponents struct {
	HeightFt  int
	HasHeight bool
	Class     string
	Species   string
}

// specRe captures leading digits (height), an optional short
// alphanumeric class token after an apostrophe/dash/space separator,
// and trailing free text (species).
var specRe = regexp.MustCompile(`^(\d+)'*[-\s]*([A-Za-z0-9]*)\s*(.*)$`)

// ExtractSpecComponents parses a spec string into its components.
// Unicode prime marks are unified with apostrophes first, so both
// "45′-3 Southern Pine" and "45'-3 Southern Pine" parse identically.
// Unparseable input yields the zero value, not an error.
func ExtractSpecComponents(spec string) SpecComponents {
	spec = strings.ReplaceAll(strings.TrimSpace(spec), "′", "'")
	if spec == "" {
		return SpecComponents{}
	}

	m := specRe.FindStringSubmatch(spec)
	if m == nil {
		return SpecComponents{}
	}

	var c SpecComponents
	if ft, ok := Feet(m[1]); ok {
		c.HeightFt = ft
		c.HasHeight = true
	}
	c.Class = strings.TrimSpace(m[2])
	c.Species = strings.TrimSpace(m[3])
	return c
}

// SpecsMatch reports whether two spec strings describe compatible poles
// within the given height tolerance in feet.
//
// Height: both present must agree within tolerance; both absent counts
// as a match; exactly one absent is a mismatch. Class follows the same
// absence policy with case-insensitive equality. Species never blocks a
// match.
//
// Empty spec strings are inconclusive and never match anything.
func SpecsMatch(a, b string, toleranceFt int) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}

	ca := ExtractSpecComponents(a)
	cb := ExtractSpecComponents(b)

	switch {
	case ca.HasHeight && cb.HasHeight:
		diff := ca.HeightFt - cb.HeightFt
		if diff < 0 {
			diff = -diff
		}
		if diff > toleranceFt {
			return false
		}
	case ca.HasHeight != cb.HasHeight:
		return false
	}

	switch {
	case ca.Class != "" && cb.Class != "":
		if !strings.EqualFold(ca.Class, cb.Class) {
			return false
		}
	case ca.Class != cb.Class:
		return false
	}

	return true
}
