// Package resolve normalizes the identity and attribute values that the
// matching tiers compare across the two pole documents. Everything here
// projects free-form source text into a canonical comparable form; none
// of the outputs are shown to the user.
package resolve

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var multiSpaceRe = regexp.MustCompile(`\s{2,}`)

// Digits reduces s to its digit-only core: every non-digit stripped,
// leading zeros removed, a lone run of zeros preserved as "0". Returns
// "" when s contains no digits. Idempotent.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// PoleNumber normalizes a human-facing pole number for cross-source
// equality: uppercase, the conventional "PL" prefix removed, then the
// same digit projection as Digits. Returns "" when nothing remains.
func PoleNumber(s string) string {
	if s == "" {
		return ""
	}
	clean := strings.ToUpper(strings.TrimSpace(s))
	clean = strings.TrimPrefix(clean, "PL")
	return Digits(clean)
}

// foldCaser is safe for concurrent use once constructed.
var foldCaser = cases.Fold()

// CanonicalSpec projects a pole spec string into a formatting-insensitive
// form for the reconciler's spec-agreement flag: case-folded, prime
// characters unified with apostrophes, punctuation dropped, whitespace
// collapsed. "45′-3 Southern Pine" and "45-3 southern pine" collide.
func CanonicalSpec(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = foldCaser.String(s)
	s = strings.NewReplacer(
		"′", "",
		"'", "",
		"-", " ",
		",", "",
		".", "",
	).Replace(s)
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
