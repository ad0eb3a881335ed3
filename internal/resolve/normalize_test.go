package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigits_Empty(t *testing.T) {
	assert.Equal(t, "", Digits(""))
	assert.Equal(t, "", Digits("no digits here"))
}

func TestDigits_StripsNonDigits(t *testing.T) {
	assert.Equal(t, "10523", Digits("PL-105 23"))
	assert.Equal(t, "42", Digits("tag#42"))
}

func TestDigits_LeadingZeros(t *testing.T) {
	assert.Equal(t, "7", Digits("007"))
	assert.Equal(t, "0", Digits("000"))
	assert.Equal(t, "0", Digits("0"))
}

func TestDigits_Idempotent(t *testing.T) {
	for _, s := range []string{"PL007", "000", "12-34", "", "abc"} {
		once := Digits(s)
		assert.Equal(t, once, Digits(once), "input %q", s)
	}
}

func TestPoleNumber_StripsPLPrefix(t *testing.T) {
	assert.Equal(t, "100", PoleNumber("PL100"))
	assert.Equal(t, "100", PoleNumber("pl100"))
	assert.Equal(t, "100", PoleNumber("PL-100"))
}

func TestPoleNumber_LeadingZeros(t *testing.T) {
	assert.Equal(t, "35", PoleNumber("PL0035"))
}

func TestPoleNumber_NoDigits(t *testing.T) {
	assert.Equal(t, "", PoleNumber("PL"))
	assert.Equal(t, "", PoleNumber(""))
}

func TestPoleNumber_BareNumber(t *testing.T) {
	assert.Equal(t, "512", PoleNumber("512"))
}

func TestCanonicalSpec_FormattingInsensitive(t *testing.T) {
	assert.Equal(t, CanonicalSpec("45'-3 Southern Pine"), CanonicalSpec("45-3 southern pine"))
	assert.Equal(t, CanonicalSpec("45′-3 Southern Pine"), CanonicalSpec("45-3 Southern Pine"))
	assert.Equal(t, CanonicalSpec("  45-3   Southern  Pine "), CanonicalSpec("45-3 Southern Pine"))
}

func TestCanonicalSpec_DistinctSpecsStayDistinct(t *testing.T) {
	assert.NotEqual(t, CanonicalSpec("45-3 Southern Pine"), CanonicalSpec("40-2 Southern Pine"))
}

func TestCanonicalSpec_Empty(t *testing.T) {
	assert.Equal(t, "", CanonicalSpec(""))
	assert.Equal(t, "", CanonicalSpec("   "))
}
