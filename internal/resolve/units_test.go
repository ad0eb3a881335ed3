package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeet_MetricUnitObject(t *testing.T) {
	ft, ok := Feet(map[string]any{"unit": "METRE", "value": 16.764})
	assert.True(t, ok)
	assert.Equal(t, 55, ft)
}

func TestFeet_FootUnitObject(t *testing.T) {
	ft, ok := Feet(map[string]any{"unit": "FOOT", "value": 45.0})
	assert.True(t, ok)
	assert.Equal(t, 45, ft)
}

func TestFeet_UnitObjectBadValue(t *testing.T) {
	_, ok := Feet(map[string]any{"unit": "METRE", "value": "n/a"})
	assert.False(t, ok)
}

func TestFeet_Numeric(t *testing.T) {
	ft, ok := Feet(50.4)
	assert.True(t, ok)
	assert.Equal(t, 50, ft)
}

func TestFeet_Strings(t *testing.T) {
	ft, ok := Feet("50")
	assert.True(t, ok)
	assert.Equal(t, 50, ft)

	ft, ok = Feet("45'")
	assert.True(t, ok)
	assert.Equal(t, 45, ft)

	// Decimal string is a meter count.
	ft, ok = Feet("13.7")
	assert.True(t, ok)
	assert.Equal(t, 45, ft)
}

func TestFeet_Unparseable(t *testing.T) {
	_, ok := Feet(nil)
	assert.False(t, ok)
	_, ok = Feet("tall")
	assert.False(t, ok)
	_, ok = Feet("")
	assert.False(t, ok)
}

func TestFormatPercent_Fraction(t *testing.T) {
	assert.Equal(t, "65.40%", FormatPercent(0.654))
}

func TestFormatPercent_AlreadyPercent(t *testing.T) {
	assert.Equal(t, "65.40%", FormatPercent(65.4))
}

func TestFormatPercent_StringInputs(t *testing.T) {
	assert.Equal(t, "65.40%", FormatPercent("65.4"))
	assert.Equal(t, "65.40%", FormatPercent("65.4%"))
}

func TestFormatPercent_Absent(t *testing.T) {
	assert.Equal(t, "", FormatPercent(nil))
	assert.Equal(t, "", FormatPercent("n/a"))
}

func TestFormatPercent_RoundsToTwoDecimals(t *testing.T) {
	// Near-ties that round together compare equal downstream.
	assert.Equal(t, FormatPercent(65.401), FormatPercent(65.399))
}
