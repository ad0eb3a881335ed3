package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSpecComponents_Full(t *testing.T) {
	c := ExtractSpecComponents("45-3 Southern Pine")
	assert.True(t, c.HasHeight)
	assert.Equal(t, 45, c.HeightFt)
	assert.Equal(t, "3", c.Class)
	assert.Equal(t, "Southern Pine", c.Species)
}

func TestExtractSpecComponents_ApostropheForm(t *testing.T) {
	c := ExtractSpecComponents("50'-2 Douglas Fir")
	assert.True(t, c.HasHeight)
	assert.Equal(t, 50, c.HeightFt)
	assert.Equal(t, "2", c.Class)
	assert.Equal(t, "Douglas Fir", c.Species)
}

func TestExtractSpecComponents_PrimeCharacter(t *testing.T) {
	c := ExtractSpecComponents("45′-H1 Western Cedar")
	assert.True(t, c.HasHeight)
	assert.Equal(t, 45, c.HeightFt)
	assert.Equal(t, "H1", c.Class)
	assert.Equal(t, "Western Cedar", c.Species)
}

func TestExtractSpecComponents_HeightOnly(t *testing.T) {
	c := ExtractSpecComponents("45")
	assert.True(t, c.HasHeight)
	assert.Equal(t, 45, c.HeightFt)
	assert.Equal(t, "", c.Class)
	assert.Equal(t, "", c.Species)
}

func TestExtractSpecComponents_Unparseable(t *testing.T) {
	assert.Equal(t, SpecComponents{}, ExtractSpecComponents(""))
	assert.Equal(t, SpecComponents{}, ExtractSpecComponents("   "))
}

func TestExtractSpecComponents_SpeciesOnly(t *testing.T) {
	// Free text with no leading digits carries no height or class.
	c := ExtractSpecComponents("Southern Pine")
	assert.False(t, c.HasHeight)
}

func TestSpecsMatch_WithinTolerance(t *testing.T) {
	assert.True(t, SpecsMatch("45-3 Southern Pine", "46-3 Southern Pine", 1))
}

func TestSpecsMatch_BeyondTolerance(t *testing.T) {
	assert.False(t, SpecsMatch("45-3 Southern Pine", "47-3 Southern Pine", 1))
}

func TestSpecsMatch_ClassMismatch(t *testing.T) {
	assert.False(t, SpecsMatch("45-3 Southern Pine", "45-2 Southern Pine", 1))
}

func TestSpecsMatch_ClassCaseInsensitive(t *testing.T) {
	assert.True(t, SpecsMatch("45-H1 Southern Pine", "45-h1 Southern Pine", 1))
}

func TestSpecsMatch_SpeciesNeverBlocks(t *testing.T) {
	assert.True(t, SpecsMatch("45-3 Southern Pine", "45-3 Douglas Fir", 1))
}

func TestSpecsMatch_OneHeightAbsent(t *testing.T) {
	assert.False(t, SpecsMatch("45-3 Southern Pine", "Pine", 1))
}

func TestSpecsMatch_BothHeightsAbsentVacuous(t *testing.T) {
	// Both sides fully unspecified beyond species: vacuous match on
	// height and class. Shipped policy, see SpecsMatch doc.
	assert.True(t, SpecsMatch("Pine", "Fir", 1))
}

func TestSpecsMatch_EmptyInputsInconclusive(t *testing.T) {
	assert.False(t, SpecsMatch("", "45-3 Southern Pine", 1))
	assert.False(t, SpecsMatch("45-3 Southern Pine", "", 1))
	assert.False(t, SpecsMatch("", "", 1))
}

func TestSpecsMatch_PrimeVsApostrophe(t *testing.T) {
	assert.True(t, SpecsMatch("45′-3 Southern Pine", "45'-3 Southern Pine", 1))
}
