package katapult

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAttr(t *testing.T, raw string) Attr {
	t.Helper()
	var a Attr
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	return a
}

func TestAttr_Scalar(t *testing.T) {
	a := decodeAttr(t, `"PL100"`)
	assert.False(t, a.IsAbsent())
	assert.Equal(t, "PL100", a.First())
	assert.Equal(t, "PL100", a.FirstString())
}

func TestAttr_NumberScalar(t *testing.T) {
	a := decodeAttr(t, `65.4`)
	assert.Equal(t, 65.4, a.First())
	assert.Equal(t, "", a.FirstString())
}

func TestAttr_WrappedImported(t *testing.T) {
	a := decodeAttr(t, `{"-Imported":"045","app_added":"ignored"}`)
	assert.Equal(t, "045", a.First())
}

func TestAttr_WrappedButtonAdded(t *testing.T) {
	a := decodeAttr(t, `{"button_added":"pole"}`)
	assert.Equal(t, "pole", a.First())
	assert.Equal(t, "pole", a.Field("button_added"))
}

func TestAttr_WrappedArbitraryKey(t *testing.T) {
	// No canonical key: smallest key wins, deterministically.
	a := decodeAttr(t, `{"zz":"later","aa":"first"}`)
	assert.Equal(t, "first", a.First())
}

func TestAttr_Absent(t *testing.T) {
	for _, raw := range []string{`null`, `{}`, `[1,2]`} {
		a := decodeAttr(t, raw)
		assert.True(t, a.IsAbsent(), "raw %s", raw)
		assert.Nil(t, a.First())
	}
}

func TestAttr_ZeroValueIsAbsent(t *testing.T) {
	var a Attr
	assert.True(t, a.IsAbsent())
	assert.Nil(t, a.First())
	assert.Nil(t, a.Fields())
	assert.Nil(t, a.Field("anything"))
}
