package katapult

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobFixture = `{
	"nodes": {
		"pole1": {
			"attributes": {
				"scid": {"auto_button": "001"},
				"node_type": {"button_added": "pole"},
				"DLOC_number": {"-Imported": "100"},
				"pole_spec": {"-Imported": "45-3 Southern Pine"},
				"existing_capacity_%": {"-Imported": "65.4"},
				"final_passing_capacity_%": {"-Imported": "78.1"},
				"latitude": {"-Imported": "35.227100"},
				"longitude": {"-Imported": "-80.843100"}
			}
		},
		"pole2": {
			"attributes": {
				"scid": {"auto_button": "002"},
				"node_type": {"button_added": "Power"},
				"pole_tag": {"k1": {"tagtext": "PL200"}},
				"birthmark_brand": {"-Imported": "bm1"},
				"latitude": "35.228000",
				"longitude": "-80.844000"
			}
		},
		"svc1": {
			"attributes": {
				"node_type": {"button_added": "Service Location"},
				"node_sub_type": {"-Imported": "Charter"},
				"measured_attachments": {"sec1": false}
			}
		},
		"anchor1": {
			"attributes": {
				"scid": {"auto_button": "003"},
				"node_type": {"button_added": "anchor"}
			}
		},
		"noscid": {
			"attributes": {
				"node_type": {"button_added": "pole"},
				"scid": {"auto_button": "A-1"}
			}
		}
	},
	"connections": {
		"c1": {
			"node_id_1": "pole1",
			"node_id_2": "svc1",
			"sections": {"sec1": {}}
		},
		"c2": {
			"node_id_1": "svc2",
			"node_id_2": "pole2",
			"attributes": {"connection_type": {"button_added": "service drop"}}
		}
	},
	"photos": {
		"p1": {"birthmark": {"bm1": {"height": "40", "class": "2", "species": "Douglas Fir"}}}
	}
}`

func TestExtractAssets_Fixture(t *testing.T) {
	doc, err := Parse([]byte(jobFixture))
	require.NoError(t, err)

	assets := ExtractAssets(doc)
	require.Len(t, assets, 2)

	p1 := assets[0]
	assert.Equal(t, "001", p1.SCID)
	assert.Equal(t, "PL100", p1.PoleNumber)
	assert.Equal(t, "45-3 Southern Pine", p1.Spec)
	assert.Equal(t, "65.40%", p1.ExistingPct)
	assert.Equal(t, "78.10%", p1.FinalPct)
	assert.True(t, p1.ServiceDrop, "service location via section reaches pole1")
	require.NotNil(t, p1.Coord)
	assert.InDelta(t, 35.2271, p1.Coord.Lat, 1e-9)
	assert.InDelta(t, -80.8431, p1.Coord.Lon, 1e-9)

	p2 := assets[1]
	assert.Equal(t, "002", p2.SCID)
	assert.Equal(t, "PL200", p2.PoleNumber, "tag text already carries PL prefix")
	assert.Equal(t, "40'-2 Douglas Fir", p2.Spec, "spec resolved through birthmark reference")
	assert.Equal(t, "", p2.ExistingPct)
	assert.True(t, p2.ServiceDrop, "service drop connection reaches pole2")
}

func TestExtractAssets_SkipsNonPoleNodes(t *testing.T) {
	doc, err := Parse([]byte(jobFixture))
	require.NoError(t, err)

	for _, a := range ExtractAssets(doc) {
		assert.NotEqual(t, "003", a.SCID, "anchor nodes are not poles")
	}
}

func TestExtractAssets_FallbackSpecFields(t *testing.T) {
	doc, err := Parse([]byte(`{
		"nodes": {
			"n1": {
				"attributes": {
					"scid": {"auto_button": "010"},
					"pole_height": {"-Imported": "45"},
					"pole_class": {"-Imported": "3"},
					"pole_species": {"-Imported": "Southern Pine"}
				}
			}
		}
	}`))
	require.NoError(t, err)

	assets := ExtractAssets(doc)
	require.Len(t, assets, 1)
	assert.Equal(t, "45'-3 Southern Pine", assets[0].Spec)
}

func TestExtractAssets_MalformedFieldsDegrade(t *testing.T) {
	doc, err := Parse([]byte(`{
		"nodes": {
			"n1": {
				"attributes": {
					"scid": {"auto_button": "011"},
					"latitude": {"-Imported": "not-a-number"},
					"longitude": {"-Imported": "-80.8"},
					"existing_capacity_%": {"-Imported": "n/a"}
				}
			}
		}
	}`))
	require.NoError(t, err)

	assets := ExtractAssets(doc)
	require.Len(t, assets, 1)
	assert.Nil(t, assets[0].Coord)
	assert.Equal(t, "", assets[0].ExistingPct)
	assert.Equal(t, "", assets[0].Spec)
}
