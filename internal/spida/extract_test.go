package spida

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exchangeFixture = `{
	"schema": "/schema/spidacalc/calc/project.schema",
	"clientData": {
		"poles": [
			{
				"height": {"unit": "METRE", "value": 13.716},
				"classOfPole": "3",
				"species": "Southern Pine",
				"aliases": [{"id": "45-3"}]
			}
		]
	},
	"leads": [
		{
			"owners": [{"id": "own1", "name": "Charter Communications"}],
			"locations": [
				{
					"label": "1-PL100",
					"geographicCoordinate": {"coordinates": [-80.8431, 35.2271]},
					"designs": [
						{
							"layerType": "Measured",
							"structure": {"pole": {"clientItemAlias": "45-3", "clientItem": {"species": "Southern Pine"}}},
							"analysis": [{"results": [{"component": "Pole", "actual": 0.654}]}]
						},
						{
							"layerType": "Recommended",
							"structure": {
								"pole": {"clientItemAlias": "45-3", "clientItem": {"species": "Southern Pine"}},
								"wires": [{"ownerId": "own1", "usageGroup": "COMMUNICATION_SERVICE"}]
							},
							"analysis": [{"results": [{"component": "Pole", "actual": 0.781}]}]
						}
					]
				},
				{
					"label": "PL200",
					"latitude": "35.228000",
					"longitude": "-80.844000",
					"designs": [
						{"layerType": "Measured", "structure": {"pole": {}}},
						{
							"layerType": "Recommended",
							"structure": {
								"pole": {
									"clientItem": {
										"height": {"unit": "METRE", "value": 15.24},
										"classOfPole": "2",
										"species": "Douglas Fir"
									}
								}
							}
						}
					]
				}
			]
		}
	]
}`

func parseFixture(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse([]byte(exchangeFixture))
	require.NoError(t, err)
	return doc
}

func TestParse_RequiresLeads(t *testing.T) {
	_, err := Parse([]byte(`{"clientData": {}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no leads")
}

func TestParse_RequiresLocations(t *testing.T) {
	_, err := Parse([]byte(`{"leads": [{"locations": []}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no locations")
}

func TestParse_RejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"leads": [`))
	require.Error(t, err)
}

func TestExtractAssets_Fixture(t *testing.T) {
	assets, err := ExtractAssets(parseFixture(t), "Charter")
	require.NoError(t, err)
	require.Len(t, assets, 2)

	a := assets[0]
	assert.Equal(t, "001", a.SCID)
	assert.Equal(t, "PL100", a.PoleNumber, "label part after the first dash")
	assert.Equal(t, "45'-3 Southern Pine", a.Spec, "spec resolved through catalogue alias")
	assert.Equal(t, "65.40%", a.ExistingPct)
	assert.Equal(t, "78.10%", a.FinalPct)
	assert.True(t, a.ServiceDrop, "service wire owned by Charter via ownerId")
	require.NotNil(t, a.Coord)
	assert.InDelta(t, 35.2271, a.Coord.Lat, 1e-9)
	assert.InDelta(t, -80.8431, a.Coord.Lon, 1e-9)

	b := assets[1]
	assert.Equal(t, "002", b.SCID)
	assert.Equal(t, "PL200", b.PoleNumber, "dashless label used whole")
	assert.Equal(t, "50'-2 Douglas Fir", b.Spec, "spec constructed from client item fields")
	assert.Equal(t, "", b.ExistingPct)
	assert.False(t, b.ServiceDrop)
	require.NotNil(t, b.Coord)
	assert.InDelta(t, 35.228, b.Coord.Lat, 1e-9)
}

func TestExtractAssets_SequenceIdsFollowTraversal(t *testing.T) {
	assets, err := ExtractAssets(parseFixture(t), "Charter")
	require.NoError(t, err)
	assert.Equal(t, []string{"001", "002"}, []string{assets[0].SCID, assets[1].SCID})
}

func TestExtractAssets_DifferentServiceOwner(t *testing.T) {
	assets, err := ExtractAssets(parseFixture(t), "AT&T")
	require.NoError(t, err)
	assert.False(t, assets[0].ServiceDrop)
}

func TestExtractAssets_MissingDesignIsFatal(t *testing.T) {
	doc, err := Parse([]byte(`{
		"leads": [{"locations": [{"label": "1-PL100", "designs": [{"layerType": "Measured", "structure": {"pole": {}}}]}]}]
	}`))
	require.NoError(t, err)

	_, err = ExtractAssets(doc, "Charter")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "location 1")
	assert.Contains(t, err.Error(), "Recommended")
}

func TestLocationCoord_MeasuredFallback(t *testing.T) {
	doc, err := Parse([]byte(`{
		"leads": [{"locations": [{
			"label": "1-PL300",
			"designs": [
				{
					"layerType": "Measured",
					"structure": {"pole": {}, "poleLocation": {"coordinates": [-80.9, 35.3]}}
				},
				{"layerType": "Recommended", "structure": {"pole": {}}}
			]
		}]}]
	}`))
	require.NoError(t, err)

	assets, err := ExtractAssets(doc, "Charter")
	require.NoError(t, err)
	require.NotNil(t, assets[0].Coord)
	assert.InDelta(t, 35.3, assets[0].Coord.Lat, 1e-9)
	assert.InDelta(t, -80.9, assets[0].Coord.Lon, 1e-9)
}

func TestLocationCoord_SwappedFlatFields(t *testing.T) {
	doc, err := Parse([]byte(`{
		"leads": [{"locations": [{
			"label": "1-PL400",
			"latitude": -1.5,
			"longitude": 35.4,
			"designs": [
				{"layerType": "Measured", "structure": {"pole": {}}},
				{"layerType": "Recommended", "structure": {"pole": {}}}
			]
		}]}]
	}`))
	require.NoError(t, err)

	assets, err := ExtractAssets(doc, "Charter")
	require.NoError(t, err)
	require.NotNil(t, assets[0].Coord)
	assert.Equal(t, 35.4, assets[0].Coord.Lat, "swapped axes corrected")
	assert.Equal(t, -1.5, assets[0].Coord.Lon)
}

func TestLocationCoord_MalformedIsAbsent(t *testing.T) {
	doc, err := Parse([]byte(`{
		"leads": [{"locations": [{
			"label": "1-PL500",
			"geographicCoordinate": {"coordinates": ["east", "north"]},
			"designs": [
				{"layerType": "Measured", "structure": {"pole": {}}},
				{"layerType": "Recommended", "structure": {"pole": {}}}
			]
		}]}]
	}`))
	require.NoError(t, err)

	assets, err := ExtractAssets(doc, "Charter")
	require.NoError(t, err)
	assert.Nil(t, assets[0].Coord)
}
