package extract

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renodat/internal/cityjson"
)

// cityDoc is a two-building city: bldg-a has a valid ground-tagged
// LoD 1.2 square footprint, bldg-b has no associated part at all.
const cityDoc = `{
	"version": "1.1",
	"transform": {"scale": [0.001, 0.001, 0.001], "translate": [100, 200, 0]},
	"vertices": [[0, 0, 0], [1000, 0, 0], [1000, 1000, 0], [0, 1000, 0]],
	"CityObjects": {
		"bldg-a": {
			"type": "Building",
			"attributes": {
				"oorspronkelijkbouwjaar": 1962,
				"b3_dak_type": "slanted",
				"b3_h_dak_70p": 8.4,
				"b3_h_dak_min": 6.1,
				"b3_h_dak_max": 9.9,
				"b3_h_maaiveld": 1.2,
				"b3_volume_lod22": 402.5
			}
		},
		"bldg-a-0": {
			"type": "BuildingPart",
			"geometry": [
				{
					"type": "Solid",
					"lod": "2.2",
					"boundaries": [[[[0, 1, 2, 3]]]],
					"semantics": {"surfaces": [{"type": "GroundSurface"}], "values": [[0]]}
				},
				{
					"type": "MultiSurface",
					"lod": "1.2",
					"boundaries": [[[0, 1, 2, 3, 0]], [[3, 2, 1, 0, 3]]],
					"semantics": {"surfaces": [{"type": "GroundSurface"}, {"type": "RoofSurface"}], "values": [0, 1]}
				}
			]
		},
		"bldg-b": {
			"type": "Building",
			"attributes": {"oorspronkelijkbouwjaar": 2001}
		}
	}
}`

func loadTestDoc(t *testing.T) *cityjson.Document {
	t.Helper()
	doc, err := cityjson.Parse([]byte(cityDoc))
	require.NoError(t, err)
	return doc
}

func TestRunProducesOneRecordPerBuilding(t *testing.T) {
	doc := loadTestDoc(t)

	records := New(doc).Run()
	require.Len(t, records, 2)

	// sorted by building id
	assert.Equal(t, "bldg-a", records[0].ID)
	assert.Equal(t, "bldg-b", records[1].ID)
}

func TestRunResolvesFootprintAndArea(t *testing.T) {
	doc := loadTestDoc(t)

	records := New(doc).Run()
	a := records[0]

	assert.Equal(t, float64(1962), a.YearBuilt)
	assert.Equal(t, "slanted", a.RoofType)
	assert.Equal(t, 8.4, a.RoofHTyp)
	assert.Equal(t, 6.1, a.RoofHMin)
	assert.Equal(t, 9.9, a.RoofHMax)
	assert.Equal(t, 1.2, a.GroundLvl)
	assert.Equal(t, 402.5, a.VolumeLoD2)

	require.NotNil(t, a.Footprint)
	require.NotNil(t, a.FootprintAreaM2)
	assert.InDelta(t, 1.0, *a.FootprintAreaM2, 1e-9)
}

func TestRunBuildingWithoutPartDegradesToNulls(t *testing.T) {
	doc := loadTestDoc(t)

	records := New(doc).Run()
	b := records[1]

	assert.Equal(t, float64(2001), b.YearBuilt)
	assert.Nil(t, b.RoofType)
	assert.Nil(t, b.Footprint)
	assert.Nil(t, b.FootprintAreaM2)
}

func TestRunIsIdempotent(t *testing.T) {
	doc := loadTestDoc(t)

	first, err := json.Marshal(New(doc).Run())
	require.NoError(t, err)
	second, err := json.Marshal(New(doc).Run())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriteRecords(t *testing.T) {
	doc := loadTestDoc(t)
	records := New(doc).Run()

	outFile := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, WriteRecords(records, outFile))

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "bldg-a", decoded[0]["id"])
	assert.InDelta(t, 1.0, decoded[0]["footprint_area_m2"].(float64), 1e-9)

	// null fields must be present, not dropped
	second := decoded[1]
	_, hasFootprint := second["footprint"]
	assert.True(t, hasFootprint)
	assert.Nil(t, second["footprint"])
	assert.Nil(t, second["footprint_area_m2"])
}

func TestExportFootprintsToGeoJSON(t *testing.T) {
	doc := loadTestDoc(t)
	records := New(doc).Run()

	outFile := filepath.Join(t.TempDir(), "footprints.geojson")
	require.NoError(t, ExportFootprintsToGeoJSON(doc, records, outFile))

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var fc struct {
		Features []struct {
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &fc))

	// only the building with a resolvable footprint is exported
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "bldg-a", fc.Features[0].Properties["id"])
}
