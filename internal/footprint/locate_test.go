package footprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renodat/internal/cityjson"
)

func groundGeometry(lod string, boundaries any, surfaceTypes ...string) cityjson.Geometry {
	surfaces := make([]cityjson.Surface, len(surfaceTypes))
	for i, st := range surfaceTypes {
		surfaces[i] = cityjson.Surface{Type: st}
	}
	return cityjson.Geometry{
		Type:       "MultiSurface",
		LoD:        cityjson.LoD(lod),
		Boundaries: boundaries,
		Semantics:  &cityjson.Semantics{Surfaces: surfaces},
	}
}

func TestLocateMissingPart(t *testing.T) {
	parts := map[string]*cityjson.CityObject{}

	assert.Nil(t, Locate("b1", parts))
}

func TestLocateOnlyConsultsDashZeroSuffix(t *testing.T) {
	parts := map[string]*cityjson.CityObject{
		"b1-1": {
			Type:     cityjson.TypeBuildingPart,
			Geometry: []cityjson.Geometry{groundGeometry("1.2", "ring", "GroundSurface")},
		},
	}

	assert.Nil(t, Locate("b1", parts))
}

func TestLocateFirstMatchWins(t *testing.T) {
	parts := map[string]*cityjson.CityObject{
		"b1-0": {
			Type: cityjson.TypeBuildingPart,
			Geometry: []cityjson.Geometry{
				groundGeometry("2.2", "lod22", "GroundSurface", "RoofSurface"),
				groundGeometry("1.2", "walls-only", "WallSurface"),
				groundGeometry("1.2", "first-ground", "WallSurface", "GroundSurface"),
				groundGeometry("1.2", "second-ground", "GroundSurface"),
			},
		},
	}

	got := Locate("b1", parts)
	require.NotNil(t, got)
	assert.Equal(t, "first-ground", got)
}

func TestLocateSkipsGeometryWithoutSemantics(t *testing.T) {
	parts := map[string]*cityjson.CityObject{
		"b1-0": {
			Type: cityjson.TypeBuildingPart,
			Geometry: []cityjson.Geometry{
				{Type: "MultiSurface", LoD: "1.2", Boundaries: "untagged"},
			},
		},
	}

	assert.Nil(t, Locate("b1", parts))
}

func TestLocateNoGroundSurface(t *testing.T) {
	parts := map[string]*cityjson.CityObject{
		"b1-0": {
			Type:     cityjson.TypeBuildingPart,
			Geometry: []cityjson.Geometry{groundGeometry("1.2", "roof", "RoofSurface")},
		},
	}

	assert.Nil(t, Locate("b1", parts))
}
