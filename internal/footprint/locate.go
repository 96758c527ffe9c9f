package footprint

import "renodat/internal/cityjson"

// PartSuffix links a building to its part. The relation is not stored in
// the file; the part id is always the building id with this suffix.
const PartSuffix = "-0"

const (
	footprintLoD      = "1.2"
	groundSurfaceType = "GroundSurface"
)

// Locate returns the raw boundary structure of the building's footprint:
// the first LoD 1.2 geometry entry of the conventionally named part that
// carries at least one GroundSurface semantic tag. A missing part or the
// absence of any matching geometry yields nil, which is a normal outcome
// for buildings without part data, not an error.
func Locate(buildingID string, parts map[string]*cityjson.CityObject) any {
	part, ok := parts[buildingID+PartSuffix]
	if !ok {
		return nil
	}

	for _, geom := range part.Geometry {
		if geom.LoD != footprintLoD || geom.Semantics == nil {
			continue
		}
		for _, surface := range geom.Semantics.Surfaces {
			if surface.Type == groundSurfaceType {
				return geom.Boundaries
			}
		}
	}
	return nil
}
