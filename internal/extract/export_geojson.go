package extract

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"renodat/internal/cityjson"
	"renodat/internal/footprint"
	"renodat/internal/model"
)

// ExportFootprintsToGeoJSON writes every resolved footprint as a polygon
// feature for visual QC. Coordinates stay in the projected CRS of the
// source file (meters), which viewers handle fine for inspection.
func ExportFootprintsToGeoJSON(doc *cityjson.Document, records []*model.BuildingRecord, outputFile string) error {
	log.Printf("Exporting footprints of %d building records to GeoJSON file: %s", len(records), outputFile)

	fc := geojson.NewFeatureCollection()
	for _, rec := range records {
		if rec.Footprint == nil {
			continue
		}
		ring, ok := resolveRing(doc, rec.Footprint)
		if !ok {
			continue
		}

		feature := geojson.NewFeature(orb.Polygon{ring})
		feature.Properties["id"] = rec.ID
		feature.Properties["year_built"] = rec.YearBuilt
		if rec.FootprintAreaM2 != nil {
			feature.Properties["footprint_area_m2"] = *rec.FootprintAreaM2
		}
		fc.Append(feature)
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal GeoJSON: %w", err)
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write GeoJSON file: %w", err)
	}

	log.Printf("Successfully exported %d footprints to %s", len(fc.Features), outputFile)
	return nil
}

// resolveRing picks the first boundary set of a footprint that resolves
// to a ring, mirroring the first-success policy of the area calculation.
func resolveRing(doc *cityjson.Document, fp any) (orb.Ring, bool) {
	if sets, ok := fp.([]any); ok && len(sets) > 0 {
		for _, set := range sets {
			if ring, ok := closedRingFor(doc, set); ok {
				return ring, true
			}
		}
		return nil, false
	}
	return closedRingFor(doc, fp)
}

func closedRingFor(doc *cityjson.Document, boundarySet any) (orb.Ring, bool) {
	points, ok := footprint.RingPoints(doc, boundarySet)
	if !ok {
		return nil, false
	}
	ring := make(orb.Ring, len(points), len(points)+1)
	copy(ring, points)
	return append(ring, points[0]), true
}
