package extract

import (
	"log"
	"sort"

	"renodat/internal/cityjson"
	"renodat/internal/footprint"
	"renodat/internal/model"
)

// Attribute keys as they appear on building objects. This is the external
// 3DBAG vocabulary and must stay byte-exact for compatibility.
const (
	attrYearBuilt  = "oorspronkelijkbouwjaar"
	attrRoofType   = "b3_dak_type"
	attrRoofH70p   = "b3_h_dak_70p"
	attrRoofHMin   = "b3_h_dak_min"
	attrRoofHMax   = "b3_h_dak_max"
	attrGroundLvl  = "b3_h_maaiveld"
	attrVolumeLoD2 = "b3_volume_lod22"
)

// Extractor produces one flat BuildingRecord per building in a document.
type Extractor struct {
	doc *cityjson.Document
}

func New(doc *cityjson.Document) *Extractor {
	return &Extractor{doc: doc}
}

// Run walks every Building object and assembles its record. Building ids
// are processed in sorted order so two runs over the same input produce
// byte-identical output. Per-building failures degrade that one record to
// null footprint fields and never stop the batch.
func (e *Extractor) Run() []*model.BuildingRecord {
	buildings, parts := cityjson.PartitionByType(e.doc.CityObjects)

	ids := make([]string, 0, len(buildings))
	for id := range buildings {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]*model.BuildingRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, e.buildRecord(id, buildings[id], parts))
	}

	log.Printf("Processed %d buildings", len(records))
	return records
}

func (e *Extractor) buildRecord(id string, b *cityjson.CityObject, parts map[string]*cityjson.CityObject) (rec *model.BuildingRecord) {
	rec = &model.BuildingRecord{ID: id}

	// One malformed object must not kill the whole batch.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Error processing building %s: %v", id, r)
			rec.Footprint = nil
			rec.FootprintAreaM2 = nil
		}
	}()

	attrs := b.Attributes
	rec.YearBuilt = attrs[attrYearBuilt]
	rec.RoofType = attrs[attrRoofType]
	rec.RoofHTyp = attrs[attrRoofH70p]
	rec.RoofHMin = attrs[attrRoofHMin]
	rec.RoofHMax = attrs[attrRoofHMax]
	rec.GroundLvl = attrs[attrGroundLvl]
	rec.VolumeLoD2 = attrs[attrVolumeLoD2]

	fp := footprint.Locate(id, parts)
	if fp == nil {
		return rec
	}
	rec.Footprint = fp

	if area, ok := e.footprintArea(fp); ok {
		rec.FootprintAreaM2 = &area
	}
	return rec
}

// footprintArea tries every boundary set of a footprint in order and
// takes the first one that resolves to an area; when none do, the very
// first set is attempted once more as a last resort. The footprint may
// contain surfaces that are not ground-tagged, so earlier sets can fail
// legitimately.
func (e *Extractor) footprintArea(fp any) (float64, bool) {
	sets, ok := fp.([]any)
	if !ok || len(sets) == 0 {
		return footprint.Area(e.doc, fp)
	}

	for _, set := range sets {
		if area, ok := footprint.Area(e.doc, set); ok {
			return area, true
		}
	}
	return footprint.Area(e.doc, sets[0])
}
