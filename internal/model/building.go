package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// BuildingRecord is the flat per-building output consumed by the thermal
// modeling pipeline. Attribute fields are passed through verbatim from the
// source file, so their types stay unconstrained; missing values marshal
// as null.
type BuildingRecord struct {
	ID              string   `json:"id"`
	YearBuilt       any      `json:"year_built"`
	RoofType        any      `json:"roof_type"`
	RoofHTyp        any      `json:"roof_h_typ"`
	RoofHMin        any      `json:"roof_h_min"`
	RoofHMax        any      `json:"roof_h_max"`
	GroundLvl       any      `json:"ground_lvl"`
	VolumeLoD2      any      `json:"volume_lod2"`
	Footprint       any      `json:"footprint"`
	FootprintAreaM2 *float64 `json:"footprint_area_m2"`
}

// BuildingRecordPG model for PostgreSQL storage
type BuildingRecordPG struct {
	ID              string `gorm:"primaryKey"`
	ImportID        string `gorm:"size:36;index"`
	YearBuilt       string `gorm:"size:50"`
	RoofType        string `gorm:"size:50"`
	RoofHTyp        *float64
	RoofHMin        *float64
	RoofHMax        *float64
	GroundLvl       *float64
	VolumeLoD2      *float64
	FootprintAreaM2 *float64
	Footprint       string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name
func (BuildingRecordPG) TableName() string {
	return "building_records"
}

// BuildingRecordToPG flattens a record for relational storage. The raw
// footprint tree is kept as a JSON text column.
func BuildingRecordToPG(rec *BuildingRecord, importID string, now time.Time) *BuildingRecordPG {
	pg := &BuildingRecordPG{
		ID:              rec.ID,
		ImportID:        importID,
		YearBuilt:       attrString(rec.YearBuilt),
		RoofType:        attrString(rec.RoofType),
		RoofHTyp:        attrFloat(rec.RoofHTyp),
		RoofHMin:        attrFloat(rec.RoofHMin),
		RoofHMax:        attrFloat(rec.RoofHMax),
		GroundLvl:       attrFloat(rec.GroundLvl),
		VolumeLoD2:      attrFloat(rec.VolumeLoD2),
		FootprintAreaM2: rec.FootprintAreaM2,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if rec.Footprint != nil {
		if data, err := json.Marshal(rec.Footprint); err == nil {
			pg.Footprint = string(data)
		}
	}
	return pg
}

func attrString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func attrFloat(v any) *float64 {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}
