package postgres

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"renodat/internal/model"
)

// SaveBuildingRecords persists one extraction run. Records are upserted by
// building id so a re-run over the same city replaces the previous rows,
// and inserted in batches of 100 to avoid overwhelming the database.
func SaveBuildingRecords(records []*model.BuildingRecord, importID string) error {
	db := GetDB()
	now := time.Now()

	rows := make([]*model.BuildingRecordPG, 0, len(records))
	for _, rec := range records {
		rows = append(rows, model.BuildingRecordToPG(rec, importID, now))
	}

	batchSize := 100
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(rows[start:end])
		if result.Error != nil {
			return fmt.Errorf("failed to save building records batch: %w", result.Error)
		}
	}

	log.Printf("Saved %d building records to database (import %s)", len(rows), importID)
	return nil
}

// ClearBuildingRecords deletes all stored building records (test mode).
func ClearBuildingRecords() error {
	result := GetDB().Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.BuildingRecordPG{})
	if result.Error != nil {
		return fmt.Errorf("failed to clear building records: %w", result.Error)
	}
	log.Printf("Cleared %d building records from database", result.RowsAffected)
	return nil
}
