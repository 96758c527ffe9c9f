package extract

import (
	"encoding/json"
	"fmt"
	"os"

	"renodat/internal/model"
)

// WriteRecords writes the batch output: one JSON array with a record per
// building, indented for diffability between runs.
func WriteRecords(records []*model.BuildingRecord, outputFile string) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal building records: %w", err)
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
