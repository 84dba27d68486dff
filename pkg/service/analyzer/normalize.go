package analyzer

import (
	"github.com/RogoLabs/CNAPulse/pkg/domain/model"
)

// normalizeRecords drops records missing an assigner ID or publication
// date. Malformed records are skipped silently; the count is surfaced
// in the run stats for diagnostics.
func normalizeRecords(records []model.Record) ([]model.Record, int) {
	valid := make([]model.Record, 0, len(records))
	var skipped int
	for _, record := range records {
		if !record.IsValid() {
			skipped++
			continue
		}
		valid = append(valid, record)
	}
	return valid, skipped
}
