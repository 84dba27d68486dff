package analyzer

import (
	"time"

	"github.com/RogoLabs/CNAPulse/pkg/domain/model"
	"github.com/RogoLabs/CNAPulse/pkg/domain/types"
)

// cnaActivity accumulates one CNA's bucketed publication counts for a
// run. Records older than the baseline window contribute only to
// lastPublished and totalRecords.
type cnaActivity struct {
	assignerID    types.CNAID
	shortName     types.ShortName
	currentCount  int
	monthCounts   map[monthKey]int
	totalRecords  int
	lastPublished time.Time
}

// aggregate buckets normalized records per CNA into the current-window
// count and per-calendar-month baseline counts. The most recent
// publication timestamp is tracked across the entire corpus, not
// bounded by the analysis windows.
func aggregate(records []model.Record, w windows) map[types.CNAID]*cnaActivity {
	baselineMonths := w.baselineMonthSet()
	activities := make(map[types.CNAID]*cnaActivity)

	for _, record := range records {
		id := record.AssignerID.Canonical()
		activity, ok := activities[id]
		if !ok {
			activity = &cnaActivity{
				assignerID:  id,
				monthCounts: make(map[monthKey]int),
			}
			activities[id] = activity
		}

		// Last short name seen wins; the CVE corpus occasionally carries
		// stale names on old records.
		if record.ShortName != "" {
			activity.shortName = record.ShortName
		}
		activity.totalRecords++
		if record.PublishedAt.After(activity.lastPublished) {
			activity.lastPublished = record.PublishedAt
		}

		switch {
		case w.inCurrentWindow(record.PublishedAt):
			activity.currentCount++
		default:
			if month := monthOf(record.PublishedAt); baselineMonths[month] {
				activity.monthCounts[month]++
			}
		}
	}

	return activities
}
