package analyzer

import (
	"github.com/RogoLabs/CNAPulse/pkg/domain/model"
)

// buildTimeline reshapes one CNA's month buckets into the ordered
// display timeline: baseline months oldest first, then the current
// window as the single entry flagged is_current.
func buildTimeline(w windows, counts map[monthKey]int, currentCount int) []model.TimelineEntry {
	timeline := make([]model.TimelineEntry, 0, len(w.baselineMonths)+1)

	for _, month := range w.baselineMonths {
		timeline = append(timeline, model.TimelineEntry{
			Month: month.label(),
			Count: counts[month],
		})
	}

	timeline = append(timeline, model.TimelineEntry{
		Month:     w.now.Format("Jan 2006") + " (Current)",
		Count:     currentCount,
		IsCurrent: true,
	})

	return timeline
}
