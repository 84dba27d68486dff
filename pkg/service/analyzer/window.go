package analyzer

import (
	"time"

	"github.com/RogoLabs/CNAPulse/pkg/domain/model"
)

// monthKey identifies one calendar month
type monthKey struct {
	Year  int
	Month time.Month
}

func monthOf(t time.Time) monthKey {
	return monthKey{Year: t.Year(), Month: t.Month()}
}

func (k monthKey) start() time.Time {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (k monthKey) label() string {
	return k.start().Format("Jan 2006")
}

// windows fixes the time boundaries of one analysis run: the rolling
// current-activity window and the calendar-month baseline period
// preceding it. The two never overlap.
type windows struct {
	now             time.Time
	monitoringStart time.Time
	baselineStart   time.Time
	baselineEnd     time.Time
	// baselineMonths lists the baseline calendar months oldest first
	baselineMonths []monthKey
}

// computeWindows derives the analysis windows from the reference
// timestamp. The current window is [now - monitoringWindowDays, now),
// not calendar aligned. The baseline is the configured number of full
// calendar months immediately preceding the month containing the start
// of the current window.
func computeWindows(now time.Time, cfg model.AnalysisConfig) windows {
	monitoringStart := now.Add(-time.Duration(cfg.MonitoringWindowDays) * 24 * time.Hour)

	anchor := monthOf(monitoringStart).start()
	months := make([]monthKey, 0, cfg.BaselineMonths)
	for i := cfg.BaselineMonths; i >= 1; i-- {
		months = append(months, monthOf(anchor.AddDate(0, -i, 0)))
	}

	return windows{
		now:             now,
		monitoringStart: monitoringStart,
		baselineStart:   months[0].start(),
		baselineEnd:     anchor,
		baselineMonths:  months,
	}
}

// inCurrentWindow reports whether a publication timestamp falls in the
// rolling current window
func (w windows) inCurrentWindow(t time.Time) bool {
	return !t.Before(w.monitoringStart) && t.Before(w.now)
}

// baselineMonthSet returns the baseline months as a lookup set
func (w windows) baselineMonthSet() map[monthKey]bool {
	set := make(map[monthKey]bool, len(w.baselineMonths))
	for _, m := range w.baselineMonths {
		set[m] = true
	}
	return set
}
