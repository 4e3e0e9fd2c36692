package domain

import (
	"fmt"
	"time"
)

// Period holds the precomputed period identifiers of an observation.
type Period struct {
	Start time.Time
	ID    string
	Range string
}

// NewPeriod anchors date to the reporting period of the given granularity.
func NewPeriod(date time.Time, granularity Granularity) Period {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	if granularity != GranularityWeekly {
		return Period{
			Start: day,
			ID:    day.Format(DateLayout),
			Range: day.Format(DisplayDateLayout),
		}
	}

	// time.Weekday starts on Sunday, ISO weeks start on Monday.
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	year, week := monday.ISOWeek()

	return Period{
		Start: monday,
		ID:    fmt.Sprintf("%d-W%02d", year, week),
		Range: fmt.Sprintf("%s – %s", monday.Format(DisplayDateLayout), sunday.Format(DisplayDateLayout)),
	}
}
