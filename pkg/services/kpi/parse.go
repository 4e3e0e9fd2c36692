package kpi

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/unsovich/BBDashboard/pkg/models/domain"
)

var dateLayouts = []string{
	domain.DateLayout,
	domain.DisplayDateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDate accepts ISO dates, DD.MM.YYYY and timestamps; the time of day is dropped.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

// ParseNumber accepts a finite float, with either a decimal point or a decimal comma.
func ParseNumber(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty number")
	}
	if !strings.Contains(value, ".") {
		value = strings.Replace(value, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", value)
	}
	return v, nil
}

// FormatNumber renders v so that ParseNumber returns exactly v.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ParseRow coerces a table row into an observation. Missing period identifiers
// are derived as daily ones.
func ParseRow(row domain.ObservationRow) (domain.Observation, error) {
	start, err := ParseDate(row[domain.ColumnPeriodStart])
	if err != nil {
		return domain.Observation{}, fmt.Errorf("%w: %s: %v", ErrInvalidObservation, domain.ColumnPeriodStart, err)
	}

	var values [3]float64
	for i, column := range []string{domain.ColumnMinimum, domain.ColumnTarget, domain.ColumnActual} {
		values[i], err = ParseNumber(row[column])
		if err != nil {
			return domain.Observation{}, fmt.Errorf("%w: %s: %v", ErrInvalidObservation, column, err)
		}
	}

	obs := domain.Observation{
		PeriodStart: start,
		WeekID:      strings.TrimSpace(row[domain.ColumnWeekID]),
		PeriodRange: strings.TrimSpace(row[domain.ColumnPeriodRange]),
		Category:    strings.TrimSpace(row[domain.ColumnCategory]),
		KPIID:       strings.TrimSpace(row[domain.ColumnKPIID]),
		DisplayName: strings.TrimSpace(row[domain.ColumnDisplayName]),
		Minimum:     values[0],
		Target:      values[1],
		Actual:      values[2],
		Comment:     row[domain.ColumnComment],
	}
	if obs.KPIID == "" {
		return domain.Observation{}, fmt.Errorf("%w: empty %s", ErrInvalidObservation, domain.ColumnKPIID)
	}
	if obs.DisplayName == "" {
		return domain.Observation{}, fmt.Errorf("%w: empty %s", ErrInvalidObservation, domain.ColumnDisplayName)
	}

	if obs.WeekID == "" || obs.PeriodRange == "" {
		period := domain.NewPeriod(start, domain.GranularityDaily)
		if obs.WeekID == "" {
			obs.WeekID = period.ID
		}
		if obs.PeriodRange == "" {
			obs.PeriodRange = period.Range
		}
	}

	return obs, nil
}

// ToRow renders an observation as a table row.
func ToRow(o domain.Observation) domain.ObservationRow {
	return domain.ObservationRow{
		domain.ColumnPeriodStart: o.PeriodStart.Format(domain.DateLayout),
		domain.ColumnWeekID:      o.WeekID,
		domain.ColumnPeriodRange: o.PeriodRange,
		domain.ColumnCategory:    o.Category,
		domain.ColumnKPIID:       o.KPIID,
		domain.ColumnDisplayName: o.DisplayName,
		domain.ColumnMinimum:     FormatNumber(o.Minimum),
		domain.ColumnTarget:      FormatNumber(o.Target),
		domain.ColumnActual:      FormatNumber(o.Actual),
		domain.ColumnComment:     o.Comment,
	}
}

// Rows renders observations as table rows.
func Rows(observations []domain.Observation) []domain.ObservationRow {
	rows := make([]domain.ObservationRow, 0, len(observations))
	for _, o := range observations {
		rows = append(rows, ToRow(o))
	}
	return rows
}
