package domain

import (
	"fmt"
	"strings"
	"time"
)

type Mode string

const (
	// ModeMonthly buckets a year by calendar month.
	ModeMonthly Mode = "monthly"
	// ModeWeekly buckets a single month by week or day.
	ModeWeekly Mode = "weekly"
)

// ParseMode accepts monthly or weekly, case-insensitive. Empty means monthly.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeMonthly:
		return ModeMonthly, nil
	case ModeWeekly:
		return ModeWeekly, nil
	}
	return "", fmt.Errorf("unknown mode %q, expected %s or %s", s, ModeMonthly, ModeWeekly)
}

// MonthFilter selects a calendar month.
type MonthFilter struct {
	Year  int
	Month time.Month
}

func (m MonthFilter) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// ParseMonth parses YYYY-MM. An empty string yields a nil filter.
func ParseMonth(s string) (*MonthFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return &MonthFilter{Year: t.Year(), Month: t.Month()}, nil
}

// Contains reports whether t falls into the month.
func (m MonthFilter) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// SeriesPoint is one averaged (bucket, display name) row.
type SeriesPoint struct {
	Bucket      string // 2024-03 or 2024-W05
	PeriodLabel string // March 2024 or 29.01.2024 – 04.02.2024
	DisplayName string
	Minimum     float64
	Target      float64
	Actual      float64
	Samples     int
}

// Series is the ordered list of points of a single KPI.
type Series struct {
	DisplayName string
	Points      []SeriesPoint
}

// Alert is an observation whose actual value fell below its minimum.
type Alert struct {
	PeriodStart time.Time
	KPIID       string
	DisplayName string
	Minimum     float64
	Target      float64
	Actual      float64
	Comment     string
}

// Card summarises a KPI over a lookback window.
type Card struct {
	KPIID   string
	Label   string
	Actual  float64 // mean
	Target  float64 // mean
	Delta   float64 // Actual - Target
	HasData bool
}

// Overview is the top-level dashboard: trend series of the key KPIs and the
// attention panel.
type Overview struct {
	Mode       Mode
	Month      *MonthFilter
	WindowDays int
	Series     []Series
	Alerts     []Alert
}

// ReplaceResult reports the outcome of a bulk replace.
type ReplaceResult struct {
	Rows    int
	Dropped int
}
