package domain

import "time"

// Report represents a rendered dashboard view
type Report struct {
	Title    string
	Period   TimePeriod
	Sections []ReportSection
}

// TimePeriod represents a time range for the report
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

// ReportSection represents a logical section in the report, e.g. one KPI series
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Rows    []ReportRow
	Empty   string // shown instead of the table when Rows is empty
}

// ReportRow is one table line of a section
type ReportRow struct {
	Period  string
	Name    string
	Minimum float64
	Target  float64
	Actual  float64
	Comment string
}
