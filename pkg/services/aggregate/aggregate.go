package aggregate

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/unsovich/BBDashboard/pkg/models/domain"
)

type bucket struct {
	key   string
	label string
	order time.Time
}

type group struct {
	bucket  bucket
	name    string
	minimum []float64
	target  []float64
	actual  []float64
}

// Aggregate buckets observations by period and display name and averages
// minimum, target and actual within each bucket.
//
// In monthly mode buckets are calendar months. In weekly mode month must be set;
// observations outside it are ignored and buckets follow each observation's
// week or day identifier. Without a month the weekly result is empty.
//
// Values are averaged even for monetary KPIs, so a bucket holds the mean of its
// records rather than their total.
func Aggregate(observations []domain.Observation, mode domain.Mode, month *domain.MonthFilter) []domain.SeriesPoint {
	if mode == domain.ModeWeekly && month == nil {
		return []domain.SeriesPoint{}
	}

	groups := make(map[string]*group)
	for _, o := range observations {
		if !o.Valid() {
			continue
		}

		var b bucket
		switch mode {
		case domain.ModeWeekly:
			if !month.Contains(o.PeriodStart) {
				continue
			}
			b = weekBucket(o)
		default:
			b = monthBucket(o.PeriodStart)
		}

		id := b.key + "\x00" + o.DisplayName
		g, ok := groups[id]
		if !ok {
			g = &group{bucket: b, name: o.DisplayName}
			groups[id] = g
		}
		if b.order.Before(g.bucket.order) {
			g.bucket.order = b.order
		}
		g.minimum = append(g.minimum, o.Minimum)
		g.target = append(g.target, o.Target)
		g.actual = append(g.actual, o.Actual)
	}

	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.bucket.order.Equal(b.bucket.order) {
			return a.bucket.order.Before(b.bucket.order)
		}
		if a.bucket.key != b.bucket.key {
			return a.bucket.key < b.bucket.key
		}
		return a.name < b.name
	})

	points := make([]domain.SeriesPoint, 0, len(ordered))
	for _, g := range ordered {
		points = append(points, domain.SeriesPoint{
			Bucket:      g.bucket.key,
			PeriodLabel: g.bucket.label,
			DisplayName: g.name,
			Minimum:     stat.Mean(g.minimum, nil),
			Target:      stat.Mean(g.target, nil),
			Actual:      stat.Mean(g.actual, nil),
			Samples:     len(g.actual),
		})
	}
	return points
}

func monthBucket(t time.Time) bucket {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return bucket{
		key:   fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month())),
		label: first.Format("January 2006"),
		order: first,
	}
}

func weekBucket(o domain.Observation) bucket {
	return bucket{
		key:   o.WeekID,
		label: o.PeriodRange,
		order: o.PeriodStart,
	}
}

// Series returns the points of a single KPI in bucket order.
func Series(points []domain.SeriesPoint, displayName string) domain.Series {
	series := domain.Series{DisplayName: displayName, Points: []domain.SeriesPoint{}}
	for _, p := range points {
		if p.DisplayName == displayName {
			series.Points = append(series.Points, p)
		}
	}
	return series
}

// Group splits points into one series per KPI, ordered by display name.
func Group(points []domain.SeriesPoint) []domain.Series {
	index := make(map[string]int)
	out := []domain.Series{}
	for _, p := range points {
		i, ok := index[p.DisplayName]
		if !ok {
			i = len(out)
			index[p.DisplayName] = i
			out = append(out, domain.Series{DisplayName: p.DisplayName})
		}
		out[i].Points = append(out[i].Points, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out
}
