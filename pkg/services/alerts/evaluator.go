package alerts

import (
	"time"

	"github.com/unsovich/BBDashboard/pkg/models/domain"
)

// DefaultWindowDays is the lookback of the attention panel.
const DefaultWindowDays = 30

// Window returns the inclusive calendar-day range [today - days, today].
func Window(now time.Time, days int) (time.Time, time.Time) {
	if days < 0 {
		days = 0
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -days), today
}

// InWindow reports whether the observation's period starts within the window.
func InWindow(o domain.Observation, from, to time.Time) bool {
	return !o.PeriodStart.Before(from) && !o.PeriodStart.After(to)
}

// FindAlerts returns the observations of the last windowDays days whose actual
// value is strictly below their minimum, in their original order.
func FindAlerts(observations []domain.Observation, windowDays int, now time.Time) []domain.Alert {
	from, to := Window(now, windowDays)

	alerts := make([]domain.Alert, 0)
	for _, o := range observations {
		if !o.Valid() || !InWindow(o, from, to) || !o.Below() {
			continue
		}
		alerts = append(alerts, domain.Alert{
			PeriodStart: o.PeriodStart,
			KPIID:       o.KPIID,
			DisplayName: o.DisplayName,
			Minimum:     o.Minimum,
			Target:      o.Target,
			Actual:      o.Actual,
			Comment:     o.Comment,
		})
	}
	return alerts
}
