package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unsovich/BBDashboard/pkg/models/domain"
)

var now = time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -n)
}

func obs(start time.Time, name string, minimum, actual float64) domain.Observation {
	return domain.Observation{
		PeriodStart: start,
		KPIID:       "SMM.ER",
		DisplayName: name,
		Minimum:     minimum,
		Target:      4,
		Actual:      actual,
		Comment:     name + " comment",
	}
}

func TestFindAlerts(t *testing.T) {
	observations := []domain.Observation{
		obs(daysAgo(3), "below", 2.5, 2.0),
		obs(daysAgo(5), "equal", 2.5, 2.5),
		obs(daysAgo(6), "above", 2.5, 3.0),
		obs(daysAgo(31), "too old", 2.5, 1.0),
		obs(daysAgo(30), "edge", 2.5, 1.0),
		obs(daysAgo(-1), "future", 2.5, 1.0),
		obs(daysAgo(0), "today", 2.5, 0),
	}

	alerts := FindAlerts(observations, 30, now)

	var names []string
	for _, a := range alerts {
		names = append(names, a.DisplayName)
		assert.Less(t, a.Actual, a.Minimum)
	}
	assert.Equal(t, []string{"below", "edge", "today"}, names)
	assert.Equal(t, "below comment", alerts[0].Comment)
	assert.Equal(t, 4.0, alerts[0].Target)
}

func TestFindAlerts_ExcludedRowsAreNotBelowMinimum(t *testing.T) {
	observations := []domain.Observation{
		obs(daysAgo(1), "a", 1, 0.5),
		obs(daysAgo(2), "b", 1, 1),
		obs(daysAgo(3), "c", 1, 1.5),
		obs(daysAgo(4), "d", -1, -2),
	}

	alerts := FindAlerts(observations, 30, now)
	selected := make(map[string]bool)
	for _, a := range alerts {
		selected[a.DisplayName] = true
	}

	for _, o := range observations {
		assert.Equal(t, o.Actual < o.Minimum, selected[o.DisplayName], o.DisplayName)
	}
}

func TestFindAlerts_EngagementWithinFloor(t *testing.T) {
	observations := []domain.Observation{obs(daysAgo(10), "Engagement Rate (ER), %", 2.5, 3.0)}

	assert.Empty(t, FindAlerts(observations, 30, now))
}

func TestFindAlerts_EmptyCollection(t *testing.T) {
	alerts := FindAlerts(nil, 30, now)

	require.NotNil(t, alerts)
	assert.Empty(t, alerts)
}

func TestWindow_NegativeDays(t *testing.T) {
	from, to := Window(now, -5)
	assert.Equal(t, from, to)
}
