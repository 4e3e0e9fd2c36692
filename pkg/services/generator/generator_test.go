package generator

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unsovich/BBDashboard/pkg/models/domain"
	"github.com/unsovich/BBDashboard/pkg/services/catalog"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
}

func TestGenerate_Weekly(t *testing.T) {
	c := catalog.Default()
	g := New(c, Config{Cadence: domain.GranularityWeekly, Seed: 42, Now: fixedNow})

	observations := g.Generate(context.Background())

	// Mondays from Jan 1 to Mar 11 2024.
	require.Len(t, observations, 11*len(c.KPIs()))
	for _, o := range observations {
		assert.True(t, o.Valid())
		assert.Equal(t, time.Monday, o.PeriodStart.Weekday())
		assert.Equal(t, 2024, o.PeriodStart.Year())
		assert.False(t, o.PeriodStart.After(fixedNow()))
		assert.GreaterOrEqual(t, o.Actual, 0.0)
		assert.Contains(t, o.WeekID, "2024-W")
		assert.InDelta(t, math.Round(o.Actual*100), o.Actual*100, 1e-6)
	}
}

func TestGenerate_MoneyRange(t *testing.T) {
	g := New(catalog.Default(), Config{Cadence: domain.GranularityWeekly, Seed: 7, Now: fixedNow})

	for _, o := range g.Generate(context.Background()) {
		if o.KPIID != "SMM.MONEY" {
			continue
		}
		assert.GreaterOrEqual(t, o.Actual, 40500.0)
		assert.LessOrEqual(t, o.Actual, 75000.0)
		assert.Equal(t, float64(int(o.Actual)), o.Actual)
	}
}

func TestGenerate_DailyIsDeterministic(t *testing.T) {
	config := Config{Cadence: domain.GranularityDaily, Probability: 0.5, Seed: 1, Now: fixedNow}

	first := New(catalog.Default(), config).Generate(context.Background())
	second := New(catalog.Default(), config).Generate(context.Background())

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.Less(t, len(first), 75*len(catalog.Default().KPIs()))
}

func TestGenerate_ZeroProbability(t *testing.T) {
	g := New(catalog.Default(), Config{Cadence: domain.GranularityDaily, Probability: 0, Seed: 1, Now: fixedNow})

	assert.Empty(t, g.Generate(context.Background()))
}
