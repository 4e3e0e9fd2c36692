package generator

import (
	"context"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/unsovich/BBDashboard/pkg/models/domain"
	"github.com/unsovich/BBDashboard/pkg/services/catalog"
)

type Kind int

const (
	KindPercent Kind = iota
	KindMoney
)

// Profile describes how values of a KPI are drawn.
type Profile struct {
	Minimum float64
	Target  float64
	Kind    Kind
}

var defaultProfiles = map[string]Profile{
	"SMM.ER":       {Minimum: 2.5, Target: 4.0},
	"SMM.SHARE":    {Minimum: 0.5, Target: 1.0},
	"SMM.CTR":      {Minimum: 1.0, Target: 2.0},
	"SMM.DCR":      {Minimum: 0.5, Target: 1.5},
	"SMM.MONEY":    {Minimum: 45000, Target: 60000, Kind: KindMoney},
	"PROG.FILL":    {Minimum: 70, Target: 90},
	"PROG.TIME":    {Minimum: 80, Target: 95},
	"PROG.MONITOR": {Minimum: 60, Target: 80},
	"FIN.PLAN":     {Minimum: 80, Target: 100},
	"FIN.BUDGET":   {Minimum: 90, Target: 100},
	"HR.VOL":       {Minimum: 5, Target: 10},
}

var fallbackProfile = Profile{Minimum: 50, Target: 100}

const successComment = "Успешный рилс"

type Config struct {
	Cadence     domain.Granularity // daily or weekly
	Probability float64            // daily inclusion probability
	Seed        uint64
	Now         func() time.Time
}

func DefaultConfig() Config {
	return Config{
		Cadence:     domain.GranularityWeekly,
		Probability: 0.3,
		Seed:        uint64(time.Now().UnixNano()),
		Now:         time.Now,
	}
}

// Generator produces a plausible collection from the start of the current
// year up to now for every catalog KPI.
type Generator struct {
	catalog  *catalog.Catalog
	config   Config
	profiles map[string]Profile
}

func New(c *catalog.Catalog, config Config) *Generator {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.Cadence == "" {
		config.Cadence = domain.GranularityWeekly
	}
	return &Generator{
		catalog:  c,
		config:   config,
		profiles: defaultProfiles,
	}
}

// Generate implements kpi.Source.
func (g *Generator) Generate(ctx context.Context) []domain.Observation {
	r := rand.New(rand.NewPCG(g.config.Seed, g.config.Seed^0x9e3779b97f4a7c15))
	now := g.config.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	kpis := g.catalog.KPIs()
	var observations []domain.Observation

	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		if g.config.Cadence == domain.GranularityWeekly && d.Weekday() != time.Monday {
			continue
		}
		period := domain.NewPeriod(d, g.config.Cadence)

		for _, kpi := range kpis {
			if g.config.Cadence != domain.GranularityWeekly && r.Float64() >= g.config.Probability {
				continue
			}
			profile := g.profile(kpi.ID)
			actual := draw(r, profile)

			var comment string
			if strings.HasPrefix(kpi.ID, "SMM.") && actual >= profile.Target && r.Float64() > 0.8 {
				comment = successComment
			}

			observations = append(observations, domain.Observation{
				PeriodStart: period.Start,
				WeekID:      period.ID,
				PeriodRange: period.Range,
				Category:    kpi.Category,
				KPIID:       kpi.ID,
				DisplayName: kpi.DisplayName,
				Minimum:     profile.Minimum,
				Target:      profile.Target,
				Actual:      actual,
				Comment:     comment,
			})
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("cadence", string(g.config.Cadence)).
		Int("records", len(observations)).
		Msg("generated synthetic history")
	return observations
}

func (g *Generator) profile(id string) Profile {
	if p, ok := g.profiles[id]; ok {
		return p
	}
	return fallbackProfile
}

func draw(r *rand.Rand, p Profile) float64 {
	if p.Kind == KindMoney {
		lo := int(math.Round(p.Minimum * 0.9))
		hi := int(math.Round(p.Target * 1.25))
		return float64(lo + r.IntN(hi-lo+1))
	}
	v := p.Target + r.NormFloat64()*p.Target*0.2
	if v < 0 {
		v = 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
