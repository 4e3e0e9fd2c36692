package views

import (
	"sort"

	"github.com/unsovich/BBDashboard/pkg/models/domain"
)

// History filters observations by display name (all when names is empty)
// and orders them newest first. Records of the same day keep their order.
func History(observations []domain.Observation, names []string) []domain.Observation {
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}

	out := make([]domain.Observation, 0, len(observations))
	for _, o := range observations {
		if len(keep) == 0 || keep[o.DisplayName] {
			out = append(out, o)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PeriodStart.After(out[j].PeriodStart)
	})
	return out
}

// DisplayNames lists the distinct display names in order of first appearance.
func DisplayNames(observations []domain.Observation) []string {
	seen := make(map[string]bool)
	var names []string
	for _, o := range observations {
		if !seen[o.DisplayName] {
			seen[o.DisplayName] = true
			names = append(names, o.DisplayName)
		}
	}
	return names
}
