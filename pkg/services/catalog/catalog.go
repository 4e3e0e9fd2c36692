package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/ini.v1"

	"github.com/unsovich/BBDashboard/pkg/models/domain"
)

// Catalog is the static taxonomy of categories and KPI identifiers.
type Catalog struct {
	categories []domain.Category
	byID       map[string]domain.KPI
}

// New builds a catalog from ordered categories. A KPI id may belong to one category only.
func New(categories []domain.Category) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]domain.KPI)}

	for _, cat := range categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("category name cannot be empty")
		}
		entry := domain.Category{Name: cat.Name}
		for _, kpi := range cat.KPIs {
			if kpi.ID == "" || kpi.DisplayName == "" {
				return nil, fmt.Errorf("category %q: kpi id and display name are required", cat.Name)
			}
			if prev, exists := c.byID[kpi.ID]; exists {
				return nil, fmt.Errorf("kpi %q is listed in both %q and %q", kpi.ID, prev.Category, cat.Name)
			}
			kpi.Category = cat.Name
			c.byID[kpi.ID] = kpi
			entry.KPIs = append(entry.KPIs, kpi)
		}
		c.categories = append(c.categories, entry)
	}

	return c, nil
}

// Load reads a catalog from an INI file: sections are categories, keys are KPI ids
// and values are display names. Sections without keys are skipped.
func Load(path string) (*Catalog, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}

	var categories []domain.Category
	for _, section := range cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		cat := domain.Category{Name: section.Name()}
		for _, key := range section.Keys() {
			cat.KPIs = append(cat.KPIs, domain.KPI{ID: key.Name(), DisplayName: key.String()})
		}
		categories = append(categories, cat)
	}

	return New(categories)
}

// Categories returns the category names in catalog order.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.categories))
	for _, cat := range c.categories {
		names = append(names, cat.Name)
	}
	return names
}

// All returns a copy of the catalog contents.
func (c *Catalog) All() []domain.Category {
	out := make([]domain.Category, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, domain.Category{
			Name: cat.Name,
			KPIs: append([]domain.KPI(nil), cat.KPIs...),
		})
	}
	return out
}

// KPIs returns every catalog entry in catalog order.
func (c *Catalog) KPIs() []domain.KPI {
	var out []domain.KPI
	for _, cat := range c.categories {
		out = append(out, cat.KPIs...)
	}
	return out
}

// Options returns the KPIs of a category. An unknown category yields an empty
// list and a warning on the context logger.
func (c *Catalog) Options(ctx context.Context, category string) []domain.KPI {
	for _, cat := range c.categories {
		if cat.Name == category {
			return append([]domain.KPI{}, cat.KPIs...)
		}
	}

	zerolog.Ctx(ctx).Warn().
		Str("category", category).
		Msg("category not found in catalog")
	return []domain.KPI{}
}

// Lookup finds a KPI by id.
func (c *Catalog) Lookup(id string) (domain.KPI, bool) {
	kpi, ok := c.byID[id]
	return kpi, ok
}

// Contains reports whether id is a known KPI identifier.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}
