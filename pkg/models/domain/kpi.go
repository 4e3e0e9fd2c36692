package domain

// KPI is a single catalog entry.
type KPI struct {
	ID          string // SMM.ER
	Category    string // SMM (Вовлеченность)
	DisplayName string // Engagement Rate (ER), %
}

// Category groups KPIs in catalog order.
type Category struct {
	Name string
	KPIs []KPI
}
