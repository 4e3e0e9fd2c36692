package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	Observations prometheus.Gauge
	DroppedRows  prometheus.Counter
	Commands     *prometheus.CounterVec
	Alerts       prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Observations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kpi_observations",
			Help: "Number of observations in the session collection",
		}),
		DroppedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kpi_sanitize_dropped_rows_total",
			Help: "Rows dropped because a date or numeric field could not be parsed",
		}),
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kpi_commands_total",
				Help: "Dashboard commands applied to the collection",
			},
			[]string{"command", "status"},
		),
		Alerts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kpi_alerts",
			Help: "Observations below their minimum in the last evaluated window",
		}),
	}

	m.registry.MustRegister(
		m.Observations,
		m.DroppedRows,
		m.Commands,
		m.Alerts,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
