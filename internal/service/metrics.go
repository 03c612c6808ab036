package service

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the domain counters emitted by the services. A nil *Metrics is a no-op.
type Metrics struct {
	upstreamFailures *prometheus.CounterVec
	reportsGenerated *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		upstreamFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invoice_upstream_fetch_failures_total",
				Help: "Failed calls to the retail backend, by operation.",
			},
			[]string{"operation"},
		),
		reportsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invoice_reports_generated_total",
				Help: "Invoice reports rendered, by whether they were archived.",
			},
			[]string{"archived"},
		),
	}
	for _, c := range []prometheus.Collector{m.upstreamFailures, m.reportsGenerated} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) upstreamFailed(op string) {
	if m == nil {
		return
	}
	m.upstreamFailures.WithLabelValues(op).Inc()
}

func (m *Metrics) reportGenerated(archived bool) {
	if m == nil {
		return
	}
	m.reportsGenerated.WithLabelValues(strconv.FormatBool(archived)).Inc()
}
