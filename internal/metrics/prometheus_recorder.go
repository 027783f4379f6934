package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type PrometheusRecorder struct {
	registry *prom.Registry
	calls    *prom.CounterVec
	duration *prom.HistogramVec
}

// NewPrometheusRecorder registers the ledger metrics on reg, or on a fresh
// registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		registry: reg,
		calls: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "ledger",
			Name:      "calls_total",
			Help:      "Contract calls by kind, method and outcome",
		}, []string{"kind", "method", "outcome"}),
		duration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "ledger",
			Name:      "call_duration_seconds",
			Help:      "Duration of contract calls",
			Buckets:   prom.DefBuckets,
		}, []string{"kind", "method"}),
	}

	reg.MustRegister(pr.calls, pr.duration)

	return pr
}

func (pr *PrometheusRecorder) ObserveCall(kind string, method string, outcome Outcome, duration time.Duration) {
	pr.calls.WithLabelValues(kind, method, string(outcome)).Inc()
	pr.duration.WithLabelValues(kind, method).Observe(duration.Seconds())
}

func (pr *PrometheusRecorder) Registry() *prom.Registry {
	return pr.registry
}

// Handler serves the recorder's registry in the Prometheus exposition format.
func (pr *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(pr.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
