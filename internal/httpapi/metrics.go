package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the engine's Prometheus registry.
type Metrics struct {
	reg *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	chat     *prometheus.CounterVec
	picks    prometheus.Gauge
	sessions prometheus.Gauge
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "draftboard",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "draftboard",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		chat: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "draftboard",
			Name:      "chat_requests_total",
			Help:      "Chat questions by outcome.",
		}, []string{"outcome"}),
		picks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "draftboard",
			Name:      "dataset_picks",
			Help:      "Picks in the loaded dataset.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "draftboard",
			Name:      "dashboard_sessions",
			Help:      "Open dashboard sessions.",
		}),
	}
	reg.MustRegister(
		m.requests, m.latency, m.chat, m.picks, m.sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) observeRequest(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(dur.Seconds())
}

// ChatOutcome counts one chat request: answered, fallback or error.
func (m *Metrics) ChatOutcome(outcome string) {
	if m == nil {
		return
	}
	m.chat.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetPicks(n int) {
	if m == nil {
		return
	}
	m.picks.Set(float64(n))
}

func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}
