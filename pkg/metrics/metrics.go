// Package metrics exposes prometheus counters of feed loads, interactions and sessions
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds registered collectors, nil *Metrics is a valid no-op
type Metrics struct {
	reg prometheus.Gatherer

	pageLoads     *prometheus.CounterVec
	pageLatency   *prometheus.HistogramVec
	likes         *prometheus.CounterVec
	reactions     *prometheus.CounterVec
	sessions      prometheus.Gauge
	notifications prometheus.Gauge
	forms         *prometheus.CounterVec
}

// New registers collectors in the registry, nil registry makes a private one
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		pageLoads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pixelsocial_feed_page_loads_total",
			Help: "The total number of feed page loads",
		}, []string{"page", "status"}),
		pageLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pixelsocial_feed_page_load_seconds",
			Help:    "Histogram of feed page load latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		}, []string{"status"}),
		likes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pixelsocial_likes_total",
			Help: "The total number of like toggles",
		}, []string{"action"}),
		reactions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pixelsocial_reactions_total",
			Help: "The total number of reactions selected",
		}, []string{"reaction"}),
		sessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "pixelsocial_sessions",
			Help: "Number of viewer sessions in memory",
		}),
		notifications: f.NewGauge(prometheus.GaugeOpts{
			Name: "pixelsocial_ticker_notifications",
			Help: "Number of retained ticker notifications",
		}),
		forms: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pixelsocial_form_submissions_total",
			Help: "The total number of form submissions",
		}, []string{"form", "status"}),
	}
}

// ObserveLoad records a feed page load outcome, signature matches feed.WithObserver
func (m *Metrics) ObserveLoad(page int, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := statusLabel(err)
	m.pageLoads.WithLabelValues(strconv.Itoa(page), status).Inc()
	m.pageLatency.WithLabelValues(status).Observe(d.Seconds())
}

// Like records a like toggle
func (m *Metrics) Like(liked bool) {
	if m == nil {
		return
	}
	action := "unlike"
	if liked {
		action = "like"
	}
	m.likes.WithLabelValues(action).Inc()
}

// Reaction records a selected reaction
func (m *Metrics) Reaction(name string) {
	if m == nil {
		return
	}
	m.reactions.WithLabelValues(name).Inc()
}

// Sessions sets number of live sessions
func (m *Metrics) Sessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}

// Notifications sets number of retained ticker notifications
func (m *Metrics) Notifications(n int) {
	if m == nil {
		return
	}
	m.notifications.Set(float64(n))
}

// Form records a form submission outcome
func (m *Metrics) Form(name string, err error) {
	if m == nil {
		return
	}
	m.forms.WithLabelValues(name, statusLabel(err)).Inc()
}

// Handler returns http handler serving the registry
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
