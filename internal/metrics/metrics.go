// Package metrics collects and exposes Prometheus metrics for the API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the site's counters. Handlers and the notification
// consumer record outcomes through it.
type Collector struct {
	adminLogins    *prometheus.CounterVec
	sessionAuth    *prometheus.CounterVec
	notifyDelivery *prometheus.CounterVec
}

// NewCollector creates the counters and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		adminLogins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "debateclub_admin_logins_total",
			Help: "Admin login attempts by outcome.",
		}, []string{"outcome"}),
		sessionAuth: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "debateclub_session_auth_total",
			Help: "Session authentication attempts by outcome.",
		}, []string{"outcome"}),
		notifyDelivery: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "debateclub_notification_deliveries_total",
			Help: "Push notification delivery attempts by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(c.adminLogins, c.sessionAuth, c.notifyDelivery)
	return c
}

// RecordAdminLogin counts an admin login attempt ("ok" or "denied").
func (c *Collector) RecordAdminLogin(outcome string) {
	c.adminLogins.WithLabelValues(outcome).Inc()
}

// RecordSessionAuth counts a session authentication attempt
// ("ok", "expired", "denied" or "error").
func (c *Collector) RecordSessionAuth(outcome string) {
	c.sessionAuth.WithLabelValues(outcome).Inc()
}

// RecordDelivery counts a notification delivery attempt ("ok" or "fail").
func (c *Collector) RecordDelivery(outcome string) {
	c.notifyDelivery.WithLabelValues(outcome).Inc()
}

// Handler returns the scrape handler for the given gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
