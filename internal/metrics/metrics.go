package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	FailedLogins    prometheus.Counter
	Lockouts        prometheus.Counter
	SessionsCreated prometheus.Counter
	ContactRequests prometheus.Counter
	HTTPRequests    *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	return &Metrics{
		registry: reg,
		FailedLogins: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "vitrine_failed_login_attempts_total",
			Help: "Total number of failed login attempts.",
		}),
		Lockouts: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "vitrine_login_lockouts_total",
			Help: "Total number of login lockouts triggered.",
		}),
		SessionsCreated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "vitrine_sessions_created_total",
			Help: "Total number of sessions created by successful logins.",
		}),
		ContactRequests: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "vitrine_contact_requests_total",
			Help: "Total number of contact form submissions accepted.",
		}),
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "vitrine_http_requests_total",
			Help: "Total number of HTTP requests by method and status class.",
		}, []string{"method", "status"}),
	}
}

// Handler returns the /metrics HTTP handler for the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
