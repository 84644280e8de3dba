package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers the auth-core counters.
type Collector struct {
	logins        *prometheus.CounterVec
	loginFailures prometheus.Counter
	refreshes     prometheus.Counter
	refreshDenied *prometheus.CounterVec
	revocations   prometheus.Counter
	registrations prometheus.Counter
	withdrawals   prometheus.Counter
}

// NewCollector registers the auth counters on the given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Successful logins by method (password or federated).",
		}, []string{"method"}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_login_failures_total",
			Help: "Rejected password logins.",
		}),
		refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_refreshes_total",
			Help: "Successful refresh token rotations.",
		}),
		refreshDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_refresh_denied_total",
			Help: "Refresh attempts rejected, by reason.",
		}, []string{"reason"}),
		revocations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_revocations_total",
			Help: "Access tokens denylisted on logout or withdraw.",
		}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "New local accounts created.",
		}),
		withdrawals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_withdrawals_total",
			Help: "Accounts deleted at the user's request.",
		}),
	}

	reg.MustRegister(
		c.logins,
		c.loginFailures,
		c.refreshes,
		c.refreshDenied,
		c.revocations,
		c.registrations,
		c.withdrawals,
	)

	return c
}

func (c *Collector) RecordLogin(method string) { c.logins.WithLabelValues(method).Inc() }
func (c *Collector) RecordLoginFailure()       { c.loginFailures.Inc() }
func (c *Collector) RecordRefresh()            { c.refreshes.Inc() }
func (c *Collector) RecordRevocation()         { c.revocations.Inc() }
func (c *Collector) RecordRegistration()       { c.registrations.Inc() }
func (c *Collector) RecordWithdrawal()         { c.withdrawals.Inc() }

func (c *Collector) RecordRefreshDenied(reason string) {
	c.refreshDenied.WithLabelValues(reason).Inc()
}

// Handler returns the /metrics endpoint for the registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
