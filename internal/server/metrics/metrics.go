// Package metrics defines the Prometheus collectors exported by the server.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/fintrack/internal/common"
)

const namespace = "fintrack"

// Auth operations.
const (
	OpRegister = "register"
	OpLogin    = "login"
)

// Metrics groups the server collectors.
type Metrics struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	authAttempts   *prometheus.CounterVec
	authzDecisions *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "attempts_total",
			Help:      "Registration and login attempts by outcome.",
		}, []string{"op", "result"}),
		authzDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "decisions_total",
			Help:      "Gateway authorization decisions by transport.",
		}, []string{"transport", "decision"}),
	}

	reg.MustRegister(m.httpRequests, m.httpDuration, m.authAttempts, m.authzDecisions)
	return m
}

// ObserveHTTP records one finished HTTP request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveAuth records the outcome of a register or login call.
func (m *Metrics) ObserveAuth(op string, err error) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(op, AuthResult(err)).Inc()
}

// ObserveDecision records an authorizer decision.
func (m *Metrics) ObserveDecision(transport string, allowed bool) {
	if m == nil {
		return
	}
	decision := "deny"
	if allowed {
		decision = "allow"
	}
	m.authzDecisions.WithLabelValues(transport, decision).Inc()
}

// AuthResult maps a service error onto a low-cardinality label value.
func AuthResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, common.ErrValidation):
		return "invalid_input"
	case errors.Is(err, common.ErrDuplicateIdentity):
		return "duplicate"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "bad_credentials"
	default:
		return "error"
	}
}
