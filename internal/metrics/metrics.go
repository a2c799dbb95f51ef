// Package metrics holds the Prometheus collectors of the marketplace core.
package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the dispatch, reconciliation and HTTP collectors. Create it
// once per registry with New.
type Metrics struct {
	cascadesStarted      prometheus.Counter
	notificationsSent    *prometheus.CounterVec
	notificationFailures *prometheus.CounterVec
	paymentsExpired      prometheus.Counter
	deliveriesReverted   prometheus.Counter
	reconcileFailures    prometheus.Counter
	httpRequests         *prometheus.CounterVec
	httpDuration         *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		cascadesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_cascades_started_total",
			Help: "Total number of dispatch escalation cascades started",
		}),
		notificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_notifications_sent_total",
			Help: "Total number of delivery invitations pushed to couriers",
		}, []string{"tier"}),
		notificationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_notification_failures_total",
			Help: "Total number of delivery invitations the push gateway rejected",
		}, []string{"tier"}),
		paymentsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payments_expired_total",
			Help: "Total number of pending payments marked as expired",
		}),
		deliveriesReverted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deliveries_reverted_total",
			Help: "Total number of deliveries sent back to PENDING after a lapsed payment",
		}),
		reconcileFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reconciliation_failures_total",
			Help: "Total number of payments the expiration sweep failed to process",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}

	var err error
	for _, c := range []prometheus.Collector{
		m.cascadesStarted,
		m.notificationsSent,
		m.notificationFailures,
		m.paymentsExpired,
		m.deliveriesReverted,
		m.reconcileFailures,
		m.httpRequests,
		m.httpDuration,
	} {
		err = errors.Join(err, reg.Register(c))
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) CascadeStarted() {
	m.cascadesStarted.Inc()
}

func (m *Metrics) NotificationSent(tier int) {
	m.notificationsSent.WithLabelValues(strconv.Itoa(tier)).Inc()
}

func (m *Metrics) NotificationFailed(tier int) {
	m.notificationFailures.WithLabelValues(strconv.Itoa(tier)).Inc()
}

func (m *Metrics) PaymentExpired() {
	m.paymentsExpired.Inc()
}

func (m *Metrics) DeliveryReverted() {
	m.deliveriesReverted.Inc()
}

func (m *Metrics) ReconciliationFailed() {
	m.reconcileFailures.Inc()
}

// ObserveHTTP records one served request. path must be the route pattern, not
// the raw URL, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(method, path string, status int, seconds float64) {
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, path, code).Inc()
	m.httpDuration.WithLabelValues(method, path, code).Observe(seconds)
}
