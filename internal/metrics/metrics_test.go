package metrics_test

import (
	"errors"
	"strings"
	"testing"

	"marketplace/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	m, err := metrics.New(reg)
	require.NoError(t, err)

	m.CascadeStarted()
	m.NotificationSent(1)
	m.PaymentExpired()

	count, err := testutil.GatherAndCount(reg,
		"dispatch_cascades_started_total",
		"dispatch_notifications_sent_total",
		"payments_expired_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestNew_DuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.New(reg)
	require.NoError(t, err)

	_, err = metrics.New(reg)

	require.Error(t, err)
	var already prometheus.AlreadyRegisteredError
	assert.True(t, errors.As(err, &already))
}

func TestMetrics_CountersByTier(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	m.NotificationSent(1)
	m.NotificationSent(3)
	m.NotificationSent(3)
	m.NotificationFailed(2)

	const expected = `
# HELP dispatch_notifications_sent_total Total number of delivery invitations pushed to couriers
# TYPE dispatch_notifications_sent_total counter
dispatch_notifications_sent_total{tier="1"} 1
dispatch_notifications_sent_total{tier="3"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg,
		strings.NewReader(expected), "dispatch_notifications_sent_total"))
}

func TestMetrics_ReconciliationCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	m.DeliveryReverted()
	m.DeliveryReverted()
	m.ReconciliationFailed()

	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			if metric.GetCounter() != nil {
				values[family.GetName()] += metric.GetCounter().GetValue()
			}
		}
	}
	assert.InDelta(t, 2.0, values["deliveries_reverted_total"], 0)
	assert.InDelta(t, 1.0, values["reconciliation_failures_total"], 0)
}

func TestMetrics_ObserveHTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	m.ObserveHTTP("GET", "/api/v1/deliveries/:id", 200, 0.01)

	count, err := testutil.GatherAndCount(reg, "http_requests_total", "http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
