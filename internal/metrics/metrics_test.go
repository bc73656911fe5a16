package metrics_test

import (
	"testing"

	"marketplace/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersEveryCollector(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := metrics.New(reg)

	m.HTTPRequestsTotal.WithLabelValues("GET", "/health", "200").Inc()
	m.HTTPRequestDuration.WithLabelValues("GET", "/health", "200").Observe(0.01)
	m.DeliveryRequests.WithLabelValues("PENDING").Set(3)
	m.NotificationsDropped.Inc()
	m.NotificationsFailed.Inc()
	m.AutoAssignmentsTotal.WithLabelValues("assigned").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 6)
	assert.InDelta(t, 3, testutil.ToFloat64(m.DeliveryRequests.WithLabelValues("PENDING")), 1e-9)
}

func TestNew_NilRegistererLeavesCollectorsUsable(t *testing.T) {
	m := metrics.New(nil)
	m.NotificationsDropped.Inc()
	assert.InDelta(t, 1, testutil.ToFloat64(m.NotificationsDropped), 1e-9)
}
