// Package metrics holds the Prometheus collectors of the service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	DeliveryRequests     *prometheus.GaugeVec
	NotificationsDropped prometheus.Counter
	NotificationsFailed  prometheus.Counter
	AutoAssignmentsTotal *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. A nil reg leaves
// them unregistered, which is what most tests want.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		DeliveryRequests: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "delivery_requests",
				Help: "Number of delivery requests per status",
			},
			[]string{"status"},
		),
		NotificationsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "notifications_dropped_total",
			Help: "Notifications discarded because the queue was full",
		}),
		NotificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "notifications_failed_total",
			Help: "Notifications the sender could not deliver",
		}),
		AutoAssignmentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auto_assignments_total",
				Help: "Automatic assignment runs by outcome",
			},
			[]string{"outcome"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.HTTPRequestsTotal,
			m.HTTPRequestDuration,
			m.DeliveryRequests,
			m.NotificationsDropped,
			m.NotificationsFailed,
			m.AutoAssignmentsTotal,
		)
	}

	return m
}
