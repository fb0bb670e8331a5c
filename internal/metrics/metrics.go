package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsReceived,
			Help: HelpTextEventsReceived,
		},
		[]string{LabelType},
	)

	EventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsDropped,
			Help: HelpTextEventsDropped,
		},
		[]string{LabelReason},
	)
)

// Business Metrics
var (
	TestsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTestsSubmitted,
			Help: HelpTextTestsSubmitted,
		},
	)

	ConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameConnectedClients,
			Help: HelpTextConnectedClients,
		},
	)

	IdentifiedUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameIdentifiedUsers,
			Help: HelpTextIdentifiedUsers,
		},
	)
)
