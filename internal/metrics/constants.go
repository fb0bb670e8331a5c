package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "typing_http_requests_total"
	MetricNameHTTPRequestDuration  = "typing_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "typing_http_requests_in_flight"

	MetricNameTestsSubmitted   = "typing_tests_submitted_total"
	MetricNameEventsPublished  = "typing_events_published_total"
	MetricNameEventsReceived   = "typing_events_received_total"
	MetricNameEventsDropped    = "typing_events_dropped_total"
	MetricNameConnectedClients = "typing_connected_clients"
	MetricNameIdentifiedUsers  = "typing_identified_users"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextTestsSubmitted   = "Total number of typing test results submitted"
	HelpTextEventsPublished  = "Total number of domain events published to the shared channel"
	HelpTextEventsReceived   = "Total number of domain events received from the shared channel"
	HelpTextEventsDropped    = "Total number of undecodable or unknown events dropped by the relay"
	HelpTextConnectedClients = "Number of realtime clients connected to this process"
	HelpTextIdentifiedUsers  = "Number of identified users connected to this process"
)

// Label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelReason = "reason"
)

// HTTPLatencyBuckets are tuned for an I/O-bound service whose requests
// are dominated by store round-trips.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}
