package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is the dedicated Prometheus registry for the adapter
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, handler, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "handler", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "handler", "status"},
	)

	// ProviderCalls counts DoorDash API calls by operation and outcome (ok, error)
	ProviderCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "provider_calls_total", Help: "Delivery provider API calls by operation and outcome."},
		[]string{"operation", "outcome"},
	)
	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "provider_call_duration_seconds", Help: "Delivery provider API call duration in seconds.", Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}},
		[]string{"operation"},
	)

	// InboundWebhooks counts provider webhooks by event type and result (accepted, rejected, error)
	InboundWebhooks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "inbound_webhooks_total", Help: "Inbound provider webhooks by event type and result."},
		[]string{"event_type", "result"},
	)

	// RelayDeliveries counts relay outcomes by event type and status
	RelayDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "relay_deliveries_total", Help: "Relayed webhook deliveries by event type and status."},
		[]string{"event_type", "status"},
	)
	// RelayLatency tracks relay latencies in milliseconds
	RelayLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "relay_delivery_latency_ms", Help: "Relay delivery latency in ms.", Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000}},
		[]string{"event_type", "status"},
	)
)

// RegisterDefault registers collectors to the adapter registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(ProviderCalls)
		Registry.MustRegister(ProviderLatency)
		Registry.MustRegister(InboundWebhooks)
		Registry.MustRegister(RelayDeliveries)
		Registry.MustRegister(RelayLatency)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	RegisterDefault()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
