package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"doordash-adapter/internal/auth"
	"doordash-adapter/internal/config"
	"doordash-adapter/internal/events"
	"doordash-adapter/internal/metrics"
	"doordash-adapter/internal/orders"
	"doordash-adapter/internal/webhooks"
)

type Server struct {
	Orders   *orders.Service
	Webhooks *webhooks.Processor
	Auth     *auth.Verifier
	Broker   events.Broker
	Log      logrus.FieldLogger
	Now      func() time.Time

	capabilities map[string]any
	upgrader     websocket.Upgrader
}

// NewServer wires the adapter from cfg. With REDIS_URL set the event feed is
// shared through Redis; otherwise, or if Redis is unreachable, it stays in memory.
func NewServer(cfg *config.Config, log logrus.FieldLogger) (*Server, error) {
	caps, err := loadCapabilities()
	if err != nil {
		return nil, err
	}

	var broker events.Broker = events.NewMemoryBroker()
	if cfg.RedisURL != "" {
		if rb, err := events.NewRedisBroker(cfg.RedisURL); err == nil {
			broker = rb
		} else {
			log.WithError(err).Warn("redis unavailable, using in-memory event broker")
		}
	}

	relay := webhooks.NewRelayer(cfg.RelayURL, cfg.RelaySecret, cfg.RelayTimeout)
	return &Server{
		Orders:       orders.NewService(cfg.ProviderBaseURL, cfg.ProviderTimeout, log),
		Webhooks:     webhooks.NewProcessor(cfg.ProviderWebhookSecret, relay, broker, log),
		Auth:         auth.NewVerifier(cfg.APIKey),
		Broker:       broker,
		Log:          log,
		Now:          time.Now,
		capabilities: caps,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}, nil
}

// Routes returns the full handler tree with logging, metrics and request ids.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("/health", s.instrument("health", s.HealthHandler))
	mux.HandleFunc("/capabilities", s.instrument("capabilities", s.CapabilitiesHandler))
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/debug/config", s.instrument("debug", s.requireAPIKey(s.DebugHandler)))

	// Orders (API key)
	mux.HandleFunc("/orders", s.instrument("orders", s.requireAPIKey(s.OrdersHandler)))
	mux.HandleFunc("/orders/", s.instrument("order_by_id", s.requireAPIKey(s.OrderByIDHandler))) // includes /cancel, /events, /events/ws

	// Provider webhooks (signature)
	mux.HandleFunc("/webhooks/doordash", s.instrument("webhook_doordash", s.DoorDashWebhookHandler))

	return s.withRequestID(s.logMiddleware(mux))
}
