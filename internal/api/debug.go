package api

import (
	"net/http"

	"doordash-adapter/internal/buildinfo"
	"doordash-adapter/internal/events"
	"doordash-adapter/internal/model"
)

// DebugHandler reports build info and the effective wiring. Secrets are
// reported only as present or absent.
func (s *Server) DebugHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	_, redis := s.Broker.(*events.RedisBroker)
	writeJSON(w, http.StatusOK, map[string]any{
		"build": buildinfo.Info(),
		"time":  model.Timestamp(s.Now()),
		"config": map[string]any{
			"SSP_WEBHOOK_URL":             s.Webhooks.Relay.URL,
			"DOORDASH_API_URL":            s.Orders.BaseURL,
			"PROVIDER_TIMEOUT":            s.Orders.HTTP.Timeout.String(),
			"RELAY_TIMEOUT":               s.Webhooks.Relay.HTTP.Timeout.String(),
			"HAS_SSP_API_KEY":             s.Auth.Configured(),
			"HAS_SSP_WEBHOOK_SECRET":      s.Webhooks.Relay.Secret != "",
			"HAS_DOORDASH_WEBHOOK_SECRET": s.Webhooks.Secret != "",
			"REDIS_BROKER":                redis,
		},
	})
}
