package webhooks

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"doordash-adapter/internal/metrics"
	"doordash-adapter/internal/model"
)

// Relayer forwards normalized events to the POS backend. One attempt per
// event; a failed delivery is reported to the caller and not retried.
type Relayer struct {
	URL    string
	Secret string
	HTTP   *http.Client
}

func NewRelayer(url, secret string, timeout time.Duration) *Relayer {
	return &Relayer{URL: url, Secret: secret, HTTP: &http.Client{Timeout: timeout}}
}

// Forward posts evt and returns an error for transport failures and non-2xx answers.
func (r *Relayer) Forward(ctx context.Context, evt model.NormalizedEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return errors.Wrap(err, "encode relay body")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build relay request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Type", evt.EventType)
	if r.Secret != "" {
		req.Header.Set("X-Webhook-Secret", r.Secret)
		req.Header.Set("X-Signature", SignHMAC(r.Secret, body))
	}

	start := time.Now()
	resp, err := r.HTTP.Do(req)
	latency := float64(time.Since(start).Milliseconds())
	status := "failed"
	label := eventLabel(evt.EventType)
	defer func() {
		metrics.RelayDeliveries.WithLabelValues(label, status).Inc()
		metrics.RelayLatency.WithLabelValues(label, status).Observe(latency)
	}()
	if err != nil {
		return errors.Wrap(err, "relay")
	}
	_ = resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("relay: downstream responded %d", resp.StatusCode)
	}
	status = "delivered"
	return nil
}
