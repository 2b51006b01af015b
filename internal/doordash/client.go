// Package doordash is a thin client for the DoorDash Drive API. A Client is
// built per request from caller-supplied credentials and then discarded.
package doordash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"doordash-adapter/internal/metrics"
	"doordash-adapter/internal/model"
)

const deliveriesPath = "/drive/v2/deliveries"

// Delivery is the subset of the provider's delivery object the adapter reads.
type Delivery struct {
	ExternalDeliveryID   string          `json:"external_delivery_id"`
	DeliveryStatus       string          `json:"delivery_status"`
	PickupTimeEstimated  *string         `json:"pickup_time_estimated"`
	DropoffTimeEstimated *string         `json:"dropoff_time_estimated"`
	TrackingURL          *string         `json:"tracking_url"`
	DasherName           *string         `json:"dasher_name"`
	DasherPhone          *string         `json:"dasher_phone"`
	DasherLocation       json.RawMessage `json:"dasher_location"`
}

// HasDasher reports whether the provider named an assigned driver.
func (d Delivery) HasDasher() bool { return d.DasherName != nil && *d.DasherName != "" }

// StatusError is returned for any non-2xx provider response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("provider responded %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("provider responded %d %s: %s", e.Code, http.StatusText(e.Code), e.Body)
}

type Client struct {
	BaseURL   string
	Creds     model.ProviderCredentials
	HTTP      *http.Client
	RequestID string
}

// NewClient binds credentials to a base URL. httpc carries the call timeout.
func NewClient(baseURL string, creds model.ProviderCredentials, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{BaseURL: baseURL, Creds: creds, HTTP: httpc}
}

func (c *Client) CreateDelivery(ctx context.Context, p DeliveryPayload) (Delivery, error) {
	var out Delivery
	err := c.do(ctx, "create", http.MethodPost, deliveriesPath, p, &out)
	return out, err
}

func (c *Client) UpdateDeliveryStatus(ctx context.Context, deliveryID, status string) (Delivery, error) {
	var out Delivery
	body := map[string]string{"status": status}
	err := c.do(ctx, "update", http.MethodPut, deliveryPath(deliveryID), body, &out)
	return out, err
}

func (c *Client) GetDelivery(ctx context.Context, deliveryID string) (Delivery, error) {
	var out Delivery
	err := c.do(ctx, "get", http.MethodGet, deliveryPath(deliveryID), nil, &out)
	return out, err
}

func deliveryPath(id string) string { return deliveriesPath + "/" + url.PathEscape(id) }

func (c *Client) do(ctx context.Context, op, method, endpoint string, in, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.ProviderCalls.WithLabelValues(op, outcome).Inc()
		metrics.ProviderLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, body)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Authorization", "Bearer "+c.Creds.KeyID)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.RequestID != "" {
		req.Header.Set("X-Request-Id", c.RequestID)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, endpoint)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(truncate(raw, 512)))}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
