package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"doordash-adapter/internal/buildinfo"
	"doordash-adapter/internal/model"
	"doordash-adapter/internal/orders"
	"doordash-adapter/internal/webhooks"
)

const maxBodyBytes = 1 << 20

// HealthHandler handles GET /health
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"version":   buildinfo.Version,
		"timestamp": model.Timestamp(s.Now()),
	})
}

// CapabilitiesHandler handles GET /capabilities
func (s *Server) CapabilitiesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.capabilities)
}

type createOrderRequest struct {
	model.OrderRequest
	ProviderConfig model.ProviderCredentials `json:"provider_config"`
}

type createOrderResponse struct {
	Success               bool              `json:"success"`
	ExternalOrderID       string            `json:"external_order_id"`
	Status                string            `json:"status"`
	EstimatedPickupTime   *string           `json:"estimated_pickup_time"`
	EstimatedDeliveryTime *string           `json:"estimated_delivery_time"`
	TrackingURL           *string           `json:"tracking_url"`
	DriverInfo            *model.DriverInfo `json:"driver_info"`
}

// OrdersHandler handles POST /orders
func (s *Server) OrdersHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/orders" {
		writeError(w, http.StatusNotFound, "", "not found")
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req createOrderRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, orders.CodeOrderCreationFailed, err.Error())
		return
	}
	res, err := s.Orders.CreateOrder(r.Context(), req.OrderRequest, req.ProviderConfig)
	if err != nil {
		writeOrderError(w, err, orders.CodeOrderCreationFailed)
		return
	}
	writeJSON(w, http.StatusOK, createOrderResponse{
		Success:               true,
		ExternalOrderID:       res.ExternalOrderID,
		Status:                res.Status,
		EstimatedPickupTime:   res.EstimatedPickupTime,
		EstimatedDeliveryTime: res.EstimatedDeliveryTime,
		TrackingURL:           res.TrackingURL,
		DriverInfo:            res.Driver,
	})
}

// OrderByIDHandler handles PUT/GET /orders/{id}, POST /orders/{id}/cancel and
// GET /orders/{id}/events[/ws]
func (s *Server) OrderByIDHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	rest := strings.TrimPrefix(path, "/orders/")
	parts := strings.Split(rest, "/")
	id := parts[0]
	if id == "" {
		writeError(w, http.StatusNotFound, "", "missing order id")
		return
	}
	switch {
	case len(parts) == 1:
		switch r.Method {
		case http.MethodPut:
			s.updateOrderStatus(w, r, id)
		case http.MethodGet:
			s.getOrder(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case len(parts) == 2 && parts[1] == "cancel":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		s.cancelOrder(w, r, id)
	case len(parts) == 2 && parts[1] == "events":
		s.streamOrderEvents(w, r, id)
	case len(parts) == 3 && parts[1] == "events" && parts[2] == "ws":
		s.orderEventsWS(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "", "not found")
	}
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Status         string                    `json:"status"`
		ProviderConfig model.ProviderCredentials `json:"provider_config"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, orders.CodeStatusUpdateFailed, err.Error())
		return
	}
	ack, err := s.Orders.UpdateStatus(r.Context(), id, req.Status, req.ProviderConfig)
	if err != nil {
		writeOrderError(w, err, orders.CodeStatusUpdateFailed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"order_id":   ack.OrderID,
		"status":     ack.Status,
		"updated_at": model.Timestamp(ack.At),
	})
}

type orderDriver struct {
	Name     string          `json:"name"`
	Phone    *string         `json:"phone"`
	Location json.RawMessage `json:"location"`
}

type getOrderResponse struct {
	Success               bool         `json:"success"`
	OrderID               string       `json:"order_id"`
	Status                string       `json:"status"`
	TrackingURL           *string      `json:"tracking_url"`
	EstimatedDeliveryTime *string      `json:"estimated_delivery_time"`
	Driver                *orderDriver `json:"driver"`
}

// getOrder takes provider credentials from the query string.
func (s *Server) getOrder(w http.ResponseWriter, r *http.Request, id string) {
	q := r.URL.Query()
	creds := model.ProviderCredentials{
		DeveloperID:   q.Get("developer_id"),
		KeyID:         q.Get("key_id"),
		SigningSecret: q.Get("signing_secret"),
	}
	res, err := s.Orders.GetOrder(r.Context(), id, creds)
	if err != nil {
		writeOrderError(w, err, orders.CodeOrderFetchFailed)
		return
	}
	out := getOrderResponse{
		Success:               true,
		OrderID:               res.ExternalOrderID,
		Status:                res.Status,
		TrackingURL:           res.TrackingURL,
		EstimatedDeliveryTime: res.EstimatedDeliveryTime,
	}
	if d := res.Driver; d != nil {
		out.Driver = &orderDriver{Name: d.Name, Phone: d.Phone, Location: d.Location}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Reason         string                    `json:"reason"`
		ProviderConfig model.ProviderCredentials `json:"provider_config"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, orders.CodeCancellationFailed, err.Error())
		return
	}
	ack, err := s.Orders.CancelOrder(r.Context(), id, req.Reason, req.ProviderConfig)
	if err != nil {
		writeOrderError(w, err, orders.CodeCancellationFailed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"order_id":     ack.OrderID,
		"status":       ack.Status,
		"cancelled_at": model.Timestamp(ack.At),
	})
}

// DoorDashWebhookHandler handles POST /webhooks/doordash. The response depends
// only on verification; the relay that follows cannot change it.
func (s *Server) DoorDashWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.Log.WithError(err).Error("webhook processing failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	evt, err := s.Webhooks.Accept(body, r.Header.Get("X-DoorDash-Signature"))
	switch {
	case errors.Is(err, webhooks.ErrInvalidSignature):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid signature"})
		return
	case err != nil:
		s.Log.WithError(err).Error("webhook processing failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	s.Webhooks.Forward(r.Context(), evt)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	return nil
}

// writeOrderError answers 400 with the failed operation's code.
func writeOrderError(w http.ResponseWriter, err error, fallback orders.Code) {
	code := fallback
	var oe *orders.Error
	if errors.As(err, &oe) {
		code = oe.Code
	}
	writeError(w, http.StatusBadRequest, code, err.Error())
}
