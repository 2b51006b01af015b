package webhooks

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"doordash-adapter/internal/model"
)

// Provider event types with a dedicated normalized shape.
const (
	EventStatusUpdate   = "delivery.status.update"
	EventDriverAssigned = "delivery.driver.assigned"
	EventCancelled      = "delivery.cancelled"
)

// Normalized payloads. Fields stay raw JSON so the provider's values, including
// null for anything it omitted, reach the POS backend unchanged.

type StatusPayload struct {
	OrderID               json.RawMessage `json:"order_id"`
	Status                json.RawMessage `json:"status"`
	EstimatedDeliveryTime json.RawMessage `json:"estimated_delivery_time"`
}

type DriverPayload struct {
	OrderID json.RawMessage `json:"order_id"`
	Driver  Driver          `json:"driver"`
}

type Driver struct {
	Name    json.RawMessage `json:"name"`
	Phone   json.RawMessage `json:"phone"`
	Vehicle json.RawMessage `json:"vehicle"`
}

type CancelledPayload struct {
	OrderID            json.RawMessage `json:"order_id"`
	CancellationReason json.RawMessage `json:"cancellation_reason"`
}

var emptyObject = json.RawMessage(`{}`)

// eventLabel bounds the event_type metric label to the known types.
func eventLabel(eventType string) string {
	switch eventType {
	case EventStatusUpdate, EventDriverAssigned, EventCancelled:
		return eventType
	}
	return "other"
}

// Normalize maps a provider event's data onto the POS shape for its type.
// Unknown types get the raw data back unchanged.
func Normalize(evt model.WebhookEvent) (any, error) {
	data := evt.Data
	if len(bytes.TrimSpace(data)) == 0 {
		data = emptyObject
	}

	switch evt.EventType {
	case EventStatusUpdate, EventDriverAssigned, EventCancelled:
	default:
		return data, nil
	}

	var f map[string]json.RawMessage
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "%s: data is not an object", evt.EventType)
	}
	if f == nil {
		return nil, errors.Errorf("%s: data is null", evt.EventType)
	}

	switch evt.EventType {
	case EventStatusUpdate:
		return StatusPayload{
			OrderID:               f["external_delivery_id"],
			Status:                f["delivery_status"],
			EstimatedDeliveryTime: f["dropoff_time_estimated"],
		}, nil
	case EventDriverAssigned:
		return DriverPayload{
			OrderID: f["external_delivery_id"],
			Driver: Driver{
				Name:    f["dasher_name"],
				Phone:   f["dasher_phone"],
				Vehicle: f["dasher_vehicle_make"],
			},
		}, nil
	default:
		return CancelledPayload{
			OrderID:            f["external_delivery_id"],
			CancellationReason: f["cancellation_reason"],
		}, nil
	}
}

// OrderID extracts the delivery id a normalized payload refers to, if it is a string.
func OrderID(payload any) string {
	var raw json.RawMessage
	switch p := payload.(type) {
	case StatusPayload:
		raw = p.OrderID
	case DriverPayload:
		raw = p.OrderID
	case CancelledPayload:
		raw = p.OrderID
	case json.RawMessage:
		var f struct {
			ID json.RawMessage `json:"external_delivery_id"`
		}
		if json.Unmarshal(p, &f) != nil {
			return ""
		}
		raw = f.ID
	}
	var id string
	if json.Unmarshal(raw, &id) != nil {
		return ""
	}
	return id
}
