package model

import (
	"encoding/json"
	"time"
)

// Request-scoped value types shared by the order adapter and the webhook normalizer.
// Nothing here is persisted.

type OrderRequest struct {
	OrderID             string          `json:"order_id"`
	PickupAddress       string          `json:"pickup_address"`
	RestaurantName      string          `json:"restaurant_name"`
	RestaurantPhone     string          `json:"restaurant_phone"`
	DeliveryAddress     DeliveryAddress `json:"delivery_address"`
	Customer            Customer        `json:"customer"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
	TotalAmount         json.Number     `json:"total_amount"`
	Items               []LineItem      `json:"items"`
}

type DeliveryAddress struct {
	Street string `json:"street"`
}

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type LineItem struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Quantity    int         `json:"quantity"`
	Price       json.Number `json:"price"`
}

// ProviderCredentials arrive with every call as provider_config and are never stored.
type ProviderCredentials struct {
	DeveloperID   string `json:"developer_id"`
	KeyID         string `json:"key_id"`
	SigningSecret string `json:"signing_secret"`
}

// DeliveryResult is the normalized view of a provider delivery.
type DeliveryResult struct {
	ExternalOrderID       string
	Status                string
	EstimatedPickupTime   *string
	EstimatedDeliveryTime *string
	TrackingURL           *string
	Driver                *DriverInfo
}

type DriverInfo struct {
	Name     string          `json:"name"`
	Phone    *string         `json:"phone"`
	Location json.RawMessage `json:"location,omitempty"`
}

// StatusAck acknowledges a status change accepted by the provider.
type StatusAck struct {
	OrderID string
	Status  string
	At      time.Time
}

// WebhookEvent is the provider's inbound envelope. EventID and Data are kept raw
// so unknown shapes pass through untouched.
type WebhookEvent struct {
	EventType string          `json:"event_type"`
	EventID   json.RawMessage `json:"event_id"`
	Data      json.RawMessage `json:"data"`
}

// NormalizedEvent is what the POS backend receives.
type NormalizedEvent struct {
	Provider  string          `json:"provider"`
	EventType string          `json:"event_type"`
	EventID   json.RawMessage `json:"event_id"`
	Payload   any             `json:"payload"`
	Timestamp string          `json:"timestamp"`
}

// TimestampLayout renders UTC instants with microseconds and a Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

func Timestamp(t time.Time) string { return t.UTC().Format(TimestampLayout) }
