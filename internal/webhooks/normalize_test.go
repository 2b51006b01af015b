package webhooks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doordash-adapter/internal/model"
)

func normalizeJSON(t *testing.T, eventType, data string) map[string]any {
	t.Helper()
	evt := model.WebhookEvent{EventType: eventType}
	if data != "" {
		evt.Data = json.RawMessage(data)
	}
	p, err := Normalize(evt)
	require.NoError(t, err)
	b, err := json.Marshal(p)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestNormalizeStatusUpdate(t *testing.T) {
	out := normalizeJSON(t, EventStatusUpdate, `{"external_delivery_id":"ord-1","delivery_status":"picked_up","dropoff_time_estimated":"2024-01-01T12:00:00Z","extra":1}`)
	assert.Equal(t, map[string]any{
		"order_id":                "ord-1",
		"status":                  "picked_up",
		"estimated_delivery_time": "2024-01-01T12:00:00Z",
	}, out)
}

func TestNormalizeDriverAssignedOnlyOrderAndDriver(t *testing.T) {
	out := normalizeJSON(t, EventDriverAssigned, `{"external_delivery_id":"ord-1","dasher_name":"Jane","dasher_phone":"+1555","dasher_vehicle_make":"Honda","dasher_location":{"lat":1}}`)
	assert.Len(t, out, 2)
	assert.Equal(t, "ord-1", out["order_id"])
	assert.Equal(t, map[string]any{"name": "Jane", "phone": "+1555", "vehicle": "Honda"}, out["driver"])
}

func TestNormalizeCancelled(t *testing.T) {
	out := normalizeJSON(t, EventCancelled, `{"external_delivery_id":"ord-1","cancellation_reason":"store closed"}`)
	assert.Equal(t, map[string]any{"order_id": "ord-1", "cancellation_reason": "store closed"}, out)
}

func TestNormalizeMissingFieldsAreNull(t *testing.T) {
	out := normalizeJSON(t, EventCancelled, `{}`)
	assert.Equal(t, map[string]any{"order_id": nil, "cancellation_reason": nil}, out)

	out = normalizeJSON(t, EventStatusUpdate, "")
	assert.Equal(t, map[string]any{"order_id": nil, "status": nil, "estimated_delivery_time": nil}, out)
}

func TestNormalizeUnknownPassesThrough(t *testing.T) {
	raw := `{"external_delivery_id":"ord-1","whatever":[1,2,3]}`
	p, err := Normalize(model.WebhookEvent{EventType: "delivery.returned", Data: json.RawMessage(raw)})
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(p.(json.RawMessage)))

	p, err = Normalize(model.WebhookEvent{EventType: "delivery.returned"})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(p.(json.RawMessage)))
}

func TestNormalizeRejectsNonObjectData(t *testing.T) {
	_, err := Normalize(model.WebhookEvent{EventType: EventStatusUpdate, Data: json.RawMessage(`[1]`)})
	assert.Error(t, err)
}

func TestOrderID(t *testing.T) {
	p, _ := Normalize(model.WebhookEvent{EventType: EventCancelled, Data: json.RawMessage(`{"external_delivery_id":"ord-9"}`)})
	assert.Equal(t, "ord-9", OrderID(p))

	p, _ = Normalize(model.WebhookEvent{EventType: "x", Data: json.RawMessage(`{"external_delivery_id":"ord-8"}`)})
	assert.Equal(t, "ord-8", OrderID(p))

	p, _ = Normalize(model.WebhookEvent{EventType: EventCancelled, Data: json.RawMessage(`{"external_delivery_id":7}`)})
	assert.Equal(t, "", OrderID(p))
}

func TestNormalizeRejectsNullDataForKnownTypes(t *testing.T) {
	for _, typ := range []string{EventStatusUpdate, EventDriverAssigned, EventCancelled} {
		_, err := Normalize(model.WebhookEvent{EventType: typ, Data: json.RawMessage(`null`)})
		assert.Error(t, err, typ)
	}

	p, err := Normalize(model.WebhookEvent{EventType: "delivery.returned", Data: json.RawMessage(`null`)})
	require.NoError(t, err)
	assert.Equal(t, "null", string(p.(json.RawMessage)))
}

func TestEventLabel(t *testing.T) {
	assert.Equal(t, EventStatusUpdate, eventLabel(EventStatusUpdate))
	assert.Equal(t, EventDriverAssigned, eventLabel(EventDriverAssigned))
	assert.Equal(t, EventCancelled, eventLabel(EventCancelled))
	assert.Equal(t, "other", eventLabel("delivery.returned"))
	assert.Equal(t, "other", eventLabel(""))
}
