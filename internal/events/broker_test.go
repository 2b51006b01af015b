package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doordash-adapter/internal/model"
)

func sample() model.NormalizedEvent {
	return model.NormalizedEvent{
		Provider:  "doordash",
		EventType: "delivery.cancelled",
		EventID:   json.RawMessage(`"evt-1"`),
		Payload:   map[string]any{"order_id": "ord-1"},
		Timestamp: "2024-01-01T00:00:00.000000Z",
	}
}

func TestMemoryBrokerPublishSubscribe(t *testing.T) {
	b := NewMemoryBroker()
	ch := b.Subscribe("ord-1")
	other := b.Subscribe("ord-2")

	b.Publish("ord-1", sample())

	select {
	case got := <-ch:
		assert.Equal(t, "delivery.cancelled", got.EventType)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for event")
	}
	select {
	case <-other:
		t.Fatal("event leaked to another order")
	default:
	}

	b.Unsubscribe("ord-1", ch)
	_, ok := <-ch
	assert.False(t, ok, "channel should be closed after unsubscribe")
	// second unsubscribe is a no-op
	b.Unsubscribe("ord-1", ch)
}

func TestMemoryBrokerDropsWhenFull(t *testing.T) {
	b := NewMemoryBroker()
	ch := b.Subscribe("ord-1")
	for i := 0; i < 20; i++ {
		b.Publish("ord-1", sample())
	}
	assert.Equal(t, cap(ch), len(ch))
}

func TestRedisBrokerPublishSubscribe(t *testing.T) {
	mr := miniredis.RunT(t)
	b, err := NewRedisBroker("redis://" + mr.Addr())
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	ch := b.Subscribe("ord-1")
	b.Publish("ord-1", sample())

	select {
	case got := <-ch:
		assert.Equal(t, "delivery.cancelled", got.EventType)
		assert.JSONEq(t, `"evt-1"`, string(got.EventID))
		assert.Equal(t, map[string]any{"order_id": "ord-1"}, got.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for redis event")
	}

	b.Unsubscribe("ord-1", ch)
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after unsubscribe")
	}
}

func TestNewRedisBrokerBadURL(t *testing.T) {
	_, err := NewRedisBroker("not a url")
	assert.Error(t, err)
}
