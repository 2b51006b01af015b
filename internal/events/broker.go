// Package events fans normalized webhook events out to live subscribers,
// keyed by order id. There is no history: a subscriber sees only events
// published while it is attached.
package events

import (
	"sync"

	"doordash-adapter/internal/model"
)

type Broker interface {
	Subscribe(orderID string) chan model.NormalizedEvent
	Unsubscribe(orderID string, ch chan model.NormalizedEvent)
	Publish(orderID string, evt model.NormalizedEvent)
	Close() error
}

// MemoryBroker is a process-local Broker. Slow subscribers drop events
// rather than block the publisher.
type MemoryBroker struct {
	mu   sync.Mutex
	subs map[string]map[chan model.NormalizedEvent]struct{} // orderId -> set of channels
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: map[string]map[chan model.NormalizedEvent]struct{}{}}
}

func (b *MemoryBroker) Subscribe(orderID string) chan model.NormalizedEvent {
	ch := make(chan model.NormalizedEvent, 8)
	b.mu.Lock()
	if b.subs[orderID] == nil {
		b.subs[orderID] = map[chan model.NormalizedEvent]struct{}{}
	}
	b.subs[orderID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *MemoryBroker) Unsubscribe(orderID string, ch chan model.NormalizedEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := b.subs[orderID]
	if _, ok := m[ch]; !ok {
		return
	}
	delete(m, ch)
	if len(m) == 0 {
		delete(b.subs, orderID)
	}
	close(ch)
}

func (b *MemoryBroker) Publish(orderID string, evt model.NormalizedEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs[orderID] {
		select {
		case ch <- evt:
		default:
		}
	}
}

func (b *MemoryBroker) Close() error { return nil }
