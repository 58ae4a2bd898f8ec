package store

import (
	"sync"

	"alfajr-backend/models"

	"go.uber.org/zap"
)

// EventType enumerates the closed set of store notifications.
type EventType string

const (
	EventCustomerSaved   EventType = "customer_saved"
	EventCustomerDeleted EventType = "customer_deleted"
	EventDataCleared     EventType = "data_cleared"
	EventError           EventType = "error"
)

// Event is the payload delivered to subscribers. Which fields are set
// depends on Type: Customer for saves, CustomerID and Soft for deletes,
// Err for errors.
type Event struct {
	Type       EventType
	Customer   *models.Customer
	CustomerID string
	Soft       bool
	Err        error
}

// EventBus is a small in-process publish/subscribe mechanism. Delivery is
// synchronous and in subscription order; a panicking subscriber is
// recovered and logged, never propagated to the emitter.
type EventBus struct {
	mu   sync.RWMutex
	subs map[EventType][]func(Event)
	log  *zap.Logger
}

func NewEventBus(log *zap.Logger) *EventBus {
	return &EventBus{
		subs: make(map[EventType][]func(Event)),
		log:  log,
	}
}

func (b *EventBus) Subscribe(t EventType, fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[t] = append(b.subs[t], fn)
}

func (b *EventBus) Publish(e Event) {
	b.mu.RLock()
	subs := b.subs[e.Type]
	b.mu.RUnlock()

	for _, fn := range subs {
		b.deliver(fn, e)
	}
}

func (b *EventBus) deliver(fn func(Event), e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event subscriber panicked",
				zap.String("event", string(e.Type)),
				zap.Any("panic", r))
		}
	}()
	fn(e)
}
