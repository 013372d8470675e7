package events

import (
	"context"
	"sync"
)

// Handler consumes a published event. A handler's error is logged by the
// caller at most; it never propagates to the operation that produced the
// event.
type Handler func(context.Context, Event) error

// Dispatcher fans events out to subscribed handlers.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler Handler)
}

// AllTypes returns every event type the tracker emits.
func AllTypes() []EventType {
	return []EventType{
		EventTicketCreated,
		EventTicketUpdated,
		EventTicketDeleted,
		EventProjectCreated,
		EventUserRegistered,
	}
}

// SubscribeAll registers the handler for every event type, for consumers
// like the notifier and the audit archiver that want the whole stream.
func SubscribeAll(d Dispatcher, handler Handler) {
	for _, eventType := range AllTypes() {
		d.Subscribe(eventType, handler)
	}
}

// memoryBus dispatches synchronously on the publisher's goroutine.
// Subscriptions are expected to happen during wiring, before traffic.
type memoryBus struct {
	mu        sync.RWMutex
	listeners map[EventType][]Handler
}

// NewDispatcher creates the in-process event bus.
func NewDispatcher() Dispatcher {
	return &memoryBus{listeners: make(map[EventType][]Handler)}
}

// Publish invokes handlers in subscription order. A failing handler never
// fails the publish.
func (b *memoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler{}, b.listeners[event.Type]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		_ = handler(ctx, event)
	}
	return nil
}

func (b *memoryBus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventType] = append(b.listeners[eventType], handler)
}
