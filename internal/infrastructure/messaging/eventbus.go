// Package messaging implements the in-process event bus the engine publishes
// domain events through. Single-learner deployments run one process, so a
// synchronous in-memory bus is the only implementation; the embedding app
// subscribes to drive notifications and UI refreshes.
package messaging

import (
	"errors"
	"sync"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
	"github.com/hafalan-hub/hafalan-engine/pkg/logger"
)

// ErrEventBusClosed is returned when publishing or subscribing on a closed bus.
var ErrEventBusClosed = errors.New("messaging: event bus is closed")

// EventHandler processes one domain event. Handlers must not mutate the
// journal; they observe outcomes, they do not produce them.
type EventHandler func(event shared.Event) error

// EventBus is a synchronous in-memory event bus. Safe for concurrent use.
type EventBus struct {
	mu          sync.RWMutex
	handlers    map[shared.EventType][]EventHandler
	allHandlers []EventHandler
	log         *logger.Logger
	closed      bool
}

// NewEventBus creates an event bus.
func NewEventBus(log *logger.Logger) *EventBus {
	return &EventBus{
		handlers: make(map[shared.EventType][]EventHandler),
		log:      log.With(logger.Component("eventbus")),
	}
}

// Subscribe registers a handler for a specific event type.
func (b *EventBus) Subscribe(eventType shared.EventType, handler EventHandler) error {
	if handler == nil {
		return errors.New("messaging: handler cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrEventBusClosed
	}
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	return nil
}

// SubscribeAll registers a handler for every event.
func (b *EventBus) SubscribeAll(handler EventHandler) error {
	if handler == nil {
		return errors.New("messaging: handler cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrEventBusClosed
	}
	b.allHandlers = append(b.allHandlers, handler)
	return nil
}

// Publish delivers an event to all subscribed handlers synchronously.
// Handler errors are logged and never propagate back to the command that
// produced the event.
func (b *EventBus) Publish(event shared.Event) error {
	if event == nil {
		return errors.New("messaging: event cannot be nil")
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrEventBusClosed
	}
	handlers := make([]EventHandler, 0, len(b.handlers[event.EventType()])+len(b.allHandlers))
	handlers = append(handlers, b.handlers[event.EventType()]...)
	handlers = append(handlers, b.allHandlers...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(event); err != nil {
			b.log.Error("event handler failed",
				logger.String("event_type", string(event.EventType())),
				logger.String("aggregate_id", event.AggregateID()),
				logger.Err(err),
			)
		}
	}
	return nil
}

// Close stops the bus; further publishes and subscribes fail.
func (b *EventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// NopPublisher discards all events. Used in tests and when the embedding app
// does not care about events.
type NopPublisher struct{}

// Publish implements shared.EventPublisher.
func (NopPublisher) Publish(shared.Event) error { return nil }
