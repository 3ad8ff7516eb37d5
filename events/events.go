package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeSettingsUpdated  EventType = "settings_updated"
	EventTypeRequestSubmitted EventType = "request_submitted"
	EventTypeRequestResolved  EventType = "request_resolved"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// SettingsUpdatedEvent represents a change to a guild's configuration
type SettingsUpdatedEvent struct {
	GuildID int64
	Field   string
	ActorID int64
}

func (e SettingsUpdatedEvent) Type() EventType {
	return EventTypeSettingsUpdated
}

// RequestSubmittedEvent represents a new game update request
type RequestSubmittedEvent struct {
	RequestID   string
	GuildID     int64
	RequesterID int64
	GameName    string
}

func (e RequestSubmittedEvent) Type() EventType {
	return EventTypeRequestSubmitted
}

// RequestResolvedEvent represents a request marked as updated
type RequestResolvedEvent struct {
	RequestID  string
	GuildID    int64
	ResolverID int64
}

func (e RequestResolvedEvent) Type() EventType {
	return EventTypeRequestResolved
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the emitter
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus holds pending events coupled to a unit of work and flushes
// them to the underlying bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events; called after a successful DB commit.
// Events are emitted on a background context since they outlive the
// transaction's context.
func (b *TransactionalBus) Flush(ctx context.Context) {
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard drops pending events; called after a rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
