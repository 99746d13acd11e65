package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amirasaad/bankcore/pkg/eventbus"
)

// MemoryEventBus dispatches events synchronously to in-process handlers and
// records every published event.
type MemoryEventBus struct {
	handlers  map[string][]eventbus.HandlerFunc
	mu        sync.RWMutex
	logger    *slog.Logger
	published []eventbus.Event
}

// NewWithMemory creates a new in-memory event bus.
func NewWithMemory(logger *slog.Logger) *MemoryEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryEventBus{
		handlers:  make(map[string][]eventbus.HandlerFunc),
		logger:    logger.With("bus", "memory"),
		published: make([]eventbus.Event, 0),
	}
}

// Register registers a handler for a specific event type.
func (b *MemoryEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit dispatches the event to all registered handlers for its type.
// Handler errors are logged.
func (b *MemoryEventBus) Emit(ctx context.Context, event eventbus.Event) error {
	b.mu.Lock()
	b.published = append(b.published, event)
	handlers := append([]eventbus.HandlerFunc{}, b.handlers[event.Type()]...)
	b.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("failed to process event", "type", event.Type(), "error", err)
		}
	}
	return nil
}

// ClearPublished clears the list of published events.
func (b *MemoryEventBus) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = make([]eventbus.Event, 0)
}

// Published returns a copy of the published events.
func (b *MemoryEventBus) Published() []eventbus.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]eventbus.Event(nil), b.published...)
}

// PublishedTypes returns the types of the published events in order.
func (b *MemoryEventBus) PublishedTypes() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	types := make([]string, len(b.published))
	for i, e := range b.published {
		types[i] = e.Type()
	}
	return types
}

var (
	_ eventbus.Bus        = (*MemoryEventBus)(nil)
	_ eventbus.Subscriber = (*MemoryEventBus)(nil)
)
