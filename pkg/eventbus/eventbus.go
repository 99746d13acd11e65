// Package eventbus defines how domain events leave the ledger core once the
// database transaction that produced them has committed.
package eventbus

import "context"

// Event is anything with a routing type.
type Event interface {
	Type() string
}

// HandlerFunc processes a delivered event.
type HandlerFunc func(ctx context.Context, e Event) error

// Bus publishes events.
type Bus interface {
	Emit(ctx context.Context, e Event) error
}

// Subscriber is implemented by buses that also deliver events in-process.
type Subscriber interface {
	Register(eventType string, handler HandlerFunc)
}
