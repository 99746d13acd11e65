// Package app wires the services and registers the in-process event handlers.
package app

import (
	"context"

	"github.com/amirasaad/bankcore/pkg/domain/events"
	"github.com/amirasaad/bankcore/pkg/eventbus"
)

// setupEventBus registers an audit handler for every domain event when the
// bus dispatches in-process. Brokers hand events to external consumers.
func (a *App) setupEventBus() {
	sub, ok := a.Deps.EventBus.(eventbus.Subscriber)
	if !ok || a.Deps.Logger == nil {
		return
	}
	logger := a.Deps.Logger.With("handler", "audit")
	audit := func(_ context.Context, e eventbus.Event) error {
		logger.Info("domain event", "type", e.Type(), "event", e)
		return nil
	}
	for _, t := range events.Types() {
		sub.Register(t, audit)
	}
}
