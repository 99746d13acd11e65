package config

import (
	"log/slog"

	"github.com/amirasaad/bankcore/pkg/eventbus"
	"github.com/amirasaad/bankcore/pkg/lock"
	"github.com/amirasaad/bankcore/pkg/metrics"
	"github.com/amirasaad/bankcore/pkg/reference"
	"github.com/amirasaad/bankcore/pkg/repository"
)

// Deps holds all infrastructure dependencies for building the app and services.
type Deps struct {
	Uow        repository.UnitOfWork
	Locker     lock.Locker
	EventBus   eventbus.Bus
	Metrics    *metrics.Metrics
	References reference.Generator
	Logger     *slog.Logger
	Config     *App
}
