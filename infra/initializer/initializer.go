// Package initializer builds the process dependencies from configuration.
package initializer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	infraeventbus "github.com/amirasaad/bankcore/infra/eventbus"
	infralock "github.com/amirasaad/bankcore/infra/lock"
	infrarepository "github.com/amirasaad/bankcore/infra/repository"
	"github.com/amirasaad/bankcore/infra/repository/memory"
	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/amirasaad/bankcore/pkg/eventbus"
	"github.com/amirasaad/bankcore/pkg/lock"
	"github.com/amirasaad/bankcore/pkg/metrics"
	"github.com/amirasaad/bankcore/pkg/reference"
	"github.com/amirasaad/bankcore/pkg/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const eventConsumerGroup = "bankcore"

// InitializeDependencies builds the logger, storage, lock, event bus and
// metrics selected by cfg. The returned cleanup closes the opened clients.
func InitializeDependencies(cfg *config.App) (deps config.Deps, cleanup func(), err error) {
	logger := setupLogger(cfg.Log, os.Stdout)
	deps = config.Deps{
		Logger:     logger,
		Config:     cfg,
		Metrics:    metrics.New(prometheus.DefaultRegisterer),
		References: reference.New(),
	}
	var closers []func() error
	cleanup = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("cleanup failed", "error", err)
			}
		}
	}
	defer func() {
		if err != nil {
			cleanup()
		}
	}()

	if deps.Uow, err = newUnitOfWork(cfg, logger); err != nil {
		return deps, cleanup, err
	}

	var client *redis.Client
	needRedis := lockDriver(cfg) == "redis" || busDriver(cfg) == "redis"
	if needRedis {
		if client, err = newRedisClient(cfg.Redis); err != nil {
			logger.Error("Failed to initialize redis", "error", err)
			return deps, cleanup, err
		}
		closers = append(closers, client.Close)
	}

	deps.Locker = newLocker(cfg, client, logger)

	bus, closeBus, err := newEventBus(cfg, client, logger)
	if err != nil {
		logger.Error("Failed to initialize event bus", "error", err)
		return deps, cleanup, err
	}
	if closeBus != nil {
		closers = append(closers, closeBus)
	}
	deps.EventBus = bus

	logger.Info("Dependencies initialized",
		"database", dbDriver(cfg),
		"lock", lockDriver(cfg),
		"eventbus", busDriver(cfg),
	)
	return deps, cleanup, nil
}

func newUnitOfWork(cfg *config.App, logger *slog.Logger) (repository.UnitOfWork, error) {
	switch dbDriver(cfg) {
	case "memory":
		logger.Warn("Using in-memory storage; data is lost on exit")
		return memory.NewUoW(), nil
	case "postgres":
		db, err := infrarepository.NewDBConnection(cfg.DB, cfg.Env)
		if err != nil {
			logger.Error("Failed to initialize database", "error", err)
			return nil, err
		}
		return infrarepository.NewUoW(db), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
}

func newRedisClient(cfg *config.Redis) (*redis.Client, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, errors.New("REDIS_URL is not set")
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout
	return redis.NewClient(opts), nil
}

func newLocker(cfg *config.App, client *redis.Client, logger *slog.Logger) lock.Locker {
	if lockDriver(cfg) != "redis" {
		return lock.NewKeyedMutex()
	}
	return infralock.NewRedisLocker(client, cfg.Redis.KeyPrefix, cfg.Lock.TTL, cfg.Lock.RetryInterval, logger)
}

func newEventBus(cfg *config.App, client *redis.Client, logger *slog.Logger) (eventbus.Bus, func() error, error) {
	switch busDriver(cfg) {
	case "redis":
		bus, err := infraeventbus.NewWithRedis(context.Background(), client, cfg.EventBus.Stream, eventConsumerGroup, logger)
		return bus, nil, err
	case "kafka":
		bus, err := infraeventbus.NewWithKafka(cfg.EventBus.KafkaBrokers, cfg.EventBus.KafkaTopic, logger)
		if err != nil {
			return nil, nil, err
		}
		return bus, bus.Close, nil
	case "memory":
		return infraeventbus.NewWithMemory(logger), nil, nil
	}
	return nil, nil, fmt.Errorf("unsupported event bus driver %q", cfg.EventBus.Driver)
}

func dbDriver(cfg *config.App) string {
	if cfg.DB == nil || cfg.DB.Driver == "" {
		return "memory"
	}
	return cfg.DB.Driver
}

func lockDriver(cfg *config.App) string {
	if cfg.Lock == nil || cfg.Lock.Driver == "" {
		return "memory"
	}
	return cfg.Lock.Driver
}

func busDriver(cfg *config.App) string {
	if cfg.EventBus == nil || cfg.EventBus.Driver == "" {
		return "memory"
	}
	return cfg.EventBus.Driver
}
