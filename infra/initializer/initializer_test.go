package initializer

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/amirasaad/bankcore/infra/repository/memory"
	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/amirasaad/bankcore/pkg/lock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeDependencies_Memory(t *testing.T) {
	cfg := &config.App{
		Env:      "test",
		Log:      &config.Log{Format: "text"},
		DB:       &config.DB{Driver: "memory"},
		Lock:     &config.Lock{Driver: "memory"},
		EventBus: &config.EventBus{Driver: "memory"},
	}

	deps, cleanup, err := InitializeDependencies(cfg)
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &memory.UoW{}, deps.Uow)
	assert.IsType(t, &lock.KeyedMutex{}, deps.Locker)
	assert.NotNil(t, deps.EventBus)
	assert.NotNil(t, deps.Metrics)
	assert.NotNil(t, deps.References)
	assert.Same(t, cfg, deps.Config)
}

func TestUnsupportedDrivers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	_, err := newUnitOfWork(&config.App{DB: &config.DB{Driver: "sqlite"}}, logger)
	assert.ErrorContains(t, err, `unsupported database driver "sqlite"`)

	_, _, err = newEventBus(&config.App{EventBus: &config.EventBus{Driver: "nats"}}, nil, logger)
	assert.ErrorContains(t, err, `unsupported event bus driver "nats"`)
}

func TestNewRedisClient(t *testing.T) {
	_, err := newRedisClient(&config.Redis{})
	require.Error(t, err)

	_, err = newRedisClient(&config.Redis{URL: "://bad"})
	require.Error(t, err)

	client, err := newRedisClient(&config.Redis{URL: "redis://localhost:6379/2", PoolSize: 3})
	require.NoError(t, err)
	defer client.Close() //nolint:errcheck
	assert.Equal(t, 2, client.Options().DB)
	assert.Equal(t, 3, client.Options().PoolSize)
}

func TestSetupLogger_Formats(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(&config.Log{Format: "json", Prefix: "[test]"}, &buf)
	logger.Info("hello", "reference", "DEP-1")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"reference":"DEP-1"`)
}
