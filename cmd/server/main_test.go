package main

import (
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestNewServer_MemoryDrivers(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "memory")
	t.Setenv("LOCK_DRIVER", "memory")
	t.Setenv("EVENTBUS_DRIVER", "memory")
	t.Setenv("AUTH_JWT_SECRET", "server-test-secret")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := config.Load()
	require.NoError(t, err)

	server, cleanup, err := newServer(cfg)
	require.NoError(t, err)
	defer cleanup()

	resp, err := server.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = server.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNewServer_UnsupportedDriver(t *testing.T) {
	_, _, err := newServer(&config.App{
		Log: &config.Log{Format: "text"},
		DB:  &config.DB{Driver: "oracle"},
	})
	assert.ErrorContains(t, err, "unsupported database driver")
}
