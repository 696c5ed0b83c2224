package storage

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mortalnow/dan-s-bullshit/internal/adapters/storage/cloudapi"
	"github.com/mortalnow/dan-s-bullshit/internal/adapters/storage/sqlite"
	"github.com/mortalnow/dan-s-bullshit/internal/platform/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func baseConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Store: config.StoreConfig{
			Backend: config.StoreBackendLocal,
			Local: config.LocalStoreConfig{
				Path: filepath.Join(t.TempDir(), "quotes.db"),
			},
		},
		Client: config.ClientConfig{
			Timeout: 5 * time.Second,
			Retry: config.RetryConfig{
				MaxAttempts:     1,
				InitialInterval: 10 * time.Millisecond,
				MaxInterval:     100 * time.Millisecond,
				Multiplier:      2.0,
			},
			CircuitBreaker: config.CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       time.Second,
				HalfOpenLimit: 2,
			},
		},
	}
}

func TestNew_LocalBackend(t *testing.T) {
	cfg := baseConfig(t)

	store, closeStore, err := New(cfg, testLogger())
	require.NoError(t, err)

	defer func() { _ = closeStore() }()

	assert.IsType(t, &sqlite.Store{}, store)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestNew_CloudBackend_SendsAPIKey(t *testing.T) {
	var sawAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"documents":[]}`))
	}))
	defer server.Close()

	cfg := baseConfig(t)
	cfg.Store.Backend = config.StoreBackendCloud
	cfg.Store.Cloud = config.CloudStoreConfig{
		BaseURL: server.URL,
		AppID:   "app-1",
		APIKey:  "secret-key",
		Name:    "quote-api",
	}

	store, closeStore, err := New(cfg, testLogger())
	require.NoError(t, err)

	defer func() { _ = closeStore() }()

	assert.IsType(t, &cloudapi.Store{}, store)
	require.NoError(t, store.Ping(context.Background()))
	assert.Equal(t, "Bearer secret-key", sawAuth)
}

func TestNew_CloudBackend_MissingAppID(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Store.Backend = config.StoreBackendCloud
	cfg.Store.Cloud = config.CloudStoreConfig{
		BaseURL: "http://localhost:9",
		APIKey:  "secret-key",
		Name:    "quote-api",
	}

	_, _, err := New(cfg, testLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "app id")
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Store.Backend = "mongo"

	_, _, err := New(cfg, testLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store backend")
}

func TestChecker(t *testing.T) {
	cfg := baseConfig(t)

	store, closeStore, err := New(cfg, testLogger())
	require.NoError(t, err)

	checker := NewChecker("quote-store", store)

	assert.Equal(t, "quote-store", checker.Name())
	assert.NoError(t, checker.Check(context.Background()))

	require.NoError(t, closeStore())
	assert.Error(t, checker.Check(context.Background()), "closed store should fail the check")
}
