// Package storage selects and constructs the quote store backend.
// Exactly one backend is chosen at process start from configuration;
// nothing else in the application knows which one is running.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mortalnow/dan-s-bullshit/internal/adapters/clients"
	"github.com/mortalnow/dan-s-bullshit/internal/adapters/storage/cloudapi"
	"github.com/mortalnow/dan-s-bullshit/internal/adapters/storage/sqlite"
	"github.com/mortalnow/dan-s-bullshit/internal/platform/config"
	"github.com/mortalnow/dan-s-bullshit/internal/ports"
)

// New builds the quote store named by cfg.Store.Backend. The returned
// close function releases backend resources and is a no-op for
// backends that hold none.
func New(cfg *config.Config, logger *slog.Logger) (ports.QuoteStore, func() error, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendLocal:
		store, err := sqlite.Open(cfg.Store.Local.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening local store: %w", err)
		}

		logger.Info("using local quote store",
			slog.String("path", cfg.Store.Local.Path),
		)

		return store, store.Close, nil

	case config.StoreBackendCloud:
		store, err := newCloudStore(cfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("building cloud store: %w", err)
		}

		logger.Info("using cloud quote store",
			slog.String("service", store.ServiceName()),
			slog.String("base_url", cfg.Store.Cloud.BaseURL),
		)

		return store, func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func newCloudStore(cfg *config.Config, logger *slog.Logger) (*cloudapi.Store, error) {
	apiKey := cfg.Store.Cloud.APIKey

	client, err := clients.New(&clients.Config{
		ServiceName: cfg.Store.Cloud.Name,
		BaseURL:     cfg.Store.Cloud.BaseURL,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		AuthFunc: func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+apiKey)
		},
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	return cloudapi.New(client, cfg.Store.Cloud)
}

// Checker adapts a quote store to the health registry.
type Checker struct {
	name  string
	store ports.QuoteStore
}

// NewChecker wraps a store for health registration under the given name.
func NewChecker(name string, store ports.QuoteStore) *Checker {
	return &Checker{name: name, store: store}
}

// Name returns the registered check name.
func (c *Checker) Name() string {
	return c.name
}

// Check reports whether the store currently answers queries.
func (c *Checker) Check(ctx context.Context) error {
	return c.store.Ping(ctx)
}

var _ ports.HealthChecker = (*Checker)(nil)
