// Package http provides the HTTP adapter layer using Gin.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mortalnow/dan-s-bullshit/internal/platform/config"
)

// Server is the process's HTTP front door: a Gin engine on an http.Server
// with timeouts from config and a graceful stop.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	config     *config.ServerConfig
	logger     *slog.Logger
}

// New builds the server. Routes are registered on Engine afterwards;
// nothing is listening until Start.
func New(cfg *config.ServerConfig, logger *slog.Logger) *Server {
	// Release mode always; request visibility comes from our own
	// logging middleware, not gin's debug output.
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	// Bound request bodies before any handler reads them.
	engine.Use(maxBodySize(cfg.MaxRequestSize))

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		engine:     engine,
		httpServer: httpServer,
		config:     cfg,
		logger:     logger,
	}
}

// Engine exposes the Gin engine so callers can register routes.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Config returns the config the server was built from.
func (s *Server) Config() *config.ServerConfig {
	return s.config
}

// Start begins serving without blocking. The returned channel delivers a
// ListenAndServe failure if one happens and is closed once the listener
// stops; a clean Shutdown closes it without sending.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("starting HTTP server",
			slog.String("addr", s.httpServer.Addr),
			slog.Duration("read_timeout", s.config.ReadTimeout),
			slog.Duration("write_timeout", s.config.WriteTimeout),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}

		close(errCh)
	}()

	return errCh
}

// Shutdown stops accepting connections and waits for in-flight requests
// to drain, up to the context's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	s.logger.Info("HTTP server stopped")

	return nil
}

// Addr returns the configured listen address, even before Start.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// maxBodySize caps request bodies at maxBytes; reads past the cap fail
// with *http.MaxBytesError.
func maxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
