// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
//
// Application Layer Responsibilities:
//   - Orchestrate use cases (business workflows)
//   - Coordinate between domain and infrastructure
//   - Handle cross-cutting concerns (logging)
//   - Enforce business rules that span multiple entities
//
// What does NOT belong here:
//   - HTTP specifics (that's adapters)
//   - Database queries (that's storage adapters)
//   - Core domain logic (that's the domain layer)
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mortalnow/dan-s-bullshit/internal/domain"
	"github.com/mortalnow/dan-s-bullshit/internal/platform/logging"
	"github.com/mortalnow/dan-s-bullshit/internal/ports"
)

const (
	// DefaultListLimit is the page size when the caller does not ask
	// for one.
	DefaultListLimit = 20

	// MaxListLimit caps the page size of a single listing request.
	MaxListLimit = 100

	// DefaultSubmissionSource tags quotes submitted without an
	// explicit source.
	DefaultSubmissionSource = "api"
)

// ListParams are the caller-facing listing inputs before clamping.
type ListParams struct {
	Status *domain.QuoteStatus
	Limit  int
	After  *ports.Cursor
}

// QuoteService orchestrates the public quote use cases: submission and
// the read paths over the approved set.
type QuoteService struct {
	store  ports.QuoteStore
	logger *slog.Logger
}

// QuoteServiceConfig contains dependencies for the quote service.
type QuoteServiceConfig struct {
	Store  ports.QuoteStore
	Logger *slog.Logger
}

// NewQuoteService creates a new quote service with the provided dependencies.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		store:  cfg.Store,
		logger: logger.With(slog.String("component", "app.QuoteService")),
	}
}

func (s *QuoteService) log(ctx context.Context) *slog.Logger {
	if logger := logging.FromContext(ctx); logger != nil {
		return logger
	}

	return s.logger
}

// Submit records a new quote for moderation. Content is normalized by
// trimming surrounding whitespace before hashing, so resubmissions that
// differ only in padding collide with the original.
func (s *QuoteService) Submit(ctx context.Context, content, source, submittedBy string) (*domain.Quote, error) {
	logger := s.log(ctx).With(slog.String("method", "Submit"))

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, fmt.Errorf("validating input: %w", domain.NewValidationError("content", "cannot be empty"))
	}

	if source == "" {
		source = DefaultSubmissionSource
	}

	hash := domain.ContentHash(trimmed)

	quote, err := s.store.Create(ctx, ports.NewQuote{
		Content:     trimmed,
		ContentHash: hash,
		Status:      domain.StatusPending,
		Source:      source,
		SubmittedBy: strings.TrimSpace(submittedBy),
	})
	if err != nil {
		if domain.IsDuplicateContent(err) {
			logger.InfoContext(ctx, "duplicate submission rejected",
				slog.String("content_hash", hash),
			)
		} else {
			logger.ErrorContext(ctx, "failed to create quote",
				slog.Any("error", err),
			)
		}

		return nil, err
	}

	logger.InfoContext(ctx, "quote submitted",
		slog.String("quote_id", quote.ID),
		slog.String("source", quote.Source),
	)

	return quote, nil
}

// GetApproved returns a quote by ID if it has been approved. Quotes in
// other states read as not found so the moderation queue is not
// observable through the public API.
func (s *QuoteService) GetApproved(ctx context.Context, id string) (*domain.Quote, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("validating input: %w", domain.NewValidationError("id", "cannot be empty"))
	}

	quote, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if quote.Status != domain.StatusApproved {
		return nil, domain.NewNotFoundError("quote", id)
	}

	return quote, nil
}

// List returns a page of quotes. Without an explicit status filter the
// listing covers the approved set; limits are clamped to the service
// bounds.
func (s *QuoteService) List(ctx context.Context, params ListParams) (*ports.QuotePage, error) {
	if params.Status == nil {
		approved := domain.StatusApproved
		params.Status = &approved
	}

	return s.store.List(ctx, ports.ListQuotesParams{
		Status: params.Status,
		Limit:  clampLimit(params.Limit),
		After:  params.After,
	})
}

// Latest returns the most recently created approved quote.
func (s *QuoteService) Latest(ctx context.Context) (*domain.Quote, error) {
	approved := domain.StatusApproved

	page, err := s.store.List(ctx, ports.ListQuotesParams{Status: &approved, Limit: 1})
	if err != nil {
		return nil, err
	}

	if len(page.Quotes) == 0 {
		return nil, domain.NewEmptyResultError("approved quotes")
	}

	return &page.Quotes[0], nil
}

// Random returns a uniformly random approved quote.
func (s *QuoteService) Random(ctx context.Context) (*domain.Quote, error) {
	quote, err := s.store.RandomApproved(ctx)
	if err != nil {
		if !domain.IsEmptyResult(err) {
			s.log(ctx).ErrorContext(ctx, "failed to fetch random quote",
				slog.Any("error", err),
			)
		}

		return nil, err
	}

	return quote, nil
}

// FrontPage fetches the featured random quote and the latest approved
// quote in parallel for the public index. An empty approved set yields
// nils rather than an error so the page can render its empty state.
func (s *QuoteService) FrontPage(ctx context.Context) (random, latest *domain.Quote, err error) {
	return Parallel2(ctx,
		func(ctx context.Context) (*domain.Quote, error) {
			quote, err := s.store.RandomApproved(ctx)
			if domain.IsEmptyResult(err) {
				return nil, nil
			}

			return quote, err
		},
		func(ctx context.Context) (*domain.Quote, error) {
			quote, err := s.Latest(ctx)
			if domain.IsEmptyResult(err) {
				return nil, nil
			}

			return quote, err
		},
	)
}

// clampLimit bounds a requested page size to the service limits.
func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
