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

// ModerationService orchestrates the admin use cases: reviewing the
// pending queue and settling quotes one way or the other. Every method
// takes the moderator identity established by the auth middleware so
// decisions are attributable.
type ModerationService struct {
	store  ports.QuoteStore
	logger *slog.Logger
}

// ModerationServiceConfig contains dependencies for the moderation service.
type ModerationServiceConfig struct {
	Store  ports.QuoteStore
	Logger *slog.Logger
}

// NewModerationService creates a new moderation service with the provided
// dependencies.
func NewModerationService(cfg ModerationServiceConfig) *ModerationService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ModerationService{
		store:  cfg.Store,
		logger: logger.With(slog.String("component", "app.ModerationService")),
	}
}

func (s *ModerationService) log(ctx context.Context) *slog.Logger {
	if logger := logging.FromContext(ctx); logger != nil {
		return logger
	}

	return s.logger
}

// Queue returns a page of quotes awaiting moderation, newest first.
func (s *ModerationService) Queue(ctx context.Context, limit int, after *ports.Cursor) (*ports.QuotePage, error) {
	pending := domain.StatusPending

	return s.store.List(ctx, ports.ListQuotesParams{
		Status: &pending,
		Limit:  clampLimit(limit),
		After:  after,
	})
}

// ListAll returns a page of quotes in any moderation state. A nil
// status filter means all states, unlike the public listing which
// defaults to approved.
func (s *ModerationService) ListAll(ctx context.Context, params ListParams) (*ports.QuotePage, error) {
	return s.store.List(ctx, ports.ListQuotesParams{
		Status: params.Status,
		Limit:  clampLimit(params.Limit),
		After:  params.After,
	})
}

// Approve publishes a pending quote. The decision is final.
func (s *ModerationService) Approve(ctx context.Context, id string, moderator *domain.Identity) (*domain.Quote, error) {
	return s.decide(ctx, id, domain.StatusApproved, moderator)
}

// Reject declines a pending quote. The decision is final.
func (s *ModerationService) Reject(ctx context.Context, id string, moderator *domain.Identity) (*domain.Quote, error) {
	return s.decide(ctx, id, domain.StatusRejected, moderator)
}

func (s *ModerationService) decide(ctx context.Context, id string, status domain.QuoteStatus, moderator *domain.Identity) (*domain.Quote, error) {
	logger := s.log(ctx).With(
		slog.String("method", "decide"),
		slog.String("quote_id", id),
	)

	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("validating input: %w", domain.NewValidationError("id", "cannot be empty"))
	}

	if moderator == nil {
		return nil, domain.NewUnauthorizedError("missing moderator identity")
	}

	quote, err := s.store.UpdateStatus(ctx, id, status, moderator.Verifier())
	if err != nil {
		switch {
		case domain.IsInvalidTransition(err):
			logger.WarnContext(ctx, "moderation decision on settled quote",
				slog.Any("error", err),
			)
		case domain.IsNotFound(err):
			// Expected when moderating from a stale queue view.
		default:
			logger.ErrorContext(ctx, "failed to record moderation decision",
				slog.Any("error", err),
			)
		}

		return nil, err
	}

	logger.InfoContext(ctx, "moderation decision recorded",
		slog.String("status", string(quote.Status)),
		slog.String("moderator", moderator.Verifier()),
	)

	return quote, nil
}

// Overview is the admin dashboard snapshot: the newest quotes in each
// moderation state.
type Overview struct {
	Pending  *ports.QuotePage
	Approved *ports.QuotePage
	Rejected *ports.QuotePage
}

// Overview fetches the newest page of each moderation state in parallel.
func (s *ModerationService) Overview(ctx context.Context, limit int) (*Overview, error) {
	limit = clampLimit(limit)

	listByStatus := func(status domain.QuoteStatus) func(context.Context) (*ports.QuotePage, error) {
		return func(ctx context.Context) (*ports.QuotePage, error) {
			return s.store.List(ctx, ports.ListQuotesParams{Status: &status, Limit: limit})
		}
	}

	pages, err := Parallel(ctx,
		listByStatus(domain.StatusPending),
		listByStatus(domain.StatusApproved),
		listByStatus(domain.StatusRejected),
	)
	if err != nil {
		return nil, err
	}

	return &Overview{Pending: pages[0], Approved: pages[1], Rejected: pages[2]}, nil
}
