// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrDuplicateContent, etc.)
package ports

import (
	"context"
	"time"

	"github.com/mortalnow/dan-s-bullshit/internal/domain"
)

// NewQuote carries the fields of a quote to be created.
// The store assigns ID and CreatedAt; ContentHash must be precomputed
// from the normalized content via domain.ContentHash.
type NewQuote struct {
	Content     string
	ContentHash string
	Status      domain.QuoteStatus
	Source      string
	SubmittedBy string
}

// Cursor is the keyset position of a listing: the creation time and ID of
// the last quote on the previous page. Listings are ordered newest first
// with ID as the tie-break.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// ListQuotesParams are the filtering and paging inputs of List.
type ListQuotesParams struct {
	// Status filters the listing to a single moderation state.
	// Nil means all statuses.
	Status *domain.QuoteStatus

	// Limit is the maximum page size. Callers must pass a positive value.
	Limit int

	// After resumes a listing from a previous page's NextCursor.
	// Nil starts from the newest quote.
	After *Cursor
}

// QuotePage is one page of a listing.
type QuotePage struct {
	Quotes []domain.Quote

	// NextCursor resumes the listing after the last quote of this page.
	// Nil when there are no more quotes.
	NextCursor *Cursor
}

// QuoteStore is the persistence contract for quotes. Two adapters satisfy
// it: the SQLite store for single-process deployments and the cloud API
// store for multi-instance deployments.
type QuoteStore interface {
	// Create inserts a new quote and returns it with ID and CreatedAt set.
	// Returns domain.ErrDuplicateContent when a quote with the same
	// content hash already exists, in any status. Concurrent creates
	// racing on the same hash are serialized by the backend's uniqueness
	// constraint, not by application locking.
	Create(ctx context.Context, q NewQuote) (*domain.Quote, error)

	// Get retrieves a quote by ID regardless of status.
	// Returns domain.ErrNotFound if no such quote exists.
	Get(ctx context.Context, id string) (*domain.Quote, error)

	// List returns a page of quotes ordered by creation time, newest
	// first, with ID as the tie-break.
	List(ctx context.Context, params ListQuotesParams) (*QuotePage, error)

	// UpdateStatus records a moderation decision. Returns
	// domain.ErrNotFound if no such quote exists and
	// domain.ErrInvalidTransition if the quote is not currently PENDING.
	// The status check and the write are atomic.
	UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus, verifier string) (*domain.Quote, error)

	// RandomApproved returns one uniformly-selected APPROVED quote.
	// Returns domain.ErrEmptyResult when no approved quotes exist.
	RandomApproved(ctx context.Context) (*domain.Quote, error)

	// Ping reports backend reachability for readiness checks.
	Ping(ctx context.Context) error
}
