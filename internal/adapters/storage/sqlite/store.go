// Package sqlite provides a SQLite-backed quote store for single-process
// deployments. The database file is opened in WAL mode and embedded
// migrations are applied on startup.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/mortalnow/dan-s-bullshit/internal/adapters/storage/sqlite/migrations"
	"github.com/mortalnow/dan-s-bullshit/internal/domain"
	"github.com/mortalnow/dan-s-bullshit/internal/ports"
)

// quoteColumns is the column list every quote query selects, in the
// order scanQuote expects.
const quoteColumns = "id, content, content_hash, status, source, submitted_by, created_at, verified_at, verified_by"

// Store persists quotes in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite quote store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Create inserts a new quote. The content hash uniqueness constraint
// serializes concurrent creates racing on identical content.
func (s *Store) Create(ctx context.Context, q ports.NewQuote) (*domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(q.Content) == "" {
		return nil, domain.NewValidationError("content", "is required")
	}
	if q.ContentHash == "" {
		return nil, domain.NewValidationError("contentHash", "is required")
	}
	status := q.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", string(q.Status)))
	}

	// Truncated to millisecond so the returned value matches what a
	// re-read scans back out of the integer column.
	quote := domain.Quote{
		ID:          uuid.NewString(),
		Content:     q.Content,
		ContentHash: q.ContentHash,
		Status:      status,
		Source:      q.Source,
		SubmittedBy: q.SubmittedBy,
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO quotes (
		   id,
		   content,
		   content_hash,
		   status,
		   source,
		   submitted_by,
		   created_at,
		   verified_at,
		   verified_by
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, NULL, '')`,
		quote.ID,
		quote.Content,
		quote.ContentHash,
		string(quote.Status),
		quote.Source,
		quote.SubmittedBy,
		toMillis(quote.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewDuplicateContentError(q.ContentHash)
		}
		return nil, fmt.Errorf("create quote: %w", err)
	}
	return &quote, nil
}

// Get returns one quote by ID regardless of status.
func (s *Store) Get(ctx context.Context, id string) (*domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("id", "is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+quoteColumns+` FROM quotes WHERE id = ?`,
		id,
	)

	quote, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("quote", id)
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return quote, nil
}

// List returns one page of quotes ordered newest first with ID as the
// tie-break. The keyset cursor makes pagination stable under concurrent
// inserts.
func (s *Store) List(ctx context.Context, params ports.ListQuotesParams) (*ports.QuotePage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if params.Limit <= 0 {
		return nil, domain.NewValidationError("limit", "must be greater than zero")
	}

	conditions := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if params.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*params.Status))
	}
	if params.After != nil {
		conditions = append(conditions, "(created_at < ? OR (created_at = ? AND id < ?))")
		after := toMillis(params.After.CreatedAt)
		args = append(args, after, after, params.After.ID)
	}

	query := `SELECT ` + quoteColumns + ` FROM quotes`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, params.Limit+1)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	page := ports.QuotePage{
		Quotes: make([]domain.Quote, 0, params.Limit),
	}
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("list quotes: %w", err)
		}
		page.Quotes = append(page.Quotes, *quote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}

	if len(page.Quotes) > params.Limit {
		last := page.Quotes[params.Limit-1]
		page.NextCursor = &ports.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
		page.Quotes = page.Quotes[:params.Limit]
	}

	return &page, nil
}

// UpdateStatus records a moderation decision. The status predicate in
// the UPDATE makes the pending check and the write a single atomic
// statement, so two moderators racing on one quote cannot both win.
func (s *Store) UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus, verifier string) (*domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("id", "is required")
	}
	if !status.IsTerminal() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("must be %s or %s", domain.StatusApproved, domain.StatusRejected))
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE quotes
		    SET status = ?, verified_at = ?, verified_by = ?
		  WHERE id = ? AND status = ?`,
		string(status),
		toMillis(time.Now().UTC()),
		verifier,
		id,
		string(domain.StatusPending),
	)
	if err != nil {
		return nil, fmt.Errorf("update quote status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update quote status: %w", err)
	}
	if affected == 0 {
		// Nothing matched: either the quote does not exist or it has
		// already been moderated. Read it back to tell the two apart.
		current, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, domain.NewInvalidTransitionError(id, current.Status, status)
	}

	return s.Get(ctx, id)
}

// RandomApproved returns one uniformly-selected approved quote.
func (s *Store) RandomApproved(ctx context.Context) (*domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+quoteColumns+` FROM quotes WHERE status = ? ORDER BY RANDOM() LIMIT 1`,
		string(domain.StatusApproved),
	)

	quote, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewEmptyResultError("approved quotes")
		}
		return nil, fmt.Errorf("random approved quote: %w", err)
	}
	return quote, nil
}

// Ping reports whether the database file is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

// rowScanner abstracts over sql.Row and sql.Rows for scanQuote.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (*domain.Quote, error) {
	var quote domain.Quote
	var status string
	var createdAt int64
	var verifiedAt sql.NullInt64
	err := row.Scan(
		&quote.ID,
		&quote.Content,
		&quote.ContentHash,
		&status,
		&quote.Source,
		&quote.SubmittedBy,
		&createdAt,
		&verifiedAt,
		&quote.VerifiedBy,
	)
	if err != nil {
		return nil, err
	}
	quote.Status = domain.QuoteStatus(status)
	quote.CreatedAt = fromMillis(createdAt)
	if verifiedAt.Valid {
		quote.VerifiedAt = fromMillis(verifiedAt.Int64)
	}
	return &quote, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "quotes.content_hash")
}

var _ ports.QuoteStore = (*Store)(nil)
