// Package cloudapi provides a quote store backed by a hosted document
// collection API, for deployments where several instances share state.
// Quotes live as documents under /v1/apps/{app_id}/collections/quotes
// and the API enforces content hash uniqueness server side.
package cloudapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mortalnow/dan-s-bullshit/internal/adapters/clients"
	"github.com/mortalnow/dan-s-bullshit/internal/adapters/clients/acl"
	"github.com/mortalnow/dan-s-bullshit/internal/domain"
	"github.com/mortalnow/dan-s-bullshit/internal/platform/config"
	"github.com/mortalnow/dan-s-bullshit/internal/ports"
)

// randomPageSize is the page size used when walking the approved set
// for random selection.
const randomPageSize = 200

// document is the external representation of a quote. Timestamps are
// milliseconds since the Unix epoch.
type document struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	ContentHash string `json:"content_hash"`
	Status      string `json:"status"`
	Source      string `json:"source,omitempty"`
	SubmittedBy string `json:"submitted_by,omitempty"`
	CreatedAt   int64  `json:"created_at"`
	VerifiedAt  *int64 `json:"verified_at,omitempty"`
	VerifiedBy  string `json:"verified_by,omitempty"`
}

// documentList is the envelope of a collection query response.
type documentList struct {
	Documents []document `json:"documents"`
}

// statusPatch is the body of a conditional moderation update. The API
// applies it only while the document still has ExpectedStatus and
// answers 409 otherwise.
type statusPatch struct {
	Status         string `json:"status"`
	VerifiedAt     int64  `json:"verified_at"`
	VerifiedBy     string `json:"verified_by,omitempty"`
	ExpectedStatus string `json:"expected_status"`
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store persists quotes in a hosted document collection.
type Store struct {
	acl.BaseAdapter

	basePath string
}

// New creates a cloud quote store speaking through the given client.
// The client carries the base URL, credentials, retries and circuit
// breaking; cfg supplies the application and collection addressing.
func New(client *clients.Client, cfg config.CloudStoreConfig) (*Store, error) {
	if client == nil {
		return nil, errors.New("client is required")
	}
	if strings.TrimSpace(cfg.AppID) == "" {
		return nil, errors.New("app id is required")
	}

	name := cfg.Name
	if name == "" {
		name = "quote-api"
	}

	return &Store{
		BaseAdapter: acl.NewBaseAdapter(client, name),
		basePath:    fmt.Sprintf("/v1/apps/%s/collections/quotes", url.PathEscape(cfg.AppID)),
	}, nil
}

// Create inserts a new quote. The collection's content hash uniqueness
// serializes concurrent creates racing on identical content.
func (s *Store) Create(ctx context.Context, q ports.NewQuote) (*domain.Quote, error) {
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

	doc := document{
		ID:          uuid.NewString(),
		Content:     q.Content,
		ContentHash: q.ContentHash,
		Status:      string(status),
		Source:      q.Source,
		SubmittedBy: q.SubmittedBy,
		CreatedAt:   toMillis(time.Now()),
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding quote: %w", err)
	}

	body, err := s.BaseAdapter.Post(ctx, s.basePath, bytes.NewReader(payload), "create quote")
	if err != nil {
		if domain.IsConflict(err) {
			return nil, domain.NewDuplicateContentError(q.ContentHash)
		}

		return nil, s.storeErr(err)
	}

	created, err := acl.DecodeResponse[document](body)
	if err != nil {
		return nil, domain.NewUnavailableError(s.ServiceName(), err.Error())
	}

	return translateDocument(created)
}

// Get retrieves a quote by ID regardless of status.
func (s *Store) Get(ctx context.Context, id string) (*domain.Quote, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("id", "is required")
	}

	body, err := s.BaseAdapter.Get(ctx, s.basePath+"/"+url.PathEscape(id), "get quote")
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFoundError("quote", id)
		}

		return nil, s.storeErr(err)
	}

	doc, err := acl.DecodeResponse[document](body)
	if err != nil {
		return nil, domain.NewUnavailableError(s.ServiceName(), err.Error())
	}

	return translateDocument(doc)
}

// List returns a page of quotes ordered by creation time, newest first,
// with ID as the tie-break. The API honors that ordering; the store
// requests one document beyond the page size to detect whether a next
// page exists.
func (s *Store) List(ctx context.Context, params ports.ListQuotesParams) (*ports.QuotePage, error) {
	if params.Limit <= 0 {
		return nil, domain.NewValidationError("limit", "must be greater than zero")
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(params.Limit+1))
	if params.Status != nil {
		query.Set("status", string(*params.Status))
	}
	if params.After != nil {
		query.Set("before_created_at", strconv.FormatInt(toMillis(params.After.CreatedAt), 10))
		query.Set("before_id", params.After.ID)
	}

	body, err := s.BaseAdapter.Get(ctx, s.basePath+"?"+query.Encode(), "list quotes")
	if err != nil {
		return nil, s.storeErr(err)
	}

	list, err := acl.DecodeResponse[documentList](body)
	if err != nil {
		return nil, domain.NewUnavailableError(s.ServiceName(), err.Error())
	}

	translated, err := acl.TranslateSlice(list.Documents, translateDocument)
	if err != nil {
		return nil, err
	}

	quotes := make([]domain.Quote, 0, len(translated))
	for _, quote := range translated {
		quotes = append(quotes, *quote)
	}

	page := &ports.QuotePage{Quotes: quotes}
	if len(quotes) > params.Limit {
		page.Quotes = quotes[:params.Limit]
		last := page.Quotes[len(page.Quotes)-1]
		page.NextCursor = &ports.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}

	return page, nil
}

// UpdateStatus records a moderation decision. The conditional patch only
// applies while the document is still pending; a 409 from the API is
// disambiguated with a follow-up read.
func (s *Store) UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus, verifier string) (*domain.Quote, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("id", "is required")
	}
	if !status.IsTerminal() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("must be %s or %s", domain.StatusApproved, domain.StatusRejected))
	}

	patch := statusPatch{
		Status:         string(status),
		VerifiedAt:     toMillis(time.Now()),
		VerifiedBy:     verifier,
		ExpectedStatus: string(domain.StatusPending),
	}

	payload, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("encoding status update: %w", err)
	}

	body, err := s.BaseAdapter.Patch(ctx, s.basePath+"/"+url.PathEscape(id), bytes.NewReader(payload), "update quote status")
	if err != nil {
		switch {
		case domain.IsNotFound(err):
			return nil, domain.NewNotFoundError("quote", id)

		case domain.IsConflict(err):
			current, getErr := s.Get(ctx, id)
			if getErr != nil {
				return nil, getErr
			}

			return nil, domain.NewInvalidTransitionError(id, current.Status, status)

		default:
			return nil, s.storeErr(err)
		}
	}

	updated, err := acl.DecodeResponse[document](body)
	if err != nil {
		return nil, domain.NewUnavailableError(s.ServiceName(), err.Error())
	}

	return translateDocument(updated)
}

// RandomApproved returns a uniformly random approved quote. The store
// walks every page of the approved set so the draw is uniform across
// all approved quotes, not just the newest page.
func (s *Store) RandomApproved(ctx context.Context) (*domain.Quote, error) {
	approved := domain.StatusApproved

	var (
		quotes []domain.Quote
		after  *ports.Cursor
	)

	for {
		page, err := s.List(ctx, ports.ListQuotesParams{
			Status: &approved,
			Limit:  randomPageSize,
			After:  after,
		})
		if err != nil {
			return nil, err
		}

		quotes = append(quotes, page.Quotes...)
		if page.NextCursor == nil {
			break
		}

		after = page.NextCursor
	}

	if len(quotes) == 0 {
		return nil, domain.NewEmptyResultError("approved quotes")
	}

	quote := quotes[rand.IntN(len(quotes))]

	return &quote, nil
}

// Ping verifies the collection answers queries.
func (s *Store) Ping(ctx context.Context) error {
	body, err := s.BaseAdapter.Get(ctx, s.basePath+"?limit=1", "ping")
	if err != nil {
		return s.storeErr(err)
	}

	_ = body.Close()

	return nil
}

// storeErr normalizes upstream auth failures. A rejected API key means
// the backend is unusable, not that the caller lacks permission.
func (s *Store) storeErr(err error) error {
	if domain.IsForbidden(err) {
		return domain.NewUnavailableError(s.ServiceName(), "authentication rejected by upstream")
	}

	return err
}

// translateDocument validates an external document and converts it to
// the domain entity.
func translateDocument(d *document) (*domain.Quote, error) {
	if err := acl.ValidateRequired(d.ID, "id"); err != nil {
		return nil, err
	}
	if err := acl.ValidateRequired(d.Content, "content"); err != nil {
		return nil, err
	}
	if err := acl.ValidateRequired(d.ContentHash, "content_hash"); err != nil {
		return nil, err
	}
	if err := acl.ValidatePositive(d.CreatedAt, "created_at"); err != nil {
		return nil, err
	}

	status, err := domain.ParseStatus(d.Status)
	if err != nil {
		return nil, err
	}

	quote := &domain.Quote{
		ID:          d.ID,
		Content:     d.Content,
		ContentHash: d.ContentHash,
		Status:      status,
		Source:      d.Source,
		SubmittedBy: d.SubmittedBy,
		CreatedAt:   fromMillis(d.CreatedAt),
		VerifiedBy:  d.VerifiedBy,
	}
	if d.VerifiedAt != nil {
		quote.VerifiedAt = fromMillis(*d.VerifiedAt)
	}

	return quote, nil
}

var _ ports.QuoteStore = (*Store)(nil)
