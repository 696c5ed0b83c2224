package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mortalnow/dan-s-bullshit/internal/adapters/http/dto"
	"github.com/mortalnow/dan-s-bullshit/internal/app"
	"github.com/mortalnow/dan-s-bullshit/internal/domain"
	"github.com/mortalnow/dan-s-bullshit/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore implements ports.QuoteStore with per-test function fields.
// Unset methods fail loudly so tests only exercise the calls they expect.
type fakeStore struct {
	createFn         func(ctx context.Context, q ports.NewQuote) (*domain.Quote, error)
	getFn            func(ctx context.Context, id string) (*domain.Quote, error)
	listFn           func(ctx context.Context, params ports.ListQuotesParams) (*ports.QuotePage, error)
	updateStatusFn   func(ctx context.Context, id string, status domain.QuoteStatus, verifiedBy string) (*domain.Quote, error)
	randomApprovedFn func(ctx context.Context) (*domain.Quote, error)
}

func (f *fakeStore) Create(ctx context.Context, q ports.NewQuote) (*domain.Quote, error) {
	if f.createFn == nil {
		return nil, errors.New("unexpected Create call")
	}

	return f.createFn(ctx, q)
}

func (f *fakeStore) Get(ctx context.Context, id string) (*domain.Quote, error) {
	if f.getFn == nil {
		return nil, errors.New("unexpected Get call")
	}

	return f.getFn(ctx, id)
}

func (f *fakeStore) List(ctx context.Context, params ports.ListQuotesParams) (*ports.QuotePage, error) {
	if f.listFn == nil {
		return nil, errors.New("unexpected List call")
	}

	return f.listFn(ctx, params)
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus, verifiedBy string) (*domain.Quote, error) {
	if f.updateStatusFn == nil {
		return nil, errors.New("unexpected UpdateStatus call")
	}

	return f.updateStatusFn(ctx, id, status, verifiedBy)
}

func (f *fakeStore) RandomApproved(ctx context.Context) (*domain.Quote, error) {
	if f.randomApprovedFn == nil {
		return nil, errors.New("unexpected RandomApproved call")
	}

	return f.randomApprovedFn(ctx)
}

func (f *fakeStore) Ping(context.Context) error { return nil }

var _ ports.QuoteStore = (*fakeStore)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newQuoteRouter wires a fake store through a real quote service and
// registers the public routes the way the server does.
func newQuoteRouter(store ports.QuoteStore) *gin.Engine {
	service := app.NewQuoteService(app.QuoteServiceConfig{
		Store:  store,
		Logger: testLogger(),
	})

	router := gin.New()
	NewQuoteHandler(service).RegisterQuoteRoutes(router.Group("/api"))

	return router
}

// storedQuote builds a quote fixture in the given moderation state.
func storedQuote(id string, status domain.QuoteStatus, createdAt time.Time) domain.Quote {
	content := "Quote " + id
	q := domain.Quote{
		ID:          id,
		Content:     content,
		ContentHash: domain.ContentHash(content),
		Status:      status,
		Source:      "api",
		SubmittedBy: "dan",
		CreatedAt:   createdAt,
	}

	if status != domain.StatusPending {
		q.VerifiedAt = createdAt.Add(time.Hour)
		q.VerifiedBy = "dan@example.com"
	}

	return q
}

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func TestToQuoteResponse(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("pending quote has no verification fields", func(t *testing.T) {
		quote := storedQuote("q-1", domain.StatusPending, createdAt)

		resp := toQuoteResponse(&quote)

		assert.Equal(t, "q-1", resp.ID)
		assert.Equal(t, "Quote q-1", resp.Content)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, createdAt, resp.CreatedAt)
		assert.Nil(t, resp.VerifiedAt)
		assert.Empty(t, resp.VerifiedBy)
	})

	t.Run("approved quote carries verification", func(t *testing.T) {
		quote := storedQuote("q-2", domain.StatusApproved, createdAt)

		resp := toQuoteResponse(&quote)

		assert.Equal(t, "APPROVED", resp.Status)
		require.NotNil(t, resp.VerifiedAt)
		assert.True(t, resp.VerifiedAt.Equal(createdAt.Add(time.Hour)))
		assert.Equal(t, "dan@example.com", resp.VerifiedBy)
	})
}

func TestToQuoteListResponse(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("full page advertises the next cursor", func(t *testing.T) {
		page := &ports.QuotePage{
			Quotes: []domain.Quote{
				storedQuote("q-1", domain.StatusApproved, createdAt),
				storedQuote("q-2", domain.StatusApproved, createdAt.Add(-time.Minute)),
			},
			NextCursor: &ports.Cursor{CreatedAt: createdAt.Add(-time.Minute), ID: "q-2"},
		}

		resp := toQuoteListResponse(page)

		assert.Len(t, resp.Items, 2)
		assert.True(t, resp.HasMore)
		assert.NotEmpty(t, resp.NextCursor)
	})

	t.Run("final page has no cursor", func(t *testing.T) {
		page := &ports.QuotePage{
			Quotes: []domain.Quote{storedQuote("q-1", domain.StatusApproved, createdAt)},
		}

		resp := toQuoteListResponse(page)

		assert.Len(t, resp.Items, 1)
		assert.False(t, resp.HasMore)
		assert.Empty(t, resp.NextCursor)
	})
}

func TestCursorCodec(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		cur := &ports.Cursor{
			CreatedAt: time.Date(2026, 2, 3, 4, 5, 6, 789000000, time.UTC),
			ID:        "q-7",
		}

		decoded, err := decodeCursor(encodeCursor(cur))
		require.NoError(t, err)
		require.NotNil(t, decoded)
		assert.Equal(t, "q-7", decoded.ID)
		assert.True(t, decoded.CreatedAt.Equal(cur.CreatedAt))
	})

	t.Run("nil cursor encodes to empty string", func(t *testing.T) {
		assert.Empty(t, encodeCursor(nil))
	})

	t.Run("empty cursor decodes to nil", func(t *testing.T) {
		decoded, err := decodeCursor("")
		require.NoError(t, err)
		assert.Nil(t, decoded)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := decodeCursor("not a cursor")
		assert.ErrorIs(t, err, dto.ErrInvalidCursor)
	})

	t.Run("cursor for another field is rejected", func(t *testing.T) {
		raw := dto.EncodeCursor(&dto.CursorData{Field: "id", Value: "q-1", ID: "q-1"})

		_, err := decodeCursor(raw)
		assert.ErrorIs(t, err, dto.ErrInvalidCursor)
	})

	t.Run("unparseable timestamp is rejected", func(t *testing.T) {
		raw := dto.EncodeCursor(&dto.CursorData{Field: cursorField, Value: "yesterday", ID: "q-1"})

		_, err := decodeCursor(raw)
		assert.ErrorIs(t, err, dto.ErrInvalidCursor)
	})
}

func TestQuoteHandler_ListQuotes(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	approvedPage := &ports.QuotePage{
		Quotes: []domain.Quote{
			storedQuote("q-1", domain.StatusApproved, createdAt),
			storedQuote("q-2", domain.StatusApproved, createdAt.Add(-time.Minute)),
		},
		NextCursor: &ports.Cursor{CreatedAt: createdAt.Add(-time.Minute), ID: "q-2"},
	}

	tests := []struct {
		name           string
		target         string
		store          *fakeStore
		expectedStatus int
		expectedCode   string
		checkParams    func(*testing.T, ports.ListQuotesParams)
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:   "defaults to approved quotes",
			target: "/api/quotes",
			store: &fakeStore{
				listFn: func(_ context.Context, _ ports.ListQuotesParams) (*ports.QuotePage, error) {
					return approvedPage, nil
				},
			},
			expectedStatus: http.StatusOK,
			checkParams: func(t *testing.T, params ports.ListQuotesParams) {
				t.Helper()
				require.NotNil(t, params.Status)
				assert.Equal(t, domain.StatusApproved, *params.Status)
				assert.Equal(t, app.DefaultListLimit, params.Limit)
				assert.Nil(t, params.After)
			},
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				var resp dto.PaginatedResponse[QuoteResponse]
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Len(t, resp.Items, 2)
				assert.True(t, resp.HasMore)
				assert.NotEmpty(t, resp.NextCursor)
			},
		},
		{
			name:   "explicit status filter is parsed case-insensitively",
			target: "/api/quotes?status=pending",
			store: &fakeStore{
				listFn: func(_ context.Context, _ ports.ListQuotesParams) (*ports.QuotePage, error) {
					return &ports.QuotePage{}, nil
				},
			},
			expectedStatus: http.StatusOK,
			checkParams: func(t *testing.T, params ports.ListQuotesParams) {
				t.Helper()
				require.NotNil(t, params.Status)
				assert.Equal(t, domain.StatusPending, *params.Status)
			},
		},
		{
			name:           "present but empty status is rejected",
			target:         "/api/quotes?status=",
			store:          &fakeStore{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrorCodeValidation,
		},
		{
			name:           "unknown status is rejected",
			target:         "/api/quotes?status=SHIPPED",
			store:          &fakeStore{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrorCodeValidation,
		},
		{
			name:   "limit is passed through",
			target: "/api/quotes?limit=7",
			store: &fakeStore{
				listFn: func(_ context.Context, _ ports.ListQuotesParams) (*ports.QuotePage, error) {
					return &ports.QuotePage{}, nil
				},
			},
			expectedStatus: http.StatusOK,
			checkParams: func(t *testing.T, params ports.ListQuotesParams) {
				t.Helper()
				assert.Equal(t, 7, params.Limit)
			},
		},
		{
			name:           "limit above the cap is rejected",
			target:         "/api/quotes?limit=1000",
			store:          &fakeStore{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrorCodeValidation,
		},
		{
			name:           "malformed cursor is rejected",
			target:         "/api/quotes?cursor=!!!",
			store:          &fakeStore{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrorCodeBadRequest,
		},
		{
			name: "cursor is forwarded to the store",
			target: "/api/quotes?cursor=" + url.QueryEscape(encodeCursor(&ports.Cursor{
				CreatedAt: createdAt.Add(-time.Minute),
				ID:        "q-2",
			})),
			store: &fakeStore{
				listFn: func(_ context.Context, _ ports.ListQuotesParams) (*ports.QuotePage, error) {
					return &ports.QuotePage{}, nil
				},
			},
			expectedStatus: http.StatusOK,
			checkParams: func(t *testing.T, params ports.ListQuotesParams) {
				t.Helper()
				require.NotNil(t, params.After)
				assert.Equal(t, "q-2", params.After.ID)
				assert.True(t, params.After.CreatedAt.Equal(createdAt.Add(-time.Minute)))
			},
		},
		{
			name:   "store outage surfaces as unavailable",
			target: "/api/quotes",
			store: &fakeStore{
				listFn: func(_ context.Context, _ ports.ListQuotesParams) (*ports.QuotePage, error) {
					return nil, domain.NewUnavailableError("sqlite", "database is locked")
				},
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   dto.ErrorCodeUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotParams ports.ListQuotesParams
			if tt.store.listFn != nil {
				inner := tt.store.listFn
				tt.store.listFn = func(ctx context.Context, params ports.ListQuotesParams) (*ports.QuotePage, error) {
					gotParams = params

					return inner(ctx, params)
				}
			}

			router := newQuoteRouter(tt.store)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedCode != "" {
				resp := decodeErrorResponse(t, w)
				assert.Equal(t, tt.expectedCode, resp.Error.Code)
			}

			if tt.checkParams != nil {
				tt.checkParams(t, gotParams)
			}

			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestQuoteHandler_SubmitQuote(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		store          *fakeStore
		expectedStatus int
		expectedCode   string
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "submission enters the moderation queue",
			body: `{"content": "  Ship it anyway.  ", "submittedBy": "dan"}`,
			store: &fakeStore{
				createFn: func(_ context.Context, q ports.NewQuote) (*domain.Quote, error) {
					return &domain.Quote{
						ID:          "q-new",
						Content:     q.Content,
						ContentHash: q.ContentHash,
						Status:      q.Status,
						Source:      q.Source,
						SubmittedBy: q.SubmittedBy,
						CreatedAt:   time.Now().UTC(),
					}, nil
				},
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				var resp QuoteResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "q-new", resp.ID)
				assert.Equal(t, "Ship it anyway.", resp.Content)
				assert.Equal(t, "PENDING", resp.Status)
				assert.Equal(t, "api", resp.Source)
				assert.Nil(t, resp.VerifiedAt)
			},
		},
		{
			name: "explicit source is preserved",
			body: `{"content": "Works on my machine.", "source": "slack", "submittedBy": "dan"}`,
			store: &fakeStore{
				createFn: func(_ context.Context, q ports.NewQuote) (*domain.Quote, error) {
					return &domain.Quote{ID: "q-new", Content: q.Content, Status: q.Status, Source: q.Source, CreatedAt: time.Now().UTC()}, nil
				},
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				var resp QuoteResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "slack", resp.Source)
			},
		},
		{
			name:           "missing content fails validation",
			body:           `{"submittedBy": "dan"}`,
			store:          &fakeStore{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrorCodeValidation,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				resp := decodeErrorResponse(t, w)
				assert.Contains(t, resp.Error.Details, "content")
			},
		},
		{
			name:           "whitespace-only content fails validation",
			body:           `{"content": "   ", "submittedBy": "dan"}`,
			store:          &fakeStore{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrorCodeValidation,
		},
		{
			name:           "missing submitter fails validation",
			body:           `{"content": "Blame the intern."}`,
			store:          &fakeStore{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrorCodeValidation,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				resp := decodeErrorResponse(t, w)
				assert.Contains(t, resp.Error.Details, "submittedBy")
			},
		},
		{
			name:           "malformed body is a bad request",
			body:           `{"content": `,
			store:          &fakeStore{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrorCodeBadRequest,
		},
		{
			name: "duplicate content conflicts",
			body: `{"content": "Ship it anyway.", "submittedBy": "dan"}`,
			store: &fakeStore{
				createFn: func(_ context.Context, q ports.NewQuote) (*domain.Quote, error) {
					return nil, domain.NewDuplicateContentError(q.ContentHash)
				},
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrorCodeDuplicateContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newQuoteRouter(tt.store)

			req := httptest.NewRequest(http.MethodPost, "/api/quotes", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedCode != "" {
				resp := decodeErrorResponse(t, w)
				assert.Equal(t, tt.expectedCode, resp.Error.Code)
			}

			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestQuoteHandler_RandomQuote(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("returns an approved quote", func(t *testing.T) {
		quote := storedQuote("q-lucky", domain.StatusApproved, createdAt)
		router := newQuoteRouter(&fakeStore{
			randomApprovedFn: func(context.Context) (*domain.Quote, error) {
				return &quote, nil
			},
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/quotes/random", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp QuoteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "q-lucky", resp.ID)
	})

	t.Run("empty approved set is not found", func(t *testing.T) {
		router := newQuoteRouter(&fakeStore{
			randomApprovedFn: func(context.Context) (*domain.Quote, error) {
				return nil, domain.NewEmptyResultError("approved quotes")
			},
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/quotes/random", nil))

		require.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeErrorResponse(t, w)
		assert.Equal(t, dto.ErrorCodeEmptyResult, resp.Error.Code)
	})
}

func TestQuoteHandler_LatestQuote(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("defaults to the newest approved quote", func(t *testing.T) {
		var gotParams ports.ListQuotesParams
		quote := storedQuote("q-new", domain.StatusApproved, createdAt)
		router := newQuoteRouter(&fakeStore{
			listFn: func(_ context.Context, params ports.ListQuotesParams) (*ports.QuotePage, error) {
				gotParams = params

				return &ports.QuotePage{Quotes: []domain.Quote{quote}}, nil
			},
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/quotes/latest", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, gotParams.Status)
		assert.Equal(t, domain.StatusApproved, *gotParams.Status)
		assert.Equal(t, 1, gotParams.Limit)

		var resp QuoteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "q-new", resp.ID)
	})

	t.Run("status filter selects another queue", func(t *testing.T) {
		var gotParams ports.ListQuotesParams
		quote := storedQuote("q-pend", domain.StatusPending, createdAt)
		router := newQuoteRouter(&fakeStore{
			listFn: func(_ context.Context, params ports.ListQuotesParams) (*ports.QuotePage, error) {
				gotParams = params

				return &ports.QuotePage{Quotes: []domain.Quote{quote}}, nil
			},
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/quotes/latest?status=pending", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, gotParams.Status)
		assert.Equal(t, domain.StatusPending, *gotParams.Status)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		router := newQuoteRouter(&fakeStore{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/quotes/latest?status=SHIPPED", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty result is not found", func(t *testing.T) {
		router := newQuoteRouter(&fakeStore{
			listFn: func(context.Context, ports.ListQuotesParams) (*ports.QuotePage, error) {
				return &ports.QuotePage{}, nil
			},
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/quotes/latest?status=REJECTED", nil))

		require.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeErrorResponse(t, w)
		assert.Equal(t, dto.ErrorCodeEmptyResult, resp.Error.Code)
	})
}

func TestQuoteHandler_GetQuoteByID(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		quoteID        string
		store          *fakeStore
		expectedStatus int
		expectedCode   string
	}{
		{
			name:    "approved quote is returned",
			quoteID: "q-1",
			store: &fakeStore{
				getFn: func(_ context.Context, id string) (*domain.Quote, error) {
					quote := storedQuote(id, domain.StatusApproved, createdAt)

					return &quote, nil
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "pending quote reads as not found",
			quoteID: "q-2",
			store: &fakeStore{
				getFn: func(_ context.Context, id string) (*domain.Quote, error) {
					quote := storedQuote(id, domain.StatusPending, createdAt)

					return &quote, nil
				},
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   dto.ErrorCodeNotFound,
		},
		{
			name:    "missing quote is not found",
			quoteID: "q-missing",
			store: &fakeStore{
				getFn: func(_ context.Context, id string) (*domain.Quote, error) {
					return nil, domain.NewNotFoundError("quote", id)
				},
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   dto.ErrorCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newQuoteRouter(tt.store)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/quotes/"+tt.quoteID, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedCode != "" {
				resp := decodeErrorResponse(t, w)
				assert.Equal(t, tt.expectedCode, resp.Error.Code)
			}
		})
	}
}

func TestQuoteHandler_RegisterQuoteRoutes(t *testing.T) {
	router := newQuoteRouter(&fakeStore{})

	expectedRoutes := []string{
		"GET /api/quotes",
		"POST /api/quotes",
		"GET /api/quotes/random",
		"GET /api/quotes/latest",
		"GET /api/quotes/:id",
	}

	routeMap := make(map[string]bool)
	for _, r := range router.Routes() {
		routeMap[r.Method+" "+r.Path] = true
	}

	for _, expected := range expectedRoutes {
		assert.True(t, routeMap[expected], "missing route: %s", expected)
	}
}
