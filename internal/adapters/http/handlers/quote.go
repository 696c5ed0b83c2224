package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mortalnow/dan-s-bullshit/internal/adapters/http/dto"
	"github.com/mortalnow/dan-s-bullshit/internal/app"
	"github.com/mortalnow/dan-s-bullshit/internal/domain"
	"github.com/mortalnow/dan-s-bullshit/internal/ports"
)

// cursorField is the ordering field encoded into list cursors. Decoding
// rejects cursors minted for any other field.
const cursorField = "created_at"

// QuoteHandler handles the public quote API.
type QuoteHandler struct {
	quotes *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(quotes *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quotes: quotes,
	}
}

// QuoteResponse is the HTTP response structure for a quote.
type QuoteResponse struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	Status      string     `json:"status"`
	Source      string     `json:"source,omitempty"`
	SubmittedBy string     `json:"submittedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	VerifiedAt  *time.Time `json:"verifiedAt,omitempty"`
	VerifiedBy  string     `json:"verifiedBy,omitempty"`
}

// toQuoteResponse converts a domain Quote to an HTTP response.
func toQuoteResponse(q *domain.Quote) *QuoteResponse {
	resp := &QuoteResponse{
		ID:          q.ID,
		Content:     q.Content,
		Status:      string(q.Status),
		Source:      q.Source,
		SubmittedBy: q.SubmittedBy,
		CreatedAt:   q.CreatedAt,
		VerifiedBy:  q.VerifiedBy,
	}

	if q.Verified() {
		verifiedAt := q.VerifiedAt
		resp.VerifiedAt = &verifiedAt
	}

	return resp
}

// toQuoteListResponse converts a store page into the paginated envelope.
func toQuoteListResponse(page *ports.QuotePage) *dto.PaginatedResponse[QuoteResponse] {
	items := make([]QuoteResponse, 0, len(page.Quotes))
	for i := range page.Quotes {
		items = append(items, *toQuoteResponse(&page.Quotes[i]))
	}

	return &dto.PaginatedResponse[QuoteResponse]{
		Items:      items,
		NextCursor: encodeCursor(page.NextCursor),
		HasMore:    page.NextCursor != nil,
	}
}

// SubmitQuoteRequest is the JSON body of a quote submission.
type SubmitQuoteRequest struct {
	Content     string `json:"content" validate:"required,notempty,max=2000"`
	Source      string `json:"source" validate:"omitempty,max=100"`
	SubmittedBy string `json:"submittedBy" validate:"required,notempty,max=100"`
}

// listQuotesQuery are the query parameters of the public listing.
type listQuotesQuery struct {
	dto.PaginationRequest

	Status string `form:"status"`
}

// ListQuotes handles GET /api/quotes
// Lists quotes newest first, filtered by moderation status.
//
// @Summary List quotes
// @Description Lists quotes newest first. Defaults to approved quotes.
// @Tags quotes
// @Produce json
// @Param status query string false "Moderation status filter (default APPROVED)"
// @Param limit query int false "Page size, 1-100 (default 20)"
// @Param cursor query string false "Opaque cursor from a previous page"
// @Success 200 {object} dto.PaginatedResponse[QuoteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var query listQuotesQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		if dto.IsValidationError(err) {
			dto.HandleValidationErrors(c, dto.ValidationErrors(err))
			return
		}

		dto.HandleErrorCode(c, dto.ErrorCodeBadRequest, "invalid query parameters")

		return
	}

	// An absent status means the public view of approved quotes. A status
	// that is present but unparseable is a caller mistake, not a default.
	raw := query.Status
	if _, present := c.GetQuery("status"); !present {
		raw = string(domain.StatusApproved)
	}

	status, err := domain.ParseStatus(raw)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	after, err := decodeCursor(query.Cursor)
	if err != nil {
		dto.HandleErrorCode(c, dto.ErrorCodeBadRequest, "invalid cursor")
		return
	}

	page, err := h.quotes.List(c.Request.Context(), app.ListParams{
		Status: &status,
		Limit:  query.GetLimit(),
		After:  after,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteListResponse(page))
}

// SubmitQuote handles POST /api/quotes
// Accepts a new quote for moderation.
//
// @Summary Submit a quote
// @Description Submits a quote. It enters the moderation queue as PENDING.
// @Tags quotes
// @Accept json
// @Produce json
// @Param quote body SubmitQuoteRequest true "Quote to submit"
// @Success 201 {object} QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/quotes [post]
func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	var req SubmitQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		if dto.IsValidationError(err) {
			dto.HandleValidationErrors(c, dto.ValidationErrors(err))
			return
		}

		dto.HandleErrorCode(c, dto.ErrorCodeBadRequest, "invalid request body")

		return
	}

	quote, err := h.quotes.Submit(c.Request.Context(), req.Content, req.Source, req.SubmittedBy)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toQuoteResponse(quote))
}

// RandomQuote handles GET /api/quotes/random
// Returns one uniformly-selected approved quote.
//
// @Summary Get a random quote
// @Description Returns a uniformly random approved quote.
// @Tags quotes
// @Produce json
// @Success 200 {object} QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/quotes/random [get]
func (h *QuoteHandler) RandomQuote(c *gin.Context) {
	quote, err := h.quotes.Random(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// LatestQuote handles GET /api/quotes/latest
// Returns the most recently created quote, approved unless a status
// filter says otherwise.
//
// @Summary Get the latest quote
// @Description Returns the newest quote in the given moderation status.
// @Tags quotes
// @Produce json
// @Param status query string false "Moderation status filter (default APPROVED)"
// @Success 200 {object} QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/quotes/latest [get]
func (h *QuoteHandler) LatestQuote(c *gin.Context) {
	raw, present := c.GetQuery("status")
	if !present {
		quote, err := h.quotes.Latest(c.Request.Context())
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, toQuoteResponse(quote))

		return
	}

	status, err := domain.ParseStatus(raw)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	page, err := h.quotes.List(c.Request.Context(), app.ListParams{
		Status: &status,
		Limit:  1,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if len(page.Quotes) == 0 {
		dto.HandleError(c, domain.NewEmptyResultError(strings.ToLower(string(status))+" quotes"))
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(&page.Quotes[0]))
}

// GetQuoteByID handles GET /api/quotes/:id
// Returns a specific approved quote by its identifier. Quotes that are
// pending or rejected are indistinguishable from absent ones.
//
// @Summary Get a quote by ID
// @Description Fetches a specific approved quote by its identifier
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/quotes/{id} [get]
func (h *QuoteHandler) GetQuoteByID(c *gin.Context) {
	quote, err := h.quotes.GetApproved(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// RegisterQuoteRoutes registers public quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListQuotes)
	quotes.POST("", h.SubmitQuote)
	quotes.GET("/random", h.RandomQuote)
	quotes.GET("/latest", h.LatestQuote)
	quotes.GET("/:id", h.GetQuoteByID)
}

// encodeCursor converts a store cursor into its opaque wire form.
func encodeCursor(cur *ports.Cursor) string {
	if cur == nil {
		return ""
	}

	return dto.EncodeCursor(&dto.CursorData{
		Field: cursorField,
		Value: cur.CreatedAt.UTC().Format(time.RFC3339Nano),
		ID:    cur.ID,
	})
}

// decodeCursor parses an opaque cursor back into a store cursor.
// An empty cursor yields nil; anything unparseable is dto.ErrInvalidCursor.
func decodeCursor(raw string) (*ports.Cursor, error) {
	data, err := dto.DecodeCursor(raw)
	if err != nil {
		if errors.Is(err, dto.ErrNoCursor) {
			return nil, nil
		}

		return nil, err
	}

	if data.Field != cursorField {
		return nil, dto.ErrInvalidCursor
	}

	createdAt, err := time.Parse(time.RFC3339Nano, data.Value)
	if err != nil {
		return nil, dto.ErrInvalidCursor
	}

	return &ports.Cursor{CreatedAt: createdAt, ID: data.ID}, nil
}
