package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mortalnow/dan-s-bullshit/internal/adapters/http/dto"
	"github.com/mortalnow/dan-s-bullshit/internal/adapters/http/middleware"
	"github.com/mortalnow/dan-s-bullshit/internal/app"
	"github.com/mortalnow/dan-s-bullshit/internal/domain"
)

// adminDefaultLimit is the page size the moderation listing uses when the
// caller does not ask for one.
const adminDefaultLimit = 50

// AdminHandler handles the moderation API.
type AdminHandler struct {
	moderation *app.ModerationService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(moderation *app.ModerationService) *AdminHandler {
	return &AdminHandler{
		moderation: moderation,
	}
}

// ListQuotes handles GET /api/admin/quotes
// Lists quotes for moderation. Without a status parameter it shows the
// pending queue; an explicitly empty status lists every quote.
//
// @Summary List quotes for moderation
// @Description Lists quotes in any moderation status, pending by default.
// @Tags admin
// @Produce json
// @Security AdminAuth
// @Param status query string false "Moderation status filter (default PENDING, empty for all)"
// @Param limit query int false "Page size, 1-100 (default 50)"
// @Param cursor query string false "Opaque cursor from a previous page"
// @Success 200 {object} dto.PaginatedResponse[QuoteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/admin/quotes [get]
func (h *AdminHandler) ListQuotes(c *gin.Context) {
	var query listQuotesQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		if dto.IsValidationError(err) {
			dto.HandleValidationErrors(c, dto.ValidationErrors(err))
			return
		}

		dto.HandleErrorCode(c, dto.ErrorCodeBadRequest, "invalid query parameters")

		return
	}

	// Three-way status semantics: absent means the pending queue, an
	// explicitly empty value means all statuses, anything else is parsed.
	var status *domain.QuoteStatus
	raw, present := c.GetQuery("status")
	switch {
	case !present:
		pending := domain.StatusPending
		status = &pending
	case raw == "":
		status = nil
	default:
		parsed, err := domain.ParseStatus(raw)
		if err != nil {
			dto.HandleError(c, err)
			return
		}
		status = &parsed
	}

	after, err := decodeCursor(query.Cursor)
	if err != nil {
		dto.HandleErrorCode(c, dto.ErrorCodeBadRequest, "invalid cursor")
		return
	}

	limit := query.Limit
	if limit <= 0 {
		limit = adminDefaultLimit
	}

	page, err := h.moderation.ListAll(c.Request.Context(), app.ListParams{
		Status: status,
		Limit:  limit,
		After:  after,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteListResponse(page))
}

// ApproveQuote handles POST /api/admin/quotes/:id/approve
// Approves a pending quote, making it publicly visible.
//
// @Summary Approve a quote
// @Description Moves a pending quote to APPROVED.
// @Tags admin
// @Produce json
// @Security AdminAuth
// @Param id path string true "Quote ID"
// @Success 200 {object} QuoteResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/admin/quotes/{id}/approve [post]
func (h *AdminHandler) ApproveQuote(c *gin.Context) {
	quote, err := h.moderation.Approve(c.Request.Context(), c.Param("id"), middleware.GetIdentity(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// RejectQuote handles POST /api/admin/quotes/:id/reject
// Rejects a pending quote.
//
// @Summary Reject a quote
// @Description Moves a pending quote to REJECTED.
// @Tags admin
// @Produce json
// @Security AdminAuth
// @Param id path string true "Quote ID"
// @Success 200 {object} QuoteResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/admin/quotes/{id}/reject [post]
func (h *AdminHandler) RejectQuote(c *gin.Context) {
	quote, err := h.moderation.Reject(c.Request.Context(), c.Param("id"), middleware.GetIdentity(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// RegisterAdminRoutes registers moderation routes on the given router group.
// The group is expected to carry admin authentication middleware.
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListQuotes)
	quotes.POST("/:id/approve", h.ApproveQuote)
	quotes.POST("/:id/reject", h.RejectQuote)
}
