// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/mortalnow/dan-s-bullshit/internal/domain"
	"github.com/mortalnow/dan-s-bullshit/internal/platform/logging"
)

// ErrorResponse is the standard error envelope for all error responses.
// It provides a consistent structure for API error handling.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "VALIDATION_ERROR").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details provides additional context about the error.
	// For validation errors, this contains field-level error messages.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	// ErrorCodeNotFound indicates the requested resource was not found.
	ErrorCodeNotFound = "NOT_FOUND"

	// ErrorCodeEmptyResult indicates the selection matched nothing at all.
	ErrorCodeEmptyResult = "EMPTY_RESULT"

	// ErrorCodeDuplicateContent indicates the submitted content already exists.
	ErrorCodeDuplicateContent = "DUPLICATE_CONTENT"

	// ErrorCodeInvalidTransition indicates the quote was already moderated.
	ErrorCodeInvalidTransition = "INVALID_TRANSITION"

	// ErrorCodeConflict indicates a state conflict (duplicate, version mismatch).
	ErrorCodeConflict = "CONFLICT"

	// ErrorCodeValidation indicates request validation failed.
	ErrorCodeValidation = "VALIDATION_ERROR"

	// ErrorCodeForbidden indicates the operation is not permitted.
	ErrorCodeForbidden = "FORBIDDEN"

	// ErrorCodeUnauthorized indicates authentication is required.
	ErrorCodeUnauthorized = "UNAUTHORIZED"

	// ErrorCodeUnavailable indicates a dependency is unavailable.
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"

	// ErrorCodeInternal indicates an internal server error.
	ErrorCodeInternal = "INTERNAL_ERROR"

	// ErrorCodeTimeout indicates the request timed out.
	ErrorCodeTimeout = "TIMEOUT"

	// ErrorCodeBadRequest indicates the request was malformed.
	ErrorCodeBadRequest = "BAD_REQUEST"
)

// NewErrorResponse creates a new error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithDetails creates an error response with additional details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound, ErrorCodeEmptyResult:
		return http.StatusNotFound
	case ErrorCodeConflict, ErrorCodeDuplicateContent, ErrorCodeInvalidTransition:
		return http.StatusConflict
	case ErrorCodeValidation, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeForbidden:
		return http.StatusForbidden
	case ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 Internal Server Error with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsEmptyResult(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeEmptyResult, err.Error())

	case domain.IsDuplicateContent(err):
		return http.StatusConflict, NewErrorResponse(ErrorCodeDuplicateContent, err.Error())

	case domain.IsInvalidTransition(err):
		return http.StatusConflict, NewErrorResponse(ErrorCodeInvalidTransition, err.Error())

	case domain.IsConflict(err):
		return http.StatusConflict, NewErrorResponse(ErrorCodeConflict, err.Error())

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())
		// Extract field details if available
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{
				validationErr.Field: validationErr.Message,
			}
		}

		return http.StatusBadRequest, resp

	case domain.IsUnauthorized(err):
		return http.StatusUnauthorized, NewErrorResponse(ErrorCodeUnauthorized, err.Error())

	case domain.IsForbidden(err):
		return http.StatusForbidden, NewErrorResponse(ErrorCodeForbidden, err.Error())

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, err.Error())

	default:
		// Unknown errors get a generic message to avoid leaking internals
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, "an internal error occurred")
	}
}

const (
	// ContextKeyTraceID is the gin context key a tracing middleware may
	// use to expose the trace ID.
	ContextKeyTraceID = "trace_id"

	headerRequestID = "X-Request-ID"
)

// GetTraceID returns an identifier for correlating this request with
// logs and traces: the OpenTelemetry trace ID when the request is being
// traced, otherwise the trace_id context key, otherwise the inbound
// X-Request-ID header.
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	if id, exists := c.Get(ContextKeyTraceID); exists {
		if s, ok := id.(string); ok {
			return s
		}

		return ""
	}

	return c.GetHeader(headerRequestID)
}

// HandleError writes a domain error as a JSON error response.
// It maps domain errors to HTTP responses and includes the trace ID if available.
func HandleError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	errResp.TraceID = GetTraceID(c)

	// Log internal errors with full details
	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("internal error",
			"error", err.Error(),
			"trace_id", errResp.TraceID,
		)
	}

	c.JSON(status, errResp)
}

// HandleErrorCode writes an error response with a specific error code.
// Use this for adapter-level errors (e.g., malformed requests) that
// don't originate from domain errors.
func HandleErrorCode(c *gin.Context, code, message string) {
	errResp := NewErrorResponse(code, message).WithTraceID(GetTraceID(c))

	c.JSON(HTTPStatusFromCode(code), errResp)
}

// HandleValidationErrors writes a 400 response with field-level validation errors.
func HandleValidationErrors(c *gin.Context, fieldErrors map[string]string) {
	errResp := NewErrorResponseWithDetails(
		ErrorCodeValidation,
		"request validation failed",
		fieldErrors,
	).WithTraceID(GetTraceID(c))

	c.JSON(http.StatusBadRequest, errResp)
}

// AbortWithError aborts the request chain and writes an error response.
// Use this in middleware when you want to stop further processing.
func AbortWithError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	errResp.TraceID = GetTraceID(c)

	c.AbortWithStatusJSON(status, errResp)
}

// AbortWithErrorCode aborts the request chain with a specific error code.
func AbortWithErrorCode(c *gin.Context, code, message string) {
	errResp := NewErrorResponse(code, message).WithTraceID(GetTraceID(c))

	c.AbortWithStatusJSON(HTTPStatusFromCode(code), errResp)
}
