package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"

	"github.com/mortalnow/dan-s-bullshit/internal/adapters/clients"
	"github.com/mortalnow/dan-s-bullshit/internal/domain"
)

// ErrorResponse is the error envelope external services answer with. Both
// shapes seen in the wild are handled: nested (error.code/error.message)
// and flat (code/message at the top level).
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorDetail is the nested form's payload.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// GetCode returns the code from whichever shape the envelope used.
func (e *ErrorResponse) GetCode() string {
	if e.Error.Code != "" {
		return e.Error.Code
	}

	return e.Code
}

// GetMessage returns the message from whichever shape the envelope used.
func (e *ErrorResponse) GetMessage() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}

	return e.Message
}

// Error codes external services put in their envelopes.
const (
	ExternalCodeNotFound     = "NOT_FOUND"
	ExternalCodeConflict     = "CONFLICT"
	ExternalCodeValidation   = "VALIDATION_ERROR"
	ExternalCodeForbidden    = "FORBIDDEN"
	ExternalCodeUnauthorized = "UNAUTHORIZED"
)

// ParseErrorResponse decodes an error envelope from body. It returns nil
// when the body is missing, unparsable, or carries neither a code nor a
// message, so callers can fall back to status-derived messages.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.GetCode() == "" && errResp.GetMessage() == "" {
		return nil
	}

	return &errResp
}

// MapHTTPError turns an external service's answer into a domain error.
// Transport-level failures (open breaker, spent retry budget) take
// precedence over the response; otherwise the status code decides, with a
// parsed error envelope supplying the message. A 2xx response maps to nil.
//
// Not-found responses map to a NotFoundError naming the service. Adapters
// that know which entity was addressed should re-wrap with the entity and ID.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	var errResp *ErrorResponse
	if resp.Body != nil {
		errResp = ParseErrorResponse(resp.Body)
	}

	return mapStatusCode(resp.StatusCode, errResp, serviceName, operation)
}

// mapClientError covers failures where no response ever arrived. All of
// them read as the downstream being unavailable; the operation names what
// was being attempted.
func mapClientError(err error, serviceName, operation string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("circuit breaker open during %s", operation))

	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("max retries exceeded during %s", operation))

	default:
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s failed: %v", operation, err))
	}
}

// mapStatusCode translates one HTTP status into a domain error.
func mapStatusCode(status int, errResp *ErrorResponse, serviceName, operation string) error {
	message := defaultMessageForStatus(status, operation)
	if errResp != nil && errResp.GetMessage() != "" {
		message = errResp.GetMessage()
	}

	switch status {
	case http.StatusNotFound:
		return domain.NewNotFoundError(serviceName, "")

	case http.StatusConflict:
		return domain.NewConflictError(serviceName, message)

	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		// Surface the first field alphabetically so repeated failures
		// produce the same error.
		if errResp != nil && len(errResp.Error.Details) > 0 {
			field := slices.Min(slices.Collect(maps.Keys(errResp.Error.Details)))
			return domain.NewValidationError(field, errResp.Error.Details[field])
		}

		return domain.NewValidationError("", message)

	case http.StatusForbidden:
		return domain.NewForbiddenError(operation, message)

	case http.StatusUnauthorized:
		return domain.NewForbiddenError(operation, "authentication required")

	case http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")

	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return domain.NewUnavailableError(serviceName, message)

	default:
		if status >= http.StatusInternalServerError {
			return domain.NewUnavailableError(serviceName, message)
		}
		// Remaining 4xx statuses read as the request being at fault.
		return domain.NewValidationError("", message)
	}
}

// defaultMessageForStatus fills in a message when the envelope had none.
func defaultMessageForStatus(status int, operation string) string {
	switch status {
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusConflict:
		return "resource conflict"
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusForbidden:
		return "access denied"
	case http.StatusUnauthorized:
		return "authentication required"
	case http.StatusTooManyRequests:
		return "rate limit exceeded"
	case http.StatusServiceUnavailable:
		return "service temporarily unavailable"
	default:
		return fmt.Sprintf("%s failed with status %d", operation, status)
	}
}

// MapExternalCode maps a service's envelope code to a domain error, for
// downstreams whose codes say more than their statuses do.
func MapExternalCode(code, message, serviceName, operation string) error {
	switch code {
	case ExternalCodeNotFound:
		return domain.NewNotFoundError(serviceName, "")
	case ExternalCodeConflict:
		return domain.NewConflictError(serviceName, message)
	case ExternalCodeValidation:
		return domain.NewValidationError("", message)
	case ExternalCodeForbidden:
		return domain.NewForbiddenError(operation, message)
	case ExternalCodeUnauthorized:
		return domain.NewForbiddenError(operation, "authentication required")
	default:
		return domain.NewUnavailableError(serviceName, message)
	}
}
