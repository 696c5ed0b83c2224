// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/gRPC/etc by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateContent indicates a quote with the same content hash
	// already exists.
	ErrDuplicateContent = errors.New("duplicate content")

	// ErrInvalidTransition indicates a moderation decision was attempted
	// on a quote that is no longer PENDING.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflict indicates a state conflict such as duplicate entry or version mismatch.
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates business rule validation failed.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates the caller presented no credential or an
	// invalid one.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the operation is not permitted by business rules.
	ErrForbidden = errors.New("forbidden")

	// ErrEmptyResult indicates a selection over an empty set, such as a
	// random pick when no approved quotes exist.
	ErrEmptyResult = errors.New("empty result")

	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")
)

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// DuplicateContentError provides context for duplicate submissions.
type DuplicateContentError struct {
	ContentHash string
}

// Error implements the error interface.
func (e *DuplicateContentError) Error() string {
	if e.ContentHash != "" {
		return fmt.Sprintf("quote with content hash %q already exists", e.ContentHash)
	}

	return "quote with identical content already exists"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *DuplicateContentError) Unwrap() error {
	return ErrDuplicateContent
}

// NewDuplicateContentError creates a duplicate content error with context.
func NewDuplicateContentError(contentHash string) error {
	return &DuplicateContentError{ContentHash: contentHash}
}

// InvalidTransitionError provides context for rejected status transitions.
type InvalidTransitionError struct {
	ID        string
	Current   QuoteStatus
	Requested QuoteStatus
}

// Error implements the error interface.
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("quote %q is %s, cannot transition to %s", e.ID, e.Current, e.Requested)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NewInvalidTransitionError creates an invalid transition error with context.
func NewInvalidTransitionError(id string, current, requested QuoteStatus) error {
	return &InvalidTransitionError{ID: id, Current: current, Requested: requested}
}

// ConflictError provides context for conflict errors.
type ConflictError struct {
	Entity  string
	Reason  string
	Details string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s conflict: %s (%s)", e.Entity, e.Reason, e.Details)
	}

	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError creates a conflict error with context.
func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// NewConflictErrorWithDetails creates a conflict error with additional details.
func NewConflictErrorWithDetails(entity, reason, details string) error {
	return &ConflictError{Entity: entity, Reason: reason, Details: details}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error including the invalid value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// UnauthorizedError provides context for failed authentication.
type UnauthorizedError struct {
	Reason string
}

// Error implements the error interface.
func (e *UnauthorizedError) Error() string {
	if e.Reason != "" {
		return "unauthorized: " + e.Reason
	}

	return "unauthorized"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// NewUnauthorizedError creates an unauthorized error with context.
func NewUnauthorizedError(reason string) error {
	return &UnauthorizedError{Reason: reason}
}

// ForbiddenError provides context for forbidden errors.
type ForbiddenError struct {
	Operation string
	Reason    string
}

// Error implements the error interface.
func (e *ForbiddenError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("operation %q forbidden: %s", e.Operation, e.Reason)
	}

	return fmt.Sprintf("operation %q forbidden", e.Operation)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// NewForbiddenError creates a forbidden error with context.
func NewForbiddenError(operation, reason string) error {
	return &ForbiddenError{Operation: operation, Reason: reason}
}

// EmptyResultError provides context for selections over an empty set.
type EmptyResultError struct {
	Selection string
}

// Error implements the error interface.
func (e *EmptyResultError) Error() string {
	if e.Selection != "" {
		return "no quotes available for " + e.Selection
	}

	return "no quotes available"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *EmptyResultError) Unwrap() error {
	return ErrEmptyResult
}

// NewEmptyResultError creates an empty result error with context.
func NewEmptyResultError(selection string) error {
	return &EmptyResultError{Selection: selection}
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateContent checks if an error is a duplicate content error.
func IsDuplicateContent(err error) bool {
	return errors.Is(err, ErrDuplicateContent)
}

// IsInvalidTransition checks if an error is an invalid transition error.
func IsInvalidTransition(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}

// IsUnauthorized checks if an error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsEmptyResult checks if an error is an empty result error.
func IsEmptyResult(err error) bool {
	return errors.Is(err, ErrEmptyResult)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsForbidden checks if an error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
