// Package domain contains core business entities and rules.
package domain

import (
	"strings"
	"time"
)

// QuoteStatus is the moderation state of a quote.
type QuoteStatus string

// Moderation states. A quote is created PENDING and moves to APPROVED or
// REJECTED exactly once; both are terminal.
const (
	StatusPending  QuoteStatus = "PENDING"
	StatusApproved QuoteStatus = "APPROVED"
	StatusRejected QuoteStatus = "REJECTED"
)

// ParseStatus converts a string into a QuoteStatus, accepting any case.
func ParseStatus(s string) (QuoteStatus, error) {
	switch QuoteStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", NewValidationErrorWithValue("status", "must be PENDING, APPROVED or REJECTED", s)
	}
}

// IsValid reports whether the status is one of the known moderation states.
func (s QuoteStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status permits no further transitions.
func (s QuoteStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Quote represents a submitted quotation and its moderation state.
// This is a domain entity - it has no knowledge of storage or transport.
type Quote struct {
	// ID is the unique identifier for this quote, assigned by the store.
	ID string

	// Content is the text of the quote, trimmed of surrounding whitespace.
	Content string

	// ContentHash is the deduplication digest of the normalized content.
	// It is unique across all quotes regardless of status.
	ContentHash string

	// Status is the moderation state.
	Status QuoteStatus

	// Source is a free-text provenance tag such as "api", "web_form",
	// or the name of an import file.
	Source string

	// SubmittedBy is an optional free-text attribution of the submitter.
	SubmittedBy string

	// CreatedAt is when the quote was created, in UTC.
	CreatedAt time.Time

	// VerifiedAt is when the quote was approved or rejected.
	// Zero until a moderation decision is made.
	VerifiedAt time.Time

	// VerifiedBy identifies the admin who made the moderation decision.
	VerifiedBy string
}

// Verified reports whether a moderation decision has been recorded.
func (q *Quote) Verified() bool {
	return !q.VerifiedAt.IsZero()
}
