// Package clients provides the instrumented HTTP client the cloud quote
// store is built on.
package clients

import "errors"

// Transport-layer sentinels. Callers translate these into domain errors;
// the acl package maps both to UnavailableError.
var (
	// ErrCircuitOpen is returned without attempting the request while the
	// circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded is returned once the retry budget is spent,
	// with the last attempt's error in its message.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
