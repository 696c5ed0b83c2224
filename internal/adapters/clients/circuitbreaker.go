package clients

import (
	"sync"
	"time"
)

// State represents the current state of the circuit breaker.
type State int

const (
	// StateClosed is the normal operating state. Requests are allowed through.
	StateClosed State = iota

	// StateOpen is the failing state. Requests are blocked to prevent cascading failures.
	StateOpen

	// StateHalfOpen is the recovery testing state. Limited requests are allowed to probe recovery.
	StateHalfOpen
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker behavior.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of consecutive failures before the circuit opens.
	MaxFailures int

	// Timeout is how long to wait in open state before transitioning to half-open.
	Timeout time.Duration

	// HalfOpenLimit is the number of consecutive successes in half-open state
	// required to close the circuit. It also caps how many probe requests may
	// be in flight at once while half-open.
	HalfOpenLimit int
}

// CircuitBreaker keeps the client from hammering an unhealthy backend.
//
// State transitions:
//   - Closed → Open: after MaxFailures consecutive failures
//   - Open → HalfOpen: once Timeout has passed since the last failure
//   - HalfOpen → Closed: after HalfOpenLimit consecutive successes
//   - HalfOpen → Open: on any failure
type CircuitBreaker struct {
	mu               sync.RWMutex
	state            State
	failures         int       // consecutive failures in closed state
	successes        int       // consecutive successes in half-open state
	halfOpenRequests int       // probe requests in flight while half-open
	lastFailure      time.Time // drives the open state timeout
	cfg              CircuitBreakerConfig

	// onStateChange is invoked after each transition, outside the lock
	// and in transition order.
	onStateChange func(from, to State)

	// now is overridable for tests.
	now func() time.Time
}

// NewCircuitBreaker creates a new circuit breaker with the given configuration.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		state: StateClosed,
		cfg:   cfg,
		now:   time.Now,
	}
}

// OnStateChange sets a callback invoked on every state transition,
// typically to log or count the flip.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onStateChange = fn
}

// Allow reports whether a request may proceed. In the open state it flips
// to half-open once the timeout has passed and admits a single probe; in
// the half-open state it admits at most HalfOpenLimit concurrent probes.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()

	var notify func()
	allowed := false

	switch cb.state {
	case StateClosed:
		allowed = true

	case StateOpen:
		if cb.now().Sub(cb.lastFailure) >= cb.cfg.Timeout {
			notify = cb.transitionTo(StateHalfOpen)
			cb.halfOpenRequests = 1
			allowed = true
		}

	case StateHalfOpen:
		if cb.halfOpenRequests < cb.cfg.HalfOpenLimit {
			cb.halfOpenRequests++
			allowed = true
		}
	}

	cb.mu.Unlock()

	if notify != nil {
		notify()
	}

	return allowed
}

// RecordSuccess records a successful request. Enough successes while
// half-open close the circuit.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()

	var notify func()

	switch cb.state {
	case StateClosed:
		cb.failures = 0

	case StateHalfOpen:
		cb.halfOpenRequests--
		cb.successes++
		if cb.successes >= cb.cfg.HalfOpenLimit {
			notify = cb.transitionTo(StateClosed)
		}
	}

	cb.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// RecordFailure records a failed request. Reaching MaxFailures while
// closed opens the circuit; any failure while half-open reopens it.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()

	var notify func()
	cb.lastFailure = cb.now()

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.cfg.MaxFailures {
			notify = cb.transitionTo(StateOpen)
		}

	case StateHalfOpen:
		cb.halfOpenRequests--
		notify = cb.transitionTo(StateOpen)
	}

	cb.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// transitionTo changes state and resets the streak counters. Must be
// called with the lock held. Returns the callback to run after the lock
// is released, or nil.
func (cb *CircuitBreaker) transitionTo(next State) func() {
	if cb.state == next {
		return nil
	}

	prev := cb.state
	cb.state = next
	cb.failures = 0
	cb.successes = 0

	if cb.onStateChange == nil {
		return nil
	}

	fn := cb.onStateChange
	return func() { fn(prev, next) }
}
