package fetchcache

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Outcome classifies a single upstream attempt
type Outcome string

const (
	// OutcomeSuccess is a 2xx response
	OutcomeSuccess Outcome = "success"
	// OutcomeNotFound is a 404 response; never retried
	OutcomeNotFound Outcome = "not_found"
	// OutcomeRateLimited is a 429 response; retried after Retry-After
	OutcomeRateLimited Outcome = "rate_limited"
	// OutcomeTransient is any other failure; retried with linear backoff
	OutcomeTransient Outcome = "transient"
)

// Decision is what to do after one attempt
type Decision struct {
	Outcome Outcome
	// Wait is how long to sleep before the next attempt
	Wait time.Duration
}

// Retryable reports whether another attempt may follow
func (d Decision) Retryable() bool {
	return d.Outcome == OutcomeRateLimited || d.Outcome == OutcomeTransient
}

// RetryPolicy decides how upstream responses are retried. It performs no I/O.
type RetryPolicy struct {
	// MaxAttempts bounds the number of HTTP calls per fetch, rate-limited ones included
	MaxAttempts int
	// RetryAfterDefault applies when a 429 carries no usable Retry-After header
	RetryAfterDefault time.Duration
	// RetryAfterFloor is the minimum wait after a 429
	RetryAfterFloor time.Duration
	// BackoffStep is multiplied by the attempt number after a transient failure
	BackoffStep time.Duration
}

// DefaultRetryPolicy returns 4 attempts, a 2s Retry-After default and floor, and 500ms linear backoff
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       4,
		RetryAfterDefault: 2 * time.Second,
		RetryAfterFloor:   2 * time.Second,
		BackoffStep:       500 * time.Millisecond,
	}
}

// Decide classifies the response of attempt (1-based)
func (p RetryPolicy) Decide(statusCode int, retryAfter string, attempt int) Decision {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return Decision{Outcome: OutcomeSuccess}
	case statusCode == http.StatusNotFound:
		return Decision{Outcome: OutcomeNotFound}
	case statusCode == http.StatusTooManyRequests:
		return Decision{Outcome: OutcomeRateLimited, Wait: p.retryAfter(retryAfter)}
	default:
		return p.DecideTransportError(attempt)
	}
}

// DecideTransportError classifies an attempt that produced no response
func (p RetryPolicy) DecideTransportError(attempt int) Decision {
	return Decision{Outcome: OutcomeTransient, Wait: p.BackoffStep * time.Duration(max(attempt, 1))}
}

// retryAfter parses a Retry-After header given in seconds
func (p RetryPolicy) retryAfter(header string) time.Duration {
	wait := p.RetryAfterDefault
	if seconds, err := strconv.ParseFloat(strings.TrimSpace(header), 64); err == nil && !math.IsNaN(seconds) && !math.IsInf(seconds, 0) {
		wait = time.Duration(seconds * float64(time.Second))
	}
	return max(wait, p.RetryAfterFloor)
}
