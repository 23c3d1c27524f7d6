package fetchcache

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy_Decide(t *testing.T) {
	policy := DefaultRetryPolicy()

	tests := []struct {
		name       string
		status     int
		retryAfter string
		attempt    int
		expected   Decision
	}{
		{name: "200 ok", status: http.StatusOK, attempt: 1, expected: Decision{Outcome: OutcomeSuccess}},
		{name: "204 no content", status: http.StatusNoContent, attempt: 2, expected: Decision{Outcome: OutcomeSuccess}},
		{name: "404 not found", status: http.StatusNotFound, attempt: 1, expected: Decision{Outcome: OutcomeNotFound}},
		{name: "429 honours retry-after", status: http.StatusTooManyRequests, retryAfter: "5", attempt: 1, expected: Decision{Outcome: OutcomeRateLimited, Wait: 5 * time.Second}},
		{name: "429 fractional retry-after", status: http.StatusTooManyRequests, retryAfter: "2.5", attempt: 1, expected: Decision{Outcome: OutcomeRateLimited, Wait: 2500 * time.Millisecond}},
		{name: "429 retry-after below floor", status: http.StatusTooManyRequests, retryAfter: "1", attempt: 1, expected: Decision{Outcome: OutcomeRateLimited, Wait: 2 * time.Second}},
		{name: "429 negative retry-after", status: http.StatusTooManyRequests, retryAfter: "-3", attempt: 1, expected: Decision{Outcome: OutcomeRateLimited, Wait: 2 * time.Second}},
		{name: "429 missing retry-after", status: http.StatusTooManyRequests, attempt: 3, expected: Decision{Outcome: OutcomeRateLimited, Wait: 2 * time.Second}},
		{name: "429 unparsable retry-after", status: http.StatusTooManyRequests, retryAfter: "Wed, 21 Oct 2015 07:28:00 GMT", attempt: 1, expected: Decision{Outcome: OutcomeRateLimited, Wait: 2 * time.Second}},
		{name: "500 first attempt", status: http.StatusInternalServerError, attempt: 1, expected: Decision{Outcome: OutcomeTransient, Wait: 500 * time.Millisecond}},
		{name: "503 third attempt", status: http.StatusServiceUnavailable, attempt: 3, expected: Decision{Outcome: OutcomeTransient, Wait: 1500 * time.Millisecond}},
		{name: "401 is transient", status: http.StatusUnauthorized, attempt: 2, expected: Decision{Outcome: OutcomeTransient, Wait: time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, policy.Decide(tt.status, tt.retryAfter, tt.attempt))
		})
	}
}

func TestRetryPolicy_DecideTransportError(t *testing.T) {
	policy := DefaultRetryPolicy()

	d := policy.DecideTransportError(2)
	assert.Equal(t, OutcomeTransient, d.Outcome)
	assert.Equal(t, time.Second, d.Wait)
	assert.True(t, d.Retryable())

	assert.Equal(t, 500*time.Millisecond, policy.DecideTransportError(0).Wait)
}

func TestDecision_Retryable(t *testing.T) {
	assert.False(t, Decision{Outcome: OutcomeSuccess}.Retryable())
	assert.False(t, Decision{Outcome: OutcomeNotFound}.Retryable())
	assert.True(t, Decision{Outcome: OutcomeRateLimited}.Retryable())
	assert.True(t, Decision{Outcome: OutcomeTransient}.Retryable())
}
