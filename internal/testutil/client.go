package testutil

import (
	"testing"
	"time"

	"github.com/prilive-com/gobulksms/sms"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/require"
)

// CircuitBreakerNeverTrip returns settings where breaker never opens.
// Use for retry tests that need to verify retry behavior without breaker interference.
func CircuitBreakerNeverTrip() sms.CircuitBreakerSettings {
	return sms.CircuitBreakerSettings{
		MaxRequests: 100,
		Interval:    0,
		Timeout:     time.Hour,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return false // Never trip
		},
	}
}

// CircuitBreakerAggressiveTrip returns settings for testing breaker behavior.
// Trips after just 2 consecutive failures.
func CircuitBreakerAggressiveTrip() sms.CircuitBreakerSettings {
	return sms.CircuitBreakerSettings{
		MaxRequests: 1,
		Interval:    0,
		Timeout:     2 * time.Second, // Long enough to stay open during test assertions
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	}
}

// NewRetryTestClient creates a client for testing retry behavior.
// Circuit breaker is configured to never trip.
func NewRetryTestClient(t *testing.T, baseURL string, sleeper *FakeSleeper, opts ...sms.Option) *sms.Client {
	t.Helper()

	defaultOpts := []sms.Option{
		sms.WithBaseURL(baseURL),
		sms.WithCircuitBreakerSettings(CircuitBreakerNeverTrip()),
		sms.WithRateLimit(1000, 1000), // Rate limiting out of the way
	}

	if sleeper != nil {
		defaultOpts = append(defaultOpts, sms.WithSleeper(sleeper))
	}

	client, err := sms.New(TestAPIKey, TestSenderID, append(defaultOpts, opts...)...)
	require.NoError(t, err)

	t.Cleanup(func() { client.Close() })
	return client
}

// NewBreakerTestClient creates a client for testing circuit breaker behavior.
// Circuit breaker trips aggressively for fast testing.
func NewBreakerTestClient(t *testing.T, baseURL string, opts ...sms.Option) *sms.Client {
	t.Helper()

	defaultOpts := []sms.Option{
		sms.WithBaseURL(baseURL),
		sms.WithCircuitBreakerSettings(CircuitBreakerAggressiveTrip()),
		sms.WithRateLimit(1000, 1000),
		sms.WithRetries(0), // No retries - test breaker directly
	}

	client, err := sms.New(TestAPIKey, TestSenderID, append(defaultOpts, opts...)...)
	require.NoError(t, err)

	t.Cleanup(func() { client.Close() })
	return client
}

// NewTestClient creates a standard test client with sensible defaults.
func NewTestClient(t *testing.T, baseURL string, opts ...sms.Option) *sms.Client {
	t.Helper()

	defaultOpts := []sms.Option{
		sms.WithBaseURL(baseURL),
		sms.WithRateLimit(1000, 1000),
		sms.WithRetries(0), // No retries by default for simple tests
	}

	client, err := sms.New(TestAPIKey, TestSenderID, append(defaultOpts, opts...)...)
	require.NoError(t, err)

	t.Cleanup(func() { client.Close() })
	return client
}
