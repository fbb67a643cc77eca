package sms_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/prilive-com/gobulksms/bd"
	"github.com/prilive-com/gobulksms/internal/testutil"
	"github.com/prilive-com/gobulksms/sms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	server := testutil.NewMockGateway(t)
	server.On("/smsapi", func(w http.ResponseWriter, r *http.Request) {
		testutil.ReplyHTTPStatus(w, http.StatusServiceUnavailable)
	})

	client := testutil.NewBreakerTestClient(t, server.BaseURL())

	req := sms.SendRequest{Numbers: []string{testutil.TestNumber}, Message: "hello"}

	// Two failures trip the aggressive breaker.
	_, err := client.Send(context.Background(), req)
	require.Error(t, err)
	assert.NotErrorIs(t, err, bd.ErrCircuitOpen)

	_, err = client.Send(context.Background(), req)
	require.Error(t, err)

	_, err = client.Send(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, bd.ErrCircuitOpen)

	assert.Equal(t, 2, server.CaptureCount(), "open breaker must short-circuit before the network")
}

func TestBreaker_GatewayRejectionsDoNotTrip(t *testing.T) {
	server := testutil.NewMockGateway(t)
	server.On("/smsapi", func(w http.ResponseWriter, r *http.Request) {
		testutil.ReplyCode(w, 1002)
	})

	client := testutil.NewBreakerTestClient(t, server.BaseURL())

	req := sms.SendRequest{Numbers: []string{testutil.TestNumber}, Message: "hello"}

	for i := 0; i < 5; i++ {
		_, err := client.Send(context.Background(), req)
		require.Error(t, err)
		assert.ErrorIs(t, err, bd.ErrSenderIDDisabled)
		assert.NotErrorIs(t, err, bd.ErrCircuitOpen)
	}

	assert.Equal(t, 5, server.CaptureCount(), "healthy gateway rejections must keep the circuit closed")
}

func TestBreaker_StopsRetryLoopWhenOpen(t *testing.T) {
	server := testutil.NewMockGateway(t)
	server.On("/smsapi", func(w http.ResponseWriter, r *http.Request) {
		testutil.ReplyHTTPStatus(w, http.StatusServiceUnavailable)
	})

	sleeper := &testutil.FakeSleeper{}
	client := testutil.NewBreakerTestClient(t, server.BaseURL(),
		sms.WithSleeper(sleeper), sms.WithRetries(5))

	// Attempt 1 and 2 hit the gateway and trip the breaker; attempt 3 is
	// rejected locally and ends the retry loop.
	_, err := client.Send(context.Background(), sms.SendRequest{
		Numbers: []string{testutil.TestNumber},
		Message: "hello",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, bd.ErrCircuitOpen)
	assert.NotErrorIs(t, err, bd.ErrMaxRetries)
	assert.Equal(t, 2, server.CaptureCount())
	assert.Equal(t, 2, sleeper.CallCount())
}
