package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGateway_CapturesRequests(t *testing.T) {
	server := NewMockGateway(t)
	server.On("/smsapi", func(w http.ResponseWriter, r *http.Request) {
		ReplyCode(w, 1007)
	})

	resp, err := http.PostForm(server.BaseURL()+"/smsapi", map[string][]string{
		"api_key": {TestAPIKey},
		"number":  {TestNumberIntl},
	})
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, 1, server.CaptureCount())
	capture := server.LastCapture()
	assert.Equal(t, "/smsapi", capture.Path)
	assert.Equal(t, TestAPIKey, capture.Form().Get("api_key"))
	assert.Equal(t, TestNumberIntl, capture.Form().Get("number"))
}

func TestMockGateway_DefaultsToSuccess(t *testing.T) {
	server := NewMockGateway(t)

	resp, err := http.Get(server.BaseURL() + "/getBalanceApi?api_key=" + TestAPIKey)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, TestAPIKey, server.LastCapture().Query.Get("api_key"))
}

func TestFakeSleeper_RecordsWithoutSleeping(t *testing.T) {
	sleeper := &FakeSleeper{}

	start := time.Now()
	require.NoError(t, sleeper.Sleep(context.Background(), time.Hour))
	require.NoError(t, sleeper.Sleep(context.Background(), 2*time.Hour))
	assert.Less(t, time.Since(start), time.Second)

	assert.Equal(t, 2, sleeper.CallCount())
	assert.Equal(t, time.Hour, sleeper.CallAt(0))
	assert.Equal(t, 2*time.Hour, sleeper.LastCall())
}

func TestFakeSleeper_CancelledContext(t *testing.T) {
	sleeper := &FakeSleeper{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, sleeper.Sleep(ctx, time.Second))
	assert.Equal(t, 0, sleeper.CallCount())
}
