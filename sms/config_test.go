package sms_test

import (
	"testing"
	"time"

	"github.com/prilive-com/gobulksms/sms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := sms.DefaultConfig()

	assert.Equal(t, "http://bulksmsbd.net/api", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryBaseWait)
	assert.Equal(t, 30*time.Second, cfg.RetryMaxWait)
	assert.Equal(t, 2.0, cfg.RetryFactor)
	assert.Equal(t, 10.0, cfg.GlobalRPS)
	assert.Equal(t, 5, cfg.GlobalBurst)
	assert.False(t, cfg.InsecureSkipVerify)
	assert.InDelta(t, 0.50, cfg.CostPerSMS, 1e-9)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("BULKSMS_API_KEY", "envkey123")
	t.Setenv("BULKSMS_SENDER_ID", "EnvSender")

	cfg, err := sms.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "envkey123", cfg.APIKey.Value())
	assert.Equal(t, "EnvSender", cfg.SenderID)
	assert.Equal(t, sms.DefaultConfig().BaseURL, cfg.BaseURL)
	assert.Equal(t, sms.DefaultConfig().MaxRetries, cfg.MaxRetries)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("BULKSMS_API_KEY", "envkey123")
	t.Setenv("BULKSMS_SENDER_ID", "EnvSender")
	t.Setenv("BULKSMS_BASE_URL", "https://gateway.example.com/api")
	t.Setenv("BULKSMS_TIMEOUT", "5s")
	t.Setenv("BULKSMS_GLOBAL_RPS", "25")
	t.Setenv("BULKSMS_GLOBAL_BURST", "12")
	t.Setenv("BULKSMS_MAX_RETRIES", "7")
	t.Setenv("BULKSMS_BACKOFF_BASE", "250ms")
	t.Setenv("BULKSMS_BACKOFF_MAX", "10s")
	t.Setenv("BULKSMS_BACKOFF_FACTOR", "3.5")
	t.Setenv("BULKSMS_BREAKER_MAX_REQUESTS", "9")
	t.Setenv("BULKSMS_BREAKER_INTERVAL", "45s")
	t.Setenv("BULKSMS_BREAKER_TIMEOUT", "15s")
	t.Setenv("BULKSMS_COST_PER_SMS", "0.65")
	t.Setenv("BULKSMS_INSECURE_SKIP_VERIFY", "true")

	cfg, err := sms.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://gateway.example.com/api", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 25.0, cfg.GlobalRPS)
	assert.Equal(t, 12, cfg.GlobalBurst)
	assert.Equal(t, 7, cfg.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryBaseWait)
	assert.Equal(t, 10*time.Second, cfg.RetryMaxWait)
	assert.Equal(t, 3.5, cfg.RetryFactor)
	assert.Equal(t, uint32(9), cfg.BreakerMaxRequests)
	assert.Equal(t, 45*time.Second, cfg.BreakerInterval)
	assert.Equal(t, 15*time.Second, cfg.BreakerTimeout)
	assert.InDelta(t, 0.65, cfg.CostPerSMS, 1e-9)
	assert.True(t, cfg.InsecureSkipVerify)
}

func TestLoadConfig_KeyNeverPrintsItself(t *testing.T) {
	t.Setenv("BULKSMS_API_KEY", "supersecret")
	t.Setenv("BULKSMS_SENDER_ID", "EnvSender")

	cfg, err := sms.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "[REDACTED]", cfg.APIKey.String())
	assert.Equal(t, "supersecret", cfg.APIKey.Value())
}
