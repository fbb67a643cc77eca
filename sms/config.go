package sms

import (
	"os"
	"strconv"
	"time"

	"github.com/prilive-com/gobulksms/bd"
)

// Config holds client configuration. Built once, never mutated after
// construction; a client holding it is safe to share across goroutines.
type Config struct {
	// Credentials
	APIKey   bd.SecretKey
	SenderID string

	// API settings
	BaseURL            string
	RequestTimeout     time.Duration
	KeepAlive          time.Duration
	MaxIdleConns       int
	IdleTimeout        time.Duration
	InsecureSkipVerify bool

	// Rate limiting
	GlobalRPS   float64
	GlobalBurst int

	// Circuit breaker
	BreakerMaxRequests uint32
	BreakerInterval    time.Duration
	BreakerTimeout     time.Duration

	// Retry settings
	MaxRetries    int
	RetryBaseWait time.Duration
	RetryMaxWait  time.Duration
	RetryFactor   float64

	// Cost estimation
	CostPerSMS float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:            "http://bulksmsbd.net/api",
		RequestTimeout:     30 * time.Second,
		KeepAlive:          30 * time.Second,
		MaxIdleConns:       100,
		IdleTimeout:        90 * time.Second,
		GlobalRPS:          10,
		GlobalBurst:        5,
		BreakerMaxRequests: 5,
		BreakerInterval:    60 * time.Second,
		BreakerTimeout:     30 * time.Second,
		MaxRetries:         3,
		RetryBaseWait:      500 * time.Millisecond,
		RetryMaxWait:       30 * time.Second,
		RetryFactor:        2.0,
		CostPerSMS:         0.50, // BDT, non-masking rate
	}
}

// LoadConfig loads configuration from BULKSMS_* environment variables.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	cfg.APIKey = bd.SecretKey(getEnv("BULKSMS_API_KEY", ""))
	cfg.SenderID = getEnv("BULKSMS_SENDER_ID", "")

	if url := getEnv("BULKSMS_BASE_URL", ""); url != "" {
		cfg.BaseURL = url
	}

	if d, err := time.ParseDuration(getEnv("BULKSMS_TIMEOUT", "30s")); err == nil {
		cfg.RequestTimeout = d
	}

	if f, err := strconv.ParseFloat(getEnv("BULKSMS_GLOBAL_RPS", "10"), 64); err == nil {
		cfg.GlobalRPS = f
	}

	if i, err := strconv.Atoi(getEnv("BULKSMS_GLOBAL_BURST", "5")); err == nil {
		cfg.GlobalBurst = i
	}

	if i, err := strconv.ParseUint(getEnv("BULKSMS_BREAKER_MAX_REQUESTS", "5"), 10, 32); err == nil {
		cfg.BreakerMaxRequests = uint32(i)
	}

	if d, err := time.ParseDuration(getEnv("BULKSMS_BREAKER_INTERVAL", "60s")); err == nil {
		cfg.BreakerInterval = d
	}

	if d, err := time.ParseDuration(getEnv("BULKSMS_BREAKER_TIMEOUT", "30s")); err == nil {
		cfg.BreakerTimeout = d
	}

	if i, err := strconv.Atoi(getEnv("BULKSMS_MAX_RETRIES", "3")); err == nil {
		cfg.MaxRetries = i
	}

	if d, err := time.ParseDuration(getEnv("BULKSMS_BACKOFF_BASE", "500ms")); err == nil {
		cfg.RetryBaseWait = d
	}

	if d, err := time.ParseDuration(getEnv("BULKSMS_BACKOFF_MAX", "30s")); err == nil {
		cfg.RetryMaxWait = d
	}

	if f, err := strconv.ParseFloat(getEnv("BULKSMS_BACKOFF_FACTOR", "2.0"), 64); err == nil {
		cfg.RetryFactor = f
	}

	if f, err := strconv.ParseFloat(getEnv("BULKSMS_COST_PER_SMS", "0.50"), 64); err == nil {
		cfg.CostPerSMS = f
	}

	cfg.InsecureSkipVerify = getEnv("BULKSMS_INSECURE_SKIP_VERIFY", "false") == "true"

	return &cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
