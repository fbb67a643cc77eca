package sms

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/big"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/prilive-com/gobulksms/bd"
	"github.com/prilive-com/gobulksms/internal/httpclient"
	"github.com/prilive-com/gobulksms/internal/scrub"
)

// Gateway endpoints, relative to Config.BaseURL. Field names and paths
// follow the provider contract exactly.
const (
	endpointSMS     = "/smsapi"
	endpointSMSMany = "/smsapimany"
	endpointBalance = "/getBalanceApi"

	maxResponseSize = 1 << 20 // 1MB
)

// Sleeper abstracts time-based waiting for testing.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// realSleeper uses actual time.
type realSleeper struct{}

func (realSleeper) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// CircuitBreakerSettings configures the circuit breaker behavior.
type CircuitBreakerSettings struct {
	// MaxRequests is the maximum number of requests allowed in half-open state.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state.
	// If 0, internal counts never reset in closed state.
	Interval time.Duration

	// Timeout is the duration of the open state before transitioning to half-open.
	Timeout time.Duration

	// ReadyToTrip determines if breaker should trip based on failure counts.
	// If nil, uses default (50% failure rate after 3 requests).
	ReadyToTrip func(counts gobreaker.Counts) bool
}

// DefaultCircuitBreakerSettings returns production-ready defaults.
func DefaultCircuitBreakerSettings() CircuitBreakerSettings {
	return CircuitBreakerSettings{
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 3 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= 0.5
		},
	}
}

// Client is the core BulkSMSBD gateway client. Each call is a one-shot
// validate, dispatch, classify sequence; the only state is the
// immutable config and the resilience plumbing around it.
type Client struct {
	config          Config
	httpClient      *http.Client
	logger          *slog.Logger
	limiter         *rate.Limiter
	breaker         *gobreaker.CircuitBreaker[*gatewayResponse]
	breakerSettings CircuitBreakerSettings
	sleeper         Sleeper // For testing retry logic
}

// gatewayResponse is the provider's response envelope. Legacy replies
// are plain text and decode into Message with a zero Code.
type gatewayResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Balance json.Number `json:"balance"`
}

// Option configures the Client.
type Option func(*Client)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithBaseURL sets the gateway base URL (useful for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.config.BaseURL = url
	}
}

// WithRetries sets the maximum number of retry attempts.
func WithRetries(max int) Option {
	return func(c *Client) {
		c.config.MaxRetries = max
	}
}

// WithRateLimit sets gateway rate limiting parameters.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		c.config.GlobalRPS = rps
		c.config.GlobalBurst = burst
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithSleeper sets a custom sleeper for retry timing (useful for testing).
func WithSleeper(s Sleeper) Option {
	return func(c *Client) {
		c.sleeper = s
	}
}

// WithCircuitBreakerSettings configures the circuit breaker.
func WithCircuitBreakerSettings(settings CircuitBreakerSettings) Option {
	return func(c *Client) {
		c.breakerSettings = settings
	}
}

// New creates a Client for the given credentials. A missing API key or
// an invalid sender ID fails here with a *bd.ConfigError, before any
// network call.
func New(apiKey, senderID string, opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.APIKey = bd.SecretKey(apiKey)
	cfg.SenderID = senderID
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig creates a Client from a Config.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey.IsEmpty() {
		return nil, bd.NewConfigError("api_key",
			"is required; set BULKSMS_API_KEY or pass it to New")
	}
	if cfg.SenderID == "" {
		return nil, bd.NewConfigError("sender_id",
			"is required; set BULKSMS_SENDER_ID or pass it to New")
	}
	if err := bd.ValidateSenderID(cfg.SenderID); err != nil {
		return nil, bd.NewConfigError("sender_id", err.Error())
	}

	c := &Client{config: cfg}

	// Apply options
	for _, opt := range opts {
		opt(c)
	}

	// Default logger
	if c.logger == nil {
		c.logger = slog.Default()
	}

	// Default HTTP client
	if c.httpClient == nil {
		hc := httpclient.DefaultConfig()
		hc.RequestTimeout = c.config.RequestTimeout
		hc.KeepAlive = c.config.KeepAlive
		hc.MaxIdleConns = c.config.MaxIdleConns
		hc.IdleTimeout = c.config.IdleTimeout
		hc.InsecureSkipVerify = c.config.InsecureSkipVerify
		c.httpClient = httpclient.New(hc)
	}

	// Default rate limiter
	if c.limiter == nil {
		c.limiter = rate.NewLimiter(rate.Limit(c.config.GlobalRPS), c.config.GlobalBurst)
	}

	// Default sleeper
	if c.sleeper == nil {
		c.sleeper = realSleeper{}
	}

	// Default circuit breaker settings
	if c.breakerSettings.ReadyToTrip == nil {
		c.breakerSettings = CircuitBreakerSettings{
			MaxRequests: c.config.BreakerMaxRequests,
			Interval:    c.config.BreakerInterval,
			Timeout:     c.config.BreakerTimeout,
			ReadyToTrip: DefaultCircuitBreakerSettings().ReadyToTrip,
		}
	}

	c.breaker = gobreaker.NewCircuitBreaker[*gatewayResponse](gobreaker.Settings{
		Name:         "gobulksms",
		MaxRequests:  c.breakerSettings.MaxRequests,
		Interval:     c.breakerSettings.Interval,
		Timeout:      c.breakerSettings.Timeout,
		ReadyToTrip:  c.breakerSettings.ReadyToTrip,
		IsSuccessful: isBreakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Info("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return c, nil
}

// Close releases resources used by the client. In-flight requests
// complete normally or with context errors.
func (c *Client) Close() error {
	if t, ok := c.httpClient.Transport.(*http.Transport); ok {
		t.CloseIdleConnections()
	}
	return nil
}

// SenderID returns the default sender ID.
func (c *Client) SenderID() string { return c.config.SenderID }

// CostPerSMS returns the configured per-SMS cost estimate.
func (c *Client) CostPerSMS() float64 { return c.config.CostPerSMS }

// Send dispatches one message body to one or more recipients through
// the smsapi endpoint. All recipients are validated before any network
// I/O; the batch succeeds or fails atomically with a single gateway
// code.
func (c *Client) Send(ctx context.Context, req SendRequest) (*bd.SendReceipt, error) {
	if err := bd.ValidateMessage(req.Message); err != nil {
		return nil, err
	}
	senderID, err := c.resolveSenderID(req.SenderID)
	if err != nil {
		return nil, err
	}
	numbers, err := bd.ParsePhones(req.Numbers)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("api_key", c.config.APIKey.Value())
	form.Set("senderid", senderID)
	form.Set("number", bd.JoinPhones(numbers))
	form.Set("message", req.Message)

	c.logger.Info("sending SMS",
		"endpoint", endpointSMS,
		"recipients", len(numbers),
		"parts", bd.MessageParts(req.Message),
	)

	resp, err := withRetry(c, ctx, func() (*gatewayResponse, error) {
		return c.execute(ctx, http.MethodPost, endpointSMS, form)
	})
	if err != nil {
		return nil, err
	}

	return c.receipt(endpointSMS, resp, numbers, bd.MessageParts(req.Message))
}

// SendMany dispatches distinct recipient/body pairs as one batch
// through the smsapimany endpoint. The gateway answers with a single
// code for the whole batch; partial failure is not reported.
func (c *Client) SendMany(ctx context.Context, req SendManyRequest) (*bd.SendReceipt, error) {
	if len(req.Messages) == 0 {
		return nil, bd.NewValidationError("messages", "cannot be empty")
	}
	senderID, err := c.resolveSenderID(req.SenderID)
	if err != nil {
		return nil, err
	}

	numbers := make([]bd.PhoneNumber, 0, len(req.Messages))
	maxParts := 1
	payload := make([]Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		n, err := bd.ParsePhone(m.To)
		if err != nil {
			return nil, err
		}
		if err := bd.ValidateMessage(m.Message); err != nil {
			return nil, err
		}
		if p := bd.MessageParts(m.Message); p > maxParts {
			maxParts = p
		}
		numbers = append(numbers, n)
		payload = append(payload, Message{To: n.String(), Message: m.Message})
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("gobulksms: failed to encode batch: %w", err)
	}

	form := url.Values{}
	form.Set("api_key", c.config.APIKey.Value())
	form.Set("senderid", senderID)
	form.Set("messages", string(encoded))

	c.logger.Info("sending bulk SMS",
		"endpoint", endpointSMSMany,
		"recipients", len(numbers),
	)

	resp, err := withRetry(c, ctx, func() (*gatewayResponse, error) {
		return c.execute(ctx, http.MethodPost, endpointSMSMany, form)
	})
	if err != nil {
		return nil, err
	}

	return c.receipt(endpointSMSMany, resp, numbers, maxParts)
}

// Balance queries the account balance.
func (c *Client) Balance(ctx context.Context) (*bd.Balance, error) {
	params := url.Values{}
	params.Set("api_key", c.config.APIKey.Value())

	resp, err := withRetry(c, ctx, func() (*gatewayResponse, error) {
		return c.execute(ctx, http.MethodGet, endpointBalance, params)
	})
	if err != nil {
		return nil, err
	}

	if resp.Code != 0 && resp.Code != bd.CodeSuccess {
		return nil, bd.NewAPIError(strings.TrimPrefix(endpointBalance, "/"), resp.Code, resp.Message)
	}

	balance := &bd.Balance{Currency: "BDT"}
	if resp.Balance != "" {
		amount, err := resp.Balance.Float64()
		if err != nil {
			return nil, fmt.Errorf("gobulksms: unparseable balance %q: %w", resp.Balance.String(), err)
		}
		balance.Amount = amount
	}
	return balance, nil
}

// receipt classifies a gateway envelope into a success receipt or a
// typed API error. Code 202 is the only success code; a missing code
// (legacy plain-text reply) passes through as-is.
func (c *Client) receipt(endpoint string, resp *gatewayResponse, numbers []bd.PhoneNumber, parts int) (*bd.SendReceipt, error) {
	name := strings.TrimPrefix(endpoint, "/")
	if resp.Code != 0 && resp.Code != bd.CodeSuccess {
		return nil, bd.NewAPIError(name, resp.Code, resp.Message)
	}
	return &bd.SendReceipt{
		Code:       resp.Code,
		Message:    resp.Message,
		Recipients: numbers,
		Parts:      parts,
	}, nil
}

func (c *Client) resolveSenderID(override string) (string, error) {
	senderID := override
	if senderID == "" {
		senderID = c.config.SenderID
	}
	if err := bd.ValidateSenderID(senderID); err != nil {
		return "", err
	}
	return senderID, nil
}

// execute runs one attempt through the rate limiter and the breaker.
func (c *Client) execute(ctx context.Context, method, endpoint string, form url.Values) (*gatewayResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.breaker.Execute(func() (*gatewayResponse, error) {
		return c.doRequest(ctx, method, endpoint, form)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w", bd.ErrCircuitOpen, err)
		}
		return nil, err
	}
	return resp, nil
}

// doRequest issues a single HTTP attempt and decodes the envelope.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, form url.Values) (*gatewayResponse, error) {
	var req *http.Request
	var err error

	if method == http.MethodGet {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet,
			c.config.BaseURL+endpoint+"?"+form.Encode(), nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost,
			c.config.BaseURL+endpoint, strings.NewReader(form.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("gobulksms: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gobulksms: request failed: %w", scrub.KeyFromError(err, c.config.APIKey))
	}
	defer resp.Body.Close()

	// Read maxResponseSize+1 to detect overflow without a false positive.
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("gobulksms: failed to read response: %w", scrub.KeyFromError(err, c.config.APIKey))
	}
	if int64(len(body)) > maxResponseSize {
		return nil, bd.ErrResponseTooLarge
	}

	if resp.StatusCode >= 400 {
		return nil, &bd.HTTPError{
			Status:   resp.StatusCode,
			Endpoint: strings.TrimPrefix(endpoint, "/"),
			Body:     strings.TrimSpace(string(body)),
		}
	}

	var gw gatewayResponse
	if err := json.Unmarshal(body, &gw); err != nil {
		// The gateway occasionally answers with bare text.
		gw = gatewayResponse{Message: strings.TrimSpace(string(body))}
	}

	c.logger.Debug("gateway response",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"code", gw.Code,
	)

	return &gw, nil
}

func withRetry[T any](c *Client, ctx context.Context, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		// A cancelled caller stops everything; a timed-out attempt is
		// retryable as long as the caller context is still live.
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		// Non-retryable errors return immediately (not wrapped in ErrMaxRetries)
		if !isRetryable(err) {
			return zero, err
		}

		if attempt >= c.config.MaxRetries {
			break
		}

		backoff := calculateBackoff(c.config, attempt+1)
		c.logger.Warn("gateway request failed, retrying",
			"attempt", attempt+1,
			"max_retries", c.config.MaxRetries,
			"backoff", backoff,
			"error", err,
		)

		if err := c.sleeper.Sleep(ctx, backoff); err != nil {
			return zero, err
		}
	}

	return zero, fmt.Errorf("%w: %w", bd.ErrMaxRetries, lastErr)
}

// isRetryable reserves retries for transport-level failures. Gateway
// rejections are deterministic and never retried.
func isRetryable(err error) bool {
	if errors.Is(err, bd.ErrCircuitOpen) {
		return false
	}

	var apiErr *bd.APIError
	if errors.As(err, &apiErr) {
		return false
	}

	var httpErr *bd.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.IsRetryable()
	}

	// Dial failures, DNS errors, per-attempt timeouts.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return false
}

// calculateBackoff grows the wait exponentially with crypto jitter,
// capped at RetryMaxWait.
func calculateBackoff(cfg Config, attempt int) time.Duration {
	backoff := float64(cfg.RetryBaseWait) * math.Pow(cfg.RetryFactor, float64(attempt-1))
	if backoff > float64(cfg.RetryMaxWait) {
		backoff = float64(cfg.RetryMaxWait)
	}

	// Add jitter
	jitterRange := int64(backoff * 0.2)
	if jitterRange > 0 {
		jitter, err := rand.Int(rand.Reader, big.NewInt(jitterRange*2))
		if err == nil {
			backoff += float64(jitter.Int64()) - float64(jitterRange)
		}
	}

	return time.Duration(backoff)
}

// isBreakerSuccess determines if an error should count as a circuit
// breaker failure. A well-formed gateway rejection means the gateway is
// healthy; only transport failures and 429/5xx statuses trip the
// breaker.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *bd.APIError
	if errors.As(err, &apiErr) {
		return true
	}
	var httpErr *bd.HTTPError
	if errors.As(err, &httpErr) {
		return !httpErr.IsRetryable()
	}
	// Context cancellation is not a service failure
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return false
}
