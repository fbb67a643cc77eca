package gobulksms

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/prilive-com/gobulksms/bd"
	"github.com/prilive-com/gobulksms/history"
	"github.com/prilive-com/gobulksms/internal/syncutil"
	"github.com/prilive-com/gobulksms/sms"
	"github.com/prilive-com/gobulksms/template"
)

// Client is the unified SMS client combining dispatch, cost
// estimation, and send-history recording.
type Client struct {
	sender   *sms.Client
	recorder history.Recorder
	logger   *slog.Logger
	wg       sync.WaitGroup
	config   clientConfig
}

type clientConfig struct {
	senderConfig sms.Config
	senderOpts   []sms.Option

	recorder      history.Recorder
	recordTimeout time.Duration

	logger *slog.Logger
}

// Option configures the Client.
type Option func(*clientConfig)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithRecorder enables send-history recording. Outcomes are written in
// the background; recorder failures are logged, never surfaced to
// callers.
func WithRecorder(r history.Recorder) Option {
	return func(c *clientConfig) {
		c.recorder = r
	}
}

// WithRecordTimeout bounds each background history write.
func WithRecordTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.recordTimeout = d
	}
}

// WithRetries sets max retry attempts.
func WithRetries(max int) Option {
	return func(c *clientConfig) {
		c.senderConfig.MaxRetries = max
	}
}

// WithBaseURL sets the gateway base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.senderConfig.BaseURL = url
	}
}

// WithRateLimit sets rate limiting.
func WithRateLimit(globalRPS float64, burst int) Option {
	return func(c *clientConfig) {
		c.senderConfig.GlobalRPS = globalRPS
		c.senderConfig.GlobalBurst = burst
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.senderConfig.RequestTimeout = d
	}
}

// WithCostPerSMS sets the per-SMS rate used for cost estimation.
func WithCostPerSMS(cost float64) Option {
	return func(c *clientConfig) {
		c.senderConfig.CostPerSMS = cost
	}
}

// WithSenderOptions passes options through to the core sms.Client.
func WithSenderOptions(opts ...sms.Option) Option {
	return func(c *clientConfig) {
		c.senderOpts = append(c.senderOpts, opts...)
	}
}

// SendOption configures a single send call.
type SendOption func(*sendOptions)

type sendOptions struct {
	senderID string
}

// WithSenderID overrides the configured sender ID for one call.
func WithSenderID(id string) SendOption {
	return func(o *sendOptions) {
		o.senderID = id
	}
}

// New creates a new unified Client.
func New(apiKey, senderID string, opts ...Option) (*Client, error) {
	cfg := sms.DefaultConfig()
	cfg.APIKey = bd.SecretKey(apiKey)
	cfg.SenderID = senderID
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig creates a Client from a core config, typically one
// loaded with sms.LoadConfig.
func NewFromConfig(senderConfig sms.Config, opts ...Option) (*Client, error) {
	cfg := clientConfig{
		senderConfig:  senderConfig,
		recorder:      history.Nop{},
		recordTimeout: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	senderOpts := append([]sms.Option{sms.WithLogger(logger)}, cfg.senderOpts...)
	sender, err := sms.NewFromConfig(cfg.senderConfig, senderOpts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		sender:   sender,
		recorder: cfg.recorder,
		logger:   logger,
		config:   cfg,
	}, nil
}

// Close waits for pending history writes and releases resources.
func (c *Client) Close() error {
	c.wg.Wait()
	return c.sender.Close()
}

// SenderID returns the default sender ID.
func (c *Client) SenderID() string { return c.sender.SenderID() }

// SendSMS sends one message body to one or more recipients.
func (c *Client) SendSMS(ctx context.Context, numbers []string, message string, opts ...SendOption) (*bd.SendReceipt, error) {
	return c.send(ctx, history.KindSingle, numbers, message, opts...)
}

// SendOTP sends a one-time password to a single recipient. The code
// must be 4 to 8 digits; the message body is rendered from the default
// OTP template.
func (c *Client) SendOTP(ctx context.Context, number, code, brand string, opts ...SendOption) (*bd.SendReceipt, error) {
	if err := bd.ValidateOTP(code, brand); err != nil {
		return nil, err
	}
	message, err := template.OTP.Render(map[string]string{
		"brand": brand,
		"otp":   code,
	})
	if err != nil {
		return nil, err
	}
	return c.send(ctx, history.KindOTP, []string{number}, message, opts...)
}

// SendTemplate renders a template and sends it to the recipients.
func (c *Client) SendTemplate(ctx context.Context, numbers []string, tmpl template.Template, vars map[string]string, opts ...SendOption) (*bd.SendReceipt, error) {
	message, err := tmpl.Render(vars)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, history.KindSingle, numbers, message, opts...)
}

func (c *Client) send(ctx context.Context, kind history.Kind, numbers []string, message string, opts ...SendOption) (*bd.SendReceipt, error) {
	var options sendOptions
	for _, opt := range opts {
		opt(&options)
	}

	receipt, err := c.sender.Send(ctx, sms.SendRequest{
		Numbers:  numbers,
		Message:  message,
		SenderID: options.senderID,
	})

	c.record(kind, options.senderID, numbers, message, receipt, err)
	return receipt, err
}

// SendBulkSMS sends distinct recipient/body pairs as one batch.
func (c *Client) SendBulkSMS(ctx context.Context, messages []sms.Message, opts ...SendOption) (*bd.SendReceipt, error) {
	var options sendOptions
	for _, opt := range opts {
		opt(&options)
	}

	receipt, err := c.sender.SendMany(ctx, sms.SendManyRequest{
		Messages: messages,
		SenderID: options.senderID,
	})

	numbers := make([]string, len(messages))
	for i, m := range messages {
		numbers[i] = m.To
	}
	c.record(history.KindBulk, options.senderID, numbers, "", receipt, err)
	return receipt, err
}

// GetBalance queries the account balance.
func (c *Client) GetBalance(ctx context.Context) (*bd.Balance, error) {
	return c.sender.Balance(ctx)
}

// TestConnection reports whether the gateway accepts the configured
// credentials. All errors are swallowed; use GetBalance for details.
func (c *Client) TestConnection(ctx context.Context) bool {
	_, err := c.sender.Balance(ctx)
	return err == nil
}

// EstimateCost computes the cost of sending message to n recipients at
// the configured per-SMS rate.
func (c *Client) EstimateCost(message string, recipients int) bd.CostEstimate {
	return bd.EstimateCost(message, recipients, c.sender.CostPerSMS())
}

// record writes the outcome of one send in the background. Close
// drains pending writes.
func (c *Client) record(kind history.Kind, senderID string, numbers []string, message string, receipt *bd.SendReceipt, sendErr error) {
	switch c.recorder.(type) {
	case nil, history.Nop, *history.Nop:
		return
	}

	outcome := &history.Outcome{
		Kind:       kind,
		Status:     history.StatusSent,
		SenderID:   senderID,
		Recipients: numbers,
		Message:    message,
		Parts:      1,
	}
	if outcome.SenderID == "" {
		outcome.SenderID = c.sender.SenderID()
	}

	if receipt != nil {
		outcome.Code = receipt.Code
		outcome.ProviderMessage = receipt.Message
		outcome.Parts = receipt.Parts
		recipients := make([]string, len(receipt.Recipients))
		for i, n := range receipt.Recipients {
			recipients[i] = n.String()
		}
		outcome.Recipients = recipients
		outcome.EstimatedCost = bd.EstimateCost(message, len(recipients), c.sender.CostPerSMS()).TotalCost
	}

	if sendErr != nil {
		outcome.Status = history.StatusFailed
		outcome.Error = sendErr.Error()
		var apiErr *bd.APIError
		if errors.As(sendErr, &apiErr) {
			outcome.Code = apiErr.Code
			outcome.ProviderMessage = apiErr.Message
		}
	}

	syncutil.Go(&c.wg, func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.config.recordTimeout)
		defer cancel()
		if err := c.recorder.Record(ctx, outcome); err != nil {
			c.logger.Error("failed to record send history",
				"kind", string(kind),
				"error", err,
			)
		}
	})
}
