// Package redisstore keeps a capped list of recent dispatch outcomes
// in Redis. It is a lightweight alternative to gormstore for services
// that only need a rolling window of sends for dashboards or debugging.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/prilive-com/gobulksms/history"
)

// DefaultKey is the Redis list key outcomes are pushed to.
const DefaultKey = "gobulksms:outcomes"

// DefaultMaxEntries caps the list length.
const DefaultMaxEntries = 1000

// Store is a Redis-backed implementation of history.Recorder. Outcomes
// are LPUSHed as JSON and the list is trimmed to MaxEntries, so index 0
// is always the most recent send.
type Store struct {
	client     *redis.Client
	key        string
	maxEntries int64
}

// Option configures the Store.
type Option func(*Store)

// WithKey overrides the Redis list key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithMaxEntries overrides the list cap.
func WithMaxEntries(n int64) Option {
	return func(s *Store) { s.maxEntries = n }
}

// New wraps an existing Redis client.
func New(client *redis.Client, opts ...Option) *Store {
	s := &Store{
		client:     client,
		key:        DefaultKey,
		maxEntries: DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open connects to Redis at addr and returns a Store.
func Open(addr, password string, db int, opts ...Option) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return New(client, opts...)
}

// Ping verifies the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Record pushes one outcome and trims the list to the configured cap.
func (s *Store) Record(ctx context.Context, outcome *history.Outcome) error {
	outcome.Fill()
	payload, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("redisstore: failed to encode outcome: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key, payload)
	pipe.LTrim(ctx, s.key, 0, s.maxEntries-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redisstore: failed to record outcome: %w", err)
	}
	return nil
}

// Recent returns up to limit outcomes, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*history.Outcome, error) {
	raw, err := s.client.LRange(ctx, s.key, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: failed to read outcomes: %w", err)
	}

	outcomes := make([]*history.Outcome, 0, len(raw))
	for _, entry := range raw {
		var o history.Outcome
		if err := json.Unmarshal([]byte(entry), &o); err != nil {
			return nil, fmt.Errorf("redisstore: corrupt outcome entry: %w", err)
		}
		outcomes = append(outcomes, &o)
	}
	return outcomes, nil
}

// compile-time interface check
var _ history.Recorder = (*Store)(nil)
