package scrub

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prilive-com/gobulksms/bd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFromError_RemovesKey(t *testing.T) {
	key := bd.SecretKey("abc123secret")
	orig := fmt.Errorf(`Get "http://bulksmsbd.net/api/getBalanceApi?api_key=abc123secret": dial tcp: timeout`)

	scrubbed := KeyFromError(orig, key)
	require.Error(t, scrubbed)
	assert.NotContains(t, scrubbed.Error(), "abc123secret")
	assert.Contains(t, scrubbed.Error(), "[REDACTED]")
}

func TestKeyFromError_PreservesChain(t *testing.T) {
	key := bd.SecretKey("abc123secret")
	sentinel := errors.New("underlying")
	orig := fmt.Errorf("request with abc123secret failed: %w", sentinel)

	scrubbed := KeyFromError(orig, key)
	assert.ErrorIs(t, scrubbed, sentinel)
}

func TestKeyFromError_NoKeyInMessage(t *testing.T) {
	key := bd.SecretKey("abc123secret")
	orig := errors.New("connection refused")

	assert.Same(t, orig, KeyFromError(orig, key))
}

func TestKeyFromError_NilAndEmpty(t *testing.T) {
	assert.Nil(t, KeyFromError(nil, "k"))

	orig := errors.New("boom")
	assert.Same(t, orig, KeyFromError(orig, ""))
}
