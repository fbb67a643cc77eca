package bd_test

import (
	"errors"
	"testing"

	"github.com/prilive-com/gobulksms/bd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIError_SentinelDetection(t *testing.T) {
	tests := []struct {
		code     int
		sentinel error
	}{
		{1001, bd.ErrInvalidNumber},
		{1002, bd.ErrSenderIDDisabled},
		{1006, bd.ErrBalanceValidity},
		{1007, bd.ErrInsufficientBalance},
		{1011, bd.ErrUserNotFound},
		{1012, bd.ErrMaskingNotBengali},
		{1031, bd.ErrAccountNotVerified},
		{1032, bd.ErrIPNotWhitelisted},
	}

	for _, tt := range tests {
		err := bd.NewAPIError("smsapi", tt.code, "")
		assert.ErrorIs(t, err, tt.sentinel, "code %d", tt.code)
	}
}

func TestNewAPIError_UnknownCodeStillTyped(t *testing.T) {
	err := bd.NewAPIError("smsapi", 9999, "mystery failure")

	var apiErr *bd.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 9999, apiErr.Code)
	assert.Equal(t, "mystery failure", apiErr.Message)
	assert.Nil(t, errors.Unwrap(apiErr))
}

func TestNewAPIError_FillsMessageFromCodeTable(t *testing.T) {
	err := bd.NewAPIError("smsapi", 1007, "")
	assert.Equal(t, "Balance Insufficient", err.Message)
	assert.Contains(t, err.Error(), "code=1007")
	assert.Contains(t, err.Error(), "smsapi")
}

func TestCodeText(t *testing.T) {
	assert.Equal(t, "SMS Submitted Successfully", bd.CodeText(202))
	assert.Equal(t, "Invalid Number", bd.CodeText(1001))
	assert.Equal(t, "IP Not whitelisted", bd.CodeText(1032))
	assert.Empty(t, bd.CodeText(31337))
}

func TestHTTPError_IsRetryable(t *testing.T) {
	retryable := []int{429, 500, 502, 503, 504}
	for _, status := range retryable {
		err := &bd.HTTPError{Status: status, Endpoint: "smsapi"}
		assert.True(t, err.IsRetryable(), "status %d", status)
	}

	terminal := []int{400, 401, 403, 404, 418}
	for _, status := range terminal {
		err := &bd.HTTPError{Status: status, Endpoint: "smsapi"}
		assert.False(t, err.IsRetryable(), "status %d", status)
	}
}

func TestValidationAndConfigErrors(t *testing.T) {
	verr := bd.NewValidationError("message", "cannot be empty")
	assert.Contains(t, verr.Error(), "message")
	assert.Contains(t, verr.Error(), "cannot be empty")

	cerr := bd.NewConfigError("api_key", "is required")
	assert.Contains(t, cerr.Error(), "api_key")
}
