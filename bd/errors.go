package bd

import (
	"errors"
	"fmt"
)

// CodeSuccess is the gateway code for an accepted submission.
const CodeSuccess = 202

// Sentinel errors - use with errors.Is()
var (
	// Gateway errors
	ErrInvalidNumber       = errors.New("gobulksms: invalid number")
	ErrSenderIDDisabled    = errors.New("gobulksms: sender ID not correct or disabled")
	ErrBalanceValidity     = errors.New("gobulksms: balance validity not available")
	ErrInsufficientBalance = errors.New("gobulksms: insufficient balance")
	ErrUserNotFound        = errors.New("gobulksms: user ID not found")
	ErrMaskingNotBengali   = errors.New("gobulksms: masking SMS must be sent in Bengali")
	ErrAccountNotVerified  = errors.New("gobulksms: account not verified")
	ErrIPNotWhitelisted    = errors.New("gobulksms: IP not whitelisted")

	// Client errors
	ErrMaxRetries       = errors.New("gobulksms: max retries exceeded")
	ErrCircuitOpen      = errors.New("gobulksms: circuit breaker open")
	ErrResponseTooLarge = errors.New("gobulksms: response too large")
)

// codeText is the verbatim BulkSMSBD.net error-code table.
var codeText = map[int]string{
	202:  "SMS Submitted Successfully",
	1001: "Invalid Number",
	1002: "Sender ID not correct/sender ID is disabled",
	1003: "Please Required all fields/Contact Your System Administrator",
	1005: "Internal Error",
	1006: "Balance Validity Not Available",
	1007: "Balance Insufficient",
	1011: "User ID not found",
	1012: "Masking SMS must be sent in Bengali",
	1013: "Sender ID has not found Gateway by api key",
	1014: "Sender Type Name not found using this sender by api key",
	1015: "Sender ID has not found Any Valid Gateway by api key",
	1016: "Sender Type Name Active Price Info not found by this sender id",
	1017: "Sender Type Name Price Info not found by this sender id",
	1018: "The Owner of this (username) Account is disabled",
	1019: "The (sender type name) Price of this (username) Account is disabled",
	1020: "The parent of this account is not found",
	1021: "The parent active (sender type name) price of this account is not found",
	1031: "Your Account Not Verified, Please Contact Administrator",
	1032: "IP Not whitelisted",
}

// CodeText returns the provider's description for a gateway code, or
// an empty string for unknown codes.
func CodeText(code int) string { return codeText[code] }

// APIError is a well-formed gateway response carrying a non-success
// business code. It is never retried: the gateway rejected the request
// deterministically and retrying would only burn quota.
// Use errors.As() to extract details, errors.Is() to match sentinels.
type APIError struct {
	Code     int
	Message  string // provider message, verbatim
	Endpoint string // gateway endpoint that failed
	cause    error  // underlying sentinel for errors.Is()
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gobulksms: %s failed: %s (code=%d)", e.Endpoint, e.Message, e.Code)
}

// Unwrap returns the underlying sentinel error for errors.Is() support.
func (e *APIError) Unwrap() error { return e.cause }

// NewAPIError creates an APIError with automatic sentinel detection.
// An empty message is filled from the provider code table.
func NewAPIError(endpoint string, code int, message string) *APIError {
	if message == "" {
		message = codeText[code]
	}
	if message == "" {
		message = "Unknown API error"
	}
	return &APIError{
		Code:     code,
		Message:  message,
		Endpoint: endpoint,
		cause:    DetectSentinel(code),
	}
}

// DetectSentinel maps gateway error codes to sentinel errors. Codes
// without a dedicated sentinel (field/config errors 1003, 1013-1021 and
// unknown codes) return nil; they still surface as *APIError.
func DetectSentinel(code int) error {
	switch code {
	case 1001:
		return ErrInvalidNumber
	case 1002:
		return ErrSenderIDDisabled
	case 1006:
		return ErrBalanceValidity
	case 1007:
		return ErrInsufficientBalance
	case 1011:
		return ErrUserNotFound
	case 1012:
		return ErrMaskingNotBengali
	case 1031:
		return ErrAccountNotVerified
	case 1032:
		return ErrIPNotWhitelisted
	}
	return nil
}

// HTTPError is a transport-level failure: the gateway answered with a
// non-2xx HTTP status instead of a response envelope. 429 and 5xx are
// transient and retried; other statuses are not.
type HTTPError struct {
	Status   int
	Endpoint string
	Body     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("gobulksms: %s returned HTTP %d: %s", e.Endpoint, e.Status, e.Body)
}

// IsRetryable reports whether the status indicates a transient failure.
func (e *HTTPError) IsRetryable() bool {
	return e.Status == 429 || (e.Status >= 500 && e.Status <= 504)
}

// ValidationError is a malformed input caught before any network I/O.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("gobulksms: validation: %s - %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConfigError is a missing or invalid configuration value, raised at
// client construction, never at send time.
type ConfigError struct {
	Key     string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("gobulksms: config: %s - %s", e.Key, e.Message)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(key, message string) *ConfigError {
	return &ConfigError{Key: key, Message: message}
}
