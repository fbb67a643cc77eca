package bd

import "log/slog"

// SecretKey wraps the gateway API key to prevent accidental logging.
// Implements fmt.Stringer, fmt.GoStringer, slog.LogValuer, and encoding.TextMarshaler.
type SecretKey string

// Value returns the actual key value.
// Only use this when building a gateway request.
func (s SecretKey) Value() string { return string(s) }

// String returns a redacted placeholder (fmt.Stringer).
func (s SecretKey) String() string { return "[REDACTED]" }

// GoString returns redacted for %#v (fmt.GoStringer).
func (s SecretKey) GoString() string { return `bd.SecretKey("[REDACTED]")` }

// LogValue returns a redacted value for slog (slog.LogValuer).
// This ensures the key is never logged even with %+v.
func (s SecretKey) LogValue() slog.Value {
	return slog.StringValue("[REDACTED]")
}

// MarshalText returns redacted bytes (encoding.TextMarshaler).
// Prevents accidental JSON/YAML serialization of the key.
func (s SecretKey) MarshalText() ([]byte, error) {
	return []byte("[REDACTED]"), nil
}

// IsEmpty returns true if the key is empty.
func (s SecretKey) IsEmpty() bool {
	return s == ""
}
