// Package scrub provides security helpers for removing sensitive data from errors.
package scrub

import (
	"strings"

	"github.com/prilive-com/gobulksms/bd"
)

// KeyFromError removes the API key from error messages. The balance
// endpoint carries the key in the query string, and Go's
// http.Client.Do() includes the request URL in error strings.
// Preserves the error chain for errors.Is/As via Unwrap().
func KeyFromError(err error, key bd.SecretKey) error {
	if err == nil {
		return nil
	}
	keyVal := key.Value()
	if keyVal == "" {
		return err
	}
	msg := err.Error()
	if strings.Contains(msg, keyVal) {
		return &scrubbedError{
			msg: strings.ReplaceAll(msg, keyVal, "[REDACTED]"),
			err: err,
		}
	}
	return err
}

type scrubbedError struct {
	msg string
	err error
}

func (e *scrubbedError) Error() string { return e.msg }
func (e *scrubbedError) Unwrap() error { return e.err }
