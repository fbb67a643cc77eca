// Package bd contains the shared types for the BulkSMSBD.net gateway:
// phone number parsing for the Bangladesh numbering plan, message and
// sender-ID validation, the provider error-code table, and the closed
// set of error types the client surfaces.
//
// All types here are plain values with no I/O. The sms package builds
// requests from them; callers branch on the error types with
// errors.Is and errors.As:
//
//	_, err := client.SendSMS(ctx, []string{"01712345678"}, "hello")
//	if errors.Is(err, bd.ErrInsufficientBalance) {
//	    // top up
//	}
package bd
