// Package sms implements the core BulkSMSBD.net gateway client.
//
// Client wraps the three gateway endpoints (smsapi, smsapimany,
// getBalanceApi) with a global rate limiter, a circuit breaker, and
// retry with exponential backoff. Retries apply only to transport
// failures; a well-formed gateway rejection is terminal and surfaces
// as a *bd.APIError.
//
// Most applications should use the root gobulksms package, which adds
// OTP templating, cost estimation, and history recording on top of
// this client.
package sms
