// Package testutil provides shared test helpers: a mock BulkSMSBD
// gateway server with request capture, canned gateway replies, a fake
// sleeper for deterministic retry timing, and preconfigured test
// clients.
package testutil
