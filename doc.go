// Package gobulksms is a Go client for the BulkSMSBD.net SMS gateway.
//
// It validates Bangladesh mobile numbers locally, dispatches single,
// bulk, and OTP messages with built-in resilience patterns (retries
// with exponential backoff, circuit breaker, rate limiting), and can
// record every send to pluggable history storage.
//
// # Quick Start
//
//	client, err := gobulksms.New(apiKey, "AcmeCorp",
//	    gobulksms.WithRetries(5),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	receipt, err := client.SendSMS(ctx, []string{"01712345678"}, "Hello!")
//
// # OTP Messages
//
//	receipt, err := client.SendOTP(ctx, "01712345678", "482913", "AcmeCorp")
//
// # Core Client
//
// Services that do not need history recording or cost estimation can
// use the core client directly:
//
//	import "github.com/prilive-com/gobulksms/sms"
//	sender, _ := sms.New(apiKey, "AcmeCorp")
//
// # Shared Types
//
// Validation, phone numbers, and gateway errors live in the bd
// subpackage:
//
//	import "github.com/prilive-com/gobulksms/bd"
//	number, err := bd.ParsePhone("01712345678")
//	if errors.Is(err, bd.ErrInsufficientBalance) { ... }
//
// # Send History
//
// Pass a history.Recorder to persist outcomes. The history/gormstore
// and history/redisstore subpackages back it with PostgreSQL and
// Redis:
//
//	store, _ := gormstore.Open(dsn)
//	client, _ := gobulksms.New(apiKey, "AcmeCorp",
//	    gobulksms.WithRecorder(store),
//	)
package gobulksms
