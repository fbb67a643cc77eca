package testutil

// Test constants for consistent test data.
const (
	// TestAPIKey is a valid-format API key for testing.
	TestAPIKey = "testkey1234567890"

	// TestSenderID is a provider-approved sender ID for testing.
	TestSenderID = "AcmeCorp"

	// TestNumber is a valid local-form recipient number.
	TestNumber = "01712345678"

	// TestNumberIntl is TestNumber in normalized international form.
	TestNumberIntl = "8801712345678"

	// TestNumber2 is a second valid recipient.
	TestNumber2 = "01812345678"

	// TestNumber2Intl is TestNumber2 in normalized international form.
	TestNumber2Intl = "8801812345678"
)
