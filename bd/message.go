package bd

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Content limits from the provider: 160 chars fit one SMS, up to 1530
// chars are sent as a concatenated message of at most 10 parts.
const (
	MaxMessageLength = 1530
	SinglePartLength = 160
	MaxSenderIDLen   = 20
	MaxBrandNameLen  = 50
)

var (
	senderIDRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-.]+$`)
	otpRegex      = regexp.MustCompile(`^\d{4,8}$`)
	bengaliRegex  = regexp.MustCompile(`[\x{0980}-\x{09FF}]`)
	controlRegex  = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	spaceRegex    = regexp.MustCompile(`\s+`)
)

// ValidateMessage checks message body constraints before dispatch.
func ValidateMessage(message string) error {
	if message == "" {
		return NewValidationError("message", "cannot be empty")
	}
	if strings.TrimSpace(message) == "" {
		return NewValidationError("message", "cannot be only whitespace")
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return NewValidationError("message",
			"too long, maximum is 1530 characters for concatenated SMS")
	}
	return nil
}

// ValidateSenderID checks the provider's sender-ID rules: non-empty,
// at most 20 characters, letters/digits/spaces/hyphens/dots only.
func ValidateSenderID(senderID string) error {
	if senderID == "" {
		return NewValidationError("sender_id", "cannot be empty")
	}
	if len(senderID) > MaxSenderIDLen {
		return NewValidationError("sender_id",
			"cannot be longer than 20 characters")
	}
	if !senderIDRegex.MatchString(senderID) {
		return NewValidationError("sender_id",
			"may only contain letters, numbers, spaces, hyphens, and dots")
	}
	return nil
}

// ValidateOTP checks the OTP code and brand name used to build the
// templated OTP message.
func ValidateOTP(code, brand string) error {
	if code == "" {
		return NewValidationError("otp_code", "cannot be empty")
	}
	if !otpRegex.MatchString(code) {
		return NewValidationError("otp_code", "must be 4-8 digits")
	}
	if brand == "" {
		return NewValidationError("brand_name", "cannot be empty")
	}
	if len(brand) > MaxBrandNameLen {
		return NewValidationError("brand_name",
			"cannot be longer than 50 characters")
	}
	return nil
}

// MessageParts returns how many SMS parts the message splits into.
// Lengths are counted in characters, not bytes, so Bengali text is not
// penalized. Concatenated messages lose 7 chars per part to the UDH
// header, which gives the provider's 153-char ladder.
func MessageParts(message string) int {
	n := utf8.RuneCountInString(message)
	switch {
	case n <= 160:
		return 1
	case n <= 306:
		return 2
	case n <= 459:
		return 3
	case n <= 612:
		return 4
	case n <= 765:
		return 5
	case n <= 918:
		return 6
	case n <= 1071:
		return 7
	case n <= 1224:
		return 8
	case n <= 1377:
		return 9
	case n <= 1530:
		return 10
	default:
		return 11
	}
}

// Sanitize normalizes a message body for sending: smart quotes become
// plain quotes, control characters are dropped, whitespace collapses.
func Sanitize(message string) string {
	r := strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
	)
	message = r.Replace(message)
	message = controlRegex.ReplaceAllString(message, "")
	return spaceRegex.ReplaceAllString(strings.TrimSpace(message), " ")
}

// IsBengali reports whether the text contains Bengali script. Masking
// sender IDs require Bengali content (gateway code 1012).
func IsBengali(text string) bool {
	return bengaliRegex.MatchString(text)
}
