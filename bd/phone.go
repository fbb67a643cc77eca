package bd

import "strings"

// PhoneNumber is a normalized Bangladesh mobile number in international
// form without the plus sign (8801XXXXXXXXX). Construct it with
// ParsePhone; a zero value is not valid.
type PhoneNumber string

// String returns the normalized number.
func (p PhoneNumber) String() string { return string(p) }

// Local returns the national form with a leading zero (01XXXXXXXXX).
func (p PhoneNumber) Local() string {
	return "0" + strings.TrimPrefix(string(p), "880")
}

// ParsePhone validates raw against the Bangladesh mobile numbering plan
// and returns the normalized international form.
//
// Accepted inputs (spaces and hyphens are stripped first):
//
//	01712345678
//	8801712345678
//	+8801712345678
//
// Operator prefixes 013-019 are valid; anything else fails with a
// *ValidationError. ParsePhone is pure and idempotent: parsing an
// already-normalized number returns it unchanged.
func ParsePhone(raw string) (PhoneNumber, error) {
	if raw == "" {
		return "", NewValidationError("phone_number", "cannot be empty")
	}

	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '\t':
			return -1
		}
		return r
	}, raw)
	cleaned = strings.TrimPrefix(cleaned, "+")

	// Local form: prepend the country code.
	if strings.HasPrefix(cleaned, "01") {
		cleaned = "880" + cleaned
	}

	if !strings.HasPrefix(cleaned, "8801") {
		return "", NewValidationError("phone_number",
			"must start with 01 or 8801, got "+raw)
	}
	if len(cleaned) != 13 {
		return "", NewValidationError("phone_number",
			"wrong length, expected 8801XXXXXXXXX")
	}
	for _, c := range cleaned {
		if c < '0' || c > '9' {
			return "", NewValidationError("phone_number",
				"must contain only digits")
		}
	}
	// Operator prefix: 8801[3-9].
	if cleaned[4] < '3' {
		return "", NewValidationError("phone_number",
			"unknown operator prefix 01"+string(cleaned[4]))
	}

	return PhoneNumber(cleaned), nil
}

// ParsePhones parses every entry, failing on the first invalid one.
func ParsePhones(raw []string) ([]PhoneNumber, error) {
	if len(raw) == 0 {
		return nil, NewValidationError("phone_numbers", "cannot be empty")
	}
	numbers := make([]PhoneNumber, 0, len(raw))
	for _, r := range raw {
		n, err := ParsePhone(r)
		if err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

// JoinPhones renders numbers in the comma-joined form the smsapi
// endpoint expects.
func JoinPhones(numbers []PhoneNumber) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = string(n)
	}
	return strings.Join(parts, ",")
}
