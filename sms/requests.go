package sms

// SendRequest is a one-to-many send: one body delivered to every
// recipient through the smsapi endpoint.
type SendRequest struct {
	// Numbers are raw recipient numbers; they are validated and
	// normalized before dispatch.
	Numbers []string

	// Message is the SMS body shared by all recipients.
	Message string

	// SenderID overrides the client default when non-empty.
	SenderID string
}

// Message is a single recipient/body pair inside a many-to-many batch.
// The field names match the smsapimany JSON contract.
type Message struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// SendManyRequest is a many-to-many send: distinct bodies per
// recipient, dispatched as one atomic batch through smsapimany.
type SendManyRequest struct {
	Messages []Message

	// SenderID overrides the client default when non-empty.
	SenderID string
}
