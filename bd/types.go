package bd

import "unicode/utf8"

// SendReceipt is the outcome of an accepted send call.
type SendReceipt struct {
	// Code is the gateway response code, CodeSuccess on the normal
	// path. Legacy plain-text replies carry no code and leave it zero.
	Code int

	// Message is the provider's response message, verbatim.
	Message string

	// Recipients are the normalized numbers the batch was sent to.
	Recipients []PhoneNumber

	// Parts is the number of SMS parts per recipient for the largest
	// body in the batch.
	Parts int
}

// Balance is the account balance reported by the gateway, in BDT.
type Balance struct {
	Amount   float64
	Currency string
}

// CostEstimate breaks down the estimated cost of a send.
type CostEstimate struct {
	MessageLength int
	Parts         int
	Recipients    int
	TotalSMS      int
	CostPerSMS    float64
	TotalCost     float64
	Currency      string
}

// EstimateCost computes the cost of sending message to n recipients at
// the given per-SMS rate.
func EstimateCost(message string, recipients int, costPerSMS float64) CostEstimate {
	parts := MessageParts(message)
	total := parts * recipients
	return CostEstimate{
		MessageLength: utf8.RuneCountInString(message),
		Parts:         parts,
		Recipients:    recipients,
		TotalSMS:      total,
		CostPerSMS:    costPerSMS,
		TotalCost:     float64(total) * costPerSMS,
		Currency:      "BDT",
	}
}
