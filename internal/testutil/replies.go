package testutil

import (
	"encoding/json"
	"net/http"

	"github.com/prilive-com/gobulksms/bd"
)

// Envelope is the standard gateway response format.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ReplyCode writes a gateway envelope for the given code, filling the
// message from the provider code table.
func ReplyCode(w http.ResponseWriter, code int) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Envelope{
		Code:    code,
		Message: bd.CodeText(code),
	})
}

// ReplySuccess writes the 202 submission-accepted envelope.
func ReplySuccess(w http.ResponseWriter) {
	ReplyCode(w, 202)
}

// ReplyBalance writes a successful balance response.
func ReplyBalance(w http.ResponseWriter, amount float64) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":    202,
		"message": "Success",
		"balance": amount,
	})
}

// ReplyPlainText writes a legacy bare-text gateway reply.
func ReplyPlainText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte(text))
}

// ReplyHTTPStatus writes a transport-level HTTP error with no envelope.
func ReplyHTTPStatus(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}
