// Package shared holds the response envelope helpers used by every handler.
// All API responses, success or failure, use the same shape so clients can
// branch on the success flag alone.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "ayushdesk/pkg/domain-errors"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// WriteJSON writes a success envelope with the given status.
func WriteJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Success: true, Message: message, Data: data})
}

// WriteData writes a 200 success envelope around data.
func WriteData(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, "", data)
}

// WriteError translates a domain error into the failure envelope. Only the
// caller-safe message is rendered; wrapped causes never reach the client.
func WriteError(w http.ResponseWriter, err error) {
	status := dErrors.ToHTTPStatus(dErrors.CodeOf(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Success: false, Message: dErrors.MessageFor(err)})
}
