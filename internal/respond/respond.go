// ABOUTME: JSON response helpers and the error envelope shared by all gates
// ABOUTME: Every terminal failure uses {error, message, ...optional fields}

package respond

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the error envelope emitted by every gate and handler.
// Error carries the category ("Unauthorized", "Forbidden", ...) and
// Message the human-readable reason. The optional fields surface
// authorization requirements to the caller; this gateway does not treat
// them as secret.
type ErrorBody struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	Required any    `json:"required,omitempty"`
	Current  string `json:"current,omitempty"`
	Details  any    `json:"details,omitempty"`
	Path     string `json:"path,omitempty"`
}

// JSON writes payload as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Error writes a basic error envelope with no optional fields.
func Error(w http.ResponseWriter, status int, category, message string) {
	JSON(w, status, ErrorBody{Error: category, Message: message})
}
