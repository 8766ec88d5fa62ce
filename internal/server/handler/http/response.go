package http

import (
	"encoding/json"
	"net/http"
)

// writeJSON serializes payload with the given status code. Encoding failures
// are ignored: the status line is already on the wire.
func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes the uniform error envelope used by every failure response.
func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]any{
		"error":   true,
		"message": message,
	})
}
