package http

import (
	"encoding/json"
	"net/http"
)

// domainError is the wire shape for classified domain failures.
type domainError struct {
	ErrorDescription string `json:"errorDescription"`
}

// internalError is the wire shape for everything unclassified. No
// internal detail leaks through it.
type internalError struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDomainError(w http.ResponseWriter, statusCode int, description string) {
	writeJSON(w, statusCode, domainError{ErrorDescription: description})
}

func writeInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, internalError{
		ErrorCode: "internal_server_error",
		Message:   "Oops! Something went wrong",
	})
}
