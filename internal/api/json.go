package api

import (
	"encoding/json"
	"net/http"

	"doordash-adapter/internal/orders"
)

// CodeUnauthorized rejects a request that lacks a valid API key.
const CodeUnauthorized orders.Code = "UNAUTHORIZED"

// ErrorBody is the error shape the POS backend understands.
type ErrorBody struct {
	Error   bool        `json:"error"`
	Message string      `json:"message"`
	Code    orders.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code orders.Code, message string) {
	writeJSON(w, status, ErrorBody{Error: true, Message: message, Code: code})
}
