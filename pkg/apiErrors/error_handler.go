package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Error codes returned by the console JSON endpoints
const (
	// Authentication
	ErrInvalidCredentials = "AUTH_001" // login rejected by the studio backend
	ErrSessionRequired    = "AUTH_002" // no console session
	ErrSessionExpired     = "AUTH_003" // studio backend answered 401

	// Validation
	ErrInvalidRequest   = "VAL_001"
	ErrInvalidFormat    = "VAL_002"
	ErrInvalidTimeframe = "VAL_003"

	// Server
	ErrInternalServer  = "SRV_001"
	ErrExternalService = "SRV_002" // studio backend failure
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials: http.StatusUnauthorized,
	ErrSessionRequired:    http.StatusUnauthorized,
	ErrSessionExpired:     http.StatusUnauthorized,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrInvalidFormat:      http.StatusBadRequest,
	ErrInvalidTimeframe:   http.StatusBadRequest,
	ErrInternalServer:     http.StatusInternalServerError,
	ErrExternalService:    http.StatusBadGateway,
}

// APIError is the JSON error body of the console API.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor returns the HTTP status bound to code, 500 when unknown.
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}
