package http

import (
	"encoding/json"
	"net/http"
)

// Machine-readable error codes returned in ErrorResponse.Error.
const (
	CodeBadRequest           = "bad_request"
	CodeEmptyField           = "empty_field"
	CodeMismatch             = "password_mismatch"
	CodeUnauthorized         = "unauthorized"
	CodeWrongOldPassword     = "wrong_old_password"
	CodeForbidden            = "forbidden"
	CodeNotFound             = "not_found"
	CodeRecoveryNotAvailable = "recovery_not_available"
	CodeRateLimited          = "rate_limit_exceeded"
	CodeStorageUnavailable   = "storage_unavailable"
	CodeInternal             = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}
	// The status line is already out; an encode failure cannot be reported.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an ErrorResponse with no details.
func WriteError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	WriteErrorWithDetails(w, statusCode, errorCode, message, nil)
}

// WriteErrorWithDetails writes an ErrorResponse. details may be a string or
// any JSON-encodable value, such as a login result on 401.
func WriteErrorWithDetails(w http.ResponseWriter, statusCode int, errorCode, message string, details any) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
		Details: details,
	})
}

func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, CodeBadRequest, message)
}

func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, CodeForbidden, message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, CodeNotFound, message)
}

func WriteConflict(w http.ResponseWriter, errorCode, message string) {
	WriteError(w, http.StatusConflict, errorCode, message)
}

func WriteTooManyRequests(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, CodeRateLimited, message)
}

func WriteServiceUnavailable(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusServiceUnavailable, CodeStorageUnavailable, message)
}

func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, CodeInternal, message)
}
