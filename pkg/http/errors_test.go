package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pkghttp "github.com/excellence-hub/excellence/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) pkghttp.ErrorResponse {
	t.Helper()
	var resp pkghttp.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	pkghttp.WriteError(w, http.StatusBadRequest, "test_error", "Test message")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decodeError(t, w)
	assert.Equal(t, "test_error", resp.Error)
	assert.Equal(t, "Test message", resp.Message)
	assert.Nil(t, resp.Details)
	assert.NotContains(t, w.Body.String(), "details")
}

func TestWriteErrorWithDetails_Structured(t *testing.T) {
	w := httptest.NewRecorder()

	pkghttp.WriteErrorWithDetails(w, http.StatusUnauthorized, pkghttp.CodeUnauthorized, "login failed",
		map[string]any{"failed_attempts": 5, "recovery_available": true})

	var raw struct {
		Details struct {
			FailedAttempts    int  `json:"failed_attempts"`
			RecoveryAvailable bool `json:"recovery_available"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, 5, raw.Details.FailedAttempts)
	assert.True(t, raw.Details.RecoveryAvailable)
}

func TestErrorWriters(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		code   string
	}{
		{"bad request", func(w http.ResponseWriter) { pkghttp.WriteBadRequest(w, "m") }, 400, pkghttp.CodeBadRequest},
		{"unauthorized", func(w http.ResponseWriter) { pkghttp.WriteUnauthorized(w, "m") }, 401, pkghttp.CodeUnauthorized},
		{"forbidden", func(w http.ResponseWriter) { pkghttp.WriteForbidden(w, "m") }, 403, pkghttp.CodeForbidden},
		{"not found", func(w http.ResponseWriter) { pkghttp.WriteNotFound(w, "m") }, 404, pkghttp.CodeNotFound},
		{"conflict", func(w http.ResponseWriter) { pkghttp.WriteConflict(w, pkghttp.CodeRecoveryNotAvailable, "m") }, 409, pkghttp.CodeRecoveryNotAvailable},
		{"rate limited", func(w http.ResponseWriter) { pkghttp.WriteTooManyRequests(w, "m") }, 429, pkghttp.CodeRateLimited},
		{"storage", func(w http.ResponseWriter) { pkghttp.WriteServiceUnavailable(w, "m") }, 503, pkghttp.CodeStorageUnavailable},
		{"internal", func(w http.ResponseWriter) { pkghttp.WriteInternalError(w, "m") }, 500, pkghttp.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.code, resp.Error)
			assert.Equal(t, "m", resp.Message)
		})
	}
}

func TestWriteJSON_NilBody(t *testing.T) {
	w := httptest.NewRecorder()
	pkghttp.WriteJSON(w, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
