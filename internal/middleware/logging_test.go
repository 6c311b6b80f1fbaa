package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureLogger(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		status    int
		wantPath  string
		wantLevel string
	}{
		{"plain", "/health", 200, "/health", "INFO"},
		{"query kept", "/roster?account_type=student", 200, "/roster?account_type=student", "INFO"},
		{"sensitive query redacted", "/roster?name=Jane", 200, "/roster?[REDACTED]", "INFO"},
		{"client error", "/auth/login", 401, "/auth/login", "WARN"},
		{"server error", "/health", 503, "/health", "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			handler := SecureLogger(logger, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			req := httptest.NewRequest("GET", tt.target, nil)
			req.RemoteAddr = "203.0.113.5:4000"
			handler.ServeHTTP(httptest.NewRecorder(), req)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantPath, entry["path"])
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, float64(tt.status), entry["status"])
			assert.Equal(t, "203.0.113.5", entry["client_ip"])
		})
	}
}
