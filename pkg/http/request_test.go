package http_test

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	pkghttp "github.com/excellence-hub/excellence/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(t *testing.T, cidrs ...string) *pkghttp.ClientIPResolver {
	t.Helper()
	r, err := pkghttp.NewClientIPResolver(cidrs)
	require.NoError(t, err)
	return r
}

func TestClientIP(t *testing.T) {
	resolver := newResolver(t, "10.0.0.0/8", "127.0.0.1/32", "2001:db8::/32")

	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xRealIP    string
		want       string
	}{
		{"direct client ignores spoofed headers", "203.0.113.10:54321", "1.2.3.4, 5.6.7.8", "192.168.1.1", "203.0.113.10"},
		{"trusted proxy forwards first hop", "10.0.0.5:54321", "203.0.113.42, 10.0.0.5", "", "203.0.113.42"},
		{"trusted proxy skips garbage entries", "10.0.0.5:1", "not-an-ip, 198.51.100.7", "", "198.51.100.7"},
		{"trusted proxy falls back to X-Real-IP", "127.0.0.1:1", "", "198.51.100.9", "198.51.100.9"},
		{"trusted proxy without headers", "10.1.2.3:1", "", "", "10.1.2.3"},
		{"ipv6 trusted proxy", "[2001:db8::1]:443", "2001:db8:ffff::5", "", "2001:db8:ffff::5"},
		{"ipv6 untrusted peer", "[2001:dead::1]:443", "203.0.113.1", "", "2001:dead::1"},
		{"address without port", "203.0.113.77", "", "", "203.0.113.77"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}
			assert.Equal(t, tt.want, resolver.ClientIP(req))
		})
	}
}

func TestClientIP_NilResolverTrustsNobody(t *testing.T) {
	var resolver *pkghttp.ClientIPResolver
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.5:1"
	req.Header.Set("X-Forwarded-For", "1.2.3.4")

	assert.Equal(t, "10.0.0.5", resolver.ClientIP(req))
}

func TestClientIP_UnparseableRemoteAddr(t *testing.T) {
	resolver := newResolver(t)
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = ""
	assert.Equal(t, "unknown", resolver.ClientIP(req))
}

func TestNewClientIPResolver_RejectsInvalidCIDR(t *testing.T) {
	_, err := pkghttp.NewClientIPResolver([]string{"10.0.0.0/8", "nope"})
	assert.Error(t, err)
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"valid", `{"name":"Jane"}`, false},
		{"unknown field", `{"name":"Jane","admin":true}`, true},
		{"trailing data", `{"name":"Jane"}{}`, true},
		{"malformed", `{"name":`, true},
		{"oversized", `{"name":"` + strings.Repeat("a", pkghttp.MaxBodyBytes) + `"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.payload))
			w := httptest.NewRecorder()

			var dst body
			err := pkghttp.DecodeJSON(w, req, &dst)
			if tt.wantErr {
				assert.True(t, errors.Is(err, pkghttp.ErrInvalidBody))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Jane", dst.Name)
		})
	}
}
