package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizedName(t *testing.T) {
	assert.Equal(t, "J*** D**", SanitizedName("Jane Doe"))
	assert.Equal(t, "N***** A****", SanitizedName("NOUFAL  ADANY"))
	assert.Equal(t, "A", SanitizedName("A"))
	assert.Equal(t, "[empty]", SanitizedName("   "))
}

func TestSanitizedEmail(t *testing.T) {
	assert.Equal(t, "a****@*******.com", SanitizedEmail("admin@example.com"))
	assert.Equal(t, "[invalid-email]", SanitizedEmail("nope"))
}

func TestSanitizeQueryString(t *testing.T) {
	assert.True(t, SanitizeQueryString("password=x"))
	assert.True(t, SanitizeQueryString("name=Jane"))
	assert.False(t, SanitizeQueryString("account_type=student"))
}

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestAuditLogger_MasksAccountOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	al := NewAuditLogger(slog.New(slog.NewJSONHandler(&buf, nil)), "production")

	al.LogAuthAttempt(AuditEvent{EventType: "login_failed", Account: "Jane Doe", Success: false})

	rec := decodeRecord(t, &buf)
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "auth", rec["audit_type"])
	assert.Equal(t, "J*** D**", rec["account"])
}

func TestAuditLogger_PlainAccountInDevelopment(t *testing.T) {
	var buf bytes.Buffer
	al := NewAuditLogger(slog.New(slog.NewJSONHandler(&buf, nil)), "development")

	al.LogPasswordChange("Jane Doe", "", true)

	rec := decodeRecord(t, &buf)
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "password_change", rec["event_type"])
	assert.Equal(t, "Jane Doe", rec["account"])
}

func TestAuditLogger_AccountAction(t *testing.T) {
	var buf bytes.Buffer
	al := NewAuditLogger(slog.New(slog.NewJSONHandler(&buf, nil)), "development")

	al.LogAccountAction("account_unlocked", "NOUFAL ADANY", "Jane Doe", map[string]string{"removed_requests": "2"})

	rec := decodeRecord(t, &buf)
	assert.Equal(t, "account_unlocked", rec["event_type"])
	assert.Equal(t, "N***** A****", rec["actor"])
	assert.Equal(t, "2", rec["removed_requests"])
}
