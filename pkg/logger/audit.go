package logger

import (
	"context"
	"log/slog"
	"time"
)

// AuditEvent represents a security audit event
type AuditEvent struct {
	EventType     string
	Account       string
	IPAddress     string
	UserAgent     string
	Success       bool
	FailureReason string
	Metadata      map[string]string
}

// AuditLogger provides audit logging functionality
type AuditLogger struct {
	logger *slog.Logger
	env    string
}

// NewAuditLogger creates a new audit logger. Outside development the
// account names in audit records are masked.
func NewAuditLogger(logger *slog.Logger, env string) *AuditLogger {
	return &AuditLogger{
		logger: logger,
		env:    env,
	}
}

func (al *AuditLogger) account(name string) slog.Attr {
	if al.env == "development" || al.env == "test" {
		return slog.String("account", name)
	}
	return slog.String("account", SanitizedName(name))
}

func (al *AuditLogger) emit(success bool, attrs []slog.Attr) {
	level := slog.LevelInfo
	if !success {
		level = slog.LevelWarn
	}
	al.logger.LogAttrs(context.Background(), level, "audit", attrs...)
}

// LogAuthAttempt logs authentication attempts
func (al *AuditLogger) LogAuthAttempt(event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("audit_type", "auth"),
		slog.String("event_type", event.EventType),
		slog.Bool("success", event.Success),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}

	if event.Account != "" {
		attrs = append(attrs, al.account(event.Account))
	}
	if event.IPAddress != "" {
		attrs = append(attrs, slog.String("ip_address", event.IPAddress))
	}
	if event.UserAgent != "" {
		attrs = append(attrs, slog.String("user_agent", event.UserAgent))
	}
	if event.FailureReason != "" {
		attrs = append(attrs, slog.String("failure_reason", event.FailureReason))
	}
	for key, val := range event.Metadata {
		attrs = append(attrs, slog.String(key, val))
	}

	al.emit(event.Success, attrs)
}

// LogPasswordChange logs password change events
func (al *AuditLogger) LogPasswordChange(account, failureReason string, success bool) {
	attrs := []slog.Attr{
		slog.String("audit_type", "password"),
		slog.String("event_type", "password_change"),
		slog.Bool("success", success),
		al.account(account),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}

	if failureReason != "" {
		attrs = append(attrs, slog.String("failure_reason", failureReason))
	}

	al.emit(success, attrs)
}

// LogAccountAction logs recovery requests, unlocks and other account actions
func (al *AuditLogger) LogAccountAction(eventType, actor, account string, metadata map[string]string) {
	attrs := []slog.Attr{
		slog.String("audit_type", "account"),
		slog.String("event_type", eventType),
		al.account(account),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}

	if actor != "" {
		attrs = append(attrs, slog.String("actor", SanitizedName(actor)))
	}

	for key, val := range metadata {
		attrs = append(attrs, slog.String(key, val))
	}

	al.emit(true, attrs)
}
