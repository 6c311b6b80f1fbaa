package services

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/excellence-hub/excellence/internal/auth"
	"github.com/excellence-hub/excellence/internal/models"
	pkglogger "github.com/excellence-hub/excellence/pkg/logger"
)

// PasswordVerifier checks a supplied password against an account.
type PasswordVerifier interface {
	Verify(ctx context.Context, id models.Identity, supplied string) (bool, error)
}

// AttemptTracker records login outcomes.
type AttemptTracker interface {
	RecordFailure(ctx context.Context, id models.Identity) int
	RecordSuccess(ctx context.Context, id models.Identity)
	RecoveryAvailable(count int) bool
}

// LoginRequest is one login submission.
type LoginRequest struct {
	Identity  models.Identity
	Password  string
	IPAddress string
	UserAgent string
}

// AuthService runs the login workflow.
type AuthService struct {
	verifier    PasswordVerifier
	attempts    AttemptTracker
	tm          *auth.TokenManager
	timing      *auth.TimingDelay
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

// NewAuthService creates a new AuthService
func NewAuthService(verifier PasswordVerifier, attempts AttemptTracker, tm *auth.TokenManager, timing *auth.TimingDelay, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *AuthService {
	return &AuthService{
		verifier:    verifier,
		attempts:    attempts,
		tm:          tm,
		timing:      timing,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// Login checks the password for req.Identity. Any display name is a valid
// target. On success the failure counter is cleared and an access token is
// issued. On failure the counter grows by one and the returned result tells
// the caller whether recovery should be offered, alongside
// models.ErrAuthenticationFailed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*models.LoginResult, error) {
	start := time.Now()
	id := req.Identity

	if err := id.Validate(); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, models.ErrEmptyField
	}

	ok, err := s.verifier.Verify(ctx, id, req.Password)
	if err != nil {
		s.logger.Error("login aborted: credential lookup failed", slog.Any("error", err))
		return nil, err
	}

	if !ok {
		count := s.attempts.RecordFailure(ctx, id)
		result := &models.LoginResult{
			State:             models.LoginStateFailure,
			Identity:          id,
			FailedAttempts:    count,
			RecoveryAvailable: s.attempts.RecoveryAvailable(count),
		}

		s.timing.WaitFrom(ctx, start, false)

		s.logger.Info("login failed: invalid credentials",
			slog.String("account_key", id.AccountKey()),
			slog.Int("failed_attempts", count))
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login_failed",
			Account:       id.Name,
			IPAddress:     req.IPAddress,
			UserAgent:     req.UserAgent,
			FailureReason: "invalid_credentials",
			Success:       false,
			Metadata:      map[string]string{"failed_attempts": strconv.Itoa(count)},
		})
		return result, models.ErrAuthenticationFailed
	}

	s.attempts.RecordSuccess(ctx, id)

	token, expiresAt, err := s.tm.GenerateAccessToken(id)
	if err != nil {
		s.logger.Error("failed to generate access token",
			slog.String("account_key", id.AccountKey()),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user logged in", slog.String("account_key", id.AccountKey()))
	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "login_success",
		Account:   id.Name,
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
		Success:   true,
	})

	return &models.LoginResult{
		State:       models.LoginStateSuccess,
		Identity:    id,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
