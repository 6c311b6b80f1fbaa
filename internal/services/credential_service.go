package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/excellence-hub/excellence/internal/models"
	pkgauth "github.com/excellence-hub/excellence/pkg/auth"
	pkglogger "github.com/excellence-hub/excellence/pkg/logger"
)

// CredentialConfig controls how passwords are read and stored.
type CredentialConfig struct {
	// HashPasswords stores self-service passwords as bcrypt hashes.
	HashPasswords bool
	// Strict fails verification on read faults instead of using the default password.
	Strict bool
}

// CredentialService resolves and changes account passwords.
type CredentialService struct {
	repo        CredentialRepository
	config      CredentialConfig
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

// NewCredentialService creates a new CredentialService
func NewCredentialService(repo CredentialRepository, config CredentialConfig, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *CredentialService {
	return &CredentialService{
		repo:        repo,
		config:      config,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// EffectivePassword returns the stored override or, when none exists or it
// is empty, the derived default. A read fault also yields the default,
// together with the error so the caller can decide whether to proceed.
func (s *CredentialService) EffectivePassword(ctx context.Context, id models.Identity) (string, error) {
	stored, ok, err := s.repo.Get(ctx, id.AccountKey())
	if err != nil {
		s.logger.Error("credential lookup failed, falling back to default password",
			slog.String("account_key", id.AccountKey()),
			slog.Any("error", err))
		return id.DefaultPassword(), err
	}
	if ok && stored != "" {
		return stored, nil
	}
	return id.DefaultPassword(), nil
}

// Verify reports whether supplied matches the account's effective password.
func (s *CredentialService) Verify(ctx context.Context, id models.Identity, supplied string) (bool, error) {
	stored, err := s.EffectivePassword(ctx, id)
	if err != nil && s.config.Strict {
		return false, err
	}
	return pkgauth.MatchPassword(stored, supplied), nil
}

// ChangePassword replaces the account's password after checking the old one.
// The failed-login counter is left untouched.
func (s *CredentialService) ChangePassword(ctx context.Context, id models.Identity, oldPassword, newPassword, confirmPassword string) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if oldPassword == "" || newPassword == "" || confirmPassword == "" {
		s.auditLogger.LogPasswordChange(id.Name, "empty_field", false)
		return models.ErrEmptyField
	}

	if newPassword != confirmPassword {
		s.auditLogger.LogPasswordChange(id.Name, "mismatch", false)
		return models.ErrMismatch
	}

	ok, err := s.Verify(ctx, id, oldPassword)
	if err != nil {
		return err
	}
	if !ok {
		s.auditLogger.LogPasswordChange(id.Name, "wrong_old_password", false)
		return models.ErrWrongOldPassword
	}

	// A plaintext value with a bcrypt prefix would later read as a hash.
	value := newPassword
	if s.config.HashPasswords || pkgauth.IsHashed(newPassword) {
		if len(newPassword) > pkgauth.MaxPasswordLen {
			return fmt.Errorf("%w: password longer than %d bytes", models.ErrInvalidInput, pkgauth.MaxPasswordLen)
		}
		value, err = pkgauth.HashPassword(newPassword)
		if err != nil {
			s.logger.Error("failed to hash password", slog.Any("error", err))
			return models.ErrInternalServer
		}
	}

	if err := s.repo.Set(ctx, id.AccountKey(), value); err != nil {
		s.logger.Error("failed to store new password",
			slog.String("account_key", id.AccountKey()),
			slog.Any("error", err))
		s.auditLogger.LogPasswordChange(id.Name, "storage_error", false)
		return err
	}

	s.logger.Info("password changed", slog.String("account_key", id.AccountKey()))
	s.auditLogger.LogPasswordChange(id.Name, "", true)
	return nil
}
