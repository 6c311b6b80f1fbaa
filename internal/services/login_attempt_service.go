package services

import (
	"context"
	"log/slog"
	"sort"

	"github.com/excellence-hub/excellence/internal/models"
)

// LoginAttemptConfig holds the lockout threshold and fault policy.
type LoginAttemptConfig struct {
	// Threshold is the failure count at which recovery is offered.
	Threshold int
	// Strict surfaces counter read faults instead of reading them as zero.
	Strict bool
}

// LoginAttemptService tracks consecutive failed logins per account.
type LoginAttemptService struct {
	repo   LoginAttemptRepository
	config LoginAttemptConfig
	logger *slog.Logger
}

// NewLoginAttemptService creates a new LoginAttemptService
func NewLoginAttemptService(repo LoginAttemptRepository, config LoginAttemptConfig, logger *slog.Logger) *LoginAttemptService {
	if config.Threshold < 1 {
		config.Threshold = 5
	}
	return &LoginAttemptService{
		repo:   repo,
		config: config,
		logger: logger,
	}
}

// Threshold returns the failure count at which recovery is offered.
func (s *LoginAttemptService) Threshold() int {
	return s.config.Threshold
}

// RecordFailure adds one failure and returns the new count. The counter is
// advisory, so a storage fault is logged and reported as count 0.
func (s *LoginAttemptService) RecordFailure(ctx context.Context, id models.Identity) int {
	count, err := s.repo.Increment(ctx, id.AccountKey())
	if err != nil {
		s.logger.Error("failed to record login failure",
			slog.String("account_key", id.AccountKey()),
			slog.Any("error", err))
		return 0
	}
	if count == s.config.Threshold {
		s.logger.Warn("account reached lockout threshold",
			slog.String("account_key", id.AccountKey()),
			slog.Int("failed_attempts", count))
	}
	return count
}

// RecordSuccess clears the counter after a successful login.
func (s *LoginAttemptService) RecordSuccess(ctx context.Context, id models.Identity) {
	if err := s.repo.Reset(ctx, id.AccountKey()); err != nil {
		s.logger.Error("failed to reset login attempts",
			slog.String("account_key", id.AccountKey()),
			slog.Any("error", err))
	}
}

// Count returns the current failure count for id.
func (s *LoginAttemptService) Count(ctx context.Context, id models.Identity) (int, error) {
	count, err := s.repo.Count(ctx, id.AccountKey())
	if err != nil {
		s.logger.Error("failed to read login attempts",
			slog.String("account_key", id.AccountKey()),
			slog.Any("error", err))
		if s.config.Strict {
			return 0, err
		}
		return 0, nil
	}
	return count, nil
}

// RecoveryAvailable reports whether count has reached the threshold.
func (s *LoginAttemptService) RecoveryAvailable(count int) bool {
	return count >= s.config.Threshold
}

// Status reports the counter and whether recovery should be offered.
func (s *LoginAttemptService) Status(ctx context.Context, id models.Identity) (*models.RecoveryStatus, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	count, err := s.Count(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.RecoveryStatus{
		FailedAttempts:    count,
		RecoveryAvailable: s.RecoveryAvailable(count),
	}, nil
}

// LockedAccounts lists counters at or above the threshold, highest first.
func (s *LoginAttemptService) LockedAccounts(ctx context.Context) ([]models.LockedAccount, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list login attempts", slog.Any("error", err))
		if s.config.Strict {
			return nil, err
		}
	}

	locked := make([]models.LockedAccount, 0)
	for key, count := range all {
		if s.RecoveryAvailable(count) {
			locked = append(locked, models.LockedAccount{AccountKey: key, FailedAttempts: count})
		}
	}
	sort.Slice(locked, func(i, j int) bool {
		if locked[i].FailedAttempts != locked[j].FailedAttempts {
			return locked[i].FailedAttempts > locked[j].FailedAttempts
		}
		return locked[i].AccountKey < locked[j].AccountKey
	})
	return locked, nil
}
