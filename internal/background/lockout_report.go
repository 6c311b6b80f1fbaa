package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/excellence-hub/excellence/internal/models"
)

// LockedAccountLister lists counters at or above the lockout threshold.
type LockedAccountLister interface {
	LockedAccounts(ctx context.Context) ([]models.LockedAccount, error)
}

// LockoutReporter periodically logs the accounts that are waiting for an unlock.
type LockoutReporter struct {
	attempts LockedAccountLister
	logger   *slog.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewLockoutReporter creates a new lockout reporter
func NewLockoutReporter(attempts LockedAccountLister, logger *slog.Logger, interval time.Duration) *LockoutReporter {
	return &LockoutReporter{
		attempts: attempts,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start reports once, then on every tick until Stop or ctx is done.
func (lr *LockoutReporter) Start(ctx context.Context) {
	ticker := time.NewTicker(lr.interval)
	defer ticker.Stop()

	lr.report(ctx)

	for {
		select {
		case <-ticker.C:
			lr.report(ctx)
		case <-lr.stopCh:
			lr.logger.Info("lockout reporter stopped")
			return
		case <-ctx.Done():
			lr.logger.Info("lockout reporter context cancelled")
			return
		}
	}
}

func (lr *LockoutReporter) report(ctx context.Context) {
	reportCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	locked, err := lr.attempts.LockedAccounts(reportCtx)
	if err != nil {
		lr.logger.Error("failed to list locked accounts", slog.Any("error", err))
		return
	}
	if len(locked) == 0 {
		return
	}

	keys := make([]string, 0, len(locked))
	for _, a := range locked {
		keys = append(keys, a.AccountKey)
	}
	lr.logger.Warn("accounts awaiting unlock",
		slog.Int("count", len(locked)),
		slog.Any("account_keys", keys))
}

// Stop signals the reporter to stop
func (lr *LockoutReporter) Stop() {
	close(lr.stopCh)
}
