package repositories

import (
	"context"

	"github.com/excellence-hub/excellence/internal/kvstore"
)

// LoginAttemptRepository keeps the consecutive failed-login counter per account key.
// An absent entry means zero.
type LoginAttemptRepository struct {
	store kvstore.Store
}

// NewLoginAttemptRepository creates a new LoginAttemptRepository
func NewLoginAttemptRepository(store kvstore.Store) *LoginAttemptRepository {
	return &LoginAttemptRepository{store: store}
}

// Increment adds one failure for accountKey and returns the new count.
func (r *LoginAttemptRepository) Increment(ctx context.Context, accountKey string) (int, error) {
	var count int
	err := r.store.Update(ctx, []string{LoginAttemptsKey}, func(tx kvstore.Tx) error {
		attempts, err := kvstore.TxGetJSON(tx, LoginAttemptsKey, map[string]int{})
		if err != nil {
			return err
		}
		if attempts == nil {
			attempts = map[string]int{}
		}
		count = attempts[accountKey] + 1
		attempts[accountKey] = count
		return kvstore.TxPutJSON(tx, LoginAttemptsKey, attempts)
	})
	if err != nil {
		return 0, storageError("increment login attempts", err)
	}
	return count, nil
}

// Reset removes the counter entry for accountKey.
func (r *LoginAttemptRepository) Reset(ctx context.Context, accountKey string) error {
	err := r.store.Update(ctx, []string{LoginAttemptsKey}, func(tx kvstore.Tx) error {
		return r.ResetTx(tx, accountKey)
	})
	return storageError("reset login attempts", err)
}

// ResetTx is Reset inside a caller's Update, which must declare LoginAttemptsKey.
func (r *LoginAttemptRepository) ResetTx(tx kvstore.Tx, accountKey string) error {
	attempts, err := kvstore.TxGetJSON(tx, LoginAttemptsKey, map[string]int{})
	if err != nil {
		return err
	}
	if _, ok := attempts[accountKey]; !ok {
		return nil
	}
	delete(attempts, accountKey)
	return kvstore.TxPutJSON(tx, LoginAttemptsKey, attempts)
}

// Count returns the current counter for accountKey. On a read fault it
// returns 0 together with the error.
func (r *LoginAttemptRepository) Count(ctx context.Context, accountKey string) (int, error) {
	attempts, err := kvstore.GetJSON(ctx, r.store, LoginAttemptsKey, map[string]int{})
	if err != nil {
		return 0, storageError("read login attempts", err)
	}
	return attempts[accountKey], nil
}

// List returns every counter entry.
func (r *LoginAttemptRepository) List(ctx context.Context) (map[string]int, error) {
	attempts, err := kvstore.GetJSON(ctx, r.store, LoginAttemptsKey, map[string]int{})
	if err != nil {
		return map[string]int{}, storageError("read login attempts", err)
	}
	if attempts == nil {
		attempts = map[string]int{}
	}
	return attempts, nil
}
