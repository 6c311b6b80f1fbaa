package repositories

import (
	"context"

	"github.com/excellence-hub/excellence/internal/kvstore"
)

// CredentialRepository stores password overrides keyed by account key.
// An account without an entry uses its derived default password.
type CredentialRepository struct {
	store kvstore.Store
}

// NewCredentialRepository creates a new CredentialRepository
func NewCredentialRepository(store kvstore.Store) *CredentialRepository {
	return &CredentialRepository{store: store}
}

// Get returns the stored override for accountKey, if any.
func (r *CredentialRepository) Get(ctx context.Context, accountKey string) (string, bool, error) {
	passwords, err := kvstore.GetJSON(ctx, r.store, CredentialsKey, map[string]string{})
	if err != nil {
		return "", false, storageError("read credentials", err)
	}
	pw, ok := passwords[accountKey]
	return pw, ok, nil
}

// Set stores password as the override for accountKey.
func (r *CredentialRepository) Set(ctx context.Context, accountKey, password string) error {
	err := r.store.Update(ctx, []string{CredentialsKey}, func(tx kvstore.Tx) error {
		return r.SetTx(tx, accountKey, password)
	})
	return storageError("write credentials", err)
}

// SetTx is Set inside a caller's Update, which must declare CredentialsKey.
func (r *CredentialRepository) SetTx(tx kvstore.Tx, accountKey, password string) error {
	passwords, err := kvstore.TxGetJSON(tx, CredentialsKey, map[string]string{})
	if err != nil {
		return err
	}
	if passwords == nil {
		passwords = map[string]string{}
	}
	passwords[accountKey] = password
	return kvstore.TxPutJSON(tx, CredentialsKey, passwords)
}
