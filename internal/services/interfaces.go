package services

import (
	"context"

	"github.com/excellence-hub/excellence/internal/kvstore"
	"github.com/excellence-hub/excellence/internal/models"
)

// CredentialRepository defines persistence for password overrides
type CredentialRepository interface {
	Get(ctx context.Context, accountKey string) (string, bool, error)
	Set(ctx context.Context, accountKey, password string) error
	SetTx(tx kvstore.Tx, accountKey, password string) error
}

// LoginAttemptRepository defines persistence for the failed-login counters
type LoginAttemptRepository interface {
	Increment(ctx context.Context, accountKey string) (int, error)
	Reset(ctx context.Context, accountKey string) error
	ResetTx(tx kvstore.Tx, accountKey string) error
	Count(ctx context.Context, accountKey string) (int, error)
	List(ctx context.Context) (map[string]int, error)
}

// NotificationRepository defines persistence for user inboxes
type NotificationRepository interface {
	Append(ctx context.Context, recipient string, n models.Notification) error
	List(ctx context.Context, recipient string) ([]models.Notification, error)
	RemoveTx(tx kvstore.Tx, recipient string, match func(*models.Notification) bool) (int, error)
}

// RosterRepository defines persistence for the managed name lists
type RosterRepository interface {
	Students(ctx context.Context) ([]string, error)
	Masters(ctx context.Context) ([]string, error)
	MHSUsers(ctx context.Context) ([]models.MHSUser, error)
	SetStudents(ctx context.Context, names []string) error
	SetMasters(ctx context.Context, names []string) error
	SetMHSUsers(ctx context.Context, users []models.MHSUser) error
}

// Transactor runs an atomic multi-document update.
type Transactor interface {
	Update(ctx context.Context, keys []string, fn func(kvstore.Tx) error) error
}
