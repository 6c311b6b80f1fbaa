package repositories

import (
	"fmt"

	"github.com/excellence-hub/excellence/internal/models"
)

// Document keys, shared with the web client.
const (
	CredentialsKey        = "userPasswords"
	LoginAttemptsKey      = "loginAttempts"
	notificationKeyPrefix = "userNotifications_"
)

// storageError marks err as a store fault while keeping the cause inspectable.
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", models.ErrStorage, op, err)
}
