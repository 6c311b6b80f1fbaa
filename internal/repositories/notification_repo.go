package repositories

import (
	"context"

	"github.com/excellence-hub/excellence/internal/kvstore"
	"github.com/excellence-hub/excellence/internal/models"
)

// NotificationRepository stores each user's inbox as an ordered list.
type NotificationRepository struct {
	store kvstore.Store
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(store kvstore.Store) *NotificationRepository {
	return &NotificationRepository{store: store}
}

// NotificationsKey is the document key of recipient's inbox.
func NotificationsKey(recipient string) string {
	return notificationKeyPrefix + recipient
}

// Append adds n to the end of recipient's inbox. Duplicates are kept.
func (r *NotificationRepository) Append(ctx context.Context, recipient string, n models.Notification) error {
	key := NotificationsKey(recipient)
	err := r.store.Update(ctx, []string{key}, func(tx kvstore.Tx) error {
		inbox, err := kvstore.TxGetJSON(tx, key, []models.Notification{})
		if err != nil {
			return err
		}
		inbox = append(inbox, n)
		return kvstore.TxPutJSON(tx, key, inbox)
	})
	return storageError("append notification", err)
}

// List returns recipient's inbox, oldest first.
func (r *NotificationRepository) List(ctx context.Context, recipient string) ([]models.Notification, error) {
	inbox, err := kvstore.GetJSON(ctx, r.store, NotificationsKey(recipient), []models.Notification{})
	if err != nil {
		return []models.Notification{}, storageError("read notifications", err)
	}
	return inbox, nil
}

// RemoveTx drops every entry of recipient's inbox for which match returns
// true and reports how many were removed. The caller's Update must declare
// NotificationsKey(recipient).
func (r *NotificationRepository) RemoveTx(tx kvstore.Tx, recipient string, match func(*models.Notification) bool) (int, error) {
	key := NotificationsKey(recipient)
	inbox, err := kvstore.TxGetJSON(tx, key, []models.Notification{})
	if err != nil {
		return 0, err
	}
	kept := inbox[:0]
	for i := range inbox {
		if !match(&inbox[i]) {
			kept = append(kept, inbox[i])
		}
	}
	removed := len(inbox) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, kvstore.TxPutJSON(tx, key, kept)
}
