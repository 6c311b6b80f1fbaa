package services

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/excellence-hub/excellence/internal/kvstore"
	"github.com/excellence-hub/excellence/internal/models"
	"github.com/excellence-hub/excellence/internal/repositories"
	pkglogger "github.com/excellence-hub/excellence/pkg/logger"
	"github.com/google/uuid"
)

// RecoveryService queues password recovery requests in the administrator's
// inbox and lets the administrator unlock accounts.
type RecoveryService struct {
	tx            Transactor
	credentials   CredentialRepository
	attempts      LoginAttemptRepository
	notifications NotificationRepository
	notifier      RecoveryNotifier
	admin         models.Identity
	logger        *slog.Logger
	auditLogger   *pkglogger.AuditLogger
	now           func() time.Time
}

// NewRecoveryService creates a new RecoveryService. admin is the only
// identity allowed to list requests and unlock accounts.
func NewRecoveryService(
	tx Transactor,
	credentials CredentialRepository,
	attempts LoginAttemptRepository,
	notifications NotificationRepository,
	notifier RecoveryNotifier,
	admin models.Identity,
	logger *slog.Logger,
	auditLogger *pkglogger.AuditLogger,
) *RecoveryService {
	if notifier == nil {
		notifier = NoopRecoveryNotifier{}
	}
	return &RecoveryService{
		tx:            tx,
		credentials:   credentials,
		attempts:      attempts,
		notifications: notifications,
		notifier:      notifier,
		admin:         admin,
		logger:        logger,
		auditLogger:   auditLogger,
		now:           time.Now,
	}
}

// Administrator returns the identity allowed to unlock accounts.
func (s *RecoveryService) Administrator() models.Identity {
	return s.admin
}

// IsAdministrator reports whether actor is the administrator account.
func (s *RecoveryService) IsAdministrator(actor models.Identity) bool {
	return actor.SameAccount(s.admin)
}

// RequestRecovery appends a recovery request for id to the administrator's
// inbox. Repeated calls add repeated requests.
func (s *RecoveryService) RequestRecovery(ctx context.Context, id models.Identity) (*models.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	notificationID := uuid.New().String()
	n := models.Notification{
		ID:   notificationID,
		Date: now,
		Text: id.Describe() + " has forgotten their password and requests an unlock.",
		Type: models.NotificationTypePasswordRecovery,
		RecoveryData: &models.RecoveryData{
			ID:           notificationID + "_recovery",
			UserToUnlock: id.Name,
			UserType:     string(id.Type),
			UserRole:     id.Role,
			UserSubRole:  id.SubRole,
		},
	}

	if err := s.notifications.Append(ctx, s.admin.Name, n); err != nil {
		s.logger.Error("failed to queue recovery request",
			slog.String("account_key", id.AccountKey()),
			slog.Any("error", err))
		return nil, err
	}

	s.logger.Info("recovery request queued",
		slog.String("account_key", id.AccountKey()),
		slog.String("request_id", n.ID))
	s.auditLogger.LogAccountAction("recovery_requested", "", id.Name, map[string]string{
		"request_id": n.ID,
	})

	if err := s.notifier.NotifyRecoveryRequested(ctx, n); err != nil {
		s.logger.Warn("failed to notify administrator of recovery request",
			slog.String("request_id", n.ID),
			slog.Any("error", err))
	}

	return &n, nil
}

// ListRequests returns the pending recovery requests, oldest first.
func (s *RecoveryService) ListRequests(ctx context.Context, actor models.Identity) ([]models.Notification, error) {
	if !s.IsAdministrator(actor) {
		s.logger.Warn("non-administrator tried to list recovery requests",
			slog.String("account_key", actor.AccountKey()))
		return nil, models.ErrPermissionDenied
	}

	inbox, err := s.notifications.List(ctx, s.admin.Name)
	if err != nil {
		s.logger.Error("failed to read administrator inbox", slog.Any("error", err))
		return nil, err
	}

	requests := make([]models.Notification, 0, len(inbox))
	for i := range inbox {
		if inbox[i].IsRecoveryRequest() {
			requests = append(requests, inbox[i])
		}
	}
	return requests, nil
}

// Unlock resets id's password to its default, clears its failure counter
// and removes its recovery requests, all in one atomic update. Unlocking an
// account that is not locked leaves the same end state.
func (s *RecoveryService) Unlock(ctx context.Context, actor, id models.Identity) error {
	if !s.IsAdministrator(actor) {
		s.logger.Warn("non-administrator tried to unlock an account",
			slog.String("actor", actor.AccountKey()),
			slog.String("account_key", id.AccountKey()))
		return models.ErrPermissionDenied
	}
	if err := id.Validate(); err != nil {
		return err
	}

	accountKey := id.AccountKey()
	inboxKey := repositories.NotificationsKey(s.admin.Name)
	keys := []string{repositories.CredentialsKey, repositories.LoginAttemptsKey, inboxKey}

	var removed int
	err := s.tx.Update(ctx, keys, func(tx kvstore.Tx) error {
		if err := s.credentials.SetTx(tx, accountKey, id.DefaultPassword()); err != nil {
			return err
		}
		if err := s.attempts.ResetTx(tx, accountKey); err != nil {
			return err
		}
		var err error
		removed, err = s.notifications.RemoveTx(tx, s.admin.Name, func(n *models.Notification) bool {
			return n.IsRecoveryRequest() && n.RecoveryData.Identity().SameAccount(id)
		})
		return err
	})
	if err != nil {
		s.logger.Error("unlock failed, no changes applied",
			slog.String("account_key", accountKey),
			slog.Any("error", err))
		return storageFault(err)
	}

	s.logger.Info("account unlocked",
		slog.String("account_key", accountKey),
		slog.Int("removed_requests", removed))
	s.auditLogger.LogAccountAction("account_unlocked", actor.Name, id.Name, map[string]string{
		"removed_requests": strconv.Itoa(removed),
	})
	return nil
}

// UnlockRequest unlocks the account named by a queued recovery request.
func (s *RecoveryService) UnlockRequest(ctx context.Context, actor models.Identity, requestID string) (*models.Identity, error) {
	requests, err := s.ListRequests(ctx, actor)
	if err != nil {
		return nil, err
	}

	for i := range requests {
		n := requests[i]
		if n.ID == requestID || n.RecoveryData.ID == requestID {
			id := n.RecoveryData.Identity()
			if err := s.Unlock(ctx, actor, id); err != nil {
				return nil, err
			}
			return &id, nil
		}
	}
	return nil, models.ErrNotFound
}
