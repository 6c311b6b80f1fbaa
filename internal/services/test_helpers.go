package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/excellence-hub/excellence/internal/kvstore"
	"github.com/excellence-hub/excellence/internal/models"
)

// MockCredentialRepository implements CredentialRepository for testing
type MockCredentialRepository struct {
	GetFunc   func(ctx context.Context, accountKey string) (string, bool, error)
	SetFunc   func(ctx context.Context, accountKey, password string) error
	SetTxFunc func(tx kvstore.Tx, accountKey, password string) error
}

func (m *MockCredentialRepository) Get(ctx context.Context, accountKey string) (string, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, accountKey)
	}
	return "", false, nil
}

func (m *MockCredentialRepository) Set(ctx context.Context, accountKey, password string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, accountKey, password)
	}
	return nil
}

func (m *MockCredentialRepository) SetTx(tx kvstore.Tx, accountKey, password string) error {
	if m.SetTxFunc != nil {
		return m.SetTxFunc(tx, accountKey, password)
	}
	return nil
}

// MockLoginAttemptRepository implements LoginAttemptRepository for testing
type MockLoginAttemptRepository struct {
	IncrementFunc func(ctx context.Context, accountKey string) (int, error)
	ResetFunc     func(ctx context.Context, accountKey string) error
	ResetTxFunc   func(tx kvstore.Tx, accountKey string) error
	CountFunc     func(ctx context.Context, accountKey string) (int, error)
	ListFunc      func(ctx context.Context) (map[string]int, error)
}

func (m *MockLoginAttemptRepository) Increment(ctx context.Context, accountKey string) (int, error) {
	if m.IncrementFunc != nil {
		return m.IncrementFunc(ctx, accountKey)
	}
	return 1, nil
}

func (m *MockLoginAttemptRepository) Reset(ctx context.Context, accountKey string) error {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, accountKey)
	}
	return nil
}

func (m *MockLoginAttemptRepository) ResetTx(tx kvstore.Tx, accountKey string) error {
	if m.ResetTxFunc != nil {
		return m.ResetTxFunc(tx, accountKey)
	}
	return nil
}

func (m *MockLoginAttemptRepository) Count(ctx context.Context, accountKey string) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, accountKey)
	}
	return 0, nil
}

func (m *MockLoginAttemptRepository) List(ctx context.Context) (map[string]int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return map[string]int{}, nil
}

// MockNotificationRepository implements NotificationRepository for testing
type MockNotificationRepository struct {
	AppendFunc   func(ctx context.Context, recipient string, n models.Notification) error
	ListFunc     func(ctx context.Context, recipient string) ([]models.Notification, error)
	RemoveTxFunc func(tx kvstore.Tx, recipient string, match func(*models.Notification) bool) (int, error)
}

func (m *MockNotificationRepository) Append(ctx context.Context, recipient string, n models.Notification) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, recipient, n)
	}
	return nil
}

func (m *MockNotificationRepository) List(ctx context.Context, recipient string) ([]models.Notification, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, recipient)
	}
	return []models.Notification{}, nil
}

func (m *MockNotificationRepository) RemoveTx(tx kvstore.Tx, recipient string, match func(*models.Notification) bool) (int, error) {
	if m.RemoveTxFunc != nil {
		return m.RemoveTxFunc(tx, recipient, match)
	}
	return 0, nil
}

// MockRosterRepository implements RosterRepository for testing
type MockRosterRepository struct {
	StudentsFunc    func(ctx context.Context) ([]string, error)
	MastersFunc     func(ctx context.Context) ([]string, error)
	MHSUsersFunc    func(ctx context.Context) ([]models.MHSUser, error)
	SetStudentsFunc func(ctx context.Context, names []string) error
	SetMastersFunc  func(ctx context.Context, names []string) error
	SetMHSUsersFunc func(ctx context.Context, users []models.MHSUser) error
}

func (m *MockRosterRepository) Students(ctx context.Context) ([]string, error) {
	if m.StudentsFunc != nil {
		return m.StudentsFunc(ctx)
	}
	return []string{}, nil
}

func (m *MockRosterRepository) Masters(ctx context.Context) ([]string, error) {
	if m.MastersFunc != nil {
		return m.MastersFunc(ctx)
	}
	return models.DefaultMasters, nil
}

func (m *MockRosterRepository) MHSUsers(ctx context.Context) ([]models.MHSUser, error) {
	if m.MHSUsersFunc != nil {
		return m.MHSUsersFunc(ctx)
	}
	return models.DefaultMHSUsers, nil
}

func (m *MockRosterRepository) SetStudents(ctx context.Context, names []string) error {
	if m.SetStudentsFunc != nil {
		return m.SetStudentsFunc(ctx, names)
	}
	return nil
}

func (m *MockRosterRepository) SetMasters(ctx context.Context, names []string) error {
	if m.SetMastersFunc != nil {
		return m.SetMastersFunc(ctx, names)
	}
	return nil
}

func (m *MockRosterRepository) SetMHSUsers(ctx context.Context, users []models.MHSUser) error {
	if m.SetMHSUsersFunc != nil {
		return m.SetMHSUsersFunc(ctx, users)
	}
	return nil
}

// MockRecoveryNotifier implements RecoveryNotifier for testing
type MockRecoveryNotifier struct {
	NotifyFunc func(ctx context.Context, n models.Notification) error
}

func (m *MockRecoveryNotifier) NotifyRecoveryRequested(ctx context.Context, n models.Notification) error {
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, n)
	}
	return nil
}

// MockSESClient implements SESAPI for testing
type MockSESClient struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESClient) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, params, optFns...)
	}
	return &ses.SendEmailOutput{}, nil
}
