package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/excellence-hub/excellence/internal/auth"
	"github.com/excellence-hub/excellence/internal/kvstore"
	"github.com/excellence-hub/excellence/internal/models"
	"github.com/excellence-hub/excellence/internal/repositories"
	pkglogger "github.com/excellence-hub/excellence/pkg/logger"
)

const testSecret = "test-secret-32-characters-long!!"

var (
	testAdmin = models.Identity{Name: "NOUFAL ADANY", Type: models.AccountTypeMaster}
	janeDoe   = models.Identity{Name: "Jane Doe", Type: models.AccountTypeStudent}
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAuditLogger() *pkglogger.AuditLogger {
	return pkglogger.NewAuditLogger(newTestLogger(), "test")
}

// testEnv wires every service over one in-memory store.
type testEnv struct {
	store         *kvstore.MemoryStore
	credentialsDB *repositories.CredentialRepository
	attemptsDB    *repositories.LoginAttemptRepository
	inboxDB       *repositories.NotificationRepository
	credentials   *CredentialService
	attempts      *LoginAttemptService
	auth          *AuthService
	recovery      *RecoveryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := kvstore.NewMemoryStore()
	logger := newTestLogger()
	audit := newTestAuditLogger()

	env := &testEnv{
		store:         store,
		credentialsDB: repositories.NewCredentialRepository(store),
		attemptsDB:    repositories.NewLoginAttemptRepository(store),
		inboxDB:       repositories.NewNotificationRepository(store),
	}
	env.credentials = NewCredentialService(env.credentialsDB, CredentialConfig{}, logger, audit)
	env.attempts = NewLoginAttemptService(env.attemptsDB, LoginAttemptConfig{Threshold: 5}, logger)
	env.auth = NewAuthService(
		env.credentials,
		env.attempts,
		auth.NewTokenManager(testSecret, time.Hour),
		auth.NewTimingDelay(auth.TimingConfig{}),
		logger,
		audit,
	)
	env.recovery = NewRecoveryService(store, env.credentialsDB, env.attemptsDB, env.inboxDB, nil, testAdmin, logger, audit)
	return env
}
