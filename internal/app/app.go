// Package app wires the store, repositories and services from configuration.
// Both the HTTP server and the administrator CLI start from here.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/excellence-hub/excellence/internal/auth"
	"github.com/excellence-hub/excellence/internal/config"
	"github.com/excellence-hub/excellence/internal/kvstore"
	"github.com/excellence-hub/excellence/internal/models"
	"github.com/excellence-hub/excellence/internal/repositories"
	"github.com/excellence-hub/excellence/internal/services"
	pkglogger "github.com/excellence-hub/excellence/pkg/logger"
)

// App holds the wired services.
type App struct {
	Config        *config.Config
	Store         kvstore.Store
	Administrator models.Identity
	TokenManager  *auth.TokenManager
	AuditLogger   *pkglogger.AuditLogger

	Credentials *services.CredentialService
	Attempts    *services.LoginAttemptService
	Auth        *services.AuthService
	Recovery    *services.RecoveryService
	Roster      *services.RosterService
}

// New opens the configured store and builds every service over it.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := kvstore.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}

	var notifier services.RecoveryNotifier
	if cfg.Email.Enabled {
		ses, err := services.NewSESRecoveryNotifier(ctx, cfg.Email.AWSRegion, cfg.Email.FromAddress, cfg.Email.AdminEmail, logger)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to initialize recovery e-mail: %w", err)
		}
		notifier = ses
	}

	return NewWithStore(store, notifier, cfg, logger), nil
}

// NewWithStore builds the services over an already opened store. A nil
// notifier disables recovery e-mails.
func NewWithStore(store kvstore.Store, notifier services.RecoveryNotifier, cfg *config.Config, logger *slog.Logger) *App {
	audit := pkglogger.NewAuditLogger(logger, cfg.Server.Env)
	admin := models.Identity{
		Name: strings.TrimSpace(cfg.Recovery.AdminName),
		Type: models.AccountTypeMaster,
	}

	credentialRepo := repositories.NewCredentialRepository(store)
	attemptRepo := repositories.NewLoginAttemptRepository(store)
	notificationRepo := repositories.NewNotificationRepository(store)
	rosterRepo := repositories.NewRosterRepository(store)

	credentials := services.NewCredentialService(credentialRepo, services.CredentialConfig{
		HashPasswords: cfg.Auth.HashCustomPasswords,
		Strict:        cfg.Store.Strict,
	}, logger, audit)

	attempts := services.NewLoginAttemptService(attemptRepo, services.LoginAttemptConfig{
		Threshold: cfg.Recovery.LockoutThreshold,
		Strict:    cfg.Store.Strict,
	}, logger)

	tm := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenExpiry)
	timing := auth.NewTimingDelay(auth.TimingConfig{
		BaseDelay:   cfg.Auth.TimingDelayBase,
		RandomDelay: cfg.Auth.TimingDelayRandom,
	})

	return &App{
		Config:        cfg,
		Store:         store,
		Administrator: admin,
		TokenManager:  tm,
		AuditLogger:   audit,
		Credentials:   credentials,
		Attempts:      attempts,
		Auth:          services.NewAuthService(credentials, attempts, tm, timing, logger, audit),
		Recovery: services.NewRecoveryService(store, credentialRepo, attemptRepo, notificationRepo,
			notifier, admin, logger, audit),
		Roster: services.NewRosterService(rosterRepo, cfg.Store.Strict, logger),
	}
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}
