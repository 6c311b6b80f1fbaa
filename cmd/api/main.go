package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/excellence-hub/excellence/internal/app"
	"github.com/excellence-hub/excellence/internal/background"
	"github.com/excellence-hub/excellence/internal/config"
	"github.com/excellence-hub/excellence/internal/handlers"
	middlewareCustom "github.com/excellence-hub/excellence/internal/middleware"
	"github.com/excellence-hub/excellence/internal/routes"
	pkghttp "github.com/excellence-hub/excellence/pkg/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.Server.LogLevel)}))
	slog.SetDefault(logger)

	logger.Info("configuration loaded",
		slog.String("env", cfg.Server.Env),
		slog.String("store", cfg.Store.Backend),
		slog.Int("lockout_threshold", cfg.Recovery.LockoutThreshold))

	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	application, err := app.New(startCtx, cfg, logger)
	startCancel()
	if err != nil {
		logger.Error("failed to initialize application", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("failed to close store", slog.Any("error", err))
		}
	}()

	ips, err := pkghttp.NewClientIPResolver(cfg.Server.TrustedProxies)
	if err != nil {
		logger.Error("invalid TRUSTED_PROXIES", slog.Any("error", err))
		os.Exit(1)
	}

	h := routes.Handlers{
		Auth:   handlers.NewAuthHandler(application.Auth, application.Credentials, application.Attempts, application.Recovery, ips),
		Admin:  handlers.NewAdminHandler(application.Recovery, application.Attempts),
		Roster: handlers.NewRosterHandler(application.Roster),
		Health: handlers.NewHealthHandler(application.Store, cfg.Store.Backend, logger),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(middlewareCustom.DefaultCORSConfig(cfg.Server.AllowedOrigins)))
	router.Use(middlewareCustom.SecureLogger(logger, ips))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(30 * time.Second))

	routes.RegisterRoutes(router, h, routes.Options{
		TokenManager:           application.TokenManager,
		Administrator:          application.Administrator,
		AuthRateLimitPerMinute: cfg.Server.AuthRateLimitPerMinute,
		ClientIPs:              ips,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	var reporter *background.LockoutReporter
	if cfg.Recovery.ReportInterval > 0 {
		reporter = background.NewLockoutReporter(application.Attempts, logger, cfg.Recovery.ReportInterval)
		go reporter.Start(bgCtx)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", slog.Any("error", err))
	}

	if reporter != nil {
		reporter.Stop()
	}
	bgCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		return
	}

	logger.Info("server stopped gracefully")
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
