package kvstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/excellence-hub/excellence/internal/config"
	"github.com/excellence-hub/excellence/internal/database"
	"github.com/spf13/afero"
)

// Open builds the backend selected by cfg.Store.Backend.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		logger.Warn("using in-memory store, state is lost on restart")
		return NewMemoryStore(), nil

	case config.StoreBackendFile:
		s, err := NewFileStore(afero.NewOsFs(), cfg.Store.FilePath)
		if err != nil {
			return nil, err
		}
		logger.Info("file store opened", slog.String("path", cfg.Store.FilePath))
		return s, nil

	case config.StoreBackendSQLite:
		s, err := NewSQLiteStore(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("sqlite store opened", slog.String("path", cfg.Store.SQLitePath))
		return s, nil

	case config.StoreBackendPostgres:
		db, err := database.NewConnection(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return NewPostgresStore(db), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
