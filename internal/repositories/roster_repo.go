package repositories

import (
	"context"

	"github.com/excellence-hub/excellence/internal/kvstore"
	"github.com/excellence-hub/excellence/internal/models"
)

// RosterRepository reads and replaces the managed name lists.
type RosterRepository struct {
	store kvstore.Store
}

// NewRosterRepository creates a new RosterRepository
func NewRosterRepository(store kvstore.Store) *RosterRepository {
	return &RosterRepository{store: store}
}

func (r *RosterRepository) Students(ctx context.Context) ([]string, error) {
	names, err := kvstore.GetJSON(ctx, r.store, models.RosterKeyStudents, []string{})
	return names, storageError("read students", err)
}

func (r *RosterRepository) Masters(ctx context.Context) ([]string, error) {
	names, err := kvstore.GetJSON(ctx, r.store, models.RosterKeyMasters, models.DefaultMasters)
	return names, storageError("read masters", err)
}

func (r *RosterRepository) MHSUsers(ctx context.Context) ([]models.MHSUser, error) {
	users, err := kvstore.GetJSON(ctx, r.store, models.RosterKeyMHSUsers, models.DefaultMHSUsers)
	return users, storageError("read mhs users", err)
}

func (r *RosterRepository) SetStudents(ctx context.Context, names []string) error {
	return storageError("write students", kvstore.SetJSON(ctx, r.store, models.RosterKeyStudents, names))
}

func (r *RosterRepository) SetMasters(ctx context.Context, names []string) error {
	return storageError("write masters", kvstore.SetJSON(ctx, r.store, models.RosterKeyMasters, names))
}

func (r *RosterRepository) SetMHSUsers(ctx context.Context, users []models.MHSUser) error {
	return storageError("write mhs users", kvstore.SetJSON(ctx, r.store, models.RosterKeyMHSUsers, users))
}
