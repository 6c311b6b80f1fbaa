package repositories

import (
	"context"
	"testing"

	"github.com/excellence-hub/excellence/internal/kvstore"
	"github.com/excellence-hub/excellence/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterRepository_Defaults(t *testing.T) {
	ctx := context.Background()
	repo := NewRosterRepository(kvstore.NewMemoryStore())

	students, err := repo.Students(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)

	masters, err := repo.Masters(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultMasters, masters)

	users, err := repo.MHSUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultMHSUsers, users)
}

func TestRosterRepository_StoredListsWin(t *testing.T) {
	ctx := context.Background()
	repo := NewRosterRepository(kvstore.NewMemoryStore())

	require.NoError(t, repo.SetStudents(ctx, []string{"JANE DOE"}))
	require.NoError(t, repo.SetMasters(ctx, []string{"HEAD MASTER"}))
	require.NoError(t, repo.SetMHSUsers(ctx, []models.MHSUser{{Name: "Treasurer", Role: "other", SubRole: "accounter"}}))

	students, err := repo.Students(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"JANE DOE"}, students)

	masters, err := repo.Masters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"HEAD MASTER"}, masters)

	users, err := repo.MHSUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "accounter", users[0].SubRole)
}

func TestRosterRepository_ReadFaultReturnsDefaults(t *testing.T) {
	masters, err := NewRosterRepository(failingStore{}).Masters(context.Background())
	assert.ErrorIs(t, err, models.ErrStorage)
	assert.Equal(t, models.DefaultMasters, masters)
}
