package repositories

import (
	"context"
	"sync"
	"testing"

	"github.com/excellence-hub/excellence/internal/kvstore"
	"github.com/excellence-hub/excellence/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAttemptRepository_IncrementAndReset(t *testing.T) {
	ctx := context.Background()
	repo := NewLoginAttemptRepository(kvstore.NewMemoryStore())

	for want := 1; want <= 5; want++ {
		got, err := repo.Increment(ctx, "student_janedoe")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	count, err := repo.Count(ctx, "student_janedoe")
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	require.NoError(t, repo.Reset(ctx, "student_janedoe"))
	count, err = repo.Count(ctx, "student_janedoe")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, all, "student_janedoe")
}

func TestLoginAttemptRepository_ResetAbsentIsNoop(t *testing.T) {
	repo := NewLoginAttemptRepository(kvstore.NewMemoryStore())
	assert.NoError(t, repo.Reset(context.Background(), "student_nobody"))
}

func TestLoginAttemptRepository_ConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	repo := NewLoginAttemptRepository(kvstore.NewMemoryStore())

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		key := "student_a"
		if i%3 == 0 {
			key = "student_b"
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Increment(ctx, key)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, all["student_a"])
	assert.Equal(t, 10, all["student_b"])
}

func TestLoginAttemptRepository_StorageErrors(t *testing.T) {
	repo := NewLoginAttemptRepository(failingStore{})

	count, err := repo.Count(context.Background(), "student_janedoe")
	assert.Equal(t, 0, count)
	assert.ErrorIs(t, err, models.ErrStorage)

	_, err = repo.Increment(context.Background(), "student_janedoe")
	assert.ErrorIs(t, err, models.ErrStorage)

	all, err := repo.List(context.Background())
	assert.Empty(t, all)
	assert.ErrorIs(t, err, models.ErrStorage)
}

func TestLoginAttemptRepository_NullDocument(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, LoginAttemptsKey, []byte("null")))
	repo := NewLoginAttemptRepository(store)

	count, err := repo.Count(ctx, "student_janedoe")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)

	require.NoError(t, repo.Reset(ctx, "student_janedoe"))
	got, err := repo.Increment(ctx, "student_janedoe")
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestLoginAttemptRepository_WrongShapeDocument(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, LoginAttemptsKey, []byte(`["student_janedoe"]`)))
	repo := NewLoginAttemptRepository(store)

	count, err := repo.Count(ctx, "student_janedoe")
	assert.ErrorIs(t, err, models.ErrStorage)
	assert.Equal(t, 0, count)

	_, err = repo.Increment(ctx, "student_janedoe")
	assert.ErrorIs(t, err, models.ErrStorage)
}
