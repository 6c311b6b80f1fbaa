package kvstore

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		s, err := NewFileStore(afero.NewMemMapFs(), "data/store.json")
		require.NoError(t, err)
		return s
	}, true)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	fs := afero.NewMemMapFs()
	ctx := context.Background()

	first, err := NewFileStore(fs, "data/store.json")
	require.NoError(t, err)
	require.NoError(t, SetJSON(ctx, first, "userPasswords", map[string]string{"student_janedoe": "pw"}))
	require.NoError(t, first.Close())

	second, err := NewFileStore(fs, "data/store.json")
	require.NoError(t, err)
	got, err := GetJSON(ctx, second, "userPasswords", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "pw", got["student_janedoe"])

	exists, err := afero.Exists(fs, "data/store.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileStore_RejectsCorruptFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "store.json", []byte("{not json"), 0o600))

	_, err := NewFileStore(fs, "store.json")
	assert.Error(t, err)
}

func TestFileStore_RejectsInvalidJSONValue(t *testing.T) {
	s, err := NewFileStore(afero.NewMemMapFs(), "store.json")
	require.NoError(t, err)

	err = s.Set(context.Background(), "k", []byte("not json"))
	assert.Error(t, err)
}

func TestFileStore_EmptyFileIsEmptyStore(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "store.json", nil, 0o600))

	s, err := NewFileStore(fs, "store.json")
	require.NoError(t, err)
	_, ok, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
