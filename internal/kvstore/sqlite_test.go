package kvstore

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "store.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	}, true)
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "store.db")

	first, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, SetJSON(ctx, first, "loginAttempts", map[string]int{"student_janedoe": 3}))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	got, err := GetJSON(ctx, second, "loginAttempts", map[string]int{})
	require.NoError(t, err)
	assert.Equal(t, 3, got["student_janedoe"])
	assert.NoError(t, second.Ping(ctx))
}

func TestSQLiteDSN(t *testing.T) {
	dsn := sqliteDSN("data/excellence.db")
	path, rawQuery, ok := strings.Cut(dsn, "?")
	require.True(t, ok)
	assert.Equal(t, "data/excellence.db", path)

	params, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)
	assert.Equal(t, "immediate", params.Get("_txlock"))
	assert.Contains(t, params["_pragma"], "busy_timeout(5000)")
	assert.Contains(t, params["_pragma"], "journal_mode(WAL)")
}

func TestSQLiteStore_TwoHandlesOnOneFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shared.db")

	server, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer server.Close()
	cli, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer cli.Close()

	const perHandle = 10
	var wg sync.WaitGroup
	for _, s := range []Store{server, cli} {
		for i := 0; i < perHandle; i++ {
			wg.Add(1)
			go func(s Store) {
				defer wg.Done()
				err := s.Update(ctx, []string{"loginAttempts"}, func(tx Tx) error {
					m, err := TxGetJSON(tx, "loginAttempts", map[string]int{})
					if err != nil {
						return err
					}
					m["student_janedoe"]++
					return TxPutJSON(tx, "loginAttempts", m)
				})
				assert.NoError(t, err)
			}(s)
		}
	}
	wg.Wait()

	got, err := GetJSON(ctx, server, "loginAttempts", map[string]int{})
	require.NoError(t, err)
	assert.Equal(t, 2*perHandle, got["student_janedoe"])
}
