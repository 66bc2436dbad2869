package credentials

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"aurevo-menu/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := config.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	store := NewGormStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// runStoreContract exercises behaviour every backend must share.
func runStoreContract(t *testing.T, store Store, prefix string) {
	ctx := context.Background()
	alice := prefix + "alice"

	t.Run("create assigns id", func(t *testing.T) {
		user, err := store.Create(ctx, alice, "hash-1")
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, alice, user.Username)
		assert.Equal(t, "hash-1", user.PasswordHash)
	})

	t.Run("find returns stored row", func(t *testing.T) {
		user, err := store.FindByUsername(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, alice, user.Username)
		assert.Equal(t, "hash-1", user.PasswordHash)
	})

	t.Run("duplicate username rejected and row untouched", func(t *testing.T) {
		before, err := store.FindByUsername(ctx, alice)
		require.NoError(t, err)

		_, err = store.Create(ctx, alice, "hash-2")
		assert.ErrorIs(t, err, ErrUsernameTaken)

		after, err := store.FindByUsername(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("usernames are case sensitive", func(t *testing.T) {
		upper := prefix + "ALICE"
		user, err := store.Create(ctx, upper, "hash-3")
		require.NoError(t, err)
		assert.Equal(t, upper, user.Username)
	})

	t.Run("ids are monotonic", func(t *testing.T) {
		a, err := store.Create(ctx, prefix+"m1", "h")
		require.NoError(t, err)
		b, err := store.Create(ctx, prefix+"m2", "h")
		require.NoError(t, err)
		assert.Greater(t, b.ID, a.ID)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := store.FindByUsername(ctx, prefix+"nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGormStore_Contract(t *testing.T) {
	runStoreContract(t, newSQLiteStore(t), "")
}

func TestGormStore_ConcurrentSignupsOneWinner(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.Create(ctx, "racer", fmt.Sprintf("hash-%d", i))
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		}
	}
	assert.Equal(t, 1, created)

	_, err := store.FindByUsername(ctx, "racer")
	assert.NoError(t, err)
}

// Integration tests for the postgres backend. Skip unless TEST_DATABASE_URL is set.
func TestPgStore_Contract(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("skipping postgres store test: TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	store, err := NewPgStore(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx), "migrations must be re-runnable")

	prefix := fmt.Sprintf("t%d-", time.Now().UnixNano())
	t.Cleanup(func() {
		_, _ = store.pool.Exec(ctx, `DELETE FROM users WHERE username LIKE $1`, prefix+"%")
	})
	runStoreContract(t, store, prefix)
}
