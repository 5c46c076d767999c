package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpost/inkpost/internal/core/domain"
)

func setupStore(t *testing.T) *CredentialsStore {
	t.Helper()
	store, err := NewCredentialsStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestCredentialsStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file yields the default record", func(t *testing.T) {
		store := setupStore(t)

		creds, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultOwner, creds.Owner)
		assert.Equal(t, domain.DefaultRepo, creds.Repo)
		assert.Empty(t, creds.Token)
		assert.False(t, creds.IsAuthenticated())
	})

	t.Run("corrupt file is an error", func(t *testing.T) {
		store := setupStore(t)
		require.NoError(t, os.WriteFile(store.Path(), []byte("version = [not toml"), 0600))

		_, err := store.Load(ctx)
		assert.Error(t, err)
	})
}

func TestCredentialsStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	want := domain.Credentials{
		ID:        "4a1f6b2e-0000-0000-0000-000000000000",
		Token:     "ghp_test",
		Owner:     "octocat",
		Repo:      "blog",
		UpdatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Token, got.Token)
	assert.Equal(t, want.Owner, got.Owner)
	assert.Equal(t, want.Repo, got.Repo)
	assert.True(t, got.IsAuthenticated())
}

func TestCredentialsStore_FilePermissions(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	require.NoError(t, store.Save(ctx, domain.Credentials{Token: "secret", Owner: "a", Repo: "b"}))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCredentialsStore_MigratesUnversionedFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewCredentialsStore(dir)
	require.NoError(t, err)

	// A pre-versioning file: token only, no version field, no coordinates.
	legacy := "[github]\ntoken = \"ghp_legacy\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, credentialsFile), []byte(legacy), 0600))

	creds, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ghp_legacy", creds.Token)
	assert.Equal(t, domain.DefaultOwner, creds.Owner)
	assert.Equal(t, domain.DefaultRepo, creds.Repo)

	// The migrated shape is written back with the current version.
	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "ghp_legacy")
}
