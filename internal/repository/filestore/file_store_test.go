package filestore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/KretovDmitry/shorturl/internal/errs"
	"github.com/KretovDmitry/shorturl/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	return fs
}

func TestNewFileStore(t *testing.T) {
	_, err := NewFileStore("")
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "nested", "dir", "db.json")
	fs, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, fs.Path())
	assert.DirExists(t, filepath.Dir(path))
	assert.NoFileExists(t, path, "file must be created lazily")
}

func TestLoad_CreatesMissingFile(t *testing.T) {
	fs := newTestStore(t)

	entries, err := fs.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NotNil(t, entries)

	b, err := os.ReadFile(fs.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestLoad_EmptyAndNullFile(t *testing.T) {
	for _, content := range []string{"", "null"} {
		t.Run(content, func(t *testing.T) {
			fs := newTestStore(t)
			require.NoError(t, os.WriteFile(fs.Path(), []byte(content), 0o600))

			entries, err := fs.Load(context.Background())
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestLoad_CorruptedFile(t *testing.T) {
	fs := newTestStore(t)
	require.NoError(t, os.WriteFile(fs.Path(), []byte(`[{"url":`), 0o600))

	_, err := fs.Load(context.Background())
	require.Error(t, err)
}

func TestPersist_RoundTrip(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()

	want := []models.Entry{
		{URL: "https://www.google.com/"},
		{URL: "https://go.dev/"},
	}
	require.NoError(t, fs.Persist(ctx, want))

	got, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	b, err := os.ReadFile(fs.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"url":"https://www.google.com/"},{"url":"https://go.dev/"}]`, string(b))
}

func TestPersist_Overwrites(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, fs.Persist(ctx, []models.Entry{{URL: "a.com"}, {URL: "b.com"}, {URL: "c.com"}}))
	require.NoError(t, fs.Persist(ctx, []models.Entry{{URL: "d.com"}}))

	got, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Entry{{URL: "d.com"}}, got)
}

func TestPersist_NilCollection(t *testing.T) {
	fs := newTestStore(t)

	require.NoError(t, fs.Persist(context.Background(), nil))

	b, err := os.ReadFile(fs.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))
}

func TestPersist_RecreatesDeletedFile(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()

	_, err := fs.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, os.Remove(fs.Path()))

	require.NoError(t, fs.Persist(ctx, []models.Entry{{URL: "a.com"}}))
	assert.FileExists(t, fs.Path())
}

func TestPersistLoad_Idempotent(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, fs.Persist(ctx, []models.Entry{{URL: "https://a.com/"}, {URL: "not normalized "}}))
	before, err := os.ReadFile(fs.Path())
	require.NoError(t, err)

	entries, err := fs.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, fs.Persist(ctx, entries))

	after, err := os.ReadFile(fs.Path())
	require.NoError(t, err)
	assert.Equal(t, bytes.TrimSpace(before), bytes.TrimSpace(after))
}

func TestGetByIndex(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, fs.Persist(ctx, []models.Entry{{URL: "a.com"}, {URL: "b.com"}}))

	tests := []struct {
		name    string
		index   int
		want    *models.Entry
		wantErr error
	}{
		{name: "first", index: 0, want: &models.Entry{URL: "a.com"}},
		{name: "last", index: 1, want: &models.Entry{URL: "b.com"}},
		{name: "past the end", index: 2, wantErr: errs.ErrNotFound},
		{name: "negative", index: -1, wantErr: errs.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fs.GetByIndex(ctx, tt.index)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetByIndex_ReflectsLatestFile(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()

	_, err := fs.GetByIndex(ctx, 0)
	require.ErrorIs(t, err, errs.ErrNotFound)

	// another writer updates the file behind our back
	require.NoError(t, os.WriteFile(fs.Path(), []byte(`[{"url":"x.com"}]`), 0o600))

	got, err := fs.GetByIndex(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "x.com", got.URL)
}

func TestPing(t *testing.T) {
	fs := newTestStore(t)
	assert.ErrorIs(t, fs.Ping(context.Background()), errs.ErrDBNotConnected)
}
