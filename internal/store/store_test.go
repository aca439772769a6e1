package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrate_Idempotent(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Migrate())

	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='files'",
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "files", name)
}

func TestNewStore_InvalidPath(t *testing.T) {
	t.Parallel()
	_, err := NewStore("/nonexistent/dir/cache.db")
	require.Error(t, err)
}

func TestFileByPath_Missing(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	f, err := s.FileByPath("/tmp/never-seen.xsd")
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestUpsertFile_InsertThenLookup(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	in := &File{
		Path:           "/tmp/a.xsd",
		Hash:           "abc123",
		OutputPath:     "/tmp/out/a.xsd",
		LastNormalized: time.Now().Truncate(time.Second),
	}
	require.NoError(t, s.UpsertFile(in))

	got, err := s.FileByPath("/tmp/a.xsd")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "abc123", got.Hash)
	assert.Equal(t, "/tmp/out/a.xsd", got.OutputPath)
	assert.Positive(t, got.ID)
}

func TestUpsertFile_UpdatesExistingRecord(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	require.NoError(t, s.UpsertFile(&File{
		Path: "/tmp/a.xsd", Hash: "old", OutputPath: "/tmp/out/a.xsd",
		LastNormalized: time.Now(),
	}))
	require.NoError(t, s.UpsertFile(&File{
		Path: "/tmp/a.xsd", Hash: "new", OutputPath: "/tmp/other/a.xsd",
		LastNormalized: time.Now(),
	}))

	got, err := s.FileByPath("/tmp/a.xsd")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "new", got.Hash)
	assert.Equal(t, "/tmp/other/a.xsd", got.OutputPath)

	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM files").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "cache.db")

	s, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	require.NoError(t, s.UpsertFile(&File{
		Path: "/tmp/a.xsd", Hash: "h1", OutputPath: "/tmp/out/a.xsd",
		LastNormalized: time.Now(),
	}))
	require.NoError(t, s.Close())

	s2, err := NewStore(dbPath)
	require.NoError(t, err)
	defer s2.Close()
	require.NoError(t, s2.Migrate())

	got, err := s2.FileByPath("/tmp/a.xsd")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "h1", got.Hash)
}
