package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_AppliesPragmas(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.verifyPragma(ctx, "journal_mode", "wal"))
	require.NoError(t, s.verifyPragma(ctx, "foreign_keys", "1"))
	require.NoError(t, s.verifyPragma(ctx, "user_version", "1"))
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kxo.db")

	s1, err := Open(path)
	require.NoError(t, err)
	_, err = s1.SaveGame(context.Background(), createTestGame("g1", "O", 0, 5, 1, 6, 2))
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	n, err := s2.CountGames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestOpen_BadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "kxo.db"))
	assert.Error(t, err)
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{}
	assert.NoError(t, s.Close())
}

func TestOpen_RejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kxo.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.db.Exec("PRAGMA user_version = 9")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaVersion)
}

func TestOpen_NotADatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kxo.db")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("not a database "), 64), 0644))

	_, err := Open(path)
	assert.Error(t, err)
}
