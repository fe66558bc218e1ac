package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveGame_AssignsIncreasingSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seq1, err := s.SaveGame(ctx, createTestGame("g1", "O", 0, 5, 1, 6, 2))
	require.NoError(t, err)
	seq2, err := s.SaveGame(ctx, createTestGame("g2", "X", 0, 5, 1, 6, 3, 7))
	require.NoError(t, err)

	assert.Equal(t, int64(1), seq1)
	assert.Equal(t, int64(2), seq2)
}

func TestSaveGame_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	g := createTestGame("g1", "O", 0, 5, 1, 6, 2)
	seq1, err := s.SaveGame(ctx, g)
	require.NoError(t, err)

	g.Winner = "X"
	seq2, err := s.SaveGame(ctx, g)
	require.NoError(t, err)
	assert.Equal(t, seq1, seq2)

	got, err := s.ReadGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "O", got.Winner, "second save must not overwrite")

	n, err := s.CountGames(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSaveGame_EmptyID(t *testing.T) {
	s := createTestStore(t)
	_, err := s.SaveGame(context.Background(), Game{})
	assert.Error(t, err)
}

func TestSaveGame_NoMoves(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.SaveGame(ctx, createTestGame("empty", "D"))
	require.NoError(t, err)

	got, err := s.ReadGame(ctx, "empty")
	require.NoError(t, err)
	assert.NotNil(t, got.Moves)
	assert.Empty(t, got.Moves)
}
