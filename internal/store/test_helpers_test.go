package store

import (
	"path/filepath"
	"testing"
	"time"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var testEpoch = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// createTestGame creates a game with the given moves, alternating O and X.
func createTestGame(id, winner string, cells ...int) Game {
	moves := make([]Move, len(cells))
	for i, c := range cells {
		player := "O"
		if i%2 == 1 {
			player = "X"
		}
		moves[i] = Move{Ply: i + 1, Cell: c, Player: player}
	}
	return Game{
		ID:         id,
		Winner:     winner,
		FinalBoard: 0x15,
		Seed:       0xDEADBEEFCAFEF00D,
		StartedAt:  testEpoch,
		EndedAt:    testEpoch.Add(3 * time.Second),
		Moves:      moves,
	}
}
