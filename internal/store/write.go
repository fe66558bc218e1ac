package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// SaveGame writes g and its moves in one transaction and returns the stored
// seq. Uses ON CONFLICT(id) DO NOTHING for idempotency: saving an existing ID
// leaves the original row untouched and returns its seq.
//
// g.Seq is ignored; the store assigns seq as MAX(seq)+1.
func (s *Store) SaveGame(ctx context.Context, g Game) (int64, error) {
	if g.ID == "" {
		return 0, fmt.Errorf("save game: empty id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("save game: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	var existing int64
	err = tx.QueryRowContext(ctx, `SELECT seq FROM games WHERE id = ?`, g.ID).Scan(&existing)
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, fmt.Errorf("save game: lookup: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM games`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("save game: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO games
		(id, seq, winner, final_board, seed, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		g.ID,
		seq,
		g.Winner,
		int64(g.FinalBoard),
		strconv.FormatUint(g.Seed, 16),
		g.StartedAt.UTC().Format(time.RFC3339Nano),
		g.EndedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("save game: insert game: %w", err)
	}

	for _, mv := range g.Moves {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO moves (game_id, ply, cell, player)
			VALUES (?, ?, ?, ?)
			ON CONFLICT DO NOTHING
		`, g.ID, mv.Ply, mv.Cell, mv.Player)
		if err != nil {
			return 0, fmt.Errorf("save game: insert move %d: %w", mv.Ply, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("save game: commit: %w", err)
	}
	return seq, nil
}
