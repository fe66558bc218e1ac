package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrNotFound is returned when a game ID does not exist.
var ErrNotFound = errors.New("game not found")

// ListGames returns up to limit games (all if limit <= 0) with their moves.
// Results are ordered by seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if no games exist.
func (s *Store) ListGames(ctx context.Context, limit int) ([]Game, error) {
	query := `
		SELECT id, seq, winner, final_board, seed, started_at, ended_at
		FROM games
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}

	games := []Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	rows.Close()

	// Moves are read after the games cursor is closed: the pool has a
	// single connection.
	for i := range games {
		moves, err := s.readMoves(ctx, games[i].ID)
		if err != nil {
			return nil, err
		}
		games[i].Moves = moves
	}
	return games, nil
}

// ReadGame returns one game by ID, or ErrNotFound.
func (s *Store) ReadGame(ctx context.Context, id string) (Game, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, winner, final_board, seed, started_at, ended_at
		FROM games
		WHERE id = ?
	`, id)

	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Game{}, fmt.Errorf("read game %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Game{}, err
	}

	g.Moves, err = s.readMoves(ctx, id)
	if err != nil {
		return Game{}, err
	}
	return g, nil
}

// CountGames returns the number of stored games.
func (s *Store) CountGames(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return n, nil
}

func (s *Store) readMoves(ctx context.Context, gameID string) ([]Move, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ply, cell, player
		FROM moves
		WHERE game_id = ?
		ORDER BY ply ASC
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query moves: %w", err)
	}
	defer rows.Close()

	moves := []Move{}
	for rows.Next() {
		var mv Move
		if err := rows.Scan(&mv.Ply, &mv.Cell, &mv.Player); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		moves = append(moves, mv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate moves: %w", err)
	}
	return moves, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(r rowScanner) (Game, error) {
	var (
		g          Game
		finalBoard int64
		seedHex    string
		startedAt  string
		endedAt    string
	)
	if err := r.Scan(&g.ID, &g.Seq, &g.Winner, &finalBoard, &seedHex, &startedAt, &endedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Game{}, err
		}
		return Game{}, fmt.Errorf("scan game: %w", err)
	}

	seed, err := strconv.ParseUint(seedHex, 16, 64)
	if err != nil {
		return Game{}, fmt.Errorf("parse seed %q: %w", seedHex, err)
	}
	g.Seed = seed
	g.FinalBoard = uint32(finalBoard)

	if g.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return Game{}, fmt.Errorf("parse started_at: %w", err)
	}
	if g.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
		return Game{}, fmt.Errorf("parse ended_at: %w", err)
	}
	return g, nil
}
