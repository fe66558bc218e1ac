// Package store provides SQLite-backed history of finished games.
//
// Each game the runtime completes is written once, with its move log, as:
//   - games: one row per game (winner, compressed final board, seed, times)
//   - moves: one row per ply, keyed by (game_id, ply)
//
// # Critical Patterns
//
// Logical ordering:
//   - Games are ordered by seq INTEGER, assigned at write time as MAX(seq)+1
//     inside the insert transaction. Wall-clock timestamps are informational.
//   - All list queries use ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Idempotent writes:
//   - INSERT ... ON CONFLICT(id) DO NOTHING, so re-saving a game is a no-op.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// The transposition cache is never persisted.
package store
