package store

import "time"

// Game is one finished game and its move log.
type Game struct {
	ID         string    `json:"id"`
	Seq        int64     `json:"seq"`
	Winner     string    `json:"winner"` // "O", "X" or "D"
	FinalBoard uint32    `json:"final_board"`
	Seed       uint64    `json:"seed"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
	Moves      []Move    `json:"moves"`
}

// Move is one ply of a game.
type Move struct {
	Ply    int    `json:"ply"`
	Cell   int    `json:"cell"`
	Player string `json:"player"`
}
