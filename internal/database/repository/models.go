package repository

import "time"

// Session represents one connection to the system, from dial-up to
// sign-off.
type Session struct {
	ID          string
	StartedAt   time.Time
	EndedAt     *time.Time
	EndState    *string
	GamesPlayed int
}

// GameResult represents a single concluded game within a session.
type GameResult struct {
	ID        string
	SessionID string
	Game      string
	Outcome   string
	PlayedAt  time.Time
}
