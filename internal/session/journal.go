package session

import (
	"context"
	"time"
)

// Entry is one finished game as the journal records it.
type Entry struct {
	Game     string
	Outcome  string
	PlayedAt time.Time
}

// Journal persists game results across sessions. The controller treats
// a nil Journal as no persistence: games still play, HISTORY renders
// "NO RECORDS ON FILE".
type Journal interface {
	// Record stores one finished game.
	Record(ctx context.Context, e Entry) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)
}
