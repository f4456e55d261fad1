package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/falken/wopr/internal/database"
	"github.com/falken/wopr/internal/session"
)

// Journal persists game results under a session row. It satisfies
// session.Journal so the controller never sees the storage layer.
type Journal struct {
	sessions  *SessionRepo
	results   *ResultRepo
	sessionID string
}

// NewJournal opens a fresh session row and returns a journal bound to
// it. Call Close when the connection ends to stamp the row.
func NewJournal(ctx context.Context, db *sql.DB) (*Journal, error) {
	j := &Journal{
		sessions:  NewSessionRepo(db),
		results:   NewResultRepo(db),
		sessionID: uuid.NewString(),
	}
	err := j.sessions.Create(ctx, Session{ID: j.sessionID, StartedAt: database.Now()})
	if err != nil {
		return nil, err
	}
	return j, nil
}

// SessionID returns the id of the session row this journal writes to.
func (j *Journal) SessionID() string { return j.sessionID }

func (j *Journal) Record(ctx context.Context, e session.Entry) error {
	return j.results.Insert(ctx, GameResult{
		ID:        uuid.NewString(),
		SessionID: j.sessionID,
		Game:      e.Game,
		Outcome:   e.Outcome,
		PlayedAt:  e.PlayedAt,
	})
}

func (j *Journal) Recent(ctx context.Context, limit int) ([]session.Entry, error) {
	results, err := j.results.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]session.Entry, 0, len(results))
	for _, res := range results {
		entries = append(entries, session.Entry{Game: res.Game, Outcome: res.Outcome, PlayedAt: res.PlayedAt})
	}
	return entries, nil
}

// Close marks the session row finished with the given end state.
func (j *Journal) Close(ctx context.Context, endState string) error {
	return j.sessions.Finish(ctx, j.sessionID, database.Now(), endState)
}
