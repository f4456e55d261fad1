package repository

import (
	"context"
	"database/sql"
	"time"
)

// SessionRepo handles session rows.
type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Create(ctx context.Context, s Session) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO sessions(id, started_at, games_played)
	VALUES (?, ?, 0);
	`, s.ID, s.StartedAt)
	return err
}

// Finish stamps the session with its end time and final state.
func (r *SessionRepo) Finish(ctx context.Context, id string, endedAt time.Time, endState string) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE sessions SET ended_at = ?, end_state = ? WHERE id = ?;
	`, endedAt, endState, id)
	return err
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*Session, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, started_at, ended_at, end_state, games_played FROM sessions WHERE id = ?`, id)
	var s Session
	var ended sql.NullTime
	var state sql.NullString
	if err := row.Scan(&s.ID, &s.StartedAt, &ended, &state, &s.GamesPlayed); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if ended.Valid {
		s.EndedAt = &ended.Time
	}
	if state.Valid {
		s.EndState = &state.String
	}
	return &s, nil
}
