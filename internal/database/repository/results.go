package repository

import (
	"context"
	"database/sql"

	"github.com/falken/wopr/internal/database"
)

// ResultRepo handles game results.
type ResultRepo struct {
	db *sql.DB
}

func NewResultRepo(db *sql.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// Insert stores a result and bumps the owning session's game counter
// in the same transaction.
func (r *ResultRepo) Insert(ctx context.Context, res GameResult) error {
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO game_results(id, session_id, game, outcome, played_at)
		VALUES (?, ?, ?, ?, ?);
		`, res.ID, res.SessionID, res.Game, res.Outcome, res.PlayedAt); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `UPDATE sessions SET games_played = games_played + 1 WHERE id = ?`, res.SessionID)
		return err
	})
}

// Recent returns the latest results across all sessions, newest first.
func (r *ResultRepo) Recent(ctx context.Context, limit int) ([]GameResult, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, session_id, game, outcome, played_at
	FROM game_results
	ORDER BY played_at DESC, id DESC
	LIMIT ?;
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []GameResult
	for rows.Next() {
		var res GameResult
		if err := rows.Scan(&res.ID, &res.SessionID, &res.Game, &res.Outcome, &res.PlayedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
