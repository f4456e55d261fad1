package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/falken/wopr/internal/database"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "wopr.db")
	require.NoError(t, database.Migrate(dbPath))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "wopr.db")
	require.NoError(t, database.Migrate(dbPath))
	require.NoError(t, database.Migrate(dbPath))
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := newTestDB(t)
	repo := NewSessionRepo(db)

	started := database.Now()
	require.NoError(t, repo.Create(ctx, Session{ID: "s1", StartedAt: started}))

	s, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, s)
	require.WithinDuration(t, started, s.StartedAt, time.Second)
	require.Nil(t, s.EndedAt)
	require.Nil(t, s.EndState)
	require.Equal(t, 0, s.GamesPlayed)

	ended := started.Add(5 * time.Minute)
	require.NoError(t, repo.Finish(ctx, "s1", ended, "TERMINATED"))

	s, err = repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, s)
	require.NotNil(t, s.EndedAt)
	require.WithinDuration(t, ended, *s.EndedAt, time.Second)
	require.NotNil(t, s.EndState)
	require.Equal(t, "TERMINATED", *s.EndState)
}

func TestSessionGetMissingReturnsNil(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := newTestDB(t)

	s, err := NewSessionRepo(db).Get(ctx, "ghost")
	require.NoError(t, err)
	require.Nil(t, s)
}

func TestResultInsertBumpsGamesPlayed(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := newTestDB(t)
	sessions := NewSessionRepo(db)
	results := NewResultRepo(db)

	started := database.Now()
	require.NoError(t, sessions.Create(ctx, Session{ID: "s1", StartedAt: started}))

	require.NoError(t, results.Insert(ctx, GameResult{
		ID: "r1", SessionID: "s1", Game: "CHESS", Outcome: "LOST", PlayedAt: started.Add(time.Minute),
	}))
	require.NoError(t, results.Insert(ctx, GameResult{
		ID: "r2", SessionID: "s1", Game: "GLOBAL THERMONUCLEAR WAR", Outcome: "DRAW", PlayedAt: started.Add(2 * time.Minute),
	}))

	s, err := sessions.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Equal(t, 2, s.GamesPlayed)
}

func TestResultInsertRequiresSession(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := newTestDB(t)

	err := NewResultRepo(db).Insert(ctx, GameResult{
		ID: "r1", SessionID: "ghost", Game: "CHESS", Outcome: "QUIT", PlayedAt: database.Now(),
	})
	require.Error(t, err)

	// The failed transaction must not leave a partial row behind.
	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM game_results").Scan(&count))
	require.Equal(t, 0, count)
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := newTestDB(t)
	sessions := NewSessionRepo(db)
	results := NewResultRepo(db)

	started := database.Now()
	require.NoError(t, sessions.Create(ctx, Session{ID: "s1", StartedAt: started}))

	// Inserted out of chronological order on purpose.
	for _, res := range []GameResult{
		{ID: "r2", SessionID: "s1", Game: "CHECKERS", Outcome: "WON", PlayedAt: started.Add(2 * time.Minute)},
		{ID: "r1", SessionID: "s1", Game: "CHESS", Outcome: "LOST", PlayedAt: started.Add(time.Minute)},
		{ID: "r3", SessionID: "s1", Game: "POKER", Outcome: "QUIT", PlayedAt: started.Add(3 * time.Minute)},
	} {
		require.NoError(t, results.Insert(ctx, res))
	}

	recent, err := results.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "POKER", recent[0].Game)
	require.Equal(t, "CHECKERS", recent[1].Game)

	all, err := results.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestRecentOnEmptyDatabase(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := newTestDB(t)

	recent, err := NewResultRepo(db).Recent(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, recent)
}
