package testdata

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/falken/wopr/internal/database/repository"
)

// Repos bundles repos used by Seed.
type Repos struct {
	Sessions *repository.SessionRepo
	Results  *repository.ResultRepo
}

// Seed backfills a handful of finished sessions so HISTORY has
// something to show on a fresh database.
func Seed(ctx context.Context, repos Repos) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	games := []string{
		"FALKEN'S MAZE",
		"BLACK JACK",
		"CHECKERS",
		"CHESS",
		"POKER",
		"FIGHTER COMBAT",
		"GLOBAL THERMONUCLEAR WAR",
	}
	outcomes := []string{"WON", "LOST", "DRAW", "QUIT"}

	now := time.Now().UTC().Truncate(time.Second)
	for day := 10; day >= 1; day-- {
		start := now.AddDate(0, 0, -day)
		id := uuid.NewString()
		if err := repos.Sessions.Create(ctx, repository.Session{ID: id, StartedAt: start}); err != nil {
			return err
		}
		played := rng.Intn(3) + 1
		for i := 0; i < played; i++ {
			res := repository.GameResult{
				ID:        uuid.NewString(),
				SessionID: id,
				Game:      games[rng.Intn(len(games))],
				Outcome:   outcomes[rng.Intn(len(outcomes))],
				PlayedAt:  start.Add(time.Duration(i+1) * 7 * time.Minute),
			}
			if err := repos.Results.Insert(ctx, res); err != nil {
				return err
			}
		}
		ended := start.Add(time.Duration(played) * 10 * time.Minute)
		if err := repos.Sessions.Finish(ctx, id, ended, "TERMINATED"); err != nil {
			return err
		}
	}
	return nil
}
