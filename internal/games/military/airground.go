package military

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/falken/wopr/internal/console"
	"github.com/falken/wopr/internal/games"
)

// AirToGround runs a series of close air support strike missions with
// a fixed sortie budget.
type AirToGround struct {
	rng  *rand.Rand
	turn int
}

func NewAirToGround(rng *rand.Rand) *AirToGround {
	return &AirToGround{rng: rng}
}

var strikeTargets = []string{"ARMOR COLUMN", "SAM SITE", "SUPPLY DEPOT", "COMMAND POST", "BRIDGE"}

func (g *AirToGround) Play(ctx context.Context, in console.Input, out console.Sink) (games.Outcome, error) {
	out.Print(banner("AIR-TO-GROUND ACTIONS"))
	out.Print("Plan and execute close air support missions.\n\n")

	sorties := 8
	destroyed := 0
	total := len(strikeTargets)
	losses := 0

	for sorties > 0 && destroyed < total {
		target := strikeTargets[destroyed]
		out.Print(fmt.Sprintf("\n--- MISSION %d ---\n", destroyed+1))
		out.Print(fmt.Sprintf("TARGET: %s\n", target))
		out.Print(fmt.Sprintf("SORTIES REMAINING: %d\n", sorties))
		out.Print(fmt.Sprintf("TARGETS DESTROYED: %d/%d\n\n", destroyed, total))

		out.Print("  1. A-10 LOW PASS - High accuracy, vulnerable to AAA\n")
		out.Print("  2. F-111 STANDOFF - Medium accuracy, safer\n")
		out.Print("  3. AC-130 ORBIT - Sustained fire, slow\n")

		line, err := in.ReadLine(ctx, "\nSELECT AIRCRAFT (or Q to quit): ")
		if err != nil {
			return games.OutcomeAborted, fmt.Errorf("air-to-ground actions: %w", err)
		}
		cmd := games.Clean(line)

		if games.QuitToken(cmd) {
			return games.OutcomeQuit, nil
		}

		successChance := 0
		lossChance := 0

		switch cmd {
		case "1":
			successChance = 85
			lossChance = 20
			sorties--
		case "2":
			successChance = 60
			lossChance = 5
			sorties--
		case "3":
			successChance = 75
			lossChance = 10
			sorties -= 2
		}

		if rollRange(g.rng, 1, 100) <= successChance {
			destroyed++
			out.Print(fmt.Sprintf("*** %s DESTROYED! ***\n", target))
		} else {
			out.Print("ATTACK INEFFECTIVE\n")
		}

		if rollRange(g.rng, 1, 100) <= lossChance {
			losses++
			out.Print("!!! AIRCRAFT LOST TO ENEMY FIRE !!!\n")
		}

		g.turn++
	}

	if destroyed >= total {
		out.Print("\nMISSION SUCCESS! All targets destroyed.\n")
		out.Print(fmt.Sprintf("Aircraft lost: %d\n", losses))
		return games.OutcomeWon, nil
	}
	out.Print("\nMISSION FAILED - Out of sorties\n")
	return games.OutcomeLost, nil
}
