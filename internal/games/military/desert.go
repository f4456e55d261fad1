package military

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/falken/wopr/internal/console"
	"github.com/falken/wopr/internal/games"
)

// DesertWarfare is an armored maneuver campaign. The battalion pushes
// for three objectives before it runs out of tanks.
type DesertWarfare struct {
	rng  *rand.Rand
	turn int
}

func NewDesertWarfare(rng *rand.Rand) *DesertWarfare {
	return &DesertWarfare{rng: rng}
}

func (g *DesertWarfare) Play(ctx context.Context, in console.Input, out console.Sink) (games.Outcome, error) {
	out.Print(banner("DESERT WARFARE"))
	out.Print("Command your armored battalion across the desert.\n")
	out.Print("Capture objectives while preserving your forces.\n\n")

	tanks := 12
	enemyTanks := 15
	objectives := 0
	const totalObjectives = 3

	for tanks > 0 && objectives < totalObjectives {
		out.Print(fmt.Sprintf("\n--- PHASE %d ---\n", g.turn+1))
		out.Print(fmt.Sprintf("YOUR TANKS: %d\n", tanks))
		out.Print(fmt.Sprintf("ENEMY TANKS: %d\n", enemyTanks))
		out.Print(fmt.Sprintf("OBJECTIVES: %d/%d\n\n", objectives, totalObjectives))

		out.Print("  1. ADVANCE - Push toward objective\n")
		out.Print("  2. FLANK - Risky maneuver, high reward\n")
		out.Print("  3. DEFEND - Hold position\n")
		out.Print("  4. ARTILLERY - Call fire support\n")

		line, err := in.ReadLine(ctx, "\nORDERS (or Q to quit): ")
		if err != nil {
			return games.OutcomeAborted, fmt.Errorf("desert warfare: %w", err)
		}
		cmd := games.Clean(line)

		if games.QuitToken(cmd) {
			return games.OutcomeQuit, nil
		}

		switch cmd {
		case "1":
			lost := rollRange(g.rng, 1, 3)
			enemyLost := rollRange(g.rng, 2, 4)
			tanks -= lost
			enemyTanks -= enemyLost
			if g.rng.Float64() < 0.4 {
				objectives++
				out.Print(fmt.Sprintf("OBJECTIVE CAPTURED! Lost %d tanks, destroyed %d enemy.\n", lost, enemyLost))
			} else {
				out.Print(fmt.Sprintf("ADVANCE STALLED. Lost %d tanks, destroyed %d enemy.\n", lost, enemyLost))
			}
		case "2":
			if g.rng.Float64() < 0.5 {
				enemyLost := rollRange(g.rng, 4, 7)
				enemyTanks -= enemyLost
				objectives++
				out.Print(fmt.Sprintf("FLANKING ATTACK SUCCESSFUL! Destroyed %d enemy tanks.\n", enemyLost))
			} else {
				lost := rollRange(g.rng, 3, 5)
				tanks -= lost
				out.Print(fmt.Sprintf("FLANKING ATTACK FAILED! Lost %d tanks.\n", lost))
			}
		case "3":
			enemyLost := rollRange(g.rng, 1, 3)
			enemyTanks -= enemyLost
			out.Print(fmt.Sprintf("HOLDING POSITION. Destroyed %d enemy tanks.\n", enemyLost))
		case "4":
			enemyLost := rollRange(g.rng, 2, 5)
			enemyTanks -= enemyLost
			out.Print(fmt.Sprintf("ARTILLERY STRIKE! Destroyed %d enemy tanks.\n", enemyLost))
		}

		enemyTanks = max(0, enemyTanks)
		g.turn++

		if enemyTanks <= 0 {
			out.Print("\nENEMY FORCES DESTROYED!\n")
			objectives = totalObjectives
		}
	}

	if objectives >= totalObjectives {
		out.Print("\nVICTORY! ALL OBJECTIVES CAPTURED!\n")
		return games.OutcomeWon, nil
	}
	out.Print("\nDEFEAT - BATTALION DESTROYED\n")
	return games.OutcomeLost, nil
}
