package military

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/falken/wopr/internal/console"
	"github.com/falken/wopr/internal/games"
)

// FighterCombat is an energy-management dogfight in an F-15 against a
// MIG-29. Twenty turns of fuel, then home.
type FighterCombat struct {
	rng  *rand.Rand
	turn int
}

func NewFighterCombat(rng *rand.Rand) *FighterCombat {
	return &FighterCombat{rng: rng}
}

func (g *FighterCombat) Play(ctx context.Context, in console.Input, out console.Sink) (games.Outcome, error) {
	out.Print(banner("FIGHTER COMBAT"))
	out.Print("You are piloting an F-15 Eagle.\n")
	out.Print("Enemy MIG-29 detected!\n\n")

	energy := 100
	enemyEnergy := 100
	altitude := 20000
	distance := 10

	for {
		out.Print(fmt.Sprintf("\n--- TURN %d ---\n", g.turn+1))
		out.Print(fmt.Sprintf("YOUR ENERGY: %d%%  ALTITUDE: %dft\n", energy, altitude))
		out.Print(fmt.Sprintf("ENEMY ENERGY: %d%%  DISTANCE: %dnm\n\n", enemyEnergy, distance))
		out.Print("  1. CLIMB - Gain altitude and energy\n")
		out.Print("  2. DIVE - Trade altitude for speed\n")
		out.Print("  3. TURN - Turn to engage\n")
		out.Print("  4. FIRE - Fire missile\n")
		out.Print("  5. EVADE - Defensive maneuver\n")

		line, err := in.ReadLine(ctx, "\nACTION (or Q to quit): ")
		if err != nil {
			return games.OutcomeAborted, fmt.Errorf("fighter combat: %w", err)
		}
		cmd := games.Clean(line)

		if games.QuitToken(cmd) {
			return games.OutcomeQuit, nil
		}

		switch cmd {
		case "1":
			altitude += 5000
			energy -= 20
			out.Print("CLIMBING...\n")
		case "2":
			altitude = max(1000, altitude-5000)
			energy = min(100, energy+30)
			distance--
			out.Print("DIVING TO ENGAGE...\n")
		case "3":
			energy -= 15
			distance -= 2
			out.Print("TURNING TO ENGAGE...\n")
		case "4":
			if distance <= 5 && energy >= 30 {
				hitChance := 50 + (energy-enemyEnergy)/2
				if rollRange(g.rng, 1, 100) <= hitChance {
					out.Print("*** MISSILE AWAY... HIT! ***\n")
					out.Print("SPLASH ONE BANDIT!\n")
					out.Cue(console.CueExplosion)
					return games.OutcomeWon, nil
				}
				out.Print("MISSILE MISSED!\n")
				energy -= 20
			} else {
				out.Print("OUT OF RANGE OR LOW ENERGY\n")
			}
		case "5":
			energy -= 25
			distance += 3
			out.Print("BREAKING!\n")
		}

		if enemyEnergy > 30 && distance <= 5 {
			if rollRange(g.rng, 1, 100) <= 30 {
				out.Print("\nENEMY FIRES!\n")
				if rollRange(g.rng, 1, 100) <= 40-energy/5 {
					out.Print("*** YOU'VE BEEN HIT! ***\n")
					out.Print("EJECT! EJECT! EJECT!\n")
					return games.OutcomeLost, nil
				}
				out.Print("MISSILE EVADED!\n")
			}
		} else {
			enemyEnergy = min(100, enemyEnergy+10)
			distance--
		}

		g.turn++
		if g.turn > 20 {
			out.Print("\nBINGO FUEL - RETURNING TO BASE\n")
			return games.OutcomeDraw, nil
		}
	}
}
