package military

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/falken/wopr/internal/console"
	"github.com/falken/wopr/internal/games"
)

// Guerrilla is a counterinsurgency campaign balancing popular support
// against insurgent strength, month by month.
type Guerrilla struct {
	rng  *rand.Rand
	turn int
}

func NewGuerrilla(rng *rand.Rand) *Guerrilla {
	return &Guerrilla{rng: rng}
}

func (g *Guerrilla) Play(ctx context.Context, in console.Input, out console.Sink) (games.Outcome, error) {
	out.Print(banner("GUERRILLA ENGAGEMENT"))
	out.Print("You command counterinsurgency operations.\n")
	out.Print("Win the population's support while neutralizing threats.\n\n")

	support := 50
	insurgents := 50
	resources := 100

	for support > 0 && support < 100 {
		out.Print(fmt.Sprintf("\n--- MONTH %d ---\n", g.turn+1))
		out.Print(fmt.Sprintf("POPULATION SUPPORT: %d%%\n", support))
		out.Print(fmt.Sprintf("INSURGENT STRENGTH: %d%%\n", insurgents))
		out.Print(fmt.Sprintf("RESOURCES: %d\n\n", resources))
		out.Print("  1. PATROL - Secure area, moderate support gain\n")
		out.Print("  2. AID - Provide humanitarian aid, high support gain\n")
		out.Print("  3. STRIKE - Military strike, reduces insurgents but may lose support\n")
		out.Print("  4. INTEL - Gather intelligence\n")

		line, err := in.ReadLine(ctx, "\nACTION (or Q to quit): ")
		if err != nil {
			return games.OutcomeAborted, fmt.Errorf("guerrilla engagement: %w", err)
		}
		cmd := games.Clean(line)

		if games.QuitToken(cmd) {
			return games.OutcomeQuit, nil
		}

		switch cmd {
		case "1":
			resources -= 10
			support += rollRange(g.rng, 2, 8)
			insurgents -= rollRange(g.rng, 0, 5)
			out.Print("PATROLS CONDUCTED\n")
		case "2":
			resources -= 25
			support += rollRange(g.rng, 5, 15)
			out.Print("AID DISTRIBUTED\n")
		case "3":
			resources -= 20
			insurgents -= rollRange(g.rng, 10, 25)
			casualties := rollRange(g.rng, 0, 10)
			support -= casualties
			if casualties > 5 {
				out.Print(fmt.Sprintf("STRIKE SUCCESSFUL BUT %d CIVILIAN CASUALTIES\n", casualties))
			} else {
				out.Print("STRIKE SUCCESSFUL\n")
			}
		case "4":
			resources -= 5
			out.Print("INTEL GATHERED: INSURGENT HQ LOCATED\n")
			insurgents -= 5
		}

		if insurgents > 30 {
			attack := rollRange(g.rng, 1, insurgents/10)
			support -= attack
			if attack > 3 {
				out.Print(fmt.Sprintf("INSURGENT ATTACK! SUPPORT DROPS %d%%\n", attack))
			}
		}

		support = clamp(support, 0, 100)
		insurgents = clamp(insurgents, 0, 100)
		g.turn++

		if insurgents <= 10 {
			out.Print("\nINSURGENCY DEFEATED!\n")
			return games.OutcomeWon, nil
		}
	}

	if support >= 80 {
		out.Print("\nPEACE ACHIEVED THROUGH POPULAR SUPPORT!\n")
		return games.OutcomeWon, nil
	}
	out.Print("\nMISSION FAILED - LOST POPULAR SUPPORT\n")
	return games.OutcomeLost, nil
}
