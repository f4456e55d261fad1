package military

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/falken/wopr/internal/console"
	"github.com/falken/wopr/internal/games"
)

// TacticalWarfare is the theaterwide campaign. Reserves are split
// across three fronts that erode every day under enemy pressure.
type TacticalWarfare struct {
	rng  *rand.Rand
	days int
}

func NewTacticalWarfare(rng *rand.Rand) *TacticalWarfare {
	return &TacticalWarfare{rng: rng}
}

var frontNames = []string{"NORTH", "CENTER", "SOUTH"}

func (g *TacticalWarfare) Play(ctx context.Context, in console.Input, out console.Sink) (games.Outcome, error) {
	out.Print(banner("THEATERWIDE TACTICAL WARFARE"))
	out.Print("Command the theater campaign.\n")
	out.Print("Manage multiple fronts and strategic resources.\n\n")

	fronts := map[string]int{"NORTH": 50, "CENTER": 50, "SOUTH": 50}
	reserves := 100

	allHeld := func() bool {
		for _, name := range frontNames {
			if fronts[name] <= 0 {
				return false
			}
		}
		return true
	}
	anyContested := func() bool {
		for _, name := range frontNames {
			if fronts[name] < 100 {
				return true
			}
		}
		return false
	}

	for allHeld() && anyContested() {
		out.Print(fmt.Sprintf("\n--- DAY %d ---\n", g.days+1))
		out.Print(fmt.Sprintf("RESERVES: %d\n", reserves))
		for _, name := range frontNames {
			control := fronts[name]
			bar := strings.Repeat("█", control/10) + strings.Repeat("░", 10-control/10)
			out.Print(fmt.Sprintf("%s: [%s] %d%%\n", name, bar, control))
		}

		line, err := in.ReadLine(ctx, "\nALLOCATE RESERVES TO FRONT (N/C/S) or Q to quit: ")
		if err != nil {
			return games.OutcomeAborted, fmt.Errorf("theaterwide tactical warfare: %w", err)
		}
		cmd := games.Clean(line)

		if games.QuitToken(cmd) {
			return games.OutcomeQuit, nil
		}

		if front, ok := map[string]string{"N": "NORTH", "C": "CENTER", "S": "SOUTH"}[cmd]; ok {
			raw, err := in.ReadLine(ctx, fmt.Sprintf("AMOUNT (0-%d): ", reserves))
			if err != nil {
				return games.OutcomeAborted, fmt.Errorf("theaterwide tactical warfare: %w", err)
			}
			if amount, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
				amount = clamp(amount, 0, reserves)
				reserves -= amount
				fronts[front] = min(100, fronts[front]+amount/5)
				out.Print(fmt.Sprintf("REINFORCED %s\n", front))
			}
		}

		for _, name := range frontNames {
			attack := rollRange(g.rng, 5, 15)
			fronts[name] = max(0, fronts[name]-attack)
		}

		reserves = min(100, reserves+20)
		g.days++

		if g.days > 30 {
			break
		}
	}

	collapsed := false
	victory := true
	for _, name := range frontNames {
		if fronts[name] <= 0 {
			collapsed = true
		}
		if fronts[name] < 100 {
			victory = false
		}
	}

	switch {
	case victory:
		out.Print("\nTOTAL VICTORY!\n")
		return games.OutcomeWon, nil
	case collapsed:
		out.Print("\nFRONT COLLAPSED - DEFEAT\n")
		return games.OutcomeLost, nil
	default:
		out.Print("\nSTALEMATE\n")
		return games.OutcomeDraw, nil
	}
}
