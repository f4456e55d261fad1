package military

import (
	"context"
	"fmt"
	"strconv"

	"github.com/falken/wopr/internal/console"
	"github.com/falken/wopr/internal/games"
)

// BiotoxicWarfare is the NBC decision scenario. There is nothing to
// win; each choice trades military advantage against ethical standing
// and the simulation ends in an assessment, never a victory.
type BiotoxicWarfare struct{}

func NewBiotoxicWarfare() *BiotoxicWarfare {
	return &BiotoxicWarfare{}
}

type nbcOption struct {
	name     string
	desc     string
	military int
	ethical  int
}

type nbcScenario struct {
	situation string
	options   []nbcOption
}

var nbcScenarios = []nbcScenario{
	{
		situation: "Intelligence indicates the enemy is preparing a chemical attack.",
		options: []nbcOption{
			{"PREEMPTIVE STRIKE", "Strike first with conventional weapons", 20, -10},
			{"DEFENSIVE POSTURE", "Prepare defenses and protective gear", 0, 0},
			{"DIPLOMATIC CHANNEL", "Warn of consequences through back channels", 10, 5},
		},
	},
	{
		situation: "Enemy forces have used chemical weapons on your troops.",
		options: []nbcOption{
			{"RETALIATE IN KIND", "Chemical counterattack", -50, -30},
			{"CONVENTIONAL RESPONSE", "Massive conventional strike", 10, -10},
			{"SEEK CEASEFIRE", "Attempt immediate negotiations", 20, 20},
		},
	},
	{
		situation: "A biological agent has been released in a contested city.",
		options: []nbcOption{
			{"QUARANTINE", "Seal the city, prioritize containment", 5, 0},
			{"EVACUATION", "Evacuate civilians despite spread risk", -10, 15},
			{"MILITARY INTERVENTION", "Send troops to secure the area", 0, -5},
		},
	},
}

func (g *BiotoxicWarfare) Play(ctx context.Context, in console.Input, out console.Sink) (games.Outcome, error) {
	out.Print(banner("THEATERWIDE BIOTOXIC AND CHEMICAL WARFARE"))
	out.Print("This simulation explores the consequences of NBC warfare.\n")
	out.Print("Your decisions have lasting implications.\n\n")

	military := 0
	ethical := 50

	for i, scenario := range nbcScenarios {
		out.Print(fmt.Sprintf("\n=== SCENARIO %d ===\n", i+1))
		out.Print(scenario.situation + "\n\n")

		for j, opt := range scenario.options {
			out.Print(fmt.Sprintf("  %d. %s\n     %s\n", j+1, opt.name, opt.desc))
		}

		line, err := in.ReadLine(ctx, "\nYOUR DECISION (or Q to quit): ")
		if err != nil {
			return games.OutcomeAborted, fmt.Errorf("biotoxic warfare: %w", err)
		}
		cmd := games.Clean(line)

		if games.QuitToken(cmd) {
			return games.OutcomeQuit, nil
		}

		if choice, err := strconv.Atoi(cmd); err == nil && choice >= 1 && choice <= len(scenario.options) {
			opt := scenario.options[choice-1]
			military += opt.military
			ethical += opt.ethical
			out.Print(fmt.Sprintf("\nYOU CHOSE: %s\n", opt.name))

			if opt.ethical < 0 {
				out.Print("INTERNATIONAL CONDEMNATION FOLLOWS.\n")
			} else if opt.ethical > 0 {
				out.Print("YOUR RESTRAINT IS NOTED.\n")
			}
		}

		ethical = clamp(ethical, 0, 100)
	}

	out.Print("\n=== FINAL ASSESSMENT ===\n")
	if military > 0 {
		out.Print("MILITARY OUTCOME: FAVORABLE\n")
	} else {
		out.Print("MILITARY OUTCOME: UNFAVORABLE\n")
	}
	out.Print(fmt.Sprintf("ETHICAL STANDING: %d%%\n", ethical))

	if ethical >= 50 && military >= 0 {
		out.Print("\nBUT AT WHAT COST?\n")
		out.Print("THE USE OF SUCH WEAPONS HAS NO WINNER.\n")
	} else {
		out.Print("\nTHE CONSEQUENCES WILL BE FELT FOR GENERATIONS.\n")
	}

	return games.OutcomeDraw, nil
}
