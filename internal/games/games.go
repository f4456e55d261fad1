// Package games defines the capability contract every playable title
// implements and the registry that resolves player tokens to titles.
package games

import (
	"context"
	"strings"

	"github.com/falken/wopr/internal/console"
)

// Outcome classifies how a game's turn loop ended.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeWon
	OutcomeLost
	OutcomeDraw
	OutcomeAborted
	OutcomeQuit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "WON"
	case OutcomeLost:
		return "LOST"
	case OutcomeDraw:
		return "DRAW"
	case OutcomeAborted:
		return "ABORTED"
	case OutcomeQuit:
		return "QUIT"
	default:
		return "UNKNOWN"
	}
}

// Game is the single capability contract. Play runs the entire turn
// loop: render through out, read lines through in, classify the ending.
// Implementations must not retain in or out beyond the call, must
// translate quit/abort tokens into OutcomeQuit or OutcomeAborted rather
// than leaking raw text, and share no state with other games. When an
// input wait is cancelled, Play returns OutcomeAborted together with
// the wrapped cancellation error so the controller can tell a global
// quit from a local abort.
type Game interface {
	Play(ctx context.Context, in console.Input, out console.Sink) (Outcome, error)
}

// GlobalThermonuclearWar is the canonical name of catalog entry 15,
// whose draw outcome triggers the session epilogue.
const GlobalThermonuclearWar = "GLOBAL THERMONUCLEAR WAR"

// Clean uppercases and trims raw input for token matching.
func Clean(raw string) string { return strings.ToUpper(strings.TrimSpace(raw)) }

// QuitToken reports whether a cleaned token asks to leave the current
// game.
func QuitToken(token string) bool { return token == "QUIT" || token == "Q" }
