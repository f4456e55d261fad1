// Package cards implements the five card tables: blackjack, poker,
// gin rummy, hearts and bridge. Each game owns its own deal loop and
// shares only the deck package.
package cards

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/falken/wopr/internal/console"
	"github.com/falken/wopr/internal/games"
	"github.com/falken/wopr/internal/games/deck"
)

const blackjackInstructions = `
BLACK JACK

Get as close to 21 as possible without going over.
Face cards = 10, Aces = 1 or 11

Commands:
  H or HIT    - Draw another card
  S or STAND  - Keep your current hand
  D or DOUBLE - Double bet and take one card
  Q or QUIT   - Leave the table

Dealer stands on 17.
`

// Blackjack plays 21 against the machine as dealer. The table closes
// when the player quits or runs out of chips.
type Blackjack struct {
	rng   *rand.Rand
	chips int
	bet   int

	deck   *deck.Deck
	player []deck.Card
	dealer []deck.Card
}

// NewBlackjack seats the player with 100 chips.
func NewBlackjack(rng *rand.Rand) *Blackjack {
	return &Blackjack{rng: rng, chips: 100}
}

func blackjackCardValue(c deck.Card) int {
	switch c.Rank {
	case "J", "Q", "K":
		return 10
	case "A":
		return 11
	default:
		n, _ := strconv.Atoi(c.Rank)
		return n
	}
}

// handValue scores a hand, demoting aces from 11 to 1 while the total
// exceeds 21.
func handValue(hand []deck.Card) int {
	value, aces := 0, 0
	for _, c := range hand {
		value += blackjackCardValue(c)
		if c.Rank == "A" {
			aces++
		}
	}
	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return value
}

func bracketHand(hand []deck.Card, hideFirst bool) string {
	parts := make([]string, 0, len(hand))
	for i, c := range hand {
		if hideFirst && i == 0 {
			parts = append(parts, "[??]")
			continue
		}
		parts = append(parts, "["+c.String()+"]")
	}
	return strings.Join(parts, " ")
}

func (g *Blackjack) dealInitial() {
	g.deck = deck.New(g.rng)
	g.player = g.player[:0]
	g.dealer = g.dealer[:0]
	for i := 0; i < 2; i++ {
		c, _ := g.deck.Draw()
		g.player = append(g.player, c)
		c, _ = g.deck.Draw()
		g.dealer = append(g.dealer, c)
	}
}

func (g *Blackjack) showTable(out console.Sink, revealDealer bool) {
	out.Print("\n" + strings.Repeat("=", 40) + "\n")
	out.Print(fmt.Sprintf("CHIPS: %d    BET: %d\n", g.chips, g.bet))
	out.Print(strings.Repeat("-", 40) + "\n")
	out.Print("DEALER: " + bracketHand(g.dealer, !revealDealer))
	if revealDealer {
		out.Print(fmt.Sprintf("  (%d)", handValue(g.dealer)))
	}
	out.Print("\n\n")
	out.Print("YOU:    " + bracketHand(g.player, false))
	out.Print(fmt.Sprintf("  (%d)\n", handValue(g.player)))
	out.Print(strings.Repeat("=", 40) + "\n")
}

// playerTurn runs hit/stand/double until the player stands, busts or
// quits. bust reports a hand over 21; quit reports a mid-hand walkout.
func (g *Blackjack) playerTurn(ctx context.Context, in console.Input, out console.Sink) (bust, quit bool, err error) {
	for {
		value := handValue(g.player)
		if value > 21 {
			return true, false, nil
		}
		if value == 21 {
			return false, false, nil
		}

		line, err := in.ReadLine(ctx, "\n(H)IT, (S)TAND, (D)OUBLE, (Q)UIT: ")
		if err != nil {
			return false, false, err
		}

		switch games.Clean(line) {
		case "H", "HIT":
			c, _ := g.deck.Draw()
			g.player = append(g.player, c)
			out.Print("DREW: [" + c.String() + "]\n")
			g.showTable(out, false)
		case "S", "STAND":
			return false, false, nil
		case "D", "DOUBLE":
			if len(g.player) == 2 && g.chips >= g.bet {
				g.chips -= g.bet
				g.bet *= 2
				c, _ := g.deck.Draw()
				g.player = append(g.player, c)
				out.Print("DOUBLED! DREW: [" + c.String() + "]\n")
				g.showTable(out, false)
				return handValue(g.player) > 21, false, nil
			}
			out.Print("CANNOT DOUBLE\n")
		case "Q", "QUIT":
			return false, true, nil
		default:
			out.Print("INVALID COMMAND\n")
		}
	}
}

func (g *Blackjack) dealerTurn(out console.Sink) {
	out.Print("\nDEALER'S TURN...\n")
	g.showTable(out, true)
	for handValue(g.dealer) < 17 {
		c, _ := g.deck.Draw()
		g.dealer = append(g.dealer, c)
		out.Print("DEALER DRAWS: [" + c.String() + "]\n")
		g.showTable(out, true)
	}
}

// Play deals hands until the player quits or goes broke. Leaving with
// chips counts as a quit; going broke counts as a loss.
func (g *Blackjack) Play(ctx context.Context, in console.Input, out console.Sink) (games.Outcome, error) {
	out.Print(blackjackInstructions + "\n")
	out.Print(fmt.Sprintf("\nYOU HAVE %d CHIPS\n", g.chips))

	for g.chips > 0 {
		out.Print(fmt.Sprintf("\nCHIPS: %d\n", g.chips))
		line, err := in.ReadLine(ctx, "BET (or Q to quit): ")
		if err != nil {
			return games.OutcomeAborted, fmt.Errorf("black jack: %w", err)
		}
		if games.QuitToken(games.Clean(line)) {
			break
		}

		bet, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			out.Print("ENTER A NUMBER\n")
			continue
		}
		if bet <= 0 || bet > g.chips {
			out.Print("INVALID BET\n")
			continue
		}
		g.bet = bet
		g.chips -= bet

		g.dealInitial()
		g.showTable(out, false)

		if handValue(g.player) == 21 {
			out.Print("BLACKJACK!\n")
			if handValue(g.dealer) == 21 {
				out.Print("DEALER ALSO HAS BLACKJACK - PUSH\n")
				g.chips += g.bet
			} else {
				out.Print("YOU WIN 3:2!\n")
				g.chips += g.bet * 5 / 2
			}
			continue
		}

		bust, quit, err := g.playerTurn(ctx, in, out)
		if err != nil {
			return games.OutcomeAborted, fmt.Errorf("black jack: %w", err)
		}
		if quit {
			break
		}
		if bust {
			out.Print("BUST! YOU LOSE\n")
			continue
		}

		g.dealerTurn(out)
		dealerValue := handValue(g.dealer)
		playerValue := handValue(g.player)
		switch {
		case dealerValue > 21:
			out.Print("DEALER BUSTS! YOU WIN!\n")
			g.chips += g.bet * 2
		case playerValue > dealerValue:
			out.Print("YOU WIN!\n")
			g.chips += g.bet * 2
		case dealerValue > playerValue:
			out.Print("DEALER WINS\n")
		default:
			out.Print("PUSH - TIE\n")
			g.chips += g.bet
		}
	}

	if g.chips <= 0 {
		out.Print("\nYOU'RE BROKE!\n")
		return games.OutcomeLost, nil
	}
	out.Print(fmt.Sprintf("\nYOU LEAVE WITH %d CHIPS\n", g.chips))
	return games.OutcomeQuit, nil
}
