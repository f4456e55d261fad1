package cards

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/falken/wopr/internal/console"
	"github.com/falken/wopr/internal/games"
	"github.com/falken/wopr/internal/games/deck"
)

const ginInstructions = `
GIN RUMMY

Form melds (sets of 3-4 same rank, or runs of 3+ same suit).
Minimize deadwood (unmelded cards).

Commands:
  DRAW DECK    - Draw from deck
  DRAW DISCARD - Take the discard
  DISCARD n    - Discard card at position n
  KNOCK        - Knock (deadwood <= 10)
  GIN          - Declare gin (no deadwood)
  HAND         - Show your hand
  QUIT         - Leave game

Face cards = 10 points, Aces = 1, others = face value
`

// GinRummy plays rounds to a 100-point target against the machine.
type GinRummy struct {
	rng    *rand.Rand
	target int

	deck        *deck.Deck
	player      []deck.Card
	wopr        []deck.Card
	discards    []deck.Card
	playerScore int
	woprScore   int
}

// NewGinRummy returns a match to 100 points.
func NewGinRummy(rng *rand.Rand) *GinRummy {
	return &GinRummy{rng: rng, target: 100}
}

func ginCardPoints(c deck.Card) int {
	switch c.Rank {
	case "J", "Q", "K":
		return 10
	case "A":
		return 1
	default:
		n, _ := strconv.Atoi(c.Rank)
		return n
	}
}

// sortedHand orders cards by suit then rank, the order DISCARD
// positions refer to.
func sortedHand(hand []deck.Card) []deck.Card {
	out := append([]deck.Card(nil), hand...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Suit != out[j].Suit {
			return out[i].Suit < out[j].Suit
		}
		return out[i].RankIndex() < out[j].RankIndex()
	})
	return out
}

// findMelds splits a hand into melds and deadwood. Sets are claimed
// before runs; a card joins at most one meld.
func findMelds(hand []deck.Card) (melds [][]deck.Card, deadwood []deck.Card) {
	if len(hand) == 0 {
		return nil, nil
	}

	used := make(map[deck.Card]bool)

	for _, rank := range deck.Ranks {
		var set []deck.Card
		for _, c := range hand {
			if c.Rank == rank {
				set = append(set, c)
			}
		}
		if len(set) >= 3 {
			melds = append(melds, set)
			for _, c := range set {
				used[c] = true
			}
		}
	}

	for _, suit := range deck.Suits {
		var available []deck.Card
		for _, c := range hand {
			if c.Suit == suit && !used[c] {
				available = append(available, c)
			}
		}
		sort.Slice(available, func(i, j int) bool {
			return available[i].RankIndex() < available[j].RankIndex()
		})

		i := 0
		for i < len(available) {
			run := []deck.Card{available[i]}
			j := i + 1
			for j < len(available) && available[j].RankIndex() == run[len(run)-1].RankIndex()+1 {
				run = append(run, available[j])
				j++
			}
			if len(run) >= 3 {
				melds = append(melds, run)
				for _, c := range run {
					used[c] = true
				}
				i = j
			} else {
				i++
			}
		}
	}

	for _, c := range hand {
		if !used[c] {
			deadwood = append(deadwood, c)
		}
	}
	return melds, deadwood
}

func deadwoodValue(hand []deck.Card) int {
	_, dw := findMelds(hand)
	total := 0
	for _, c := range dw {
		total += ginCardPoints(c)
	}
	return total
}

func (g *GinRummy) renderHand(hand []deck.Card, numbered bool) string {
	return deck.RenderHand(sortedHand(hand), deck.RenderOptions{Numbered: numbered})
}

func (g *GinRummy) dealRound() {
	g.deck = deck.New(g.rng)
	g.player = g.player[:0]
	g.wopr = g.wopr[:0]
	for i := 0; i < 10; i++ {
		c, _ := g.deck.Draw()
		g.player = append(g.player, c)
	}
	for i := 0; i < 10; i++ {
		c, _ := g.deck.Draw()
		g.wopr = append(g.wopr, c)
	}
	top, _ := g.deck.Draw()
	g.discards = []deck.Card{top}
}

// woprTurn draws, discards and reports whether the machine ends the
// round. It takes the discard only when doing so shrinks its deadwood
// count, gins at zero deadwood and knocks at ten or less three times
// out of ten.
func (g *GinRummy) woprTurn() bool {
	if len(g.discards) > 0 {
		top := g.discards[len(g.discards)-1]
		test := append(append([]deck.Card(nil), g.wopr...), top)
		_, testDW := findMelds(test)
		_, currentDW := findMelds(g.wopr)
		if len(testDW) < len(currentDW) {
			g.wopr = append(g.wopr, top)
			g.discards = g.discards[:len(g.discards)-1]
		} else if c, ok := g.deck.Draw(); ok {
			g.wopr = append(g.wopr, c)
		}
	} else if c, ok := g.deck.Draw(); ok {
		g.wopr = append(g.wopr, c)
	}

	_, dw := findMelds(g.wopr)
	pool := dw
	if len(pool) == 0 {
		pool = g.wopr
	}
	worst := pool[0]
	for _, c := range pool[1:] {
		if ginCardPoints(c) > ginCardPoints(worst) {
			worst = c
		}
	}
	for i, c := range g.wopr {
		if c == worst {
			g.wopr = append(g.wopr[:i], g.wopr[i+1:]...)
			break
		}
	}
	g.discards = append(g.discards, worst)

	switch value := deadwoodValue(g.wopr); {
	case value == 0:
		return true
	case value <= 10:
		return g.rng.Float64() < 0.3
	default:
		return false
	}
}

func (g *GinRummy) scorePlayerKnock(out console.Sink, playerDW int) {
	woprDW := deadwoodValue(g.wopr)
	verb := "KNOCK"
	if playerDW == 0 {
		verb = "GIN"
	}
	out.Print(fmt.Sprintf("\nYOU %s WITH %d\n", verb, playerDW))
	out.Print(fmt.Sprintf("WOPR HAS %d DEADWOOD\n", woprDW))

	switch {
	case playerDW == 0:
		points := woprDW + 25
		g.playerScore += points
		out.Print(fmt.Sprintf("GIN! YOU SCORE %d\n", points))
	case woprDW < playerDW:
		points := playerDW - woprDW + 25
		g.woprScore += points
		out.Print(fmt.Sprintf("UNDERCUT! WOPR SCORES %d\n", points))
	default:
		points := woprDW - playerDW
		g.playerScore += points
		out.Print(fmt.Sprintf("YOU SCORE %d\n", points))
	}
}

func (g *GinRummy) scoreWoprKnock(out console.Sink) {
	woprDW := deadwoodValue(g.wopr)
	playerDW := deadwoodValue(g.player)

	switch {
	case woprDW == 0:
		points := playerDW + 25
		g.woprScore += points
		out.Print(fmt.Sprintf("WOPR GINS! SCORES %d\n", points))
	case playerDW < woprDW:
		points := woprDW - playerDW + 25
		g.playerScore += points
		out.Print(fmt.Sprintf("YOU UNDERCUT! SCORE %d\n", points))
	default:
		points := playerDW - woprDW
		g.woprScore += points
		out.Print(fmt.Sprintf("WOPR KNOCKS AND SCORES %d\n", points))
	}
}

// Play runs rounds until a side reaches the target score or the
// player quits.
func (g *GinRummy) Play(ctx context.Context, in console.Input, out console.Sink) (games.Outcome, error) {
	out.Print(ginInstructions + "\n")

	for g.playerScore < g.target && g.woprScore < g.target {
		g.dealRound()
		out.Print(fmt.Sprintf("\nSCORE - YOU: %d  WOPR: %d\n", g.playerScore, g.woprScore))
		out.Print(fmt.Sprintf("TARGET: %d\n\n", g.target))

		roundOver := false
		playerTurn := true

		for !roundOver && g.deck.Remaining() > 2 {
			if !playerTurn {
				out.Print("\nWOPR'S TURN...\n")
				if g.woprTurn() {
					roundOver = true
					g.scoreWoprKnock(out)
				} else {
					out.Print("WOPR DISCARDS [" + g.discards[len(g.discards)-1].String() + "]\n")
					playerTurn = true
				}
				continue
			}

			out.Print("\nDISCARD: [" + g.discards[len(g.discards)-1].String() + "]\n")
			out.Print(fmt.Sprintf("YOUR HAND (%d deadwood):\n", deadwoodValue(g.player)))
			out.Print(g.renderHand(g.player, true) + "\n")

			line, err := in.ReadLine(ctx, "\nCOMMAND: ")
			if err != nil {
				return games.OutcomeAborted, fmt.Errorf("gin rummy: %w", err)
			}
			cmd := games.Clean(line)

			switch {
			case games.QuitToken(cmd):
				return games.OutcomeQuit, nil

			case cmd == "HAND":
				melds, dw := findMelds(g.player)
				out.Print("MELDS:\n")
				for _, meld := range melds {
					out.Print("  " + g.renderHand(meld, false) + "\n")
				}
				out.Print("DEADWOOD: " + g.renderHand(dw, false) + "\n")

			case cmd == "DRAW DECK":
				if c, ok := g.deck.Draw(); ok {
					g.player = append(g.player, c)
					out.Print("DREW: [" + c.String() + "]\n")
				}

			case cmd == "DRAW DISCARD":
				if len(g.discards) > 0 {
					c := g.discards[len(g.discards)-1]
					g.discards = g.discards[:len(g.discards)-1]
					g.player = append(g.player, c)
					out.Print("TOOK: [" + c.String() + "]\n")
				}

			case strings.HasPrefix(cmd, "DISCARD"):
				fields := strings.Fields(cmd)
				pos, err := strconv.Atoi(fields[len(fields)-1])
				ordered := sortedHand(g.player)
				if err != nil || pos < 1 || pos > len(ordered) {
					out.Print("INVALID DISCARD\n")
					break
				}
				card := ordered[pos-1]
				for i, c := range g.player {
					if c == card {
						g.player = append(g.player[:i], g.player[i+1:]...)
						break
					}
				}
				g.discards = append(g.discards, card)
				out.Print("DISCARDED: [" + card.String() + "]\n")
				playerTurn = false

			case cmd == "KNOCK" || cmd == "GIN":
				dw := deadwoodValue(g.player)
				if cmd == "GIN" && dw > 0 {
					out.Print("NOT GIN - YOU HAVE DEADWOOD\n")
					break
				}
				if dw > 10 {
					out.Print("DEADWOOD TOO HIGH TO KNOCK\n")
					break
				}
				roundOver = true
				g.scorePlayerKnock(out, dw)

			default:
				out.Print("INVALID COMMAND\n")
			}
		}

		if !roundOver {
			out.Print("\nDECK EXHAUSTED - NO SCORE\n")
		}
	}

	if g.playerScore >= g.target {
		out.Print(fmt.Sprintf("\nYOU WIN! %d to %d\n", g.playerScore, g.woprScore))
		return games.OutcomeWon, nil
	}
	out.Print(fmt.Sprintf("\nWOPR WINS! %d to %d\n", g.woprScore, g.playerScore))
	return games.OutcomeLost, nil
}
