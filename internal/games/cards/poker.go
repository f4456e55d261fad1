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

const pokerInstructions = `
POKER - FIVE CARD DRAW

You play against WOPR. Each player is dealt 5 cards.
You may discard up to 3 cards and draw new ones.

Hand rankings (highest to lowest):
  Royal Flush, Straight Flush, Four of a Kind,
  Full House, Flush, Straight, Three of a Kind,
  Two Pair, One Pair, High Card

Commands:
  DISCARD 1,2,3  - Discard cards by position
  KEEP           - Keep all cards
  FOLD           - Forfeit the hand
  QUIT           - Leave the game
`

// handRanks indexes hand classes from weakest to strongest.
var handRanks = []string{
	"HIGH CARD",
	"ONE PAIR",
	"TWO PAIR",
	"THREE OF A KIND",
	"STRAIGHT",
	"FLUSH",
	"FULL HOUSE",
	"FOUR OF A KIND",
	"STRAIGHT FLUSH",
	"ROYAL FLUSH",
}

// Poker plays five-card draw, one hand per ante, against the machine.
type Poker struct {
	rng   *rand.Rand
	chips int
	ante  int
	pot   int

	deck   *deck.Deck
	player []deck.Card
	wopr   []deck.Card
}

// NewPoker seats the player with 100 chips and a 5-chip ante.
func NewPoker(rng *rand.Rand) *Poker {
	return &Poker{rng: rng, chips: 100, ante: 5}
}

// pokerRankValue scores ranks ace high.
func pokerRankValue(rank string) int {
	switch rank {
	case "A":
		return 14
	case "K":
		return 13
	case "Q":
		return 12
	case "J":
		return 11
	default:
		n, _ := strconv.Atoi(rank)
		return n
	}
}

// evaluateHand classifies a five-card hand. The tiebreak slice holds
// rank values high to low, with the wheel rewritten ace low.
func evaluateHand(hand []deck.Card) (int, []int) {
	ranks := make([]int, len(hand))
	for i, c := range hand {
		ranks[i] = pokerRankValue(c.Rank)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	flush := true
	for _, c := range hand[1:] {
		if c.Suit != hand[0].Suit {
			flush = false
			break
		}
	}

	distinct := make(map[int]int)
	for _, r := range ranks {
		distinct[r]++
	}
	counts := make([]int, 0, len(distinct))
	for _, n := range distinct {
		counts = append(counts, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	wheel := len(ranks) == 5 && ranks[0] == 14 && ranks[1] == 5 && ranks[2] == 4 && ranks[3] == 3 && ranks[4] == 2
	straight := wheel || (len(distinct) == 5 && ranks[0]-ranks[4] == 4)
	if wheel {
		ranks = []int{5, 4, 3, 2, 1}
	}

	switch {
	case straight && flush:
		if ranks[0] == 14 && ranks[4] == 10 {
			return 9, ranks
		}
		return 8, ranks
	case counts[0] == 4:
		return 7, ranks
	case counts[0] == 3 && len(counts) > 1 && counts[1] == 2:
		return 6, ranks
	case flush:
		return 5, ranks
	case straight:
		return 4, ranks
	case counts[0] == 3:
		return 3, ranks
	case counts[0] == 2 && len(counts) > 1 && counts[1] == 2:
		return 2, ranks
	case counts[0] == 2:
		return 1, ranks
	default:
		return 0, ranks
	}
}

// compareHands orders two evaluations: class first, then tiebreaks.
func compareHands(aRank int, aTie []int, bRank int, bTie []int) int {
	if aRank != bRank {
		if aRank > bRank {
			return 1
		}
		return -1
	}
	for i := range aTie {
		if i >= len(bTie) {
			return 1
		}
		if aTie[i] != bTie[i] {
			if aTie[i] > bTie[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

func pokerHand(hand []deck.Card, numbered bool) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		if numbered {
			parts[i] = fmt.Sprintf("%d:[%s]", i+1, c)
		} else {
			parts[i] = "[" + c.String() + "]"
		}
	}
	return strings.Join(parts, " ")
}

func (g *Poker) dealHands() {
	g.deck = deck.New(g.rng)
	g.player = g.player[:0]
	g.wopr = g.wopr[:0]
	for i := 0; i < 5; i++ {
		c, _ := g.deck.Draw()
		g.player = append(g.player, c)
	}
	for i := 0; i < 5; i++ {
		c, _ := g.deck.Draw()
		g.wopr = append(g.wopr, c)
	}
}

// woprDiscard replaces the machine's weak cards and reports how many
// it threw away. Three of a kind or better stands pat.
func (g *Poker) woprDiscard() int {
	rank, _ := evaluateHand(g.wopr)
	if rank >= 3 {
		return 0
	}

	counts := make(map[int]int)
	for _, c := range g.wopr {
		counts[pokerRankValue(c.Rank)]++
	}
	keep := make(map[int]bool)
	for r, n := range counts {
		if n >= 2 {
			keep[r] = true
		}
	}
	if len(keep) == 0 {
		distinct := make([]int, 0, len(counts))
		for r := range counts {
			distinct = append(distinct, r)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(distinct)))
		for _, r := range distinct[:2] {
			keep[r] = true
		}
	}

	discarded := 0
	hand := g.wopr[:0]
	for _, c := range g.wopr {
		if keep[pokerRankValue(c.Rank)] {
			hand = append(hand, c)
			continue
		}
		if nc, ok := g.deck.Draw(); ok {
			hand = append(hand, nc)
			discarded++
		}
	}
	g.wopr = hand
	return discarded
}

// parseDiscard reads positions like "1,3,5" or "DISCARD 2,4". ok is
// false when the command is not a position list.
func parseDiscard(cmd string) ([]int, bool) {
	cmd = strings.TrimSpace(strings.ReplaceAll(cmd, "DISCARD", ""))
	if cmd == "" {
		return nil, false
	}
	var positions []int
	for _, part := range strings.Split(cmd, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, false
		}
		if n >= 1 && n <= 5 {
			positions = append(positions, n-1)
		}
	}
	return positions, true
}

// Play antes and deals hands until the player quits or cannot cover
// the ante.
func (g *Poker) Play(ctx context.Context, in console.Input, out console.Sink) (games.Outcome, error) {
	out.Print(pokerInstructions + "\n")

	for g.chips > g.ante {
		g.pot = g.ante * 2
		g.chips -= g.ante
		out.Print(fmt.Sprintf("\nCHIPS: %d  ANTE: %d  POT: %d\n", g.chips, g.ante, g.pot))

		g.dealHands()
		out.Print("\nYOUR HAND:\n")
		out.Print(pokerHand(g.player, true) + "\n")

		line, err := in.ReadLine(ctx, "\nDISCARD positions (e.g., 1,3,5) or KEEP all: ")
		if err != nil {
			return games.OutcomeAborted, fmt.Errorf("poker: %w", err)
		}
		cmd := games.Clean(line)

		if cmd == "FOLD" || cmd == "F" {
			out.Print("YOU FOLD. WOPR WINS POT.\n")
			continue
		}
		if games.QuitToken(cmd) {
			break
		}
		if cmd != "KEEP" && cmd != "K" && cmd != "" {
			if positions, ok := parseDiscard(cmd); ok {
				for _, pos := range positions {
					if nc, drew := g.deck.Draw(); drew {
						g.player[pos] = nc
					}
				}
				out.Print(fmt.Sprintf("DREW %d NEW CARDS\n", len(positions)))
			} else {
				out.Print("KEEPING ALL CARDS\n")
			}
		}

		out.Print("\nYOUR HAND:\n")
		out.Print(pokerHand(g.player, false) + "\n")

		if n := g.woprDiscard(); n > 0 {
			out.Print(fmt.Sprintf("WOPR DISCARDS %d CARDS\n", n))
		} else {
			out.Print("WOPR KEEPS ALL CARDS\n")
		}

		out.Print("\n*** SHOWDOWN ***\n\n")
		out.Print("YOUR HAND:  " + pokerHand(g.player, false) + "\n")
		out.Print("WOPR HAND:  " + pokerHand(g.wopr, false) + "\n\n")

		playerRank, playerTie := evaluateHand(g.player)
		woprRank, woprTie := evaluateHand(g.wopr)
		out.Print("YOU:  " + handRanks[playerRank] + "\n")
		out.Print("WOPR: " + handRanks[woprRank] + "\n\n")

		switch compareHands(playerRank, playerTie, woprRank, woprTie) {
		case 1:
			out.Print("YOU WIN!\n")
			g.chips += g.pot
		case -1:
			out.Print("WOPR WINS\n")
		default:
			out.Print("TIE - SPLIT POT\n")
			g.chips += g.pot / 2
		}
	}

	if g.chips <= g.ante {
		out.Print("\nNOT ENOUGH CHIPS TO CONTINUE\n")
		return games.OutcomeLost, nil
	}
	out.Print(fmt.Sprintf("\nYOU LEAVE WITH %d CHIPS\n", g.chips))
	return games.OutcomeQuit, nil
}
