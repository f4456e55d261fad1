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

const heartsInstructions = `
HEARTS

Avoid taking hearts (1 point each) and Queen of Spades (13 points).
Or "shoot the moon" - take all hearts and the Queen for 0 points
while opponents get 26 each!

2 of Clubs leads the first trick. Must follow suit if possible.
Hearts can't be led until "broken" (played when unable to follow).

First to 100 points loses. Lowest score wins.

Commands:
  PLAY n  - Play card at position n
  HAND    - Show your hand
  SCORE   - Show scores
  QUIT    - Leave game
`

var heartsSeatNames = []string{"YOU", "WOPR-A", "WOPR-B", "WOPR-C"}

// heartsRankOrder ranks cards two low, ace high.
var heartsRankOrder = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// heartsSuitOrder groups hands clubs, diamonds, spades, hearts.
var heartsSuitOrder = []string{"♣", "♦", "♠", "♥"}

type trickPlay struct {
	player int
	card   deck.Card
}

// Hearts seats the player against three machine opponents.
type Hearts struct {
	rng *rand.Rand

	hands        [4][]deck.Card
	scores       [4]int
	trick        []trickPlay
	heartsBroken bool
	handNumber   int
}

// NewHearts returns a four-seat match to 100 points.
func NewHearts(rng *rand.Rand) *Hearts {
	return &Hearts{rng: rng}
}

func heartsValue(c deck.Card) int {
	for i, r := range heartsRankOrder {
		if r == c.Rank {
			return i
		}
	}
	return -1
}

func heartsSuit(suit string) int {
	for i, s := range heartsSuitOrder {
		if s == suit {
			return i
		}
	}
	return -1
}

func heartsSort(hand []deck.Card) []deck.Card {
	out := append([]deck.Card(nil), hand...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Suit != out[j].Suit {
			return heartsSuit(out[i].Suit) < heartsSuit(out[j].Suit)
		}
		return heartsValue(out[i]) < heartsValue(out[j])
	})
	return out
}

func heartsPoints(c deck.Card) int {
	if c.Suit == "♥" {
		return 1
	}
	if c.Rank == "Q" && c.Suit == "♠" {
		return 13
	}
	return 0
}

func (g *Hearts) dealHands() {
	d := deck.New(g.rng)
	for i := range g.hands {
		g.hands[i] = g.hands[i][:0]
		for n := 0; n < 13; n++ {
			c, _ := d.Draw()
			g.hands[i] = append(g.hands[i], c)
		}
		g.hands[i] = heartsSort(g.hands[i])
	}
	g.heartsBroken = false
}

func (g *Hearts) trickWinner() int {
	leadSuit := g.trick[0].card.Suit
	winner := g.trick[0]
	for _, p := range g.trick[1:] {
		if p.card.Suit == leadSuit && heartsValue(p.card) > heartsValue(winner.card) {
			winner = p
		}
	}
	return winner.player
}

func (g *Hearts) trickPoints() int {
	total := 0
	for _, p := range g.trick {
		total += heartsPoints(p.card)
	}
	return total
}

// validPlays narrows a hand to the legal cards: the two of clubs must
// open, suit must be followed, points stay out of an opening lead and
// hearts stay out of any lead until broken.
func (g *Hearts) validPlays(player int, leadSuit string) []deck.Card {
	hand := g.hands[player]

	if len(g.trick) == 0 && leadSuit == "" {
		for _, c := range hand {
			if c.Rank == "2" && c.Suit == "♣" {
				return []deck.Card{c}
			}
		}
	}

	if leadSuit != "" {
		var same []deck.Card
		for _, c := range hand {
			if c.Suit == leadSuit {
				same = append(same, c)
			}
		}
		if len(same) > 0 {
			return same
		}
	}

	if len(g.trick) < 4 && leadSuit == "" {
		var clean []deck.Card
		for _, c := range hand {
			if heartsPoints(c) == 0 {
				clean = append(clean, c)
			}
		}
		if len(clean) > 0 {
			return clean
		}
	}

	if leadSuit == "" && !g.heartsBroken {
		var nonHearts []deck.Card
		for _, c := range hand {
			if c.Suit != "♥" {
				nonHearts = append(nonHearts, c)
			}
		}
		if len(nonHearts) > 0 {
			return nonHearts
		}
	}

	return hand
}

// woprPlay picks low when following, dumps points when void and leads
// its lowest non-heart.
func (g *Hearts) woprPlay(player int, leadSuit string) deck.Card {
	valid := g.validPlays(player, leadSuit)

	if leadSuit != "" {
		var same []deck.Card
		for _, c := range valid {
			if c.Suit == leadSuit {
				same = append(same, c)
			}
		}
		if len(same) > 0 {
			low := same[0]
			for _, c := range same[1:] {
				if heartsValue(c) < heartsValue(low) {
					low = c
				}
			}
			return low
		}
		var pointCards []deck.Card
		for _, c := range valid {
			if heartsPoints(c) > 0 {
				pointCards = append(pointCards, c)
			}
		}
		if len(pointCards) > 0 {
			worst := pointCards[0]
			for _, c := range pointCards[1:] {
				if heartsPoints(c) > heartsPoints(worst) {
					worst = c
				}
			}
			return worst
		}
		high := valid[0]
		for _, c := range valid[1:] {
			if heartsValue(c) > heartsValue(high) {
				high = c
			}
		}
		return high
	}

	var nonHearts []deck.Card
	for _, c := range valid {
		if c.Suit != "♥" {
			nonHearts = append(nonHearts, c)
		}
	}
	pool := nonHearts
	if len(pool) == 0 {
		pool = valid
	}
	low := pool[0]
	for _, c := range pool[1:] {
		if heartsValue(c) < heartsValue(low) {
			low = c
		}
	}
	return low
}

func (g *Hearts) renderPlayerHand() string {
	parts := make([]string, 0, len(g.hands[0]))
	for i, c := range heartsSort(g.hands[0]) {
		parts = append(parts, fmt.Sprintf("%d:[%s]", i+1, c))
	}
	return strings.Join(parts, " ")
}

func (g *Hearts) printScores(out console.Sink) {
	out.Print(fmt.Sprintf("SCORES: YOU=%d WOPR-A=%d WOPR-B=%d WOPR-C=%d\n",
		g.scores[0], g.scores[1], g.scores[2], g.scores[3]))
}

func (g *Hearts) removeCard(player int, card deck.Card) {
	for i, c := range g.hands[player] {
		if c == card {
			g.hands[player] = append(g.hands[player][:i], g.hands[player][i+1:]...)
			return
		}
	}
}

// playerTurn prompts until the player commits a legal card. quit is
// true when they leave the table instead.
func (g *Hearts) playerTurn(ctx context.Context, in console.Input, out console.Sink, leadSuit string) (deck.Card, bool, error) {
	out.Print("\nYOUR HAND:\n" + g.renderPlayerHand() + "\n")
	if len(g.trick) > 0 {
		parts := make([]string, len(g.trick))
		for i, p := range g.trick {
			parts[i] = "[" + p.card.String() + "]"
		}
		out.Print("CURRENT TRICK: " + strings.Join(parts, " ") + "\n")
	}

	valid := g.validPlays(0, leadSuit)
	ordered := heartsSort(g.hands[0])

	for {
		line, err := in.ReadLine(ctx, "PLAY (card number): ")
		if err != nil {
			return deck.Card{}, false, err
		}
		cmd := games.Clean(line)

		if games.QuitToken(cmd) {
			return deck.Card{}, true, nil
		}
		if cmd == "HAND" {
			out.Print(g.renderPlayerHand() + "\n")
			continue
		}
		if cmd == "SCORE" {
			g.printScores(out)
			continue
		}

		fields := strings.Fields(cmd)
		if len(fields) == 0 {
			out.Print("ENTER CARD NUMBER\n")
			continue
		}
		pos, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			out.Print("ENTER CARD NUMBER\n")
			continue
		}
		if pos < 1 || pos > len(ordered) {
			out.Print("INVALID CARD NUMBER\n")
			continue
		}
		card := ordered[pos-1]
		legal := false
		for _, c := range valid {
			if c == card {
				legal = true
				break
			}
		}
		if !legal {
			out.Print("INVALID PLAY\n")
			continue
		}
		return card, false, nil
	}
}

// playHand runs thirteen tricks and returns the points each seat took.
func (g *Hearts) playHand(ctx context.Context, in console.Input, out console.Sink) ([4]int, bool, error) {
	g.dealHands()
	var points [4]int

	leader := 0
	for i := range g.hands {
		for _, c := range g.hands[i] {
			if c.Rank == "2" && c.Suit == "♣" {
				leader = i
			}
		}
	}

	for trickNum := 0; trickNum < 13; trickNum++ {
		g.trick = g.trick[:0]
		leadSuit := ""

		out.Print(fmt.Sprintf("\n=== TRICK %d ===\n", trickNum+1))

		for i := 0; i < 4; i++ {
			current := (leader + i) % 4

			var card deck.Card
			if current == 0 {
				played, quit, err := g.playerTurn(ctx, in, out, leadSuit)
				if err != nil || quit {
					return points, quit, err
				}
				card = played
				out.Print("YOU PLAY: [" + card.String() + "]\n")
			} else {
				card = g.woprPlay(current, leadSuit)
				out.Print(heartsSeatNames[current] + " PLAYS: [" + card.String() + "]\n")
			}

			g.removeCard(current, card)
			g.trick = append(g.trick, trickPlay{player: current, card: card})
			if leadSuit == "" {
				leadSuit = card.Suit
			}
			if card.Suit == "♥" {
				g.heartsBroken = true
			}
		}

		winner := g.trickWinner()
		pts := g.trickPoints()
		points[winner] += pts
		out.Print(fmt.Sprintf("\n%s TAKES TRICK (%d points)\n", heartsSeatNames[winner], pts))
		leader = winner
	}

	return points, false, nil
}

// Play runs hands until a seat reaches 100 points. Lowest total wins.
func (g *Hearts) Play(ctx context.Context, in console.Input, out console.Sink) (games.Outcome, error) {
	out.Print(heartsInstructions + "\n")

	quit := false
	for !quit {
		high := 0
		for _, s := range g.scores {
			if s > high {
				high = s
			}
		}
		if high >= 100 {
			break
		}

		out.Print("\n" + strings.Repeat("=", 40) + "\n")
		out.Print(fmt.Sprintf("HAND %d\n", g.handNumber+1))
		g.printScores(out)

		points, q, err := g.playHand(ctx, in, out)
		if err != nil {
			return games.OutcomeAborted, fmt.Errorf("hearts: %w", err)
		}
		quit = q
		if quit {
			break
		}

		for i, p := range points {
			if p == 26 {
				out.Print("\n[[[ SHOT THE MOON! ]]]\n")
				for j := range g.scores {
					if j != i {
						g.scores[j] += 26
					}
				}
				points = [4]int{}
				break
			}
		}
		for i, p := range points {
			g.scores[i] += p
		}
		g.handNumber++

		out.Print("\nHAND COMPLETE. POINTS THIS HAND:\n")
		out.Print(fmt.Sprintf("YOU: %d  WOPR-A: %d  WOPR-B: %d  WOPR-C: %d\n",
			points[0], points[1], points[2], points[3]))
	}

	out.Print("\nFINAL SCORES:\n")
	out.Print(fmt.Sprintf("YOU: %d  WOPR-A: %d  WOPR-B: %d  WOPR-C: %d\n",
		g.scores[0], g.scores[1], g.scores[2], g.scores[3]))

	if quit {
		return games.OutcomeQuit, nil
	}

	lowest := g.scores[0]
	for _, s := range g.scores[1:] {
		if s < lowest {
			lowest = s
		}
	}
	if g.scores[0] == lowest {
		out.Print("YOU WIN!\n")
		return games.OutcomeWon, nil
	}
	out.Print("WOPR WINS\n")
	return games.OutcomeLost, nil
}
