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

const bridgeInstructions = `
BRIDGE (SIMPLIFIED)

You and WOPR-Partner vs WOPR-East and WOPR-West.
Each hand: bid for tricks, then play.

Bidding: BID <number> <suit> (e.g., BID 3 HEARTS) or PASS
Suits: CLUBS, DIAMONDS, HEARTS, SPADES, NO TRUMP

Playing: PLAY <number> to play card at position

Scoring simplified:
  Making contract: tricks × 30
  Overtricks: tricks × 10
  Undertricks: -50 each

Commands: BID, PASS, PLAY, HAND, QUIT
`

var bridgeSeatNames = []string{"YOU", "PARTNER", "EAST", "WEST"}

// bridgeSuitsOrder ranks bid denominations low to high, no trump last.
var bridgeSuitsOrder = []string{"♣", "♦", "♥", "♠", "NT"}

var bridgeSuitNames = map[string]string{
	"CLUBS":    "♣",
	"DIAMONDS": "♦",
	"HEARTS":   "♥",
	"SPADES":   "♠",
	"NO TRUMP": "NT",
	"NOTRUMP":  "NT",
	"NT":       "NT",
}

type bid struct {
	level int
	suit  string
}

type contract struct {
	level    int
	suit     string
	declarer int
}

// Bridge plays four hands of simplified contract bridge, the player
// partnered with one machine seat against two others.
type Bridge struct {
	rng *rand.Rand

	hands  [4][]deck.Card
	scores [2]int
}

// NewBridge returns a four-hand rubber.
func NewBridge(rng *rand.Rand) *Bridge {
	return &Bridge{rng: rng}
}

func bridgeValue(c deck.Card) int {
	return heartsValue(c)
}

func bridgeSuitIndex(suit string) int {
	for i, s := range bridgeSuitsOrder {
		if s == suit {
			return i
		}
	}
	return -1
}

func (g *Bridge) dealHands() {
	d := deck.New(g.rng)
	dealSuit := []string{"♣", "♦", "♥", "♠"}
	suitIdx := func(s string) int {
		for i, v := range dealSuit {
			if v == s {
				return i
			}
		}
		return -1
	}
	for i := range g.hands {
		g.hands[i] = g.hands[i][:0]
		for n := 0; n < 13; n++ {
			c, _ := d.Draw()
			g.hands[i] = append(g.hands[i], c)
		}
		hand := g.hands[i]
		sort.Slice(hand, func(a, b int) bool {
			if hand[a].Suit != hand[b].Suit {
				return suitIdx(hand[a].Suit) < suitIdx(hand[b].Suit)
			}
			return bridgeValue(hand[a]) < bridgeValue(hand[b])
		})
	}
}

// countPoints tallies high card points: ace 4, king 3, queen 2, jack 1.
func countPoints(hand []deck.Card) int {
	points := 0
	for _, c := range hand {
		switch c.Rank {
		case "A":
			points += 4
		case "K":
			points += 3
		case "Q":
			points += 2
		case "J":
			points += 1
		}
	}
	return points
}

// higherBid reports whether b outranks cur.
func higherBid(b bid, cur *bid) bool {
	if cur == nil {
		return true
	}
	if b.level != cur.level {
		return b.level > cur.level
	}
	return bridgeSuitIndex(b.suit) > bridgeSuitIndex(cur.suit)
}

// woprBid picks a level from high card points and the longest suit,
// raising one level over the table when that stays legal. Under 12
// points it passes.
func (g *Bridge) woprBid(player int, cur *bid) *bid {
	points := countPoints(g.hands[player])
	if points < 12 {
		return nil
	}

	level := 2
	switch {
	case points >= 20:
		level = 4
	case points >= 16:
		level = 3
	}

	counts := map[string]int{"♣": 0, "♦": 0, "♥": 0, "♠": 0}
	for _, c := range g.hands[player] {
		counts[c.Suit]++
	}
	best := "♣"
	for _, s := range bridgeSuitsOrder[:4] {
		if counts[s] > counts[best] || (counts[s] == counts[best] && bridgeSuitIndex(s) > bridgeSuitIndex(best)) {
			best = s
		}
	}

	if b := (bid{level: level, suit: best}); higherBid(b, cur) {
		return &b
	}
	if level+1 <= 7 {
		if b := (bid{level: level + 1, suit: best}); higherBid(b, cur) {
			return &b
		}
	}
	return nil
}

func (g *Bridge) renderPlayerHand() string {
	return deck.RenderHand(g.hands[0], deck.RenderOptions{Numbered: true})
}

// parsePlayerBid reads "BID 3 HEARTS" or bare "3 HEARTS".
func parsePlayerBid(cmd string) (bid, bool) {
	cmd = strings.TrimSpace(strings.TrimPrefix(cmd, "BID"))
	fields := strings.Fields(cmd)
	if len(fields) < 2 {
		return bid{}, false
	}
	level, err := strconv.Atoi(fields[0])
	if err != nil {
		return bid{}, false
	}
	suit, ok := bridgeSuitNames[strings.Join(fields[1:], " ")]
	if !ok {
		return bid{}, false
	}
	return bid{level: level, suit: suit}, true
}

// biddingPhase runs the auction. A nil contract means the hand was
// passed out; quit reports the player leaving the table.
func (g *Bridge) biddingPhase(ctx context.Context, in console.Input, out console.Sink) (*contract, bool, error) {
	out.Print("\n=== BIDDING ===\n")
	out.Print(fmt.Sprintf("YOUR HAND (%d HCP):\n", countPoints(g.hands[0])))
	out.Print(g.renderPlayerHand() + "\n\n")

	var current *bid
	declarer := -1
	passes := 0
	bidder := 0

	for passes < 4 {
		if bidder == 0 {
			if current == nil {
				out.Print("CURRENT BID: NONE\n")
			} else {
				out.Print(fmt.Sprintf("CURRENT BID: %d %s\n", current.level, current.suit))
			}
			line, err := in.ReadLine(ctx, "YOUR BID (e.g., 'BID 2 HEARTS' or 'PASS'): ")
			if err != nil {
				return nil, false, err
			}
			cmd := games.Clean(line)

			switch {
			case games.QuitToken(cmd):
				return nil, true, nil
			case cmd == "PASS":
				passes++
				out.Print("YOU PASS\n")
			default:
				b, ok := parsePlayerBid(cmd)
				if !ok {
					out.Print("BID or PASS\n")
					continue
				}
				if b.level < 1 || b.level > 7 {
					out.Print("INVALID BID\n")
					continue
				}
				if !higherBid(b, current) {
					out.Print("BID MUST BE HIGHER\n")
					continue
				}
				current = &b
				declarer = 0
				passes = 0
				out.Print(fmt.Sprintf("YOU BID %d %s\n", b.level, b.suit))
			}
		} else {
			if b := g.woprBid(bidder, current); b != nil {
				current = b
				declarer = bidder
				passes = 0
				out.Print(fmt.Sprintf("%s BIDS %d %s\n", bridgeSeatNames[bidder], b.level, b.suit))
			} else {
				passes++
				out.Print(bridgeSeatNames[bidder] + " PASSES\n")
			}
		}

		bidder = (bidder + 1) % 4
		if passes >= 3 && current != nil {
			break
		}
	}

	if current == nil {
		return nil, false, nil
	}
	return &contract{level: current.level, suit: current.suit, declarer: declarer}, false, nil
}

// playerPlay prompts until the player commits a card, enforcing suit
// follow when they can.
func (g *Bridge) playerPlay(ctx context.Context, in console.Input, out console.Sink, trick []trickPlay, leadSuit string) (deck.Card, bool, error) {
	out.Print("YOUR HAND:\n" + g.renderPlayerHand() + "\n")
	if len(trick) > 0 {
		parts := make([]string, len(trick))
		for i, p := range trick {
			parts[i] = "[" + p.card.String() + "]"
		}
		out.Print("TRICK: " + strings.Join(parts, " ") + "\n")
	}

	for {
		line, err := in.ReadLine(ctx, "PLAY (card number): ")
		if err != nil {
			return deck.Card{}, false, err
		}
		cmd := games.Clean(line)

		if games.QuitToken(cmd) {
			return deck.Card{}, true, nil
		}

		fields := strings.Fields(strings.TrimPrefix(cmd, "PLAY"))
		if len(fields) == 1 {
			if pos, err := strconv.Atoi(fields[0]); err == nil && pos >= 1 && pos <= len(g.hands[0]) {
				card := g.hands[0][pos-1]
				if leadSuit != "" && card.Suit != leadSuit {
					mustFollow := false
					for _, c := range g.hands[0] {
						if c.Suit == leadSuit {
							mustFollow = true
							break
						}
					}
					if mustFollow {
						out.Print("MUST FOLLOW SUIT\n")
						continue
					}
				}
				g.hands[0] = append(g.hands[0][:pos-1], g.hands[0][pos:]...)
				out.Print("YOU PLAY [" + card.String() + "]\n")
				return card, false, nil
			}
		}
		out.Print("INVALID\n")
	}
}

// playHand runs thirteen tricks under the contract and returns tricks
// won by north-south and east-west.
func (g *Bridge) playHand(ctx context.Context, in console.Input, out console.Sink, c *contract) ([2]int, bool, error) {
	var tricks [2]int
	leader := (c.declarer + 1) % 4

	by := "WOPR"
	if c.declarer == 0 {
		by = "YOU"
	}
	out.Print(fmt.Sprintf("\nCONTRACT: %d %s BY %s\n", c.level, c.suit, by))

	for trickNum := 0; trickNum < 13; trickNum++ {
		out.Print(fmt.Sprintf("\n--- TRICK %d ---\n", trickNum+1))
		var trick []trickPlay
		leadSuit := ""

		for i := 0; i < 4; i++ {
			current := (leader + i) % 4

			var card deck.Card
			if current == 0 {
				played, quit, err := g.playerPlay(ctx, in, out, trick, leadSuit)
				if err != nil || quit {
					return tricks, quit, err
				}
				card = played
			} else {
				hand := g.hands[current]
				var valid []deck.Card
				if leadSuit != "" {
					for _, hc := range hand {
						if hc.Suit == leadSuit {
							valid = append(valid, hc)
						}
					}
				}
				if len(valid) == 0 {
					valid = hand
				}
				// Last seat grabs the trick high, everyone else ducks low.
				card = valid[0]
				for _, vc := range valid[1:] {
					if len(trick) == 3 {
						if bridgeValue(vc) > bridgeValue(card) {
							card = vc
						}
					} else if bridgeValue(vc) < bridgeValue(card) {
						card = vc
					}
				}
				for idx, hc := range hand {
					if hc == card {
						g.hands[current] = append(hand[:idx], hand[idx+1:]...)
						break
					}
				}
				out.Print(bridgeSeatNames[current] + " PLAYS [" + card.String() + "]\n")
			}

			trick = append(trick, trickPlay{player: current, card: card})
			if leadSuit == "" {
				leadSuit = card.Suit
			}
		}

		winning := trick[0]
		for _, p := range trick[1:] {
			if p.card.Suit == c.suit && winning.card.Suit != c.suit {
				winning = p
			} else if p.card.Suit == winning.card.Suit && bridgeValue(p.card) > bridgeValue(winning.card) {
				winning = p
			}
		}

		team := 1
		if winning.player == 0 || winning.player == 1 {
			team = 0
		}
		tricks[team]++
		out.Print(fmt.Sprintf("%s WINS TRICK (NS: %d, EW: %d)\n", bridgeSeatNames[winning.player], tricks[0], tricks[1]))
		leader = winning.player
	}

	return tricks, false, nil
}

// Play runs four hands and settles the rubber on total score.
func (g *Bridge) Play(ctx context.Context, in console.Input, out console.Sink) (games.Outcome, error) {
	out.Print(bridgeInstructions + "\n")

	quit := false
	for handNum := 0; handNum < 4 && !quit; handNum++ {
		out.Print("\n" + strings.Repeat("=", 40) + "\n")
		out.Print(fmt.Sprintf("HAND %d\n", handNum+1))
		out.Print(fmt.Sprintf("SCORE: NS=%d EW=%d\n", g.scores[0], g.scores[1]))

		g.dealHands()
		c, q, err := g.biddingPhase(ctx, in, out)
		if err != nil {
			return games.OutcomeAborted, fmt.Errorf("bridge: %w", err)
		}
		if q {
			quit = true
			break
		}
		if c == nil {
			out.Print("PASSED OUT - NO SCORE\n")
			continue
		}

		tricks, q, err := g.playHand(ctx, in, out, c)
		if err != nil {
			return games.OutcomeAborted, fmt.Errorf("bridge: %w", err)
		}
		if q {
			quit = true
			break
		}

		declaringTeam := 1
		if c.declarer == 0 || c.declarer == 1 {
			declaringTeam = 0
		}
		needed := c.level + 6
		made := tricks[declaringTeam]

		if made >= needed {
			score := c.level*30 + (made-needed)*10
			g.scores[declaringTeam] += score
			out.Print(fmt.Sprintf("CONTRACT MADE! +%d\n", score))
		} else {
			penalty := (needed - made) * 50
			g.scores[1-declaringTeam] += penalty
			out.Print(fmt.Sprintf("CONTRACT DOWN %d. -%d\n", needed-made, penalty))
		}
	}

	out.Print(fmt.Sprintf("\nFINAL: NS=%d EW=%d\n", g.scores[0], g.scores[1]))

	if quit {
		return games.OutcomeQuit, nil
	}
	switch {
	case g.scores[0] > g.scores[1]:
		out.Print("YOU WIN!\n")
		return games.OutcomeWon, nil
	case g.scores[0] < g.scores[1]:
		out.Print("WOPR WINS\n")
		return games.OutcomeLost, nil
	default:
		out.Print("TIE\n")
		return games.OutcomeDraw, nil
	}
}
