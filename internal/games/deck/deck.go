// Package deck provides the shared 52-card deck and ASCII card art
// used by the card games.
package deck

import (
	"math/rand"
	"strconv"
	"strings"
)

// Suits in deal order. Spades first matches the classic terminal look.
var Suits = []string{"♠", "♥", "♦", "♣"}

// Ranks in ascending order, ace low. Games that score ace high (or
// both ways) map over RankIndex themselves.
var Ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// Card is a single playing card.
type Card struct {
	Rank string
	Suit string
}

// String renders the compact one-line form, e.g. "10♥".
func (c Card) String() string {
	return c.Rank + c.Suit
}

// RankIndex returns the position of the card's rank in Ranks,
// or -1 for an unknown rank.
func (c Card) RankIndex() int {
	for i, r := range Ranks {
		if r == c.Rank {
			return i
		}
	}
	return -1
}

// Deck is a stack of cards. Draw pops from the top.
type Deck struct {
	cards []Card
}

// New builds a full 52-card deck shuffled with rng. A nil rng leaves
// the deck in suit-then-rank order, which tests rely on.
func New(rng *rand.Rand) *Deck {
	cards := make([]Card, 0, len(Suits)*len(Ranks))
	for _, s := range Suits {
		for _, r := range Ranks {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	if rng != nil {
		rng.Shuffle(len(cards), func(i, j int) {
			cards[i], cards[j] = cards[j], cards[i]
		})
	}
	return &Deck{cards: cards}
}

// Draw removes and returns the top card. ok is false once the deck
// is exhausted.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, true
}

// Remaining reports how many cards are left.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// HandString renders a hand on one line, e.g. "A♠ 10♥ K♦".
func HandString(hand []Card) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// cardArt renders one card as five lines of box art. Hidden cards
// show a filled back instead of rank and suit.
func cardArt(c Card, hidden bool) []string {
	if hidden {
		return []string{
			"┌───────┐",
			"│░░░░░░░│",
			"│░░░░░░░│",
			"│░░░░░░░│",
			"└───────┘",
		}
	}
	var top, bot string
	if c.Rank == "10" {
		top = "│" + c.Rank + "     │"
		bot = "│     " + c.Rank + "│"
	} else {
		top = "│" + c.Rank + "      │"
		bot = "│      " + c.Rank + "│"
	}
	return []string{
		"┌───────┐",
		top,
		"│   " + c.Suit + "   │",
		bot,
		"└───────┘",
	}
}

// RenderOptions control RenderHand.
type RenderOptions struct {
	// Numbered prints 1-based position labels above the cards.
	Numbered bool
	// Hidden holds indices of cards drawn face down.
	Hidden map[int]bool
}

// RenderHand draws a hand as side-by-side card art separated by two
// spaces. The result carries no trailing newline.
func RenderHand(hand []Card, opts RenderOptions) string {
	if len(hand) == 0 {
		return ""
	}
	arts := make([][]string, len(hand))
	for i, c := range hand {
		arts[i] = cardArt(c, opts.Hidden[i])
	}
	var b strings.Builder
	if opts.Numbered {
		labels := make([]string, len(hand))
		for i := range hand {
			labels[i] = "    " + strconv.Itoa(i+1) + "    "
		}
		b.WriteString(strings.Join(labels, "  "))
		b.WriteString("\n")
	}
	for row := 0; row < 5; row++ {
		line := make([]string, len(hand))
		for i := range arts {
			line[i] = arts[i][row]
		}
		b.WriteString(strings.Join(line, "  "))
		if row < 4 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
