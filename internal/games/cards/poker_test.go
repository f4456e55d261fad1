package cards

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/falken/wopr/internal/games"
	"github.com/falken/wopr/internal/games/deck"
	"github.com/falken/wopr/internal/games/gametest"
)

func TestEvaluateHandClasses(t *testing.T) {
	tests := []struct {
		name string
		hand []deck.Card
		want int
	}{
		{"royal flush", []deck.Card{card("10", "♠"), card("J", "♠"), card("Q", "♠"), card("K", "♠"), card("A", "♠")}, 9},
		{"straight flush", []deck.Card{card("5", "♥"), card("6", "♥"), card("7", "♥"), card("8", "♥"), card("9", "♥")}, 8},
		{"four of a kind", []deck.Card{card("9", "♠"), card("9", "♥"), card("9", "♦"), card("9", "♣"), card("K", "♠")}, 7},
		{"full house", []deck.Card{card("Q", "♠"), card("Q", "♥"), card("Q", "♦"), card("2", "♣"), card("2", "♠")}, 6},
		{"flush", []deck.Card{card("2", "♥"), card("5", "♥"), card("7", "♥"), card("9", "♥"), card("K", "♥")}, 5},
		{"straight", []deck.Card{card("6", "♠"), card("7", "♥"), card("8", "♦"), card("9", "♣"), card("10", "♠")}, 4},
		{"wheel", []deck.Card{card("A", "♠"), card("2", "♥"), card("3", "♦"), card("4", "♣"), card("5", "♠")}, 4},
		{"three of a kind", []deck.Card{card("4", "♠"), card("4", "♥"), card("4", "♦"), card("9", "♣"), card("K", "♠")}, 3},
		{"two pair", []deck.Card{card("4", "♠"), card("4", "♥"), card("9", "♦"), card("9", "♣"), card("K", "♠")}, 2},
		{"one pair", []deck.Card{card("4", "♠"), card("4", "♥"), card("8", "♦"), card("9", "♣"), card("K", "♠")}, 1},
		{"high card", []deck.Card{card("2", "♠"), card("5", "♥"), card("8", "♦"), card("J", "♣"), card("K", "♠")}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := evaluateHand(tt.hand)
			if got != tt.want {
				t.Errorf("evaluateHand() class = %s, want %s", handRanks[got], handRanks[tt.want])
			}
		})
	}
}

func TestEvaluateHandWheelRewritesAceLow(t *testing.T) {
	hand := []deck.Card{card("A", "♠"), card("2", "♥"), card("3", "♦"), card("4", "♣"), card("5", "♠")}
	_, tie := evaluateHand(hand)
	want := []int{5, 4, 3, 2, 1}
	for i, v := range want {
		if tie[i] != v {
			t.Fatalf("tiebreaks = %v, want %v", tie, want)
		}
	}
}

func TestCompareHands(t *testing.T) {
	flushRank, flushTie := evaluateHand([]deck.Card{card("2", "♥"), card("5", "♥"), card("7", "♥"), card("9", "♥"), card("K", "♥")})
	pairRank, pairTie := evaluateHand([]deck.Card{card("4", "♠"), card("4", "♥"), card("8", "♦"), card("9", "♣"), card("K", "♠")})
	if compareHands(flushRank, flushTie, pairRank, pairTie) != 1 {
		t.Error("flush should beat pair")
	}
	if compareHands(pairRank, pairTie, flushRank, flushTie) != -1 {
		t.Error("pair should lose to flush")
	}
	if compareHands(pairRank, pairTie, pairRank, pairTie) != 0 {
		t.Error("identical hands should tie")
	}
}

func TestParseDiscard(t *testing.T) {
	tests := []struct {
		cmd  string
		want []int
		ok   bool
	}{
		{"1,3,5", []int{0, 2, 4}, true},
		{"DISCARD 2,4", []int{1, 3}, true},
		{"DISCARD 1, 2", []int{0, 1}, true},
		{"0,6,2", []int{1}, true},
		{"1 3", nil, false},
		{"NONSENSE", nil, false},
	}
	for _, tt := range tests {
		got, ok := parseDiscard(tt.cmd)
		if ok != tt.ok {
			t.Errorf("parseDiscard(%q) ok = %v, want %v", tt.cmd, ok, tt.ok)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parseDiscard(%q) = %v, want %v", tt.cmd, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseDiscard(%q) = %v, want %v", tt.cmd, got, tt.want)
			}
		}
	}
}

func TestWoprDiscardKeepsPairs(t *testing.T) {
	g := NewPoker(rand.New(rand.NewSource(1)))
	g.deck = deck.New(nil)
	g.wopr = []deck.Card{card("A", "♠"), card("A", "♥"), card("3", "♣"), card("7", "♦"), card("9", "♠")}
	n := g.woprDiscard()
	if n != 3 {
		t.Fatalf("discarded %d cards, want 3", n)
	}
	aces := 0
	for _, c := range g.wopr {
		if c.Rank == "A" {
			aces++
		}
	}
	if aces != 2 {
		t.Errorf("kept %d aces, want 2", aces)
	}
	if len(g.wopr) != 5 {
		t.Errorf("hand size = %d, want 5", len(g.wopr))
	}
}

func TestWoprDiscardStandsPatOnTrips(t *testing.T) {
	g := NewPoker(rand.New(rand.NewSource(1)))
	g.deck = deck.New(nil)
	g.wopr = []deck.Card{card("8", "♠"), card("8", "♥"), card("8", "♦"), card("2", "♣"), card("K", "♠")}
	if n := g.woprDiscard(); n != 0 {
		t.Fatalf("discarded %d cards, want 0", n)
	}
}

func TestPokerQuitLeavesAfterAnte(t *testing.T) {
	g := NewPoker(rand.New(rand.NewSource(2)))
	con := gametest.NewConsole("Q")
	outcome, err := g.Play(context.Background(), con, con)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if outcome != games.OutcomeQuit {
		t.Fatalf("outcome = %v, want QUIT", outcome)
	}
	if !strings.Contains(con.Output(), "YOU LEAVE WITH 95 CHIPS") {
		t.Errorf("output missing leave line, got:\n%s", con.Output())
	}
}

func TestPokerFoldForfeitsPot(t *testing.T) {
	g := NewPoker(rand.New(rand.NewSource(2)))
	con := gametest.NewConsole("FOLD", "QUIT")
	outcome, err := g.Play(context.Background(), con, con)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if outcome != games.OutcomeQuit {
		t.Fatalf("outcome = %v, want QUIT", outcome)
	}
	if !strings.Contains(con.Output(), "YOU FOLD. WOPR WINS POT.") {
		t.Error("output missing fold line")
	}
	if !strings.Contains(con.Output(), "YOU LEAVE WITH 90 CHIPS") {
		t.Error("fold should cost one ante")
	}
}

func TestPokerShowdownRunsToCompletion(t *testing.T) {
	g := NewPoker(rand.New(rand.NewSource(2)))
	con := gametest.NewConsole("KEEP", "QUIT")
	outcome, err := g.Play(context.Background(), con, con)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if outcome != games.OutcomeQuit {
		t.Fatalf("outcome = %v, want QUIT", outcome)
	}
	out := con.Output()
	for _, want := range []string{"*** SHOWDOWN ***", "YOUR HAND:", "WOPR HAND:", "YOU:", "WOPR:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
