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

func suitRun(suit string, ranks ...string) []deck.Card {
	hand := make([]deck.Card, len(ranks))
	for i, r := range ranks {
		hand[i] = card(r, suit)
	}
	return hand
}

func wholeSuit(suit string) []deck.Card {
	return suitRun(suit, "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A")
}

func TestCountPoints(t *testing.T) {
	hand := []deck.Card{card("A", "♠"), card("K", "♥"), card("Q", "♦"), card("J", "♣"), card("5", "♠")}
	if got := countPoints(hand); got != 10 {
		t.Errorf("countPoints() = %d, want 10", got)
	}
}

func TestHigherBid(t *testing.T) {
	cur := &bid{level: 2, suit: "♥"}
	tests := []struct {
		b    bid
		want bool
	}{
		{bid{level: 3, suit: "♣"}, true},
		{bid{level: 2, suit: "♠"}, true},
		{bid{level: 2, suit: "NT"}, true},
		{bid{level: 2, suit: "♥"}, false},
		{bid{level: 2, suit: "♦"}, false},
		{bid{level: 1, suit: "NT"}, false},
	}
	for _, tt := range tests {
		if got := higherBid(tt.b, cur); got != tt.want {
			t.Errorf("higherBid(%d %s) = %v, want %v", tt.b.level, tt.b.suit, got, tt.want)
		}
	}
	if !higherBid(bid{level: 1, suit: "♣"}, nil) {
		t.Error("any bid should beat no bid")
	}
}

func TestParsePlayerBid(t *testing.T) {
	tests := []struct {
		cmd  string
		want bid
		ok   bool
	}{
		{"BID 3 HEARTS", bid{level: 3, suit: "♥"}, true},
		{"2 SPADES", bid{level: 2, suit: "♠"}, true},
		{"BID 1 NO TRUMP", bid{level: 1, suit: "NT"}, true},
		{"BID 4 NT", bid{level: 4, suit: "NT"}, true},
		{"BID HEARTS", bid{}, false},
		{"BID 3 ROCKETS", bid{}, false},
		{"GIBBERISH", bid{}, false},
	}
	for _, tt := range tests {
		got, ok := parsePlayerBid(tt.cmd)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parsePlayerBid(%q) = %+v, %v; want %+v, %v", tt.cmd, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWoprBidPassesUnderTwelvePoints(t *testing.T) {
	g := NewBridge(rand.New(rand.NewSource(1)))
	g.hands[2] = suitRun("♦", "2", "3", "4", "5", "6", "7", "8", "9", "10")
	if b := g.woprBid(2, nil); b != nil {
		t.Errorf("woprBid = %+v, want pass with 0 HCP", b)
	}
}

func TestWoprBidLevelAndRaise(t *testing.T) {
	g := NewBridge(rand.New(rand.NewSource(1)))
	// 22 HCP with clubs the long suit.
	g.hands[1] = []deck.Card{
		card("A", "♠"), card("A", "♥"), card("A", "♦"), card("A", "♣"),
		card("K", "♠"), card("K", "♥"),
		card("2", "♣"), card("3", "♣"), card("4", "♣"), card("5", "♣"),
		card("6", "♣"), card("7", "♣"), card("8", "♣"),
	}

	b := g.woprBid(1, nil)
	if b == nil || b.level != 4 || b.suit != "♣" {
		t.Fatalf("open bid = %+v, want 4 clubs", b)
	}

	b = g.woprBid(1, &bid{level: 4, suit: "♠"})
	if b == nil || b.level != 5 || b.suit != "♣" {
		t.Fatalf("raise = %+v, want 5 clubs over 4 spades", b)
	}

	if b := g.woprBid(1, &bid{level: 7, suit: "♠"}); b != nil {
		t.Errorf("bid over 7 spades = %+v, want pass", b)
	}
}

func TestBridgeQuitDuringBidding(t *testing.T) {
	g := NewBridge(rand.New(rand.NewSource(3)))
	con := gametest.NewConsole("Q")
	outcome, err := g.Play(context.Background(), con, con)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if outcome != games.OutcomeQuit {
		t.Fatalf("outcome = %v, want QUIT", outcome)
	}
	if !strings.Contains(con.Output(), "FINAL: NS=0 EW=0") {
		t.Error("output missing final score line")
	}
}

func TestPlayerPlayEnforcesFollowSuit(t *testing.T) {
	g := NewBridge(rand.New(rand.NewSource(1)))
	g.hands[0] = []deck.Card{card("2", "♦"), card("5", "♣")}
	trick := []trickPlay{{player: 2, card: card("9", "♦")}}
	con := gametest.NewConsole("2", "1")

	got, quit, err := g.playerPlay(context.Background(), con, con, trick, "♦")
	if err != nil || quit {
		t.Fatalf("playerPlay quit=%v err=%v", quit, err)
	}
	if got != card("2", "♦") {
		t.Fatalf("played %v, want the forced diamond", got)
	}
	if !strings.Contains(con.Output(), "MUST FOLLOW SUIT") {
		t.Error("output missing MUST FOLLOW SUIT")
	}
}

// With each seat holding one full suit and spades as trump, the
// declarer's side trumps every trick.
func TestPlayHandTrumpSweep(t *testing.T) {
	g := NewBridge(rand.New(rand.NewSource(1)))
	g.hands[0] = wholeSuit("♣")
	g.hands[1] = wholeSuit("♠")
	g.hands[2] = wholeSuit("♦")
	g.hands[3] = wholeSuit("♥")

	script := make([]string, 13)
	for i := range script {
		script[i] = "1"
	}
	con := gametest.NewConsole(script...)

	tricks, quit, err := g.playHand(context.Background(), con, con, &contract{level: 1, suit: "♠", declarer: 1})
	if err != nil || quit {
		t.Fatalf("playHand quit=%v err=%v", quit, err)
	}
	if tricks[0] != 13 || tricks[1] != 0 {
		t.Fatalf("tricks = %v, want NS sweep", tricks)
	}
	out := con.Output()
	if !strings.Contains(out, "CONTRACT: 1 ♠ BY WOPR") {
		t.Error("output missing contract line")
	}
	if !strings.Contains(out, "PARTNER WINS TRICK (NS: 13, EW: 0)") {
		t.Error("output missing final trick line")
	}
}
