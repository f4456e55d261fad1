package catalog

import (
	"math/rand"
	"testing"

	"github.com/falken/wopr/internal/games"
)

func testOptions() Options {
	return Options{RNG: rand.New(rand.NewSource(1)), ChessDifficulty: 3}
}

func TestCatalogOrder(t *testing.T) {
	want := []string{
		"FALKEN'S MAZE",
		"BLACK JACK",
		"GIN RUMMY",
		"HEARTS",
		"BRIDGE",
		"CHECKERS",
		"CHESS",
		"POKER",
		"FIGHTER COMBAT",
		"GUERRILLA ENGAGEMENT",
		"DESERT WARFARE",
		"AIR-TO-GROUND ACTIONS",
		"THEATERWIDE TACTICAL WARFARE",
		"THEATERWIDE BIOTOXIC AND CHEMICAL WARFARE",
		"GLOBAL THERMONUCLEAR WAR",
	}

	reg, err := NewRegistry(testOptions())
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}
	list := reg.List()
	if len(list) != len(want) {
		t.Fatalf("catalog has %d entries, want %d", len(list), len(want))
	}
	for i, d := range list {
		if d.Index != i+1 {
			t.Errorf("entry %d has index %d, want %d", i, d.Index, i+1)
		}
		if d.Name != want[i] {
			t.Errorf("entry %d = %q, want %q", i+1, d.Name, want[i])
		}
	}
}

func TestEveryConstructorBuilds(t *testing.T) {
	for _, d := range Descriptors(testOptions()) {
		if g := d.New(); g == nil {
			t.Errorf("descriptor %q built a nil game", d.Name)
		}
	}
}

func TestResolveAliases(t *testing.T) {
	reg, err := NewRegistry(testOptions())
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}
	tests := []struct {
		token string
		want  string
	}{
		{"1", "FALKEN'S MAZE"},
		{"maze", "FALKEN'S MAZE"},
		{"15", games.GlobalThermonuclearWar},
		{"gtw", games.GlobalThermonuclearWar},
		{"THERMONUCLEAR", games.GlobalThermonuclearWar},
		{"nuke", games.GlobalThermonuclearWar},
		{"WAR", games.GlobalThermonuclearWar},
		{"bj", "BLACK JACK"},
		{"BLACKJACK", "BLACK JACK"},
		{"chess", "CHESS"},
	}
	for _, tt := range tests {
		d, ok := reg.Resolve(tt.token)
		if !ok {
			t.Errorf("Resolve(%q) found nothing, want %q", tt.token, tt.want)
			continue
		}
		if d.Name != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.token, d.Name, tt.want)
		}
	}
}

func TestTicTacToeIsHidden(t *testing.T) {
	reg, err := NewRegistry(testOptions())
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}
	for _, token := range []string{"TIC-TAC-TOE", "TTT", "16", "0"} {
		if d, ok := reg.Resolve(token); ok {
			t.Errorf("Resolve(%q) = %q, want no catalog entry", token, d.Name)
		}
	}
}

func TestMilitaryBoundary(t *testing.T) {
	descs := Descriptors(testOptions())
	if got := descs[FirstMilitaryIndex-1].Name; got != "FIGHTER COMBAT" {
		t.Errorf("first military entry = %q, want FIGHTER COMBAT", got)
	}
	if got := descs[len(descs)-1].Name; got != games.GlobalThermonuclearWar {
		t.Errorf("last military entry = %q, want %q", got, games.GlobalThermonuclearWar)
	}
}

func TestNilRNGStillBuilds(t *testing.T) {
	reg, err := NewRegistry(Options{ChessDifficulty: 3})
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}
	d, ok := reg.Resolve("FALKEN'S MAZE")
	if !ok {
		t.Fatal("Resolve(FALKEN'S MAZE) found nothing")
	}
	if g := d.New(); g == nil {
		t.Error("constructor with defaulted rng built a nil game")
	}
}
