package board

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/falken/wopr/internal/games/gametest"
)

func TestLearningDemoContent(t *testing.T) {
	con := gametest.NewConsole()
	demo := NewLearningDemo(con)

	if err := demo.Run(context.Background(), 0); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	out := con.Output()
	for _, want := range []string{
		"ANALYZING TIC-TAC-TOE...",
		"SAMPLE GAMES:",
		"Game 1:        Result: X WINS",
		"Game 5:        Result: DRAW",
		"ANALYZING ALL POSSIBLE GAMES...",
		"Games analyzed: 1,000...",
		"Games analyzed: 255,168...",
		"ANALYSIS COMPLETE",
		"TOTAL GAMES ANALYZED: 255,168",
		"OPTIMAL PLAY RESULTS IN: DRAW",
		"POSSIBLE WINNER WITH OPTIMAL PLAY: NONE",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("demonstration missing %q", want)
		}
	}
	if got := strings.Count(out, "---+---+---"); got != len(sampleGames)*2 {
		t.Errorf("mini board separators = %d, want %d", got, len(sampleGames)*2)
	}
}

func TestLearningDemoRateZeroSkipsDelays(t *testing.T) {
	con := gametest.NewConsole()
	demo := NewLearningDemo(con)
	var paced int
	demo.sleep = func(_ context.Context, d time.Duration) error {
		if d > 0 {
			paced++
		}
		return nil
	}

	if err := demo.Run(context.Background(), 0); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if paced != 0 {
		t.Errorf("paced sleeps at rate 0 = %d, want 0", paced)
	}
}

func TestLearningDemoCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	con := gametest.NewConsole()
	err := NewLearningDemo(con).Run(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v, want context.Canceled", err)
	}
	if strings.Contains(con.Output(), "TOTAL GAMES ANALYZED") {
		t.Errorf("cancelled run still reached the conclusion")
	}
}

func TestCommaSeparators(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{255168, "255,168"},
		{1000000, "1,000,000"},
	}
	for _, tt := range tests {
		if got := comma(tt.in); got != tt.want {
			t.Errorf("comma(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
