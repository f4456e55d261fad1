package board

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/falken/wopr/internal/console"
)

// analysisTotal is the number of distinct tic-tac-toe games.
const analysisTotal = 255168

type sampleGame struct {
	cells  [9]string
	result string
}

var sampleGames = []sampleGame{
	{[9]string{"X", "O", "X", "O", "X", " ", "X", " ", "O"}, "X WINS"},
	{[9]string{"X", "X", "O", " ", "O", "X", "O", " ", " "}, "O WINS"},
	{[9]string{"X", "O", "X", "X", "O", "O", "O", "X", "X"}, "DRAW"},
	{[9]string{"O", "X", "O", "X", "X", "O", "X", "O", "X"}, "DRAW"},
	{[9]string{"X", "O", "X", "O", "O", "X", "X", "X", "O"}, "DRAW"},
}

// LearningDemo replays WOPR teaching itself that tic-tac-toe cannot be
// won: sample games, the exhaustive search counter, and the conclusion
// that optimal play has no winner.
type LearningDemo struct {
	out console.Sink

	// sleep is swapped out by tests.
	sleep func(context.Context, time.Duration) error
}

func NewLearningDemo(out console.Sink) *LearningDemo {
	return &LearningDemo{out: out, sleep: demoSleep}
}

// Run streams the demonstration. Rate scales the pacing delays; zero
// removes them while keeping every line of output.
func (d *LearningDemo) Run(ctx context.Context, rate float64) error {
	if rate < 0 {
		rate = 0
	}
	pause := func(ms int) error {
		return d.sleep(ctx, time.Duration(float64(ms)*rate)*time.Millisecond)
	}

	d.out.Print("\nANALYZING TIC-TAC-TOE...\n")
	d.out.Print(strings.Repeat("=", 50) + "\n\n")
	if err := pause(500); err != nil {
		return err
	}

	d.out.Print("SAMPLE GAMES:\n\n")
	for i, sg := range sampleGames {
		d.out.Print(fmt.Sprintf("Game %d:        Result: %s\n", i+1, sg.result))
		d.out.Print(miniBoard(sg.cells))
		d.out.Print("\n")
		if err := pause(300); err != nil {
			return err
		}
	}

	d.out.Print("ANALYZING ALL POSSIBLE GAMES...\n\n")
	for _, count := range []int{1000, 5000, 25000, 100000, 200000, analysisTotal} {
		d.out.Print(fmt.Sprintf("  Games analyzed: %s...\n", comma(count)))
		if err := pause(150); err != nil {
			return err
		}
	}

	d.out.Print("\n" + strings.Repeat("=", 50) + "\n")
	d.out.Print("ANALYSIS COMPLETE\n")
	d.out.Print(strings.Repeat("=", 50) + "\n\n")
	if err := pause(300); err != nil {
		return err
	}
	d.out.Print("TOTAL GAMES ANALYZED: " + comma(analysisTotal) + "\n")
	if err := pause(300); err != nil {
		return err
	}
	d.out.Print("OPTIMAL PLAY RESULTS IN: DRAW\n")
	if err := pause(300); err != nil {
		return err
	}
	d.out.Print("POSSIBLE WINNER WITH OPTIMAL PLAY: NONE\n\n")
	return pause(1000)
}

func miniBoard(cells [9]string) string {
	var b strings.Builder
	for row := 0; row < 3; row++ {
		fmt.Fprintf(&b, " %s | %s | %s \n", cells[row*3], cells[row*3+1], cells[row*3+2])
		if row < 2 {
			b.WriteString("---+---+---\n")
		}
	}
	return b.String()
}

// comma renders n with thousands separators.
func comma(n int) string {
	s := strconv.Itoa(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

func demoSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
