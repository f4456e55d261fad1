package board

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/falken/wopr/internal/console"
	"github.com/falken/wopr/internal/games"
	"github.com/falken/wopr/internal/games/gametest"
)

func newTTT() *TicTacToe { return NewTicTacToe(rand.New(rand.NewSource(1))) }

func TestTicTacToeQuit(t *testing.T) {
	con := gametest.NewConsole("Q")
	outcome, err := newTTT().Play(context.Background(), con, con)
	if err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if outcome != games.OutcomeQuit {
		t.Errorf("outcome = %v, want %v", outcome, games.OutcomeQuit)
	}
}

func TestTicTacToeRejectsBadInput(t *testing.T) {
	con := gametest.NewConsole("banana", "4,4", "0,1", "1", "Q")
	outcome, err := newTTT().Play(context.Background(), con, con)
	if err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if outcome != games.OutcomeQuit {
		t.Errorf("outcome = %v, want %v", outcome, games.OutcomeQuit)
	}
	out := con.Output()
	if !strings.Contains(out, "INVALID INPUT - USE FORMAT: row,col") {
		t.Errorf("missing invalid-format message in output")
	}
	if !strings.Contains(out, "INVALID POSITION") {
		t.Errorf("missing invalid-position message in output")
	}
}

// The minimax opponent punishes a column rush: center reply, forced
// block, then the anti-diagonal closes it out.
func TestTicTacToeMinimaxWins(t *testing.T) {
	con := gametest.NewConsole("1,1", "1,2", "1,3", "2,1")
	outcome, err := newTTT().Play(context.Background(), con, con)
	if err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if outcome != games.OutcomeLost {
		t.Errorf("outcome = %v, want %v", outcome, games.OutcomeLost)
	}

	out := con.Output()
	for _, want := range []string{
		"WOPR PLAYS: 2,2", // center reply to the corner opening
		"POSITION OCCUPIED",
		"WOPR PLAYS: 3,1", // completes the anti-diagonal
		"WOPR WINS",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

// Optimal play from both sides runs the board full with no winner.
func TestTicTacToeOptimalLineDraws(t *testing.T) {
	con := gametest.NewConsole("1,1", "3,3", "3,2", "1,3", "2,1")
	outcome, err := newTTT().Play(context.Background(), con, con)
	if err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if outcome != games.OutcomeDraw {
		t.Errorf("outcome = %v, want %v", outcome, games.OutcomeDraw)
	}
	if !strings.Contains(con.Output(), "DRAW - NO WINNER") {
		t.Errorf("missing draw announcement")
	}
}

func TestTicTacToeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	con := gametest.NewConsole("1,1")
	outcome, err := newTTT().Play(ctx, con, con)
	if outcome != games.OutcomeAborted {
		t.Errorf("outcome = %v, want %v", outcome, games.OutcomeAborted)
	}
	if !errors.Is(err, console.ErrCancelled) {
		t.Errorf("err = %v, want wrapped ErrCancelled", err)
	}
}

func TestCheckWinnerLines(t *testing.T) {
	tests := []struct {
		name  string
		cells [3][3]byte
		want  byte
	}{
		{"open", [3][3]byte{
			{'X', ' ', ' '},
			{' ', 'O', ' '},
			{' ', ' ', ' '},
		}, 0},
		{"row", [3][3]byte{
			{'X', 'X', 'X'},
			{'O', 'O', ' '},
			{' ', ' ', ' '},
		}, 'X'},
		{"column", [3][3]byte{
			{'O', 'X', ' '},
			{'O', 'X', ' '},
			{'O', ' ', 'X'},
		}, 'O'},
		{"diagonal", [3][3]byte{
			{'X', 'O', ' '},
			{'O', 'X', ' '},
			{' ', ' ', 'X'},
		}, 'X'},
		{"anti-diagonal", [3][3]byte{
			{'X', 'X', 'O'},
			{'X', 'O', ' '},
			{'O', ' ', ' '},
		}, 'O'},
		{"full draw", [3][3]byte{
			{'X', 'O', 'X'},
			{'X', 'O', 'O'},
			{'O', 'X', 'X'},
		}, drawMark},
	}
	for _, tt := range tests {
		g := newTTT()
		g.board = tt.cells
		if got := g.checkWinner(); got != tt.want {
			t.Errorf("%s: checkWinner() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestComputerTakesImmediateWin(t *testing.T) {
	g := newTTT()
	g.board = [3][3]byte{
		{'O', 'O', ' '},
		{'X', 'X', ' '},
		{'X', ' ', ' '},
	}
	if got, want := g.computerMove(), ([2]int{0, 2}); got != want {
		t.Errorf("computerMove() = %v, want %v", got, want)
	}
}

func TestComputerBlocksImmediateLoss(t *testing.T) {
	g := newTTT()
	g.board = [3][3]byte{
		{'X', 'X', ' '},
		{'O', ' ', ' '},
		{' ', ' ', ' '},
	}
	if got, want := g.computerMove(), ([2]int{0, 2}); got != want {
		t.Errorf("computerMove() = %v, want %v", got, want)
	}
}
