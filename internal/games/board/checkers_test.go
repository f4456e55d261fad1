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

func newCheckersGame() *Checkers { return NewCheckers(rand.New(rand.NewSource(1))) }

// emptyCheckers returns a board with no pieces for position surgery.
func emptyCheckers() *Checkers {
	return &Checkers{rng: rand.New(rand.NewSource(1))}
}

func TestParseCheckersSquare(t *testing.T) {
	tests := []struct {
		in       string
		row, col int
		ok       bool
	}{
		{"A1", 7, 0, true},
		{"A8", 0, 0, true},
		{"H1", 7, 7, true},
		{"H8", 0, 7, true},
		{"D5", 3, 3, true},
		{"A9", 0, 0, false},
		{"A0", 0, 0, false},
		{"I1", 0, 0, false},
		{"AA", 0, 0, false},
		{"", 0, 0, false},
		{"A12", 0, 0, false},
	}
	for _, tt := range tests {
		row, col, ok := parseCheckersSquare(tt.in)
		if ok != tt.ok {
			t.Errorf("parseCheckersSquare(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && (row != tt.row || col != tt.col) {
			t.Errorf("parseCheckersSquare(%q) = (%d, %d), want (%d, %d)", tt.in, row, col, tt.row, tt.col)
		}
	}
}

func TestCheckersQuit(t *testing.T) {
	con := gametest.NewConsole("QUIT")
	outcome, err := newCheckersGame().Play(context.Background(), con, con)
	if err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if outcome != games.OutcomeQuit {
		t.Errorf("outcome = %v, want %v", outcome, games.OutcomeQuit)
	}
}

func TestCheckersRejectsBadMoves(t *testing.T) {
	con := gametest.NewConsole("A3B4", "Z9-A1", "A3-A4", "Q")
	outcome, err := newCheckersGame().Play(context.Background(), con, con)
	if err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if outcome != games.OutcomeQuit {
		t.Errorf("outcome = %v, want %v", outcome, games.OutcomeQuit)
	}
	out := con.Output()
	if got := strings.Count(out, "INVALID FORMAT. USE: A3-B4"); got != 2 {
		t.Errorf("invalid-format messages = %d, want 2", got)
	}
	if !strings.Contains(out, "ILLEGAL MOVE") {
		t.Errorf("missing illegal-move message")
	}
}

func TestCheckersOpeningMoveAndReply(t *testing.T) {
	con := gametest.NewConsole("A3-B4")
	outcome, err := newCheckersGame().Play(context.Background(), con, con)
	if outcome != games.OutcomeAborted {
		t.Errorf("outcome = %v, want %v (script dry)", outcome, games.OutcomeAborted)
	}
	if !errors.Is(err, console.ErrCancelled) {
		t.Errorf("err = %v, want wrapped ErrCancelled", err)
	}
	out := con.Output()
	if !strings.Contains(out, "WOPR IS THINKING...") {
		t.Errorf("missing thinking line")
	}
	if !strings.Contains(out, "WOPR PLAYS: ") {
		t.Errorf("missing WOPR reply")
	}
}

func TestCheckersMandatoryJumpFiltersMoves(t *testing.T) {
	g := emptyCheckers()
	g.board[5][0] = 'r' // A3
	g.board[4][1] = 'b' // B4, jumpable
	g.board[6][5] = 'r' // F2, has a quiet move

	moves := g.validMoves(true)
	if len(moves) != 1 {
		t.Fatalf("validMoves = %d moves, want only the jump", len(moves))
	}
	m := moves[0]
	if !m.jump {
		t.Errorf("move.jump = false, want true")
	}
	if m.from != [2]int{5, 0} || m.to != [2]int{3, 2} {
		t.Errorf("jump = %v -> %v, want [5 0] -> [3 2]", m.from, m.to)
	}
}

func TestCheckersJumpRemovesCapturedPiece(t *testing.T) {
	g := emptyCheckers()
	g.board[5][0] = 'r'
	g.board[4][1] = 'b'

	g.makeMove(checkersMove{from: [2]int{5, 0}, to: [2]int{3, 2}, jump: true})

	if g.board[4][1] != 0 {
		t.Errorf("captured square B4 = %q, want empty", g.board[4][1])
	}
	if g.board[3][2] != 'r' {
		t.Errorf("landing square C5 = %q, want r", g.board[3][2])
	}
	red, black := g.countPieces()
	if red != 1 || black != 0 {
		t.Errorf("counts = (%d, %d), want (1, 0)", red, black)
	}
}

func TestCheckersKinging(t *testing.T) {
	g := emptyCheckers()
	g.board[1][2] = 'r'
	g.makeMove(checkersMove{from: [2]int{1, 2}, to: [2]int{0, 1}})
	if g.board[0][1] != 'R' {
		t.Errorf("promoted square = %q, want R", g.board[0][1])
	}

	g = emptyCheckers()
	g.board[6][3] = 'b'
	g.makeMove(checkersMove{from: [2]int{6, 3}, to: [2]int{7, 4}})
	if g.board[7][4] != 'B' {
		t.Errorf("promoted square = %q, want B", g.board[7][4])
	}
}

func TestCheckersKingMovesBackwards(t *testing.T) {
	g := emptyCheckers()
	g.board[4][3] = 'R'

	moves := g.validMoves(true)
	if len(moves) != 4 {
		t.Fatalf("king moves = %d, want 4", len(moves))
	}
	dirs := map[[2]int]bool{}
	for _, m := range moves {
		dirs[[2]int{m.to[0] - m.from[0], m.to[1] - m.from[1]}] = true
	}
	for _, want := range [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
		if !dirs[want] {
			t.Errorf("king missing direction %v", want)
		}
	}
}

func TestCheckersVictoryByElimination(t *testing.T) {
	g := emptyCheckers()
	g.board[4][3] = 'r'

	con := gametest.NewConsole()
	outcome, err := g.Play(context.Background(), con, con)
	if err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if outcome != games.OutcomeWon {
		t.Errorf("outcome = %v, want %v", outcome, games.OutcomeWon)
	}
	if !strings.Contains(con.Output(), "YOU WIN!") {
		t.Errorf("missing victory message")
	}
}

func TestCheckersLossWhenOutOfPieces(t *testing.T) {
	g := emptyCheckers()
	g.board[3][2] = 'b'

	con := gametest.NewConsole()
	outcome, err := g.Play(context.Background(), con, con)
	if err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if outcome != games.OutcomeLost {
		t.Errorf("outcome = %v, want %v", outcome, games.OutcomeLost)
	}
	if !strings.Contains(con.Output(), "WOPR WINS!") {
		t.Errorf("missing defeat message")
	}
}

func TestCheckersLossWhenStuck(t *testing.T) {
	// A plain red piece on the crowning rank has no forward square; the
	// side to move with no legal move loses.
	g := emptyCheckers()
	g.board[0][1] = 'r'
	g.board[2][3] = 'b'

	con := gametest.NewConsole()
	outcome, err := g.Play(context.Background(), con, con)
	if err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if outcome != games.OutcomeLost {
		t.Errorf("outcome = %v, want %v", outcome, games.OutcomeLost)
	}
	if !strings.Contains(con.Output(), "NO VALID MOVES. WOPR WINS!") {
		t.Errorf("missing stuck message")
	}
}

func TestCheckersBoardRender(t *testing.T) {
	out := newCheckersGame().renderBoard()
	for _, want := range []string{
		"A   B   C   D   E   F   G   H",
		"RED: ○ (you)",
		"BLACK: ● (WOPR)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("board render missing %q", want)
		}
	}
	if got := strings.Count(out, "○"); got != 12+1 { // 12 pieces plus legend
		t.Errorf("red piece glyphs = %d, want 13", got)
	}
	if got := strings.Count(out, "●"); got != 12+1 {
		t.Errorf("black piece glyphs = %d, want 13", got)
	}
}
