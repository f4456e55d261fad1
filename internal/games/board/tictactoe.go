package board

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/falken/wopr/internal/console"
	"github.com/falken/wopr/internal/games"
)

const tictactoeInstructions = `
TIC-TAC-TOE

Place your mark (X) by entering coordinates (1-3, 1-3).
Example: 1,1 for top-left, 2,2 for center

Win by getting three in a row horizontally, vertically, or diagonally.
`

const (
	playerMark   byte = 'X'
	computerMark byte = 'O'
	drawMark     byte = 'D'
)

// TicTacToe plays X against a minimax opponent that never loses.
type TicTacToe struct {
	rng   *rand.Rand
	board [3][3]byte
}

func NewTicTacToe(rng *rand.Rand) *TicTacToe {
	g := &TicTacToe{rng: rng}
	for r := range g.board {
		for c := range g.board[r] {
			g.board[r][c] = ' '
		}
	}
	return g
}

func (g *TicTacToe) renderBoard() string {
	var b strings.Builder
	b.WriteString("\n          1         2         3\n")
	b.WriteString("     ┌─────────┬─────────┬─────────┐\n")
	for i, row := range g.board {
		b.WriteString("     │         │         │         │\n")
		fmt.Fprintf(&b, "  %d  │    %c    │    %c    │    %c    │\n", i+1, row[0], row[1], row[2])
		b.WriteString("     │         │         │         │\n")
		if i < 2 {
			b.WriteString("     ├─────────┼─────────┼─────────┤\n")
		}
	}
	b.WriteString("     └─────────┴─────────┴─────────┘\n")
	return b.String()
}

// checkWinner returns the winning mark, drawMark for a full board, or
// zero while the game is open.
func (g *TicTacToe) checkWinner() byte {
	for _, row := range g.board {
		if row[0] == row[1] && row[1] == row[2] && row[0] != ' ' {
			return row[0]
		}
	}
	for col := 0; col < 3; col++ {
		if g.board[0][col] == g.board[1][col] && g.board[1][col] == g.board[2][col] && g.board[0][col] != ' ' {
			return g.board[0][col]
		}
	}
	if g.board[0][0] == g.board[1][1] && g.board[1][1] == g.board[2][2] && g.board[0][0] != ' ' {
		return g.board[0][0]
	}
	if g.board[0][2] == g.board[1][1] && g.board[1][1] == g.board[2][0] && g.board[0][2] != ' ' {
		return g.board[0][2]
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if g.board[r][c] == ' ' {
				return 0
			}
		}
	}
	return drawMark
}

func (g *TicTacToe) emptyCells() [][2]int {
	var cells [][2]int
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if g.board[r][c] == ' ' {
				cells = append(cells, [2]int{r, c})
			}
		}
	}
	return cells
}

// minimax scores the position for the computer, preferring faster wins
// and slower losses through the depth adjustment.
func (g *TicTacToe) minimax(maximizing bool, depth int) (int, [2]int, bool) {
	switch g.checkWinner() {
	case computerMark:
		return 10 - depth, [2]int{}, false
	case playerMark:
		return depth - 10, [2]int{}, false
	case drawMark:
		return 0, [2]int{}, false
	}

	empty := g.emptyCells()
	if len(empty) == 0 {
		return 0, [2]int{}, false
	}

	var best [2]int
	if maximizing {
		bestScore := -100
		for _, cell := range empty {
			g.board[cell[0]][cell[1]] = computerMark
			score, _, _ := g.minimax(false, depth+1)
			g.board[cell[0]][cell[1]] = ' '
			if score > bestScore {
				bestScore = score
				best = cell
			}
		}
		return bestScore, best, true
	}

	bestScore := 100
	for _, cell := range empty {
		g.board[cell[0]][cell[1]] = playerMark
		score, _, _ := g.minimax(true, depth+1)
		g.board[cell[0]][cell[1]] = ' '
		if score < bestScore {
			bestScore = score
			best = cell
		}
	}
	return bestScore, best, true
}

func (g *TicTacToe) computerMove() [2]int {
	if _, move, ok := g.minimax(true, 0); ok {
		return move
	}
	empty := g.emptyCells()
	if len(empty) == 0 {
		return [2]int{0, 0}
	}
	return empty[g.rng.Intn(len(empty))]
}

func (g *TicTacToe) Play(ctx context.Context, in console.Input, out console.Sink) (games.Outcome, error) {
	out.Print(tictactoeInstructions)

	for {
		out.Print(g.renderBoard() + "\n")

		switch g.checkWinner() {
		case drawMark:
			out.Print("\nDRAW - NO WINNER\n")
			return games.OutcomeDraw, nil
		case playerMark:
			out.Print("\nYOU WIN\n")
			return games.OutcomeWon, nil
		case computerMark:
			out.Print("\nWOPR WINS\n")
			return games.OutcomeLost, nil
		}

		line, err := in.ReadLine(ctx, "\nYOUR MOVE (row,col or Q to quit): ")
		if err != nil {
			return games.OutcomeAborted, fmt.Errorf("tic-tac-toe: %w", err)
		}
		cmd := games.Clean(line)

		if games.QuitToken(cmd) {
			return games.OutcomeQuit, nil
		}

		parts := strings.Split(strings.ReplaceAll(cmd, " ", ","), ",")
		if len(parts) < 2 {
			out.Print("INVALID INPUT - USE FORMAT: row,col\n")
			continue
		}
		row, errRow := strconv.Atoi(parts[0])
		col, errCol := strconv.Atoi(parts[1])
		if errRow != nil || errCol != nil {
			out.Print("INVALID INPUT - USE FORMAT: row,col\n")
			continue
		}
		row--
		col--
		if row < 0 || row > 2 || col < 0 || col > 2 {
			out.Print("INVALID POSITION\n")
			continue
		}
		if g.board[row][col] != ' ' {
			out.Print("POSITION OCCUPIED\n")
			continue
		}

		g.board[row][col] = playerMark

		if g.checkWinner() != 0 {
			continue
		}

		move := g.computerMove()
		g.board[move[0]][move[1]] = computerMark
		out.Print(fmt.Sprintf("\nWOPR PLAYS: %d,%d\n", move[0]+1, move[1]+1))
	}
}
