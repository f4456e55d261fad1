// Package board holds the board games: checkers, chess, and the
// tic-tac-toe that anchors WOPR's learning demonstration.
package board

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/falken/wopr/internal/console"
	"github.com/falken/wopr/internal/games"
)

const checkersInstructions = `
CHECKERS

You play RED (r/R), WOPR plays BLACK (b/B).
Uppercase letters are kings.

Enter moves as: from-to (e.g., A3-B4)
Jumps are mandatory when available.

Commands: QUIT, BOARD, HELP
`

// Checkers is draughts on the dark squares. Red moves up the board,
// black moves down, jumps are mandatory.
type Checkers struct {
	rng   *rand.Rand
	board [8][8]byte
}

func NewCheckers(rng *rand.Rand) *Checkers {
	g := &Checkers{rng: rng}
	for row := 0; row < 3; row++ {
		for col := 0; col < 8; col++ {
			if (row+col)%2 == 1 {
				g.board[row][col] = 'b'
			}
		}
	}
	for row := 5; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if (row+col)%2 == 1 {
				g.board[row][col] = 'r'
			}
		}
	}
	return g
}

type checkersMove struct {
	from, to [2]int
	jump     bool
}

func isRedPiece(c byte) bool { return c == 'r' || c == 'R' }

func isKingPiece(c byte) bool { return c == 'R' || c == 'B' }

func (g *Checkers) renderBoard() string {
	var b strings.Builder
	b.WriteString("\n    A   B   C   D   E   F   G   H\n")
	b.WriteString("  ╔═══╤═══╤═══╤═══╤═══╤═══╤═══╤═══╗\n")
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&b, "%d ║", 8-row)
		for col := 0; col < 8; col++ {
			var symbol string
			switch g.board[row][col] {
			case 'r':
				symbol = "○"
			case 'R':
				symbol = "◎"
			case 'b':
				symbol = "●"
			case 'B':
				symbol = "◉"
			default:
				symbol = " "
				if (row+col)%2 == 1 {
					symbol = "·"
				}
			}
			fmt.Fprintf(&b, " %s ", symbol)
			if col < 7 {
				b.WriteString("│")
			} else {
				b.WriteString("║")
			}
		}
		fmt.Fprintf(&b, " %d\n", 8-row)
		if row < 7 {
			b.WriteString("  ╟───┼───┼───┼───┼───┼───┼───┼───╢\n")
		}
	}
	b.WriteString("  ╚═══╧═══╧═══╧═══╧═══╧═══╧═══╧═══╝\n")
	b.WriteString("    A   B   C   D   E   F   G   H\n")
	b.WriteString("\n  RED: ○ (you)  BLACK: ● (WOPR)\n")
	b.WriteString("  KINGS: ◎ (you)  ◉ (WOPR)\n")
	return b.String()
}

// parseCheckersSquare turns "A3" into board coordinates, row 0 at the
// top of the render.
func parseCheckersSquare(s string) (int, int, bool) {
	if len(s) != 2 {
		return 0, 0, false
	}
	col := int(s[0]) - 'A'
	if s[1] < '0' || s[1] > '9' {
		return 0, 0, false
	}
	row := 8 - int(s[1]-'0')
	if row < 0 || row > 7 || col < 0 || col > 7 {
		return 0, 0, false
	}
	return row, col, true
}

// validMoves returns every legal move for one side. When any jump
// exists only jumps are returned.
func (g *Checkers) validMoves(red bool) []checkersMove {
	var moves, jumps []checkersMove
	forward := [][2]int{{1, -1}, {1, 1}}
	if red {
		forward = [][2]int{{-1, -1}, {-1, 1}}
	}
	every := [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := g.board[row][col]
			if piece == 0 || isRedPiece(piece) != red {
				continue
			}
			dirs := forward
			if isKingPiece(piece) {
				dirs = every
			}
			for _, d := range dirs {
				nr, nc := row+d[0], col+d[1]
				if nr < 0 || nr > 7 || nc < 0 || nc > 7 {
					continue
				}
				switch target := g.board[nr][nc]; {
				case target == 0:
					moves = append(moves, checkersMove{from: [2]int{row, col}, to: [2]int{nr, nc}})
				case isRedPiece(target) != red:
					jr, jc := nr+d[0], nc+d[1]
					if jr >= 0 && jr < 8 && jc >= 0 && jc < 8 && g.board[jr][jc] == 0 {
						jumps = append(jumps, checkersMove{from: [2]int{row, col}, to: [2]int{jr, jc}, jump: true})
					}
				}
			}
		}
	}

	if len(jumps) > 0 {
		return jumps
	}
	return moves
}

func (g *Checkers) makeMove(m checkersMove) {
	piece := g.board[m.from[0]][m.from[1]]
	g.board[m.from[0]][m.from[1]] = 0
	g.board[m.to[0]][m.to[1]] = piece
	if m.jump {
		g.board[(m.from[0]+m.to[0])/2][(m.from[1]+m.to[1])/2] = 0
	}
	if piece == 'r' && m.to[0] == 0 {
		g.board[m.to[0]][m.to[1]] = 'R'
	} else if piece == 'b' && m.to[0] == 7 {
		g.board[m.to[0]][m.to[1]] = 'B'
	}
}

func (g *Checkers) countPieces() (red, black int) {
	for _, row := range g.board {
		for _, piece := range row {
			if isRedPiece(piece) {
				red++
			} else if piece != 0 {
				black++
			}
		}
	}
	return red, black
}

func checkersSquareName(row, col int) string {
	return fmt.Sprintf("%c%d", 'A'+col, 8-row)
}

func (g *Checkers) Play(ctx context.Context, in console.Input, out console.Sink) (games.Outcome, error) {
	out.Print(checkersInstructions)

	for {
		out.Print(g.renderBoard())

		red, black := g.countPieces()
		out.Print(fmt.Sprintf("PIECES - RED: %d  BLACK: %d\n", red, black))

		if red == 0 {
			out.Print("WOPR WINS!\n")
			return games.OutcomeLost, nil
		}
		if black == 0 {
			out.Print("YOU WIN!\n")
			return games.OutcomeWon, nil
		}

		valid := g.validMoves(true)
		if len(valid) == 0 {
			out.Print("NO VALID MOVES. WOPR WINS!\n")
			return games.OutcomeLost, nil
		}
		if valid[0].jump {
			out.Print("JUMP AVAILABLE - YOU MUST JUMP\n")
		}

		line, err := in.ReadLine(ctx, "YOUR MOVE (e.g., A3-B4): ")
		if err != nil {
			return games.OutcomeAborted, fmt.Errorf("checkers: %w", err)
		}
		cmd := games.Clean(line)

		if games.QuitToken(cmd) {
			return games.OutcomeQuit, nil
		}
		if cmd == "BOARD" {
			continue
		}
		if cmd == "HELP" {
			out.Print(checkersInstructions)
			continue
		}

		parts := strings.Split(cmd, "-")
		if len(parts) != 2 {
			out.Print("INVALID FORMAT. USE: A3-B4\n")
			continue
		}
		fr, fc, okFrom := parseCheckersSquare(parts[0])
		tr, tc, okTo := parseCheckersSquare(parts[1])
		if !okFrom || !okTo {
			out.Print("INVALID FORMAT. USE: A3-B4\n")
			continue
		}

		var chosen checkersMove
		found := false
		for _, m := range valid {
			if m.from == [2]int{fr, fc} && m.to == [2]int{tr, tc} {
				chosen = m
				found = true
				break
			}
		}
		if !found {
			out.Print("ILLEGAL MOVE\n")
			continue
		}

		g.makeMove(chosen)

		out.Print("\nWOPR IS THINKING...\n")
		replies := g.validMoves(false)
		if len(replies) == 0 {
			out.Print("WOPR CANNOT MOVE. YOU WIN!\n")
			return games.OutcomeWon, nil
		}
		reply := replies[g.rng.Intn(len(replies))]
		g.makeMove(reply)
		out.Print(fmt.Sprintf("WOPR PLAYS: %s-%s\n",
			checkersSquareName(reply.from[0], reply.from[1]),
			checkersSquareName(reply.to[0], reply.to[1])))
	}
}
