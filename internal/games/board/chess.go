package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"github.com/falken/wopr/internal/console"
	"github.com/falken/wopr/internal/games"
)

const chessInstructions = `
CHESS

Enter moves in algebraic notation:
  e2e4  - Move piece from e2 to e4
  e7e8q - Pawn promotion (add piece letter)
  O-O   - Kingside castle
  O-O-O - Queenside castle

Commands: QUIT, RESIGN, BOARD, HELP
`

// Chess plays white against WOPR's alpha-beta search. Difficulty sets
// the search depth.
type Chess struct {
	difficulty int
}

func NewChess(difficulty int) *Chess {
	if difficulty < 1 {
		difficulty = 1
	}
	if difficulty > 5 {
		difficulty = 5
	}
	return &Chess{difficulty: difficulty}
}

var chessGlyphs = map[chess.Piece]string{
	chess.WhiteKing:   "♔",
	chess.WhiteQueen:  "♕",
	chess.WhiteRook:   "♖",
	chess.WhiteBishop: "♗",
	chess.WhiteKnight: "♘",
	chess.WhitePawn:   "♙",
	chess.BlackKing:   "♚",
	chess.BlackQueen:  "♛",
	chess.BlackRook:   "♜",
	chess.BlackBishop: "♝",
	chess.BlackKnight: "♞",
	chess.BlackPawn:   "♟",
}

var chessPieceValues = map[chess.PieceType]int{
	chess.Pawn:   100,
	chess.Knight: 320,
	chess.Bishop: 330,
	chess.Rook:   500,
	chess.Queen:  900,
	chess.King:   20000,
}

func renderChessBoard(pos *chess.Position) string {
	var b strings.Builder
	b.WriteString("\n    a   b   c   d   e   f   g   h\n")
	b.WriteString("  ╔═══╤═══╤═══╤═══╤═══╤═══╤═══╤═══╗\n")
	brd := pos.Board()
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&b, "%d ║", rank+1)
		for file := 0; file < 8; file++ {
			symbol := " "
			if (rank+file)%2 == 0 {
				symbol = "·"
			}
			if piece := brd.Piece(chess.Square(rank*8 + file)); piece != chess.NoPiece {
				symbol = chessGlyphs[piece]
			}
			fmt.Fprintf(&b, " %s ", symbol)
			if file < 7 {
				b.WriteString("│")
			} else {
				b.WriteString("║")
			}
		}
		fmt.Fprintf(&b, " %d\n", rank+1)
		if rank > 0 {
			b.WriteString("  ╟───┼───┼───┼───┼───┼───┼───┼───╢\n")
		}
	}
	b.WriteString("  ╚═══╧═══╧═══╧═══╧═══╧═══╧═══╧═══╝\n")
	b.WriteString("    a   b   c   d   e   f   g   h\n")
	return b.String()
}

// evaluateChess scores a position from WOPR's side of the table. The
// side to move in a mated position is the loser, so mate against white
// is the maximum score.
func evaluateChess(pos *chess.Position) int {
	switch pos.Status() {
	case chess.Checkmate:
		if pos.Turn() == chess.White {
			return 99999
		}
		return -99999
	case chess.Stalemate:
		return 0
	}

	score := 0
	brd := pos.Board()
	for sq := 0; sq < 64; sq++ {
		piece := brd.Piece(chess.Square(sq))
		if piece == chess.NoPiece {
			continue
		}
		value := chessPieceValues[piece.Type()]
		if piece.Color() == chess.White {
			score -= value
		} else {
			score += value
		}
	}
	return score
}

func minimaxChess(pos *chess.Position, depth, alpha, beta int, maximizing bool) int {
	if depth == 0 || pos.Status() != chess.NoMethod {
		return evaluateChess(pos)
	}

	if maximizing {
		best := -999999
		for _, m := range pos.ValidMoves() {
			score := minimaxChess(pos.Update(m), depth-1, alpha, beta, false)
			best = max(best, score)
			alpha = max(alpha, score)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := 999999
	for _, m := range pos.ValidMoves() {
		score := minimaxChess(pos.Update(m), depth-1, alpha, beta, true)
		best = min(best, score)
		beta = min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return best
}

func (g *Chess) bestMove(pos *chess.Position) *chess.Move {
	depth := g.difficulty + 1
	var best *chess.Move
	bestScore := -999999
	for _, m := range pos.ValidMoves() {
		score := minimaxChess(pos.Update(m), depth, -999999, 999999, false)
		if score > bestScore {
			bestScore = score
			best = m
		}
	}
	return best
}

// pushPlayerMove accepts castling shorthand, then UCI, then SAN.
func pushPlayerMove(game *chess.Game, raw, cmd string) error {
	san := chess.AlgebraicNotation{}

	switch cmd {
	case "O-O", "0-0":
		move, err := san.Decode(game.Position(), "O-O")
		if err != nil {
			return err
		}
		return game.Move(move)
	case "O-O-O", "0-0-0":
		move, err := san.Decode(game.Position(), "O-O-O")
		if err != nil {
			return err
		}
		return game.Move(move)
	}

	if move, err := (chess.UCINotation{}).Decode(game.Position(), strings.ToLower(raw)); err == nil {
		if err := game.Move(move); err == nil {
			return nil
		}
	}
	move, err := san.Decode(game.Position(), raw)
	if err != nil {
		return err
	}
	return game.Move(move)
}

func (g *Chess) Play(ctx context.Context, in console.Input, out console.Sink) (games.Outcome, error) {
	out.Print(chessInstructions)

	game := chess.NewGame()

	out.Print("YOU PLAY WHITE. WOPR PLAYS BLACK.\n")
	out.Print(fmt.Sprintf("DIFFICULTY LEVEL: %d\n\n", g.difficulty))

	for game.Outcome() == chess.NoOutcome {
		out.Print(renderChessBoard(game.Position()))

		if moves := game.Moves(); len(moves) > 0 && moves[len(moves)-1].HasTag(chess.Check) {
			out.Print("CHECK!\n")
		}

		if game.Position().Turn() == chess.White {
			line, err := in.ReadLine(ctx, "YOUR MOVE: ")
			if err != nil {
				return games.OutcomeAborted, fmt.Errorf("chess: %w", err)
			}
			raw := strings.TrimSpace(line)
			cmd := games.Clean(line)

			if games.QuitToken(cmd) {
				return games.OutcomeQuit, nil
			}
			if cmd == "RESIGN" {
				out.Print("\nYOU RESIGN. WOPR WINS.\n")
				return games.OutcomeLost, nil
			}
			if cmd == "BOARD" {
				continue
			}
			if cmd == "HELP" {
				out.Print(chessInstructions)
				continue
			}

			if err := pushPlayerMove(game, raw, cmd); err != nil {
				out.Print("ILLEGAL MOVE\n")
				continue
			}
		} else {
			out.Print("WOPR IS THINKING...\n")
			move := g.bestMove(game.Position())
			if move == nil {
				out.Print("WOPR CANNOT MOVE\n")
				break
			}
			if err := game.Move(move); err != nil {
				return games.OutcomeAborted, fmt.Errorf("chess: apply reply %s: %w", move, err)
			}
			out.Print(fmt.Sprintf("WOPR PLAYS: %s\n", move))
		}
	}

	out.Print(renderChessBoard(game.Position()))

	switch game.Method() {
	case chess.Checkmate:
		if game.Outcome() == chess.BlackWon {
			out.Print("CHECKMATE! WOPR WINS.\n")
			return games.OutcomeLost, nil
		}
		out.Print("CHECKMATE! YOU WIN.\n")
		return games.OutcomeWon, nil
	case chess.Stalemate:
		out.Print("STALEMATE - DRAW\n")
		return games.OutcomeDraw, nil
	case chess.InsufficientMaterial:
		out.Print("INSUFFICIENT MATERIAL - DRAW\n")
		return games.OutcomeDraw, nil
	default:
		out.Print("GAME OVER - DRAW\n")
		return games.OutcomeDraw, nil
	}
}
