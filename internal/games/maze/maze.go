// Package maze implements Falken's Maze, a procedurally generated
// labyrinth crawl.
package maze

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/falken/wopr/internal/console"
	"github.com/falken/wopr/internal/games"
)

const instructions = `
FALKEN'S MAZE

Navigate from START (S) to EXIT (E).
You are represented by @.

Commands:
  N or W - Move North (up)
  S or X - Move South (down)
  E or D - Move East (right)
  A      - Move West (left)
  Q      - Quit

Walls are represented by █
`

const (
	defaultWidth  = 21
	defaultHeight = 15
)

type point struct {
	x, y int
}

// Game generates one maze per play and walks the player through it.
type Game struct {
	width, height int
	rng           *rand.Rand

	walls  [][]bool
	player point
	exit   point
	moves  int
}

// New returns a maze game at the standard size. rng seeds generation;
// nil falls back to an unseeded source.
func New(rng *rand.Rand) *Game {
	return NewSized(rng, defaultWidth, defaultHeight)
}

// NewSized returns a maze game with explicit dimensions. Even values
// are bumped to the next odd so the carver's 2-cell steps line up.
func NewSized(rng *rand.Rand, width, height int) *Game {
	if width%2 == 0 {
		width++
	}
	if height%2 == 0 {
		height++
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Game{width: width, height: height, rng: rng}
}

// generate carves passages with recursive backtracking, then opens the
// start and exit cells in opposite corners.
func (g *Game) generate() {
	g.walls = make([][]bool, g.height)
	for y := range g.walls {
		g.walls[y] = make([]bool, g.width)
		for x := range g.walls[y] {
			g.walls[y][x] = true
		}
	}

	var carve func(x, y int)
	carve = func(x, y int) {
		g.walls[y][x] = false
		dirs := []point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
		g.rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })
		for _, d := range dirs {
			nx, ny := x+d.x, y+d.y
			if nx > 0 && nx < g.width-1 && ny > 0 && ny < g.height-1 && g.walls[ny][nx] {
				g.walls[y+d.y/2][x+d.x/2] = false
				carve(nx, ny)
			}
		}
	}

	startX := 1 + 2*g.rng.Intn((g.width-1)/2)
	startY := 1 + 2*g.rng.Intn((g.height-1)/2)
	carve(startX, startY)

	g.player = point{1, 1}
	g.walls[1][1] = false

	g.exit = point{g.width - 2, g.height - 2}
	g.walls[g.exit.y][g.exit.x] = false

	// Corner cells may have been sealed off when the carver never
	// reached them. Punch one opening so both stay connected.
	if g.walls[1][2] && g.walls[2][1] {
		g.walls[1][2] = false
	}
	if g.walls[g.exit.y][g.exit.x-1] && g.walls[g.exit.y-1][g.exit.x] {
		g.walls[g.exit.y][g.exit.x-1] = false
	}

	g.moves = 0
}

func (g *Game) render() string {
	var b strings.Builder
	b.WriteString("╔" + strings.Repeat("═", g.width) + "╗\n")
	for y := 0; y < g.height; y++ {
		b.WriteString("║")
		for x := 0; x < g.width; x++ {
			switch {
			case g.player.x == x && g.player.y == y:
				b.WriteString("@")
			case g.exit.x == x && g.exit.y == y:
				b.WriteString("E")
			case x == 1 && y == 1:
				b.WriteString("S")
			case g.walls[y][x]:
				b.WriteString("█")
			default:
				b.WriteString(" ")
			}
		}
		b.WriteString("║\n")
	}
	b.WriteString("╚" + strings.Repeat("═", g.width) + "╝\n")
	b.WriteString(fmt.Sprintf("\nMOVES: %d    S=START  E=EXIT  @=YOU", g.moves))
	return b.String()
}

func (g *Game) open(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height && !g.walls[y][x]
}

// Play runs the maze until the player reaches the exit or quits.
func (g *Game) Play(ctx context.Context, in console.Input, out console.Sink) (games.Outcome, error) {
	out.Print(instructions + "\n")
	out.Print("GENERATING MAZE...\n")
	g.generate()

	for {
		out.Print("\n" + g.render() + "\n")

		if g.player == g.exit {
			out.Print(fmt.Sprintf("\n*** MAZE COMPLETED IN %d MOVES ***\n", g.moves))
			out.Cue(console.CueBeep)
			return games.OutcomeWon, nil
		}

		line, err := in.ReadLine(ctx, "\nMOVE (N/S/E/W or Q): ")
		if err != nil {
			return games.OutcomeAborted, fmt.Errorf("falken's maze: %w", err)
		}
		cmd := games.Clean(line)

		if games.QuitToken(cmd) {
			return games.OutcomeQuit, nil
		}

		var dx, dy int
		switch cmd {
		case "N", "UP", "W":
			dy = -1
		case "S", "DOWN", "X":
			dy = 1
		case "E", "RIGHT", "D":
			dx = 1
		case "A", "LEFT":
			dx = -1
		default:
			out.Print("INVALID COMMAND\n")
			continue
		}

		nx, ny := g.player.x+dx, g.player.y+dy
		if g.open(nx, ny) {
			g.player = point{nx, ny}
			g.moves++
		} else {
			out.Print("BLOCKED!\n")
		}
	}
}
