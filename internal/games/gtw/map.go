package gtw

import "strings"

// Theater box dimensions. Targets carry precomputed coordinates inside
// these bounds, so the projection never happens at runtime.
const (
	theaterWidth  = 34
	theaterHeight = 10
)

func marker(t *Target) byte {
	if t.Destroyed {
		return '*'
	}
	switch t.Class {
	case ClassMilitary:
		return '^'
	case ClassIndustrial:
		return '#'
	default:
		return 'o'
	}
}

// renderMap draws the two theaters side by side, one glyph per
// occupied cell. Destroyed sites override anything sharing the cell.
func renderMap(ts []*Target) string {
	us := plotTheater(ts, SideUS)
	ussr := plotTheater(ts, SideUSSR)
	border := "+" + strings.Repeat("-", theaterWidth) + "+"

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered("UNITED STATES", theaterWidth+2) + "  " + centered("SOVIET UNION", theaterWidth+2) + "\n")
	b.WriteString(border + "  " + border + "\n")
	for y := 0; y < theaterHeight; y++ {
		b.WriteString("|" + string(us[y]) + "|  |" + string(ussr[y]) + "|\n")
	}
	b.WriteString(border + "  " + border + "\n")
	b.WriteString("  o CITY   ^ MILITARY   # INDUSTRIAL   * DESTROYED\n")
	return b.String()
}

func plotTheater(ts []*Target, side Side) [][]byte {
	rows := make([][]byte, theaterHeight)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(" ", theaterWidth))
	}
	for _, t := range bySide(ts, side) {
		x, y := t.Grid.X, t.Grid.Y
		if x < 0 || x >= theaterWidth || y < 0 || y >= theaterHeight {
			continue
		}
		// Cities plot first in table order; later classes only claim
		// empty cells. A destroyed site always shows.
		if rows[y][x] != ' ' && !t.Destroyed {
			continue
		}
		rows[y][x] = marker(t)
	}
	return rows
}

func centered(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-left-len(s))
}
