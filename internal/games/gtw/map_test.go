package gtw

import (
	"strings"
	"testing"
)

func TestRenderMap(t *testing.T) {
	ts := loadTargets()
	lines := strings.Split(renderMap(ts), "\n")
	if len(lines) < theaterHeight+5 {
		t.Fatalf("map has %d lines, want at least %d", len(lines), theaterHeight+5)
	}
	rows := lines[3 : 3+theaterHeight]
	wantWidth := 2*(theaterWidth+2) + 2
	for i, row := range rows {
		if len(row) != wantWidth {
			t.Fatalf("row %d width = %d, want %d", i, len(row), wantWidth)
		}
	}

	// MOSCOW sits at USSR grid (4,4); cities plot ahead of the bunker
	// sharing the cell.
	col := theaterWidth + 2 + 2 + 1 + 4
	if got := rows[4][col]; got != 'o' {
		t.Errorf("MOSCOW cell = %q, want 'o'", got)
	}

	// A destroyed site overrides whatever shares its cell.
	moscow, _ := findTarget(ts, SideUSSR, "MOSCOW")
	moscow.Destroyed = true
	rows = strings.Split(renderMap(ts), "\n")[3 : 3+theaterHeight]
	if got := rows[4][col]; got != '*' {
		t.Errorf("destroyed MOSCOW cell = %q, want '*'", got)
	}
}
