// Package military implements the six combat simulations: fighter
// combat, guerrilla engagement, desert warfare, air-to-ground actions
// and the two theaterwide campaigns. Each runs a short turn loop with
// dice rolls from an injected source.
package military

import "strings"

// banner formats a simulation title with an underline.
func banner(name string) string {
	return "\n" + name + "\n" + strings.Repeat("=", len(name)) + "\n\n"
}

// roller is the die the sims roll. *rand.Rand satisfies it.
type roller interface {
	Intn(n int) int
}

// rollRange returns a roll in [lo, hi], both ends inclusive.
func rollRange(r roller, lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
