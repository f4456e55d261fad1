// Package catalog assembles the fifteen playable titles into registry
// descriptors, binding each constructor to shared session options.
package catalog

import (
	"math/rand"
	"time"

	"github.com/falken/wopr/internal/games"
	"github.com/falken/wopr/internal/games/board"
	"github.com/falken/wopr/internal/games/cards"
	"github.com/falken/wopr/internal/games/gtw"
	"github.com/falken/wopr/internal/games/maze"
	"github.com/falken/wopr/internal/games/military"
)

// FirstMilitaryIndex marks where the combat simulations begin in the
// catalog. Every entry from here up can draw the chess suggestion.
const FirstMilitaryIndex = 9

// Options carries what the game constructors need from the session.
type Options struct {
	// RNG seeds every game of chance. Nil falls back to a time-seeded
	// source.
	RNG *rand.Rand
	// ChessDifficulty is the reply search depth, clamped to 1-5 by the
	// chess adapter.
	ChessDifficulty int
	// Rate scales pacing delays inside games that animate; zero drops
	// the delays while keeping the output.
	Rate float64
}

// Descriptors returns the full catalog in menu order.
func Descriptors(opts Options) []games.Descriptor {
	rng := opts.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return []games.Descriptor{
		{Index: 1, Name: "FALKEN'S MAZE", Aliases: []string{"MAZE"},
			New: func() games.Game { return maze.New(rng) }},
		{Index: 2, Name: "BLACK JACK", Aliases: []string{"BLACKJACK", "BJ"},
			New: func() games.Game { return cards.NewBlackjack(rng) }},
		{Index: 3, Name: "GIN RUMMY",
			New: func() games.Game { return cards.NewGinRummy(rng) }},
		{Index: 4, Name: "HEARTS",
			New: func() games.Game { return cards.NewHearts(rng) }},
		{Index: 5, Name: "BRIDGE",
			New: func() games.Game { return cards.NewBridge(rng) }},
		{Index: 6, Name: "CHECKERS",
			New: func() games.Game { return board.NewCheckers(rng) }},
		{Index: 7, Name: "CHESS",
			New: func() games.Game { return board.NewChess(opts.ChessDifficulty) }},
		{Index: 8, Name: "POKER",
			New: func() games.Game { return cards.NewPoker(rng) }},
		{Index: 9, Name: "FIGHTER COMBAT",
			New: func() games.Game { return military.NewFighterCombat(rng) }},
		{Index: 10, Name: "GUERRILLA ENGAGEMENT",
			New: func() games.Game { return military.NewGuerrilla(rng) }},
		{Index: 11, Name: "DESERT WARFARE",
			New: func() games.Game { return military.NewDesertWarfare(rng) }},
		{Index: 12, Name: "AIR-TO-GROUND ACTIONS",
			New: func() games.Game { return military.NewAirToGround(rng) }},
		{Index: 13, Name: "THEATERWIDE TACTICAL WARFARE",
			New: func() games.Game { return military.NewTacticalWarfare(rng) }},
		{Index: 14, Name: "THEATERWIDE BIOTOXIC AND CHEMICAL WARFARE",
			New: func() games.Game { return military.NewBiotoxicWarfare() }},
		{Index: 15, Name: games.GlobalThermonuclearWar, Aliases: []string{"GTW", "THERMONUCLEAR", "NUKE", "WAR"},
			New: func() games.Game { return gtw.New(rng, opts.Rate) }},
	}
}

// NewRegistry builds the standard registry over Descriptors.
func NewRegistry(opts Options) (*games.Registry, error) {
	return games.NewRegistry(Descriptors(opts))
}
