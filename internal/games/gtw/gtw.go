// Package gtw implements Global Thermonuclear War: side selection,
// target acquisition against a Cold War target set, launch confirmation
// and a scripted strategic exchange that no side survives. The engine
// is a five-phase state machine fully owned by a single Play call.
package gtw

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/falken/wopr/internal/console"
	"github.com/falken/wopr/internal/games"
)

// Phase is the engine's lifecycle position.
type Phase int

const (
	PhaseSideSelect Phase = iota
	PhaseTargeting
	PhaseLaunchPending
	PhaseResolving
	PhaseConcluded
)

// Engine drives one war. Targeting state never escapes it; once the
// game concludes only the outcome survives.
type Engine struct {
	rng  *rand.Rand
	rate float64

	phase    Phase
	player   Side
	targets  []*Target
	selected []*Target
	defcon   int
	outcome  games.Outcome

	// sleep is swapped out by tests.
	sleep func(context.Context, time.Duration) error
}

// New returns an engine with a fresh target set. Rate scales the
// resolution pacing delays; zero removes them while keeping every line
// of output.
func New(rng *rand.Rand, rate float64) *Engine {
	if rate < 0 {
		rate = 0
	}
	return &Engine{
		rng:     rng,
		rate:    rate,
		phase:   PhaseSideSelect,
		targets: loadTargets(),
		defcon:  5,
		sleep:   warSleep,
	}
}

// Phase reports the engine's current lifecycle position.
func (e *Engine) Phase() Phase { return e.phase }

// Defcon reports the readiness level, 5 down to 1.
func (e *Engine) Defcon() int { return e.defcon }

// FindTarget resolves name on side the way the TARGET command does.
// It returns nil for names that do not uniquely match and always once
// the engine has concluded.
func (e *Engine) FindTarget(side Side, name string) *Target {
	t, _ := findTarget(e.targets, side, games.Clean(name))
	return t
}

func (e *Engine) Play(ctx context.Context, in console.Input, out console.Sink) (games.Outcome, error) {
	e.printInstructions(out)
	out.Print("\nWHICH SIDE DO YOU WANT?\n\n")
	out.Print("    1. UNITED STATES\n")
	out.Print("    2. SOVIET UNION\n\n")

	for e.phase != PhaseConcluded {
		var err error
		switch e.phase {
		case PhaseSideSelect:
			err = e.stepSideSelect(ctx, in, out)
		case PhaseTargeting:
			err = e.stepTargeting(ctx, in, out)
		case PhaseLaunchPending:
			err = e.stepConfirm(ctx, in, out)
		case PhaseResolving:
			err = e.resolve(ctx, out)
		}
		if err != nil {
			e.conclude(games.OutcomeAborted)
			return games.OutcomeAborted, fmt.Errorf("global thermonuclear war: %w", err)
		}
	}
	return e.outcome, nil
}

func (e *Engine) stepSideSelect(ctx context.Context, in console.Input, out console.Sink) error {
	line, err := in.ReadLine(ctx, "SELECT (1/2): ")
	if err != nil {
		return err
	}
	cmd := games.Clean(line)
	switch {
	case cmd == "1" || cmd == "US" || cmd == "USA" || cmd == "UNITED STATES":
		e.beginTargeting(out, SideUS)
	case cmd == "2" || cmd == "USSR" || cmd == "SOVIET" || cmd == "SOVIET UNION":
		e.beginTargeting(out, SideUSSR)
	case games.QuitToken(cmd):
		e.conclude(games.OutcomeQuit)
	case cmd == "ABORT":
		out.Print("MISSION ABORTED\n")
		e.conclude(games.OutcomeAborted)
	default:
		out.Print("INVALID SELECTION\n")
	}
	return nil
}

func (e *Engine) beginTargeting(out console.Sink, side Side) {
	e.player = side
	e.phase = PhaseTargeting
	out.Print(fmt.Sprintf("\nYOU ARE: %s\n", side))
	out.Print(fmt.Sprintf("ENEMY: %s\n", side.Enemy()))
	e.setDefcon(out, 4)
	out.Print(renderMap(e.targets))
}

func (e *Engine) stepTargeting(ctx context.Context, in console.Input, out console.Sink) error {
	line, err := in.ReadLine(ctx, "\nCOMMAND: ")
	if err != nil {
		return err
	}
	cmd := games.Clean(line)
	switch {
	case games.QuitToken(cmd):
		e.conclude(games.OutcomeQuit)
	case cmd == "ABORT":
		out.Print("MISSION ABORTED\n")
		e.conclude(games.OutcomeAborted)
	case cmd == "STATUS":
		e.printStatus(out)
	case cmd == "MAP":
		out.Print(renderMap(e.targets))
	case cmd == "HELP":
		e.printInstructions(out)
	case cmd == "HINT":
		e.printHint(out)
	case cmd == "LIST" || strings.HasPrefix(cmd, "LIST "):
		e.printTargets(out, strings.TrimSpace(strings.TrimPrefix(cmd, "LIST")))
	case strings.HasPrefix(cmd, "TARGET "):
		e.selectTarget(out, strings.TrimSpace(strings.TrimPrefix(cmd, "TARGET")))
	case cmd == "LAUNCH":
		if len(e.selected) == 0 {
			out.Print("SELECT TARGETS FIRST\n")
			break
		}
		e.phase = PhaseLaunchPending
		e.setDefcon(out, 2)
	default:
		out.Print("COMMAND NOT RECOGNIZED\n")
		out.Print("(Type HELP for commands or HINT for suggestions)\n")
	}
	return nil
}

func (e *Engine) stepConfirm(ctx context.Context, in console.Input, out console.Sink) error {
	line, err := in.ReadLine(ctx, "\nCONFIRM LAUNCH? (Y/N): ")
	if err != nil {
		return err
	}
	switch cmd := games.Clean(line); cmd {
	case "Y", "YES":
		e.phase = PhaseResolving
	case "ABORT":
		out.Print("MISSION ABORTED\n")
		e.conclude(games.OutcomeAborted)
	default:
		out.Print("LAUNCH CANCELLED\n")
		e.phase = PhaseTargeting
	}
	return nil
}

func (e *Engine) selectTarget(out console.Sink, name string) {
	t, ambiguous := findTarget(e.targets, e.player.Enemy(), name)
	if ambiguous {
		out.Print("MULTIPLE TARGETS MATCH: " + name + "\n")
		return
	}
	if t == nil {
		out.Print("TARGET NOT FOUND: " + name + "\n")
		return
	}
	if e.isSelected(t) {
		out.Print("TARGET ALREADY SELECTED: " + t.Name + "\n")
		return
	}
	e.selected = append(e.selected, t)
	out.Print("TARGET ACQUIRED: " + t.Name + "\n")
	e.setDefcon(out, 3)
}

func (e *Engine) isSelected(t *Target) bool {
	for _, s := range e.selected {
		if s == t {
			return true
		}
	}
	return false
}

// setDefcon lowers readiness to level, announcing the change. The
// ladder only descends.
func (e *Engine) setDefcon(out console.Sink, level int) {
	if level >= e.defcon {
		return
	}
	e.defcon = level
	out.Print(fmt.Sprintf("DEFCON LEVEL NOW: %d\n", level))
	out.Cue(console.CueAlert)
}

func (e *Engine) printInstructions(out console.Sink) {
	out.Print("\n" + games.GlobalThermonuclearWar + "\n\n")
	out.Print("Select targets for nuclear strikes.\n")
	out.Print("Commands:\n")
	out.Print("  LIST [US/USSR]  - List available targets\n")
	out.Print("  TARGET <name>   - Select a target (e.g. TARGET MOSCOW)\n")
	out.Print("  LAUNCH          - Execute strike\n")
	out.Print("  STATUS          - Show current status\n")
	out.Print("  MAP             - Show theater map\n")
	out.Print("  HINT            - Get gameplay suggestions\n")
	out.Print("  ABORT           - Abort mission\n")
	out.Print("  QUIT            - Exit game\n\n")
	out.Print("Target types: CITY, MILITARY, INDUSTRIAL\n")
}

func (e *Engine) printStatus(out console.Sink) {
	sep := strings.Repeat("=", 50)
	out.Print("\n" + sep + "\n")
	out.Print(fmt.Sprintf("DEFCON LEVEL: %d\n", e.defcon))
	out.Print(fmt.Sprintf("YOUR SIDE: %s\n", e.player))
	out.Print(fmt.Sprintf("TARGETS SELECTED: %d\n", len(e.selected)))
	if len(e.selected) > 0 {
		out.Print("\nSELECTED TARGETS:\n")
		for _, t := range e.selected {
			out.Print(fmt.Sprintf("  - %s (%s)\n", t.Name, t.Class))
		}
	}
	out.Print(sep + "\n")
}

func (e *Engine) printHint(out console.Sink) {
	out.Print("\n=== HINT ===\n")
	if len(e.selected) == 0 {
		out.Print("1. Type LIST to see available enemy targets\n")
		out.Print("2. Target cities by name, for example:\n")
		shown := 0
		for _, t := range e.targets {
			if t.Side != e.player.Enemy() || t.Class != ClassCity {
				continue
			}
			out.Print("   TARGET " + t.Name + "\n")
			if shown++; shown == 3 {
				break
			}
		}
		out.Print("3. When ready, type LAUNCH to execute strike\n")
	} else {
		out.Print(fmt.Sprintf("You have %d target(s) selected.\n", len(e.selected)))
		out.Print("Options:\n")
		out.Print("  - Type LAUNCH to execute the strike\n")
		out.Print("  - Type LIST to see more targets\n")
		out.Print("  - Type STATUS to review your selections\n")
	}
	out.Print("============\n")
}

// printTargets lists sites not yet selected, grouped by class.
func (e *Engine) printTargets(out console.Sink, filter string) {
	side := e.player.Enemy()
	switch filter {
	case "US", "USA":
		side = SideUS
	case "USSR", "SOVIET":
		side = SideUSSR
	}

	var avail, cities, military, industrial []*Target
	for _, t := range e.targets {
		if t.Side != side || e.isSelected(t) {
			continue
		}
		avail = append(avail, t)
		switch t.Class {
		case ClassCity:
			cities = append(cities, t)
		case ClassMilitary:
			military = append(military, t)
		default:
			industrial = append(industrial, t)
		}
	}

	out.Print(fmt.Sprintf("\n%s TARGETS:\n", side))
	out.Print(strings.Repeat("-", 40) + "\n")
	if len(cities) > 0 {
		out.Print("\nCITIES:\n")
		for _, t := range head(cities, 10) {
			out.Print(fmt.Sprintf("  %s (Pop: %s)\n", t.Name, comma(t.Population)))
		}
	}
	if len(military) > 0 {
		out.Print("\nMILITARY INSTALLATIONS:\n")
		for _, t := range head(military, 10) {
			out.Print("  " + t.Name + "\n")
		}
	}
	if len(industrial) > 0 {
		out.Print("\nINDUSTRIAL CENTERS:\n")
		for _, t := range head(industrial, 5) {
			out.Print("  " + t.Name + "\n")
		}
	}
	out.Print(fmt.Sprintf("\nTOTAL TARGETS AVAILABLE: %d\n", len(avail)))
}

// resolve plays out the exchange. The first wave strikes every selected
// target in the order chosen; the retaliation that follows escalates
// regardless of what the player picked.
func (e *Engine) resolve(ctx context.Context, out console.Sink) error {
	sep := strings.Repeat("=", 60)
	out.Print("\n" + sep + "\n")
	out.Print("           *** LAUNCH SEQUENCE INITIATED ***\n")
	out.Print(sep + "\n\n")
	out.Cue(console.CueLaunch)

	e.defcon = 1
	out.Print("DEFCON 1 - MAXIMUM READINESS\n\n")
	out.Cue(console.CueAlert)
	if err := e.pause(ctx, 1000); err != nil {
		return err
	}

	enemy := e.player.Enemy()
	var dead [2]int

	waves := []struct {
		attacker Side
		count    int
	}{
		{e.player, len(e.selected)},
		{enemy, 2},
		{e.player, 3},
		{enemy, 4},
		{e.player, 5},
		{enemy, 6},
	}

	for i, w := range waves {
		// Each wave runs 40% faster than the one before.
		speed := 1 / math.Pow(1.4, float64(i))

		var victims []*Target
		if i == 0 {
			victims = append(victims, e.selected...)
		} else {
			victims = e.pickVictims(w.attacker.Enemy(), w.count)
		}
		if len(victims) == 0 {
			continue
		}

		switch {
		case i == 0:
			out.Print(fmt.Sprintf("*** %s LAUNCHES FIRST STRIKE ***\n\n", w.attacker))
		case w.attacker == e.player:
			out.Print(fmt.Sprintf("\n*** %s COUNTER-STRIKE: %d MISSILES ***\n\n", w.attacker, len(victims)))
		default:
			out.Print(fmt.Sprintf("\n*** %s RETALIATION: %d MISSILES ***\n\n", w.attacker, len(victims)))
		}
		for _, t := range victims {
			out.Print("  TARGETING: " + t.Name + "\n")
		}
		if err := e.pause(ctx, 400*speed); err != nil {
			return err
		}

		out.Print("\n*** IMPACTS ***\n")
		for _, t := range victims {
			t.Destroyed = true
			n := e.estimate(t)
			dead[t.Side] += n
			out.Print(fmt.Sprintf("  %s: %s casualties\n", t.Name, comma(n)))
			out.Cue(console.CueExplosion)
			if err := e.pause(ctx, 80*speed); err != nil {
				return err
			}
		}
		out.Print(renderMap(e.targets))
		if err := e.pause(ctx, 400*speed); err != nil {
			return err
		}
	}

	out.Print("\n" + sep + "\n")
	out.Print("              *** FINAL ASSESSMENT ***\n")
	out.Print(sep + "\n\n")
	out.Print(fmt.Sprintf("  %s CASUALTIES: %s\n", enemy, comma(dead[enemy])))
	out.Print(fmt.Sprintf("  %s CASUALTIES: %s\n", e.player, comma(dead[e.player])))
	out.Print(fmt.Sprintf("\n  TOTAL DEATHS: %s\n\n", comma(dead[SideUS]+dead[SideUSSR])))
	if err := e.pause(ctx, 500); err != nil {
		return err
	}

	out.Print("\n")
	out.Print("+---------------------------------------+\n")
	out.Print("|                                       |\n")
	out.Print("|           WINNER: NONE                |\n")
	out.Print("|                                       |\n")
	out.Print("+---------------------------------------+\n")
	out.Print("\n")
	out.Speak("Winner: None")

	e.conclude(games.OutcomeDraw)
	return nil
}

// pickVictims draws up to count undestroyed targets on side, in random
// order.
func (e *Engine) pickVictims(side Side, count int) []*Target {
	var pool []*Target
	for _, t := range e.targets {
		if t.Side == side && !t.Destroyed {
			pool = append(pool, t)
		}
	}
	e.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if count > len(pool) {
		count = len(pool)
	}
	return pool[:count]
}

// estimate puts a casualty figure on one destroyed target. Urban
// strikes scale with population; other classes use flat bands.
func (e *Engine) estimate(t *Target) int {
	switch {
	case t.Population > 0:
		return t.Population * e.roll(60, 95) / 100
	case t.Class == ClassMilitary:
		return e.roll(25000, 75000)
	default:
		return e.roll(100000, 400000)
	}
}

func (e *Engine) roll(lo, hi int) int { return lo + e.rng.Intn(hi-lo+1) }

// conclude makes the phase terminal and releases the targeting state;
// only the outcome survives for the caller.
func (e *Engine) conclude(o games.Outcome) {
	e.phase = PhaseConcluded
	e.outcome = o
	e.selected = nil
	e.targets = nil
}

func (e *Engine) pause(ctx context.Context, ms float64) error {
	return e.sleep(ctx, time.Duration(ms*e.rate*float64(time.Millisecond)))
}

func head(ts []*Target, n int) []*Target {
	if len(ts) > n {
		return ts[:n]
	}
	return ts
}

// comma renders n with thousands separators.
func comma(n int) string {
	s := strconv.Itoa(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

func warSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
