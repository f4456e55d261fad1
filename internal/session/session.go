// Package session drives one complete WOPR session: the dial-up
// narrative, the LOGON exchange, the game menu, dispatch into the
// selected game, and the tic-tac-toe lesson that follows a
// thermonuclear draw. The controller owns the session state machine;
// everything it renders goes through the console boundary.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/falken/wopr/internal/console"
	"github.com/falken/wopr/internal/games"
	"github.com/falken/wopr/internal/games/board"
	"github.com/falken/wopr/internal/games/catalog"
	"github.com/falken/wopr/internal/login"
	"github.com/falken/wopr/internal/narrative"
)

// State is the controller's position in the session lifecycle. Exactly
// one state is active at a time; only the controller mutates it.
type State int

const (
	Disconnected State = iota
	Dialing
	AwaitingLogin
	Menu
	InGame
	Epilogue
	Terminated
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "DISCONNECTED"
	case Dialing:
		return "DIALING"
	case AwaitingLogin:
		return "AWAITING_LOGIN"
	case Menu:
		return "MENU"
	case InGame:
		return "IN_GAME"
	case Epilogue:
		return "EPILOGUE"
	case Terminated:
		return "TERMINATED"
	default:
		return fmt.Sprintf("STATE(%d)", int(s))
	}
}

// menuPrompt is the idle command prompt between games.
const menuPrompt = "> "

// historyLimit caps how many journal rows the HISTORY command renders.
const historyLimit = 10

// chessBeatOdds is the chance a non-thermonuclear military title draws
// the chess suggestion on its first selection.
const chessBeatOdds = 0.3

// Menu token sets. Matching happens on cleaned input (upper, trimmed).
var (
	listTokens    = map[string]bool{"LIST": true, "LIST GAMES": true, "GAMES": true}
	helpTokens    = map[string]bool{"HELP": true, "?": true, "HINT": true, "COMMANDS": true}
	quitTokens    = map[string]bool{"QUIT": true, "EXIT": true, "BYE": true, "LOGOUT": true, "LOGOFF": true}
	historyTokens = map[string]bool{"HISTORY": true, "SCORES": true}
	hiddenTokens  = map[string]bool{"TTT": true, "TIC-TAC-TOE": true}
)

// Options configure one controller. The zero value gives the cinematic
// default: full dial-up, natural pacing, no persistence.
type Options struct {
	// SkipIntro swaps the dial-up for its quick variant.
	SkipIntro bool
	// FastMode drops every pacing delay while keeping all output.
	FastMode bool
	// JumpTo launches straight into one game after login, named by any
	// token the registry resolves.
	JumpTo string
	// RNG drives the chess-suggestion roll and is handed to the hidden
	// tic-tac-toe game. Nil falls back to a time-seeded source.
	RNG *rand.Rand
	// Logger receives state transitions and game outcomes at debug
	// level. Nil discards.
	Logger logrus.FieldLogger
	// Journal records finished games. Nil disables persistence.
	Journal Journal
	// Rate scales pacing delays; zero means natural speed. FastMode
	// overrides it to zero.
	Rate float64
}

// Controller owns one session from Disconnected to Terminated. It is
// not reusable: construct a fresh one per connection.
type Controller struct {
	in   console.Input
	out  console.Sink
	reg  *games.Registry
	seq  *narrative.Sequencer
	auth *login.Authenticator
	jrnl Journal
	log  logrus.FieldLogger
	rng  *rand.Rand

	skip bool
	jump string
	rate float64

	state State

	// beatRolled marks military titles that already had their one
	// chess-suggestion roll.
	beatRolled map[string]bool

	// test seams
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// New binds a controller to a console and a game registry. It fails
// only on configuration defects: a nil registry or an unparsable
// narrative script.
func New(in console.Input, out console.Sink, reg *games.Registry, opts Options) (*Controller, error) {
	if in == nil || out == nil {
		return nil, errors.New("session: nil console")
	}
	if reg == nil {
		return nil, errors.New("session: nil registry")
	}
	seq, err := narrative.New(out)
	if err != nil {
		return nil, err
	}

	rate := opts.Rate
	if rate <= 0 {
		rate = 1
	}
	if opts.FastMode {
		rate = 0
	}
	rng := opts.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &Controller{
		in:         in,
		out:        out,
		reg:        reg,
		seq:        seq,
		auth:       login.New(),
		jrnl:       opts.Journal,
		log:        log,
		rng:        rng,
		skip:       opts.SkipIntro,
		jump:       opts.JumpTo,
		rate:       rate,
		state:      Disconnected,
		beatRolled: make(map[string]bool),
		now:        time.Now,
		sleep:      sleepCtx,
	}, nil
}

// State returns the controller's current lifecycle position.
func (c *Controller) State() State { return c.state }

// Run drives the session to Terminated. Cancellation is recoverable: a
// cancelled input wait or pacing delay plays the signoff and returns
// nil. Only configuration and protocol defects come back as errors.
func (c *Controller) Run(ctx context.Context) error {
	c.setState(Dialing)
	dial := narrative.SeqDialup
	if c.skip {
		dial = narrative.SeqDialupQuick
	}
	if err := c.play(ctx, dial); err != nil {
		return c.shutdown(err)
	}

	c.setState(AwaitingLogin)
	if err := c.logon(ctx); err != nil {
		return c.shutdown(err)
	}

	c.setState(Menu)
	if c.jump != "" {
		if err := c.jumpStart(ctx); err != nil {
			return c.shutdown(err)
		}
	}
	for c.state == Menu {
		if err := c.menuTurn(ctx); err != nil {
			return c.shutdown(err)
		}
	}
	return nil
}

// shutdown closes out a failed step. Cancellation still gets the
// signoff line before the terminal goes away; anything else is a
// defect and propagates.
func (c *Controller) shutdown(err error) error {
	c.setState(Terminated)
	if errors.Is(err, console.ErrCancelled) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		c.log.Debug("session cancelled")
		_ = c.seq.Play(context.Background(), narrative.SeqSignoff, narrative.Options{Skip: true})
		return nil
	}
	c.log.WithError(err).Error("session failed")
	return err
}

// logon loops the LOGON prompt until the backdoor credential lands.
// Rejection and help never leave this state.
func (c *Controller) logon(ctx context.Context) error {
	for {
		raw, err := c.in.ReadLine(ctx, login.Prompt)
		if err != nil {
			return err
		}
		switch c.auth.Check(raw) {
		case login.Accepted:
			c.log.WithField("attempts", c.auth.Attempts()).Debug("logon accepted")
			c.out.Print("\n")
			return c.play(ctx, narrative.SeqGreeting)
		case login.HelpRequested:
			if err := c.play(ctx, narrative.SeqLoginHelp); err != nil {
				return err
			}
		default:
			c.out.Print("\n" + login.MsgRejected + "\n\n")
		}
	}
}

// menuTurn reads and answers one menu command.
func (c *Controller) menuTurn(ctx context.Context) error {
	raw, err := c.in.ReadLine(ctx, menuPrompt)
	if err != nil {
		return err
	}
	token := games.Clean(raw)
	switch {
	case token == "":
		return nil

	case listTokens[token]:
		c.printCatalog()
		return nil

	case helpTokens[token]:
		return c.play(ctx, narrative.SeqMenuHelp)

	case quitTokens[token]:
		if err := c.play(ctx, narrative.SeqSignoff); err != nil {
			return err
		}
		c.setState(Terminated)
		return nil

	case historyTokens[token]:
		c.printHistory(ctx)
		return nil

	case hiddenTokens[token]:
		// Not in the catalog; WOPR plays it anyway.
		return c.launch(ctx, games.Descriptor{
			Name: "TIC-TAC-TOE",
			New:  func() games.Game { return board.NewTicTacToe(c.rng) },
		})
	}

	d, ok := c.reg.Resolve(token)
	if !ok {
		c.unrecognized(token)
		return nil
	}
	return c.launch(ctx, d)
}

// jumpStart launches the pre-selected game once, then falls back to the
// menu loop. An unresolvable token degrades to the usual reprompt.
func (c *Controller) jumpStart(ctx context.Context) error {
	d, ok := c.reg.Resolve(c.jump)
	if !ok {
		c.unrecognized(games.Clean(c.jump))
		return nil
	}
	c.log.WithField("game", d.Name).Debug("jump start")
	return c.launch(ctx, d)
}

func (c *Controller) unrecognized(token string) {
	c.out.Print(fmt.Sprintf("'%s' NOT RECOGNIZED\n", token))
	if s, ok := c.reg.Suggest(token); ok {
		c.out.Print(fmt.Sprintf("DID YOU MEAN %s?\n", s.Name))
	}
}

// launch runs one game end to end: chess-suggestion beat, title banner,
// the game's own turn loop, journal record, then back to Menu — unless
// a thermonuclear draw sends the session into the Epilogue.
func (c *Controller) launch(ctx context.Context, d games.Descriptor) error {
	if err := c.chessBeat(ctx, d); err != nil {
		return err
	}

	c.out.Print(fmt.Sprintf("\n%s\n%s\n\n", d.Name, strings.Repeat("=", len(d.Name))))
	c.setState(InGame)

	outcome, err := d.New().Play(ctx, c.in, c.out)
	if err != nil {
		return err
	}
	c.log.WithFields(logrus.Fields{"game": d.Name, "outcome": outcome.String()}).Debug("game concluded")
	c.record(ctx, d.Name, outcome)

	if outcome == games.OutcomeDraw && d.Name == games.GlobalThermonuclearWar {
		return c.epilogue(ctx)
	}
	c.setState(Menu)
	return nil
}

// chessBeat plays WOPR's chess preference before a military simulation.
// It consumes no input: GLOBAL THERMONUCLEAR WAR always draws the
// suggestion, the other military titles roll once on first selection.
func (c *Controller) chessBeat(ctx context.Context, d games.Descriptor) error {
	if d.Index < catalog.FirstMilitaryIndex {
		return nil
	}
	if d.Name != games.GlobalThermonuclearWar {
		if c.beatRolled[d.Name] {
			return nil
		}
		c.beatRolled[d.Name] = true
		if c.rng.Float64() >= chessBeatOdds {
			return nil
		}
	}

	c.out.Print("\n")
	c.out.Speak(narrative.LinePreferChess)
	c.out.Type(narrative.LinePreferChess)
	if err := c.pause(ctx, 1200); err != nil {
		return err
	}
	c.out.Speak(narrative.LineFine)
	c.out.Type(narrative.LineFine)
	return c.pause(ctx, 600)
}

// epilogue plays the lesson WOPR draws from a thermonuclear draw: the
// tic-tac-toe demonstration, the wisdom lines, then the signoff.
func (c *Controller) epilogue(ctx context.Context) error {
	c.setState(Epilogue)
	if err := c.play(ctx, narrative.SeqLearningIntro); err != nil {
		return err
	}
	if err := board.NewLearningDemo(c.out).Run(ctx, c.rate); err != nil {
		return err
	}
	if err := c.play(ctx, narrative.SeqWisdom); err != nil {
		return err
	}
	if err := c.play(ctx, narrative.SeqSignoff); err != nil {
		return err
	}
	c.setState(Terminated)
	return nil
}

func (c *Controller) printCatalog() {
	c.out.Print("\n")
	for _, d := range c.reg.List() {
		c.out.Print(fmt.Sprintf("    %2d. %s\n", d.Index, d.Name))
	}
	c.out.Print("\n")
}

func (c *Controller) printHistory(ctx context.Context) {
	if c.jrnl == nil {
		c.out.Print("\nNO RECORDS ON FILE\n\n")
		return
	}
	entries, err := c.jrnl.Recent(ctx, historyLimit)
	if err != nil {
		c.log.WithError(err).Warn("journal read failed")
		c.out.Print("\nNO RECORDS ON FILE\n\n")
		return
	}
	if len(entries) == 0 {
		c.out.Print("\nNO RECORDS ON FILE\n\n")
		return
	}
	c.out.Print("\nGAME HISTORY:\n")
	for _, e := range entries {
		c.out.Print(fmt.Sprintf("  %s  %-41s  %s\n", e.PlayedAt.Format("2006-01-02 15:04"), e.Game, e.Outcome))
	}
	c.out.Print("\n")
}

// record journals one finished game. Journal failures are logged and
// swallowed: persistence never interrupts the session.
func (c *Controller) record(ctx context.Context, game string, outcome games.Outcome) {
	if c.jrnl == nil {
		return
	}
	e := Entry{Game: game, Outcome: outcome.String(), PlayedAt: c.now()}
	if err := c.jrnl.Record(ctx, e); err != nil {
		c.log.WithError(err).Warn("journal write failed")
	}
}

func (c *Controller) play(ctx context.Context, id string) error {
	return c.seq.Play(ctx, id, narrative.Options{Rate: c.rate})
}

func (c *Controller) pause(ctx context.Context, ms int) error {
	return c.sleep(ctx, time.Duration(float64(ms)*c.rate)*time.Millisecond)
}

func (c *Controller) setState(s State) {
	if s == c.state {
		return
	}
	c.log.WithFields(logrus.Fields{"from": c.state.String(), "to": s.String()}).Debug("session transition")
	c.state = s
}

func sleepCtx(ctx context.Context, d time.Duration) error {
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
