// Package tui renders one session as a scrolling terminal transcript.
// It owns no game logic: it drains console events into a viewport,
// animates typed lines, and feeds submitted commands back through the
// console's input slot.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/falken/wopr/internal/audio"
	"github.com/falken/wopr/internal/config"
	"github.com/falken/wopr/internal/console"
)

const (
	bannerTitle = "WOPR - WAR OPERATION PLAN RESPONSE"
	bannerSub   = "NORAD COMPUTER SYSTEM"
)

// App ties the console stream to the screen.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc
	con    *console.Console
	player audio.Player
	theme  Theme
	keys   keyMap

	vp    viewport.Model
	input textinput.Model
	ready bool
	width int

	transcript string
	typing     []rune
	charDelay  time.Duration

	awaiting    bool
	prompt      string
	interrupted bool
	closed      bool
	err         error
}

type keyMap struct {
	Submit   key.Binding
	Skip     key.Binding
	Quit     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Skip:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "fast-forward")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "disconnect")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
	}
}

// New builds the front end for one console. cancel tears the session
// down when the operator disconnects with ctrl+c.
func New(ctx context.Context, cancel context.CancelFunc, con *console.Console, player audio.Player, cfg config.Config) *App {
	if player == nil {
		player = audio.Nop{}
	}
	theme := themeFor(cfg.Display.ColorScheme)

	input := textinput.New()
	input.CharLimit = 80
	input.PromptStyle = theme.Prompt
	input.TextStyle = theme.Screen
	input.Focus()

	var delay time.Duration
	if cfg.Display.TypingSpeed > 0 {
		delay = time.Second / time.Duration(cfg.Display.TypingSpeed)
	}

	return &App{
		ctx:       ctx,
		cancel:    cancel,
		con:       con,
		player:    player,
		theme:     theme,
		keys:      newKeyMap(),
		input:     input,
		charDelay: delay,
	}
}

// Err reports the session error recorded by SessionDoneMsg, if any.
func (a *App) Err() error { return a.err }

// SessionDoneMsg is sent by the shell when the session goroutine ends.
type SessionDoneMsg struct {
	Err error
}

type consoleEventMsg struct {
	ev console.Event
	ok bool
}

type typeTickMsg struct{}

func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.waitEvent())
}

// waitEvent pulls the next console event. Exactly one of these is
// outstanding at a time, except while a typed line is animating, so
// events render in submission order.
func (a *App) waitEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := a.con.Next(a.ctx)
		return consoleEventMsg{ev: ev, ok: ok}
	}
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(a.charDelay, func(time.Time) tea.Msg {
		return typeTickMsg{}
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		bodyHeight := m.Height - 5
		if bodyHeight < 3 {
			bodyHeight = 3
		}
		if !a.ready {
			a.vp = viewport.New(m.Width, bodyHeight)
			a.ready = true
		} else {
			a.vp.Width = m.Width
			a.vp.Height = bodyHeight
		}
		a.sizeInput()
		a.refresh()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(m)

	case consoleEventMsg:
		if !m.ok {
			a.closed = true
			if len(a.typing) == 0 {
				return a, tea.Quit
			}
			return a, nil
		}
		return a.handleEvent(m.ev)

	case typeTickMsg:
		if len(a.typing) == 0 {
			return a, nil // line was flushed while the tick was in flight
		}
		a.transcript += string(a.typing[0])
		a.typing = a.typing[1:]
		a.refresh()
		if len(a.typing) > 0 {
			return a, a.tick()
		}
		a.transcript += "\n"
		a.refresh()
		if a.closed {
			return a, tea.Quit
		}
		return a, a.waitEvent()

	case SessionDoneMsg:
		a.err = m.Err
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		if a.interrupted {
			// Second ctrl+c forces the program down even if the
			// sign-off never drains.
			return a, tea.Quit
		}
		a.interrupted = true
		if a.cancel != nil {
			a.cancel()
		}
		return a, nil

	case key.Matches(msg, a.keys.Skip):
		if len(a.typing) > 0 {
			a.transcript += string(a.typing) + "\n"
			a.typing = nil
			a.refresh()
			if a.closed {
				return a, tea.Quit
			}
			return a, a.waitEvent()
		}
		return a, nil

	case key.Matches(msg, a.keys.PageUp), key.Matches(msg, a.keys.PageDown):
		var cmd tea.Cmd
		a.vp, cmd = a.vp.Update(msg)
		return a, cmd

	case key.Matches(msg, a.keys.Submit):
		if !a.awaiting {
			return a, nil
		}
		line := a.input.Value()
		if !a.con.Submit(line) {
			return a, nil
		}
		a.transcript += a.prompt + line + "\n"
		a.awaiting = false
		a.input.Reset()
		a.refresh()
		return a, nil
	}

	if a.awaiting {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	var cmd tea.Cmd
	a.vp, cmd = a.vp.Update(msg)
	return a, cmd
}

func (a *App) handleEvent(ev console.Event) (tea.Model, tea.Cmd) {
	// Any event means the session moved past the last prompt; a prompt
	// abandoned by cancellation just disappears.
	if ev.Kind != console.EventPrompt {
		a.awaiting = false
	}

	switch ev.Kind {
	case console.EventPrint:
		a.appendPrint(ev.Text)
		a.refresh()
		return a, a.waitEvent()

	case console.EventType:
		if a.charDelay <= 0 || len(ev.Text) == 0 {
			a.transcript += ev.Text + "\n"
			a.refresh()
			return a, a.waitEvent()
		}
		a.player.Play(console.CueKeypress)
		a.typing = []rune(ev.Text)
		return a, a.tick()

	case console.EventPrompt:
		a.prompt = ev.Text
		a.awaiting = true
		a.input.Prompt = ev.Text
		a.input.Reset()
		a.sizeInput()
		a.refresh()
		return a, a.waitEvent()

	case console.EventCue:
		a.player.Play(ev.Cue)
		return a, a.waitEvent()

	case console.EventSpeak:
		a.player.Speak(ev.Text)
		return a, a.waitEvent()
	}
	return a, a.waitEvent()
}

// appendPrint adds raw text to the transcript. A carriage return
// rewrites the current unfinished line, which is how the dial-up and
// countdown effects redraw in place.
func (a *App) appendPrint(text string) {
	for text != "" {
		i := strings.IndexByte(text, '\r')
		if i < 0 {
			a.transcript += text
			return
		}
		a.transcript += text[:i]
		if j := strings.LastIndexByte(a.transcript, '\n'); j >= 0 {
			a.transcript = a.transcript[:j+1]
		} else {
			a.transcript = ""
		}
		text = text[i+1:]
	}
}

func (a *App) sizeInput() {
	w := a.width - len(a.input.Prompt) - 2
	if w < 10 {
		w = 10
	}
	a.input.Width = w
}

func (a *App) refresh() {
	if !a.ready {
		return
	}
	body := a.transcript
	if len(a.typing) > 0 {
		body += "█"
	}
	a.vp.SetContent(a.theme.Screen.Render(body))
	a.vp.GotoBottom()
}

func (a *App) View() string {
	if !a.ready {
		return ""
	}
	var b strings.Builder
	b.WriteString(a.theme.Title.Render(bannerTitle))
	b.WriteByte('\n')
	b.WriteString(a.theme.Dim.Render(bannerSub))
	b.WriteString("\n\n")
	b.WriteString(a.vp.View())
	b.WriteByte('\n')
	if a.awaiting {
		b.WriteString(a.input.View())
	}
	b.WriteByte('\n')
	b.WriteString(a.theme.Dim.Render(a.helpLine()))
	return b.String()
}

func (a *App) helpLine() string {
	parts := []string{
		"[" + a.keys.Submit.Help().Key + "] Send",
		"[" + a.keys.Skip.Help().Key + "] Fast-forward",
		"[pgup/pgdn] Scroll",
		"[" + a.keys.Quit.Help().Key + "] Disconnect",
	}
	return strings.Join(parts, "  ")
}
