// Package audio is the session's sound boundary. The core emits named
// cues and speech text without knowing whether anything listens; the
// front end forwards them to whichever Player the flags selected.
package audio

import (
	"io"

	"github.com/falken/wopr/internal/console"
)

// Player consumes audio cues and speech. Implementations must return
// quickly; the session never waits on sound.
type Player interface {
	Play(c console.Cue)
	Speak(text string)
}

// Nop ignores everything. It stands in whenever sound or voice is
// disabled; the session behaves identically.
type Nop struct{}

func (Nop) Play(console.Cue) {}

func (Nop) Speak(string) {}

// Bell pulses the terminal bell for the cues that deserve one. It is
// the whole sound hardware story: no samples, no mixer, just BEL.
type Bell struct {
	W io.Writer
	// Voice gates Speak; a Bell with Voice false stays silent for
	// speech while still ringing for cues.
	Voice bool
}

func (b *Bell) Play(c console.Cue) {
	switch c {
	case console.CueDial, console.CueConnect, console.CueLaunch, console.CueExplosion, console.CueAlert, console.CueBeep:
		b.ring()
	}
}

// Speak has no synthesizer to hand text to; it rings once so voiced
// lines still register.
func (b *Bell) Speak(string) {
	if b.Voice {
		b.ring()
	}
}

func (b *Bell) ring() {
	if b.W == nil {
		return
	}
	io.WriteString(b.W, "\a")
}
