// Package narrative plays WOPR's scripted output: the modem dial-up,
// help screens, and the closing wisdom lines. Sequences live in an
// embedded YAML script keyed by id; playing an unknown id is a
// configuration defect, not a user error.
package narrative

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/falken/wopr/internal/console"
)

// Sequence ids shipped with the script. Callers should prefer these
// constants over raw strings.
const (
	SeqDialup        = "dialup"
	SeqDialupQuick   = "dialup_quick"
	SeqGreeting      = "greeting"
	SeqLoginHelp     = "login_help"
	SeqMenuHelp      = "menu_help"
	SeqLearningIntro = "learning_intro"
	SeqWisdom        = "wisdom"
	SeqSignoff       = "signoff"
)

// Fixed dialogue lines used outside scripted sequences.
const (
	LinePreferChess = "WOULDN'T YOU PREFER A GOOD GAME OF CHESS?"
	LineFine        = "FINE."
	LineShallWePlay = "SHALL WE PLAY A GAME?"
)

// ErrUnknownSequence reports a sequence id missing from the script.
var ErrUnknownSequence = errors.New("narrative: unknown sequence")

//go:embed sequences.yaml
var scriptYAML []byte

var noiseGlyphs = []rune("░▒▓█▀▄▌▐│┤╡╢╖╕╣║╗╝╜╛┐└┴┬├─┼╞╟╚╔╩╦╠═╬")

type step struct {
	Print    *string `yaml:"print"`
	Raw      *string `yaml:"raw"`
	Type     *string `yaml:"type"`
	Digits   string  `yaml:"digits"`
	NoiseMS  int     `yaml:"noise_ms"`
	Progress int     `yaml:"progress"`
	Cue      string  `yaml:"cue"`
	Speak    bool    `yaml:"speak"`
	PauseMS  int     `yaml:"pause_ms"`
}

type script struct {
	Sequences map[string][]step `yaml:"sequences"`
}

// Options control one Play call.
type Options struct {
	// Skip delivers every text step immediately, drops transient
	// animations, and suppresses cues and speech.
	Skip bool
	// Rate scales every pacing delay. 1 is natural speed, 0 removes the
	// delays while keeping the full animation output.
	Rate float64
}

// Sequencer renders scripted sequences into a console sink with
// per-step pacing. A fresh Play always starts from the first step.
type Sequencer struct {
	seqs map[string][]step
	out  console.Sink
	rng  *rand.Rand

	// sleep is swapped out by tests.
	sleep func(context.Context, time.Duration) error
}

// New parses the embedded script and binds a sequencer to out.
func New(out console.Sink) (*Sequencer, error) {
	var s script
	if err := yaml.Unmarshal(scriptYAML, &s); err != nil {
		return nil, fmt.Errorf("parse narrative script: %w", err)
	}
	if len(s.Sequences) == 0 {
		return nil, errors.New("narrative: script has no sequences")
	}
	return &Sequencer{
		seqs:  s.Sequences,
		out:   out,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep: sleepCtx,
	}, nil
}

// Has reports whether the script contains sequence id.
func (s *Sequencer) Has(id string) bool {
	_, ok := s.seqs[id]
	return ok
}

// Play renders the sequence from its first step. It returns
// ErrUnknownSequence for ids missing from the script and the context
// error if cancelled mid-sequence.
func (s *Sequencer) Play(ctx context.Context, id string, opts Options) error {
	steps, ok := s.seqs[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSequence, id)
	}
	rate := opts.Rate
	if rate < 0 || opts.Skip {
		rate = 0
	}
	for _, st := range steps {
		if err := s.playStep(ctx, st, opts.Skip, rate); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sequencer) playStep(ctx context.Context, st step, skip bool, rate float64) error {
	pause := scale(st.PauseMS, rate)

	switch {
	case st.Print != nil:
		if st.Speak && !skip {
			s.out.Speak(*st.Print)
		}
		s.out.Print(*st.Print + "\n")

	case st.Raw != nil:
		s.out.Print(*st.Raw)

	case st.Type != nil:
		if st.Speak && !skip {
			s.out.Speak(*st.Type)
		}
		if skip {
			s.out.Print(*st.Type + "\n")
		} else {
			s.out.Type(*st.Type)
		}

	case st.Digits != "":
		if skip {
			s.out.Print(st.Digits)
		} else {
			for _, r := range st.Digits {
				s.out.Print(string(r))
				if err := s.sleep(ctx, pause); err != nil {
					return err
				}
			}
		}
		return nil // per-digit pause already applied

	case st.NoiseMS > 0:
		if skip {
			return nil
		}
		return s.noise(ctx, scale(st.NoiseMS, rate))

	case st.Progress > 0:
		return s.progress(ctx, st.Progress, pause, skip)

	case st.Cue != "":
		if !skip {
			s.out.Cue(console.Cue(st.Cue))
		}
	}

	return s.sleep(ctx, pause)
}

// noise renders a burst of modem line glyphs, rewriting one line.
func (s *Sequencer) noise(ctx context.Context, total time.Duration) error {
	const width = 40
	frames := int(total / (50 * time.Millisecond))
	for i := 0; i < frames; i++ {
		var b strings.Builder
		for j := 0; j < width; j++ {
			b.WriteRune(noiseGlyphs[s.rng.Intn(len(noiseGlyphs))])
		}
		s.out.Print("\r" + b.String())
		if err := s.sleep(ctx, 50*time.Millisecond); err != nil {
			return err
		}
	}
	s.out.Print("\r" + strings.Repeat(" ", width) + "\r")
	return nil
}

// progress renders a segmented completion bar, rewriting one line.
func (s *Sequencer) progress(ctx context.Context, segments int, pause time.Duration, skip bool) error {
	if skip {
		s.out.Print(fmt.Sprintf("[%s] 100%%\n", strings.Repeat("█", segments)))
		return nil
	}
	for i := 1; i <= segments; i++ {
		bar := strings.Repeat("█", i) + strings.Repeat("░", segments-i)
		s.out.Print(fmt.Sprintf("\r[%s] %d%%", bar, i*100/segments))
		if err := s.sleep(ctx, pause); err != nil {
			return err
		}
	}
	s.out.Print("\n")
	return nil
}

func scale(ms int, rate float64) time.Duration {
	return time.Duration(float64(ms)*rate) * time.Millisecond
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
