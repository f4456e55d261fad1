// Package gametest provides a scripted console for exercising games
// in tests without a live front end.
package gametest

import (
	"context"
	"strings"

	"github.com/falken/wopr/internal/console"
)

// Console implements console.Input and console.Sink over a fixed input
// script. ReadLine pops the next scripted line; once the script runs
// dry it reports cancellation, so a game that reads too much fails the
// test instead of hanging it.
type Console struct {
	script  []string
	pos     int
	out     strings.Builder
	typed   []string
	cues    []console.Cue
	spoken  []string
	prompts []string
}

// NewConsole returns a console that will answer ReadLine with the given
// lines in order.
func NewConsole(lines ...string) *Console {
	return &Console{script: lines}
}

func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", console.ErrCancelled
	}
	c.prompts = append(c.prompts, prompt)
	if c.pos >= len(c.script) {
		return "", console.ErrCancelled
	}
	line := c.script[c.pos]
	c.pos++
	return line, nil
}

func (c *Console) Print(text string) { c.out.WriteString(text) }

func (c *Console) Type(text string) {
	c.typed = append(c.typed, text)
	c.out.WriteString(text + "\n")
}

func (c *Console) Cue(cue console.Cue) { c.cues = append(c.cues, cue) }

func (c *Console) Speak(text string) { c.spoken = append(c.spoken, text) }

// Output returns everything printed or typed so far.
func (c *Console) Output() string { return c.out.String() }

// Typed returns the typewriter-paced lines in order.
func (c *Console) Typed() []string { return c.typed }

// Cues returns the audio cues fired in order.
func (c *Console) Cues() []console.Cue { return c.cues }

// Spoken returns the speech lines in order.
func (c *Console) Spoken() []string { return c.spoken }

// Prompts returns every prompt passed to ReadLine in order.
func (c *Console) Prompts() []string { return c.prompts }

// Reads reports how many scripted lines were consumed.
func (c *Console) Reads() int { return c.pos }
