// Package console is the boundary between the session flow and whatever
// renders it. Output travels one way as ordered events; input travels the
// other way through a single-slot line request.
package console

import (
	"context"
	"errors"
	"sync"
)

// Cue names an audio event. Consumers are free to ignore cues they do
// not recognize; the session behaves identically either way.
type Cue string

const (
	CueDial      Cue = "dial"
	CueConnect   Cue = "connect"
	CueKeypress  Cue = "keypress"
	CueLaunch    Cue = "launch"
	CueExplosion Cue = "explosion"
	CueAlert     Cue = "alert"
	CueBeep      Cue = "beep"
)

var (
	// ErrCancelled reports that an input wait was interrupted by session
	// cancellation rather than answered.
	ErrCancelled = errors.New("console: input cancelled")

	// ErrPending reports a second line request issued while one is still
	// outstanding. That is a programming defect in the caller, never a
	// user condition.
	ErrPending = errors.New("console: input request already pending")
)

// Sink receives session output. Calls enqueue and return; they never
// block on rendering.
type Sink interface {
	// Print delivers raw text. It may contain newlines, and a leading
	// carriage return rewrites the current unfinished line.
	Print(text string)
	// Type delivers one line with a typewriter pacing hint.
	Type(text string)
	// Cue fires a named audio event.
	Cue(c Cue)
	// Speak emits speech text for an optional voice consumer.
	Speak(text string)
}

// Input hands one submitted line to the session flow per call.
type Input interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// EventKind discriminates console events.
type EventKind int

const (
	EventPrint EventKind = iota
	EventType
	EventPrompt
	EventCue
	EventSpeak
)

// Event is one unit of session output, delivered in submission order.
type Event struct {
	Kind EventKind
	Text string
	Cue  Cue
}

type lineResult struct {
	line string
	err  error
}

// Console couples the output stream and the input slot for one session.
// It implements Sink and Input. Prompts share the output FIFO, so the
// front end can never show a prompt ahead of text printed before it.
type Console struct {
	mu      sync.Mutex
	queue   []Event
	closed  bool
	pending chan lineResult

	wake chan struct{}
}

// New returns an empty console ready for one session.
func New() *Console {
	return &Console{wake: make(chan struct{}, 1)}
}

func (c *Console) post(e Event) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.queue = append(c.queue, e)
	c.mu.Unlock()
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Console) Print(text string) { c.post(Event{Kind: EventPrint, Text: text}) }

func (c *Console) Type(text string) { c.post(Event{Kind: EventType, Text: text}) }

func (c *Console) Cue(cue Cue) { c.post(Event{Kind: EventCue, Cue: cue}) }

func (c *Console) Speak(text string) { c.post(Event{Kind: EventSpeak, Text: text}) }

// ReadLine suspends the calling flow until the front end submits a line
// or ctx is cancelled, in which case it fails with ErrCancelled. At most
// one request may be outstanding; a concurrent second call fails fast
// with ErrPending instead of queueing. The returned text is exactly what
// was submitted, with no trimming.
func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return "", ErrCancelled
	}
	if c.pending != nil {
		c.mu.Unlock()
		return "", ErrPending
	}
	ch := make(chan lineResult, 1)
	c.pending = ch
	c.mu.Unlock()

	c.post(Event{Kind: EventPrompt, Text: prompt})

	select {
	case r := <-ch:
		return r.line, r.err
	case <-ctx.Done():
		c.mu.Lock()
		if c.pending == ch {
			c.pending = nil
		}
		c.mu.Unlock()
		// A submission may have raced the cancellation; the cancel wins.
		return "", ErrCancelled
	}
}

// Submit delivers a line typed by the user and reports whether a request
// was outstanding to receive it.
func (c *Console) Submit(line string) bool {
	c.mu.Lock()
	ch := c.pending
	c.pending = nil
	c.mu.Unlock()
	if ch == nil {
		return false
	}
	ch <- lineResult{line: line}
	return true
}

// Cancel unblocks an outstanding request, if any, with ErrCancelled.
// Safe to call when nothing is outstanding.
func (c *Console) Cancel() {
	c.mu.Lock()
	ch := c.pending
	c.pending = nil
	c.mu.Unlock()
	if ch != nil {
		ch <- lineResult{err: ErrCancelled}
	}
}

// Next blocks until an event is available. ok is false once the console
// is closed and drained, or when ctx is cancelled.
func (c *Console) Next(ctx context.Context) (Event, bool) {
	for {
		c.mu.Lock()
		if len(c.queue) > 0 {
			e := c.queue[0]
			c.queue = c.queue[1:]
			c.mu.Unlock()
			return e, true
		}
		closed := c.closed
		c.mu.Unlock()
		if closed {
			return Event{}, false
		}
		select {
		case <-c.wake:
		case <-ctx.Done():
			return Event{}, false
		}
	}
}

// Close ends the event stream after the queued events drain and cancels
// any outstanding request.
func (c *Console) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.Cancel()
	select {
	case c.wake <- struct{}{}:
	default:
	}
}
