// Package login validates LOGON attempts against the Falken backdoor.
package login

import "strings"

// Result classifies one credential attempt.
type Result int

const (
	Rejected Result = iota
	Accepted
	HelpRequested
)

func (r Result) String() string {
	switch r {
	case Accepted:
		return "ACCEPTED"
	case HelpRequested:
		return "HELP"
	default:
		return "REJECTED"
	}
}

// Fixed terminal lines, verbatim.
const (
	Prompt      = "LOGON: "
	MsgRejected = "IDENTIFICATION NOT RECOGNIZED"
	MsgGreeting = "GREETINGS PROFESSOR FALKEN."
)

const credential = "joshua"

var helpTokens = map[string]struct{}{
	"help":     {},
	"?":        {},
	"hint":     {},
	"commands": {},
}

// Authenticator checks submitted credentials. There is no lockout: the
// attempt counter exists only so callers can vary flavor text.
type Authenticator struct {
	attempts int
}

func New() *Authenticator { return &Authenticator{} }

// Check classifies raw input. Matching trims whitespace and case-folds.
// Help requests short-circuit without consuming an attempt.
func (a *Authenticator) Check(raw string) Result {
	token := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := helpTokens[token]; ok {
		return HelpRequested
	}
	a.attempts++
	if token == credential {
		return Accepted
	}
	return Rejected
}

// Attempts returns how many non-help attempts have been made.
func (a *Authenticator) Attempts() int { return a.attempts }

// Reset clears the attempt counter.
func (a *Authenticator) Reset() { a.attempts = 0 }
