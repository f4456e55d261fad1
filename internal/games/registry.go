package games

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Descriptor identifies one playable catalog entry.
type Descriptor struct {
	Index   int
	Name    string
	Aliases []string
	New     func() Game
}

// ErrEmptyRegistry reports a registry built with no descriptors, a
// configuration defect fatal to the session.
var ErrEmptyRegistry = errors.New("games: empty registry")

// Registry resolves player tokens to catalog entries.
type Registry struct {
	ordered []Descriptor
}

// NewRegistry validates the descriptor table and fixes catalog order.
// Indices must be unique and positive, canonical names unique, and
// every entry must carry a constructor.
func NewRegistry(descs []Descriptor) (*Registry, error) {
	if len(descs) == 0 {
		return nil, ErrEmptyRegistry
	}
	ordered := make([]Descriptor, len(descs))
	copy(ordered, descs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	seenIndex := make(map[int]bool, len(ordered))
	seenName := make(map[string]bool, len(ordered))
	for _, d := range ordered {
		if d.Index < 1 {
			return nil, fmt.Errorf("games: descriptor %q: index %d out of range", d.Name, d.Index)
		}
		if seenIndex[d.Index] {
			return nil, fmt.Errorf("games: duplicate index %d", d.Index)
		}
		name := strings.ToUpper(d.Name)
		if name == "" {
			return nil, fmt.Errorf("games: descriptor %d: empty name", d.Index)
		}
		if seenName[name] {
			return nil, fmt.Errorf("games: duplicate name %q", d.Name)
		}
		if d.New == nil {
			return nil, fmt.Errorf("games: descriptor %q: nil constructor", d.Name)
		}
		seenIndex[d.Index] = true
		seenName[name] = true
	}
	return &Registry{ordered: ordered}, nil
}

// Resolve matches token by numeric index first, then canonical name,
// then alias, all case-insensitively. ok is false when nothing matches;
// that is the caller's reprompt condition, never an error.
func (r *Registry) Resolve(token string) (Descriptor, bool) {
	t := Clean(token)
	if t == "" {
		return Descriptor{}, false
	}
	if n, err := strconv.Atoi(t); err == nil {
		for _, d := range r.ordered {
			if d.Index == n {
				return d, true
			}
		}
		return Descriptor{}, false
	}
	for _, d := range r.ordered {
		if strings.ToUpper(d.Name) == t {
			return d, true
		}
	}
	for _, d := range r.ordered {
		for _, a := range d.Aliases {
			if strings.ToUpper(a) == t {
				return d, true
			}
		}
	}
	return Descriptor{}, false
}

// List returns the descriptors in catalog order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Suggest proposes the closest catalog entry for a token Resolve could
// not place: first by name fragment, then by Levenshtein distance over
// names and aliases. Suggestions never widen Resolve semantics; they
// only feed the "no such game" message.
func (r *Registry) Suggest(token string) (Descriptor, bool) {
	t := Clean(token)
	if len(t) < 2 {
		return Descriptor{}, false
	}
	for _, d := range r.ordered {
		if strings.Contains(strings.ToUpper(d.Name), t) {
			return d, true
		}
	}
	const maxDistance = 2
	best := maxDistance + 1
	var bestDesc Descriptor
	for _, d := range r.ordered {
		for _, cand := range append([]string{d.Name}, d.Aliases...) {
			if dist := levenshtein.ComputeDistance(t, strings.ToUpper(cand)); dist < best {
				best = dist
				bestDesc = d
			}
		}
	}
	if best <= maxDistance {
		return bestDesc, true
	}
	return Descriptor{}, false
}
