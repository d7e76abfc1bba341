// Package quotes keeps the table of quote pairs that suspend sentence
// splitting between an opening and a closing mark.
package quotes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jamesainslie/go-sbd/textview"
)

// ErrInvalidSpec is returned for malformed quote specification strings.
var ErrInvalidSpec = errors.New("quotes: invalid quote specification")

// MaxDistance is the largest accepted token distance.
const MaxDistance = 1000

// Spec describes one quote pair. MaxDistance is the number of tokens after
// the opening mark within which the closing mark must appear.
type Spec struct {
	Open        rune
	Close       rune
	MaxDistance int
}

// Registry is an ordered list of quote pairs. It is read-only once built
// and may be shared between segmentation runs.
type Registry struct {
	specs []Spec
	// candidate filters lookups on the low byte of the opening mark.
	candidate [256]bool
}

// NewRegistry returns a registry holding specs in order.
func NewRegistry(specs ...Spec) *Registry {
	r := &Registry{}
	for _, s := range specs {
		r.Register(s.Open, s.Close, s.MaxDistance)
	}
	return r
}

// Register appends a quote pair. A repeated opening mark adds another row;
// Lookup returns the first one.
func (r *Registry) Register(openMark, closeMark rune, maxDistance int) {
	r.candidate[openMark&0xFF] = true
	r.specs = append(r.specs, Spec{Open: openMark, Close: closeMark, MaxDistance: maxDistance})
}

// Lookup returns the spec whose opening mark is the single codepoint in tok.
func (r *Registry) Lookup(tok textview.View) (Spec, bool) {
	if r == nil || len(r.specs) == 0 || tok.IsEmpty() {
		return Spec{}, false
	}
	open := tok.First()
	if !r.candidate[open&0xFF] || !tok.IsSingle(open) {
		return Spec{}, false
	}
	for _, s := range r.specs {
		if s.Open == open {
			return s, true
		}
	}
	return Spec{}, false
}

// Specs returns a copy of the registered pairs in order.
func (r *Registry) Specs() []Spec {
	return append([]Spec(nil), r.specs...)
}

// Len returns the number of registered pairs.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.specs)
}

// String formats the registry in the syntax Parse accepts.
func (r *Registry) String() string {
	parts := make([]string, len(r.specs))
	for i, s := range r.specs {
		parts[i] = fmt.Sprintf("%c%c:%d", s.Open, s.Close, s.MaxDistance)
	}
	return strings.Join(parts, ",")
}

// Parse builds a registry from a list such as `«»:200,"":20`: comma
// separated entries, each an opening and closing mark, a colon and the
// maximum token distance in [0, 1000].
func Parse(s string) (*Registry, error) {
	r := &Registry{}
	for _, entry := range strings.Split(s, ",") {
		spec, err := parseEntry(entry)
		if err != nil {
			return nil, err
		}
		r.Register(spec.Open, spec.Close, spec.MaxDistance)
	}
	return r, nil
}

func parseEntry(entry string) (Spec, error) {
	parts := strings.Split(entry, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Spec{}, fmt.Errorf("%w: %q is not <open><close>:<distance>", ErrInvalidSpec, entry)
	}

	brackets := textview.New(parts[0])
	if brackets.CodepointCount() != 2 {
		return Spec{}, fmt.Errorf("%w: %q must be exactly two characters", ErrInvalidSpec, parts[0])
	}

	dist, err := strconv.Atoi(parts[1])
	if err != nil {
		return Spec{}, fmt.Errorf("%w: distance %q: %w", ErrInvalidSpec, parts[1], err)
	}
	if dist < 0 || dist > MaxDistance {
		return Spec{}, fmt.Errorf("%w: distance %d outside [0, %d]", ErrInvalidSpec, dist, MaxDistance)
	}

	return Spec{Open: brackets.First(), Close: brackets.Last(), MaxDistance: dist}, nil
}
