package segment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jamesainslie/go-sbd/features"
	"github.com/jamesainslie/go-sbd/internal/unicat"
)

// ErrUnknownEOLMode is returned by ParseEOLMode.
var ErrUnknownEOLMode = errors.New("segment: unknown end-of-line mode")

// EOLMode selects how line breaks between tokens force sentence breaks.
type EOLMode int

const (
	// IgnoreEOL leaves every decision to the classifier.
	IgnoreEOL EOLMode = iota
	// SplitOnEOL breaks at a line break unless the next token starts with a
	// lower-case letter.
	SplitOnEOL
	// SplitOnMultipleEOLs breaks at blank lines.
	SplitOnMultipleEOLs
)

var eolNames = [...]string{"ignore", "single", "multiple"}

func (m EOLMode) String() string {
	if m < 0 || int(m) >= len(eolNames) {
		return fmt.Sprintf("EOLMode(%d)", int(m))
	}
	return eolNames[m]
}

// ParseEOLMode parses the names returned by EOLMode.String.
func ParseEOLMode(s string) (EOLMode, error) {
	for i, name := range eolNames {
		if strings.EqualFold(s, name) {
			return EOLMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEOLMode, s)
}

// forcesBreak reports whether the line breaks between the current and next
// token of w end the sentence.
func (m EOLMode) forcesBreak(w *features.Window) bool {
	switch m {
	case SplitOnEOL:
		next := w.At(1)
		if !strings.Contains(w.At(0).Gap(next), "\n") {
			return false
		}
		return next.IsEmpty() || !unicat.IsLower(next.First())
	case SplitOnMultipleEOLs:
		return strings.Count(w.At(0).Gap(w.At(1)), "\n") >= 2
	default:
		return false
	}
}
