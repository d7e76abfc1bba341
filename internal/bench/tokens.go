package bench

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/jamesainslie/go-sbd/textview"
	"github.com/jamesainslie/go-sbd/tokenizer"
)

// ErrTokenMismatch is returned when two files meant to hold the same text
// tokenize differently.
var ErrTokenMismatch = errors.New("bench: files contain different tokens")

// TokenBoundaries returns the sentence boundaries of a text with one
// sentence per line, as the number of tokens up to the end of every line
// that has any.
func TokenBoundaries(text string) []int {
	var positions []int
	n := 0
	for line := range strings.Lines(text) {
		count := 0
		for range tokenizer.Tokens(textview.New(line)) {
			count++
		}
		if count > 0 {
			n += count
			positions = append(positions, n)
		}
	}
	return positions
}

// SpanBoundaries converts sentence end offsets in text to token positions.
// ends must be ascending.
func SpanBoundaries(text string, ends []int) []int {
	positions := make([]int, 0, len(ends))
	i, n := 0, 0
	for tok := range tokenizer.Tokens(textview.New(text)) {
		for i < len(ends) && ends[i] <= tok.Start() {
			positions = append(positions, n)
			i++
		}
		n++
	}
	for ; i < len(ends); i++ {
		positions = append(positions, n)
	}
	return positions
}

// CheckTokens reports an ErrTokenMismatch error unless gold and test
// produce the same token sequence.
func CheckTokens(gold, test string) error {
	next, stop := iter.Pull(tokenizer.Tokens(textview.New(test)))
	defer stop()

	for g := range tokenizer.Tokens(textview.New(gold)) {
		t, ok := next()
		if !ok {
			return fmt.Errorf("%w: test ends before %q (line %d)", ErrTokenMismatch, g.String(), lineOf(gold, g.Start()))
		}
		if g.String() != t.String() {
			return fmt.Errorf("%w: %q vs %q (line %d)", ErrTokenMismatch, g.String(), t.String(), lineOf(gold, g.Start()))
		}
	}
	if t, ok := next(); ok {
		return fmt.Errorf("%w: test has extra tokens from %q", ErrTokenMismatch, t.String())
	}
	return nil
}

func lineOf(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}

// Context is the token before, at and after a boundary position.
type Context struct {
	Prev string
	Cur  string
	Next string
}

// Contexts returns the tokens around each boundary position in text.
// positions must be ascending.
func Contexts(text string, positions []int) []Context {
	var (
		out             []Context
		prev, cur, next textview.View
		i, n            int
	)
	collect := func() {
		for i < len(positions) && positions[i] == n {
			out = append(out, Context{Prev: prev.String(), Cur: cur.String(), Next: next.String()})
			i++
		}
	}

	for tok := range tokenizer.Tokens(textview.New(text)) {
		prev, cur, next = cur, next, tok
		collect()
		n++
	}
	prev, cur, next = cur, next, textview.View{}
	collect()
	return out
}
