// Package tokenizer splits text into word, number, punctuation, URL and
// abbreviation tokens.
//
// Tokens are textview.Views into the caller's buffer; nothing is copied.
// Runs of whitespace and control characters are skipped unless the
// tokenizer is built with WithWhitespace. A NUL byte ends the stream.
package tokenizer

import (
	"iter"

	"github.com/jamesainslie/go-sbd/textview"
)

// Tokenizer produces token streams. It holds no per-stream state and is
// safe for concurrent use.
type Tokenizer struct {
	emitSpace bool
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithWhitespace makes the tokenizer emit whitespace runs as tokens.
func WithWhitespace() Option {
	return func(t *Tokenizer) {
		t.emitSpace = true
	}
}

// New returns a Tokenizer.
func New(opts ...Option) *Tokenizer {
	t := &Tokenizer{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

var standard = New()

// TokenInfo represents a token with its position in the original text.
type TokenInfo struct {
	Text  string
	Start int // byte offset in original text
	End   int // byte offset in original text
}

// Cursor walks the tokens of one view. A Cursor is a plain value: copying
// it saves the stream position and assigning the copy back restores it.
type Cursor struct {
	emitSpace bool
	v         textview.View
	pos       int // relative to v
	done      bool
}

// Cursor returns a cursor positioned at the start of v.
func (t *Tokenizer) Cursor(v textview.View) Cursor {
	return Cursor{emitSpace: t.emitSpace, v: v}
}

// Next returns the next token, or false once the stream has ended.
func (c *Cursor) Next() (textview.View, bool) {
	for !c.done {
		in := input{s: c.v.String()[c.pos:]}
		kind, n := longest(&in)
		if kind == ruleNone {
			c.done = true
			break
		}
		start := c.pos
		c.pos += n
		if kind == ruleSpace && !c.emitSpace {
			continue
		}
		return c.v.Sub(start, c.pos), true
	}
	return textview.View{}, false
}

// Tokens yields the tokens of v in order. Each call starts from the
// beginning of v.
func (t *Tokenizer) Tokens(v textview.View) iter.Seq[textview.View] {
	return func(yield func(textview.View) bool) {
		c := t.Cursor(v)
		for {
			tok, ok := c.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Encode tokenizes text and returns the tokens with their byte offsets.
func (t *Tokenizer) Encode(text string) []TokenInfo {
	if text == "" {
		return nil
	}
	var tokens []TokenInfo
	for tok := range t.Tokens(textview.New(text)) {
		tokens = append(tokens, TokenInfo{Text: tok.String(), Start: tok.Start(), End: tok.End()})
	}
	return tokens
}

// Tokens yields the tokens of v using the default tokenizer.
func Tokens(v textview.View) iter.Seq[textview.View] {
	return standard.Tokens(v)
}

// Encode tokenizes text using the default tokenizer.
func Encode(text string) []TokenInfo {
	return standard.Encode(text)
}
