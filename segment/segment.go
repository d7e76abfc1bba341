// Package segment splits text into sentences by sliding a context window
// over the token stream and asking a classifier about every token.
//
// An optional quote registry suspends splitting between matching quote
// marks. If the closing mark does not show up in time the text after the
// opening mark is segmented again as if it were not quoted.
package segment

import (
	"iter"

	"github.com/jamesainslie/go-sbd/features"
	"github.com/jamesainslie/go-sbd/quotes"
	"github.com/jamesainslie/go-sbd/textview"
	"github.com/jamesainslie/go-sbd/tokenizer"
)

// Decider decides whether the current token of a window ends a sentence.
// *model.Model satisfies it.
type Decider interface {
	Decide(w *features.Window) bool
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(w *features.Window) bool

// Decide calls f(w).
func (f DeciderFunc) Decide(w *features.Window) bool { return f(w) }

// Span is the byte range [Start, End) of one sentence.
type Span struct {
	Start int
	End   int
}

// Text returns the sentence text within src.
func (s Span) Text(src string) string {
	return src[s.Start:s.End]
}

type config struct {
	eol       EOLMode
	quotes    *quotes.Registry
	tokenizer *tokenizer.Tokenizer
}

// Option configures segmentation.
type Option func(*config)

// WithEOLMode sets the line break policy. The default is IgnoreEOL.
func WithEOLMode(m EOLMode) Option {
	return func(c *config) {
		c.eol = m
	}
}

// WithQuotes enables quote tracking with r. A nil registry disables it.
func WithQuotes(r *quotes.Registry) Option {
	return func(c *config) {
		c.quotes = r
	}
}

// WithTokenizer replaces the default tokenizer.
func WithTokenizer(t *tokenizer.Tokenizer) Option {
	return func(c *config) {
		c.tokenizer = t
	}
}

// Sentences yields the sentences of v as views into v's source. Sentences
// hold no leading or trailing whitespace and are never empty. Each call
// starts over from the beginning of v; stopping early is always safe.
func Sentences(v textview.View, d Decider, opts ...Option) iter.Seq[textview.View] {
	cfg := config{tokenizer: tokenizer.New()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(yield func(textview.View) bool) {
		s := &splitter{
			cfg:    cfg,
			d:      d,
			src:    v,
			cursor: cfg.tokenizer.Cursor(v),
		}
		s.advance()
		for {
			sent, ok := s.next()
			if !ok || !yield(sent) {
				return
			}
		}
	}
}

// Spans yields the byte ranges of the sentences of text.
func Spans(text string, d Decider, opts ...Option) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		for sent := range Sentences(textview.New(text), d, opts...) {
			if !yield(Span{Start: sent.Start(), End: sent.End()}) {
				return
			}
		}
	}
}

// openQuote is the state kept while looking for a closing quote mark: the
// spec that matched, the number of tokens seen since, and a checkpoint to
// return to if the quote is abandoned.
type openQuote struct {
	spec   quotes.Spec
	dist   int
	cursor tokenizer.Cursor
	window features.Window
}

type splitter struct {
	cfg    config
	d      Decider
	src    textview.View
	cursor tokenizer.Cursor
	window features.Window
}

// advance pushes the next token into the window. Once the stream is
// exhausted it pushes one empty token so the last real token reaches the
// current slot, then reports false.
func (s *splitter) advance() bool {
	if tok, ok := s.cursor.Next(); ok {
		s.window.Push(tok)
		return true
	}
	if s.window.At(1).IsEmpty() {
		return false
	}
	s.window.Push(textview.View{})
	return true
}

// next runs the state machine up to the end of the next sentence.
func (s *splitter) next() (textview.View, bool) {
	var (
		quote      *openQuote
		start, end int
		started    bool
	)

	for {
		if !s.advance() {
			if quote == nil {
				break
			}
			s.cursor, s.window = quote.cursor, quote.window
			quote = nil
		} else {
			if !started {
				start, started = s.window.At(0).Start(), true
			}

			cur := s.window.At(0)
			if quote == nil {
				if spec, ok := s.cfg.quotes.Lookup(cur); ok {
					quote = &openQuote{spec: spec, cursor: s.cursor, window: s.window}
					continue
				}
			} else {
				quote.dist++
				switch {
				case cur.IsSingle(quote.spec.Close):
					quote = nil
				case quote.dist > quote.spec.MaxDistance || cur.IsSingle(quote.spec.Open):
					s.cursor, s.window = quote.cursor, quote.window
					quote = nil
				default:
					continue
				}
			}
		}

		end = s.window.At(0).End()
		if s.cfg.eol.forcesBreak(&s.window) {
			s.window.ClearLeftAndCurrent()
			break
		}
		if s.d.Decide(&s.window) {
			break
		}
	}

	if !started {
		return textview.View{}, false
	}
	base := s.src.Start()
	return s.src.Sub(start-base, end-base), true
}
