// Package inference runs a boundary model over text. A Session carries the
// segmentation settings and reusable scratch space for one caller at a
// time; a Pool shares a fixed number of sessions between goroutines.
package inference

import (
	"context"
	"errors"
	"sync"

	"github.com/jamesainslie/go-sbd/features"
	"github.com/jamesainslie/go-sbd/model"
	"github.com/jamesainslie/go-sbd/quotes"
	"github.com/jamesainslie/go-sbd/segment"
	"github.com/jamesainslie/go-sbd/textview"
	"github.com/jamesainslie/go-sbd/tokenizer"
)

var (
	// ErrNoModel is returned when a session is created without a model.
	ErrNoModel = errors.New("inference: no model")

	// ErrSessionClosed is returned by calls on a closed session.
	ErrSessionClosed = errors.New("inference: session is closed")
)

// Config holds the settings shared by every session of a pool.
type Config struct {
	EOL    segment.EOLMode
	Quotes *quotes.Registry
	// Threshold is the score a candidate must exceed to end a sentence.
	Threshold float64
}

// Session segments text with one model. It is not safe for concurrent
// use; share sessions through a Pool.
type Session struct {
	model     *model.Model
	threshold float64
	opts      []segment.Option
	spans     []segment.Span

	mu     sync.Mutex
	closed bool
}

// NewSession creates a session for m.
func NewSession(m *model.Model, cfg Config) (*Session, error) {
	if m == nil {
		return nil, ErrNoModel
	}
	s := &Session{model: m, threshold: cfg.Threshold}
	s.opts = []segment.Option{
		segment.WithEOLMode(cfg.EOL),
		segment.WithQuotes(cfg.Quotes),
	}
	return s, nil
}

// Decide implements segment.Decider with the session threshold.
func (s *Session) Decide(w *features.Window) bool {
	return s.model.DecideWithThreshold(w, s.threshold)
}

// Infer returns the sentence spans of text. The returned slice is reused
// by the next call. The context is checked between sentences.
func (s *Session) Infer(ctx context.Context, text string) ([]segment.Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}

	s.spans = s.spans[:0]
	for sp := range segment.Spans(text, s, s.opts...) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.spans = append(s.spans, sp)
	}
	return s.spans, nil
}

// Verdict is the classifier's reading of one token in context.
type Verdict struct {
	Token textview.View
	// Candidate is false when the token does not end in an end-of-sentence
	// character; Score is then meaningless.
	Candidate bool
	Score     float64
	Boundary  bool
}

// Last classifies the final token of text with nothing to its right. The
// verdict's Token is empty when text has no tokens.
func (s *Session) Last(ctx context.Context, text string) (Verdict, error) {
	if err := ctx.Err(); err != nil {
		return Verdict{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Verdict{}, ErrSessionClosed
	}

	var w features.Window
	for tok := range tokenizer.Tokens(textview.New(text)) {
		w.Push(tok)
	}
	w.Push(textview.View{})

	v := Verdict{Token: w.At(0)}
	if !s.model.IsCandidate(v.Token) {
		return v, nil
	}
	v.Candidate = true
	v.Score = s.model.Score(&w)
	v.Boundary = v.Score > s.threshold
	return v, nil
}

// Close marks the session closed. The model is not owned by the session.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.spans = nil
	return nil
}
