package sbd

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math"
	"os"

	"github.com/jamesainslie/go-sbd/features"
	"github.com/jamesainslie/go-sbd/inference"
	"github.com/jamesainslie/go-sbd/model"
	"github.com/jamesainslie/go-sbd/quotes"
	"github.com/jamesainslie/go-sbd/segment"
)

// Segmenter splits text into sentences with a trained model.
// It is safe for concurrent use.
type Segmenter struct {
	model     *model.Model
	pool      *inference.Pool
	threshold float64
	segOpts   []segment.Option
	logger    *slog.Logger
}

// New creates a Segmenter with the model stored at modelPath.
func New(modelPath string, opts ...Option) (*Segmenter, error) {
	m, err := LoadModel(modelPath)
	if err != nil {
		return nil, err
	}
	return NewFromModel(m, opts...)
}

// NewFromModel creates a Segmenter around an already loaded model.
func NewFromModel(m *model.Model, opts ...Option) (*Segmenter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var reg *quotes.Registry
	if cfg.quotes != "" {
		r, err := quotes.Parse(cfg.quotes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		reg = r
	}

	icfg := inference.Config{EOL: cfg.eol, Quotes: reg, Threshold: cfg.threshold}
	pool, err := inference.NewPool(m, icfg, cfg.poolSize)
	if err != nil {
		return nil, err
	}

	cfg.logger.Debug("segmenter ready",
		"eos_chars", string(m.EOSChars()),
		"tokens", m.NumTokens(),
		"eol", cfg.eol,
		"quotes", reg.Len(),
		"pool", pool.Size())

	return &Segmenter{
		model:     m,
		pool:      pool,
		threshold: cfg.threshold,
		segOpts:   []segment.Option{segment.WithEOLMode(cfg.eol), segment.WithQuotes(reg)},
		logger:    cfg.logger,
	}, nil
}

// Model returns the underlying model.
func (s *Segmenter) Model() *model.Model {
	return s.model
}

// IsComplete returns whether text appears to end with a complete sentence:
// its final token is classified as a sentence end. Confidence is the
// sigmoid of the classifier score, or 0 when the final token cannot end a
// sentence.
func (s *Segmenter) IsComplete(ctx context.Context, text string) (complete bool, confidence float32, err error) {
	if text == "" {
		return false, 0.0, nil
	}

	var v inference.Verdict
	err = s.pool.Do(ctx, func(session *inference.Session) error {
		v, err = session.Last(ctx, text)
		return err
	})
	if err != nil {
		return false, 0, err
	}
	if !v.Candidate {
		return false, 0, nil
	}
	return v.Boundary, sigmoid(float32(v.Score)), nil
}

// Segment splits text into sentences. Sentences carry no surrounding
// whitespace.
func (s *Segmenter) Segment(ctx context.Context, text string) ([]string, error) {
	sentences, _, err := s.SegmentWithBoundaries(ctx, text)
	return sentences, err
}

// SegmentWithBoundaries splits text into sentences and returns boundary positions.
// Boundaries are byte offsets where each sentence ends in the original text.
func (s *Segmenter) SegmentWithBoundaries(ctx context.Context, text string) (sentences []string, boundaries []int, err error) {
	if text == "" {
		return nil, nil, nil
	}

	// The session reuses its span buffer, so copy out before it is released.
	err = s.pool.Do(ctx, func(session *inference.Session) error {
		spans, err := session.Infer(ctx, text)
		if err != nil {
			return err
		}
		for _, sp := range spans {
			sentences = append(sentences, sp.Text(text))
			boundaries = append(boundaries, sp.End)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return sentences, boundaries, nil
}

// Spans yields the byte ranges of the sentences of text lazily. It does
// not take a pool session.
func (s *Segmenter) Spans(text string) iter.Seq[segment.Span] {
	d := segment.DeciderFunc(func(w *features.Window) bool {
		return s.model.DecideWithThreshold(w, s.threshold)
	})
	return segment.Spans(text, d, s.segOpts...)
}

// Close releases all resources.
func (s *Segmenter) Close() error {
	var errs []error

	if s.pool != nil {
		if err := s.pool.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LoadModel reads a model written by SaveModel.
func LoadModel(path string) (*model.Model, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
		return nil, fmt.Errorf("checking model file: %w", err)
	}
	return model.LoadFile(path)
}

// SaveModel writes m to path; see the package documentation for formats.
func SaveModel(m *model.Model, path string) error {
	return m.SaveFile(path)
}

func sigmoid(x float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(float64(-x))))
}
