package sbd

import (
	"log/slog"
	"runtime"

	"github.com/jamesainslie/go-sbd/model"
	"github.com/jamesainslie/go-sbd/segment"
)

// Option configures a Segmenter.
type Option func(*config)

type config struct {
	threshold float64
	eol       segment.EOLMode
	quotes    string
	poolSize  int
	logger    *slog.Logger
}

func defaultConfig() config {
	return config{
		eol:      segment.SplitOnMultipleEOLs,
		poolSize: runtime.NumCPU(),
		logger:   slog.Default(),
	}
}

// WithThreshold sets the score a candidate must exceed to end a sentence
// (default: 0).
func WithThreshold(t float64) Option {
	return func(c *config) {
		c.threshold = t
	}
}

// WithEOLMode sets the line break policy (default: segment.SplitOnMultipleEOLs).
func WithEOLMode(m segment.EOLMode) Option {
	return func(c *config) {
		c.eol = m
	}
}

// WithQuotes enables quote tracking with a specification such as
// "«»:200,\"\":20". An empty string disables it.
func WithQuotes(spec string) Option {
	return func(c *config) {
		c.quotes = spec
	}
}

// WithPoolSize sets the number of concurrent segmentation sessions
// (default: runtime.NumCPU()).
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// TrainOption configures TrainModel.
type TrainOption func(*model.TrainConfig)

// WithEpochs sets the number of passes over the training examples
// (default: 100).
func WithEpochs(n int) TrainOption {
	return func(c *model.TrainConfig) {
		if n > 0 {
			c.Epochs = n
		}
	}
}

// WithSeed seeds the example shuffle (default: 1).
func WithSeed(seed uint64) TrainOption {
	return func(c *model.TrainConfig) {
		c.Seed = seed
	}
}

// WithShuffle turns the per-epoch shuffle on or off (default: on).
func WithShuffle(on bool) TrainOption {
	return func(c *model.TrainConfig) {
		c.Shuffle = on
	}
}

// WithMinFeatureFrequency drops features seen in fewer training examples
// (default: 5).
func WithMinFeatureFrequency(n int) TrainOption {
	return func(c *model.TrainConfig) {
		if n > 0 {
			c.MinFeatureFrequency = n
		}
	}
}

// WithLambda sets the regularization strength (default: 1e-4).
func WithLambda(lambda float64) TrainOption {
	return func(c *model.TrainConfig) {
		if lambda > 0 {
			c.Lambda = lambda
		}
	}
}

// WithNormalization applies NFC normalization to training lines
// (default: off).
func WithNormalization(on bool) TrainOption {
	return func(c *model.TrainConfig) {
		c.Normalize = on
	}
}

// WithTrainLogger sets the training logger (default: slog.Default()).
func WithTrainLogger(l *slog.Logger) TrainOption {
	return func(c *model.TrainConfig) {
		if l != nil {
			c.Logger = l
		}
	}
}
