package sbd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jamesainslie/go-sbd/internal/mmap"
	"github.com/jamesainslie/go-sbd/model"
)

// TrainModel trains a model from the corpus at trainingPath, a text file
// with one sentence per line. wordClassesPath may be empty.
func TrainModel(ctx context.Context, trainingPath, wordClassesPath string, opts ...TrainOption) (*model.Model, error) {
	cfg := model.DefaultTrainConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.Logger = cfg.Logger.With("run", uuid.NewString())

	var classes []model.WordClass
	if wordClassesPath != "" {
		c, err := loadWordClasses(wordClassesPath)
		if err != nil {
			return nil, err
		}
		classes = c
		cfg.Logger.Info("loaded word classes", "path", wordClassesPath, "classes", len(classes))
	}

	corpus, err := mmap.Open(trainingPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTrainingFileNotFound, trainingPath)
		}
		return nil, fmt.Errorf("opening training file: %w", err)
	}
	defer func() { _ = corpus.Close() }()

	cfg.Logger.Info("training", "path", trainingPath, "bytes", corpus.Size(), "epochs", cfg.Epochs)
	m, err := model.Train(ctx, corpus.String(), classes, cfg)
	if err != nil {
		if errors.Is(err, model.ErrTooManyWordClasses) {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		return nil, err
	}
	return m, nil
}

func loadWordClasses(path string) ([]model.WordClass, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening word class file: %w", err)
	}
	defer func() { _ = f.Close() }()

	classes, err := model.ParseWordClasses(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfiguration, path, err)
	}
	return classes, nil
}
