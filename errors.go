package sbd

import (
	"errors"

	"github.com/jamesainslie/go-sbd/model"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrModelNotFound indicates the model file does not exist.
	ErrModelNotFound = errors.New("sbd: model file not found")

	// ErrInvalidModel indicates the model file exists but is malformed.
	ErrInvalidModel = model.ErrFormat

	// ErrTrainingFileNotFound indicates the training corpus does not exist.
	ErrTrainingFileNotFound = errors.New("sbd: training file not found")

	// ErrConfiguration indicates a bad quote specification, end-of-line
	// mode or word class file.
	ErrConfiguration = errors.New("sbd: invalid configuration")
)
