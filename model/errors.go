package model

import "errors"

var (
	// ErrFormat indicates a persisted model that cannot be parsed.
	ErrFormat = errors.New("model: invalid model format")

	// ErrInvalidWordClasses indicates a malformed word class line.
	ErrInvalidWordClasses = errors.New("model: invalid word class file")

	// ErrDuplicateWordClass indicates a word class name declared twice.
	ErrDuplicateWordClass = errors.New("model: duplicate word class")

	// ErrTooManyWordClasses indicates more classes than a class mask can hold.
	ErrTooManyWordClasses = errors.New("model: too many word classes")

	// ErrNoEOSChars indicates training text in which no character ends two
	// or more lines.
	ErrNoEOSChars = errors.New("model: no end-of-sentence characters in training text")
)
