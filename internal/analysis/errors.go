package analysis

import "errors"

var (
	// ErrNotFound is returned when a channel filter or author id matches nothing.
	ErrNotFound = errors.New("not found")
	// ErrEmptyInput marks a comment set with no texts to score.
	ErrEmptyInput = errors.New("empty comment set")
	// ErrClassification wraps failures of the sentiment classifier.
	ErrClassification = errors.New("classification failed")
)
