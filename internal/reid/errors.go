package reid

import "errors"

var (
	// ErrInvalidInput is returned when a required input is missing.
	ErrInvalidInput = errors.New("invalid input")
	// ErrShapeMismatch is returned when label lengths disagree with the distance matrix.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrNoValidQuery is returned when averaging over zero valid queries.
	ErrNoValidQuery = errors.New("no valid query")
	// ErrUnknownAPMethod is returned when an AP method name cannot be parsed.
	ErrUnknownAPMethod = errors.New("unknown average precision method")
)
