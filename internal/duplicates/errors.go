package duplicates

import "errors"

var (
	// ErrInvalidThreshold indicates a non-positive occurrence threshold.
	ErrInvalidThreshold = errors.New("invalid duplicate threshold")
	// ErrInvalidField indicates a field outside the allowed duplicate-check set.
	ErrInvalidField = errors.New("invalid duplicate field")
)
