package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record has never been written.
	ErrNotFound = errors.New("persistence: not found")
	// ErrUnavailable is returned when the durable store cannot be reached.
	ErrUnavailable = errors.New("persistence: store unavailable")
)
