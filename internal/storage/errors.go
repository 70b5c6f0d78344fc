package storage

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidState is returned when a job status transition is not allowed
// from the job's current state.
var ErrInvalidState = errors.New("invalid state")
