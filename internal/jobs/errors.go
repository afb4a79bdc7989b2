package jobs

import "errors"

var (
	// ErrNotFound is returned when a task is not tracked by any job.
	ErrNotFound = errors.New("task not found")
	// ErrInvalidTransition is returned for a state change the lifecycle forbids.
	ErrInvalidTransition = errors.New("invalid state transition")
)
