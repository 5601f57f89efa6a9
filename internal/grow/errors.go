package grow

import (
	"errors"
	"fmt"
)

// Domain errors for growth operations.
var (
	// ErrNonPositiveStep indicates a zero or negative step size.
	ErrNonPositiveStep = errors.New("grow: step size must be positive")

	// ErrNilState indicates a missing root system state.
	ErrNilState = errors.New("grow: nil state")

	// ErrNotInitialized indicates a state with no roots to grow.
	ErrNotInitialized = errors.New("grow: state not initialized")
)

// DayError wraps a collaborator failure with the day it happened on.
type DayError struct {
	Day int
	Err error
}

func (e *DayError) Error() string {
	return fmt.Sprintf("day %d: %v", e.Day, e.Err)
}

func (e *DayError) Unwrap() error {
	return e.Err
}
