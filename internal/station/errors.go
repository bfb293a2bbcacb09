package station

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyStarted is returned when StartSimulation is called more than once.
	ErrAlreadyStarted = errors.New("simulation already started")
	// ErrNegativeCars is returned for a negative car count.
	ErrNegativeCars = errors.New("number of cars must not be negative")
	// ErrInvariantViolation marks a dequeue that found the waiting area empty
	// although a waiting-car permit had been granted.
	ErrInvariantViolation = errors.New("waiting area empty after waiting-car permit")
)

// ConfigurationError records an out-of-range setting and the value used instead.
type ConfigurationError struct {
	Field   string
	Value   int
	Applied int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d; using %d",
		e.Field, minSize, maxSize, e.Value, e.Applied)
}
