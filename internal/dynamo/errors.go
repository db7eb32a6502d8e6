package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidInput indicates a NaN or Inf in a particle, g or dt.
	ErrInvalidInput = errors.New("twobody: invalid input (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("twobody: parameter out of valid bounds")

	// ErrInvalidState indicates a step produced a non-finite position.
	ErrInvalidState = errors.New("twobody: invalid state (position diverged)")
)

// SimulationError wraps an error with the step it occurred at.
type SimulationError struct {
	Step    int
	Sample  Sample
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
