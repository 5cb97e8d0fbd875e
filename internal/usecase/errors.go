package usecase

import (
	"errors"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
)

// Sweep failure taxonomy. Neither aborts a sweep: both degrade to "skip this
// tournament, keep prior derived state, retry next cycle".
var (
	// ErrComputationBudgetExceeded marks a tournament whose recomputation
	// ran past the configured wall-clock guard.
	ErrComputationBudgetExceeded = crerr.New("tournament computation budget exceeded")

	// ErrInconsistentCompletion marks a tournament reported completed while
	// matches in its range remain undecided; an upstream lifecycle bug.
	ErrInconsistentCompletion = crerr.New("tournament completed with undecided matches")
)
