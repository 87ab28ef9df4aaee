package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound      = errors.New("resource not found")
	ErrAgentNotFound = fmt.Errorf("%w: agent", ErrNotFound)
	ErrProofNotFound = fmt.Errorf("%w: reproducibility proof", ErrNotFound)

	// Data sufficiency errors
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Determinism errors
	ErrNonDeterministic = errors.New("non-deterministic result")
	ErrSeedMismatch     = errors.New("seed mismatch")
	ErrHashMismatch     = errors.New("hash mismatch")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewHashMismatchError(stored, computed Hash) error {
	return fmt.Errorf("%w: stored %s != computed %s", ErrHashMismatch, stored, computed)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDeterminismError(err error) bool {
	return errors.Is(err, ErrNonDeterministic) ||
		errors.Is(err, ErrSeedMismatch) ||
		errors.Is(err, ErrHashMismatch)
}
