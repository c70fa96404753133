package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors
	ErrConfiguration        = errors.New("invalid generator configuration")
	ErrModulusOutOfRange    = fmt.Errorf("%w: modulus must be a prime greater than 2", ErrConfiguration)
	ErrMultiplierOutOfRange = fmt.Errorf("%w: multiplier must satisfy 2 <= a < m", ErrConfiguration)
	ErrSchragePrecondition  = fmt.Errorf("%w: remainder must be smaller than quotient", ErrConfiguration)

	// Seed errors
	ErrSeed     = errors.New("invalid seed")
	ErrZeroSeed = fmt.Errorf("%w: zero is an absorbing fixed point", ErrSeed)

	// Ledger errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)

	// Determinism errors
	ErrNonDeterministic = errors.New("non-deterministic result")
	ErrReplayMismatch   = fmt.Errorf("%w: replayed value diverges from recorded value", ErrNonDeterministic)
)

// Error constructors with context
func NewConfigurationError(field string, value int64, reason string) error {
	return fmt.Errorf("%w: %s=%d (%s)", ErrConfiguration, field, value, reason)
}

func NewSeedError(seed int64) error {
	return fmt.Errorf("%w: seed %d coerces to zero", ErrZeroSeed, seed)
}

func NewRunNotFoundError(id string) error {
	return fmt.Errorf("%w with id %s", ErrRunNotFound, id)
}

// Error checking helpers
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsSeedError(err error) bool {
	return errors.Is(err, ErrSeed)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
