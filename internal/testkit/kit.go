// Package testkit provides shared fixtures: an in-memory run ledger and
// the published check values the test suite verifies against.
package testkit

import (
	"golehmer/domain/lehmer"
)

// Published check values for the minimal-standard generator.
const (
	// KnownAnswerLegacy10000 is the historically published value reached
	// after 10000 steps from seed 1 with m=2^31-1, a=16807.
	KnownAnswerLegacy10000 int64 = 1043618065

	// KnownAnswerSteps is the step count for KnownAnswerLegacy10000.
	KnownAnswerSteps = 10000
)

// ToyFullPeriodSequence is the complete orbit of seed 1 under m=31, a=3:
// all 30 nonzero residues exactly once, closing back on 1.
var ToyFullPeriodSequence = []int64{
	3, 9, 27, 19, 26, 16, 17, 20, 29, 25, 13, 8, 24, 10, 30,
	28, 22, 4, 12, 5, 15, 14, 11, 2, 6, 18, 23, 7, 21, 1,
}

// MinimalStandardConfig returns the default production configuration
// with the given seed.
func MinimalStandardConfig(seed int64) lehmer.Config {
	return lehmer.Config{
		Modulus:    lehmer.DefaultModulus,
		Multiplier: lehmer.DefaultMultiplier,
		Seed:       seed,
	}
}

// ToyConfig returns the small verified full-period configuration, useful
// where a test needs to walk an entire period.
func ToyConfig(seed int64) lehmer.Config {
	return lehmer.Config{
		Modulus:    31,
		Multiplier: 3,
		Seed:       seed,
	}
}
