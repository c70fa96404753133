// Package primality is the offline validation utility for candidate
// (modulus, multiplier) pairs. It is not part of the runtime generator:
// the core trusts caller-supplied pairs, and this package is how a
// caller earns that trust before shipping a new pair.
package primality

import (
	"math/big"

	"golehmer/domain/lehmer"
)

// Trusted parameter tables from the minimal-standard literature. Pairs
// drawn from these tables need no further validation.
var (
	TrustedMultipliers = []int64{
		lehmer.LegacyMultiplier,
		lehmer.DefaultMultiplier,
	}

	TrustedModuli = []int64{
		lehmer.DefaultModulus, // 2^31 - 1
		lehmer.Mersenne61,     // 2^61 - 1
	}
)

// IsPrime reports whether n is prime. ProbablyPrime is deterministic for
// all inputs below 2^64, which covers every representable modulus.
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	return big.NewInt(n).ProbablyPrime(0)
}

// IsTrustedMultiplier reports whether a appears in the trusted table.
func IsTrustedMultiplier(a int64) bool {
	for _, t := range TrustedMultipliers {
		if a == t {
			return true
		}
	}
	return false
}

// IsTrustedModulus reports whether m appears in the trusted table.
func IsTrustedModulus(m int64) bool {
	for _, t := range TrustedModuli {
		if m == t {
			return true
		}
	}
	return false
}

// Verdict is the result of validating one candidate pair.
type Verdict struct {
	Modulus           int64
	Multiplier        int64
	ModulusPrime      bool
	MultiplierPrime   bool
	Trusted           bool  // both values appear in the trusted tables
	SchrageValid      bool  // r < q holds for the pair
	FullPeriod        bool  // exhaustively verified (small moduli only)
	FullPeriodChecked bool  // false when the modulus is too large to walk
	Err               error // construction error from the core, if any
}

// Usable reports whether the pair passed every check that applies to it.
func (v Verdict) Usable() bool {
	if !v.ModulusPrime || !v.SchrageValid || v.Err != nil {
		return false
	}
	if v.FullPeriodChecked && !v.FullPeriod {
		return false
	}
	return true
}

// fullPeriodLimit bounds the exhaustive period walk; above this the
// check is skipped rather than spending minutes per candidate.
const fullPeriodLimit = 1 << 22

// ValidatePair runs every applicable check against a candidate pair:
// primality of both values, the trusted tables, the Schrage precondition,
// and, for small moduli, an exhaustive walk proving the multiplier is a
// primitive root (the sequence from seed 1 visits all m-1 nonzero
// residues before returning).
func ValidatePair(m, a int64) Verdict {
	v := Verdict{
		Modulus:         m,
		Multiplier:      a,
		ModulusPrime:    IsPrime(m),
		MultiplierPrime: IsPrime(a),
		Trusted:         IsTrustedModulus(m) && IsTrustedMultiplier(a),
	}

	ps, err := lehmer.NewParameterSet(m, a)
	if err != nil {
		v.Err = err
		return v
	}
	v.SchrageValid = true

	if m <= fullPeriodLimit {
		v.FullPeriodChecked = true
		v.FullPeriod = walkFullPeriod(ps)
	}
	return v
}

// walkFullPeriod steps from seed 1 and reports whether the walk returns
// to 1 after exactly m-1 steps without an earlier cycle.
func walkFullPeriod(ps lehmer.ParameterSet) bool {
	period := ps.M - 1
	z := int64(1)
	for i := int64(1); i <= period; i++ {
		z = ps.Step(z)
		if z == 1 {
			return i == period
		}
	}
	return false
}
