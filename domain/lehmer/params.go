// Package lehmer implements a multiplicative congruential pseudorandom
// generator (z' = a*z mod m) with Schrage's overflow-safe stepping and
// explicit multi-stream state management.
//
// The modulus must be prime and the multiplier a primitive root of it for
// the full-period guarantee to hold. Verifying primitivity exhaustively is
// impractical for large moduli, so the package trusts caller-supplied
// well-known pairs; internal/primality is the offline validator for
// candidate pairs.
package lehmer

import (
	"fmt"
	"math/big"

	"golehmer/domain/core"
)

// Well-known parameter choices from the minimal-standard literature.
const (
	// DefaultModulus is the Mersenne prime 2^31 - 1.
	DefaultModulus int64 = 2147483647

	// DefaultMultiplier is the revised minimal-standard multiplier.
	DefaultMultiplier int64 = 48271

	// LegacyMultiplier is the original minimal-standard multiplier.
	LegacyMultiplier int64 = 16807

	// Mersenne61 is the Mersenne prime 2^61 - 1, usable as a 64-bit modulus.
	Mersenne61 int64 = 2305843009213693951

	// DefaultSeed is the initial state used when no seed is supplied.
	DefaultSeed int64 = 123456789

	// DefaultJumpExp is the default leapfrog exponent k; parallel streams
	// are planted 2^k steps apart in the base sequence.
	DefaultJumpExp uint = 20
)

// ParameterSet is an immutable (m, a) pair with the derived Schrage
// constants q = m div a and r = m mod a. It is computed once and shared
// read-only by every stream.
type ParameterSet struct {
	M int64 // modulus, prime
	A int64 // multiplier, primitive root of M
	Q int64 // M / A
	R int64 // M % A
}

// NewParameterSet validates (m, a) and derives the Schrage constants.
// The decomposition is only numerically valid when r < q, so that check
// happens here, once, and never again on the stepping path.
func NewParameterSet(m, a int64) (ParameterSet, error) {
	if m <= 2 {
		return ParameterSet{}, fmt.Errorf("%w: got m=%d", core.ErrModulusOutOfRange, m)
	}
	if a < 2 || a >= m {
		return ParameterSet{}, fmt.Errorf("%w: got a=%d with m=%d", core.ErrMultiplierOutOfRange, a, m)
	}
	q := m / a
	r := m % a
	if r >= q {
		return ParameterSet{}, fmt.Errorf("%w: m=%d a=%d gives q=%d r=%d", core.ErrSchragePrecondition, m, a, q, r)
	}
	return ParameterSet{M: m, A: a, Q: q, R: r}, nil
}

// Step computes (A*z) mod M by Schrage's decomposition without ever
// forming the full product A*z:
//
//	gamma = A*(z mod Q) - R*(z div Q)
//
// Both partial products are strictly below M when R < Q, so the arithmetic
// stays within int64 even for M = 2^61 - 1. For every z in [0, M-1] the
// result equals (A*z) mod M computed with unbounded precision.
func (p ParameterSet) Step(z int64) int64 {
	gamma := p.A*(z%p.Q) - p.R*(z/p.Q)
	if gamma < 0 {
		gamma += p.M
	}
	return gamma
}

// JumpMultiplier returns A_J = a^(2^k mod (m-1)) mod m, the multiplier
// that advances a seed by 2^k positions in one application. The exponent
// is reduced mod m-1 (Fermat) before the modular exponentiation.
//
// Construction-time only; the hot path never touches big.Int.
func (p ParameterSet) JumpMultiplier(k uint) int64 {
	mMinus1 := new(big.Int).SetInt64(p.M - 1)
	exp := new(big.Int).Exp(big.NewInt(2), new(big.Int).SetUint64(uint64(k)), mMinus1)
	jump := new(big.Int).Exp(new(big.Int).SetInt64(p.A), exp, new(big.Int).SetInt64(p.M))
	return jump.Int64()
}

// mulMod computes (a*b) mod m through big.Int. Only used when planting
// leapfrogged seeds, where the jump multiplier is arbitrary and Schrage's
// precondition cannot be assumed.
func mulMod(a, b, m int64) int64 {
	var x, y, mm big.Int
	x.SetInt64(a)
	y.SetInt64(b)
	mm.SetInt64(m)
	x.Mul(&x, &y)
	x.Mod(&x, &mm)
	return x.Int64()
}
