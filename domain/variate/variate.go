// Package variate derives simple discrete random variates from a
// SequenceGenerator's uniform output.
package variate

import (
	"golehmer/domain/lehmer"
)

// Bernoulli draws a single trial with success probability p from the
// generator's selected stream. Out-of-range probabilities clamp to the
// certain outcome: p <= 0 always fails, p >= 1 always succeeds, and
// neither consumes generator state.
func Bernoulli(g *lehmer.SequenceGenerator, p float64) int {
	if p <= 0.0 {
		return 0
	}
	if p >= 1.0 {
		return 1
	}
	if g.NextNormalized() < p {
		return 1
	}
	return 0
}

// Binomial counts successes over n Bernoulli trials with probability p.
// Degenerate probabilities short-circuit to 0 or n without consuming
// generator state; n == 0 draws nothing.
func Binomial(g *lehmer.SequenceGenerator, n int, p float64) int {
	if n <= 0 {
		return 0
	}
	if p <= 0.0 {
		return 0
	}
	if p >= 1.0 {
		return n
	}
	count := 0
	for i := 0; i < n; i++ {
		count += Bernoulli(g, p)
	}
	return count
}
