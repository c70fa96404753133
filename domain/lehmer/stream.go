package lehmer

import (
	"fmt"

	"golehmer/domain/core"
)

// SeedingPolicy names how a multi-stream table derives its initial seeds.
// The policy is always explicit; silently reusing one seed across streams
// that are supposed to be independent is a defect, not a feature.
type SeedingPolicy string

const (
	// PolicyReplicated starts every stream from the same seed. Only
	// useful when streams are never compared for independence.
	PolicyReplicated SeedingPolicy = "replicated"

	// PolicyLeapfrogged plants stream i+1 at a fixed 2^k-step jump past
	// stream i, via modular exponentiation of the multiplier. Required
	// whenever streams must be statistically independent.
	PolicyLeapfrogged SeedingPolicy = "leapfrogged"
)

// ParseSeedingPolicy parses a policy name, accepting the empty string as
// the leapfrogged default.
func ParseSeedingPolicy(s string) (SeedingPolicy, error) {
	switch SeedingPolicy(s) {
	case PolicyReplicated:
		return PolicyReplicated, nil
	case PolicyLeapfrogged, SeedingPolicy(""):
		return PolicyLeapfrogged, nil
	}
	return "", fmt.Errorf("%w: unknown seeding policy %q", core.ErrConfiguration, s)
}

// Stream is the mutable state of one generator sequence: a single seed in
// [1, m-1]. Streams are value types owned exclusively by their slot in a
// StreamTable and are mutated only by Schrage stepping.
type Stream struct {
	seed int64
}

// NewStream coerces seed into [0, m-1], handling negative inputs, and
// rejects a coerced zero: zero is an absorbing fixed point (a*0 mod m = 0
// forever) and would silently degenerate the whole sequence. The caller
// must supply a different seed; the core never substitutes one, since a
// silently picked seed would defeat reproducibility.
func NewStream(seed int64, params ParameterSet) (Stream, error) {
	z := ((seed % params.M) + params.M) % params.M
	if z == 0 {
		return Stream{}, core.NewSeedError(seed)
	}
	return Stream{seed: z}, nil
}

// Seed returns the stream's current seed.
func (s Stream) Seed() int64 {
	return s.seed
}

// StreamTable is an ordered collection of streams sharing one read-only
// ParameterSet, with a currently selected index. Selection always wraps
// modulo the stream count, so cyclic scheduling needs no bounds checks.
//
// Not safe for concurrent use through the shared cursor. For parallel
// generation, partition work by stream index and use AdvanceAt/CurrentAt:
// distinct indices touch disjoint state and need no synchronization, but
// no two goroutines may advance the same index concurrently.
type StreamTable struct {
	params   ParameterSet
	streams  []Stream
	selected int
}

// NewStreamTable builds count streams from one root seed under the given
// policy. Counts below 1 are coerced to 1. The jump exponent only matters
// for PolicyLeapfrogged.
func NewStreamTable(count int, seed int64, policy SeedingPolicy, jumpExp uint, params ParameterSet) (*StreamTable, error) {
	if count < 1 {
		count = 1
	}
	first, err := NewStream(seed, params)
	if err != nil {
		return nil, err
	}

	streams := make([]Stream, count)
	streams[0] = first
	switch policy {
	case PolicyReplicated:
		for i := 1; i < count; i++ {
			streams[i] = first
		}
	case PolicyLeapfrogged:
		jump := params.JumpMultiplier(jumpExp)
		prev := first.seed
		for i := 1; i < count; i++ {
			// m prime and both factors nonzero, so the product mod m
			// stays nonzero.
			prev = mulMod(jump, prev, params.M)
			streams[i] = Stream{seed: prev}
		}
	default:
		return nil, fmt.Errorf("%w: unknown seeding policy %q", core.ErrConfiguration, policy)
	}

	return &StreamTable{params: params, streams: streams}, nil
}

// Len returns the number of streams.
func (t *StreamTable) Len() int {
	return len(t.streams)
}

// Selected returns the index of the currently selected stream.
func (t *StreamTable) Selected() int {
	return t.selected
}

// Select picks the stream at index mod Len. Negative and out-of-range
// indices wrap; selection never fails.
func (t *StreamTable) Select(index int) {
	t.selected = t.wrap(index)
}

// Current returns the selected stream's seed without mutation.
func (t *StreamTable) Current() int64 {
	return t.streams[t.selected].seed
}

// Advance steps the selected stream in place and returns the new seed.
// This is the only operation that mutates stream state.
func (t *StreamTable) Advance() int64 {
	return t.advance(t.selected)
}

// Normalize returns Current()/m in [0.0, 1.0). It never returns exactly
// 1.0 because seeds are strictly below m, and never 0.0 because stepping
// a nonzero seed with a primitive-root multiplier stays nonzero.
func (t *StreamTable) Normalize() float64 {
	return float64(t.Current()) / float64(t.params.M)
}

// CurrentAt returns the seed of the stream at index mod Len without
// touching the shared cursor.
func (t *StreamTable) CurrentAt(index int) int64 {
	return t.streams[t.wrap(index)].seed
}

// AdvanceAt steps the stream at index mod Len without touching the shared
// cursor. Safe to call concurrently for distinct indices.
func (t *StreamTable) AdvanceAt(index int) int64 {
	return t.advance(t.wrap(index))
}

// Seeds returns a copy of every stream's current seed, in table order.
func (t *StreamTable) Seeds() []int64 {
	out := make([]int64, len(t.streams))
	for i, s := range t.streams {
		out[i] = s.seed
	}
	return out
}

func (t *StreamTable) advance(i int) int64 {
	z := t.params.Step(t.streams[i].seed)
	t.streams[i].seed = z
	return z
}

func (t *StreamTable) wrap(index int) int {
	n := len(t.streams)
	return ((index % n) + n) % n
}
