package lehmer

import (
	"fmt"
	"iter"
)

// Config describes one SequenceGenerator. Seed is the only required
// field; zero values elsewhere fall back to the minimal-standard
// defaults. The normalized form of the config, together with a stream
// index and an advance count, is sufficient to reconstruct any future
// value exactly.
type Config struct {
	Modulus     int64         // default 2^31 - 1
	Multiplier  int64         // default 48271
	Seed        int64         // required, must not coerce to zero
	StreamCount int           // default 1; values <= 0 coerce to 1
	Policy      SeedingPolicy // default leapfrogged
	JumpExp     uint          // default 20; leapfrog spacing is 2^JumpExp
}

// withDefaults returns the config with every defaulted field filled in.
func (c Config) withDefaults() Config {
	if c.Modulus == 0 {
		c.Modulus = DefaultModulus
	}
	if c.Multiplier == 0 {
		c.Multiplier = DefaultMultiplier
	}
	if c.StreamCount < 1 {
		c.StreamCount = 1
	}
	if c.Policy == "" {
		c.Policy = PolicyLeapfrogged
	}
	if c.JumpExp == 0 {
		c.JumpExp = DefaultJumpExp
	}
	return c
}

// SequenceGenerator is the public-facing orchestrator: one ParameterSet
// composed with one StreamTable. Create one per independent experiment;
// reconstructing a generator from the same Config reproduces the
// identical sequence.
type SequenceGenerator struct {
	params ParameterSet
	table  *StreamTable
	config Config
}

// New validates the configuration and builds the generator. All
// configuration and seed errors surface here, before any value is
// produced, so a caller never observes a partially valid sequence.
func New(cfg Config) (*SequenceGenerator, error) {
	cfg = cfg.withDefaults()
	params, err := NewParameterSet(cfg.Modulus, cfg.Multiplier)
	if err != nil {
		return nil, err
	}
	table, err := NewStreamTable(cfg.StreamCount, cfg.Seed, cfg.Policy, cfg.JumpExp, params)
	if err != nil {
		return nil, err
	}
	return &SequenceGenerator{params: params, table: table, config: cfg}, nil
}

// MustNew is New for trusted static configurations; it panics on error.
func MustNew(cfg Config) *SequenceGenerator {
	g, err := New(cfg)
	if err != nil {
		panic(fmt.Sprintf("lehmer: %v", err))
	}
	return g
}

// Params returns the shared read-only parameter set.
func (g *SequenceGenerator) Params() ParameterSet {
	return g.params
}

// Config returns the normalized configuration the generator was built
// from, with all defaults filled in.
func (g *SequenceGenerator) Config() Config {
	return g.config
}

// Streams returns the number of streams in the table.
func (g *SequenceGenerator) Streams() int {
	return g.table.Len()
}

// Selected returns the index of the currently selected stream.
func (g *SequenceGenerator) Selected() int {
	return g.table.Selected()
}

// Select picks the stream at index mod Streams(); wraps, never fails.
func (g *SequenceGenerator) Select(index int) {
	g.table.Select(index)
}

// Current returns the selected stream's seed without advancing it.
func (g *SequenceGenerator) Current() int64 {
	return g.table.Current()
}

// Next advances the selected stream and returns the new value in
// [1, modulus-1].
func (g *SequenceGenerator) Next() int64 {
	return g.table.Advance()
}

// NextNormalized advances the selected stream and returns the new value
// scaled into [0.0, 1.0).
func (g *SequenceGenerator) NextNormalized() float64 {
	return float64(g.table.Advance()) / float64(g.params.M)
}

// Normalize returns the selected stream's current value scaled into
// [0.0, 1.0) without advancing.
func (g *SequenceGenerator) Normalize() float64 {
	return g.table.Normalize()
}

// CurrentAt returns stream index's value without touching the shared
// selection cursor.
func (g *SequenceGenerator) CurrentAt(index int) int64 {
	return g.table.CurrentAt(index)
}

// NextAt advances stream index without touching the shared selection
// cursor. Distinct indices may be advanced concurrently; the same index
// must only ever be advanced by one goroutine at a time.
func (g *SequenceGenerator) NextAt(index int) int64 {
	return g.table.AdvanceAt(index)
}

// Produce yields exactly n successive values from the selected stream.
// The sequence is finite and consumes generator state: it is not
// restartable in place. Restart by constructing a fresh generator from
// the same Config.
func (g *SequenceGenerator) Produce(n int) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for i := 0; i < n; i++ {
			if !yield(g.table.Advance()) {
				return
			}
		}
	}
}

// ProduceNormalized yields exactly n successive normalized values from
// the selected stream.
func (g *SequenceGenerator) ProduceNormalized(n int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		m := float64(g.params.M)
		for i := 0; i < n; i++ {
			if !yield(float64(g.table.Advance()) / m) {
				return
			}
		}
	}
}

// Draw collects n successive values from the selected stream into a
// slice. Convenience over Produce for callers that need the whole batch.
func (g *SequenceGenerator) Draw(n int) []int64 {
	out := make([]int64, 0, n)
	for v := range g.Produce(n) {
		out = append(out, v)
	}
	return out
}

// DrawNormalized collects n successive normalized values from the
// selected stream into a slice.
func (g *SequenceGenerator) DrawNormalized(n int) []float64 {
	out := make([]float64, 0, n)
	for v := range g.ProduceNormalized(n) {
		out = append(out, v)
	}
	return out
}
