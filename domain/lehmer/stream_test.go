package lehmer

import (
	"testing"

	"golehmer/domain/core"
)

func mustParams(t *testing.T, m, a int64) ParameterSet {
	t.Helper()
	ps, err := NewParameterSet(m, a)
	if err != nil {
		t.Fatalf("NewParameterSet(%d, %d): %v", m, a, err)
	}
	return ps
}

func TestNewStreamCoercion(t *testing.T) {
	ps := mustParams(t, DefaultModulus, DefaultMultiplier)

	tests := []struct {
		name    string
		seed    int64
		want    int64
		wantErr bool
	}{
		{name: "in range", seed: 123456789, want: 123456789},
		{name: "above modulus", seed: DefaultModulus + 5, want: 5},
		{name: "negative", seed: -3, want: DefaultModulus - 3},
		{name: "zero rejected", seed: 0, wantErr: true},
		{name: "multiple of modulus rejected", seed: 2 * DefaultModulus, wantErr: true},
		{name: "negative multiple of modulus rejected", seed: -DefaultModulus, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStream(tt.seed, ps)
			if tt.wantErr {
				if !core.IsSeedError(err) {
					t.Fatalf("expected seed error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Seed() != tt.want {
				t.Errorf("coerced seed = %d, want %d", s.Seed(), tt.want)
			}
		})
	}
}

func TestStreamTableReplicatedPolicy(t *testing.T) {
	ps := mustParams(t, DefaultModulus, DefaultMultiplier)
	table, err := NewStreamTable(4, DefaultSeed, PolicyReplicated, DefaultJumpExp, ps)
	if err != nil {
		t.Fatalf("NewStreamTable: %v", err)
	}
	for i, seed := range table.Seeds() {
		if seed != DefaultSeed {
			t.Errorf("stream %d seed = %d, want %d", i, seed, DefaultSeed)
		}
	}
}

func TestStreamTableLeapfroggedPolicy(t *testing.T) {
	const k = 4 // 16-step spacing keeps the reference walk cheap
	ps := mustParams(t, DefaultModulus, DefaultMultiplier)
	table, err := NewStreamTable(3, DefaultSeed, PolicyLeapfrogged, k, ps)
	if err != nil {
		t.Fatalf("NewStreamTable: %v", err)
	}

	seeds := table.Seeds()
	if seeds[0] != DefaultSeed {
		t.Fatalf("stream 0 seed = %d, want %d", seeds[0], DefaultSeed)
	}

	// Each stream must sit exactly 2^k steps past its predecessor.
	for i := 1; i < len(seeds); i++ {
		z := seeds[i-1]
		for s := 0; s < 1<<k; s++ {
			z = ps.Step(z)
		}
		if seeds[i] != z {
			t.Errorf("stream %d seed = %d, want %d (2^%d steps past stream %d)", i, seeds[i], z, k, i-1)
		}
	}

	// Distinct starting points, unlike the replicated policy.
	if seeds[0] == seeds[1] || seeds[1] == seeds[2] {
		t.Errorf("leapfrogged seeds collide: %v", seeds)
	}
}

func TestStreamTableCoercesCount(t *testing.T) {
	ps := mustParams(t, DefaultModulus, DefaultMultiplier)
	for _, count := range []int{0, -5} {
		table, err := NewStreamTable(count, DefaultSeed, PolicyLeapfrogged, DefaultJumpExp, ps)
		if err != nil {
			t.Fatalf("NewStreamTable(%d): %v", count, err)
		}
		if table.Len() != 1 {
			t.Errorf("count %d coerced to %d streams, want 1", count, table.Len())
		}
	}
}

func TestStreamTableRejectsUnknownPolicy(t *testing.T) {
	ps := mustParams(t, DefaultModulus, DefaultMultiplier)
	_, err := NewStreamTable(2, DefaultSeed, SeedingPolicy("shuffled"), DefaultJumpExp, ps)
	if !core.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestSelectWrapsForAllIntegers(t *testing.T) {
	ps := mustParams(t, DefaultModulus, DefaultMultiplier)
	for _, count := range []int{1, 2, 5} {
		table, err := NewStreamTable(count, DefaultSeed, PolicyLeapfrogged, DefaultJumpExp, ps)
		if err != nil {
			t.Fatalf("NewStreamTable: %v", err)
		}
		for k := -2*count - 1; k <= 2*count+1; k++ {
			table.Select(k)
			first := table.Selected()
			table.Select(k + count)
			if table.Selected() != first {
				t.Errorf("count=%d: Select(%d)=%d but Select(%d)=%d", count, k, first, k+count, table.Selected())
			}
			if first < 0 || first >= count {
				t.Errorf("count=%d: Select(%d) left cursor out of range: %d", count, k, first)
			}
		}
	}
}

func TestAdvanceCrossStreamIsolation(t *testing.T) {
	ps := mustParams(t, DefaultModulus, DefaultMultiplier)
	table, err := NewStreamTable(3, DefaultSeed, PolicyLeapfrogged, DefaultJumpExp, ps)
	if err != nil {
		t.Fatalf("NewStreamTable: %v", err)
	}

	before := table.Seeds()
	table.Select(1)
	for i := 0; i < 100; i++ {
		table.Advance()
	}
	after := table.Seeds()

	if after[1] == before[1] {
		t.Error("advanced stream did not move")
	}
	for _, j := range []int{0, 2} {
		if after[j] != before[j] {
			t.Errorf("stream %d changed from %d to %d while only stream 1 advanced", j, before[j], after[j])
		}
	}
}

func TestNormalizeRangeInvariant(t *testing.T) {
	ps := mustParams(t, DefaultModulus, DefaultMultiplier)
	table, err := NewStreamTable(1, 1, PolicyLeapfrogged, DefaultJumpExp, ps)
	if err != nil {
		t.Fatalf("NewStreamTable: %v", err)
	}
	for i := 0; i < 1000; i++ {
		v := table.Normalize()
		if v <= 0.0 || v >= 1.0 {
			t.Fatalf("step %d: normalize() = %v, want (0.0, 1.0)", i, v)
		}
		table.Advance()
	}
}

func TestParseSeedingPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    SeedingPolicy
		wantErr bool
	}{
		{in: "replicated", want: PolicyReplicated},
		{in: "leapfrogged", want: PolicyLeapfrogged},
		{in: "", want: PolicyLeapfrogged},
		{in: "shuffled", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseSeedingPolicy(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSeedingPolicy(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSeedingPolicy(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSeedingPolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
