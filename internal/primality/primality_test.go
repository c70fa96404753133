package primality

import (
	"testing"

	"golehmer/domain/lehmer"
)

func TestIsPrime(t *testing.T) {
	tests := []struct {
		n    int64
		want bool
	}{
		{n: -7, want: false},
		{n: 0, want: false},
		{n: 1, want: false},
		{n: 2, want: true},
		{n: 31, want: true},
		{n: 16807, want: false}, // 7^5: the legacy multiplier is a prime power, not prime
		{n: 48271, want: true},
		{n: lehmer.DefaultModulus, want: true},
		{n: lehmer.Mersenne61, want: true},
		{n: lehmer.DefaultModulus + 2, want: false},
	}
	for _, tt := range tests {
		if got := IsPrime(tt.n); got != tt.want {
			t.Errorf("IsPrime(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestTrustedTables(t *testing.T) {
	for _, a := range TrustedMultipliers {
		if !IsTrustedMultiplier(a) {
			t.Errorf("multiplier %d should be trusted", a)
		}
	}
	for _, m := range TrustedModuli {
		if !IsTrustedModulus(m) {
			t.Errorf("modulus %d should be trusted", m)
		}
	}
	if IsTrustedMultiplier(22937) {
		t.Error("22937 is not in the trusted multiplier table")
	}
	if IsTrustedModulus(31) {
		t.Error("31 is not in the trusted modulus table")
	}
}

func TestValidatePair(t *testing.T) {
	tests := []struct {
		name       string
		m, a       int64
		usable     bool
		fullPeriod bool // only meaningful when the walk ran
	}{
		{
			name:       "toy primitive root",
			m:          31,
			a:          3,
			usable:     true,
			fullPeriod: true,
		},
		{
			name:   "toy non-primitive root", // 5^3 = 125 = 1 mod 31
			m:      31,
			a:      5,
			usable: false,
		},
		{
			name:   "minimal standard",
			m:      lehmer.DefaultModulus,
			a:      lehmer.DefaultMultiplier,
			usable: true,
		},
		{
			name:   "composite modulus",
			m:      33,
			a:      2,
			usable: false,
		},
		{
			name:   "schrage violation",
			m:      13,
			a:      5,
			usable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidatePair(tt.m, tt.a)
			if v.Usable() != tt.usable {
				t.Errorf("Usable() = %v, want %v (verdict %+v)", v.Usable(), tt.usable, v)
			}
			if v.FullPeriodChecked && v.FullPeriod != tt.fullPeriod && tt.usable {
				t.Errorf("FullPeriod = %v, want %v", v.FullPeriod, tt.fullPeriod)
			}
		})
	}
}

func TestValidatePairSkipsWalkForLargeModuli(t *testing.T) {
	v := ValidatePair(lehmer.DefaultModulus, lehmer.DefaultMultiplier)
	if v.FullPeriodChecked {
		t.Error("full-period walk should be skipped for 2^31-1")
	}
	if !v.Trusted {
		t.Error("minimal-standard pair should be trusted")
	}
}
