// Command primecheck validates candidate (modulus, multiplier) pairs
// offline: primality, the Schrage precondition, the trusted tables, and
// an exhaustive full-period walk for small moduli.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"golehmer/domain/lehmer"
	"golehmer/internal/primality"
)

func main() {
	trusted := flag.Bool("trusted", false, "also print verdicts for the trusted parameter tables")
	flag.Parse()

	pairs := flag.Args()
	if len(pairs) == 0 && !*trusted {
		fmt.Fprintln(os.Stderr, "Usage: primecheck [-trusted] <modulus:multiplier> ...")
		fmt.Fprintln(os.Stderr, "Example: primecheck 2147483647:48271 31:3")
		os.Exit(2)
	}

	failed := false
	for _, arg := range pairs {
		m, a, err := parsePair(arg)
		if err != nil {
			log.Fatalf("Invalid pair %q: %v", arg, err)
		}
		if !printVerdict(primality.ValidatePair(m, a)) {
			failed = true
		}
	}

	if *trusted {
		for _, m := range primality.TrustedModuli {
			for _, a := range primality.TrustedMultipliers {
				if !printVerdict(primality.ValidatePair(m, a)) {
					failed = true
				}
			}
		}
	}

	if failed {
		os.Exit(1)
	}
}

func parsePair(s string) (m, a int64, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want modulus:multiplier")
	}
	m, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("modulus: %w", err)
	}
	a, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("multiplier: %w", err)
	}
	return m, a, nil
}

func printVerdict(v primality.Verdict) bool {
	status := "USABLE"
	if !v.Usable() {
		status = "REJECTED"
	}

	fmt.Printf("m=%d a=%d: %s\n", v.Modulus, v.Multiplier, status)
	fmt.Printf("  modulus prime:     %v\n", v.ModulusPrime)
	fmt.Printf("  multiplier prime:  %v\n", v.MultiplierPrime)
	fmt.Printf("  trusted pair:      %v\n", v.Trusted)
	fmt.Printf("  schrage valid:     %v\n", v.SchrageValid)
	if v.FullPeriodChecked {
		fmt.Printf("  full period:       %v (walked %d steps)\n", v.FullPeriod, v.Modulus-1)
	} else {
		fmt.Printf("  full period:       not checked (modulus too large to walk)\n")
	}
	if v.Err != nil {
		fmt.Printf("  error:             %v\n", v.Err)
	}
	if v.Modulus == lehmer.DefaultModulus && !v.Usable() {
		fmt.Printf("  note: rejected despite the minimal-standard modulus; check the multiplier\n")
	}
	return v.Usable()
}
