// Package stats assesses generator output against the uniform
// distribution: summary statistics, a chi-squared test over
// equiprobable bins, and the largest empirical-CDF deviation.
package stats

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"golehmer/ports"
)

// QualityBattery implements ports.QualityPort.
type QualityBattery struct {
	bins  int
	alpha float64
}

// NewQualityBattery creates a battery with the default 64 bins and a
// 0.01 significance level.
func NewQualityBattery() *QualityBattery {
	return &QualityBattery{bins: 64, alpha: 0.01}
}

// SetBins configures the chi-squared bin count (8-1024).
func (b *QualityBattery) SetBins(n int) {
	if n < 8 {
		n = 8
	}
	if n > 1024 {
		n = 1024
	}
	b.bins = n
}

// Assess computes a quality report for a batch of normalized samples.
// Samples must lie in [0.0, 1.0); anything outside is invalid input.
func (b *QualityBattery) Assess(ctx context.Context, samples []float64) (*ports.QualityReport, error) {
	if len(samples) < b.bins {
		return nil, fmt.Errorf("need at least %d samples for %d bins, got %d", b.bins, b.bins, len(samples))
	}

	report := &ports.QualityReport{
		Samples: len(samples),
		Bins:    b.bins,
	}

	mean, err := stats.Mean(samples)
	if err != nil {
		return nil, fmt.Errorf("computing mean: %w", err)
	}
	stdDev, err := stats.StandardDeviation(samples)
	if err != nil {
		return nil, fmt.Errorf("computing stddev: %w", err)
	}
	min, err := stats.Min(samples)
	if err != nil {
		return nil, fmt.Errorf("computing min: %w", err)
	}
	max, err := stats.Max(samples)
	if err != nil {
		return nil, fmt.Errorf("computing max: %w", err)
	}
	median, err := stats.Median(samples)
	if err != nil {
		return nil, fmt.Errorf("computing median: %w", err)
	}
	report.Mean = mean
	report.StdDev = stdDev
	report.Min = min
	report.Max = max
	report.Median = median

	if min < 0.0 || max >= 1.0 {
		return nil, fmt.Errorf("samples outside [0.0, 1.0): min=%v max=%v", min, max)
	}

	report.ChiSquare, report.ChiSquareDF, report.ChiSquarePValue = b.chiSquared(samples)
	report.MaxDeviation = maxCDFDeviation(samples)
	report.Uniform = report.ChiSquarePValue > b.alpha

	return report, nil
}

// chiSquared bins the samples into equiprobable cells and compares
// observed counts against the flat expectation.
func (b *QualityBattery) chiSquared(samples []float64) (statistic float64, df int, pValue float64) {
	observed := make([]float64, b.bins)
	for _, v := range samples {
		idx := int(v * float64(b.bins))
		if idx >= b.bins { // guard against rounding at the upper edge
			idx = b.bins - 1
		}
		observed[idx]++
	}

	expected := float64(len(samples)) / float64(b.bins)
	for _, o := range observed {
		d := o - expected
		statistic += d * d / expected
	}

	df = b.bins - 1
	chi := distuv.ChiSquared{K: float64(df)}
	pValue = 1.0 - chi.CDF(statistic)
	return statistic, df, pValue
}

// maxCDFDeviation returns sup |F_n(x) - x| over the sorted samples, the
// Kolmogorov-Smirnov statistic against U(0,1).
func maxCDFDeviation(samples []float64) float64 {
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	maxDev := 0.0
	for i, x := range sorted {
		upper := math.Abs(float64(i+1)/n - x)
		lower := math.Abs(x - float64(i)/n)
		if upper > maxDev {
			maxDev = upper
		}
		if lower > maxDev {
			maxDev = lower
		}
	}
	return maxDev
}

// Ensure QualityBattery implements QualityPort
var _ ports.QualityPort = (*QualityBattery)(nil)
