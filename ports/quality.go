package ports

import (
	"context"
)

// QualityReport summarizes how closely a batch of normalized generator
// output resembles U(0,1).
type QualityReport struct {
	Samples int

	// Summary statistics
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64

	// Chi-squared uniformity test over equiprobable bins
	Bins            int
	ChiSquare       float64
	ChiSquareDF     int
	ChiSquarePValue float64

	// Largest absolute deviation between the empirical CDF and U(0,1)
	MaxDeviation float64

	// Uniform is the verdict at the battery's significance level
	Uniform bool
}

// QualityPort assesses generator output against the uniform distribution
type QualityPort interface {
	// Assess computes a quality report for a batch of normalized samples
	Assess(ctx context.Context, samples []float64) (*QualityReport, error)
}

// ExporterPort writes a sample batch and its quality report to an
// external artifact (a workbook, for the CLI's export command)
type ExporterPort interface {
	// ExportSamples writes values with their normalized forms and the
	// report to path
	ExportSamples(ctx context.Context, path string, values []int64, modulus int64, report *QualityReport) error
}
