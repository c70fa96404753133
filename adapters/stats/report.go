package stats

import (
	"fmt"
	"strings"

	"golehmer/ports"
)

// BuildMarkdown renders a quality report as a markdown document. The API
// serves this rendered to HTML; the CLI prints it as-is.
func BuildMarkdown(record ports.RunRecord, report *ports.QualityReport) string {
	var b strings.Builder

	verdict := "PASS"
	if !report.Uniform {
		verdict = "FAIL"
	}

	fmt.Fprintf(&b, "# Output quality report for run %s\n\n", record.ID)
	fmt.Fprintf(&b, "Configuration: m=%d, a=%d, seed=%d, streams=%d, policy=%s, stream=%d\n\n",
		record.Modulus, record.Multiplier, record.Seed, record.StreamCount, record.Policy, record.StreamIndex)

	fmt.Fprintf(&b, "## Summary (%d samples)\n\n", report.Samples)
	fmt.Fprintf(&b, "| Statistic | Value | Uniform expectation |\n")
	fmt.Fprintf(&b, "|---|---|---|\n")
	fmt.Fprintf(&b, "| Mean | %.6f | 0.500000 |\n", report.Mean)
	fmt.Fprintf(&b, "| Std dev | %.6f | 0.288675 |\n", report.StdDev)
	fmt.Fprintf(&b, "| Median | %.6f | 0.500000 |\n", report.Median)
	fmt.Fprintf(&b, "| Min | %.6f | near 0 |\n", report.Min)
	fmt.Fprintf(&b, "| Max | %.6f | near 1 |\n", report.Max)

	fmt.Fprintf(&b, "\n## Uniformity\n\n")
	fmt.Fprintf(&b, "- Chi-squared: %.2f on %d degrees of freedom (%d bins), p = %.4f\n",
		report.ChiSquare, report.ChiSquareDF, report.Bins, report.ChiSquarePValue)
	fmt.Fprintf(&b, "- Max CDF deviation: %.6f\n", report.MaxDeviation)
	fmt.Fprintf(&b, "- Verdict: **%s**\n", verdict)

	return b.String()
}
