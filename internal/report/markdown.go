package report

import (
	"fmt"
	"strings"
	"time"

	"loadcmp/internal/metrics"
)

// Markdown renders the full comparison report: summary table, per-test
// breakdown for each system, and the winner analysis.
func (c *Comparison) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s vs %s Performance Comparison Report\n\n", c.SystemA, c.SystemB)
	fmt.Fprintf(&b, "Generated at: %s\n\n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Framework | Avg RPS | Avg Response Time (ms) | P95 (ms) | P99 (ms) |\n")
	b.WriteString("|-----------|---------|------------------------|----------|----------|\n")

	if avg, ok := Average(c.ResultsA); ok {
		writeSummaryRow(&b, c.SystemA, avg)
	}
	if avg, ok := Average(c.ResultsB); ok {
		writeSummaryRow(&b, c.SystemB, avg)
	}

	b.WriteString("\n## Detailed Results\n\n")
	writeDetails(&b, c.SystemA, c.ResultsA)
	writeDetails(&b, c.SystemB, c.ResultsB)

	b.WriteString("## Analysis\n\n")
	if w, ok := c.ThroughputWinner(); ok {
		fmt.Fprintf(&b, "🏆 **%s wins in throughput** by %.1f%% (%.2f vs %.2f req/s)\n\n",
			w.System, w.PercentDiff, w.WinnerValue, w.LoserValue)
	}
	if w, ok := c.LatencyWinner(); ok {
		fmt.Fprintf(&b, "⚡ **%s wins in response time** by %.1f%% (%.2fms vs %.2fms)\n\n",
			w.System, w.PercentDiff, w.WinnerValue, w.LoserValue)
	}

	return b.String()
}

func writeSummaryRow(b *strings.Builder, system string, avg metrics.Result) {
	fmt.Fprintf(b, "| %s | %.2f | %.2f | %.2f | %.2f |\n",
		system,
		avg.RequestsPerSecond,
		avg.AverageResponseTimeMs,
		avg.P95ResponseTimeMs,
		avg.P99ResponseTimeMs)
}

func writeDetails(b *strings.Builder, system string, results []metrics.Result) {
	if len(results) == 0 {
		return
	}

	fmt.Fprintf(b, "### %s Results\n\n", system)
	for _, r := range results {
		fmt.Fprintf(b, "**%s**\n", r.TestName)
		fmt.Fprintf(b, "- Requests/sec: %.2f\n", r.RequestsPerSecond)
		fmt.Fprintf(b, "- Avg response time: %.2fms\n", r.AverageResponseTimeMs)
		fmt.Fprintf(b, "- P95 response time: %.2fms\n", r.P95ResponseTimeMs)
		fmt.Fprintf(b, "- P99 response time: %.2fms\n", r.P99ResponseTimeMs)
		b.WriteString("\n")
	}
}
