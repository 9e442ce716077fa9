package report

import (
	"fmt"
	"strings"
	"time"

	"loadcmp/internal/metrics"
)

// HTML renders a standalone page with the same summary and analysis as
// the markdown report.
func (c *Comparison) HTML() string {
	var rows strings.Builder
	if avg, ok := Average(c.ResultsA); ok {
		rows.WriteString(htmlRow(c.SystemA, avg))
	}
	if avg, ok := Average(c.ResultsB); ok {
		rows.WriteString(htmlRow(c.SystemB, avg))
	}

	var analysis strings.Builder
	if w, ok := c.ThroughputWinner(); ok {
		fmt.Fprintf(&analysis,
			"    <p>🏆 <strong>%s wins in throughput</strong> by %.1f%% (%.2f vs %.2f req/s)</p>\n",
			w.System, w.PercentDiff, w.WinnerValue, w.LoserValue)
	}
	if w, ok := c.LatencyWinner(); ok {
		fmt.Fprintf(&analysis,
			"    <p>⚡ <strong>%s wins in response time</strong> by %.1f%% (%.2fms vs %.2fms)</p>\n",
			w.System, w.PercentDiff, w.WinnerValue, w.LoserValue)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>%[1]s vs %[2]s Performance Comparison</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        table { border-collapse: collapse; width: 100%%; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; }
        .winner { background-color: #d4edda; }
    </style>
</head>
<body>
    <h1>%[1]s vs %[2]s Performance Comparison</h1>
    <p>Generated at: %[3]s</p>

    <h2>Summary</h2>
    <table>
        <tr>
            <th>Framework</th>
            <th>Avg RPS</th>
            <th>Avg Response Time (ms)</th>
            <th>P95 (ms)</th>
            <th>P99 (ms)</th>
        </tr>
%[4]s    </table>

    <h2>Analysis</h2>
%[5]s</body>
</html>`,
		c.SystemA,
		c.SystemB,
		time.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
		rows.String(),
		analysis.String())
}

func htmlRow(system string, avg metrics.Result) string {
	return fmt.Sprintf("        <tr><td>%s</td><td>%.2f</td><td>%.2f</td><td>%.2f</td><td>%.2f</td></tr>\n",
		system,
		avg.RequestsPerSecond,
		avg.AverageResponseTimeMs,
		avg.P95ResponseTimeMs,
		avg.P99ResponseTimeMs)
}
