package report

import (
	"encoding/json"
	"time"

	"loadcmp/internal/metrics"
)

// Comparison is a stateless view over two systems' result sets. It
// holds finished Result snapshots only, never raw samples.
type Comparison struct {
	SystemA  string
	SystemB  string
	ResultsA []metrics.Result
	ResultsB []metrics.Result
}

func NewComparison(systemA, systemB string) *Comparison {
	return &Comparison{SystemA: systemA, SystemB: systemB}
}

func (c *Comparison) AddA(r metrics.Result) {
	c.ResultsA = append(c.ResultsA, r)
}

func (c *Comparison) AddB(r metrics.Result) {
	c.ResultsB = append(c.ResultsB, r)
}

// Average computes the arithmetic mean of every numeric metric across
// results. ok is false for an empty list.
func Average(results []metrics.Result) (avg metrics.Result, ok bool) {
	if len(results) == 0 {
		return metrics.Result{}, false
	}

	n := float64(len(results))
	avg = metrics.Result{
		Framework: results[0].Framework,
		TestName:  "Average",
		Timestamp: time.Now().UTC(),
	}
	for _, r := range results {
		avg.RequestsPerSecond += r.RequestsPerSecond
		avg.AverageResponseTimeMs += r.AverageResponseTimeMs
		avg.P95ResponseTimeMs += r.P95ResponseTimeMs
		avg.P99ResponseTimeMs += r.P99ResponseTimeMs
		avg.MemoryUsageMB += r.MemoryUsageMB
		avg.CPUUsagePercent += r.CPUUsagePercent
	}
	avg.RequestsPerSecond /= n
	avg.AverageResponseTimeMs /= n
	avg.P95ResponseTimeMs /= n
	avg.P99ResponseTimeMs /= n
	avg.MemoryUsageMB /= n
	avg.CPUUsagePercent /= n

	return avg, true
}

// Winner names the system that won a metric and by how much, as a
// percentage relative to the loser.
type Winner struct {
	System      string
	PercentDiff float64
	WinnerValue float64
	LoserValue  float64
}

// ThroughputWinner declares the higher mean RPS the winner. ok is
// false unless both sides have results.
func (c *Comparison) ThroughputWinner() (Winner, bool) {
	avgA, okA := Average(c.ResultsA)
	avgB, okB := Average(c.ResultsB)
	if !okA || !okB {
		return Winner{}, false
	}

	if avgA.RequestsPerSecond > avgB.RequestsPerSecond {
		return Winner{
			System:      c.SystemA,
			PercentDiff: pctDiff(avgA.RequestsPerSecond, avgB.RequestsPerSecond),
			WinnerValue: avgA.RequestsPerSecond,
			LoserValue:  avgB.RequestsPerSecond,
		}, true
	}
	return Winner{
		System:      c.SystemB,
		PercentDiff: pctDiff(avgB.RequestsPerSecond, avgA.RequestsPerSecond),
		WinnerValue: avgB.RequestsPerSecond,
		LoserValue:  avgA.RequestsPerSecond,
	}, true
}

// LatencyWinner declares the lower mean average response time the winner.
func (c *Comparison) LatencyWinner() (Winner, bool) {
	avgA, okA := Average(c.ResultsA)
	avgB, okB := Average(c.ResultsB)
	if !okA || !okB {
		return Winner{}, false
	}

	if avgA.AverageResponseTimeMs < avgB.AverageResponseTimeMs {
		return Winner{
			System:      c.SystemA,
			PercentDiff: pctDiff(avgA.AverageResponseTimeMs, avgB.AverageResponseTimeMs),
			WinnerValue: avgA.AverageResponseTimeMs,
			LoserValue:  avgB.AverageResponseTimeMs,
		}, true
	}
	return Winner{
		System:      c.SystemB,
		PercentDiff: pctDiff(avgB.AverageResponseTimeMs, avgA.AverageResponseTimeMs),
		WinnerValue: avgB.AverageResponseTimeMs,
		LoserValue:  avgA.AverageResponseTimeMs,
	}, true
}

// pctDiff is the winner's margin as a percentage of the loser's value,
// whichever direction the metric improves in.
func pctDiff(winner, loser float64) float64 {
	if loser == 0 {
		return 0
	}
	d := (winner - loser) / loser * 100
	if d < 0 {
		d = -d
	}
	return d
}

// JSON renders the comparison as a machine-readable document.
func (c *Comparison) JSON() ([]byte, error) {
	doc := struct {
		SystemA     string           `json:"system_a"`
		SystemB     string           `json:"system_b"`
		ResultsA    []metrics.Result `json:"system_a_results"`
		ResultsB    []metrics.Result `json:"system_b_results"`
		GeneratedAt time.Time        `json:"generated_at"`
	}{
		SystemA:     c.SystemA,
		SystemB:     c.SystemB,
		ResultsA:    c.ResultsA,
		ResultsB:    c.ResultsB,
		GeneratedAt: time.Now().UTC(),
	}
	return json.MarshalIndent(doc, "", "  ")
}
