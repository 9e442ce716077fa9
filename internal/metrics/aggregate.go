package metrics

import (
	"fmt"
	"sort"
	"time"
)

// Aggregate accumulates every sample of one benchmark run.
// It has a single writer (the load tester's merge loop, after all
// workers have joined), so it needs no locking. Once Finalize is
// called it is read-only and its derived stats are stable.
type Aggregate struct {
	Label string    `json:"label"`
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`

	TotalRequests      uint64            `json:"total_requests"`
	SuccessfulRequests uint64            `json:"successful_requests"`
	FailedRequests     uint64            `json:"failed_requests"`
	TotalBytes         uint64            `json:"total_bytes_received"`
	ErrorCounts        map[string]uint64 `json:"error_counts"`

	Samples []Sample `json:"-"`
}

func NewAggregate(label string) *Aggregate {
	now := time.Now()
	return &Aggregate{
		Label:       label,
		Start:       now,
		End:         now,
		ErrorCounts: make(map[string]uint64),
	}
}

// Add folds one sample into the running totals. Failures are counted
// under "HTTP_<status>" (so "HTTP_0" for transport errors).
func (a *Aggregate) Add(s Sample) {
	a.TotalRequests++
	if s.Bytes > 0 {
		a.TotalBytes += uint64(s.Bytes)
	}

	if s.Success {
		a.SuccessfulRequests++
	} else {
		a.FailedRequests++
		a.ErrorCounts[fmt.Sprintf("HTTP_%d", s.Status)]++
	}

	a.Samples = append(a.Samples, s)
}

// Finalize stamps the end of the run. No samples may be added after this.
func (a *Aggregate) Finalize() {
	a.End = time.Now()
}

func (a *Aggregate) DurationSeconds() float64 {
	return a.End.Sub(a.Start).Seconds()
}

func (a *Aggregate) RequestsPerSecond() float64 {
	d := a.DurationSeconds()
	if a.TotalRequests == 0 || d <= 0 {
		return 0
	}
	return float64(a.TotalRequests) / d
}

func (a *Aggregate) AverageResponseTimeMs() float64 {
	if len(a.Samples) == 0 {
		return 0
	}

	total := 0.0
	for _, s := range a.Samples {
		total += s.DurationMs()
	}
	return total / float64(len(a.Samples))
}

// PercentileResponseTimeMs returns the nearest-rank percentile of all
// sample durations: sort ascending, index floor(p/100*n) clamped to the
// valid range. No interpolation.
func (a *Aggregate) PercentileResponseTimeMs(percentile float64) float64 {
	if len(a.Samples) == 0 {
		return 0
	}

	durations := make([]float64, len(a.Samples))
	for i, s := range a.Samples {
		durations[i] = s.DurationMs()
	}
	sort.Float64s(durations)

	idx := int((percentile / 100.0) * float64(len(durations)))
	if idx < 0 {
		idx = 0
	}
	if idx > len(durations)-1 {
		idx = len(durations) - 1
	}

	return durations[idx]
}

func (a *Aggregate) SuccessRate() float64 {
	if a.TotalRequests == 0 {
		return 0
	}
	return float64(a.SuccessfulRequests) / float64(a.TotalRequests) * 100
}

func (a *Aggregate) ThroughputMBPerSecond() float64 {
	d := a.DurationSeconds()
	if a.TotalRequests == 0 || d <= 0 {
		return 0
	}
	mb := float64(a.TotalBytes) / (1024 * 1024)
	return mb / d
}

// Result snapshots the finalized aggregate into the DTO used for
// reporting and storage. Memory/CPU need external monitoring and stay 0.
func (a *Aggregate) Result(testName string) Result {
	return Result{
		Framework:             a.Label,
		TestName:              testName,
		RequestsPerSecond:     a.RequestsPerSecond(),
		AverageResponseTimeMs: a.AverageResponseTimeMs(),
		P95ResponseTimeMs:     a.PercentileResponseTimeMs(95),
		P99ResponseTimeMs:     a.PercentileResponseTimeMs(99),
		Timestamp:             time.Now().UTC(),
	}
}
