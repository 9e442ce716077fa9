package report

import (
	"time"

	"loadcmp/internal/metrics"
)

// SampleComparison returns a canned comparison so the report command
// still produces output when the history store is empty.
func SampleComparison() *Comparison {
	now := time.Now().UTC()
	c := NewComparison("AXUM", "LOCO")

	c.AddA(metrics.Result{
		Framework:             "AXUM",
		TestName:              "Health Check",
		RequestsPerSecond:     15420.5,
		AverageResponseTimeMs: 6.2,
		P95ResponseTimeMs:     12.8,
		P99ResponseTimeMs:     25.4,
		MemoryUsageMB:         45.2,
		CPUUsagePercent:       12.3,
		Timestamp:             now,
	})
	c.AddA(metrics.Result{
		Framework:             "AXUM",
		TestName:              "REST API",
		RequestsPerSecond:     8750.3,
		AverageResponseTimeMs: 11.4,
		P95ResponseTimeMs:     28.6,
		P99ResponseTimeMs:     45.2,
		MemoryUsageMB:         52.1,
		CPUUsagePercent:       18.7,
		Timestamp:             now,
	})

	c.AddB(metrics.Result{
		Framework:             "LOCO",
		TestName:              "Health Check",
		RequestsPerSecond:     14850.2,
		AverageResponseTimeMs: 6.7,
		P95ResponseTimeMs:     13.5,
		P99ResponseTimeMs:     27.1,
		MemoryUsageMB:         42.8,
		CPUUsagePercent:       10.5,
		Timestamp:             now,
	})
	c.AddB(metrics.Result{
		Framework:             "LOCO",
		TestName:              "REST API",
		RequestsPerSecond:     8420.7,
		AverageResponseTimeMs: 11.9,
		P95ResponseTimeMs:     30.2,
		P99ResponseTimeMs:     48.6,
		MemoryUsageMB:         48.5,
		CPUUsagePercent:       16.2,
		Timestamp:             now,
	})

	return c
}
