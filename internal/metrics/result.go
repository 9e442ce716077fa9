package metrics

import (
	"time"
)

// Result is the JSON-serializable snapshot of one finished test
// scenario. Created once from a finalized Aggregate, never mutated.
type Result struct {
	Framework             string    `json:"framework"`
	TestName              string    `json:"test_name"`
	RequestsPerSecond     float64   `json:"requests_per_second"`
	AverageResponseTimeMs float64   `json:"average_response_time_ms"`
	P95ResponseTimeMs     float64   `json:"p95_response_time_ms"`
	P99ResponseTimeMs     float64   `json:"p99_response_time_ms"`
	MemoryUsageMB         float64   `json:"memory_usage_mb"`
	CPUUsagePercent       float64   `json:"cpu_usage_percent"`
	Timestamp             time.Time `json:"timestamp"`
}
