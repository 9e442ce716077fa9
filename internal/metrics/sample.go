package metrics

import (
	"time"
)

// Sample records the outcome of a single request attempt.
// Status 0 means the request never produced an HTTP response
// (connection refused, DNS failure, timeout).
type Sample struct {
	Start    time.Time
	End      time.Time
	Status   int
	Bytes    int64
	Endpoint string
	Success  bool
}

func (s Sample) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// DurationMs returns the request duration in milliseconds.
func (s Sample) DurationMs() float64 {
	return float64(s.End.Sub(s.Start)) / float64(time.Millisecond)
}
