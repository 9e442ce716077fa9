package stats

import (
	"sync/atomic"
	"time"
)

// Stats holds the live counters workers bump while a run is in flight.
// They exist only to feed progress output; the authoritative numbers
// come from the merged sample aggregate after the join barrier.
type Stats struct {
	Requests uint64
	Success  uint64
	Fail     uint64
	Bytes    uint64

	// Service-time histogram in microseconds
	ServiceTime *SafeHistogram
}

func New() *Stats {
	return &Stats{
		ServiceTime: NewSafeHistogram(),
	}
}

// Observe records one finished request.
func (s *Stats) Observe(success bool, bytes int64, serviceTime time.Duration) {
	atomic.AddUint64(&s.Requests, 1)
	if success {
		atomic.AddUint64(&s.Success, 1)
	} else {
		atomic.AddUint64(&s.Fail, 1)
	}
	if bytes > 0 {
		atomic.AddUint64(&s.Bytes, uint64(bytes))
	}

	s.ServiceTime.RecordValue(serviceTime.Microseconds())
}

func (s *Stats) ErrorRate() float64 {
	reqs := atomic.LoadUint64(&s.Requests)
	if reqs == 0 {
		return 0
	}
	fails := atomic.LoadUint64(&s.Fail)
	return (float64(fails) / float64(reqs)) * 100
}

// PercentileMs returns the live service-time percentile in milliseconds.
func (s *Stats) PercentileMs(q float64) float64 {
	return float64(s.ServiceTime.ValueAtQuantile(q)) / 1000.0
}

func (s *Stats) AvgMs() float64 {
	return s.ServiceTime.Mean() / 1000.0
}

func (s *Stats) MaxMs() int64 {
	return s.ServiceTime.Max() / 1000
}
