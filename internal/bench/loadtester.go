package bench

import (
	"context"
	"crypto/tls"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"loadcmp/internal/metrics"
	"loadcmp/internal/stats"
)

// Snapshot is pushed over the updates channel while a run is live.
// Percentiles are pre-computed so the UI never touches the histogram.
type Snapshot struct {
	Requests uint64
	Success  uint64
	Fail     uint64
	Bytes    uint64

	AvgMs float64
	P50Ms float64
	P90Ms float64
	P99Ms float64
	MaxMs int64
}

type UpdateChan chan Snapshot

// LoadTester drives one benchmark run: it forks the configured number
// of virtual users, joins them all, and merges their private sample
// slices into a single aggregate. The HTTP client is built once and
// shared read-only by every user.
type LoadTester struct {
	cfg    Config
	client *http.Client
	tmpl   *TemplateEngine

	Live    *stats.Stats
	Updates UpdateChan

	// beforeRequest, when set, runs in the worker goroutine before every
	// request. Tests use it to inject worker failures.
	beforeRequest func(userIdx int)
}

func New(cfg Config) (*LoadTester, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.TimeoutSec <= 0 {
		cfg.TimeoutSec = DefaultTimeoutSec
	}

	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 2000
	t.MaxConnsPerHost = 2000
	t.MaxIdleConnsPerHost = 2000
	t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}

	return &LoadTester{
		cfg: cfg,
		client: &http.Client{
			Timeout:   time.Duration(cfg.TimeoutSec) * time.Second,
			Transport: t,
		},
		tmpl:    NewTemplateEngine(),
		Live:    stats.New(),
		Updates: make(UpdateChan, 100),
	}, nil
}

func (lt *LoadTester) Config() Config {
	return lt.cfg
}

// TotalDuration is ramp-up plus steady state, the wall clock a full
// run is expected to take.
func (lt *LoadTester) TotalDuration() time.Duration {
	return time.Duration(lt.cfg.RampUpSec+lt.cfg.DurationSec) * time.Second
}

// Run executes the benchmark and returns the finalized aggregate
// tagged with label. It always returns a usable aggregate, even when
// every request failed; bad configurations are caught earlier in New.
func (lt *LoadTester) Run(ctx context.Context, label string) *metrics.Aggregate {
	agg := metrics.NewAggregate(label)

	tickCtx, stopTick := context.WithCancel(ctx)
	defer stopTick()
	lt.startTickLoop(tickCtx, 200*time.Millisecond)

	// One private slice per user; nothing is shared until the join.
	perUser := make([][]metrics.Sample, lt.cfg.Users)

	var wg sync.WaitGroup
	for i := 0; i < lt.cfg.Users; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() {
				// A broken user must not take down its siblings. Its
				// partial samples are already in perUser[idx].
				if r := recover(); r != nil {
					fmt.Fprintf(os.Stderr, "user %d failed: %v\n", idx, r)
				}
			}()

			sel := NewSelector(rand.NewSource(time.Now().UnixNano() + int64(idx)))
			lt.user(ctx, idx, sel, &perUser[idx])
		}(i)
	}
	wg.Wait()

	// Single merge point, after the join barrier.
	for _, samples := range perUser {
		for _, s := range samples {
			agg.Add(s)
		}
	}
	agg.Finalize()

	return agg
}

// startTickLoop pushes live snapshots until ctx is cancelled.
func (lt *LoadTester) startTickLoop(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				lt.sendUpdate()
			}
		}
	}()
}

func (lt *LoadTester) sendUpdate() {
	s := Snapshot{
		Requests: atomic.LoadUint64(&lt.Live.Requests),
		Success:  atomic.LoadUint64(&lt.Live.Success),
		Fail:     atomic.LoadUint64(&lt.Live.Fail),
		Bytes:    atomic.LoadUint64(&lt.Live.Bytes),
		AvgMs:    lt.Live.AvgMs(),
		P50Ms:    lt.Live.PercentileMs(50),
		P90Ms:    lt.Live.PercentileMs(90),
		P99Ms:    lt.Live.PercentileMs(99),
		MaxMs:    lt.Live.MaxMs(),
	}

	// Non-blocking send; a slow UI just misses a frame.
	select {
	case lt.Updates <- s:
	default:
	}
}
