package bench

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Endpoints = nil

	_, err := New(cfg)
	if err == nil {
		t.Fatal("expected configuration error before any worker starts")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error %v is not ErrInvalidConfig", err)
	}
}

func TestRunHealthScenario(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Millisecond)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	cfg := Config{
		TargetURL:   srv.URL,
		Users:       5,
		DurationSec: 2,
		RampUpSec:   0,
		TimeoutSec:  5,
		Endpoints:   []Endpoint{{Path: "/health", Method: "GET", Weight: 1.0}},
	}

	lt, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	agg := lt.Run(context.Background(), "test")

	if agg.TotalRequests == 0 {
		t.Fatal("no requests recorded")
	}
	if agg.SuccessRate() != 100.0 {
		t.Errorf("success rate = %.1f, want 100", agg.SuccessRate())
	}
	if agg.SuccessfulRequests+agg.FailedRequests != agg.TotalRequests {
		t.Errorf("success %d + failed %d != total %d",
			agg.SuccessfulRequests, agg.FailedRequests, agg.TotalRequests)
	}
	if uint64(len(agg.Samples)) != agg.TotalRequests {
		t.Errorf("sample count %d != total %d", len(agg.Samples), agg.TotalRequests)
	}

	// Target answers in ~5ms; allow generous scheduling jitter.
	avg := agg.AverageResponseTimeMs()
	if avg < 4 || avg > 60 {
		t.Errorf("average response time = %.2fms, want around 5ms", avg)
	}

	// RPS ≈ total / wall clock; Run finalizes right after the join so
	// the two should be close.
	rps := agg.RequestsPerSecond()
	expected := float64(agg.TotalRequests) / agg.DurationSeconds()
	if math.Abs(rps-expected) > 0.01 {
		t.Errorf("rps = %.2f, want %.2f", rps, expected)
	}
	if agg.DurationSeconds() < 2.0 {
		t.Errorf("run lasted %.2fs, want at least the configured 2s", agg.DurationSeconds())
	}
}

func TestRunUnreachableTarget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	cfg := Config{
		TargetURL:   srv.URL,
		Users:       3,
		DurationSec: 1,
		RampUpSec:   0,
		TimeoutSec:  1,
		Endpoints:   []Endpoint{{Path: "/health", Method: "GET", Weight: 1.0}},
	}

	lt, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	agg := lt.Run(context.Background(), "down")

	if agg.TotalRequests == 0 {
		t.Fatal("even a dead target produces samples")
	}
	if agg.SuccessRate() != 0 {
		t.Errorf("success rate = %.1f, want 0", agg.SuccessRate())
	}
	if agg.FailedRequests != agg.TotalRequests {
		t.Errorf("failed %d != total %d", agg.FailedRequests, agg.TotalRequests)
	}
	if len(agg.ErrorCounts) == 0 {
		t.Error("error histogram is empty")
	}
	if agg.ErrorCounts["HTTP_0"] != agg.FailedRequests {
		t.Errorf("HTTP_0 count = %d, want %d", agg.ErrorCounts["HTTP_0"], agg.FailedRequests)
	}
}

func TestRunCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	cfg := Config{
		TargetURL:   srv.URL,
		Users:       3,
		DurationSec: 30,
		RampUpSec:   0,
		TimeoutSec:  5,
		Endpoints:   []Endpoint{{Path: "/", Method: "GET", Weight: 1.0}},
	}

	lt, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(300 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	agg := lt.Run(ctx, "cancelled")
	elapsed := time.Since(start)

	if elapsed > 5*time.Second {
		t.Errorf("cancelled run took %s, workers did not stop between requests", elapsed)
	}
	if agg == nil {
		t.Fatal("cancelled run must still yield an aggregate")
	}
	if agg.SuccessfulRequests+agg.FailedRequests != agg.TotalRequests {
		t.Error("partial aggregate totals are inconsistent")
	}
}

func TestSnapshotCarriesLatencySummary(t *testing.T) {
	lt, err := New(validConfig())
	if err != nil {
		t.Fatal(err)
	}

	lt.Live.Observe(true, 10, 20*time.Millisecond)
	lt.sendUpdate()

	s := <-lt.Updates
	if s.Requests != 1 || s.Success != 1 {
		t.Errorf("snapshot counters = %d/%d, want 1/1", s.Requests, s.Success)
	}
	if s.AvgMs < 19 || s.AvgMs > 21 {
		t.Errorf("snapshot AvgMs = %v, want ≈20", s.AvgMs)
	}
	if s.MaxMs < 19 || s.MaxMs > 21 {
		t.Errorf("snapshot MaxMs = %v, want ≈20", s.MaxMs)
	}
}

func TestRunSurvivesWorkerPanic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	cfg := Config{
		TargetURL:   srv.URL,
		Users:       3,
		DurationSec: 1,
		RampUpSec:   0,
		TimeoutSec:  5,
		Endpoints:   []Endpoint{{Path: "/", Method: "GET", Weight: 1.0}},
	}

	lt, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	// Kill user 0 before its third request; users 1 and 2 run out
	// their full duration.
	var calls uint64
	lt.beforeRequest = func(idx int) {
		if idx == 0 && atomic.AddUint64(&calls, 1) == 3 {
			panic("injected worker failure")
		}
	}

	agg := lt.Run(context.Background(), "broken worker")

	if agg == nil {
		t.Fatal("run with a dead worker must still yield an aggregate")
	}
	if agg.TotalRequests == 0 {
		t.Fatal("surviving workers recorded no requests")
	}
	if agg.SuccessfulRequests+agg.FailedRequests != agg.TotalRequests {
		t.Errorf("success %d + failed %d != total %d",
			agg.SuccessfulRequests, agg.FailedRequests, agg.TotalRequests)
	}
	// The survivors alone get close to 200 requests in a second; a run
	// that died with user 0 would stop near 2.
	if agg.TotalRequests <= 2 {
		t.Errorf("total = %d, survivors did not keep running", agg.TotalRequests)
	}
	if agg.End.Before(agg.Start) {
		t.Error("aggregate was not finalized")
	}
}

func TestWorkerPanicKeepsPartialSamples(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	cfg := Config{
		TargetURL:   srv.URL,
		Users:       1,
		DurationSec: 5,
		RampUpSec:   0,
		TimeoutSec:  5,
		Endpoints:   []Endpoint{{Path: "/", Method: "GET", Weight: 1.0}},
	}

	lt, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	// The only user completes two requests, then dies on the third.
	var calls uint64
	lt.beforeRequest = func(idx int) {
		if atomic.AddUint64(&calls, 1) == 3 {
			panic("injected worker failure")
		}
	}

	agg := lt.Run(context.Background(), "partial")

	if agg.TotalRequests != 2 {
		t.Errorf("total = %d, want the 2 samples recorded before the panic", agg.TotalRequests)
	}
	if agg.SuccessfulRequests != 2 {
		t.Errorf("successful = %d, want 2", agg.SuccessfulRequests)
	}
}

func TestStartDelayStagger(t *testing.T) {
	cfg := validConfig()
	cfg.Users = 10
	cfg.RampUpSec = 10

	lt, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	// (10s * 1000 / 10 users) = 1000ms per slot, linear in the index.
	tests := []struct {
		idx  int
		want time.Duration
	}{
		{0, 0},
		{1, time.Second},
		{5, 5 * time.Second},
		{9, 9 * time.Second},
	}
	for _, tt := range tests {
		if got := lt.startDelay(tt.idx); got != tt.want {
			t.Errorf("startDelay(%d) = %s, want %s", tt.idx, got, tt.want)
		}
	}
}

func TestStartDelayZeroRampUp(t *testing.T) {
	cfg := validConfig()
	cfg.Users = 5
	cfg.RampUpSec = 0

	lt, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < cfg.Users; i++ {
		if got := lt.startDelay(i); got != 0 {
			t.Errorf("startDelay(%d) = %s, want 0 with no ramp-up", i, got)
		}
	}
}

func TestLiveStatsTrackRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	cfg := Config{
		TargetURL:   srv.URL,
		Users:       2,
		DurationSec: 1,
		RampUpSec:   0,
		TimeoutSec:  5,
		Endpoints:   []Endpoint{{Path: "/", Method: "GET", Weight: 1.0}},
	}

	lt, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	agg := lt.Run(context.Background(), "live")

	if lt.Live.Requests != agg.TotalRequests {
		t.Errorf("live counter %d != merged total %d", lt.Live.Requests, agg.TotalRequests)
	}
	if lt.Live.ServiceTime.TotalCount() != int64(agg.TotalRequests) {
		t.Errorf("histogram count %d != total %d", lt.Live.ServiceTime.TotalCount(), agg.TotalRequests)
	}
}
