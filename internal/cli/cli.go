package cli

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"loadcmp/internal/bench"
	"loadcmp/internal/metrics"
	"loadcmp/internal/tui/styles"
)

// Start runs one benchmark headless, repainting a one-line progress
// bar until the run completes, then prints the summary boxes and
// returns the finalized aggregate.
func Start(ctx context.Context, lt *bench.LoadTester, label, testName string) *metrics.Aggregate {
	printHeader(lt.Config(), label, testName)

	done := make(chan *metrics.Aggregate, 1)
	go func() {
		done <- lt.Run(ctx, label)
	}()

	startTime := time.Now()
	totalDuration := lt.TotalDuration()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-lt.Updates:
			// Drain snapshots; the ticker drives the repaint.
		case agg := <-done:
			drawProgress(lt, startTime, totalDuration)
			fmt.Println()
			PrintSummary(agg)
			return agg
		case <-ticker.C:
			drawProgress(lt, startTime, totalDuration)
		}
	}
}

func drawProgress(lt *bench.LoadTester, startTime time.Time, total time.Duration) {
	elapsed := time.Since(startTime)
	live := lt.Live

	rps := 0.0
	if elapsed.Seconds() > 0 {
		rps = float64(atomic.LoadUint64(&live.Requests)) / elapsed.Seconds()
	}

	pct := elapsed.Seconds() / total.Seconds()
	if pct > 1.0 {
		pct = 1.0
	}

	fmt.Printf("\r%s %3.0f%% | %s/%s | RPS: %.1f | Avg: %.1fms | OK: %d | Err: %d   ",
		progressBar(pct, 20), pct*100,
		elapsed.Round(time.Second), total,
		rps,
		live.AvgMs(),
		atomic.LoadUint64(&live.Success),
		atomic.LoadUint64(&live.Fail),
	)
}

func printHeader(cfg bench.Config, label, testName string) {
	fmt.Printf("\n🚀 %s: %s\n", label, testName)
	fmt.Printf("======================================================================\n")
	fmt.Printf("Target URL : %s\n", cfg.TargetURL)
	fmt.Printf("Users      : %d\n", cfg.Users)
	fmt.Printf("Duration   : %ds (+%ds ramp-up)\n", cfg.DurationSec, cfg.RampUpSec)
	fmt.Printf("Endpoints  : %d\n", len(cfg.Endpoints))
	fmt.Printf("======================================================================\n\n")
}

func progressBar(pct float64, width int) string {
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("-", width-filled) + "]"
}

// PrintSummary renders the finalized aggregate as styled boxes.
func PrintSummary(agg *metrics.Aggregate) {
	fmt.Println()
	fmt.Println(styles.Title.Render("📊 " + agg.Label + " Run Complete"))
	fmt.Println()

	overview := fmt.Sprintf(
		"Total Requests: %d\nSuccess:        %d\nFailed:         %d\nSuccess Rate:   %.1f%%\nTotal Bytes:    %d",
		agg.TotalRequests,
		agg.SuccessfulRequests,
		agg.FailedRequests,
		agg.SuccessRate(),
		agg.TotalBytes,
	)
	fmt.Println(styles.Box.Render(overview))

	throughput := fmt.Sprintf(
		"Duration:   %.2f s\nRequests/s: %.2f\nMB/s:       %.3f",
		agg.DurationSeconds(),
		agg.RequestsPerSecond(),
		agg.ThroughputMBPerSecond(),
	)
	fmt.Println(styles.Box.Render(throughput))

	latency := fmt.Sprintf(
		"Avg: %.2f ms\nP95: %.2f ms\nP99: %.2f ms",
		agg.AverageResponseTimeMs(),
		agg.PercentileResponseTimeMs(95),
		agg.PercentileResponseTimeMs(99),
	)
	fmt.Println(styles.Box.Render(latency))

	if len(agg.ErrorCounts) > 0 {
		fmt.Println()
		fmt.Println(styles.Error.Render("❌ FAILURE SUMMARY"))
		for code, count := range agg.ErrorCounts {
			fmt.Printf("   %d x %s\n", count, code)
		}
	}
	fmt.Println()
}
