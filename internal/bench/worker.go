package bench

import (
	"context"
	"fmt"
	"time"

	"loadcmp/internal/metrics"
)

// Pause between two requests of the same user.
const requestGap = 10 * time.Millisecond

// user is one virtual user. It sleeps out its ramp-up slot, then loops
// select-execute-record until its own wall clock runs out. Samples go
// straight into *out so a panicking user still contributes whatever it
// produced. The context is only checked between requests; an in-flight
// request always finishes.
func (lt *LoadTester) user(ctx context.Context, idx int, sel *Selector, out *[]metrics.Sample) {
	if delay := lt.startDelay(idx); delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return
		}
	}

	userID := fmt.Sprintf("user-%d", idx)
	duration := time.Duration(lt.cfg.DurationSec) * time.Second
	start := time.Now()

	for time.Since(start) < duration {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if lt.beforeRequest != nil {
			lt.beforeRequest(idx)
		}

		ep := sel.Pick(lt.cfg.Endpoints)
		body := lt.renderBody(ep, userID)

		s := execute(lt.client, lt.cfg.TargetURL, ep, body)
		*out = append(*out, s)
		lt.Live.Observe(s.Success, s.Bytes, s.Duration())

		time.Sleep(requestGap)
	}
}

// startDelay staggers user starts linearly across the ramp-up window.
func (lt *LoadTester) startDelay(idx int) time.Duration {
	slot := lt.cfg.RampUpSec * 1000 / lt.cfg.Users
	return time.Duration(slot*idx) * time.Millisecond
}

func (lt *LoadTester) renderBody(ep *Endpoint, userID string) string {
	if ep.Body == "" {
		return ""
	}
	return lt.tmpl.Render(ep.Body, TemplateData{
		UserID: userID,
		UUID:   randomUUID(),
	})
}
