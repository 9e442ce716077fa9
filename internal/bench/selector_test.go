package bench

import (
	"math"
	"math/rand"
	"testing"
)

func TestPickSingleEndpoint(t *testing.T) {
	weights := []float64{1.0, 0.5, 0.0}

	for _, w := range weights {
		endpoints := []Endpoint{{Path: "/only", Method: "GET", Weight: w}}
		sel := NewSelector(rand.NewSource(1))

		for i := 0; i < 100; i++ {
			got := sel.Pick(endpoints)
			if got.Path != "/only" {
				t.Fatalf("weight %v: picked %q, want /only", w, got.Path)
			}
		}
	}
}

func TestPickWeightDistribution(t *testing.T) {
	endpoints := []Endpoint{
		{Path: "/hot", Weight: 0.9},
		{Path: "/cold", Weight: 0.1},
	}
	sel := NewSelector(rand.NewSource(42))

	const draws = 10000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		counts[sel.Pick(endpoints).Path]++
	}

	hotRatio := float64(counts["/hot"]) / draws
	if math.Abs(hotRatio-0.9) > 0.03 {
		t.Errorf("hot endpoint ratio = %.3f, want 0.9 ± 0.03", hotRatio)
	}
	if counts["/hot"]+counts["/cold"] != draws {
		t.Errorf("picked something not in the list: %v", counts)
	}
}

func TestPickProportionalToTotal(t *testing.T) {
	// Weights don't sum to 1; selection normalizes by the total.
	endpoints := []Endpoint{
		{Path: "/a", Weight: 3},
		{Path: "/b", Weight: 1},
	}
	sel := NewSelector(rand.NewSource(7))

	const draws = 10000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		counts[sel.Pick(endpoints).Path]++
	}

	aRatio := float64(counts["/a"]) / draws
	if math.Abs(aRatio-0.75) > 0.03 {
		t.Errorf("/a ratio = %.3f, want 0.75 ± 0.03", aRatio)
	}
}

func TestPickDeterministicSequence(t *testing.T) {
	endpoints := []Endpoint{
		{Path: "/a", Weight: 0.5},
		{Path: "/b", Weight: 0.5},
	}

	first := NewSelector(rand.NewSource(99))
	second := NewSelector(rand.NewSource(99))

	for i := 0; i < 50; i++ {
		a := first.Pick(endpoints).Path
		b := second.Pick(endpoints).Path
		if a != b {
			t.Fatalf("draw %d: sequences diverged (%s vs %s)", i, a, b)
		}
	}
}

func TestPickNeverFails(t *testing.T) {
	// Tiny weights tickle float accumulation; Pick must still return
	// an endpoint from the list.
	endpoints := []Endpoint{
		{Path: "/a", Weight: 1e-12},
		{Path: "/b", Weight: 1e-12},
		{Path: "/c", Weight: 1e-12},
	}
	sel := NewSelector(rand.NewSource(3))

	valid := map[string]bool{"/a": true, "/b": true, "/c": true}
	for i := 0; i < 1000; i++ {
		got := sel.Pick(endpoints)
		if !valid[got.Path] {
			t.Fatalf("picked unknown endpoint %q", got.Path)
		}
	}
}
