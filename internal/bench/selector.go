package bench

import (
	"math/rand"
	"time"
)

// Selector picks endpoints with probability proportional to their
// weight. Every call is independent of the last; this is a weighted
// coin flip, not a round-robin. Not safe for concurrent use, each
// virtual user owns its own instance.
type Selector struct {
	rnd *rand.Rand
}

// NewSelector builds a selector around the given source. Tests pass a
// seeded source to get deterministic pick sequences; a nil source
// falls back to a time seed.
func NewSelector(src rand.Source) *Selector {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Selector{rnd: rand.New(src)}
}

// Pick draws r uniformly from [0, totalWeight) and walks the list
// subtracting weights until the remainder drops to zero. If float
// drift keeps the remainder positive past the end, the last endpoint
// wins; Pick never fails on a nonempty list.
func (s *Selector) Pick(endpoints []Endpoint) *Endpoint {
	if len(endpoints) == 1 {
		return &endpoints[0]
	}

	total := 0.0
	for i := range endpoints {
		total += endpoints[i].Weight
	}

	r := s.rnd.Float64() * total
	for i := range endpoints {
		r -= endpoints[i].Weight
		if r <= 0 {
			return &endpoints[i]
		}
	}

	return &endpoints[len(endpoints)-1]
}
