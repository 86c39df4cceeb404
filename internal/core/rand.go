package core

import (
	"math/rand"
	"time"
)

// Rand is the source of probabilistic decisions. Injecting it (instead of
// reaching for package-level randomness) makes action decisions replayable
// under a fixed seed.
type Rand interface {
	// Float64 returns a uniform draw in [0, 1).
	Float64() float64
	// Between returns a uniform draw in [min, max].
	Between(min, max float64) float64
	// Duration returns a uniform duration in [min, max].
	Duration(min, max time.Duration) time.Duration
}

type seededRand struct {
	r *rand.Rand
}

// NewRand creates a seeded random source. Pass 0 to seed from the current time.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &seededRand{r: rand.New(rand.NewSource(seed))}
}

func (s *seededRand) Float64() float64 { return s.r.Float64() }

func (s *seededRand) Between(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.r.Float64()*(max-min)
}

func (s *seededRand) Duration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(s.r.Int63n(int64(max-min)+1))
}
