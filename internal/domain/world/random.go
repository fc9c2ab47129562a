package world

import (
	"math/rand"
	"time"
)

// Random is the single source of randomness for the simulation.
// *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	Intn(n int) int
}

func NewRandom(seed int64) Random {
	return rand.New(rand.NewSource(seed))
}

// Between returns a uniform value in [min, max].
func Between(rng Random, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

func BetweenDuration(rng Random, min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rng.Float64()*float64(max-min))
}
