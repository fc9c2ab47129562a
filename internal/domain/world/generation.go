package world

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Scatter places spawns inside a zone, biased toward dense patches of a
// noise field so trees and rocks cluster instead of spreading uniformly.
type Scatter struct {
	noise     opensimplex.Noise
	rng       Random
	frequency float64
	threshold float64
	attempts  int
}

func NewScatter(seed int64, rng Random) *Scatter {
	return &Scatter{
		noise:     opensimplex.NewNormalized(seed),
		rng:       rng,
		frequency: 1.0 / 120.0,
		threshold: 0.45,
		attempts:  10,
	}
}

func (s *Scatter) Density(p Point) float64 {
	return s.noise.Eval2(p.X*s.frequency, p.Y*s.frequency)
}

// Place returns a point in zone at least minDist away from every point in
// avoid when one can be found within the attempt budget. The last candidate
// is returned otherwise.
func (s *Scatter) Place(zone Rect, avoid []Point, minDist float64) Point {
	var p Point
	for i := 0; i < s.attempts; i++ {
		p = zone.RandomPoint(s.rng)
		if s.Density(p) < s.threshold && i < s.attempts/2 {
			continue
		}
		if farFromAll(p, avoid, minDist) {
			return p
		}
	}
	return p
}

func farFromAll(p Point, avoid []Point, minDist float64) bool {
	for _, a := range avoid {
		if p.Dist(a) < minDist {
			return false
		}
	}
	return true
}
