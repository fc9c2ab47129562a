package world

import "math"

// Candidate is one located entity offered to Nearest.
type Candidate[ID any] struct {
	ID    ID
	Pos   Point
	Alive bool
}

// Nearest returns the closest live candidate to from. A radius <= 0 means
// unbounded. Ties keep the earliest candidate.
func Nearest[ID any](from Point, candidates []Candidate[ID], radius float64) (Candidate[ID], float64, bool) {
	var (
		best     Candidate[ID]
		bestDist = math.Inf(1)
		found    bool
	)
	for _, c := range candidates {
		if !c.Alive {
			continue
		}
		d := from.Dist(c.Pos)
		if radius > 0 && d > radius {
			continue
		}
		if d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	if !found {
		return Candidate[ID]{}, 0, false
	}
	return best, bestDist, true
}
