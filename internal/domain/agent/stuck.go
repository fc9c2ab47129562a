package agent

import (
	"time"

	"frostfire/internal/domain/world"
)

// StuckDetector trips when an agent stays within MinDisplacement of an anchor
// point for longer than Timeout. Any move past the threshold re-anchors it,
// so slow but steady walkers are never flagged.
type StuckDetector struct {
	Timeout         time.Duration
	MinDisplacement float64
	anchor          world.Point
	elapsed         time.Duration
}

func (d *StuckDetector) Reset(at world.Point) {
	d.anchor = at
	d.elapsed = 0
}

func (d *StuckDetector) Observe(at world.Point, dt time.Duration) bool {
	if at.Dist(d.anchor) >= d.MinDisplacement {
		d.Reset(at)
		return false
	}
	d.elapsed += dt
	return d.elapsed > d.Timeout
}

func (d StuckDetector) Elapsed() time.Duration { return d.elapsed }
