package world

import "math"

type Zone string

const (
	ZoneSafe   Zone = "safe"
	ZoneWild   Zone = "wild"
	ZoneQuarry Zone = "quarry"
	ZonePatrol Zone = "patrol"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// MoveToward returns p advanced by at most step along the line to target.
// It never overshoots.
func (p Point) MoveToward(target Point, step float64) Point {
	d := p.Dist(target)
	if d <= step || d == 0 {
		return target
	}
	if step <= 0 {
		return p
	}
	return Point{X: p.X + (target.X-p.X)*step/d, Y: p.Y + (target.Y-p.Y)*step/d}
}

// Away returns the point at distance dist from p, on the ray from origin through p.
// When p and origin coincide the push goes along +X.
func (p Point) Away(origin Point, dist float64) Point {
	d := p.Dist(origin)
	if d == 0 {
		return Point{X: p.X + dist, Y: p.Y}
	}
	return Point{X: p.X + (p.X-origin.X)*dist/d, Y: p.Y + (p.Y-origin.Y)*dist/d}
}

type Rect struct {
	MinX float64 `json:"min_x" yaml:"min_x"`
	MinY float64 `json:"min_y" yaml:"min_y"`
	MaxX float64 `json:"max_x" yaml:"max_x"`
	MaxY float64 `json:"max_y" yaml:"max_y"`
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

func (r Rect) Clamp(p Point) Point {
	return Point{
		X: math.Max(r.MinX, math.Min(r.MaxX, p.X)),
		Y: math.Max(r.MinY, math.Min(r.MaxY, p.Y)),
	}
}

func (r Rect) RandomPoint(rng Random) Point {
	return Point{
		X: Between(rng, r.MinX, r.MaxX),
		Y: Between(rng, r.MinY, r.MaxY),
	}
}

// Terrain constrains movement: everything stays inside Bounds, and walkers
// subject to the fog wall cannot cross FogX while it is closed.
type Terrain struct {
	Bounds  Rect
	FogX    float64
	FogOpen bool
}

func (t Terrain) Constrain(from, to Point, fogBound bool) Point {
	out := t.Bounds.Clamp(to)
	if fogBound && !t.FogOpen && t.FogX > 0 && from.X <= t.FogX && out.X > t.FogX {
		out.X = t.FogX
	}
	return out
}
