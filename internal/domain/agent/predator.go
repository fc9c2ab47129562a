package agent

import (
	"time"

	"frostfire/internal/domain/world"
)

type PredatorConfig struct {
	Speed          float64       `yaml:"speed"`
	ArriveDistance float64       `yaml:"arrive_distance"`
	StallSpeed     float64       `yaml:"stall_speed"`
	PauseMin       time.Duration `yaml:"pause_min"`
	PauseMax       time.Duration `yaml:"pause_max"`
	Zone           world.Rect    `yaml:"zone"`
	Health         int           `yaml:"health"`
}

func DefaultPredatorConfig() PredatorConfig {
	return PredatorConfig{
		Speed:          50,
		ArriveDistance: 10,
		StallSpeed:     5,
		PauseMin:       time.Second,
		PauseMax:       3 * time.Second,
		Zone:           world.Rect{MinX: 500, MinY: 50, MaxX: 780, MaxY: 550},
		Health:         3,
	}
}

// Predator idles for a random pause, then walks to a random point of its
// patrol zone, and pauses again on arrival or when it stops making progress.
type Predator struct {
	ID          int
	Position    world.Point
	State       State
	Destination world.Point
	Pause       time.Duration
	Health      world.Health
	cfg         PredatorConfig
}

func NewPredator(id int, at world.Point, cfg PredatorConfig, rng world.Random) *Predator {
	p := &Predator{ID: id, Position: at, Health: world.NewHealth(cfg.Health), cfg: cfg}
	p.rest(rng)
	return p
}

func (p *Predator) Update(dt time.Duration, rng world.Random, terrain world.Terrain) {
	if p.Health.Consuming {
		return
	}
	switch p.State {
	case StateIdle:
		p.Pause -= dt
		if p.Pause <= 0 {
			p.Pause = 0
			p.Destination = p.cfg.Zone.RandomPoint(rng)
			p.State = StateRoaming
		}
	case StateRoaming:
		if p.Position.Dist(p.Destination) < p.cfg.ArriveDistance {
			p.rest(rng)
			return
		}
		prev := p.Position
		next := p.Position.MoveToward(p.Destination, p.cfg.Speed*dt.Seconds())
		p.Position = terrain.Constrain(prev, next, false)
		if dt > 0 && prev.Dist(p.Position)/dt.Seconds() < p.cfg.StallSpeed {
			p.rest(rng)
		}
	default:
		p.rest(rng)
	}
}

func (p *Predator) rest(rng world.Random) {
	p.State = StateIdle
	p.Pause = world.BetweenDuration(rng, p.cfg.PauseMin, p.cfg.PauseMax)
}

// Hit applies one spear hit and reports whether it killed the predator.
func (p *Predator) Hit() bool {
	return p.Health.Hit()
}

func (p *Predator) Alive() bool { return !p.Health.Consuming }

// KnockBack pushes the predator away from origin and interrupts its walk.
func (p *Predator) KnockBack(origin world.Point, dist float64, terrain world.Terrain, rng world.Random) {
	p.Position = terrain.Constrain(p.Position, p.Position.Away(origin, dist), false)
	p.rest(rng)
}

func (p *Predator) View() View {
	return View{ID: p.ID, Kind: KindPredator, State: p.State, Position: p.Position, Health: p.Health.Current}
}
