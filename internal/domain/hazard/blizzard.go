// Package hazard runs the blizzard weather cycle: Dormant, then Warning,
// then Active, then back to Dormant with a freshly rolled countdown.
package hazard

import (
	"time"

	"frostfire/internal/domain/world"
)

type Phase string

const (
	PhaseDormant Phase = "dormant"
	PhaseWarning Phase = "warning"
	PhaseActive  Phase = "active"
)

type Wind string

const (
	WindNone  Wind = ""
	WindUp    Wind = "up"
	WindDown  Wind = "down"
	WindLeft  Wind = "left"
	WindRight Wind = "right"
)

var winds = []Wind{WindUp, WindDown, WindLeft, WindRight}

type Config struct {
	MinInterval     time.Duration `yaml:"min_interval"`
	MaxInterval     time.Duration `yaml:"max_interval"`
	WarningDuration time.Duration `yaml:"warning_duration"`
	ActiveDuration  time.Duration `yaml:"active_duration"`
}

func DefaultConfig() Config {
	return Config{
		MinInterval:     5 * time.Minute,
		MaxInterval:     10 * time.Minute,
		WarningDuration: 10 * time.Second,
		ActiveDuration:  30 * time.Second,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.MinInterval <= 0 {
		c.MinInterval = d.MinInterval
	}
	if c.MaxInterval < c.MinInterval {
		c.MaxInterval = c.MinInterval
	}
	if c.WarningDuration <= 0 {
		c.WarningDuration = d.WarningDuration
	}
	if c.ActiveDuration <= 0 {
		c.ActiveDuration = d.ActiveDuration
	}
	return c
}

// Transition records one phase change produced by Advance.
type Transition struct {
	From Phase `json:"from"`
	To   Phase `json:"to"`
	Wind Wind  `json:"wind,omitempty"`
}

// State is the externally visible and persistable part of the cycle.
type State struct {
	Phase       Phase         `json:"phase"`
	PhaseTimer  time.Duration `json:"phase_timer"`
	NextTrigger time.Duration `json:"next_trigger"`
	Wind        Wind          `json:"wind,omitempty"`
	Completed   int           `json:"completed"`
}

type Cycle struct {
	cfg   Config
	rng   world.Random
	state State
}

func NewCycle(cfg Config, rng world.Random) *Cycle {
	c := &Cycle{cfg: cfg.normalized(), rng: rng}
	c.state = State{Phase: PhaseDormant, NextTrigger: c.rollInterval()}
	return c
}

func (c *Cycle) rollInterval() time.Duration {
	return world.BetweenDuration(c.rng, c.cfg.MinInterval, c.cfg.MaxInterval)
}

// Advance moves the cycle forward by dt. At most one transition happens per call,
// and the phase timer restarts at zero on every transition.
func (c *Cycle) Advance(dt time.Duration) []Transition {
	if dt < 0 {
		dt = 0
	}
	switch c.state.Phase {
	case PhaseDormant:
		c.state.NextTrigger -= dt
		if c.state.NextTrigger <= 0 {
			c.state.NextTrigger = 0
			return c.enter(PhaseWarning)
		}
	case PhaseWarning:
		c.state.PhaseTimer += dt
		if c.state.PhaseTimer >= c.cfg.WarningDuration {
			c.state.Wind = winds[c.rng.Intn(len(winds))]
			return c.enter(PhaseActive)
		}
	case PhaseActive:
		c.state.PhaseTimer += dt
		if c.state.PhaseTimer >= c.cfg.ActiveDuration {
			c.state.Completed++
			c.state.NextTrigger = c.rollInterval()
			return c.enter(PhaseDormant)
		}
	}
	return nil
}

func (c *Cycle) enter(next Phase) []Transition {
	t := Transition{From: c.state.Phase, To: next}
	if next == PhaseActive {
		t.Wind = c.state.Wind
	}
	c.state.Phase = next
	c.state.PhaseTimer = 0
	return []Transition{t}
}

// ForceTrigger zeroes the dormant countdown so the next Advance enters Warning.
func (c *Cycle) ForceTrigger() bool {
	if c.state.Phase != PhaseDormant {
		return false
	}
	c.state.NextTrigger = 0
	return true
}

func (c *Cycle) IsActive() bool  { return c.state.Phase == PhaseActive }
func (c *Cycle) IsWarning() bool { return c.state.Phase == PhaseWarning }
func (c *Cycle) Phase() Phase    { return c.state.Phase }
func (c *Cycle) Wind() Wind      { return c.state.Wind }
func (c *Cycle) Config() Config  { return c.cfg }

// Remaining is the time left in the current phase.
func (c *Cycle) Remaining() time.Duration {
	switch c.state.Phase {
	case PhaseWarning:
		return c.cfg.WarningDuration - c.state.PhaseTimer
	case PhaseActive:
		return c.cfg.ActiveDuration - c.state.PhaseTimer
	default:
		return c.state.NextTrigger
	}
}

func (c *Cycle) State() State { return c.state }

// Restore replaces the cycle state. Unknown phases fall back to a fresh dormant countdown.
func (c *Cycle) Restore(s State) {
	switch s.Phase {
	case PhaseDormant, PhaseWarning, PhaseActive:
	default:
		s = State{Phase: PhaseDormant, NextTrigger: c.rollInterval(), Completed: s.Completed}
	}
	if s.Phase == PhaseDormant && s.NextTrigger <= 0 {
		s.NextTrigger = c.rollInterval()
	}
	if s.PhaseTimer < 0 {
		s.PhaseTimer = 0
	}
	c.state = s
}
