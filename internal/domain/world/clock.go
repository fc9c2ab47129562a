package world

import "time"

type Phase string

const (
	PhaseDay   Phase = "day"
	PhaseNight Phase = "night"
)

// ClockConfig describes the day/night cycle over simulated time.
type ClockConfig struct {
	DayDuration   time.Duration `yaml:"day_duration"`
	NightDuration time.Duration `yaml:"night_duration"`
}

type Clock struct {
	cfg ClockConfig
}

func NewClock(cfg ClockConfig) Clock {
	if cfg.DayDuration <= 0 {
		cfg.DayDuration = 4 * time.Minute
	}
	if cfg.NightDuration <= 0 {
		cfg.NightDuration = 2 * time.Minute
	}
	return Clock{cfg: cfg}
}

func DefaultClock() Clock {
	return NewClock(ClockConfig{})
}

func (c Clock) PhaseAt(elapsed time.Duration) (Phase, time.Duration) {
	total := c.cfg.DayDuration + c.cfg.NightDuration
	if elapsed < 0 {
		elapsed = 0
	}
	offset := elapsed % total
	if offset < c.cfg.DayDuration {
		return PhaseDay, c.cfg.DayDuration - offset
	}
	nightOffset := offset - c.cfg.DayDuration
	return PhaseNight, c.cfg.NightDuration - nightOffset
}

// DaysAt is the number of completed day/night cycles.
func (c Clock) DaysAt(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed / (c.cfg.DayDuration + c.cfg.NightDuration))
}
