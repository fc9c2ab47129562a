package world

import (
	"testing"
	"time"
)

func TestClockPhaseCycle(t *testing.T) {
	clock := NewClock(ClockConfig{
		DayDuration:   10 * time.Minute,
		NightDuration: 5 * time.Minute,
	})

	phase, remain := clock.PhaseAt(0)
	if phase != PhaseDay {
		t.Fatalf("expected day at start, got %s", phase)
	}
	if remain != 10*time.Minute {
		t.Fatalf("expected 10m remain, got %s", remain)
	}

	phase, remain = clock.PhaseAt(11 * time.Minute)
	if phase != PhaseNight {
		t.Fatalf("expected night at +11m, got %s", phase)
	}
	if remain != 4*time.Minute {
		t.Fatalf("expected 4m remain, got %s", remain)
	}

	phase, _ = clock.PhaseAt(16 * time.Minute)
	if phase != PhaseDay {
		t.Fatalf("expected cycle back to day, got %s", phase)
	}
}

func TestClockDaysAt(t *testing.T) {
	clock := DefaultClock()
	if got := clock.DaysAt(5 * time.Minute); got != 0 {
		t.Fatalf("expected 0 days, got %d", got)
	}
	if got := clock.DaysAt(6 * time.Minute); got != 1 {
		t.Fatalf("expected 1 day, got %d", got)
	}
	if got := clock.DaysAt(25 * time.Minute); got != 4 {
		t.Fatalf("expected 4 days, got %d", got)
	}
}
