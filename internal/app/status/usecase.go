package status

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"frostfire/internal/app/shared/stateview"
	"frostfire/internal/app/sim"
	"frostfire/internal/domain/hazard"
	"frostfire/internal/domain/survival"
)

var ErrNoSession = errors.New("no running session")

// lowTemperature is the share of the maximum below which the HUD warns.
const lowTemperature = 0.25

type UseCase struct {
	Session *sim.Session
	Now     func() time.Time
}

// Execute renders a short human-readable summary of the running game.
func (u UseCase) Execute(ctx context.Context, _ Request) (Response, error) {
	if u.Session == nil {
		return Response{}, ErrNoSession
	}
	now := time.Now()
	if u.Now != nil {
		now = u.Now()
	}
	f := u.Session.Frame()
	var cfg sim.Config
	_ = u.Session.Do(func(g *sim.Game) error {
		cfg = g.Config()
		return nil
	})

	out := Response{
		SessionID:   u.Session.ID(),
		Day:         f.Day,
		TimeOfDay:   string(f.DayPhase),
		Temperature: fmt.Sprintf("%.0f/%.0f", f.Temperature.Value, f.Temperature.Max),
		Pack:        fmt.Sprintf("%d/%d", f.Load, f.Capacity),
		Stash:       countsLine(f.Stash),
		Hazard:      string(f.Hazard.Phase),
		HazardIn:    humanize.RelTime(now.Add(time.Duration(f.Hazard.RemainingMS)*time.Millisecond), now, "ago", "from now"),
	}
	freeze := stateview.EstimateFreeze(f.Temperature, cfg.DecayPerSecond, cfg.Economy.HazardMultiplier,
		f.Hazard.Phase == hazard.PhaseActive, f.Player.Sheltered)
	if freeze.IsFreezing {
		out.FreezesIn = humanize.RelTime(now.Add(freeze.TimeLeft), now, "ago", "from now")
	}
	if f.GameOver {
		out.Warnings = append(out.Warnings, "the fire went out")
		return out, nil
	}
	if f.Temperature.Max > 0 && f.Temperature.Value/f.Temperature.Max < lowTemperature {
		out.Warnings = append(out.Warnings, "freezing: feed the furnace")
	}
	switch f.Hazard.Phase {
	case hazard.PhaseWarning:
		out.Warnings = append(out.Warnings, "blizzard incoming: find shelter")
	case hazard.PhaseActive:
		if !f.Player.Sheltered {
			out.Warnings = append(out.Warnings, "exposed to the blizzard")
		}
	}
	if f.Load >= f.Capacity && f.Capacity > 0 {
		out.Warnings = append(out.Warnings, "pack is full")
	}
	return out, nil
}

func countsLine(counts map[survival.Item]int) string {
	if len(counts) == 0 {
		return "empty"
	}
	keys := make([]string, 0, len(counts))
	for item := range counts {
		keys = append(keys, string(item))
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		n := counts[survival.Item(k)]
		if n == 0 {
			continue
		}
		parts = append(parts, humanize.Comma(int64(n))+" "+k)
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, ", ")
}
