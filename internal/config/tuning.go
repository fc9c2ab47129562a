// Package config loads simulation tuning from a yaml file layered over the
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"frostfire/internal/app/sim"
)

// Load reads path over sim.DefaultConfig. An empty path or a missing file
// yields the defaults. Fields with unusable values keep their default and
// are named in the returned slice.
func Load(path string) (sim.Config, []string, error) {
	cfg := sim.DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil, nil
	}
	if err != nil {
		return cfg, nil, err
	}
	return Parse(raw)
}

func Parse(raw []byte) (sim.Config, []string, error) {
	cfg := sim.DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return sim.DefaultConfig(), nil, fmt.Errorf("tuning.yaml: %w", err)
	}
	fixed := sanitize(&cfg, sim.DefaultConfig())
	return cfg, fixed, nil
}

type check struct {
	name  string
	bad   bool
	reset func()
}

func sanitize(cfg *sim.Config, def sim.Config) []string {
	checks := []check{
		{"decay_per_second", cfg.DecayPerSecond <= 0, func() { cfg.DecayPerSecond = def.DecayPerSecond }},
		{"max_step", cfg.MaxStep <= 0, func() { cfg.MaxStep = def.MaxStep }},
		{"max_agents_per_kind", cfg.MaxPerKind < 0, func() { cfg.MaxPerKind = def.MaxPerKind }},
		{"rock_health", cfg.RockHealth <= 0, func() { cfg.RockHealth = def.RockHealth }},
		{"economy.capacity", cfg.Economy.Capacity <= 0, func() { cfg.Economy.Capacity = def.Economy.Capacity }},
		{"economy.max_temperature", cfg.Economy.MaxTemperature <= 0, func() { cfg.Economy.MaxTemperature = def.Economy.MaxTemperature }},
		{"economy.start_temperature",
			cfg.Economy.StartTemperature <= 0 || cfg.Economy.StartTemperature > cfg.Economy.MaxTemperature,
			func() { cfg.Economy.StartTemperature = cfg.Economy.MaxTemperature }},
		{"economy.burn_rate", cfg.Economy.BurnRate <= 0, func() { cfg.Economy.BurnRate = def.Economy.BurnRate }},
		{"economy.hazard_multiplier", cfg.Economy.HazardMultiplier < 1, func() { cfg.Economy.HazardMultiplier = def.Economy.HazardMultiplier }},
		{"economy.max_furnace_level", cfg.Economy.MaxFurnaceLevel < 1, func() { cfg.Economy.MaxFurnaceLevel = def.Economy.MaxFurnaceLevel }},
		{"hazard.interval",
			cfg.Hazard.MinInterval <= 0 || cfg.Hazard.MaxInterval < cfg.Hazard.MinInterval,
			func() { cfg.Hazard.MinInterval, cfg.Hazard.MaxInterval = def.Hazard.MinInterval, def.Hazard.MaxInterval }},
		{"hazard.warning_duration", cfg.Hazard.WarningDuration <= 0, func() { cfg.Hazard.WarningDuration = def.Hazard.WarningDuration }},
		{"hazard.active_duration", cfg.Hazard.ActiveDuration <= 0, func() { cfg.Hazard.ActiveDuration = def.Hazard.ActiveDuration }},
		{"clock",
			cfg.Clock.DayDuration <= 0 || cfg.Clock.NightDuration < 0,
			func() { cfg.Clock.DayDuration, cfg.Clock.NightDuration = def.Clock.DayDuration, def.Clock.NightDuration }},
		{"player.speed", cfg.Player.Speed <= 0, func() { cfg.Player.Speed = def.Player.Speed }},
		{"player.gather_duration", cfg.Player.GatherDuration <= 0, func() { cfg.Player.GatherDuration = def.Player.GatherDuration }},
		{"gatherer.speed", cfg.Gatherer.Speed <= 0, func() { cfg.Gatherer.Speed = def.Gatherer.Speed }},
		{"quarry_worker.speed", cfg.QuarryWorker.Speed <= 0, func() { cfg.QuarryWorker.Speed = def.QuarryWorker.Speed }},
		{"predator.speed", cfg.Predator.Speed <= 0, func() { cfg.Predator.Speed = def.Predator.Speed }},
		{"predator.health", cfg.Predator.Health <= 0, func() { cfg.Predator.Health = def.Predator.Health }},
		{"layout.bounds",
			cfg.Layout.Bounds.MaxX <= cfg.Layout.Bounds.MinX || cfg.Layout.Bounds.MaxY <= cfg.Layout.Bounds.MinY,
			func() { cfg.Layout.Bounds = def.Layout.Bounds }},
	}

	var fixed []string
	for _, c := range checks {
		if c.bad {
			c.reset()
			fixed = append(fixed, c.name)
		}
	}
	return fixed
}
