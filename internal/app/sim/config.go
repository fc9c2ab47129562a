package sim

import (
	"time"

	"frostfire/internal/domain/agent"
	"frostfire/internal/domain/hazard"
	"frostfire/internal/domain/survival"
	"frostfire/internal/domain/world"
)

type PlayerConfig struct {
	Speed          float64       `yaml:"speed"`
	GatherRange    float64       `yaml:"gather_range"`
	GatherDuration time.Duration `yaml:"gather_duration"`
	PickupRadius   float64       `yaml:"pickup_radius"`
	AttackCooldown time.Duration `yaml:"attack_cooldown"`
	SpearReach     float64       `yaml:"spear_reach"`
	SpearHitRadius float64       `yaml:"spear_hit_radius"`
	SpearKnockback float64       `yaml:"spear_knockback"`
	MauledPushback float64       `yaml:"mauled_pushback"`
	StationRange   float64       `yaml:"station_range"`
	UpgradeRange   float64       `yaml:"upgrade_range"`
}

type Layout struct {
	Bounds               world.Rect  `yaml:"bounds"`
	FogX                 float64     `yaml:"fog_x"`
	Spawn                world.Point `yaml:"spawn"`
	Furnace              world.Point `yaml:"furnace"`
	Quarry               world.Point `yaml:"quarry"`
	Hut                  world.Point `yaml:"hut"`
	FurnaceShelterRadius float64     `yaml:"furnace_shelter_radius"`
	SafeZone             world.Rect  `yaml:"safe_zone"`
	WildZone             world.Rect  `yaml:"wild_zone"`
	QuarryZone           world.Rect  `yaml:"quarry_zone"`
	InitialTrees         int         `yaml:"initial_trees"`
	WildTrees            int         `yaml:"wild_trees"`
	InitialRocks         int         `yaml:"initial_rocks"`
	SnowPilesPerStorm    int         `yaml:"snow_piles_per_storm"`
	MinSpawnSpacing      float64     `yaml:"min_spawn_spacing"`
	PredatorMinPlayer    float64     `yaml:"predator_min_player_distance"`
	ContactRadius        float64     `yaml:"contact_radius"`
}

type RespawnConfig struct {
	Tree     time.Duration `yaml:"tree"`
	Rock     time.Duration `yaml:"rock"`
	Predator time.Duration `yaml:"predator"`
}

type Config struct {
	Seed           int64                  `yaml:"seed"`
	DecayPerSecond float64                `yaml:"decay_per_second"`
	MaxStep        time.Duration          `yaml:"max_step"`
	MaxPerKind     int                    `yaml:"max_agents_per_kind"`
	RockHealth     int                    `yaml:"rock_health"`
	Economy        survival.EconomyConfig `yaml:"economy"`
	Hazard         hazard.Config          `yaml:"hazard"`
	Clock          world.ClockConfig      `yaml:"clock"`
	Player         PlayerConfig           `yaml:"player"`
	Gatherer       agent.Role             `yaml:"gatherer"`
	QuarryWorker   agent.Role             `yaml:"quarry_worker"`
	Predator       agent.PredatorConfig   `yaml:"predator"`
	Layout         Layout                 `yaml:"layout"`
	Respawn        RespawnConfig          `yaml:"respawn"`
}

func DefaultConfig() Config {
	return Config{
		Seed:           1,
		DecayPerSecond: 1,
		MaxStep:        time.Second,
		MaxPerKind:     1,
		RockHealth:     3,
		Economy:        survival.DefaultEconomyConfig(),
		Hazard:         hazard.DefaultConfig(),
		Clock:          world.ClockConfig{DayDuration: 4 * time.Minute, NightDuration: 2 * time.Minute},
		Player: PlayerConfig{
			Speed:          200,
			GatherRange:    70,
			GatherDuration: time.Second,
			PickupRadius:   24,
			AttackCooldown: 550 * time.Millisecond,
			SpearReach:     32,
			SpearHitRadius: 40,
			SpearKnockback: 40,
			MauledPushback: 80,
			StationRange:   80,
			UpgradeRange:   120,
		},
		Gatherer:     agent.GathererRole(),
		QuarryWorker: agent.QuarryWorkerRole(),
		Predator:     agent.DefaultPredatorConfig(),
		Layout: Layout{
			Bounds:               world.Rect{MaxX: 800, MaxY: 600},
			FogX:                 500,
			Spawn:                world.Point{X: 100, Y: 100},
			Furnace:              world.Point{X: 400, Y: 300},
			Quarry:               world.Point{X: 650, Y: 450},
			Hut:                  world.Point{X: 250, Y: 470},
			FurnaceShelterRadius: 100,
			SafeZone:             world.Rect{MinX: 40, MinY: 40, MaxX: 470, MaxY: 560},
			WildZone:             world.Rect{MinX: 530, MinY: 40, MaxX: 780, MaxY: 360},
			QuarryZone:           world.Rect{MinX: 560, MinY: 380, MaxX: 760, MaxY: 560},
			InitialTrees:         8,
			WildTrees:            5,
			InitialRocks:         4,
			SnowPilesPerStorm:    5,
			MinSpawnSpacing:      60,
			PredatorMinPlayer:    250,
			ContactRadius:        30,
		},
		Respawn: RespawnConfig{
			Tree:     2 * time.Second,
			Rock:     5 * time.Second,
			Predator: 30 * time.Second,
		},
	}
}
