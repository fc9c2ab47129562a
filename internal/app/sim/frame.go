package sim

import (
	"sort"

	"frostfire/internal/domain/agent"
	"frostfire/internal/domain/hazard"
	"frostfire/internal/domain/survival"
	"frostfire/internal/domain/world"
)

// Frame is a read-only copy of everything a renderer needs.
type Frame struct {
	Tick         uint64                `json:"tick"`
	ElapsedMS    int64                 `json:"elapsed_ms"`
	Day          int                   `json:"day"`
	DayPhase     world.Phase           `json:"day_phase"`
	Player       PlayerView            `json:"player"`
	Agents       []agent.View          `json:"agents"`
	Nodes        []world.NodeView      `json:"nodes"`
	Shelters     []ShelterView         `json:"shelters"`
	Inventory    map[survival.Item]int `json:"inventory"`
	Load         int                   `json:"load"`
	Capacity     int                   `json:"capacity"`
	Stash        map[survival.Item]int `json:"stash"`
	Temperature  survival.Temperature  `json:"temperature"`
	FurnaceLevel int                   `json:"furnace_level"`
	Unlocks      []string              `json:"unlocks"`
	FogOpen      bool                  `json:"fog_open"`
	Hazard       HazardView            `json:"hazard"`
	Stats        survival.RunStats     `json:"stats"`
	GameOver     bool                  `json:"game_over"`
}

type PlayerView struct {
	Position       world.Point  `json:"position"`
	Destination    *world.Point `json:"destination,omitempty"`
	Gathering      bool         `json:"gathering"`
	GatherProgress float64      `json:"gather_progress"`
	Sheltered      bool         `json:"sheltered"`
	AttackReady    bool         `json:"attack_ready"`
}

type ShelterView struct {
	world.Shelter
	Integrity float64 `json:"integrity"`
}

type HazardView struct {
	Phase       hazard.Phase `json:"phase"`
	Wind        hazard.Wind  `json:"wind,omitempty"`
	RemainingMS int64        `json:"remaining_ms"`
	Completed   int          `json:"completed"`
}

func (g *Game) Frame() Frame {
	phase, _ := g.clock.PhaseAt(g.elapsed)
	p := g.player
	pv := PlayerView{
		Position:       p.Position,
		Gathering:      p.Gathering,
		GatherProgress: p.GatherProgress(g.cfg.Player.GatherDuration),
		Sheltered:      g.shelters.IsSheltered(p.Position),
		AttackReady:    g.economy.Unlocks[survival.UnlockSpear] && p.Cooldown <= 0,
	}
	if p.Moving {
		dest := p.Destination
		pv.Destination = &dest
	}

	agents := make([]agent.View, 0, len(g.workers)+1)
	for _, w := range g.workers {
		agents = append(agents, w.View())
	}
	if g.predator != nil {
		agents = append(agents, g.predator.View())
	}

	shelters := g.shelters.List()
	sv := make([]ShelterView, 0, len(shelters))
	for _, sh := range shelters {
		sv = append(sv, ShelterView{Shelter: sh, Integrity: sh.Integrity()})
	}

	unlocks := make([]string, 0, len(g.economy.Unlocks))
	for u, ok := range g.economy.Unlocks {
		if ok {
			unlocks = append(unlocks, string(u))
		}
	}
	sort.Strings(unlocks)

	stash := make(map[survival.Item]int, len(g.economy.Stash))
	for k, v := range g.economy.Stash {
		stash[k] = v
	}

	hs := g.hazard.State()
	return Frame{
		Tick:         g.tick,
		ElapsedMS:    g.elapsed.Milliseconds(),
		Day:          g.stats.DaysSurvived + 1,
		DayPhase:     phase,
		Player:       pv,
		Agents:       agents,
		Nodes:        g.nodes.Views(),
		Shelters:     sv,
		Inventory:    g.economy.Inventory.Snapshot(),
		Load:         g.economy.Inventory.Load(),
		Capacity:     g.economy.Inventory.Capacity,
		Stash:        stash,
		Temperature:  g.economy.Temperature,
		FurnaceLevel: g.economy.FurnaceLevel,
		Unlocks:      unlocks,
		FogOpen:      g.terrain.FogOpen,
		Hazard: HazardView{
			Phase:       hs.Phase,
			Wind:        hs.Wind,
			RemainingMS: g.hazard.Remaining().Milliseconds(),
			Completed:   hs.Completed,
		},
		Stats:    g.stats,
		GameOver: g.economy.GameOver,
	}
}
