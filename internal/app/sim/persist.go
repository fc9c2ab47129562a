package sim

import (
	"time"

	"frostfire/internal/domain/agent"
	"frostfire/internal/domain/survival"
	"frostfire/internal/domain/world"
)

// Export captures the persistable part of the run. SaveID and LastSaved are
// left for the caller to stamp.
func (g *Game) Export() survival.SaveState {
	s := survival.DefaultSave()
	g.economy.Export(&s)
	s.HasGatherer = g.countWorkers(agent.KindGatherer) > 0
	s.HasQuarryWorker = g.countWorkers(agent.KindQuarryWorker) > 0
	s.PlayerX = g.player.Position.X
	s.PlayerY = g.player.Position.Y
	s.DaysSurvived = g.stats.DaysSurvived
	s.TotalWoodGathered = g.stats.TotalWoodGathered
	s.TotalStoneMined = g.stats.TotalStoneMined
	s.TotalMeatCollected = g.stats.TotalMeatCollected
	s.BearsKilled = g.stats.BearsKilled
	s.BlizzardsSurvived = g.stats.BlizzardsSurvived
	s.PlayTimeMS = g.elapsed.Milliseconds()
	return s
}

// Restore starts a fresh world and applies s on top of it. Structures and
// agents implied by the save are rebuilt; transient state such as node
// health, the hazard countdown and igloos is not persisted.
func (g *Game) Restore(s survival.SaveState) {
	g.reset()
	g.economy.Restore(s)

	g.stats = survival.RunStats{
		DaysSurvived:       max(s.DaysSurvived, 0),
		TotalWoodGathered:  max(s.TotalWoodGathered, 0),
		TotalStoneMined:    max(s.TotalStoneMined, 0),
		TotalMeatCollected: max(s.TotalMeatCollected, 0),
		BearsKilled:        max(s.BearsKilled, 0),
		BlizzardsSurvived:  max(s.BlizzardsSurvived, 0),
	}
	if s.PlayTimeMS > 0 {
		g.elapsed = time.Duration(s.PlayTimeMS) * time.Millisecond
	}

	if g.economy.FurnaceLevel > survival.StartingFurnaceLevel {
		g.openWild()
	}
	pos := g.terrain.Bounds.Clamp(world.Point{X: s.PlayerX, Y: s.PlayerY})
	if !g.terrain.FogOpen && pos.X > g.terrain.FogX {
		pos.X = g.terrain.FogX
	}
	g.player = Player{Position: pos}

	if g.economy.Unlocks[survival.UnlockHut] {
		_, _ = g.shelters.Add(world.ShelterHut, g.cfg.Layout.Hut, hutRadius(), 0)
		if s.HasGatherer {
			g.spawnWorker(g.cfg.Gatherer)
		}
	}
	if s.HasQuarryWorker && g.economy.Unlocks[survival.UnlockQuarry] {
		g.spawnWorker(g.cfg.QuarryWorker)
	}
	g.pending = nil
}

func hutRadius() float64 {
	def, _ := survival.LookupBuild(string(survival.BuildHut))
	return def.Radius
}
