package sim

import (
	"time"

	"frostfire/internal/domain/survival"
	"frostfire/internal/domain/world"
)

// Player is the directly controlled survivor. It walks to a destination,
// harvests one node at a time and carries a spear cooldown.
type Player struct {
	Position     world.Point
	Destination  world.Point
	Moving       bool
	Gathering    bool
	GatherTarget world.NodeRef
	GatherTimer  time.Duration
	Cooldown     time.Duration
}

func (p *Player) stop() {
	p.Moving = false
	p.stopGathering()
}

func (p *Player) stopGathering() {
	p.Gathering = false
	p.GatherTarget = world.NodeRef{}
	p.GatherTimer = 0
}

func (g *Game) updatePlayer(dt time.Duration) {
	p := &g.player
	if p.Cooldown > 0 {
		p.Cooldown -= dt
		if p.Cooldown < 0 {
			p.Cooldown = 0
		}
	}
	if p.Moving {
		prev := p.Position
		next := prev.MoveToward(p.Destination, g.cfg.Player.Speed*dt.Seconds())
		p.Position = g.terrain.Constrain(prev, next, true)
		if p.Position == p.Destination || (dt > 0 && p.Position == prev) {
			p.Moving = false
		}
	}
	if p.Gathering {
		g.advanceGather(dt)
	}
}

// advanceGather completes one hit per GatherDuration. The node only yields
// when its last hit lands, and gathering stops once the pack has no room.
func (g *Game) advanceGather(dt time.Duration) {
	p := &g.player
	pos, node, ok := g.nodes.Get(p.GatherTarget)
	if !ok || node.Health.Consuming || p.Position.Dist(pos) > g.cfg.Player.GatherRange {
		p.stopGathering()
		return
	}
	p.GatherTimer += dt
	if p.GatherTimer < g.cfg.Player.GatherDuration {
		return
	}
	p.GatherTimer = 0

	item := yieldOf(node.Kind)
	inv := g.economy.Inventory
	if inv.IsCapped(item) && inv.Free() <= 0 {
		p.stopGathering()
		return
	}
	if !g.nodes.Hit(p.GatherTarget) {
		return
	}
	g.nodes.Remove(p.GatherTarget)
	p.stopGathering()
	g.economy.TryAddToInventory(item, 1)
	g.countGathered(item, 1)
	g.scheduleRespawn(node.Kind, node.Zone)
	g.emit(survival.EventNodeHarvested, map[string]any{
		"by": "player", "kind": string(node.Kind), "x": pos.X, "y": pos.Y,
	})
}

// GatherProgress is the completed fraction of the current gather hit.
func (p Player) GatherProgress(total time.Duration) float64 {
	if !p.Gathering || total <= 0 {
		return 0
	}
	v := float64(p.GatherTimer) / float64(total)
	if v > 1 {
		return 1
	}
	return v
}
