// Package sim is the tick scheduler. A Game owns every piece of simulation
// state and advances it in a fixed order; hosts drive it with Tick and feed
// player input through the Request methods.
package sim

import (
	"time"

	"frostfire/internal/domain/agent"
	"frostfire/internal/domain/hazard"
	"frostfire/internal/domain/survival"
	"frostfire/internal/domain/world"
)

// Game is not safe for concurrent use. Session serializes access for hosts
// with more than one caller.
type Game struct {
	cfg      Config
	rng      world.Random
	terrain  world.Terrain
	nodes    *world.Nodes
	shelters *world.Shelters
	economy  *survival.Economy
	hazard   *hazard.Cycle
	clock    world.Clock
	scatter  *world.Scatter
	player   Player
	workers  []*agent.Worker
	predator *agent.Predator
	respawns []respawn
	stats    survival.RunStats
	tick     uint64
	elapsed  time.Duration
	nextID   int
	pending  []survival.DomainEvent
}

type respawn struct {
	kind      world.NodeKind
	zone      world.Zone
	predator  bool
	remaining time.Duration
}

func New(cfg Config, rng world.Random) *Game {
	if rng == nil {
		rng = world.NewRandom(cfg.Seed)
	}
	g := &Game{cfg: cfg, rng: rng}
	g.reset()
	return g
}

func (g *Game) reset() {
	l := g.cfg.Layout
	g.terrain = world.Terrain{Bounds: l.Bounds, FogX: l.FogX}
	g.nodes = world.NewNodes()
	g.shelters = world.NewShelters()
	g.economy = survival.NewEconomy(g.cfg.Economy)
	g.hazard = hazard.NewCycle(g.cfg.Hazard, g.rng)
	g.clock = world.NewClock(g.cfg.Clock)
	g.scatter = world.NewScatter(g.cfg.Seed, g.rng)
	g.player = Player{Position: g.terrain.Bounds.Clamp(l.Spawn)}
	g.workers = nil
	g.predator = nil
	g.respawns = nil
	g.stats = survival.RunStats{}
	g.tick = 0
	g.elapsed = 0
	g.nextID = 0
	g.pending = nil

	_, _ = g.shelters.Add(world.ShelterFurnace, l.Furnace, l.FurnaceShelterRadius, 0)
	for i := 0; i < l.InitialTrees; i++ {
		g.spawnNode(world.NodeTree, world.ZoneSafe)
	}
	for i := 0; i < l.InitialRocks; i++ {
		g.spawnNode(world.NodeRock, world.ZoneQuarry)
	}
}

func (g *Game) Config() Config { return g.cfg }

func (g *Game) Economy() *survival.Economy { return g.economy }

func (g *Game) Nodes() *world.Nodes { return g.nodes }

func (g *Game) Hazard() *hazard.Cycle { return g.hazard }

func (g *Game) Player() Player { return g.player }

func (g *Game) Stats() survival.RunStats { return g.stats }

func (g *Game) Elapsed() time.Duration { return g.elapsed }

func (g *Game) TickCount() uint64 { return g.tick }

func (g *Game) Over() bool { return g.economy.GameOver }

// Tick advances the simulation by dt in this order: hazard, player and
// agents, overlap resolution, shelters, temperature, respawns, day clock.
// Events raised by intents since the previous tick are returned first.
// Once the game is over Tick does nothing.
func (g *Game) Tick(dt time.Duration) []survival.DomainEvent {
	if g.economy.GameOver {
		return nil
	}
	if dt < 0 {
		dt = 0
	}
	if g.cfg.MaxStep > 0 && dt > g.cfg.MaxStep {
		dt = g.cfg.MaxStep
	}
	g.tick++
	g.elapsed += dt

	for _, tr := range g.hazard.Advance(dt) {
		g.onHazardTransition(tr)
	}

	g.updatePlayer(dt)
	g.updateWorkers(dt)
	if g.predator != nil {
		g.predator.Update(dt, g.rng, g.terrain)
	}
	g.resolveOverlaps()

	storm := g.hazard.IsActive()
	for _, sh := range g.shelters.Advance(dt, storm) {
		g.emit(survival.EventShelterExpired, map[string]any{"id": sh.ID, "kind": string(sh.Kind)})
	}
	sheltered := g.shelters.IsSheltered(g.player.Position)
	if g.economy.DecayTemperature(g.cfg.DecayPerSecond*dt.Seconds(), storm, sheltered) {
		g.emit(survival.EventGameOver, map[string]any{
			"days_survived": g.stats.DaysSurvived,
			"play_time_ms":  g.elapsed.Milliseconds(),
		})
		return g.drain()
	}

	g.advanceRespawns(dt)

	if days := g.clock.DaysAt(g.elapsed); days > g.stats.DaysSurvived {
		g.stats.DaysSurvived = days
		g.emit(survival.EventDayPassed, map[string]any{"days": days})
	}
	return g.drain()
}

func (g *Game) emit(t survival.EventType, payload map[string]any) {
	g.pending = append(g.pending, survival.DomainEvent{
		Type:    t,
		Tick:    g.tick,
		Elapsed: g.elapsed,
		Payload: payload,
	})
}

func (g *Game) drain() []survival.DomainEvent {
	out := g.pending
	g.pending = nil
	return out
}

func (g *Game) onHazardTransition(tr hazard.Transition) {
	payload := map[string]any{"from": string(tr.From), "to": string(tr.To)}
	if tr.Wind != hazard.WindNone {
		payload["wind"] = string(tr.Wind)
	}
	g.emit(survival.EventPhaseChanged, payload)
	if tr.From != hazard.PhaseActive || tr.To != hazard.PhaseDormant {
		return
	}
	g.stats.BlizzardsSurvived++
	for i := 0; i < g.cfg.Layout.SnowPilesPerStorm; i++ {
		g.spawnNode(world.NodeSnowPile, world.ZoneSafe)
	}
}

func (g *Game) updateWorkers(dt time.Duration) {
	env := agent.Env{Nodes: g.nodes, Economy: townDepositor{g: g}, Terrain: g.terrain}
	for _, w := range g.workers {
		out := w.Update(dt, env)
		if out.Harvested {
			g.scheduleRespawn(out.HarvestedKind, out.HarvestedZone)
			g.emit(survival.EventNodeHarvested, map[string]any{
				"by": w.ID, "kind": string(out.HarvestedKind), "x": out.HarvestedAt.X, "y": out.HarvestedAt.Y,
			})
		}
		if out.Deposited > 0 {
			g.emit(survival.EventAgentDeposited, map[string]any{
				"agent": w.ID, "item": string(out.DepositedItem), "amount": out.Deposited,
			})
		}
		if out.Stuck {
			g.emit(survival.EventAgentStuck, map[string]any{"agent": w.ID, "state": string(out.From)})
		}
	}
}

// resolveOverlaps handles pickups and predator contact after everyone moved.
func (g *Game) resolveOverlaps() {
	for _, ref := range g.nodes.Overlapping(g.player.Position, g.cfg.Player.PickupRadius, world.NodeMeat, world.NodeSnowPile) {
		_, node, ok := g.nodes.Get(ref)
		if !ok {
			continue
		}
		item := yieldOf(node.Kind)
		if !g.economy.TryAddToInventory(item, 1) {
			continue
		}
		g.nodes.Remove(ref)
		g.countGathered(item, 1)
		g.emit(survival.EventItemCollected, map[string]any{"item": string(item)})
	}

	if g.predator == nil || !g.predator.Alive() {
		return
	}
	contact := g.cfg.Layout.ContactRadius
	kept := g.workers[:0]
	for _, w := range g.workers {
		if w.Carrying > 0 && w.Position.Dist(g.predator.Position) < contact {
			g.emit(survival.EventAgentKilled, map[string]any{"agent": w.ID, "kind": string(w.Role.Kind)})
			continue
		}
		kept = append(kept, w)
	}
	g.workers = kept

	if g.player.Position.Dist(g.predator.Position) >= contact {
		return
	}
	lost := g.economy.Inventory.Take(survival.ItemWood)
	g.player.Position = g.terrain.Constrain(g.player.Position,
		g.player.Position.Away(g.predator.Position, g.cfg.Player.MauledPushback), true)
	g.player.stop()
	g.emit(survival.EventPlayerMauled, map[string]any{"wood_lost": lost})
}

func (g *Game) scheduleRespawn(kind world.NodeKind, zone world.Zone) {
	var delay time.Duration
	switch kind {
	case world.NodeTree:
		delay = g.cfg.Respawn.Tree
	case world.NodeRock:
		delay = g.cfg.Respawn.Rock
	default:
		return
	}
	g.respawns = append(g.respawns, respawn{kind: kind, zone: zone, remaining: delay})
}

func (g *Game) advanceRespawns(dt time.Duration) {
	due := g.respawns[:0]
	var ready []respawn
	for _, r := range g.respawns {
		r.remaining -= dt
		if r.remaining > 0 {
			due = append(due, r)
			continue
		}
		ready = append(ready, r)
	}
	g.respawns = due
	for _, r := range ready {
		if r.predator {
			g.spawnPredator()
			continue
		}
		ref := g.spawnNode(r.kind, r.zone)
		pos, _ := g.nodes.Position(ref)
		g.emit(survival.EventNodeRespawned, map[string]any{"kind": string(r.kind), "x": pos.X, "y": pos.Y})
	}
}

func (g *Game) zoneRect(zone world.Zone) world.Rect {
	switch zone {
	case world.ZoneWild:
		return g.cfg.Layout.WildZone
	case world.ZoneQuarry:
		return g.cfg.Layout.QuarryZone
	case world.ZonePatrol:
		return g.cfg.Predator.Zone
	default:
		return g.cfg.Layout.SafeZone
	}
}

func (g *Game) spawnNode(kind world.NodeKind, zone world.Zone) world.NodeRef {
	l := g.cfg.Layout
	avoid := []world.Point{l.Furnace, l.Quarry, g.player.Position}
	at := g.scatter.Place(g.zoneRect(zone), avoid, l.MinSpawnSpacing)
	health := 1
	if kind == world.NodeRock && g.cfg.RockHealth > 0 {
		health = g.cfg.RockHealth
	}
	return g.nodes.Spawn(kind, zone, at, health)
}

func (g *Game) spawnPredator() {
	if g.predator != nil {
		return
	}
	at := g.scatter.Place(g.cfg.Predator.Zone, []world.Point{g.player.Position}, g.cfg.Layout.PredatorMinPlayer)
	g.predator = agent.NewPredator(g.nextAgentID(), at, g.cfg.Predator, g.rng)
	g.emit(survival.EventPredatorSpawned, map[string]any{"x": at.X, "y": at.Y})
}

// openWild lifts the fog wall and populates the land behind it.
func (g *Game) openWild() {
	if g.terrain.FogOpen {
		return
	}
	g.terrain.FogOpen = true
	for i := 0; i < g.cfg.Layout.WildTrees; i++ {
		g.spawnNode(world.NodeTree, world.ZoneWild)
	}
	g.spawnPredator()
}

func (g *Game) nextAgentID() int {
	g.nextID++
	return g.nextID
}

func (g *Game) countGathered(item survival.Item, n int) {
	switch item {
	case survival.ItemWood:
		g.stats.TotalWoodGathered += n
	case survival.ItemStone:
		g.stats.TotalStoneMined += n
	case survival.ItemMeat:
		g.stats.TotalMeatCollected += n
	}
}

func yieldOf(kind world.NodeKind) survival.Item {
	switch kind {
	case world.NodeTree:
		return survival.ItemWood
	case world.NodeRock:
		return survival.ItemStone
	case world.NodeMeat:
		return survival.ItemMeat
	case world.NodeSnowPile:
		return survival.ItemSnow
	}
	return ""
}

// townDepositor routes worker hauls into the stash and the run statistics.
type townDepositor struct {
	g *Game
}

func (d townDepositor) Deposit(item survival.Item, amount int) {
	d.g.economy.Deposit(item, amount)
	d.g.countGathered(item, amount)
}

func (d townDepositor) Refuel(amount float64) {
	d.g.economy.Refuel(amount)
}
