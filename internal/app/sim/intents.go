package sim

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"frostfire/internal/domain/agent"
	"frostfire/internal/domain/survival"
	"frostfire/internal/domain/world"
)

type Intent string

const (
	IntentMove          Intent = "move"
	IntentGather        Intent = "gather"
	IntentAttack        Intent = "attack"
	IntentDeposit       Intent = "deposit"
	IntentBuild         Intent = "build"
	IntentUpgrade       Intent = "upgrade"
	IntentHire          Intent = "hire"
	IntentCraft         Intent = "craft"
	IntentForceBlizzard Intent = "force_blizzard"
)

var (
	ErrGameOver       = errors.New("game over")
	ErrNotNearStation = errors.New("not near the required station")
	ErrNothingInRange = errors.New("nothing in range")
	ErrAgentLimit     = errors.New("agent limit reached")
	ErrNoWeapon       = errors.New("no weapon")
	ErrCooldownActive = errors.New("cooldown active")
	ErrBusy           = errors.New("busy")
	ErrInvalidTarget  = errors.New("invalid target")
	ErrUnknownIntent  = errors.New("unknown intent")
	ErrInventoryFull  = survival.ErrInventoryFull
	ErrInsufficient   = survival.ErrInsufficientResources
	ErrLocked         = survival.ErrLocked
	ErrAlreadyOwned   = survival.ErrAlreadyOwned
	ErrUnknownKind    = survival.ErrUnknownKind
	ErrMaxLevel       = survival.ErrMaxLevel
	ErrNothingCarried = survival.ErrNothingCarried
)

// RejectedError is returned by every Request method that left the game
// unchanged.
type RejectedError struct {
	Intent Intent
	Err    error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected: %v", e.Intent, e.Err)
}

func (e *RejectedError) Unwrap() error { return e.Err }

func reject(intent Intent, err error) error {
	return &RejectedError{Intent: intent, Err: err}
}

// ReasonCode maps a rejection to a stable upper-case code for clients.
func ReasonCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrGameOver):
		return "GAME_OVER"
	case errors.Is(err, ErrInventoryFull):
		return "INVENTORY_FULL"
	case errors.Is(err, ErrInsufficient):
		return "INSUFFICIENT_RESOURCES"
	case errors.Is(err, ErrLocked):
		return "LOCKED"
	case errors.Is(err, ErrAlreadyOwned):
		return "ALREADY_OWNED"
	case errors.Is(err, ErrMaxLevel):
		return "MAX_LEVEL"
	case errors.Is(err, ErrUnknownKind):
		return "UNKNOWN_KIND"
	case errors.Is(err, ErrNothingCarried):
		return "NOTHING_CARRIED"
	case errors.Is(err, ErrNotNearStation):
		return "NOT_NEAR_STATION"
	case errors.Is(err, ErrNothingInRange):
		return "NOTHING_IN_RANGE"
	case errors.Is(err, ErrAgentLimit):
		return "AGENT_LIMIT"
	case errors.Is(err, ErrNoWeapon):
		return "NO_WEAPON"
	case errors.Is(err, ErrCooldownActive):
		return "COOLDOWN_ACTIVE"
	case errors.Is(err, ErrBusy):
		return "BUSY"
	case errors.Is(err, ErrInvalidTarget):
		return "INVALID_TARGET"
	case errors.Is(err, ErrUnknownIntent):
		return "UNKNOWN_INTENT"
	}
	return "REJECTED"
}

func (g *Game) guard(intent Intent) error {
	if g.economy.GameOver {
		return reject(intent, ErrGameOver)
	}
	return nil
}

// RequestMove sets a walk destination, clamped to the map. It cancels an
// ongoing gather.
func (g *Game) RequestMove(to world.Point) error {
	if err := g.guard(IntentMove); err != nil {
		return err
	}
	if math.IsNaN(to.X) || math.IsNaN(to.Y) || math.IsInf(to.X, 0) || math.IsInf(to.Y, 0) {
		return reject(IntentMove, ErrInvalidTarget)
	}
	g.player.stopGathering()
	g.player.Destination = g.terrain.Bounds.Clamp(to)
	g.player.Moving = g.player.Destination != g.player.Position
	return nil
}

// RequestGather starts harvesting the nearest tree or rock within reach.
func (g *Game) RequestGather() error {
	if err := g.guard(IntentGather); err != nil {
		return err
	}
	if g.player.Gathering {
		return reject(IntentGather, ErrBusy)
	}
	ref, _, ok := g.nodes.Nearest(g.player.Position, g.cfg.Player.GatherRange, world.NodeTree, world.NodeRock)
	if !ok {
		return reject(IntentGather, ErrNothingInRange)
	}
	_, node, _ := g.nodes.Get(ref)
	item := yieldOf(node.Kind)
	if g.economy.Inventory.IsCapped(item) && g.economy.Inventory.Free() <= 0 {
		return reject(IntentGather, ErrInventoryFull)
	}
	g.player.Moving = false
	g.player.Gathering = true
	g.player.GatherTarget = ref
	g.player.GatherTimer = 0
	return nil
}

// RequestAttack thrusts the spear toward target. A miss still spends the
// cooldown.
func (g *Game) RequestAttack(target world.Point) error {
	if err := g.guard(IntentAttack); err != nil {
		return err
	}
	if !g.economy.Unlocks[survival.UnlockSpear] {
		return reject(IntentAttack, ErrNoWeapon)
	}
	if g.player.Cooldown > 0 {
		return reject(IntentAttack, ErrCooldownActive)
	}
	g.player.Cooldown = g.cfg.Player.AttackCooldown

	tip := g.player.Position.MoveToward(target, g.cfg.Player.SpearReach)
	if g.predator == nil || !g.predator.Alive() || tip.Dist(g.predator.Position) > g.cfg.Player.SpearHitRadius {
		return nil
	}
	if !g.predator.Hit() {
		g.predator.KnockBack(g.player.Position, g.cfg.Player.SpearKnockback, g.terrain, g.rng)
		return nil
	}

	at := g.predator.Position
	g.predator = nil
	g.stats.BearsKilled++
	g.nodes.Spawn(world.NodeMeat, world.ZoneWild, at, 1)
	g.respawns = append(g.respawns, respawn{predator: true, remaining: g.cfg.Respawn.Predator})
	g.emit(survival.EventPredatorSlain, map[string]any{"x": at.X, "y": at.Y})
	return nil
}

// RequestDeposit burns carried fuel at the furnace or unloads the pack at
// the quarry stash, whichever station is in range.
func (g *Game) RequestDeposit() error {
	if err := g.guard(IntentDeposit); err != nil {
		return err
	}
	pos := g.player.Position
	l := g.cfg.Layout
	switch {
	case pos.Dist(l.Furnace) <= g.cfg.Player.StationRange:
		item, n, heat, err := g.economy.BurnCarried()
		if err != nil {
			return reject(IntentDeposit, err)
		}
		g.emit(survival.EventRefueled, map[string]any{"item": string(item), "amount": n, "heat": heat})
	case pos.Dist(l.Quarry) <= g.cfg.Player.StationRange:
		moved, err := g.economy.StashCarried()
		if err != nil {
			return reject(IntentDeposit, err)
		}
		payload := map[string]any{}
		for item, n := range moved {
			payload[string(item)] = n
		}
		g.emit(survival.EventAgentDeposited, payload)
	default:
		return reject(IntentDeposit, ErrNotNearStation)
	}
	return nil
}

// RequestBuild places a structure at the player's position. The hut always
// goes to its reserved plot.
func (g *Game) RequestBuild(kind string) error {
	if err := g.guard(IntentBuild); err != nil {
		return err
	}
	def, ok := survival.LookupBuild(kind)
	if !ok {
		return reject(IntentBuild, ErrUnknownKind)
	}
	if def.Unique && g.shelters.Has(def.Shelter) {
		return reject(IntentBuild, ErrAlreadyOwned)
	}
	at := g.player.Position
	if def.Kind == survival.BuildHut {
		at = g.cfg.Layout.Hut
	}
	if _, err := g.economy.Build(def.Kind); err != nil {
		return reject(IntentBuild, err)
	}
	sh, err := g.shelters.Add(def.Shelter, at, def.Radius, def.Lifetime)
	if err != nil {
		return reject(IntentBuild, err)
	}
	g.emit(survival.EventShelterBuilt, map[string]any{
		"id": sh.ID, "kind": string(sh.Kind), "x": at.X, "y": at.Y,
	})
	return nil
}

// RequestUpgrade raises the furnace level, which opens the fog wall.
func (g *Game) RequestUpgrade() error {
	if err := g.guard(IntentUpgrade); err != nil {
		return err
	}
	if g.player.Position.Dist(g.cfg.Layout.Furnace) > g.cfg.Player.UpgradeRange {
		return reject(IntentUpgrade, ErrNotNearStation)
	}
	if err := g.economy.UpgradeFurnace(); err != nil {
		return reject(IntentUpgrade, err)
	}
	g.emit(survival.EventFurnaceUpgraded, map[string]any{
		"level": g.economy.FurnaceLevel, "burn_rate": g.economy.Temperature.BurnRate,
	})
	g.openWild()
	return nil
}

// RequestHireAgent pays for and spawns one worker of kind.
func (g *Game) RequestHireAgent(kind string) error {
	if err := g.guard(IntentHire); err != nil {
		return err
	}
	k := agent.Kind(strings.ToLower(strings.TrimSpace(kind)))
	var role agent.Role
	switch k {
	case agent.KindGatherer:
		role = g.cfg.Gatherer
	case agent.KindQuarryWorker:
		role = g.cfg.QuarryWorker
	default:
		return reject(IntentHire, ErrUnknownKind)
	}
	if g.countWorkers(k) >= g.cfg.MaxPerKind {
		return reject(IntentHire, ErrAgentLimit)
	}
	if err := g.economy.Hire(survival.HireKind(k)); err != nil {
		return reject(IntentHire, err)
	}
	w := g.spawnWorker(role)
	g.emit(survival.EventAgentHired, map[string]any{"agent": w.ID, "kind": string(k)})
	return nil
}

func (g *Game) RequestCraft(kind string) error {
	if err := g.guard(IntentCraft); err != nil {
		return err
	}
	k := survival.CraftKind(strings.ToLower(strings.TrimSpace(kind)))
	if err := g.economy.Craft(k); err != nil {
		return reject(IntentCraft, err)
	}
	g.emit(survival.EventItemCrafted, map[string]any{"kind": string(k)})
	return nil
}

// ForceBlizzard starts the warning on the next tick. It is rejected unless
// the cycle is dormant.
func (g *Game) ForceBlizzard() error {
	if err := g.guard(IntentForceBlizzard); err != nil {
		return err
	}
	if !g.hazard.ForceTrigger() {
		return reject(IntentForceBlizzard, ErrBusy)
	}
	return nil
}

func (g *Game) countWorkers(kind agent.Kind) int {
	n := 0
	for _, w := range g.workers {
		if w.Role.Kind == kind {
			n++
		}
	}
	return n
}

func (g *Game) spawnWorker(role agent.Role) *agent.Worker {
	home := g.cfg.Layout.Furnace
	if role.Kind == agent.KindQuarryWorker {
		home = g.cfg.Layout.Quarry
	}
	w := agent.NewWorker(g.nextAgentID(), role, home, home)
	g.workers = append(g.workers, w)
	return w
}
