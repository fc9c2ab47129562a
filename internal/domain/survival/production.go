package survival

import (
	"strings"
	"time"

	"frostfire/internal/domain/world"
)

// Cost is a named price table.
type Cost map[Item]int

type BuildKind string

const (
	BuildHut       BuildKind = "hut"
	BuildStickHome BuildKind = "stick_home"
	BuildStoneHome BuildKind = "stone_home"
	BuildIgloo     BuildKind = "igloo"
)

type BuildDef struct {
	Kind            BuildKind
	Shelter         world.ShelterKind
	Cost            Cost
	Radius          float64
	Lifetime        time.Duration
	MinFurnaceLevel int
	Unique          bool
	Unlocks         Unlock
}

var buildDefs = map[BuildKind]BuildDef{
	BuildHut: {
		Kind: BuildHut, Shelter: world.ShelterHut, Cost: Cost{ItemWood: 100},
		Radius: 100, MinFurnaceLevel: 2, Unique: true, Unlocks: UnlockHut,
	},
	BuildStickHome: {
		Kind: BuildStickHome, Shelter: world.ShelterStickHome, Cost: Cost{ItemWood: 10},
		Radius: 60, MinFurnaceLevel: 1,
	},
	BuildStoneHome: {
		Kind: BuildStoneHome, Shelter: world.ShelterStoneHome, Cost: Cost{ItemStone: 20},
		Radius: 80, MinFurnaceLevel: 2,
	},
	BuildIgloo: {
		Kind: BuildIgloo, Shelter: world.ShelterIgloo, Cost: Cost{ItemSnow: 10},
		Radius: 60, Lifetime: 120 * time.Second, MinFurnaceLevel: 1,
	},
}

type CraftKind string

const CraftSpear CraftKind = "spear"

var craftDefs = map[CraftKind]struct {
	Cost            Cost
	MinFurnaceLevel int
	Unlocks         Unlock
}{
	CraftSpear: {Cost: Cost{ItemWood: 50}, MinFurnaceLevel: 2, Unlocks: UnlockSpear},
}

type HireKind string

const (
	HireGatherer     HireKind = "gatherer"
	HireQuarryWorker HireKind = "quarry_worker"
)

var hireDefs = map[HireKind]struct {
	Cost     Cost
	Requires Unlock
}{
	HireGatherer:     {Cost: Cost{ItemWood: 50}, Requires: UnlockHut},
	HireQuarryWorker: {Cost: Cost{ItemWood: 50, ItemStone: 10}, Requires: UnlockQuarry},
}

var UpgradeCost = Cost{ItemWood: 10}

func LookupBuild(kind string) (BuildDef, bool) {
	def, ok := buildDefs[BuildKind(strings.ToLower(strings.TrimSpace(kind)))]
	return def, ok
}

func BuildKinds() []BuildKind {
	return []BuildKind{BuildHut, BuildStickHome, BuildStoneHome, BuildIgloo}
}

// CanAfford reports whether personal inventory plus stash cover cost.
func (e *Economy) CanAfford(cost Cost) bool {
	for item, n := range cost {
		if n <= 0 {
			continue
		}
		if e.Inventory.Count(item)+e.Stash[item] < n {
			return false
		}
	}
	return true
}

// Spend deducts cost from the stash first and the personal inventory second.
// Nothing is deducted unless every entry is affordable.
func (e *Economy) Spend(cost Cost) bool {
	if !e.CanAfford(cost) {
		return false
	}
	for item, n := range cost {
		if n <= 0 {
			continue
		}
		fromStash := n
		if have := e.Stash[item]; have < fromStash {
			fromStash = have
		}
		e.Stash[item] -= fromStash
		if rest := n - fromStash; rest > 0 {
			e.Inventory.Remove(item, rest)
		}
	}
	return true
}

// Build pays for a structure after checking its gates. Uniqueness is the
// caller's concern because it depends on the live shelter set.
func (e *Economy) Build(kind BuildKind) (BuildDef, error) {
	def, ok := buildDefs[kind]
	if !ok {
		return BuildDef{}, ErrUnknownKind
	}
	if e.FurnaceLevel < def.MinFurnaceLevel {
		return BuildDef{}, ErrLocked
	}
	if def.Unlocks != "" && e.Unlocks[def.Unlocks] {
		return BuildDef{}, ErrAlreadyOwned
	}
	if !e.Spend(def.Cost) {
		return BuildDef{}, ErrInsufficientResources
	}
	if def.Unlocks != "" {
		e.Unlocks[def.Unlocks] = true
	}
	return def, nil
}

func (e *Economy) Craft(kind CraftKind) error {
	def, ok := craftDefs[kind]
	if !ok {
		return ErrUnknownKind
	}
	if e.Unlocks[def.Unlocks] {
		return ErrAlreadyOwned
	}
	if e.FurnaceLevel < def.MinFurnaceLevel {
		return ErrLocked
	}
	if !e.Spend(def.Cost) {
		return ErrInsufficientResources
	}
	e.Unlocks[def.Unlocks] = true
	return nil
}

// Hire pays for an agent. Head-count limits are enforced by the caller.
func (e *Economy) Hire(kind HireKind) error {
	def, ok := hireDefs[kind]
	if !ok {
		return ErrUnknownKind
	}
	if !e.Unlocks[def.Requires] {
		return ErrLocked
	}
	if !e.Spend(def.Cost) {
		return ErrInsufficientResources
	}
	return nil
}

// UpgradeFurnace is one-way: it raises the level, lowers the burn rate and
// unlocks the quarry and the wild.
func (e *Economy) UpgradeFurnace() error {
	if e.FurnaceLevel >= e.cfg.MaxFurnaceLevel {
		return ErrMaxLevel
	}
	if !e.Spend(UpgradeCost) {
		return ErrInsufficientResources
	}
	e.FurnaceLevel++
	e.Temperature.BurnRate *= UpgradeBurnRateFactor
	e.Unlocks[UnlockQuarry] = true
	e.Unlocks[UnlockWild] = true
	return nil
}
