package survival

import "testing"

func TestTryAddRejectsOverCapacity(t *testing.T) {
	e := NewEconomy(DefaultEconomyConfig())
	if !e.TryAddToInventory(ItemWood, 9) {
		t.Fatalf("expected 9 wood to fit")
	}
	if e.TryAddToInventory(ItemWood, 2) {
		t.Fatalf("expected adding 2 wood over capacity to be rejected")
	}
	if got := e.Inventory.Count(ItemWood); got != 9 {
		t.Fatalf("expected wood to remain 9, got %d", got)
	}
	if !e.TryAddToInventory(ItemSnow, 50) {
		t.Fatalf("expected snow to bypass capacity")
	}
	if !e.TryAddToInventory(ItemMeat, 1) {
		t.Fatalf("expected last slot to accept meat")
	}
	if e.Inventory.Load() != 10 {
		t.Fatalf("expected load 10, got %d", e.Inventory.Load())
	}
}

func TestCapacityInvariantUnderRandomAdds(t *testing.T) {
	e := NewEconomy(DefaultEconomyConfig())
	items := []Item{ItemWood, ItemStone, ItemMeat, ItemSnow}
	for i := 0; i < 500; i++ {
		e.TryAddToInventory(items[i%len(items)], i%4+1)
		if i%7 == 0 {
			e.Inventory.Remove(ItemWood, 1)
		}
		if e.Inventory.Load() > e.Inventory.Capacity {
			t.Fatalf("capacity invariant broken at step %d: %d", i, e.Inventory.Load())
		}
	}
}

func TestDecayTemperatureScenario(t *testing.T) {
	e := NewEconomy(DefaultEconomyConfig())
	e.Temperature.Value = 10

	if e.DecayTemperature(1, false, false) {
		t.Fatalf("unexpected game over")
	}
	if e.Temperature.Value != 9 {
		t.Fatalf("expected 9, got %v", e.Temperature.Value)
	}

	e.Temperature.Value = 10
	e.DecayTemperature(1, true, false)
	if e.Temperature.Value != 5 {
		t.Fatalf("expected 5 with exposed storm decay, got %v", e.Temperature.Value)
	}

	e.Temperature.Value = 10
	e.DecayTemperature(1, true, true)
	if e.Temperature.Value != 9 {
		t.Fatalf("expected shelter to cancel storm multiplier, got %v", e.Temperature.Value)
	}

	e.Temperature.Value = 3
	if !e.DecayTemperature(5, false, false) {
		t.Fatalf("expected game over to fire when temperature hits 0")
	}
	if e.Temperature.Value != 0 {
		t.Fatalf("expected clamp at 0, got %v", e.Temperature.Value)
	}
	if e.DecayTemperature(5, false, false) {
		t.Fatalf("expected game over to fire only once")
	}
	if e.MarkGameOver() {
		t.Fatalf("expected repeated game over to be a no-op")
	}
	if e.Temperature.Value != 0 {
		t.Fatalf("expected temperature to stay 0, got %v", e.Temperature.Value)
	}
}

func TestRefuelClampsAtMax(t *testing.T) {
	e := NewEconomy(DefaultEconomyConfig())
	e.Temperature.Value = 90
	e.Refuel(50)
	if e.Temperature.Value != e.Temperature.Max {
		t.Fatalf("expected clamp at max, got %v", e.Temperature.Value)
	}
}

func TestSpendIsAtomic(t *testing.T) {
	e := NewEconomy(DefaultEconomyConfig())
	e.Deposit(ItemWood, 40)
	e.TryAddToInventory(ItemWood, 5)
	e.Deposit(ItemStone, 3)

	if e.Spend(Cost{ItemWood: 45, ItemStone: 4}) {
		t.Fatalf("expected spend to fail on stone")
	}
	if e.Stash[ItemWood] != 40 || e.Inventory.Count(ItemWood) != 5 || e.Stash[ItemStone] != 3 {
		t.Fatalf("expected no partial deduction, got stash=%v pack=%v", e.Stash, e.Inventory.Items)
	}

	if !e.Spend(Cost{ItemWood: 43}) {
		t.Fatalf("expected spend across stash and pack to succeed")
	}
	if e.Stash[ItemWood] != 0 || e.Inventory.Count(ItemWood) != 2 {
		t.Fatalf("expected stash drained first, got stash=%d pack=%d", e.Stash[ItemWood], e.Inventory.Count(ItemWood))
	}
}

func TestUpgradeHalvesBurnRateOnce(t *testing.T) {
	e := NewEconomy(DefaultEconomyConfig())
	if err := e.UpgradeFurnace(); err != ErrInsufficientResources {
		t.Fatalf("expected insufficient resources, got %v", err)
	}
	e.Deposit(ItemWood, 30)
	if err := e.UpgradeFurnace(); err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	if e.FurnaceLevel != 2 || e.Temperature.BurnRate != 0.5 {
		t.Fatalf("expected level 2 and burn rate 0.5, got %d %v", e.FurnaceLevel, e.Temperature.BurnRate)
	}
	if !e.Unlocks[UnlockQuarry] || !e.Unlocks[UnlockWild] {
		t.Fatalf("expected quarry and wild unlocked")
	}
	if err := e.UpgradeFurnace(); err != ErrMaxLevel {
		t.Fatalf("expected max level, got %v", err)
	}
	if e.Stash[ItemWood] != 20 {
		t.Fatalf("expected only one upgrade cost paid, got %d left", e.Stash[ItemWood])
	}
}

func TestBuildAndHireGates(t *testing.T) {
	e := NewEconomy(DefaultEconomyConfig())
	e.Deposit(ItemWood, 300)

	if _, err := e.Build(BuildHut); err != ErrLocked {
		t.Fatalf("expected hut locked before upgrade, got %v", err)
	}
	if err := e.Hire(HireGatherer); err != ErrLocked {
		t.Fatalf("expected gatherer locked without hut, got %v", err)
	}
	if err := e.UpgradeFurnace(); err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	def, err := e.Build(BuildHut)
	if err != nil {
		t.Fatalf("build hut: %v", err)
	}
	if def.Radius <= 0 || def.Lifetime != 0 {
		t.Fatalf("expected permanent hut with radius, got %+v", def)
	}
	if _, err := e.Build(BuildHut); err != ErrAlreadyOwned {
		t.Fatalf("expected second hut rejected, got %v", err)
	}
	if err := e.Hire(HireGatherer); err != nil {
		t.Fatalf("hire gatherer: %v", err)
	}
	if err := e.Hire(HireQuarryWorker); err != ErrInsufficientResources {
		t.Fatalf("expected quarry worker to need stone, got %v", err)
	}
	if _, err := e.Build(BuildIgloo); err != ErrInsufficientResources {
		t.Fatalf("expected igloo to need snow, got %v", err)
	}
	if err := e.Craft(CraftSpear); err != nil {
		t.Fatalf("craft spear: %v", err)
	}
	if err := e.Craft(CraftSpear); err != ErrAlreadyOwned {
		t.Fatalf("expected second spear rejected, got %v", err)
	}
}

func TestBurnCarriedPrefersMeat(t *testing.T) {
	e := NewEconomy(DefaultEconomyConfig())
	e.Temperature.Value = 10
	e.TryAddToInventory(ItemMeat, 1)
	e.TryAddToInventory(ItemWood, 3)

	item, n, heat, err := e.BurnCarried()
	if err != nil || item != ItemMeat || n != 1 || heat != MeatHeat {
		t.Fatalf("expected one meat burned, got %s %d %v %v", item, n, heat, err)
	}
	item, n, _, _ = e.BurnCarried()
	if item != ItemWood || n != 3 {
		t.Fatalf("expected wood burned next, got %s %d", item, n)
	}
	if e.Temperature.Value != 90 {
		t.Fatalf("expected 10+50+30=90, got %v", e.Temperature.Value)
	}
	if _, _, _, err := e.BurnCarried(); err != ErrNothingCarried {
		t.Fatalf("expected nothing carried, got %v", err)
	}
}

func TestStashCarried(t *testing.T) {
	e := NewEconomy(DefaultEconomyConfig())
	e.TryAddToInventory(ItemStone, 4)
	e.TryAddToInventory(ItemSnow, 4)
	moved, err := e.StashCarried()
	if err != nil {
		t.Fatalf("stash: %v", err)
	}
	if moved[ItemStone] != 4 || e.Stash[ItemStone] != 4 {
		t.Fatalf("expected 4 stone stashed, got %v", moved)
	}
	if e.Inventory.Count(ItemSnow) != 4 {
		t.Fatalf("expected snow to stay in the pack")
	}
}
