package survival

type EconomyConfig struct {
	Capacity         int     `yaml:"capacity"`
	MaxTemperature   float64 `yaml:"max_temperature"`
	StartTemperature float64 `yaml:"start_temperature"`
	BurnRate         float64 `yaml:"burn_rate"`
	HazardMultiplier float64 `yaml:"hazard_multiplier"`
	MaxFurnaceLevel  int     `yaml:"max_furnace_level"`
	CappedItems      []Item  `yaml:"capped_items"`
}

func DefaultEconomyConfig() EconomyConfig {
	return EconomyConfig{
		Capacity:         DefaultInventoryCapacity,
		MaxTemperature:   DefaultMaxTemperature,
		StartTemperature: DefaultStartTemperature,
		BurnRate:         DefaultBurnRate,
		HazardMultiplier: DefaultHazardMultiplier,
		MaxFurnaceLevel:  DefaultMaxFurnaceLevel,
		CappedItems:      append([]Item(nil), DefaultCappedItems...),
	}
}

func (c EconomyConfig) normalized() EconomyConfig {
	d := DefaultEconomyConfig()
	if c.Capacity <= 0 {
		c.Capacity = d.Capacity
	}
	if c.MaxTemperature <= 0 {
		c.MaxTemperature = d.MaxTemperature
	}
	if c.StartTemperature <= 0 || c.StartTemperature > c.MaxTemperature {
		c.StartTemperature = c.MaxTemperature
	}
	if c.BurnRate <= 0 {
		c.BurnRate = d.BurnRate
	}
	if c.HazardMultiplier < 1 {
		c.HazardMultiplier = d.HazardMultiplier
	}
	if c.MaxFurnaceLevel < StartingFurnaceLevel {
		c.MaxFurnaceLevel = d.MaxFurnaceLevel
	}
	if len(c.CappedItems) == 0 {
		c.CappedItems = d.CappedItems
	}
	return c
}

type Temperature struct {
	Value    float64 `json:"value"`
	Max      float64 `json:"max"`
	BurnRate float64 `json:"burn_rate"`
}

// Economy owns the personal inventory, the uncapped town stash, the
// temperature meter and the one-way furnace progression.
type Economy struct {
	cfg          EconomyConfig
	Inventory    Inventory
	Stash        map[Item]int
	Temperature  Temperature
	FurnaceLevel int
	Unlocks      map[Unlock]bool
	GameOver     bool
}

func NewEconomy(cfg EconomyConfig) *Economy {
	cfg = cfg.normalized()
	return &Economy{
		cfg:       cfg,
		Inventory: NewInventory(cfg.Capacity, cfg.CappedItems...),
		Stash:     map[Item]int{},
		Temperature: Temperature{
			Value:    cfg.StartTemperature,
			Max:      cfg.MaxTemperature,
			BurnRate: cfg.BurnRate,
		},
		FurnaceLevel: StartingFurnaceLevel,
		Unlocks:      map[Unlock]bool{},
	}
}

func (e *Economy) Config() EconomyConfig { return e.cfg }

// Deposit adds to the town stash. It never fails.
func (e *Economy) Deposit(item Item, amount int) {
	if amount <= 0 || item == "" {
		return
	}
	e.Stash[item] += amount
}

func (e *Economy) TryAddToInventory(item Item, amount int) bool {
	return e.Inventory.TryAdd(item, amount)
}

// Total is the combined personal and stash count of item.
func (e *Economy) Total(item Item) int {
	return e.Inventory.Count(item) + e.Stash[item]
}

func (e *Economy) Refuel(amount float64) {
	if amount <= 0 || e.GameOver {
		return
	}
	e.Temperature.Value += amount
	if e.Temperature.Value > e.Temperature.Max {
		e.Temperature.Value = e.Temperature.Max
	}
}

// DecayTemperature subtracts baseRate scaled by the burn rate, and by the hazard
// multiplier when the storm is active and the player is exposed. It returns
// true only on the call that first brings the temperature to zero.
func (e *Economy) DecayTemperature(baseRate float64, stormActive, sheltered bool) bool {
	if e.GameOver || baseRate <= 0 {
		return false
	}
	mult := 1.0
	if stormActive && !sheltered {
		mult = e.cfg.HazardMultiplier
	}
	e.Temperature.Value -= baseRate * e.Temperature.BurnRate * mult
	if e.Temperature.Value <= 0 {
		e.Temperature.Value = 0
		return e.MarkGameOver()
	}
	return false
}

// MarkGameOver is idempotent; only the first call reports true.
func (e *Economy) MarkGameOver() bool {
	if e.GameOver {
		return false
	}
	e.GameOver = true
	return true
}

// BurnCarried feeds the furnace from the personal pack: all meat if any,
// otherwise all wood. It returns what was burned and the heat gained.
func (e *Economy) BurnCarried() (Item, int, float64, error) {
	if n := e.Inventory.Take(ItemMeat); n > 0 {
		heat := float64(n) * MeatHeat
		e.Refuel(heat)
		return ItemMeat, n, heat, nil
	}
	if n := e.Inventory.Take(ItemWood); n > 0 {
		heat := float64(n) * WoodHeat
		e.Refuel(heat)
		return ItemWood, n, heat, nil
	}
	return "", 0, 0, ErrNothingCarried
}

// StashCarried moves every capped item from the pack to the town stash.
func (e *Economy) StashCarried() (map[Item]int, error) {
	moved := map[Item]int{}
	for _, item := range e.cfg.CappedItems {
		if n := e.Inventory.Take(item); n > 0 {
			e.Deposit(item, n)
			moved[item] = n
		}
	}
	if len(moved) == 0 {
		return nil, ErrNothingCarried
	}
	return moved, nil
}
