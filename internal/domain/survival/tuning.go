package survival

const (
	DefaultInventoryCapacity = 10
	DefaultMaxTemperature    = 100.0
	DefaultStartTemperature  = 100.0
	DefaultBurnRate          = 1.0
	DefaultHazardMultiplier  = 5.0
	DefaultMaxFurnaceLevel   = 2
	StartingFurnaceLevel     = 1

	// Burn rate is multiplied by this on every furnace upgrade.
	UpgradeBurnRateFactor = 0.5

	MeatHeat      = 50.0
	WoodHeat      = 10.0
	AgentWoodHeat = 15.0
)

// DefaultCappedItems count toward inventory capacity. Snow is exempt.
var DefaultCappedItems = []Item{ItemWood, ItemStone, ItemMeat}
