package survival

import (
	"encoding/json"
	"sort"
)

const SaveVersion = 1

// SaveState is the flat persisted shape of a run.
type SaveState struct {
	Version            int     `json:"version"`
	SaveID             string  `json:"save_id"`
	Wood               int     `json:"wood"`
	Stone              int     `json:"stone"`
	Meat               int     `json:"meat"`
	Snow               int     `json:"snow"`
	TownWood           int     `json:"town_wood"`
	TownStone          int     `json:"town_stone"`
	TownMeat           int     `json:"town_meat"`
	Temperature        float64 `json:"temperature"`
	FurnaceLevel       int     `json:"furnace_level"`
	HasSpear           bool    `json:"has_spear"`
	HasHut             bool    `json:"has_hut"`
	HasGatherer        bool    `json:"has_gatherer"`
	HasQuarryWorker    bool    `json:"has_quarry_worker"`
	PlayerX            float64 `json:"player_x"`
	PlayerY            float64 `json:"player_y"`
	DaysSurvived       int     `json:"days_survived"`
	TotalWoodGathered  int     `json:"total_wood_gathered"`
	TotalStoneMined    int     `json:"total_stone_mined"`
	TotalMeatCollected int     `json:"total_meat_collected"`
	BearsKilled        int     `json:"bears_killed"`
	BlizzardsSurvived  int     `json:"blizzards_survived"`
	PlayTimeMS         int64   `json:"play_time_ms"`
	LastSaved          int64   `json:"last_saved"`
}

// RunStats are the cumulative counters of the current run.
type RunStats struct {
	DaysSurvived       int `json:"days_survived"`
	TotalWoodGathered  int `json:"total_wood_gathered"`
	TotalStoneMined    int `json:"total_stone_mined"`
	TotalMeatCollected int `json:"total_meat_collected"`
	BearsKilled        int `json:"bears_killed"`
	BlizzardsSurvived  int `json:"blizzards_survived"`
}

func DefaultSave() SaveState {
	return SaveState{
		Version:      SaveVersion,
		Temperature:  DefaultStartTemperature,
		FurnaceLevel: StartingFurnaceLevel,
		PlayerX:      100,
		PlayerY:      100,
	}
}

func nonNegative(n int) bool { return n >= 0 }
func nonNegative64(n int64) bool { return n >= 0 }
func nonNegativeF(f float64) bool { return f >= 0 }
func furnaceLevel(n int) bool { return n >= StartingFurnaceLevel }
func anyBool(bool) bool { return true }
func anyString(string) bool { return true }
func anyFloat(float64) bool { return true }

// DecodeSave reads a save field by field. A field that is missing, has the
// wrong type or an invalid value keeps its fresh-game default and is listed
// in the returned slice. A payload that is not a JSON object yields a fresh
// game and the single entry "*".
func DecodeSave(raw []byte) (SaveState, []string) {
	out := DefaultSave()
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return out, []string{"*"}
	}

	var defaulted []string
	d := &decoder{fields: fields, defaulted: &defaulted}
	decodeField(d, "version", &out.Version, nonNegative)
	decodeField(d, "save_id", &out.SaveID, anyString)
	decodeField(d, "wood", &out.Wood, nonNegative)
	decodeField(d, "stone", &out.Stone, nonNegative)
	decodeField(d, "meat", &out.Meat, nonNegative)
	decodeField(d, "snow", &out.Snow, nonNegative)
	decodeField(d, "town_wood", &out.TownWood, nonNegative)
	decodeField(d, "town_stone", &out.TownStone, nonNegative)
	decodeField(d, "town_meat", &out.TownMeat, nonNegative)
	decodeField(d, "temperature", &out.Temperature, nonNegativeF)
	decodeField(d, "furnace_level", &out.FurnaceLevel, furnaceLevel)
	decodeField(d, "has_spear", &out.HasSpear, anyBool)
	decodeField(d, "has_hut", &out.HasHut, anyBool)
	decodeField(d, "has_gatherer", &out.HasGatherer, anyBool)
	decodeField(d, "has_quarry_worker", &out.HasQuarryWorker, anyBool)
	decodeField(d, "player_x", &out.PlayerX, anyFloat)
	decodeField(d, "player_y", &out.PlayerY, anyFloat)
	decodeField(d, "days_survived", &out.DaysSurvived, nonNegative)
	decodeField(d, "total_wood_gathered", &out.TotalWoodGathered, nonNegative)
	decodeField(d, "total_stone_mined", &out.TotalStoneMined, nonNegative)
	decodeField(d, "total_meat_collected", &out.TotalMeatCollected, nonNegative)
	decodeField(d, "bears_killed", &out.BearsKilled, nonNegative)
	decodeField(d, "blizzards_survived", &out.BlizzardsSurvived, nonNegative)
	decodeField(d, "play_time_ms", &out.PlayTimeMS, nonNegative64)
	decodeField(d, "last_saved", &out.LastSaved, nonNegative64)

	sort.Strings(defaulted)
	return out, defaulted
}

type decoder struct {
	fields    map[string]json.RawMessage
	defaulted *[]string
}

func decodeField[T any](d *decoder, key string, dst *T, valid func(T) bool) {
	raw, ok := d.fields[key]
	if !ok {
		*d.defaulted = append(*d.defaulted, key)
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil || !valid(v) {
		*d.defaulted = append(*d.defaulted, key)
		return
	}
	*dst = v
}

// Export fills the economy part of a save.
func (e *Economy) Export(s *SaveState) {
	s.Wood = e.Inventory.Count(ItemWood)
	s.Stone = e.Inventory.Count(ItemStone)
	s.Meat = e.Inventory.Count(ItemMeat)
	s.Snow = e.Inventory.Count(ItemSnow)
	s.TownWood = e.Stash[ItemWood]
	s.TownStone = e.Stash[ItemStone]
	s.TownMeat = e.Stash[ItemMeat]
	s.Temperature = e.Temperature.Value
	s.FurnaceLevel = e.FurnaceLevel
	s.HasSpear = e.Unlocks[UnlockSpear]
	s.HasHut = e.Unlocks[UnlockHut]
}

// Restore rebuilds the economy from a save. Values are clamped so the
// capacity and temperature invariants hold even for hand-edited saves.
func (e *Economy) Restore(s SaveState) {
	fresh := NewEconomy(e.cfg)
	*e = *fresh

	level := s.FurnaceLevel
	if level < StartingFurnaceLevel {
		level = StartingFurnaceLevel
	}
	if level > e.cfg.MaxFurnaceLevel {
		level = e.cfg.MaxFurnaceLevel
	}
	for e.FurnaceLevel < level {
		e.FurnaceLevel++
		e.Temperature.BurnRate *= UpgradeBurnRateFactor
		e.Unlocks[UnlockQuarry] = true
		e.Unlocks[UnlockWild] = true
	}

	for _, p := range []struct {
		item Item
		n    int
	}{{ItemWood, s.Wood}, {ItemStone, s.Stone}, {ItemMeat, s.Meat}, {ItemSnow, s.Snow}} {
		n := p.n
		if e.Inventory.IsCapped(p.item) && n > e.Inventory.Free() {
			n = e.Inventory.Free()
		}
		if n > 0 {
			e.Inventory.TryAdd(p.item, n)
		}
	}
	e.Deposit(ItemWood, s.TownWood)
	e.Deposit(ItemStone, s.TownStone)
	e.Deposit(ItemMeat, s.TownMeat)

	e.Temperature.Value = s.Temperature
	if e.Temperature.Value > e.Temperature.Max {
		e.Temperature.Value = e.Temperature.Max
	}
	if e.Temperature.Value <= 0 {
		e.Temperature.Value = e.cfg.StartTemperature
	}
	e.Unlocks[UnlockSpear] = s.HasSpear
	e.Unlocks[UnlockHut] = s.HasHut
}
