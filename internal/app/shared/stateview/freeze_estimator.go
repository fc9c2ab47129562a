package stateview

import (
	"math"
	"time"

	"frostfire/internal/domain/survival"
)

type FreezeEstimate struct {
	IsFreezing      bool
	LossPerSecond   float64
	TimeLeft        time.Duration
	StormMultiplier float64
	Causes          []string
}

// EstimateFreeze projects how long the furnace lasts at the current decay
// rate. The storm multiplier applies only when the player is exposed to an
// active blizzard.
func EstimateFreeze(temp survival.Temperature, decayPerSecond, hazardMultiplier float64, stormActive, sheltered bool) FreezeEstimate {
	mult := 1.0
	causes := make([]string, 0, 2)
	if stormActive && !sheltered {
		mult = math.Max(hazardMultiplier, 1)
		causes = append(causes, "EXPOSED_TO_BLIZZARD")
	}
	burn := temp.BurnRate
	if burn <= 0 {
		burn = survival.DefaultBurnRate
	}
	loss := math.Max(decayPerSecond, 0) * burn * mult
	if loss > 0 {
		causes = append([]string{"FURNACE_BURNING"}, causes...)
	}

	out := FreezeEstimate{
		IsFreezing:      loss > 0 && temp.Value > 0,
		LossPerSecond:   loss,
		StormMultiplier: mult,
		Causes:          causes,
	}
	if out.IsFreezing {
		out.TimeLeft = secondsToDuration(temp.Value / loss)
	}
	return out
}

func secondsToDuration(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(math.Round(s * float64(time.Second)))
}
