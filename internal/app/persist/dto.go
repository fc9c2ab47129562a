package persist

import (
	"time"

	"frostfire/internal/app/sim"
	"frostfire/internal/domain/survival"
)

type SaveRequest struct {
	Slot string `json:"slot"`
}

type SaveResponse struct {
	Slot    string             `json:"slot"`
	SaveID  string             `json:"save_id"`
	SavedAt time.Time          `json:"saved_at"`
	State   survival.SaveState `json:"state"`
}

type LoadRequest struct {
	Slot string `json:"slot"`
}

type LoadResponse struct {
	Slot      string    `json:"slot,omitempty"`
	SaveID    string    `json:"save_id"`
	Defaulted []string  `json:"defaulted,omitempty"`
	Frame     sim.Frame `json:"frame"`
}

type ExportResponse struct {
	Payload []byte
	State   survival.SaveState
}

type NewGameResponse struct {
	SessionID string    `json:"session_id"`
	Frame     sim.Frame `json:"frame"`
}

type SlotSummary struct {
	Slot     string    `json:"slot"`
	SaveID   string    `json:"save_id"`
	SavedAt  time.Time `json:"saved_at"`
	SavedAgo string    `json:"saved_ago"`
}
