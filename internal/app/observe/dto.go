package observe

import "frostfire/internal/app/sim"

type Request struct {
	// Since skips the frame when the game has not ticked past it.
	Since uint64
}

type Response struct {
	SessionID string    `json:"session_id"`
	Changed   bool      `json:"changed"`
	Frame     sim.Frame `json:"frame"`
}
