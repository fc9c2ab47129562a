package intent

import "frostfire/internal/app/sim"

type Request struct {
	Type string   `json:"type"`
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
	Kind string   `json:"kind,omitempty"`
}

type Response struct {
	Accepted bool      `json:"accepted"`
	Intent   string    `json:"intent"`
	Frame    sim.Frame `json:"frame"`
}
