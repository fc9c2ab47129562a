package replay

import "frostfire/internal/domain/survival"

type Request struct {
	SessionID    string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

type Response struct {
	Events []survival.DomainEvent     `json:"events"`
	Counts map[survival.EventType]int `json:"counts"`
	Latest *survival.DomainEvent      `json:"latest,omitempty"`
}
