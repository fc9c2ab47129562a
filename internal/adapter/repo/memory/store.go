package memory

import (
	"sync"

	"frostfire/internal/app/ports"
	"frostfire/internal/domain/survival"
)

type Store struct {
	mu       sync.RWMutex
	saves    map[string]ports.SaveRecord
	progress map[string]survival.Progression
	events   map[string][]survival.DomainEvent
}

func NewStore() *Store {
	return &Store{
		saves:    make(map[string]ports.SaveRecord),
		progress: make(map[string]survival.Progression),
		events:   make(map[string][]survival.DomainEvent),
	}
}

func (s *Store) SeedSave(rec ports.SaveRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves[rec.Slot] = rec
}
