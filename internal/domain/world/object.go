package world

import (
	"errors"
	"time"
)

type ShelterKind string

const (
	ShelterFurnace   ShelterKind = "furnace"
	ShelterHut       ShelterKind = "hut"
	ShelterStickHome ShelterKind = "stick_home"
	ShelterStoneHome ShelterKind = "stone_home"
	ShelterIgloo     ShelterKind = "igloo"
)

// Shelter is a protective structure. Lifetime == 0 means permanent.
type Shelter struct {
	ID       int           `json:"id"`
	Kind     ShelterKind   `json:"kind"`
	Position Point         `json:"position"`
	Radius   float64       `json:"radius"`
	Lifetime time.Duration `json:"lifetime"`
	Elapsed  time.Duration `json:"elapsed"`
}

var ErrInvalidShelter = errors.New("invalid shelter")

func (s Shelter) Validate() error {
	if s.Kind == "" || s.Radius <= 0 || s.Lifetime < 0 || s.Elapsed < 0 {
		return ErrInvalidShelter
	}
	return nil
}

func (s Shelter) Temporary() bool { return s.Lifetime > 0 }

func (s Shelter) Expired() bool {
	return s.Temporary() && s.Elapsed >= s.Lifetime
}

// Integrity is 1 for a fresh or permanent shelter and falls linearly to 0 at expiry.
func (s Shelter) Integrity() float64 {
	if !s.Temporary() {
		return 1
	}
	v := 1 - float64(s.Elapsed)/float64(s.Lifetime)
	if v < 0 {
		return 0
	}
	return v
}

func (s Shelter) Covers(p Point) bool {
	return !s.Expired() && s.Position.Dist(p) <= s.Radius
}

type Shelters struct {
	items  []Shelter
	nextID int
}

func NewShelters() *Shelters {
	return &Shelters{nextID: 1}
}

func (s *Shelters) Add(kind ShelterKind, at Point, radius float64, lifetime time.Duration) (Shelter, error) {
	sh := Shelter{ID: s.nextID, Kind: kind, Position: at, Radius: radius, Lifetime: lifetime}
	if err := sh.Validate(); err != nil {
		return Shelter{}, err
	}
	s.nextID++
	s.items = append(s.items, sh)
	return sh, nil
}

// Advance ages temporary shelters by dt unless the storm is active, and
// drops the ones that expired. Expired shelters are returned.
func (s *Shelters) Advance(dt time.Duration, stormActive bool) []Shelter {
	if stormActive || dt <= 0 {
		return nil
	}
	var expired []Shelter
	kept := s.items[:0]
	for _, sh := range s.items {
		if sh.Temporary() {
			sh.Elapsed += dt
			if sh.Expired() {
				expired = append(expired, sh)
				continue
			}
		}
		kept = append(kept, sh)
	}
	s.items = kept
	return expired
}

// IsSheltered reports whether p lies within any active shelter.
func (s *Shelters) IsSheltered(p Point) bool {
	for _, sh := range s.items {
		if sh.Covers(p) {
			return true
		}
	}
	return false
}

func (s *Shelters) Has(kind ShelterKind) bool {
	for _, sh := range s.items {
		if sh.Kind == kind {
			return true
		}
	}
	return false
}

func (s *Shelters) List() []Shelter {
	out := make([]Shelter, len(s.items))
	copy(out, s.items)
	return out
}
