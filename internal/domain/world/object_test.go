package world

import (
	"testing"
	"time"
)

func TestShelterValidity(t *testing.T) {
	s := Shelter{Kind: ShelterHut, Radius: 100}
	if err := s.Validate(); err != nil {
		t.Fatalf("expected valid shelter, got %v", err)
	}
	bad := Shelter{Kind: ShelterIgloo, Radius: 0}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected invalid shelter")
	}
}

func TestIglooMeltSuspendedDuringStorm(t *testing.T) {
	shelters := NewShelters()
	if _, err := shelters.Add(ShelterIgloo, Point{X: 100, Y: 100}, 60, 120*time.Second); err != nil {
		t.Fatalf("add igloo: %v", err)
	}

	shelters.Advance(60*time.Second, false)
	shelters.Advance(90*time.Second, true)
	list := shelters.List()
	if len(list) != 1 {
		t.Fatalf("expected igloo to survive the storm, got %d shelters", len(list))
	}
	if got := list[0].Integrity(); got != 0.5 {
		t.Fatalf("expected integrity 0.5, got %v", got)
	}
	if !shelters.IsSheltered(Point{X: 130, Y: 100}) {
		t.Fatalf("expected point inside igloo radius to be sheltered")
	}

	expired := shelters.Advance(60*time.Second, false)
	if len(expired) != 1 || expired[0].Kind != ShelterIgloo {
		t.Fatalf("expected igloo to expire, got %+v", expired)
	}
	if shelters.IsSheltered(Point{X: 130, Y: 100}) {
		t.Fatalf("expected no shelter after melt")
	}
}

func TestPermanentShelterNeverExpires(t *testing.T) {
	shelters := NewShelters()
	_, _ = shelters.Add(ShelterFurnace, Point{X: 400, Y: 300}, 100, 0)
	shelters.Advance(24*time.Hour, false)
	if !shelters.IsSheltered(Point{X: 450, Y: 300}) {
		t.Fatalf("expected furnace to keep sheltering")
	}
	if shelters.IsSheltered(Point{X: 600, Y: 300}) {
		t.Fatalf("expected point outside radius to be exposed")
	}
}
