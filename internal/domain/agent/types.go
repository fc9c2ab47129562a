// Package agent holds the autonomous actors: workers that harvest and haul
// resources to a drop-off, and a predator that patrols a zone.
package agent

import (
	"frostfire/internal/domain/survival"
	"frostfire/internal/domain/world"
)

type Kind string

const (
	KindGatherer     Kind = "gatherer"
	KindQuarryWorker Kind = "quarry_worker"
	KindPredator     Kind = "predator"
)

type State string

const (
	StateIdle       State = "idle"
	StateSeeking    State = "seeking"
	StatePerforming State = "performing"
	StateReturning  State = "returning"
	StateRoaming    State = "roaming"
)

// NodeIndex is the slice of the node table a worker may touch.
type NodeIndex interface {
	Nearest(from world.Point, radius float64, kinds ...world.NodeKind) (world.NodeRef, world.Point, bool)
	Position(ref world.NodeRef) (world.Point, bool)
	Get(ref world.NodeRef) (world.Point, world.Node, bool)
	Hit(ref world.NodeRef) bool
	Remove(ref world.NodeRef) bool
}

// Depositor receives what workers haul home.
type Depositor interface {
	Deposit(item survival.Item, amount int)
	Refuel(amount float64)
}

type Env struct {
	Nodes   NodeIndex
	Economy Depositor
	Terrain world.Terrain
}

// Outcome reports what happened to a worker during one Update.
type Outcome struct {
	Harvested     bool
	HarvestedKind world.NodeKind
	HarvestedZone world.Zone
	HarvestedAt   world.Point
	Deposited     int
	DepositedItem survival.Item
	Stuck         bool
	From, To      State
}

type View struct {
	ID       int         `json:"id"`
	Kind     Kind        `json:"kind"`
	State    State       `json:"state"`
	Position world.Point `json:"position"`
	Carrying int         `json:"carrying,omitempty"`
	Health   int         `json:"health,omitempty"`
}
