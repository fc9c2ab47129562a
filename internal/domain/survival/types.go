package survival

import (
	"errors"
	"time"
)

type Item string

const (
	ItemWood  Item = "wood"
	ItemStone Item = "stone"
	ItemMeat  Item = "meat"
	ItemSnow  Item = "snow"
)

type Unlock string

const (
	UnlockSpear  Unlock = "spear"
	UnlockHut    Unlock = "hut"
	UnlockQuarry Unlock = "quarry"
	UnlockWild   Unlock = "wild"
)

var (
	ErrInventoryFull         = errors.New("inventory full")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrLocked                = errors.New("not unlocked yet")
	ErrMaxLevel              = errors.New("already at max level")
	ErrAlreadyOwned          = errors.New("already owned")
	ErrUnknownKind           = errors.New("unknown kind")
	ErrNothingCarried        = errors.New("nothing carried")
)

type EventType string

const (
	EventPhaseChanged    EventType = "phase_changed"
	EventNodeHarvested   EventType = "node_harvested"
	EventNodeRespawned   EventType = "node_respawned"
	EventAgentDeposited  EventType = "agent_deposited"
	EventAgentStuck      EventType = "agent_stuck"
	EventAgentHired      EventType = "agent_hired"
	EventAgentKilled     EventType = "agent_killed"
	EventPredatorSpawned EventType = "predator_spawned"
	EventPredatorSlain   EventType = "predator_slain"
	EventPlayerMauled    EventType = "player_mauled"
	EventItemCollected   EventType = "item_collected"
	EventShelterBuilt    EventType = "shelter_built"
	EventShelterExpired  EventType = "shelter_expired"
	EventFurnaceUpgraded EventType = "furnace_upgraded"
	EventItemCrafted     EventType = "item_crafted"
	EventRefueled        EventType = "refueled"
	EventDayPassed       EventType = "day_passed"
	EventGameOver        EventType = "game_over"
)

// DomainEvent is emitted by the simulation. Tick and Elapsed are simulated
// time; OccurredAt is stamped by the host when the event leaves the core.
type DomainEvent struct {
	Type       EventType      `json:"type"`
	Tick       uint64         `json:"tick"`
	Elapsed    time.Duration  `json:"elapsed"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}
