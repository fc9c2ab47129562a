package ports

import (
	"context"
	"time"

	"frostfire/internal/domain/survival"
)

// SaveRecord is one stored save slot. Payload is the raw JSON of a
// survival.SaveState so that decoding can recover field by field.
type SaveRecord struct {
	Slot    string
	SaveID  string
	Payload []byte
	SavedAt time.Time
}

type SaveRepository interface {
	Put(ctx context.Context, rec SaveRecord) error
	Get(ctx context.Context, slot string) (SaveRecord, error)
	List(ctx context.Context) ([]SaveRecord, error)
}

type ProgressionRepository interface {
	Get(ctx context.Context, profile string) (survival.Progression, error)
	Put(ctx context.Context, profile string, p survival.Progression) error
}

type EventRepository interface {
	Append(ctx context.Context, sessionID string, events []survival.DomainEvent) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]survival.DomainEvent, error)
}
