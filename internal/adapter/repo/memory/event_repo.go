package memory

import (
	"context"

	"frostfire/internal/domain/survival"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, sessionID string, events []survival.DomainEvent) error {
	if sessionID == "" {
		sessionID = "global"
	}
	r.store.events[sessionID] = append(r.store.events[sessionID], events...)
	return nil
}

// ListBySession returns the newest limit events, newest first.
func (r EventRepo) ListBySession(_ context.Context, sessionID string, limit int) ([]survival.DomainEvent, error) {
	all := r.store.events[sessionID]
	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}
	out := make([]survival.DomainEvent, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
