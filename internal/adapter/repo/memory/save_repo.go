package memory

import (
	"context"
	"sort"

	"frostfire/internal/app/ports"
)

type SaveRepo struct {
	store *Store
}

func NewSaveRepo(store *Store) SaveRepo {
	return SaveRepo{store: store}
}

func (r SaveRepo) Put(_ context.Context, rec ports.SaveRecord) error {
	rec.Payload = append([]byte(nil), rec.Payload...)
	r.store.saves[rec.Slot] = rec
	return nil
}

func (r SaveRepo) Get(_ context.Context, slot string) (ports.SaveRecord, error) {
	rec, ok := r.store.saves[slot]
	if !ok {
		return ports.SaveRecord{}, ports.ErrNotFound
	}
	rec.Payload = append([]byte(nil), rec.Payload...)
	return rec, nil
}

func (r SaveRepo) List(_ context.Context) ([]ports.SaveRecord, error) {
	out := make([]ports.SaveRecord, 0, len(r.store.saves))
	for _, rec := range r.store.saves {
		rec.Payload = nil
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out, nil
}
