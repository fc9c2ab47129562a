package memory

import (
	"context"

	"frostfire/internal/app/ports"
	"frostfire/internal/domain/survival"
)

type ProgressionRepo struct {
	store *Store
}

func NewProgressionRepo(store *Store) ProgressionRepo {
	return ProgressionRepo{store: store}
}

func (r ProgressionRepo) Get(_ context.Context, profile string) (survival.Progression, error) {
	p, ok := r.store.progress[profile]
	if !ok {
		return survival.Progression{}, ports.ErrNotFound
	}
	p.Achievements = append([]survival.Achievement(nil), p.Achievements...)
	return p, nil
}

func (r ProgressionRepo) Put(_ context.Context, profile string, p survival.Progression) error {
	p.Achievements = append([]survival.Achievement(nil), p.Achievements...)
	r.store.progress[profile] = p
	return nil
}
