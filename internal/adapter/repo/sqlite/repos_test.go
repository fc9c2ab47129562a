package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"frostfire/internal/app/ports"
	"frostfire/internal/domain/survival"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "frostfire.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveRepo_PutGetList(t *testing.T) {
	db := openTestDB(t)
	repo := NewSaveRepo(db)
	tx := NewTxManager(db)
	ctx := context.Background()

	recs := []ports.SaveRecord{
		{Slot: "slot1", SaveID: "a", Payload: []byte(`{"wood":1}`), SavedAt: time.UnixMilli(1000).UTC()},
		{Slot: "slot2", SaveID: "b", Payload: []byte(`{"wood":2}`), SavedAt: time.UnixMilli(2000).UTC()},
		{Slot: "slot1", SaveID: "c", Payload: []byte(`{"wood":3}`), SavedAt: time.UnixMilli(3000).UTC()},
	}
	for _, rec := range recs {
		rec := rec
		if err := tx.RunInTx(ctx, func(txCtx context.Context) error { return repo.Put(txCtx, rec) }); err != nil {
			t.Fatalf("put %s: %v", rec.Slot, err)
		}
	}

	got, err := repo.Get(ctx, "slot1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(recs[2], got); diff != "" {
		t.Fatalf("slot1 mismatch (-want +got):\n%s", diff)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Slot != "slot1" || list[1].Slot != "slot2" {
		t.Fatalf("expected slot1 then slot2, got %+v", list)
	}
	if list[0].Payload != nil {
		t.Fatalf("expected list without payloads")
	}

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	repo := NewSaveRepo(db)
	tx := NewTxManager(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := repo.Put(txCtx, ports.SaveRecord{Slot: "x", Payload: []byte(`{}`), SavedAt: time.Now()}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := repo.Get(ctx, "x"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected rolled back slot, got %v", err)
	}
}

func TestProgressionRepo_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewProgressionRepo(db)
	ctx := context.Background()

	if _, err := repo.Get(ctx, "local"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	want := survival.Progression{
		HighScore:        3,
		TotalGamesPlayed: 5,
		TotalPlayTime:    12 * time.Minute,
		Achievements:     []survival.Achievement{survival.AchievementBearSlayer, survival.AchievementStormSurvivor},
	}
	if err := repo.Put(ctx, "local", want); err != nil {
		t.Fatalf("put: %v", err)
	}
	want.HighScore = 4
	if err := repo.Put(ctx, "local", want); err != nil {
		t.Fatalf("put again: %v", err)
	}
	got, err := repo.Get(ctx, "local")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("progression mismatch (-want +got):\n%s", diff)
	}
}

func TestEventRepo_NewestFirstWithLimit(t *testing.T) {
	db := openTestDB(t)
	repo := NewEventRepo(db)
	ctx := context.Background()
	at := time.UnixMilli(1700000000000).UTC()

	err := repo.Append(ctx, "s1", []survival.DomainEvent{
		{Type: survival.EventPhaseChanged, Tick: 1, OccurredAt: at, Payload: map[string]any{"to": "warning"}},
		{Type: survival.EventNodeHarvested, Tick: 2, OccurredAt: at},
		{Type: survival.EventGameOver, Tick: 3, Elapsed: 2 * time.Second, OccurredAt: at},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	_ = repo.Append(ctx, "s2", []survival.DomainEvent{{Type: survival.EventGameOver, OccurredAt: at}})

	got, err := repo.ListBySession(ctx, "s1", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []survival.DomainEvent{
		{Type: survival.EventGameOver, Tick: 3, Elapsed: 2 * time.Second, OccurredAt: at},
		{Type: survival.EventNodeHarvested, Tick: 2, OccurredAt: at},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}

	all, _ := repo.ListBySession(ctx, "s1", 0)
	if len(all) != 3 || all[2].Payload["to"] != "warning" {
		t.Fatalf("expected all three with payload, got %+v", all)
	}
}
