package progress

import (
	"context"
	"testing"

	"frostfire/internal/adapter/repo/memory"
	"frostfire/internal/domain/survival"
)

func TestUseCase_RecordAccumulates(t *testing.T) {
	store := memory.NewStore()
	uc := UseCase{Repo: memory.NewProgressionRepo(store), TxManager: memory.NewTxManager(store)}
	ctx := context.Background()

	first, err := uc.Record(ctx, survival.SaveState{DaysSurvived: 2, BearsKilled: 1, FurnaceLevel: 1, PlayTimeMS: 90_000})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(first.NewAchievements) != 1 || first.NewAchievements[0] != survival.AchievementBearSlayer {
		t.Fatalf("expected bear slayer unlocked, got %v", first.NewAchievements)
	}

	second, err := uc.Record(ctx, survival.SaveState{DaysSurvived: 1, BearsKilled: 2, FurnaceLevel: 2, PlayTimeMS: 30_000})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(second.NewAchievements) != 1 || second.NewAchievements[0] != survival.AchievementFirstUpgrade {
		t.Fatalf("expected only first upgrade to be new, got %v", second.NewAchievements)
	}

	got, err := uc.Get(ctx, Request{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Profile != DefaultProfile || got.Progression.TotalGamesPlayed != 2 || got.Progression.HighScore != 2 {
		t.Fatalf("unexpected progression: %+v", got)
	}
	if got.TotalPlayTime != "2 minutes" {
		t.Fatalf("expected humanized play time, got %q", got.TotalPlayTime)
	}
}

func TestUseCase_GetUnknownProfileIsEmpty(t *testing.T) {
	store := memory.NewStore()
	uc := UseCase{Repo: memory.NewProgressionRepo(store), TxManager: memory.NewTxManager(store)}
	got, err := uc.Get(context.Background(), Request{Profile: "someone"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Progression.TotalGamesPlayed != 0 || got.TotalPlayTime != "none" {
		t.Fatalf("expected empty progression, got %+v", got)
	}
}
