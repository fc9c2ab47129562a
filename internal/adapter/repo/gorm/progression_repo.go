package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"frostfire/internal/adapter/repo/gorm/model"
	"frostfire/internal/app/ports"
	"frostfire/internal/domain/survival"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressionRepo struct {
	db *gorm.DB
}

func NewProgressionRepo(db *gorm.DB) ProgressionRepo {
	return ProgressionRepo{db: db}
}

func (r ProgressionRepo) Get(ctx context.Context, profile string) (survival.Progression, error) {
	var m model.Progression
	if err := getDBFromCtx(ctx, r.db).Where("profile = ?", profile).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return survival.Progression{}, ports.ErrNotFound
		}
		return survival.Progression{}, err
	}
	var achievements []survival.Achievement
	if m.Achievements != "" {
		_ = json.Unmarshal([]byte(m.Achievements), &achievements)
	}
	return survival.Progression{
		HighScore:        int(m.HighScore),
		TotalGamesPlayed: int(m.TotalGamesPlayed),
		TotalPlayTime:    time.Duration(m.TotalPlayTimeMs) * time.Millisecond,
		Achievements:     achievements,
	}, nil
}

func (r ProgressionRepo) Put(ctx context.Context, profile string, p survival.Progression) error {
	achievements := p.Achievements
	if achievements == nil {
		achievements = []survival.Achievement{}
	}
	b, err := json.Marshal(achievements)
	if err != nil {
		return err
	}
	m := model.Progression{
		Profile:          profile,
		HighScore:        int32(p.HighScore),
		TotalGamesPlayed: int32(p.TotalGamesPlayed),
		TotalPlayTimeMs:  p.TotalPlayTime.Milliseconds(),
		Achievements:     string(b),
		UpdatedAt:        time.Now(),
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "profile"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"high_score", "total_games_played", "total_play_time_ms", "achievements", "updated_at",
		}),
	}).Create(&m).Error
}
