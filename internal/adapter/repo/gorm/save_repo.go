package gormrepo

import (
	"context"
	"errors"

	"frostfire/internal/adapter/repo/gorm/model"
	"frostfire/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaveRepo struct {
	db *gorm.DB
}

func NewSaveRepo(db *gorm.DB) SaveRepo {
	return SaveRepo{db: db}
}

// Put overwrites the slot.
func (r SaveRepo) Put(ctx context.Context, rec ports.SaveRecord) error {
	m := model.SaveSlot{
		Slot:    rec.Slot,
		SaveID:  rec.SaveID,
		Payload: string(rec.Payload),
		SavedAt: rec.SavedAt,
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"save_id", "payload", "saved_at"}),
	}).Create(&m).Error
}

func (r SaveRepo) Get(ctx context.Context, slot string) (ports.SaveRecord, error) {
	var m model.SaveSlot
	if err := getDBFromCtx(ctx, r.db).Where("slot = ?", slot).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SaveRecord{}, ports.ErrNotFound
		}
		return ports.SaveRecord{}, err
	}
	return ports.SaveRecord{
		Slot:    m.Slot,
		SaveID:  m.SaveID,
		Payload: []byte(m.Payload),
		SavedAt: m.SavedAt,
	}, nil
}

func (r SaveRepo) List(ctx context.Context) ([]ports.SaveRecord, error) {
	rows := []model.SaveSlot{}
	err := getDBFromCtx(ctx, r.db).
		Select("slot", "save_id", "saved_at").
		Order("saved_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.SaveRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, ports.SaveRecord{Slot: m.Slot, SaveID: m.SaveID, SavedAt: m.SavedAt})
	}
	return out, nil
}
