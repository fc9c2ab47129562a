package gormrepo

import (
	"context"
	"encoding/json"
	"time"

	"frostfire/internal/adapter/repo/gorm/model"
	"frostfire/internal/domain/survival"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, sessionID string, events []survival.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.DomainEvent, 0, len(events))
	for _, e := range events {
		b, _ := json.Marshal(e.Payload)
		rows = append(rows, model.DomainEvent{
			SessionID:  sessionID,
			Type:       string(e.Type),
			Tick:       int64(e.Tick),
			ElapsedMs:  e.Elapsed.Milliseconds(),
			OccurredAt: e.OccurredAt,
			Payload:    string(b),
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

func (r EventRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]survival.DomainEvent, error) {
	rows := []model.DomainEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.DomainEvent{SessionID: sessionID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "id"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]survival.DomainEvent, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			_ = json.Unmarshal([]byte(row.Payload), &payload)
		}
		out = append(out, survival.DomainEvent{
			Type:       survival.EventType(row.Type),
			Tick:       uint64(row.Tick),
			Elapsed:    time.Duration(row.ElapsedMs) * time.Millisecond,
			OccurredAt: row.OccurredAt,
			Payload:    payload,
		})
	}
	return out, nil
}
