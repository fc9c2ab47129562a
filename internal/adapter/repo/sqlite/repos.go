package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"frostfire/internal/app/ports"
	"frostfire/internal/domain/survival"
)

type saveRow struct {
	Slot    string `db:"slot"`
	SaveID  string `db:"save_id"`
	Payload string `db:"payload"`
	SavedAt int64  `db:"saved_at"`
}

// SaveRepo stores save slots.
type SaveRepo struct {
	db *DB
}

// NewSaveRepo returns a SaveRepo backed by db.
func NewSaveRepo(db *DB) SaveRepo {
	return SaveRepo{db: db}
}

// Put overwrites the slot.
func (r SaveRepo) Put(ctx context.Context, rec ports.SaveRecord) error {
	_, err := r.db.q(ctx).ExecContext(ctx, `
		INSERT INTO save_slots (slot, save_id, payload, saved_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET save_id = excluded.save_id, payload = excluded.payload, saved_at = excluded.saved_at`,
		rec.Slot, rec.SaveID, string(rec.Payload), rec.SavedAt.UnixMilli(),
	)
	return err
}

// Get loads one slot or returns ports.ErrNotFound.
func (r SaveRepo) Get(ctx context.Context, slot string) (ports.SaveRecord, error) {
	var row saveRow
	err := sqlx.GetContext(ctx, r.db.q(ctx), &row, `SELECT slot, save_id, payload, saved_at FROM save_slots WHERE slot = ?`, slot)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.SaveRecord{}, ports.ErrNotFound
	}
	if err != nil {
		return ports.SaveRecord{}, err
	}
	return ports.SaveRecord{
		Slot:    row.Slot,
		SaveID:  row.SaveID,
		Payload: []byte(row.Payload),
		SavedAt: time.UnixMilli(row.SavedAt).UTC(),
	}, nil
}

// List returns every slot without payloads, newest first.
func (r SaveRepo) List(ctx context.Context) ([]ports.SaveRecord, error) {
	var rows []saveRow
	err := sqlx.SelectContext(ctx, r.db.q(ctx), &rows, `SELECT slot, save_id, '' AS payload, saved_at FROM save_slots ORDER BY saved_at DESC`)
	if err != nil {
		return nil, err
	}
	out := make([]ports.SaveRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.SaveRecord{Slot: row.Slot, SaveID: row.SaveID, SavedAt: time.UnixMilli(row.SavedAt).UTC()})
	}
	return out, nil
}

type progressionRow struct {
	Profile          string `db:"profile"`
	HighScore        int    `db:"high_score"`
	TotalGamesPlayed int    `db:"total_games_played"`
	TotalPlayTimeMS  int64  `db:"total_play_time_ms"`
	AchievementsJSON string `db:"achievements_json"`
}

// ProgressionRepo stores cross-run progression per profile.
type ProgressionRepo struct {
	db *DB
}

// NewProgressionRepo returns a ProgressionRepo backed by db.
func NewProgressionRepo(db *DB) ProgressionRepo {
	return ProgressionRepo{db: db}
}

func (r ProgressionRepo) Get(ctx context.Context, profile string) (survival.Progression, error) {
	var row progressionRow
	err := sqlx.GetContext(ctx, r.db.q(ctx), &row, `
		SELECT profile, high_score, total_games_played, total_play_time_ms, achievements_json
		FROM progressions WHERE profile = ?`, profile)
	if errors.Is(err, sql.ErrNoRows) {
		return survival.Progression{}, ports.ErrNotFound
	}
	if err != nil {
		return survival.Progression{}, err
	}
	var achievements []survival.Achievement
	_ = json.Unmarshal([]byte(row.AchievementsJSON), &achievements)
	return survival.Progression{
		HighScore:        row.HighScore,
		TotalGamesPlayed: row.TotalGamesPlayed,
		TotalPlayTime:    time.Duration(row.TotalPlayTimeMS) * time.Millisecond,
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
	_, err = r.db.q(ctx).ExecContext(ctx, `
		INSERT INTO progressions (profile, high_score, total_games_played, total_play_time_ms, achievements_json)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(profile) DO UPDATE SET
			high_score = excluded.high_score,
			total_games_played = excluded.total_games_played,
			total_play_time_ms = excluded.total_play_time_ms,
			achievements_json = excluded.achievements_json`,
		profile, p.HighScore, p.TotalGamesPlayed, p.TotalPlayTime.Milliseconds(), string(b),
	)
	return err
}

type eventRow struct {
	Type        string         `db:"type"`
	Tick        int64          `db:"tick"`
	ElapsedMS   int64          `db:"elapsed_ms"`
	OccurredAt  int64          `db:"occurred_at"`
	PayloadJSON sql.NullString `db:"payload_json"`
}

// EventRepo stores the domain event history of every session.
type EventRepo struct {
	db *DB
}

// NewEventRepo returns an EventRepo backed by db.
func NewEventRepo(db *DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, sessionID string, events []survival.DomainEvent) error {
	q := r.db.q(ctx)
	for _, e := range events {
		var payload sql.NullString
		if len(e.Payload) > 0 {
			b, err := json.Marshal(e.Payload)
			if err != nil {
				return err
			}
			payload = sql.NullString{String: string(b), Valid: true}
		}
		_, err := q.ExecContext(ctx, `
			INSERT INTO domain_events (session_id, type, tick, elapsed_ms, occurred_at, payload_json)
			VALUES (?, ?, ?, ?, ?, ?)`,
			sessionID, string(e.Type), int64(e.Tick), e.Elapsed.Milliseconds(), e.OccurredAt.UnixMilli(), payload,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// ListBySession returns the newest limit events, newest first.
func (r EventRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]survival.DomainEvent, error) {
	if limit <= 0 {
		limit = -1
	}
	var rows []eventRow
	err := sqlx.SelectContext(ctx, r.db.q(ctx), &rows, `
		SELECT type, tick, elapsed_ms, occurred_at, payload_json
		FROM domain_events WHERE session_id = ? ORDER BY id DESC LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]survival.DomainEvent, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if row.PayloadJSON.Valid {
			_ = json.Unmarshal([]byte(row.PayloadJSON.String), &payload)
		}
		out = append(out, survival.DomainEvent{
			Type:       survival.EventType(row.Type),
			Tick:       uint64(row.Tick),
			Elapsed:    time.Duration(row.ElapsedMS) * time.Millisecond,
			OccurredAt: time.UnixMilli(row.OccurredAt).UTC(),
			Payload:    payload,
		})
	}
	return out, nil
}
