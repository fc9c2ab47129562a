// Package eventlog keeps an append-only compressed history of every domain
// event a session produced.
package eventlog

import (
	"context"
	"path/filepath"

	"frostfire/internal/domain/survival"
)

type Entry struct {
	SessionID string `json:"session_id"`
	survival.DomainEvent
}

// Sink adapts a JSONLZstdWriter to the tick loop's event fan-out.
type Sink struct{ w *JSONLZstdWriter }

func NewSink(dir string) *Sink {
	return &Sink{w: NewJSONLZstdWriter(filepath.Join(dir, "events"), "events")}
}

func (s *Sink) Append(_ context.Context, sessionID string, events []survival.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	batch := make([]any, 0, len(events))
	for _, e := range events {
		batch = append(batch, Entry{SessionID: sessionID, DomainEvent: e})
	}
	return s.w.WriteAll(batch)
}

func (s *Sink) Close() error { return s.w.Close() }
