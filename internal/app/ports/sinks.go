package ports

import (
	"context"

	"frostfire/internal/domain/survival"
)

// EventSink receives every event batch the tick loop produces.
type EventSink interface {
	Append(ctx context.Context, sessionID string, events []survival.DomainEvent) error
}

// FramePublisher fans a rendered frame out to live viewers.
type FramePublisher interface {
	Publish(frame any)
}

// RunRecorder is told about every run that ended.
type RunRecorder interface {
	RecordRun(ctx context.Context, run survival.SaveState) error
}
