package runner

import (
	"context"
	"testing"
	"time"

	"frostfire/internal/adapter/repo/memory"
	"frostfire/internal/app/ports"
	"frostfire/internal/app/sim"
	"frostfire/internal/domain/survival"
	"frostfire/internal/domain/world"
)

type frameSink struct{ frames int }

func (s *frameSink) Publish(any) { s.frames++ }

type runSink struct{ runs []survival.SaveState }

func (s *runSink) RecordRun(_ context.Context, run survival.SaveState) error {
	s.runs = append(s.runs, run)
	return nil
}

type batchSink struct{ batches int }

func (s *batchSink) Append(context.Context, string, []survival.DomainEvent) error {
	s.batches++
	return nil
}

func TestRunner_TickDispatchesUntilGameOver(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Economy.StartTemperature = 1
	session := sim.NewSession(cfg, world.NewRandom(1), func() time.Time { return time.Unix(5, 0) })
	store := memory.NewStore()
	events := memory.NewEventRepo(store)
	frames := &frameSink{}
	runs := &runSink{}
	sink := &batchSink{}

	r := &Runner{
		Session:    session,
		Step:       500 * time.Millisecond,
		Events:     events,
		TxManager:  memory.NewTxManager(store),
		Sinks:      []ports.EventSink{sink},
		Frames:     frames,
		FrameEvery: 2,
		Runs:       runs,
	}
	ctx := context.Background()
	r.Tick(ctx)
	r.Tick(ctx)

	if frames.frames != 1 {
		t.Fatalf("expected one frame every two ticks, got %d", frames.frames)
	}
	if len(runs.runs) != 1 {
		t.Fatalf("expected the finished run recorded, got %d", len(runs.runs))
	}
	if sink.batches != 1 {
		t.Fatalf("expected one event batch, got %d", sink.batches)
	}
	stored, _ := events.ListBySession(ctx, session.ID(), 10)
	if len(stored) != 1 || stored[0].Type != survival.EventGameOver {
		t.Fatalf("expected game over persisted, got %+v", stored)
	}
	if !stored[0].OccurredAt.Equal(time.Unix(5, 0)) {
		t.Fatalf("expected host timestamp, got %s", stored[0].OccurredAt)
	}
}

func TestRunner_AutosaveCadence(t *testing.T) {
	session := sim.NewSession(sim.DefaultConfig(), world.NewRandom(1), nil)
	saves := 0
	r := &Runner{
		Session:       session,
		Step:          500 * time.Millisecond,
		AutosaveEvery: time.Second,
		Autosave: func(context.Context) error {
			saves++
			return nil
		},
	}
	for i := 0; i < 5; i++ {
		r.Tick(context.Background())
	}
	if saves != 2 {
		t.Fatalf("expected 2 autosaves, got %d", saves)
	}
}

func TestRunner_RunStopsOnCancel(t *testing.T) {
	session := sim.NewSession(sim.DefaultConfig(), world.NewRandom(1), nil)
	r := &Runner{Session: session, Step: time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := r.Run(ctx); err != context.DeadlineExceeded {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if session.Frame().Tick == 0 {
		t.Fatalf("expected the loop to tick at least once")
	}
}
