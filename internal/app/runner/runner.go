// Package runner drives a session at a fixed step and fans its output out
// to persistence, live viewers and the progression tracker.
package runner

import (
	"context"
	"log/slog"
	"time"

	"frostfire/internal/app/ports"
	"frostfire/internal/app/sim"
	"frostfire/internal/domain/survival"
)

const DefaultStep = 16 * time.Millisecond

type Runner struct {
	Session *sim.Session
	Step    time.Duration

	// Events is written inside a transaction; Sinks receive the same batch
	// without one.
	Events    ports.EventRepository
	TxManager ports.TxManager
	Sinks     []ports.EventSink

	Frames     ports.FramePublisher
	FrameEvery int

	Metrics ports.TickMetrics
	Runs    ports.RunRecorder

	Autosave      func(ctx context.Context) error
	AutosaveEvery time.Duration

	Logger *slog.Logger

	ticks     uint64
	sinceSave time.Duration
}

func (r *Runner) step() time.Duration {
	if r.Step <= 0 {
		return DefaultStep
	}
	return r.Step
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// Run ticks until ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.step())
	defer ticker.Stop()
	r.logger().Info("tick loop started", "step", r.step().String(), "session", r.Session.ID())
	for {
		select {
		case <-ctx.Done():
			r.logger().Info("tick loop stopped", "ticks", r.ticks)
			return ctx.Err()
		case <-ticker.C:
			r.Tick(ctx)
		}
	}
}

// Tick advances the session by one fixed step and dispatches the results.
func (r *Runner) Tick(ctx context.Context) {
	dt := r.step()
	events := r.Session.Advance(dt)
	r.ticks++
	if r.Metrics != nil {
		r.Metrics.RecordTick(dt, len(events))
	}

	if len(events) > 0 {
		r.dispatch(ctx, events)
	}
	if r.Frames != nil && (r.FrameEvery <= 1 || r.ticks%uint64(r.FrameEvery) == 0) {
		r.Frames.Publish(r.Session.Frame())
	}
	if hasGameOver(events) {
		r.finishRun(ctx)
		return
	}

	if r.Autosave == nil || r.AutosaveEvery <= 0 {
		return
	}
	r.sinceSave += dt
	if r.sinceSave < r.AutosaveEvery {
		return
	}
	r.sinceSave = 0
	if err := r.Autosave(ctx); err != nil {
		r.logger().Warn("autosave failed", "err", err)
	}
}

func (r *Runner) dispatch(ctx context.Context, events []survival.DomainEvent) {
	sessionID := r.Session.ID()
	if r.Events != nil && r.TxManager != nil {
		err := r.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
			return r.Events.Append(txCtx, sessionID, events)
		})
		if err != nil {
			r.logger().Warn("persist events failed", "err", err, "count", len(events))
		}
	}
	for _, sink := range r.Sinks {
		if err := sink.Append(ctx, sessionID, events); err != nil {
			r.logger().Warn("event sink failed", "err", err)
		}
	}
}

func (r *Runner) finishRun(ctx context.Context) {
	run := r.Session.Export()
	r.logger().Info("run ended",
		"session", r.Session.ID(),
		"days", run.DaysSurvived,
		"play_time_ms", run.PlayTimeMS,
	)
	if r.Runs == nil {
		return
	}
	if err := r.Runs.RecordRun(ctx, run); err != nil {
		r.logger().Warn("record run failed", "err", err)
	}
}

func hasGameOver(events []survival.DomainEvent) bool {
	for _, e := range events {
		if e.Type == survival.EventGameOver {
			return true
		}
	}
	return false
}
