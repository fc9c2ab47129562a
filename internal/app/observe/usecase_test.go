package observe

import (
	"context"
	"errors"
	"testing"
	"time"

	"frostfire/internal/app/sim"
	"frostfire/internal/domain/world"
)

func TestUseCase_ReturnsFrame(t *testing.T) {
	session := sim.NewSession(sim.DefaultConfig(), world.NewRandom(1), nil)
	session.Advance(100 * time.Millisecond)
	uc := UseCase{Session: session}

	out, err := uc.Execute(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !out.Changed || out.Frame.Tick != 1 || out.SessionID == "" {
		t.Fatalf("unexpected response: %+v", out)
	}
	if len(out.Frame.Nodes) == 0 {
		t.Fatalf("expected nodes in frame")
	}
}

func TestUseCase_SkipsUnchangedFrame(t *testing.T) {
	session := sim.NewSession(sim.DefaultConfig(), world.NewRandom(1), nil)
	session.Advance(100 * time.Millisecond)
	uc := UseCase{Session: session}

	out, err := uc.Execute(context.Background(), Request{Since: 1})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if out.Changed || len(out.Frame.Nodes) != 0 || out.Frame.Tick != 1 {
		t.Fatalf("expected an empty unchanged response, got %+v", out)
	}
}

func TestUseCase_RequiresSession(t *testing.T) {
	if _, err := (UseCase{}).Execute(context.Background(), Request{}); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}
