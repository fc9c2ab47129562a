package intent

import (
	"context"
	"errors"
	"strings"

	"frostfire/internal/app/ports"
	"frostfire/internal/app/sim"
	"frostfire/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid intent request")

type UseCase struct {
	Session *sim.Session
	Metrics ports.IntentMetrics
}

// Execute applies one player intent to the running game. Malformed requests
// fail with ErrInvalidRequest; requests the game refuses fail with a
// *sim.RejectedError.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	intent := sim.Intent(strings.ToLower(strings.TrimSpace(req.Type)))
	run, err := dispatch(intent, req)
	if err != nil {
		return Response{}, err
	}
	if err := u.Session.Do(run); err != nil {
		u.recordRejected(intent, err)
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordAccepted(string(intent))
	}
	return Response{Accepted: true, Intent: string(intent), Frame: u.Session.Frame()}, nil
}

func (u UseCase) recordRejected(intent sim.Intent, err error) {
	if u.Metrics == nil {
		return
	}
	u.Metrics.RecordRejected(string(intent), sim.ReasonCode(err))
}

func dispatch(intent sim.Intent, req Request) (func(*sim.Game) error, error) {
	kind := strings.TrimSpace(req.Kind)
	switch intent {
	case sim.IntentMove, sim.IntentAttack:
		if req.X == nil || req.Y == nil {
			return nil, ErrInvalidRequest
		}
		p := world.Point{X: *req.X, Y: *req.Y}
		if intent == sim.IntentMove {
			return func(g *sim.Game) error { return g.RequestMove(p) }, nil
		}
		return func(g *sim.Game) error { return g.RequestAttack(p) }, nil
	case sim.IntentGather:
		return (*sim.Game).RequestGather, nil
	case sim.IntentDeposit:
		return (*sim.Game).RequestDeposit, nil
	case sim.IntentUpgrade:
		return (*sim.Game).RequestUpgrade, nil
	case sim.IntentForceBlizzard:
		return (*sim.Game).ForceBlizzard, nil
	case sim.IntentBuild, sim.IntentHire, sim.IntentCraft:
		if kind == "" {
			return nil, ErrInvalidRequest
		}
		switch intent {
		case sim.IntentBuild:
			return func(g *sim.Game) error { return g.RequestBuild(kind) }, nil
		case sim.IntentHire:
			return func(g *sim.Game) error { return g.RequestHireAgent(kind) }, nil
		default:
			return func(g *sim.Game) error { return g.RequestCraft(kind) }, nil
		}
	}
	return nil, ErrInvalidRequest
}
