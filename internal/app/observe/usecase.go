package observe

import (
	"context"
	"errors"

	"frostfire/internal/app/sim"
)

var ErrNoSession = errors.New("no running session")

type UseCase struct {
	Session *sim.Session
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if u.Session == nil {
		return Response{}, ErrNoSession
	}
	frame := u.Session.Frame()
	out := Response{SessionID: u.Session.ID(), Changed: frame.Tick > req.Since || req.Since == 0}
	if out.Changed {
		out.Frame = frame
	} else {
		out.Frame.Tick = frame.Tick
	}
	return out, nil
}
