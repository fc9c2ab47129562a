package replay

import (
	"context"
	"errors"
	"strings"

	"frostfire/internal/app/ports"
	"frostfire/internal/domain/survival"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const maxLimit = 500

type UseCase struct {
	Events    ports.EventRepository
	TxManager ports.TxManager
}

// Execute lists a session's events newest first, optionally narrowed to a
// window of unix seconds.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SessionID) == "" || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	if req.Limit == 0 || req.Limit > maxLimit {
		req.Limit = maxLimit
	}
	var events []survival.DomainEvent
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		events, err = u.Events.ListBySession(txCtx, req.SessionID, req.Limit)
		return err
	})
	if err != nil {
		return Response{}, err
	}
	events = filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)
	out := Response{Events: events, Counts: map[survival.EventType]int{}}
	for _, evt := range events {
		out.Counts[evt.Type]++
	}
	if len(events) > 0 {
		latest := events[0]
		out.Latest = &latest
	}
	return out, nil
}

func filterByTimeWindow(events []survival.DomainEvent, from, to int64) []survival.DomainEvent {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]survival.DomainEvent, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}
