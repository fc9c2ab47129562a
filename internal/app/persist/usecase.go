package persist

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"frostfire/internal/app/ports"
	"frostfire/internal/app/sim"
	"frostfire/internal/domain/survival"
)

const AutosaveSlot = "autosave"

var (
	ErrInvalidRequest = errors.New("invalid save request")
	ErrEmptyPayload   = errors.New("empty save payload")
)

var slotPattern = regexp.MustCompile(`^[a-z0-9_-]{1,32}$`)

type UseCase struct {
	Session   *sim.Session
	Saves     ports.SaveRepository
	TxManager ports.TxManager
	Now       func() time.Time
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now()
	}
	return u.Now()
}

func normalizeSlot(slot string) (string, error) {
	slot = strings.ToLower(strings.TrimSpace(slot))
	if !slotPattern.MatchString(slot) {
		return "", ErrInvalidRequest
	}
	return slot, nil
}

// stamp exports the session and gives the snapshot a fresh identity.
func (u UseCase) stamp() (survival.SaveState, []byte, error) {
	state := u.Session.Export()
	state.SaveID = uuid.NewString()
	state.LastSaved = u.now().UnixMilli()
	payload, err := json.Marshal(state)
	if err != nil {
		return survival.SaveState{}, nil, err
	}
	return state, payload, nil
}

func (u UseCase) Save(ctx context.Context, req SaveRequest) (SaveResponse, error) {
	slot, err := normalizeSlot(req.Slot)
	if err != nil {
		return SaveResponse{}, err
	}
	state, payload, err := u.stamp()
	if err != nil {
		return SaveResponse{}, err
	}
	savedAt := time.UnixMilli(state.LastSaved).UTC()
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		return u.Saves.Put(txCtx, ports.SaveRecord{
			Slot:    slot,
			SaveID:  state.SaveID,
			Payload: payload,
			SavedAt: savedAt,
		})
	})
	if err != nil {
		return SaveResponse{}, err
	}
	return SaveResponse{Slot: slot, SaveID: state.SaveID, SavedAt: savedAt, State: state}, nil
}

// Autosave writes the reserved autosave slot. A finished run is not saved.
func (u UseCase) Autosave(ctx context.Context) error {
	if u.Session.Over() {
		return nil
	}
	_, err := u.Save(ctx, SaveRequest{Slot: AutosaveSlot})
	return err
}

// Load restores a slot. Fields that are missing or invalid in the stored
// payload fall back to their defaults and are listed in Defaulted.
func (u UseCase) Load(ctx context.Context, req LoadRequest) (LoadResponse, error) {
	slot, err := normalizeSlot(req.Slot)
	if err != nil {
		return LoadResponse{}, err
	}
	var rec ports.SaveRecord
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		rec, err = u.Saves.Get(txCtx, slot)
		return err
	})
	if err != nil {
		return LoadResponse{}, err
	}
	out, err := u.restore(rec.Payload)
	if err != nil {
		return LoadResponse{}, err
	}
	out.Slot = slot
	return out, nil
}

func (u UseCase) Import(ctx context.Context, payload []byte) (LoadResponse, error) {
	return u.restore(payload)
}

func (u UseCase) restore(payload []byte) (LoadResponse, error) {
	if len(strings.TrimSpace(string(payload))) == 0 {
		return LoadResponse{}, ErrEmptyPayload
	}
	state, defaulted := survival.DecodeSave(payload)
	u.Session.Restore(state)
	return LoadResponse{SaveID: state.SaveID, Defaulted: defaulted, Frame: u.Session.Frame()}, nil
}

func (u UseCase) Export(ctx context.Context) (ExportResponse, error) {
	state, payload, err := u.stamp()
	if err != nil {
		return ExportResponse{}, err
	}
	return ExportResponse{Payload: payload, State: state}, nil
}

func (u UseCase) NewGame(ctx context.Context) (NewGameResponse, error) {
	id := u.Session.Reset()
	return NewGameResponse{SessionID: id, Frame: u.Session.Frame()}, nil
}

func (u UseCase) List(ctx context.Context) ([]SlotSummary, error) {
	var recs []ports.SaveRecord
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		recs, err = u.Saves.List(txCtx)
		return err
	})
	if err != nil {
		return nil, err
	}
	now := u.now()
	out := make([]SlotSummary, 0, len(recs))
	for _, r := range recs {
		out = append(out, SlotSummary{
			Slot:     r.Slot,
			SaveID:   r.SaveID,
			SavedAt:  r.SavedAt,
			SavedAgo: humanize.RelTime(r.SavedAt, now, "ago", "from now"),
		})
	}
	return out, nil
}
