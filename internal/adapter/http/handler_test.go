package httpadapter

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"frostfire/internal/adapter/repo/memory"
	"frostfire/internal/adapter/savefile"
	"frostfire/internal/app/intent"
	"frostfire/internal/app/observe"
	"frostfire/internal/app/persist"
	"frostfire/internal/app/ports"
	"frostfire/internal/app/replay"
	"frostfire/internal/app/sim"
	"frostfire/internal/domain/survival"
	"frostfire/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type fixture struct {
	h       Handler
	session *sim.Session
	store   *memory.Store
}

func newFixture() fixture {
	store := memory.NewStore()
	tx := memory.NewTxManager(store)
	session := sim.NewSession(sim.DefaultConfig(), world.NewRandom(1), func() time.Time { return time.Unix(1700000000, 0) })
	return fixture{
		session: session,
		store:   store,
		h: Handler{
			IntentUC:  intent.UseCase{Session: session},
			ObserveUC: observe.UseCase{Session: session},
			PersistUC: persist.UseCase{Session: session, Saves: memory.NewSaveRepo(store), TxManager: tx},
			ReplayUC:  replay.UseCase{Events: memory.NewEventRepo(store), TxManager: tx},
		},
	}
}

func errorCode(t *testing.T, ctx *app.RequestContext) string {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	errObj, _ := body["error"].(map[string]any)
	code, _ := errObj["code"].(string)
	return code
}

func TestWriteError_NotFound(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, ports.ErrNotFound)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(t, ctx), "not_found"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_BadRequest(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, persist.ErrInvalidRequest)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(t, ctx), "bad_request"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_NoSession(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, observe.ErrNoSession)

	if got, want := ctx.Response.StatusCode(), consts.StatusServiceUnavailable; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestIntent_Accepted(t *testing.T) {
	f := newFixture()
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"type":"move","x":300,"y":200}`))

	f.h.intent(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d body=%s", got, want, ctx.Response.Body())
	}
	var body intent.Response
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !body.Accepted || body.Intent != "move" || body.Frame.Player.Destination == nil {
		t.Fatalf("unexpected response: %+v", body)
	}
}

func TestIntent_RejectedCarriesReasonCode(t *testing.T) {
	f := newFixture()
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"type":"attack","x":300,"y":200}`))

	f.h.intent(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusConflict; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["accepted"], false; got != want {
		t.Fatalf("accepted mismatch: got=%v want=%v", got, want)
	}
	if got, want := body["intent"], "attack"; got != want {
		t.Fatalf("intent mismatch: got=%v want=%v", got, want)
	}
	errObj, _ := body["error"].(map[string]any)
	if got, want := errObj["code"], "NO_WEAPON"; got != want {
		t.Fatalf("error code mismatch: got=%v want=%v", got, want)
	}
	if got, want := errObj["retryable"], false; got != want {
		t.Fatalf("error.retryable mismatch: got=%v want=%v", got, want)
	}
}

func TestIntent_GameOverIsGone(t *testing.T) {
	f := newFixture()
	_ = f.session.Do(func(g *sim.Game) error {
		g.Economy().MarkGameOver()
		return nil
	})
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"type":"gather"}`))

	f.h.intent(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusGone; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(t, ctx), "GAME_OVER"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestIntent_InvalidJSONAndUnknownType(t *testing.T) {
	f := newFixture()

	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"type":`))
	f.h.intent(context.Background(), ctx)
	if got, want := errorCode(t, ctx), "invalid_json"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}

	ctx = &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"type":"dance"}`))
	f.h.intent(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(t, ctx), "bad_request"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestState_SinceSkipsUnchangedFrame(t *testing.T) {
	f := newFixture()
	f.session.Advance(16 * time.Millisecond)

	ctx := &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/game/state?since=1")
	f.h.state(context.Background(), ctx)

	var body observe.Response
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Changed {
		t.Fatalf("expected unchanged frame at tick 1, got %+v", body)
	}
	if body.SessionID != f.session.ID() {
		t.Fatalf("expected session id %q, got %q", f.session.ID(), body.SessionID)
	}
}

func TestExportImport_ZstdBody(t *testing.T) {
	f := newFixture()
	_ = f.session.Do(func(g *sim.Game) error {
		g.Economy().Deposit(survival.ItemStone, 9)
		return nil
	})

	ctx := &app.RequestContext{}
	f.h.export(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := string(ctx.Response.Header.ContentType()), "application/zstd"; got != want {
		t.Fatalf("content type mismatch: got=%q want=%q", got, want)
	}
	packed := append([]byte(nil), ctx.Response.Body()...)
	if !savefile.IsCompressed(packed) {
		t.Fatalf("expected a zstd body")
	}

	f.session.Reset()
	ctx = &app.RequestContext{}
	ctx.Request.SetBody(packed)
	f.h.importSave(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d body=%s", got, want, ctx.Response.Body())
	}
	if got := f.session.Frame().Stash[survival.ItemStone]; got != 9 {
		t.Fatalf("expected imported stash stone 9, got %d", got)
	}
}

func TestImport_EmptyBody(t *testing.T) {
	f := newFixture()
	ctx := &app.RequestContext{}
	f.h.importSave(context.Background(), ctx)

	if got, want := errorCode(t, ctx), "empty_payload"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestSave_InvalidSlot(t *testing.T) {
	f := newFixture()
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"slot":"../etc/passwd"}`))
	f.h.save(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestLoad_MissingSlot(t *testing.T) {
	f := newFixture()
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"slot":"slot9"}`))
	f.h.load(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestReplay_DefaultsToRunningSession(t *testing.T) {
	f := newFixture()
	events := memory.NewEventRepo(f.store)
	_ = memory.NewTxManager(f.store).RunInTx(context.Background(), func(txCtx context.Context) error {
		return events.Append(txCtx, f.session.ID(), []survival.DomainEvent{
			{Type: survival.EventPhaseChanged, OccurredAt: time.Unix(1700000000, 0)},
		})
	})

	ctx := &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/game/replay?limit=5")
	f.h.replay(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d body=%s", got, want, ctx.Response.Body())
	}
	var body replay.Response
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body.Events) != 1 || body.Counts[survival.EventPhaseChanged] != 1 {
		t.Fatalf("unexpected replay: %+v", body)
	}
}

func TestKPI_NotConfigured(t *testing.T) {
	ctx := &app.RequestContext{}
	Handler{}.kpi(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}
