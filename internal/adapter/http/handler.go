package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"frostfire/internal/adapter/savefile"
	"frostfire/internal/app/intent"
	"frostfire/internal/app/observe"
	"frostfire/internal/app/persist"
	"frostfire/internal/app/ports"
	"frostfire/internal/app/progress"
	"frostfire/internal/app/replay"
	"frostfire/internal/app/sim"
	"frostfire/internal/app/status"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	IntentUC   intent.UseCase
	ObserveUC  observe.UseCase
	StatusUC   status.UseCase
	PersistUC  persist.UseCase
	ProgressUC progress.UseCase
	ReplayUC   replay.UseCase
	KPI        kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	game := s.Group("/api/game")
	game.GET("/state", h.state)
	game.GET("/status", h.status)
	game.POST("/intent", h.intent)
	game.POST("/save", h.save)
	game.POST("/load", h.load)
	game.GET("/saves", h.saves)
	game.POST("/new", h.newGame)
	game.GET("/export", h.export)
	game.POST("/import", h.importSave)
	game.GET("/progression", h.progression)
	game.GET("/replay", h.replay)

	s.GET("/ops/kpi", h.kpi)
}

type slotRequest struct {
	Slot string `json:"slot"`
}

func (h Handler) state(c context.Context, ctx *app.RequestContext) {
	since, _ := strconv.ParseUint(string(ctx.Query("since")), 10, 64)
	resp, err := h.ObserveUC.Execute(c, observe.Request{Since: since})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) intent(c context.Context, ctx *app.RequestContext) {
	var body intent.Request
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.IntentUC.Execute(c, body)
	if err != nil {
		if writeIntentRejectedFromErr(ctx, err) {
			return
		}
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) save(c context.Context, ctx *app.RequestContext) {
	var body slotRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.PersistUC.Save(c, persist.SaveRequest{Slot: body.Slot})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) load(c context.Context, ctx *app.RequestContext) {
	var body slotRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.PersistUC.Load(c, persist.LoadRequest{Slot: body.Slot})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) saves(c context.Context, ctx *app.RequestContext) {
	slots, err := h.PersistUC.List(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"slots": slots})
}

func (h Handler) newGame(c context.Context, ctx *app.RequestContext) {
	resp, err := h.PersistUC.NewGame(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) export(c context.Context, ctx *app.RequestContext) {
	resp, err := h.PersistUC.Export(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	b, err := savefile.Compress(resp.Payload)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="`+resp.State.SaveID+savefile.Ext+`"`)
	ctx.Data(http.StatusOK, "application/zstd", b)
}

func (h Handler) importSave(c context.Context, ctx *app.RequestContext) {
	raw, err := savefile.Decompress(ctx.Request.Body())
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_save", err.Error())
		return
	}
	resp, err := h.PersistUC.Import(c, raw)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) progression(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ProgressUC.Get(c, progress.Request{Profile: string(ctx.Query("profile"))})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	sessionID := strings.TrimSpace(string(ctx.Query("session_id")))
	if sessionID == "" && h.ObserveUC.Session != nil {
		sessionID = h.ObserveUC.Session.ID()
	}
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		SessionID:    sessionID,
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, observe.ErrNoSession), errors.Is(err, status.ErrNoSession):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "no_session", err.Error())
	case errors.Is(err, persist.ErrEmptyPayload):
		writeErrorBody(ctx, consts.StatusBadRequest, "empty_payload", err.Error())
	case errors.Is(err, intent.ErrInvalidRequest),
		errors.Is(err, persist.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// writeIntentRejectedFromErr answers a refused intent. It reports false for
// errors that are not game rejections.
func writeIntentRejectedFromErr(ctx *app.RequestContext, err error) bool {
	var rejected *sim.RejectedError
	if !errors.As(err, &rejected) {
		return false
	}
	code := sim.ReasonCode(err)
	status := consts.StatusConflict
	switch {
	case errors.Is(err, sim.ErrGameOver):
		status = consts.StatusGone
	case errors.Is(err, sim.ErrUnknownKind), errors.Is(err, sim.ErrInvalidTarget), errors.Is(err, sim.ErrUnknownIntent):
		status = consts.StatusUnprocessableEntity
	}
	writeIntentRejected(ctx, status, string(rejected.Intent), code, err.Error(), retryable(err))
	return true
}

// retryable reports whether the same intent can succeed later without the
// player doing anything else first.
func retryable(err error) bool {
	return errors.Is(err, sim.ErrCooldownActive) || errors.Is(err, sim.ErrBusy)
}

func writeIntentRejected(ctx *app.RequestContext, status int, intentType, code, message string, retryable bool) {
	ctx.JSON(status, map[string]any{
		"accepted": false,
		"intent":   intentType,
		"error": map[string]any{
			"code":      code,
			"message":   message,
			"retryable": retryable,
		},
	})
}
