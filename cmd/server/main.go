package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"frostfire/db"
	"frostfire/internal/adapter/eventlog"
	httpadapter "frostfire/internal/adapter/http"
	metricsinmem "frostfire/internal/adapter/metrics/inmemory"
	gormrepo "frostfire/internal/adapter/repo/gorm"
	"frostfire/internal/adapter/repo/memory"
	sqliterepo "frostfire/internal/adapter/repo/sqlite"
	"frostfire/internal/adapter/ws"
	"frostfire/internal/app/intent"
	"frostfire/internal/app/observe"
	"frostfire/internal/app/persist"
	"frostfire/internal/app/ports"
	"frostfire/internal/app/progress"
	"frostfire/internal/app/replay"
	"frostfire/internal/app/runner"
	"frostfire/internal/app/sim"
	"frostfire/internal/app/status"
	"frostfire/internal/config"
	"frostfire/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, fixed, err := config.Load(stringEnv("FROSTFIRE_TUNING", "configs/tuning.yaml"))
	if err != nil {
		logger.Error("load tuning", "err", err)
		os.Exit(1)
	}
	if len(fixed) > 0 {
		logger.Warn("tuning values replaced by defaults", "fields", fixed)
	}
	cfg.Seed = int64(intEnv("FROSTFIRE_SEED", int(cfg.Seed)))

	st, err := buildStores(context.Background())
	if err != nil {
		logger.Error("open storage", "err", err)
		os.Exit(1)
	}
	defer st.close()
	logger.Info("storage ready", "backend", st.backend)

	session := sim.NewSession(cfg, world.NewRandom(cfg.Seed), time.Now)
	kpiRecorder := metricsinmem.NewRecorder()
	hub := ws.NewHub(logger)
	profile := stringEnv("FROSTFIRE_PROFILE", progress.DefaultProfile)

	persistUC := persist.UseCase{Session: session, Saves: st.saves, TxManager: st.tx, Now: time.Now}
	progressUC := progress.UseCase{Repo: st.progress, TxManager: st.tx, Profile: profile}

	var sinks []ports.EventSink
	if dir := stringEnv("FROSTFIRE_EVENT_LOG_DIR", ""); dir != "" {
		eventSink := eventlog.NewSink(dir)
		defer eventSink.Close()
		sinks = append(sinks, eventSink)
	}

	loop := &runner.Runner{
		Session:       session,
		Step:          time.Duration(intEnv("FROSTFIRE_TICK_MS", 16)) * time.Millisecond,
		Events:        st.events,
		TxManager:     st.tx,
		Sinks:         sinks,
		Frames:        hub,
		FrameEvery:    intEnv("FROSTFIRE_FRAME_EVERY", 2),
		Metrics:       kpiRecorder,
		Runs:          progressUC,
		Autosave:      persistUC.Autosave,
		AutosaveEvery: time.Duration(intEnv("FROSTFIRE_AUTOSAVE_SECONDS", 30)) * time.Second,
		Logger:        logger,
	}

	h := httpadapter.Handler{
		IntentUC:   intent.UseCase{Session: session, Metrics: kpiRecorder},
		ObserveUC:  observe.UseCase{Session: session},
		StatusUC:   status.UseCase{Session: session, Now: time.Now},
		PersistUC:  persistUC,
		ProgressUC: progressUC,
		ReplayUC:   replay.UseCase{Events: st.events, TxManager: st.tx},
		KPI:        kpiRecorder,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := persistUC.Load(ctx, persist.LoadRequest{Slot: persist.AutosaveSlot}); err == nil {
		logger.Info("resumed autosave", "session", session.ID())
	} else if !errors.Is(err, ports.ErrNotFound) {
		logger.Warn("autosave not restored", "err", err)
	}

	go func() {
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("tick loop", "err", err)
		}
	}()

	wsAddr := stringEnv("FROSTFIRE_WS_ADDR", ":8081")
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.Handler())
	wsServer := &http.Server{Addr: wsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("websocket listening", "addr", wsAddr)
		if err := wsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("websocket server", "err", err)
		}
	}()

	httpAddr := stringEnv("FROSTFIRE_HTTP_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(httpAddr))
	h.RegisterRoutes(s)
	logger.Info("frostfire server listening", "addr", httpAddr, "session", session.ID())
	s.Spin()

	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := persistUC.Autosave(shutdownCtx); err != nil {
		logger.Warn("final autosave failed", "err", err)
	}
	_ = wsServer.Shutdown(shutdownCtx)
}

type stores struct {
	backend  string
	saves    ports.SaveRepository
	progress ports.ProgressionRepository
	events   ports.EventRepository
	tx       ports.TxManager
	close    func()
}

// buildStores picks postgres when FROSTFIRE_DB_DSN is set, then a SQLite
// file when FROSTFIRE_SQLITE_PATH is set, and memory otherwise.
func buildStores(ctx context.Context) (stores, error) {
	if dsn := stringEnv("FROSTFIRE_DB_DSN", ""); dsn != "" {
		gdb, err := gormrepo.OpenPostgres(dsn)
		if err != nil {
			return stores{}, err
		}
		if err := gormrepo.ApplyMigrations(ctx, gdb, migrationsFS()); err != nil {
			return stores{}, err
		}
		return stores{
			backend:  "postgres",
			saves:    gormrepo.NewSaveRepo(gdb),
			progress: gormrepo.NewProgressionRepo(gdb),
			events:   gormrepo.NewEventRepo(gdb),
			tx:       gormrepo.NewTxManager(gdb),
			close: func() {
				if sqlDB, err := gdb.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil
	}

	if path := stringEnv("FROSTFIRE_SQLITE_PATH", ""); path != "" {
		sdb, err := sqliterepo.Open(path)
		if err != nil {
			return stores{}, err
		}
		return stores{
			backend:  "sqlite",
			saves:    sqliterepo.NewSaveRepo(sdb),
			progress: sqliterepo.NewProgressionRepo(sdb),
			events:   sqliterepo.NewEventRepo(sdb),
			tx:       sqliterepo.NewTxManager(sdb),
			close:    func() { _ = sdb.Close() },
		}, nil
	}

	store := memory.NewStore()
	return stores{
		backend:  "memory",
		saves:    memory.NewSaveRepo(store),
		progress: memory.NewProgressionRepo(store),
		events:   memory.NewEventRepo(store),
		tx:       memory.NewTxManager(store),
		close:    func() {},
	}, nil
}

func migrationsFS() fs.FS {
	if dir := stringEnv("FROSTFIRE_MIGRATIONS_DIR", ""); dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(db.Migrations, "migrations")
	if err != nil {
		return db.Migrations
	}
	return sub
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
