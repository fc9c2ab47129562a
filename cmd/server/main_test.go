package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"frostfire/internal/app/ports"
)

func TestIntEnv(t *testing.T) {
	t.Setenv("FROSTFIRE_TICK_MS", " 33 ")
	if got := intEnv("FROSTFIRE_TICK_MS", 16); got != 33 {
		t.Fatalf("intEnv()=%d want %d", got, 33)
	}
	t.Setenv("FROSTFIRE_TICK_MS", "fast")
	if got := intEnv("FROSTFIRE_TICK_MS", 16); got != 16 {
		t.Fatalf("intEnv()=%d want fallback %d", got, 16)
	}
}

func TestStringEnv(t *testing.T) {
	t.Setenv("FROSTFIRE_PROFILE", "")
	if got := stringEnv("FROSTFIRE_PROFILE", "local"); got != "local" {
		t.Fatalf("stringEnv()=%q want %q", got, "local")
	}
	t.Setenv("FROSTFIRE_PROFILE", "alice")
	if got := stringEnv("FROSTFIRE_PROFILE", "local"); got != "alice" {
		t.Fatalf("stringEnv()=%q want %q", got, "alice")
	}
}

func TestBuildStores_DefaultsToMemory(t *testing.T) {
	t.Setenv("FROSTFIRE_DB_DSN", "")
	t.Setenv("FROSTFIRE_SQLITE_PATH", "")
	st, err := buildStores(context.Background())
	if err != nil {
		t.Fatalf("buildStores: %v", err)
	}
	defer st.close()
	if st.backend != "memory" {
		t.Fatalf("backend=%q want memory", st.backend)
	}
}

func TestBuildStores_UsesSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frostfire.db")
	t.Setenv("FROSTFIRE_DB_DSN", "")
	t.Setenv("FROSTFIRE_SQLITE_PATH", path)
	st, err := buildStores(context.Background())
	if err != nil {
		t.Fatalf("buildStores: %v", err)
	}
	defer st.close()
	if st.backend != "sqlite" {
		t.Fatalf("backend=%q want sqlite", st.backend)
	}

	ctx := context.Background()
	err = st.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return st.saves.Put(txCtx, ports.SaveRecord{Slot: "autosave", SaveID: "x", Payload: []byte(`{}`), SavedAt: time.Now()})
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected sqlite file on disk: %v", err)
	}
}

func TestMigrationsFS_EmbeddedByDefault(t *testing.T) {
	t.Setenv("FROSTFIRE_MIGRATIONS_DIR", "")
	if _, err := fs.ReadFile(migrationsFS(), "0001_init.sql"); err != nil {
		t.Fatalf("expected embedded init migration: %v", err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "0002_extra.sql"), []byte("SELECT 1;"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("FROSTFIRE_MIGRATIONS_DIR", dir)
	if _, err := fs.ReadFile(migrationsFS(), "0002_extra.sql"); err != nil {
		t.Fatalf("expected override dir: %v", err)
	}
}
