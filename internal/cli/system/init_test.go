package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quietloop/rhythm/internal/cli"
	"github.com/quietloop/rhythm/internal/config"
	"github.com/quietloop/rhythm/internal/service"
	"github.com/quietloop/rhythm/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)

	ctx := &cli.Context{
		Store:   store,
		Service: service.New(store),
		Config: &config.Config{
			Backend:      config.BackendSQLite,
			DatabasePath: dbPath,
			UserID:       "local",
		},
	}
	t.Cleanup(func() { store.Close() })
	return ctx, dbPath
}

func TestInitCmdCreatesDatabase(t *testing.T) {
	ctx, dbPath := setupTestContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
}

func TestInitCmdIdempotent(t *testing.T) {
	ctx, _ := setupTestContext(t)

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("second init failed: %v", err)
	}
}

func TestInitCmdForceResets(t *testing.T) {
	ctx, dbPath := setupTestContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file missing after forced init")
	}
}

func TestInitCmdForceRejectsPostgres(t *testing.T) {
	ctx, _ := setupTestContext(t)
	ctx.Config.Backend = config.BackendPostgres

	if err := (&InitCmd{Force: true}).Run(ctx); err == nil {
		t.Error("expected --force to be rejected for the postgres backend")
	}
}
