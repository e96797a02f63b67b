package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/inventorly/internal/database"
	"github.com/jask/inventorly/internal/database/repository"
)

func isolate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("INVENTORLY_CONFIG", "")
}

func TestResetRefusesMemoryStore(t *testing.T) {
	isolate(t)
	t.Setenv("INVENTORLY_DATABASE_DRIVER", "memory")
	require.ErrorContains(t, run(context.Background(), "reset"), "only the sqlite store persists")
}

func TestResetReturnsAfterClosingStore(t *testing.T) {
	isolate(t)
	dbPath := filepath.Join(t.TempDir(), "data", "inventorly.db")
	t.Setenv("INVENTORLY_DATABASE_DRIVER", "sqlite")
	t.Setenv("INVENTORLY_DATABASE_PATH", dbPath)
	ctx := context.Background()

	require.NoError(t, run(ctx, "reset"))
	// a second run opens the same file, so the first one let go of it
	require.NoError(t, run(ctx, "reset"))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()
	items, err := repository.NewSQLStore(db).Items.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 7)
}
