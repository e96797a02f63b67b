package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/inventorly/internal/database"
	"github.com/jask/inventorly/internal/database/repository"
	"github.com/jask/inventorly/internal/forms"
)

func TestMaintenanceReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := repository.NewSQLStore(db)
	require.NoError(t, database.SeedDefaults(ctx, store))

	items := &ItemService{Items: store.Items}
	_, err = items.Create(ctx, forms.ItemInput{Name: "Extra", Category: "Misc"})
	require.NoError(t, err)

	svc := &MaintenanceService{DB: db, Store: store}
	require.NoError(t, svc.Reset(ctx))

	all, err := items.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 7)
	first, err := items.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "DeWalt 20V Cordless Drill", first.Name)

	require.Error(t, (&MaintenanceService{}).Reset(ctx))
}
