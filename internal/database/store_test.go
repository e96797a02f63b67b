package database_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/inventorly/internal/database"
	"github.com/jask/inventorly/internal/database/memstore"
	"github.com/jask/inventorly/internal/database/repository"
)

func sqliteStore(t *testing.T) repository.Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewSQLStore(db)
}

func stores(t *testing.T) map[string]repository.Store {
	return map[string]repository.Store{
		"memory": memstore.New(),
		"sqlite": sqliteStore(t),
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "twice.db")
	require.NoError(t, database.RunMigrations(dbPath))
	require.NoError(t, database.RunMigrations(dbPath))
}

func TestStoreItems(t *testing.T) {
	for name, store := range stores(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			serial := "SN-1"
			id1, err := store.Items.Insert(ctx, repository.Item{
				Name: "Drill", Category: "Power Tools", Location: "A", PurchaseCostCents: 18900,
				Quantity: 2, Tags: []string{"drill", "dewalt"}, SerialNumber: &serial,
			})
			require.NoError(t, err)
			id2, err := store.Items.Insert(ctx, repository.Item{Name: "Ladder", Category: "Access", Quantity: 1, Status: repository.StatusMaintenance})
			require.NoError(t, err)
			require.NotEqual(t, id1, id2)

			got, err := store.Items.FindByID(ctx, id1)
			require.NoError(t, err)
			require.NotNil(t, got)
			require.Equal(t, "Drill", got.Name)
			require.Equal(t, repository.StatusAvailable, got.Status)
			require.Equal(t, []string{"drill", "dewalt"}, got.Tags)
			require.Equal(t, int64(37800), got.ValueCents())
			require.NotNil(t, got.SerialNumber)
			require.Nil(t, got.Notes)

			missing, err := store.Items.FindByID(ctx, 9999)
			require.NoError(t, err)
			require.Nil(t, missing)

			all, err := store.Items.List(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)

			maint, err := store.Items.FilterByStatus(ctx, repository.StatusMaintenance)
			require.NoError(t, err)
			require.Len(t, maint, 1)
			require.Equal(t, id2, maint[0].ID)

			require.NoError(t, store.Items.UpdateStatus(ctx, id1, repository.StatusAssigned))
			assigned, err := store.Items.FilterByStatus(ctx, repository.StatusAssigned)
			require.NoError(t, err)
			require.Len(t, assigned, 1)

			require.NoError(t, store.Items.Delete(ctx, id2))
			all, err = store.Items.List(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
		})
	}
}

func TestStoreProjectsAndAssignments(t *testing.T) {
	for name, store := range stores(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			require.NoError(t, store.Projects.Upsert(ctx, repository.Project{ID: "p1", Name: "Beta", Client: "C"}))
			require.NoError(t, store.Projects.Upsert(ctx, repository.Project{ID: "p2", Name: "Alpha", Status: repository.ProjectCompleted}))
			require.NoError(t, store.Projects.Upsert(ctx, repository.Project{ID: "p1", Name: "Beta Renamed", Client: "C"}))

			list, err := store.Projects.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			require.Equal(t, "Alpha", list[0].Name)

			active, err := store.Projects.FilterByStatus(ctx, repository.ProjectActive)
			require.NoError(t, err)
			require.Len(t, active, 1)
			require.Equal(t, "Beta Renamed", active[0].Name)

			itemID, err := store.Items.Insert(ctx, repository.Item{Name: "Generator", Category: "Power", Quantity: 1})
			require.NoError(t, err)
			note := "until hookup"
			require.NoError(t, store.Assignments.Insert(ctx, repository.Assignment{ID: "a1", ItemID: itemID, ProjectID: "p1", Quantity: 1, Note: &note}))

			byItem, err := store.Assignments.ListForItem(ctx, itemID)
			require.NoError(t, err)
			require.Len(t, byItem, 1)
			require.Equal(t, "p1", byItem[0].ProjectID)
			require.Equal(t, "until hookup", *byItem[0].Note)

			byProject, err := store.Assignments.ListForProject(ctx, "p1")
			require.NoError(t, err)
			require.Len(t, byProject, 1)

			require.Error(t, store.Assignments.Insert(ctx, repository.Assignment{ID: "a2", ItemID: 4242, ProjectID: "p1", Quantity: 1}))

			require.NoError(t, store.Items.Delete(ctx, itemID))
			byProject, err = store.Assignments.ListForProject(ctx, "p1")
			require.NoError(t, err)
			require.Empty(t, byProject)
		})
	}
}

func TestStoreUsersAndCodes(t *testing.T) {
	for name, store := range stores(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			u, err := store.Users.ByPhone(ctx, "5551234567")
			require.NoError(t, err)
			require.Nil(t, u)

			require.NoError(t, store.Users.Upsert(ctx, repository.User{ID: "u1", FullName: "Ada", Phone: "5551234567", BusinessName: "Lopez"}))
			u, err = store.Users.ByPhone(ctx, "5551234567")
			require.NoError(t, err)
			require.Equal(t, "Ada", u.FullName)

			exp := time.Now().Add(time.Minute).UTC()
			require.NoError(t, store.Codes.Insert(ctx, repository.VerificationCode{ID: "c1", Phone: "5551234567", CodeHash: "h1", ExpiresAt: exp}))
			require.NoError(t, store.Codes.Insert(ctx, repository.VerificationCode{ID: "c2", Phone: "5551234567", CodeHash: "h2", ExpiresAt: exp}))

			latest, err := store.Codes.Latest(ctx, "5551234567")
			require.NoError(t, err)
			require.Equal(t, "c2", latest.ID)
			require.Nil(t, latest.UsedAt)
			require.WithinDuration(t, exp, latest.ExpiresAt, time.Second)

			require.NoError(t, store.Codes.MarkUsed(ctx, "c2"))
			latest, err = store.Codes.Latest(ctx, "5551234567")
			require.NoError(t, err)
			require.NotNil(t, latest.UsedAt)

			none, err := store.Codes.Latest(ctx, "0000000000")
			require.NoError(t, err)
			require.Nil(t, none)
		})
	}
}

func TestSeedDefaults(t *testing.T) {
	for name, store := range stores(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			require.NoError(t, database.SeedDefaults(ctx, store))
			require.NoError(t, database.SeedDefaults(ctx, store))

			items, err := store.Items.List(ctx)
			require.NoError(t, err)
			require.Len(t, items, 7)

			projects, err := store.Projects.List(ctx)
			require.NoError(t, err)
			require.Len(t, projects, 4)

			p, err := store.Projects.FindByID(ctx, database.ProjectID("riverside"))
			require.NoError(t, err)
			require.Equal(t, "Riverside Office Renovation", p.Name)

			asg, err := store.Assignments.ListForProject(ctx, database.ProjectID("maple"))
			require.NoError(t, err)
			require.Len(t, asg, 1)
		})
	}
}

func TestInsertBatchIsAllOrNothing(t *testing.T) {
	for name, store := range stores(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			ids, err := store.Items.InsertBatch(ctx, []repository.Item{
				{Name: "Drill", Category: "Power Tools", Quantity: 1},
				{Name: "Saw", Category: "Power Tools", Quantity: 2},
			})
			require.NoError(t, err)
			require.Len(t, ids, 2)

			_, err = store.Items.InsertBatch(ctx, []repository.Item{
				{Name: "Ladder", Category: "Access", Quantity: 1},
				{Name: "Broken", Category: "Access", Quantity: 1, Status: "lost"},
				{Name: "Harness", Category: "Safety", Quantity: 1},
			})
			require.Error(t, err)

			items, err := store.Items.List(ctx)
			require.NoError(t, err)
			require.Len(t, items, 2)
		})
	}
}

type failingItems struct {
	repository.ItemStore
}

func (failingItems) List(context.Context) ([]repository.Item, error) {
	return nil, errors.New("disk I/O error")
}

func TestSeedDefaultsStopsWhenItemsCannotBeListed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memstore.New()
	inner := store.Items
	store.Items = failingItems{inner}

	err := database.SeedDefaults(ctx, store)
	require.ErrorContains(t, err, "disk I/O error")

	items, err := inner.List(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
	projects, err := store.Projects.List(ctx)
	require.NoError(t, err)
	require.Empty(t, projects)
}
