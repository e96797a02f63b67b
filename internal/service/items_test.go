package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/inventorly/internal/database"
	"github.com/jask/inventorly/internal/database/memstore"
	"github.com/jask/inventorly/internal/database/repository"
	"github.com/jask/inventorly/internal/forms"
)

func seeded(t *testing.T) repository.Store {
	t.Helper()
	store := memstore.New()
	require.NoError(t, database.SeedDefaults(context.Background(), store))
	return store
}

func names(items []repository.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestItemCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := &ItemService{Items: memstore.New().Items}

	it, err := svc.Create(ctx, forms.ItemInput{
		Name:         "Hilti Rotary Hammer",
		Category:     "Power Tools",
		Location:     "Warehouse B",
		PurchaseCost: "$1,049.50",
		Quantity:     "2",
		Tags:         "hilti, hammer",
	})
	require.NoError(t, err)
	require.NotZero(t, it.ID)
	require.Equal(t, int64(104950), it.PurchaseCostCents)
	require.Equal(t, repository.StatusAvailable, it.Status)
	require.Equal(t, []string{"hilti", "hammer"}, it.Tags)
	require.Nil(t, it.SerialNumber)

	_, err = svc.Create(ctx, forms.ItemInput{Category: "Power Tools", Quantity: "0"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{forms.FieldName, forms.FieldQuantity}, verr.Fields.Fields())
}

func TestItemGetMissing(t *testing.T) {
	t.Parallel()
	svc := &ItemService{Items: memstore.New().Items}
	_, err := svc.Get(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.Delete(context.Background(), 42), ErrNotFound)
}

func TestItemFilterAndStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := &ItemService{Items: seeded(t).Items}

	all, err := svc.FilterByStatus(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 7)

	avail, err := svc.FilterByStatus(ctx, repository.StatusAvailable)
	require.NoError(t, err)
	require.Len(t, avail, 3)

	_, err = svc.FilterByStatus(ctx, "lost")
	require.ErrorIs(t, err, ErrInvalidStatus)

	require.NoError(t, svc.SetStatus(ctx, 1, repository.StatusMaintenance))
	it, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, repository.StatusMaintenance, it.Status)
	require.ErrorIs(t, svc.SetStatus(ctx, 1, "lost"), ErrInvalidStatus)
}

func TestNextStatus(t *testing.T) {
	require.Equal(t, repository.StatusAssigned, NextStatus(repository.StatusAvailable))
	require.Equal(t, repository.StatusAvailable, NextStatus(repository.StatusRetired))
	require.Equal(t, repository.StatusAvailable, NextStatus("bogus"))
}

func TestItemSearch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := &ItemService{Items: seeded(t).Items}
	items, err := svc.List(ctx)
	require.NoError(t, err)

	require.Len(t, svc.Search(items, ""), 7)
	require.Equal(t, []string{"Werner 24ft Extension Ladder"}, names(svc.Search(items, "ladder")))
	require.Equal(t, []string{"Werner 24ft Extension Ladder"}, names(svc.Search(items, "laddr")))
	// category and tag hits
	require.ElementsMatch(t, []string{"DeWalt 20V Cordless Drill", "Makita Circular Saw"}, names(svc.Search(items, "power tools")))
	require.Equal(t, []string{"3M Full Body Safety Harness"}, names(svc.Search(items, "fall-protection")))
	require.Empty(t, svc.Search(items, "xyz"))
}

func TestItemSimilar(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := &ItemService{Items: seeded(t).Items}

	got, err := svc.Similar(ctx, "dewalt 20v cordless dril")
	require.NoError(t, err)
	require.Equal(t, []string{"DeWalt 20V Cordless Drill"}, names(got))

	got, err = svc.Similar(ctx, "Torque Wrench")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestItemSummaryAndDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := seeded(t)
	svc := &ItemService{Items: store.Items}

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, 7, sum.TotalItems)
	require.Equal(t, 22, sum.TotalUnits)
	require.Equal(t, int64(668598), sum.ValueCents)
	require.Equal(t, map[string]int{
		repository.StatusAvailable:   3,
		repository.StatusAssigned:    2,
		repository.StatusMaintenance: 1,
		repository.StatusRetired:     1,
	}, sum.ByStatus)
	require.Len(t, sum.Recent, 5)
	require.Equal(t, "Scaffold Tower Kit", sum.Recent[0].Name)

	require.NoError(t, svc.Delete(ctx, 2))
	as, err := store.Assignments.ListForItem(ctx, 2)
	require.NoError(t, err)
	require.Empty(t, as)
	sum, err = svc.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, 6, sum.TotalItems)
}
