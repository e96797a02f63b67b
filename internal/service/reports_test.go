package service

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newReports(t *testing.T) *ReportService {
	t.Helper()
	store := seeded(t)
	return &ReportService{
		Items: &ItemService{Items: store.Items},
		Jobs:  &JobService{Projects: store.Projects, Assignments: store.Assignments, Items: store.Items},
	}
}

func TestBuildReport(t *testing.T) {
	t.Parallel()
	svc := newReports(t)
	r, err := svc.Build(context.Background())
	require.NoError(t, err)

	require.Equal(t, 7, r.TotalItems)
	require.Equal(t, 22, r.TotalUnits)
	require.Equal(t, int64(668598), r.ValueCents)
	require.Len(t, r.ByStatus, 4)
	require.Equal(t, "available", r.ByStatus[0].Label)
	require.Equal(t, 3, r.ByStatus[0].Items)
	require.Equal(t, []string{"Maple Street Duplex", "Riverside Office Renovation"}, r.ActiveJobs)

	// highest value first
	require.Equal(t, "Access Equipment", r.ByCategory[0].Label)
	require.Equal(t, int64(310998), r.ByCategory[0].ValueCents)
	var units int
	for _, b := range r.ByLocation {
		units += b.Units
	}
	require.Equal(t, 22, units)
}

func TestItemReport(t *testing.T) {
	t.Parallel()
	svc := newReports(t)
	r, err := svc.ForItem(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, "Werner 24ft Extension Ladder", r.Name)
	require.Equal(t, 2, r.Assigned)
	require.Equal(t, int64(65998), r.ValueCents)

	_, err = svc.ForItem(context.Background(), 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestExportYAML(t *testing.T) {
	t.Parallel()
	svc := newReports(t)
	r, err := svc.Build(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(&buf, r))
	require.True(t, strings.Contains(buf.String(), "total_items: 7"))

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	require.Equal(t, 22, back["total_units"])

	dir := t.TempDir()
	path, err := svc.ExportFile(dir, "inventory", r)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(path, dir))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, buf.String(), string(data))
}

func TestExportFileKeepsEarlierExports(t *testing.T) {
	t.Parallel()
	svc := newReports(t)
	r, err := svc.Build(context.Background())
	require.NoError(t, err)

	dir := t.TempDir()
	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		path, err := svc.ExportFile(dir, "inventory", r)
		require.NoError(t, err)
		require.False(t, seen[path], "export reused %s", path)
		seen[path] = true
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}
