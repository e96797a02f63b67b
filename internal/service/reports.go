package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jask/inventorly/internal/database/repository"
)

// Bucket is one labelled row of a report breakdown.
type Bucket struct {
	Label      string `yaml:"label"`
	Items      int    `yaml:"items"`
	Units      int    `yaml:"units"`
	ValueCents int64  `yaml:"value_cents"`
}

// Report is the inventory-wide overview.
type Report struct {
	GeneratedAt time.Time `yaml:"generated_at"`
	TotalItems  int       `yaml:"total_items"`
	TotalUnits  int       `yaml:"total_units"`
	ValueCents  int64     `yaml:"value_cents"`
	ByStatus    []Bucket  `yaml:"by_status"`
	ByCategory  []Bucket  `yaml:"by_category"`
	ByLocation  []Bucket  `yaml:"by_location"`
	ActiveJobs  []string  `yaml:"active_jobs"`
}

// ItemReport is the report for a single item.
type ItemReport struct {
	GeneratedAt time.Time        `yaml:"generated_at"`
	ItemID      int64            `yaml:"item_id"`
	Name        string           `yaml:"name"`
	Category    string           `yaml:"category"`
	Location    string           `yaml:"location"`
	Status      string           `yaml:"status"`
	Quantity    int              `yaml:"quantity"`
	ValueCents  int64            `yaml:"value_cents"`
	Assigned    int              `yaml:"units_assigned"`
	History     []AssignmentLine `yaml:"history"`
}

// ReportService aggregates items and jobs.
type ReportService struct {
	Items *ItemService
	Jobs  *JobService
	Log   *zap.Logger
}

// Build aggregates the whole inventory.
func (s *ReportService) Build(ctx context.Context) (Report, error) {
	items, err := s.Items.List(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("build report: %w", err)
	}
	jobs, err := s.Jobs.Active(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("build report: %w", err)
	}

	r := Report{GeneratedAt: time.Now().UTC()}
	status := map[string]*Bucket{}
	for _, st := range repository.ItemStatuses {
		status[st] = &Bucket{Label: st}
	}
	category := map[string]*Bucket{}
	location := map[string]*Bucket{}
	for _, it := range items {
		r.TotalItems++
		r.TotalUnits += it.Quantity
		r.ValueCents += it.ValueCents()
		add(status, it.Status, it)
		add(category, orNone(it.Category), it)
		add(location, orNone(it.Location), it)
	}
	for _, st := range repository.ItemStatuses {
		r.ByStatus = append(r.ByStatus, *status[st])
	}
	r.ByCategory = byValue(category)
	r.ByLocation = byValue(location)
	for _, j := range jobs {
		r.ActiveJobs = append(r.ActiveJobs, j.Name)
	}
	sort.Strings(r.ActiveJobs)
	return r, nil
}

// ForItem reports one item with its assignment history.
func (s *ReportService) ForItem(ctx context.Context, id int64) (ItemReport, error) {
	it, err := s.Items.Get(ctx, id)
	if err != nil {
		return ItemReport{}, err
	}
	hist, err := s.Jobs.History(ctx, id)
	if err != nil {
		return ItemReport{}, err
	}
	r := ItemReport{
		GeneratedAt: time.Now().UTC(),
		ItemID:      it.ID,
		Name:        it.Name,
		Category:    it.Category,
		Location:    it.Location,
		Status:      it.Status,
		Quantity:    it.Quantity,
		ValueCents:  it.ValueCents(),
		History:     hist,
	}
	for _, h := range hist {
		r.Assigned += h.Quantity
	}
	return r, nil
}

// Export writes a report (Report or ItemReport) as YAML.
func (s *ReportService) Export(w io.Writer, report any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("export report: %w", err)
	}
	return enc.Close()
}

// ExportFile writes report to a timestamped file under dir and returns its path.
func (s *ReportService) ExportFile(dir, prefix string, report any) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export report: %w", err)
	}
	f, path, err := createUnique(dir, fmt.Sprintf("%s-%s", prefix, time.Now().Format("20060102-150405")))
	if err != nil {
		return "", fmt.Errorf("export report: %w", err)
	}
	if err := s.Export(f, report); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export report: %w", err)
	}
	logger(s.Log).Info("report exported", zap.String("path", path))
	return path, nil
}

// createUnique creates base.yaml in dir, or base-2.yaml, base-3.yaml and so on
// when an earlier export already holds the name.
func createUnique(dir, base string) (*os.File, string, error) {
	for n := 1; ; n++ {
		name := base + ".yaml"
		if n > 1 {
			name = fmt.Sprintf("%s-%d.yaml", base, n)
		}
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return f, path, err
	}
}

func add(m map[string]*Bucket, key string, it repository.Item) {
	b, ok := m[key]
	if !ok {
		b = &Bucket{Label: key}
		m[key] = b
	}
	b.Items++
	b.Units += it.Quantity
	b.ValueCents += it.ValueCents()
}

func byValue(m map[string]*Bucket) []Bucket {
	out := make([]Bucket, 0, len(m))
	for _, b := range m {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ValueCents != out[j].ValueCents {
			return out[i].ValueCents > out[j].ValueCents
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
