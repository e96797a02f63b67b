package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"

	"github.com/jask/inventorly/internal/database/repository"
	"github.com/jask/inventorly/internal/forms"
)

// recentLimit is how many items the dashboard lists.
const recentLimit = 5

// ItemService handles inventory item CRUD.
type ItemService struct {
	Items repository.ItemStore
	Log   *zap.Logger
}

// Create validates in and stores a new available item.
func (s *ItemService) Create(ctx context.Context, in forms.ItemInput) (repository.Item, error) {
	v, errs := in.Validate()
	if errs.Any() {
		return repository.Item{}, &ValidationError{Fields: errs}
	}
	it := repository.Item{
		Name:              v.Name,
		Category:          v.Category,
		Location:          v.Location,
		PurchaseCostCents: v.PurchaseCostCents,
		Quantity:          v.Quantity,
		Tags:              v.Tags,
		Status:            repository.StatusAvailable,
		SerialNumber:      nullableStr(v.SerialNumber),
		Notes:             nullableStr(v.Notes),
	}
	id, err := s.Items.Insert(ctx, it)
	if err != nil {
		return repository.Item{}, fmt.Errorf("create item: %w", err)
	}
	created, err := s.Get(ctx, id)
	if err != nil {
		return repository.Item{}, err
	}
	logger(s.Log).Info("item created", zap.Int64("item_id", id), zap.String("name", it.Name))
	return created, nil
}

// Get returns the item or ErrNotFound.
func (s *ItemService) Get(ctx context.Context, id int64) (repository.Item, error) {
	it, err := s.Items.FindByID(ctx, id)
	if err != nil {
		return repository.Item{}, fmt.Errorf("get item %d: %w", id, err)
	}
	if it == nil {
		return repository.Item{}, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return *it, nil
}

// List returns every item, newest first.
func (s *ItemService) List(ctx context.Context) ([]repository.Item, error) {
	items, err := s.Items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// FilterByStatus lists items in status; an empty status lists everything.
func (s *ItemService) FilterByStatus(ctx context.Context, status string) ([]repository.Item, error) {
	if status == "" {
		return s.List(ctx)
	}
	if !validStatus(status) {
		return nil, fmt.Errorf("filter %q: %w", status, ErrInvalidStatus)
	}
	items, err := s.Items.FilterByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("filter items: %w", err)
	}
	return items, nil
}

// Search matches query against name, category, location and tags. Substring
// hits come first; names within a small edit distance of the query follow.
func (s *ItemService) Search(items []repository.Item, query string) []repository.Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	type hit struct {
		item repository.Item
		dist int
	}
	var hits []hit
	for _, it := range items {
		if containsFold(it, q) {
			hits = append(hits, hit{item: it})
			continue
		}
		if d := closestWord(strings.ToLower(it.Name), q); d <= typoBudget(q) {
			hits = append(hits, hit{item: it, dist: d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })
	out := make([]repository.Item, len(hits))
	for i, h := range hits {
		out[i] = h.item
	}
	return out
}

// Similar returns stored items whose name is close to name, for duplicate warnings.
func (s *ItemService) Similar(ctx context.Context, name string) ([]repository.Item, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return nil, nil
	}
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []repository.Item
	for _, it := range items {
		other := strings.ToLower(it.Name)
		if other == n || levenshtein.ComputeDistance(other, n) <= max(2, len(n)/8) {
			out = append(out, it)
		}
	}
	return out, nil
}

// SetStatus moves an item to status.
func (s *ItemService) SetStatus(ctx context.Context, id int64, status string) error {
	if !validStatus(status) {
		return fmt.Errorf("set status %q: %w", status, ErrInvalidStatus)
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.Items.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	logger(s.Log).Info("item status changed", zap.Int64("item_id", id), zap.String("status", status))
	return nil
}

// NextStatus cycles through the item statuses in display order.
func NextStatus(status string) string {
	i := slices.Index(repository.ItemStatuses, status)
	return repository.ItemStatuses[(i+1)%len(repository.ItemStatuses)]
}

// Delete removes an item and its assignments.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.Items.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	logger(s.Log).Info("item deleted", zap.Int64("item_id", id))
	return nil
}

// Summary is the dashboard overview.
type Summary struct {
	TotalItems int
	TotalUnits int
	ValueCents int64
	ByStatus   map[string]int
	Recent     []repository.Item
}

// Summary counts the inventory for the dashboard.
func (s *ItemService) Summary(ctx context.Context) (Summary, error) {
	items, err := s.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{ByStatus: make(map[string]int, len(repository.ItemStatuses))}
	for _, st := range repository.ItemStatuses {
		sum.ByStatus[st] = 0
	}
	for _, it := range items {
		sum.TotalItems++
		sum.TotalUnits += it.Quantity
		sum.ValueCents += it.ValueCents()
		sum.ByStatus[it.Status]++
	}
	sum.Recent = items[:min(recentLimit, len(items))]
	return sum, nil
}

func validStatus(s string) bool { return slices.Contains(repository.ItemStatuses, s) }

func containsFold(it repository.Item, q string) bool {
	fields := append([]string{it.Name, it.Category, it.Location}, it.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// closestWord is the smallest edit distance between q and any word of name.
func closestWord(name, q string) int {
	best := levenshtein.ComputeDistance(name, q)
	for _, w := range strings.Fields(name) {
		if d := levenshtein.ComputeDistance(w, q); d < best {
			best = d
		}
	}
	return best
}

func typoBudget(q string) int {
	switch {
	case len(q) < 4:
		return 0
	case len(q) < 8:
		return 1
	default:
		return 2
	}
}

func nullableStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
