// Package memstore keeps every repository in process memory. It is the
// default store: data lives for the session and resets on restart.
package memstore

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jask/inventorly/internal/database/repository"
)

// New returns an empty in-memory store.
func New() repository.Store {
	db := &memDB{
		items:    map[int64]repository.Item{},
		projects: map[string]repository.Project{},
		users:    map[string]repository.User{},
	}
	return repository.Store{
		Items:       &itemStore{db},
		Projects:    &projectStore{db},
		Assignments: &assignmentStore{db},
		Users:       &userStore{db},
		Codes:       &codeStore{db},
	}
}

type memDB struct {
	mu          sync.RWMutex
	nextItemID  int64
	items       map[int64]repository.Item
	projects    map[string]repository.Project
	assignments []repository.Assignment
	users       map[string]repository.User
	codes       []repository.VerificationCode
}

func now() time.Time { return time.Now().UTC().Truncate(time.Second) }

type itemStore struct{ db *memDB }

func (s *itemStore) Insert(ctx context.Context, it repository.Item) (int64, error) {
	ids, err := s.InsertBatch(ctx, []repository.Item{it})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

func (s *itemStore) InsertBatch(ctx context.Context, items []repository.Item) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// same rules as the sqlite CHECK constraints, checked before anything is stored
	for i, it := range items {
		if err := checkItem(it); err != nil {
			return nil, fmt.Errorf("item %d of %d: %w", i+1, len(items), err)
		}
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		s.db.nextItemID++
		it.ID = s.db.nextItemID
		if it.Status == "" {
			it.Status = repository.StatusAvailable
		}
		it.Tags = append([]string(nil), it.Tags...)
		it.CreatedAt = now()
		it.UpdatedAt = it.CreatedAt
		s.db.items[it.ID] = it
		ids = append(ids, it.ID)
	}
	return ids, nil
}

func checkItem(it repository.Item) error {
	if it.Quantity < 0 {
		return fmt.Errorf("quantity %d is negative", it.Quantity)
	}
	if it.Status != "" && !slices.Contains(repository.ItemStatuses, it.Status) {
		return fmt.Errorf("unknown status %q", it.Status)
	}
	return nil
}

func (s *itemStore) FindByID(ctx context.Context, id int64) (*repository.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	it, ok := s.db.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (s *itemStore) List(ctx context.Context) ([]repository.Item, error) {
	return s.filter(ctx, func(repository.Item) bool { return true })
}

func (s *itemStore) FilterByStatus(ctx context.Context, status string) ([]repository.Item, error) {
	return s.filter(ctx, func(it repository.Item) bool { return it.Status == status })
}

func (s *itemStore) filter(ctx context.Context, keep func(repository.Item) bool) ([]repository.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	var out []repository.Item
	for _, it := range s.db.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	// newest first, matching the sqlite ordering
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *itemStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	it, ok := s.db.items[id]
	if !ok {
		return nil
	}
	it.Status = status
	it.UpdatedAt = now()
	s.db.items[id] = it
	return nil
}

func (s *itemStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	delete(s.db.items, id)
	kept := s.db.assignments[:0]
	for _, a := range s.db.assignments {
		if a.ItemID != id {
			kept = append(kept, a)
		}
	}
	s.db.assignments = kept
	return nil
}

type projectStore struct{ db *memDB }

func (s *projectStore) Upsert(ctx context.Context, p repository.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if p.Status == "" {
		p.Status = repository.ProjectActive
	}
	if prev, ok := s.db.projects[p.ID]; ok {
		p.CreatedAt = prev.CreatedAt
	} else {
		p.CreatedAt = now()
	}
	s.db.projects[p.ID] = p
	return nil
}

func (s *projectStore) FindByID(ctx context.Context, id string) (*repository.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	p, ok := s.db.projects[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *projectStore) List(ctx context.Context) ([]repository.Project, error) {
	return s.filter(ctx, func(repository.Project) bool { return true })
}

func (s *projectStore) FilterByStatus(ctx context.Context, status string) ([]repository.Project, error) {
	return s.filter(ctx, func(p repository.Project) bool { return p.Status == status })
}

func (s *projectStore) filter(ctx context.Context, keep func(repository.Project) bool) ([]repository.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	var out []repository.Project
	for _, p := range s.db.projects {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type assignmentStore struct{ db *memDB }

func (s *assignmentStore) Insert(ctx context.Context, a repository.Assignment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.items[a.ItemID]; !ok {
		return fmt.Errorf("assignment %s: item %d does not exist", a.ID, a.ItemID)
	}
	if _, ok := s.db.projects[a.ProjectID]; !ok {
		return fmt.Errorf("assignment %s: project %s does not exist", a.ID, a.ProjectID)
	}
	a.AssignedAt = now()
	s.db.assignments = append(s.db.assignments, a)
	return nil
}

func (s *assignmentStore) ListForItem(ctx context.Context, itemID int64) ([]repository.Assignment, error) {
	return s.filter(ctx, func(a repository.Assignment) bool { return a.ItemID == itemID })
}

func (s *assignmentStore) ListForProject(ctx context.Context, projectID string) ([]repository.Assignment, error) {
	return s.filter(ctx, func(a repository.Assignment) bool { return a.ProjectID == projectID })
}

func (s *assignmentStore) filter(ctx context.Context, keep func(repository.Assignment) bool) ([]repository.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	var out []repository.Assignment
	// appended in time order; newest first
	for i := len(s.db.assignments) - 1; i >= 0; i-- {
		if keep(s.db.assignments[i]) {
			out = append(out, s.db.assignments[i])
		}
	}
	return out, nil
}

type userStore struct{ db *memDB }

func (s *userStore) Upsert(ctx context.Context, u repository.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if prev, ok := s.db.users[u.ID]; ok {
		u.CreatedAt = prev.CreatedAt
	} else {
		u.CreatedAt = now()
	}
	s.db.users[u.ID] = u
	return nil
}

func (s *userStore) ByPhone(ctx context.Context, phone string) (*repository.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	for _, u := range s.db.users {
		if strings.EqualFold(u.Phone, phone) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

type codeStore struct{ db *memDB }

func (s *codeStore) Insert(ctx context.Context, c repository.VerificationCode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c.CreatedAt = now()
	s.db.codes = append(s.db.codes, c)
	return nil
}

func (s *codeStore) Latest(ctx context.Context, phone string) (*repository.VerificationCode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	for i := len(s.db.codes) - 1; i >= 0; i-- {
		if s.db.codes[i].Phone == phone {
			c := s.db.codes[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (s *codeStore) MarkUsed(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.codes {
		if s.db.codes[i].ID == id {
			t := now()
			s.db.codes[i].UsedAt = &t
		}
	}
	return nil
}
