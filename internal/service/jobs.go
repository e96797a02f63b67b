package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/inventorly/internal/database/repository"
	"github.com/jask/inventorly/internal/forms"
)

// JobService assigns inventory to projects.
type JobService struct {
	Projects    repository.ProjectStore
	Assignments repository.AssignmentStore
	Items       repository.ItemStore
	Log         *zap.Logger
	Latency     time.Duration
}

// Active lists the projects items can be assigned to.
func (s *JobService) Active(ctx context.Context) ([]repository.Project, error) {
	ps, err := s.Projects.FilterByStatus(ctx, repository.ProjectActive)
	if err != nil {
		return nil, fmt.Errorf("active projects: %w", err)
	}
	return ps, nil
}

// All lists every project.
func (s *JobService) All(ctx context.Context) ([]repository.Project, error) {
	ps, err := s.Projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return ps, nil
}

// CreateProject adds an active project.
func (s *JobService) CreateProject(ctx context.Context, name, client string) (repository.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return repository.Project{}, &ValidationError{Fields: forms.Errors{"project": "Project name is required"}}
	}
	p := repository.Project{
		ID:     uuid.NewString(),
		Name:   name,
		Client: strings.TrimSpace(client),
		Status: repository.ProjectActive,
	}
	if err := s.Projects.Upsert(ctx, p); err != nil {
		return repository.Project{}, fmt.Errorf("create project: %w", err)
	}
	logger(s.Log).Info("project created", zap.String("project_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// Assign sends qty units of an item to a project and marks the item assigned.
func (s *JobService) Assign(ctx context.Context, itemID int64, projectID string, qty int) (repository.Assignment, error) {
	if err := wait(ctx, s.Latency); err != nil {
		return repository.Assignment{}, fmt.Errorf("assign: %w", err)
	}
	it, err := s.Items.FindByID(ctx, itemID)
	if err != nil {
		return repository.Assignment{}, fmt.Errorf("assign: %w", err)
	}
	if it == nil {
		return repository.Assignment{}, fmt.Errorf("item %d: %w", itemID, ErrNotFound)
	}
	p, err := s.Projects.FindByID(ctx, projectID)
	if err != nil {
		return repository.Assignment{}, fmt.Errorf("assign: %w", err)
	}
	if p == nil {
		return repository.Assignment{}, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	if p.Status != repository.ProjectActive {
		return repository.Assignment{}, fmt.Errorf("%s: %w", p.Name, ErrProjectClosed)
	}
	assigned, err := s.assignedUnits(ctx, itemID)
	if err != nil {
		return repository.Assignment{}, fmt.Errorf("assign: %w", err)
	}
	if free := it.Quantity - assigned; qty < 1 || qty > free {
		return repository.Assignment{}, fmt.Errorf("assign %d with %d of %d free: %w", qty, max(free, 0), it.Quantity, ErrInsufficientQuantity)
	}

	a := repository.Assignment{
		ID:        uuid.NewString(),
		ItemID:    itemID,
		ProjectID: projectID,
		Quantity:  qty,
	}
	if err := s.Assignments.Insert(ctx, a); err != nil {
		return repository.Assignment{}, fmt.Errorf("assign: %w", err)
	}
	if err := s.Items.UpdateStatus(ctx, itemID, repository.StatusAssigned); err != nil {
		return repository.Assignment{}, fmt.Errorf("assign: %w", err)
	}
	logger(s.Log).Info("item assigned",
		zap.Int64("item_id", itemID),
		zap.String("project_id", projectID),
		zap.Int("quantity", qty))
	return a, nil
}

// Available returns how many units of an item are not out on a job.
func (s *JobService) Available(ctx context.Context, itemID int64) (int, error) {
	it, err := s.Items.FindByID(ctx, itemID)
	if err != nil {
		return 0, fmt.Errorf("available: %w", err)
	}
	if it == nil {
		return 0, fmt.Errorf("item %d: %w", itemID, ErrNotFound)
	}
	assigned, err := s.assignedUnits(ctx, itemID)
	if err != nil {
		return 0, fmt.Errorf("available: %w", err)
	}
	return max(it.Quantity-assigned, 0), nil
}

func (s *JobService) assignedUnits(ctx context.Context, itemID int64) (int, error) {
	as, err := s.Assignments.ListForItem(ctx, itemID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, a := range as {
		n += a.Quantity
	}
	return n, nil
}

// AssignmentLine is an assignment with its project name resolved.
type AssignmentLine struct {
	ProjectName string    `yaml:"project"`
	Quantity    int       `yaml:"quantity"`
	AssignedAt  time.Time `yaml:"assigned_at"`
	Note        string    `yaml:"note,omitempty"`
}

// History lists where an item has been assigned.
func (s *JobService) History(ctx context.Context, itemID int64) ([]AssignmentLine, error) {
	as, err := s.Assignments.ListForItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	names := map[string]string{}
	out := make([]AssignmentLine, 0, len(as))
	for _, a := range as {
		name, ok := names[a.ProjectID]
		if !ok {
			p, err := s.Projects.FindByID(ctx, a.ProjectID)
			if err != nil {
				return nil, fmt.Errorf("history: %w", err)
			}
			name = a.ProjectID
			if p != nil {
				name = p.Name
			}
			names[a.ProjectID] = name
		}
		line := AssignmentLine{ProjectName: name, Quantity: a.Quantity, AssignedAt: a.AssignedAt}
		if a.Note != nil {
			line.Note = *a.Note
		}
		out = append(out, line)
	}
	return out, nil
}
