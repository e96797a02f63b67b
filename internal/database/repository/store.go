package repository

import "context"

// Lookups return (nil, nil) when the row does not exist.

// ItemStore persists inventory items.
type ItemStore interface {
	Insert(ctx context.Context, it Item) (int64, error)
	// InsertBatch inserts every item or none of them.
	InsertBatch(ctx context.Context, items []Item) ([]int64, error)
	FindByID(ctx context.Context, id int64) (*Item, error)
	List(ctx context.Context) ([]Item, error)
	FilterByStatus(ctx context.Context, status string) ([]Item, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

// ProjectStore persists projects.
type ProjectStore interface {
	Upsert(ctx context.Context, p Project) error
	FindByID(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	FilterByStatus(ctx context.Context, status string) ([]Project, error)
}

// AssignmentStore persists item assignments.
type AssignmentStore interface {
	Insert(ctx context.Context, a Assignment) error
	ListForItem(ctx context.Context, itemID int64) ([]Assignment, error)
	ListForProject(ctx context.Context, projectID string) ([]Assignment, error)
}

// UserStore persists accounts.
type UserStore interface {
	Upsert(ctx context.Context, u User) error
	ByPhone(ctx context.Context, phone string) (*User, error)
}

// CodeStore persists verification codes.
type CodeStore interface {
	Insert(ctx context.Context, c VerificationCode) error
	Latest(ctx context.Context, phone string) (*VerificationCode, error)
	MarkUsed(ctx context.Context, id string) error
}

// Store bundles every repository the services need.
type Store struct {
	Items       ItemStore
	Projects    ProjectStore
	Assignments AssignmentStore
	Users       UserStore
	Codes       CodeStore
}
