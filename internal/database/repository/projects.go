package repository

import (
	"context"
	"database/sql"
)

// ProjectRepo handles projects.
type ProjectRepo struct {
	db *sql.DB
}

func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{db: db} }

func (r *ProjectRepo) Upsert(ctx context.Context, p Project) error {
	status := p.Status
	if status == "" {
		status = ProjectActive
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO projects(id, name, client, location, status, created_at)
	VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 client=excluded.client,
	 location=excluded.location,
	 status=excluded.status;
	`, p.ID, p.Name, p.Client, p.Location, status)
	return err
}

func (r *ProjectRepo) FindByID(ctx context.Context, id string) (*Project, error) {
	var p Project
	err := r.db.QueryRowContext(ctx, `SELECT id, name, client, location, status, created_at FROM projects WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Client, &p.Location, &p.Status, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepo) List(ctx context.Context) ([]Project, error) {
	return r.query(ctx, `SELECT id, name, client, location, status, created_at FROM projects ORDER BY name`)
}

func (r *ProjectRepo) FilterByStatus(ctx context.Context, status string) ([]Project, error) {
	return r.query(ctx, `SELECT id, name, client, location, status, created_at FROM projects WHERE status = ? ORDER BY name`, status)
}

func (r *ProjectRepo) query(ctx context.Context, q string, args ...interface{}) ([]Project, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Client, &p.Location, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
