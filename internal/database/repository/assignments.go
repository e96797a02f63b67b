package repository

import (
	"context"
	"database/sql"
)

// AssignmentRepo handles item assignments.
type AssignmentRepo struct {
	db *sql.DB
}

func NewAssignmentRepo(db *sql.DB) *AssignmentRepo { return &AssignmentRepo{db: db} }

func (r *AssignmentRepo) Insert(ctx context.Context, a Assignment) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO assignments(id, item_id, project_id, quantity, note, assigned_at)
	VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`, a.ID, a.ItemID, a.ProjectID, a.Quantity, a.Note)
	return err
}

func (r *AssignmentRepo) ListForItem(ctx context.Context, itemID int64) ([]Assignment, error) {
	return r.query(ctx, `SELECT id, item_id, project_id, quantity, note, assigned_at FROM assignments WHERE item_id = ? ORDER BY assigned_at DESC, rowid DESC`, itemID)
}

func (r *AssignmentRepo) ListForProject(ctx context.Context, projectID string) ([]Assignment, error) {
	return r.query(ctx, `SELECT id, item_id, project_id, quantity, note, assigned_at FROM assignments WHERE project_id = ? ORDER BY assigned_at DESC, rowid DESC`, projectID)
}

func (r *AssignmentRepo) query(ctx context.Context, q string, args ...interface{}) ([]Assignment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Assignment
	for rows.Next() {
		var a Assignment
		var note sql.NullString
		if err := rows.Scan(&a.ID, &a.ItemID, &a.ProjectID, &a.Quantity, &note, &a.AssignedAt); err != nil {
			return nil, err
		}
		if note.Valid {
			a.Note = &note.String
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
