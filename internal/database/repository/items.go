package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// ItemRepo handles items.
type ItemRepo struct {
	db *sql.DB
}

func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{db: db} }

const itemColumns = `id, name, category, location, purchase_cost, quantity, tags, status, serial_number, notes, created_at, updated_at`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *ItemRepo) Insert(ctx context.Context, it Item) (int64, error) {
	return insertItem(ctx, r.db, it)
}

func (r *ItemRepo) InsertBatch(ctx context.Context, items []Item) ([]int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(items))
	for i, it := range items {
		id, err := insertItem(ctx, tx, it)
		if err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("item %d of %d: %w", i+1, len(items), err)
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

func insertItem(ctx context.Context, db execer, it Item) (int64, error) {
	status := it.Status
	if status == "" {
		status = StatusAvailable
	}
	res, err := db.ExecContext(ctx, `
	INSERT INTO items(name, category, location, purchase_cost, quantity, tags, status, serial_number, notes, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`, it.Name, it.Category, it.Location, it.PurchaseCostCents, it.Quantity, joinTags(it.Tags), status, it.SerialNumber, it.Notes)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ItemRepo) FindByID(ctx context.Context, id int64) (*Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

func (r *ItemRepo) List(ctx context.Context) ([]Item, error) {
	return r.query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY created_at DESC, id DESC`)
}

func (r *ItemRepo) FilterByStatus(ctx context.Context, status string) ([]Item, error) {
	return r.query(ctx, `SELECT `+itemColumns+` FROM items WHERE status = ? ORDER BY created_at DESC, id DESC`, status)
}

func (r *ItemRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE items SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	return err
}

func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	return err
}

func (r *ItemRepo) query(ctx context.Context, q string, args ...interface{}) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row scanner) (Item, error) {
	var it Item
	var tags string
	var serial, notes sql.NullString
	if err := row.Scan(&it.ID, &it.Name, &it.Category, &it.Location, &it.PurchaseCostCents, &it.Quantity,
		&tags, &it.Status, &serial, &notes, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return Item{}, err
	}
	it.Tags = splitTags(tags)
	if serial.Valid {
		it.SerialNumber = &serial.String
	}
	if notes.Valid {
		it.Notes = &notes.String
	}
	return it, nil
}

func joinTags(tags []string) string { return strings.Join(tags, ",") }

func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
