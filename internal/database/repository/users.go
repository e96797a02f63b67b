package repository

import (
	"context"
	"database/sql"
)

// UserRepo handles accounts.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Upsert(ctx context.Context, u User) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO users(id, full_name, phone, business_name, created_at)
	VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 full_name=excluded.full_name,
	 phone=excluded.phone,
	 business_name=excluded.business_name;
	`, u.ID, u.FullName, u.Phone, u.BusinessName)
	return err
}

func (r *UserRepo) ByPhone(ctx context.Context, phone string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `SELECT id, full_name, phone, business_name, created_at FROM users WHERE phone = ?`, phone).
		Scan(&u.ID, &u.FullName, &u.Phone, &u.BusinessName, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
