package repository

import (
	"context"
	"database/sql"
)

// CodeRepo handles verification codes.
type CodeRepo struct {
	db *sql.DB
}

func NewCodeRepo(db *sql.DB) *CodeRepo { return &CodeRepo{db: db} }

func (r *CodeRepo) Insert(ctx context.Context, c VerificationCode) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO verification_codes(id, phone, code_hash, expires_at, created_at)
	VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP);
	`, c.ID, c.Phone, c.CodeHash, c.ExpiresAt.UTC())
	return err
}

// Latest returns the most recently issued code for phone.
func (r *CodeRepo) Latest(ctx context.Context, phone string) (*VerificationCode, error) {
	var c VerificationCode
	var used sql.NullTime
	err := r.db.QueryRowContext(ctx, `
	SELECT id, phone, code_hash, expires_at, used_at, created_at
	FROM verification_codes WHERE phone = ?
	ORDER BY created_at DESC, rowid DESC LIMIT 1`, phone).
		Scan(&c.ID, &c.Phone, &c.CodeHash, &c.ExpiresAt, &used, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if used.Valid {
		c.UsedAt = &used.Time
	}
	return &c, nil
}

func (r *CodeRepo) MarkUsed(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE verification_codes SET used_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}
