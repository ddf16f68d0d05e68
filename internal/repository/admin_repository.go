package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/studyroom-seat-booking/internal/model"
)

// AdminRepo reads dashboard operators from the 'admins' table.
type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

// GetByUsername fetches an admin by login name.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var a model.Admin
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,created_at,updated_at FROM admins WHERE username=? LIMIT 1",
		username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Upsert inserts the admin or replaces its password hash.
func (r *AdminRepo) Upsert(ctx context.Context, username, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO admins (username, password_hash) VALUES (?,?) ON DUPLICATE KEY UPDATE password_hash=VALUES(password_hash)",
		username, passwordHash)
	return err
}
