package mysql

import (
	"context"
	"database/sql"
	"strings"

	domain "github.com/healthmate-app/healthmate-api/internal/domain/users"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	const q = `
INSERT INTO users (id, email, full_name, password_hash, created_at)
VALUES (?,?,?,?,?);
`
	_, err := r.db.ExecContext(ctx, q, u.ID, u.Email, u.FullName, u.PasswordHash, u.CreatedAt)
	if err != nil && strings.Contains(err.Error(), "Duplicate entry") {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
SELECT id, email, full_name, password_hash, created_at
FROM users WHERE email=? LIMIT 1;
`
	var u domain.User
	if err := r.db.QueryRowContext(ctx, q, email).Scan(
		&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	const q = `
SELECT id, email, full_name, password_hash, created_at
FROM users WHERE id=? LIMIT 1;
`
	var u domain.User
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
