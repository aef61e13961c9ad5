package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/xavierca1/nhfg-leads/internal/entity"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindActiveByEmail(ctx context.Context, email string) (*entity.User, error) {
	// products_sold is read in its text form and parsed by pq.Array.
	query := `
		SELECT id::text, name, email, role, category, avatar, products_sold::text, password_hash
		FROM users
		WHERE lower(email) = lower($1) AND deleted_at IS NULL
		LIMIT 1
	`

	var u entity.User
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.Category,
		&u.Avatar,
		pq.Array(&u.ProductsSold),
		&u.PasswordHash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
