package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xavierca1/nhfg-leads/internal/entity"
)

type ClientRepository struct {
	DB *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{DB: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (
			id, name, email, phone, advisor_id, product, policy, carrier,
			premium, commission_amount, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.DB.ExecContext(ctx, query,
		client.ID,
		client.Name,
		client.Email,
		client.Phone,
		client.AdvisorID,
		client.Product,
		client.PolicyNumber,
		client.Carrier,
		client.Premium,
		client.CommissionAmount,
		client.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return fmt.Errorf("%w: %s", entity.ErrAdvisorNotFound, pgErr.Detail)
		}
		return err
	}
	return nil
}

// List returns clients newest first, optionally only those of one advisor.
func (r *ClientRepository) List(ctx context.Context, filter entity.ClientFilter) ([]*entity.Client, error) {
	query := `
		SELECT id::text, name, email, phone, advisor_id::text, product, policy, carrier,
		       premium, commission_amount, created_at
		FROM clients`

	var args []any
	if filter.AdvisorID != "" {
		query += ` WHERE advisor_id = $1::uuid`
		args = append(args, filter.AdvisorID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]*entity.Client, 0)
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.Phone,
			&c.AdvisorID,
			&c.Product,
			&c.PolicyNumber,
			&c.Carrier,
			&c.Premium,
			&c.CommissionAmount,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		clients = append(clients, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clients, nil
}
