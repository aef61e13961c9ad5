package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xavierca1/nhfg-leads/internal/entity"
)

type IntegrationLogRepository struct {
	DB *sql.DB
}

func NewIntegrationLogRepository(db *sql.DB) *IntegrationLogRepository {
	return &IntegrationLogRepository{DB: db}
}

func (r *IntegrationLogRepository) Create(ctx context.Context, entry *entity.IntegrationLog) error {
	query := `
		INSERT INTO integration_logs (id, platform, event_type, status, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		entry.ID,
		entry.Platform,
		entry.EventType,
		entry.Status,
		jsonParam(entry.Payload),
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert integration log: %w", err)
	}
	return nil
}

func (r *IntegrationLogRepository) UpdateStatus(ctx context.Context, id, status, errorMessage string) error {
	query := `
		UPDATE integration_logs
		SET status = $2, error_message = $3, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query, id, status, entity.StringPtr(errorMessage))
	if err != nil {
		return fmt.Errorf("update integration log: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update integration log: no row with id %s", id)
	}
	return nil
}

func (r *IntegrationLogRepository) FailStalePending(ctx context.Context, olderThan time.Duration, reason string) ([]string, error) {
	query := `
		UPDATE integration_logs
		SET status = 'failed', error_message = $1, updated_at = NOW()
		WHERE status = 'pending' AND created_at < $2
		RETURNING id::text
	`

	cutoff := time.Now().UTC().Add(-olderThan)
	rows, err := r.DB.QueryContext(ctx, query, reason, cutoff)
	if err != nil {
		return nil, fmt.Errorf("fail stale integration logs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
