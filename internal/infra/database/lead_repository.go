package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xavierca1/nhfg-leads/internal/entity"
)

const pgForeignKeyViolation = "23503"

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			id, name, email, phone, interest, status, assigned_to, source,
			priority, score, qualification, message, campaign_id,
			life_details, real_estate_details, securities_details, custom_details,
			platform_data, is_archived, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Interest,
		lead.Status,
		lead.AssignedTo,
		lead.Source,
		lead.Priority,
		lead.Score,
		lead.Qualification,
		lead.Message,
		lead.CampaignID,
		jsonParam(lead.LifeDetails),
		jsonParam(lead.RealEstateDetails),
		jsonParam(lead.SecuritiesDetails),
		jsonParam(lead.CustomDetails),
		jsonParam(lead.PlatformData),
		lead.IsArchived,
		lead.CreatedAt,
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

// List returns non-archived leads, newest first. The advisor filter is
// always bound as a parameter.
func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	query := `
		SELECT id::text, name, email, phone, interest, status, assigned_to::text, source,
		       priority, score, qualification, message, campaign_id,
		       life_details, real_estate_details, securities_details, custom_details,
		       platform_data, is_archived, created_at
		FROM leads
		WHERE is_archived = FALSE`

	var args []any
	if filter.AdvisorID != "" {
		query += ` AND (assigned_to = $1::uuid OR assigned_to IS NULL)`
		args = append(args, filter.AdvisorID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]*entity.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return leads, nil
}

func scanLead(rows *sql.Rows) (*entity.Lead, error) {
	var l entity.Lead
	var life, realEstate, securities, custom, platform []byte

	err := rows.Scan(
		&l.ID,
		&l.Name,
		&l.Email,
		&l.Phone,
		&l.Interest,
		&l.Status,
		&l.AssignedTo,
		&l.Source,
		&l.Priority,
		&l.Score,
		&l.Qualification,
		&l.Message,
		&l.CampaignID,
		&life,
		&realEstate,
		&securities,
		&custom,
		&platform,
		&l.IsArchived,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.LifeDetails = rawJSON(life)
	l.RealEstateDetails = rawJSON(realEstate)
	l.SecuritiesDetails = rawJSON(securities)
	l.CustomDetails = rawJSON(custom)
	l.PlatformData = rawJSON(platform)
	return &l, nil
}

// jsonParam binds an optional JSON document; empty becomes SQL NULL.
func jsonParam(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func rawJSON(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}
