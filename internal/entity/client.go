package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrClientNameRequired = errors.New("name is required")

// Client is a policy holder converted from a lead. Premium feeds the
// dashboard revenue total.
type Client struct {
	ID               string
	Name             string
	Email            *string
	Phone            *string
	AdvisorID        *string
	Product          *string
	PolicyNumber     *string
	Carrier          *string
	Premium          float64
	CommissionAmount *float64
	CreatedAt        time.Time
}

func NewClient(name string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrClientNameRequired
	}
	return &Client{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ClientFilter narrows a client listing. Unlike LeadFilter, AdvisorID is an
// exact match.
type ClientFilter struct {
	AdvisorID string
}

type ClientRepositoryInterface interface {
	Create(ctx context.Context, client *Client) error
	List(ctx context.Context, filter ClientFilter) ([]*Client, error)
}
