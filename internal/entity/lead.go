package entity

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Pipeline stages a lead moves through.
const (
	LeadStatusNew         = "New"
	LeadStatusContacted   = "Contacted"
	LeadStatusUnavailable = "Unavailable"
	LeadStatusProposal    = "Proposal"
	LeadStatusApproved    = "Approved"
	LeadStatusClosed      = "Closed"
	LeadStatusLost        = "Lost"
	LeadStatusAssigned    = "Assigned"
)

var (
	ErrLeadNameRequired = errors.New("name is required")
	// ErrAdvisorNotFound is returned by the store when assigned_to does not
	// reference an existing user.
	ErrAdvisorNotFound = errors.New("assigned advisor does not exist")
)

// Lead is the canonical lead record. Only Name is mandatory; the detail
// blobs hold free-form JSON objects per insurance category.
type Lead struct {
	ID                string
	Name              string
	Email             *string
	Phone             *string
	Interest          *string
	Status            string
	AssignedTo        *string
	Source            *string
	Priority          *string
	Score             *int
	Qualification     *string
	Message           *string
	CampaignID        *string
	LifeDetails       json.RawMessage
	RealEstateDetails json.RawMessage
	SecuritiesDetails json.RawMessage
	CustomDetails     json.RawMessage
	PlatformData      json.RawMessage
	IsArchived        bool
	CreatedAt         time.Time
}

// NewLead builds a lead with a fresh id, status New and the creation time set.
func NewLead(name string) (*Lead, error) {
	lead := &Lead{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Status:    LeadStatusNew,
		CreatedAt: time.Now().UTC(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}
	return lead, nil
}

func (l *Lead) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrLeadNameRequired
	}
	return nil
}

// LeadFilter narrows a lead listing. AdvisorID matches leads assigned to
// that advisor or not assigned at all.
type LeadFilter struct {
	AdvisorID string
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	List(ctx context.Context, filter LeadFilter) ([]*Lead, error)
}

// StringPtr returns nil for blank strings so optional columns stay NULL.
func StringPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
