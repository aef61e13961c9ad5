package entity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventIngestAttempt = "INGEST_ATTEMPT"

	IntegrationStatusPending = "pending"
	IntegrationStatusSuccess = "success"
	IntegrationStatusFailed  = "failed"
)

// IntegrationLog is the audit row written for every inbound webhook call,
// before the payload is interpreted. It lives independently of the lead it
// may produce.
type IntegrationLog struct {
	ID           string
	Platform     string
	EventType    string
	Status       string
	Payload      json.RawMessage
	ErrorMessage *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewIntegrationLog(platform, eventType string, payload json.RawMessage) *IntegrationLog {
	now := time.Now().UTC()
	return &IntegrationLog{
		ID:        uuid.New().String(),
		Platform:  platform,
		EventType: eventType,
		Status:    IntegrationStatusPending,
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type IntegrationLogRepositoryInterface interface {
	Create(ctx context.Context, entry *IntegrationLog) error
	UpdateStatus(ctx context.Context, id, status, errorMessage string) error
	// FailStalePending flips rows still pending after olderThan to failed
	// and returns their ids.
	FailStalePending(ctx context.Context, olderThan time.Duration, reason string) ([]string, error)
}
