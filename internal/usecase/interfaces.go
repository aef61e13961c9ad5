package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/xavierca1/nhfg-leads/internal/entity"
	"github.com/xavierca1/nhfg-leads/internal/normalizer"
)

// LeadEventPublisher announces newly created leads to downstream consumers.
type LeadEventPublisher interface {
	PublishLeadCreated(ctx context.Context, lead *entity.Lead) error
}

type PayloadNormalizer interface {
	Normalize(platform string, payload json.RawMessage) (normalizer.NormalizedLead, error)
}

type TokenIssuer interface {
	Issue(user *entity.User) (string, time.Time, error)
}

type PasswordComparer interface {
	Compare(hash, password string) error
}

// ClientWelcomeSender greets a newly registered client by email.
type ClientWelcomeSender interface {
	SendClientWelcome(ctx context.Context, to, name string) error
}
