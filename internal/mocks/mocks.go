// Package mocks holds testify mocks for the repository and publisher
// contracts, shared by use case, handler and router tests.
package mocks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/nhfg-leads/internal/entity"
	"github.com/xavierca1/nhfg-leads/internal/normalizer"
)

// LeadRepository
type LeadRepository struct {
	mock.Mock
}

func (m *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

// ClientRepository
type ClientRepository struct {
	mock.Mock
}

func (m *ClientRepository) Create(ctx context.Context, client *entity.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *ClientRepository) List(ctx context.Context, filter entity.ClientFilter) ([]*entity.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Client), args.Error(1)
}

// UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindActiveByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// IntegrationLogRepository
type IntegrationLogRepository struct {
	mock.Mock
}

func (m *IntegrationLogRepository) Create(ctx context.Context, entry *entity.IntegrationLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *IntegrationLogRepository) UpdateStatus(ctx context.Context, id, status, errorMessage string) error {
	args := m.Called(ctx, id, status, errorMessage)
	return args.Error(0)
}

func (m *IntegrationLogRepository) FailStalePending(ctx context.Context, olderThan time.Duration, reason string) ([]string, error) {
	args := m.Called(ctx, olderThan, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// DashboardRepository
type DashboardRepository struct {
	mock.Mock
}

func (m *DashboardRepository) TotalRevenue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *DashboardRepository) CountClients(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *DashboardRepository) CountLeadsByStatus(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

// LeadEventPublisher
type LeadEventPublisher struct {
	mock.Mock
}

func (m *LeadEventPublisher) PublishLeadCreated(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

// Normalizer
type Normalizer struct {
	mock.Mock
}

func (m *Normalizer) Normalize(platform string, payload json.RawMessage) (normalizer.NormalizedLead, error) {
	args := m.Called(platform, payload)
	return args.Get(0).(normalizer.NormalizedLead), args.Error(1)
}

// ClientWelcomeSender
type ClientWelcomeSender struct {
	mock.Mock
}

func (m *ClientWelcomeSender) SendClientWelcome(ctx context.Context, to, name string) error {
	args := m.Called(ctx, to, name)
	return args.Error(0)
}
