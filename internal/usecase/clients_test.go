package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/nhfg-leads/internal/entity"
	"github.com/xavierca1/nhfg-leads/internal/mocks"
)

func floatPtr(f float64) *float64 { return &f }

func TestListClientsFiltersByAdvisor(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	repo := new(mocks.ClientRepository)
	repo.On("List", ctx, entity.ClientFilter{AdvisorID: advisorID}).Return([]*entity.Client{{
		ID:           "c-1",
		Name:         "Jane Doe",
		AdvisorID:    entity.StringPtr(advisorID),
		PolicyNumber: entity.StringPtr("POL-1"),
		Premium:      1500,
		CreatedAt:    created,
	}}, nil)

	out, err := NewListClientsUseCase(repo).Execute(ctx, ListClientsInput{AdvisorID: " " + advisorID + " "})
	require.NoError(t, err)
	require.Len(t, out, 1)

	body, err := json.Marshal(out[0])
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "POL-1", got["policyNumber"])
	assert.Equal(t, advisorID, got["advisorId"])
	assert.Equal(t, float64(1500), got["premium"])
	assert.Equal(t, "2026-01-05T08:00:00Z", got["createdAt"])
	assert.Nil(t, got["commissionAmount"])
}

func TestListClientsRejectsMalformedAdvisorID(t *testing.T) {
	repo := new(mocks.ClientRepository)

	_, err := NewListClientsUseCase(repo).Execute(context.Background(), ListClientsInput{AdvisorID: "nope"})

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeValidation, de.Code)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListClientsStoreFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.ClientRepository)
	repo.On("List", ctx, entity.ClientFilter{}).Return(nil, errors.New("relation \"clients\" does not exist"))

	_, err := NewListClientsUseCase(repo).Execute(ctx, ListClientsInput{})

	assert.True(t, IsTechnicalError(err))
	assert.EqualError(t, err, "relation \"clients\" does not exist")
}

func TestCreateClientStoresAndWelcomes(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.ClientRepository)
	welcome := new(mocks.ClientWelcomeSender)

	var saved *entity.Client
	repo.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Client) }).
		Return(nil)
	welcome.On("SendClientWelcome", ctx, "jane@example.com", "Jane Doe").Return(nil)

	out, err := NewCreateClientUseCase(repo, welcome, nil).Execute(ctx, CreateClientInput{
		Name:             "  Jane Doe ",
		Email:            " jane@example.com ",
		AdvisorID:        advisorID,
		PolicyNumber:     "POL-9",
		Premium:          floatPtr(2400),
		CommissionAmount: floatPtr(240),
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, saved.ID, out.ID)
	assert.Equal(t, "Jane Doe", saved.Name)
	assert.Equal(t, "POL-9", *saved.PolicyNumber)
	assert.Equal(t, 2400.0, saved.Premium)
	assert.Equal(t, 240.0, *saved.CommissionAmount)
	assert.Nil(t, saved.Phone)
	welcome.AssertExpectations(t)
}

func TestCreateClientWithoutEmailSkipsWelcome(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.ClientRepository)
	welcome := new(mocks.ClientWelcomeSender)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	out, err := NewCreateClientUseCase(repo, welcome, nil).Execute(ctx, CreateClientInput{Name: "Walk In", Email: ""})

	require.NoError(t, err)
	assert.Zero(t, out.Premium)
	welcome.AssertNotCalled(t, "SendClientWelcome", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateClientWelcomeFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.ClientRepository)
	welcome := new(mocks.ClientWelcomeSender)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	welcome.On("SendClientWelcome", ctx, "jane@example.com", "Jane").Return(errors.New("dial tcp: i/o timeout"))

	out, err := NewCreateClientUseCase(repo, welcome, nil).Execute(ctx, CreateClientInput{Name: "Jane", Email: "jane@example.com"})

	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
}

func TestCreateClientValidation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateClientInput
		field string
	}{
		{"missing name", CreateClientInput{Name: "  "}, "name"},
		{"bad email", CreateClientInput{Name: "Jane", Email: "not-an-email"}, "email"},
		{"bad advisor", CreateClientInput{Name: "Jane", AdvisorID: "42"}, "advisorId"},
		{"negative premium", CreateClientInput{Name: "Jane", Premium: floatPtr(-1)}, "premium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.ClientRepository)

			_, err := NewCreateClientUseCase(repo, nil, nil).Execute(context.Background(), tt.input)

			var de *DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, CodeValidation, de.Code)
			assert.Contains(t, de.Message, tt.field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateClientUnknownAdvisor(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.ClientRepository)
	repo.On("Create", ctx, mock.Anything).Return(entity.ErrAdvisorNotFound)

	_, err := NewCreateClientUseCase(repo, nil, nil).Execute(ctx, CreateClientInput{Name: "Jane", AdvisorID: advisorID})

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "advisorId: assigned advisor does not exist", de.Message)
}
