package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/xavierca1/nhfg-leads/internal/entity"
)

type ListClientsUseCase struct {
	ClientRepo entity.ClientRepositoryInterface
}

func NewListClientsUseCase(clientRepo entity.ClientRepositoryInterface) *ListClientsUseCase {
	return &ListClientsUseCase{ClientRepo: clientRepo}
}

// Execute returns clients newest first, limited to one advisor's book when
// AdvisorID is set.
func (uc *ListClientsUseCase) Execute(ctx context.Context, input ListClientsInput) ([]ClientOutput, error) {
	advisorID := strings.TrimSpace(input.AdvisorID)
	if advisorID != "" && !isValidUUID(advisorID) {
		return nil, validationFailed("advisorId must be a valid id")
	}

	clients, err := uc.ClientRepo.List(ctx, entity.ClientFilter{AdvisorID: advisorID})
	if err != nil {
		return nil, storeFailure(err)
	}

	out := make([]ClientOutput, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientOutput(c))
	}
	return out, nil
}

type CreateClientUseCase struct {
	ClientRepo entity.ClientRepositoryInterface
	Welcome    ClientWelcomeSender
	Logger     *zap.Logger
}

// NewCreateClientUseCase accepts a nil welcome sender when mail is not
// configured.
func NewCreateClientUseCase(clientRepo entity.ClientRepositoryInterface, welcome ClientWelcomeSender, logger *zap.Logger) *CreateClientUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreateClientUseCase{ClientRepo: clientRepo, Welcome: welcome, Logger: logger}
}

func (uc *CreateClientUseCase) Execute(ctx context.Context, input CreateClientInput) (*ClientOutput, error) {
	if errs := ValidateCreateClientInput(input); len(errs) > 0 {
		return nil, validationFailed(joinValidationErrors(errs))
	}

	client, err := entity.NewClient(input.Name)
	if err != nil {
		return nil, validationFailed(err.Error())
	}
	client.Email = entity.StringPtr(strings.TrimSpace(input.Email))
	client.Phone = entity.StringPtr(input.Phone)
	client.AdvisorID = entity.StringPtr(input.AdvisorID)
	client.Product = entity.StringPtr(input.Product)
	client.PolicyNumber = entity.StringPtr(input.PolicyNumber)
	client.Carrier = entity.StringPtr(input.Carrier)
	client.CommissionAmount = input.CommissionAmount
	if input.Premium != nil {
		client.Premium = *input.Premium
	}

	if err := uc.ClientRepo.Create(ctx, client); err != nil {
		if errors.Is(err, entity.ErrAdvisorNotFound) {
			return nil, validationFailed("advisorId: " + entity.ErrAdvisorNotFound.Error())
		}
		uc.Logger.Error("client insert failed", zap.Error(err))
		return nil, storeFailure(err)
	}

	uc.sendWelcome(ctx, client)

	out := toClientOutput(client)
	return &out, nil
}

// sendWelcome never fails the request; the client row is already stored.
func (uc *CreateClientUseCase) sendWelcome(ctx context.Context, client *entity.Client) {
	if uc.Welcome == nil || client.Email == nil {
		return
	}
	if err := uc.Welcome.SendClientWelcome(ctx, *client.Email, client.Name); err != nil {
		uc.Logger.Warn("client welcome email failed",
			zap.String("client_id", client.ID),
			zap.Error(err),
		)
	}
}
