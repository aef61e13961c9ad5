package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/xavierca1/nhfg-leads/internal/entity"
)

type ListLeadsUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
}

func NewListLeadsUseCase(leadRepo entity.LeadRepositoryInterface) *ListLeadsUseCase {
	return &ListLeadsUseCase{LeadRepo: leadRepo}
}

// Execute returns non-archived leads, newest first. A non-empty AdvisorID
// keeps leads assigned to that advisor plus the unassigned pool.
func (uc *ListLeadsUseCase) Execute(ctx context.Context, input ListLeadsInput) ([]LeadOutput, error) {
	advisorID := strings.TrimSpace(input.AdvisorID)
	if advisorID != "" && !isValidUUID(advisorID) {
		return nil, validationFailed("advisorId must be a valid id")
	}

	leads, err := uc.LeadRepo.List(ctx, entity.LeadFilter{AdvisorID: advisorID})
	if err != nil {
		return nil, storeFailure(err)
	}

	out := make([]LeadOutput, 0, len(leads))
	for _, l := range leads {
		out = append(out, toLeadOutput(l))
	}
	return out, nil
}

type CreateLeadUseCase struct {
	LeadRepo  entity.LeadRepositoryInterface
	Publisher LeadEventPublisher
	Logger    *zap.Logger
}

func NewCreateLeadUseCase(leadRepo entity.LeadRepositoryInterface, publisher LeadEventPublisher, logger *zap.Logger) *CreateLeadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreateLeadUseCase{LeadRepo: leadRepo, Publisher: publisher, Logger: logger}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*CreateLeadOutput, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, validationFailed(joinValidationErrors(errs))
	}

	lead, err := entity.NewLead(input.Name)
	if err != nil {
		return nil, validationFailed(err.Error())
	}
	if input.Status != "" {
		lead.Status = input.Status
	}
	lead.Email = entity.StringPtr(strings.TrimSpace(input.Email))
	lead.Phone = entity.StringPtr(input.Phone)
	lead.Interest = entity.StringPtr(input.Interest)
	lead.Source = entity.StringPtr(input.Source)
	lead.AssignedTo = entity.StringPtr(input.AssignedTo)
	lead.Message = entity.StringPtr(input.Message)
	lead.LifeDetails = detailBlob(input.LifeDetails)
	lead.RealEstateDetails = detailBlob(input.RealEstateDetails)
	lead.SecuritiesDetails = detailBlob(input.SecuritiesDetails)
	lead.CustomDetails = detailBlob(input.CustomDetails)

	if err := uc.LeadRepo.Create(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrAdvisorNotFound) {
			return nil, validationFailed("assignedTo: " + entity.ErrAdvisorNotFound.Error())
		}
		uc.Logger.Error("lead insert failed", zap.Error(err))
		return nil, storeFailure(err)
	}

	publishLeadCreated(ctx, uc.Publisher, lead, uc.Logger)

	return &CreateLeadOutput{ID: lead.ID, Success: true}, nil
}
