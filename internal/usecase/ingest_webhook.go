package usecase

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xavierca1/nhfg-leads/internal/entity"
	"github.com/xavierca1/nhfg-leads/internal/normalizer"
)

const (
	webhookLeadMessage = "Auto-Imported via Webhook"
	ingestedMessage    = "Lead ingested"
)

// IngestWebhookUseCase turns one inbound ad-platform payload into a lead.
// Every call is audited first; the audit row is independent of the lead
// insert, so a lead write can fail with the audit row already present.
type IngestWebhookUseCase struct {
	LogRepo    entity.IntegrationLogRepositoryInterface
	LeadRepo   entity.LeadRepositoryInterface
	Normalizer PayloadNormalizer
	Publisher  LeadEventPublisher
	Logger     *zap.Logger
	tracer     trace.Tracer
}

func NewIngestWebhookUseCase(
	logRepo entity.IntegrationLogRepositoryInterface,
	leadRepo entity.LeadRepositoryInterface,
	norm PayloadNormalizer,
	publisher LeadEventPublisher,
	logger *zap.Logger,
) *IngestWebhookUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngestWebhookUseCase{
		LogRepo:    logRepo,
		LeadRepo:   leadRepo,
		Normalizer: norm,
		Publisher:  publisher,
		Logger:     logger,
		tracer:     otel.Tracer("nhfg-leads/ingest"),
	}
}

func (uc *IngestWebhookUseCase) Execute(ctx context.Context, input IngestWebhookInput) (out *IngestWebhookOutput, err error) {
	ctx, span := uc.tracer.Start(ctx, "webhook.ingest",
		trace.WithAttributes(attribute.String("lead.platform", input.Platform)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	log := uc.Logger.With(zap.String("platform", input.Platform))

	audit := entity.NewIntegrationLog(input.Platform, entity.EventIngestAttempt, input.Payload)
	if uc.LogRepo != nil {
		if auditErr := uc.LogRepo.Create(ctx, audit); auditErr != nil {
			log.Warn("audit log write failed", zap.Error(auditErr))
			audit = nil
		}
	} else {
		audit = nil
	}

	normalized, err := uc.Normalizer.Normalize(input.Platform, input.Payload)
	if err != nil {
		uc.finishAudit(ctx, audit, err)
		if errors.Is(err, normalizer.ErrUnsupportedPlatform) {
			log.Info("webhook rejected: unsupported platform")
			return nil, validationFailed("Unsupported platform")
		}
		return nil, validationFailed("Invalid payload")
	}
	span.AddEvent("normalized")

	lead, err := entity.NewLead(normalized.Name)
	if err != nil {
		uc.finishAudit(ctx, audit, err)
		return nil, validationFailed(err.Error())
	}
	lead.Email = entity.StringPtr(normalized.Email)
	lead.Phone = entity.StringPtr(normalized.Phone)
	lead.Interest = entity.StringPtr(normalized.Interest)
	lead.Source = entity.StringPtr(input.Platform + "_ads")
	lead.Message = entity.StringPtr(webhookLeadMessage)
	lead.CampaignID = entity.StringPtr(normalized.CampaignID)
	lead.PlatformData = input.Payload

	if err := uc.LeadRepo.Create(ctx, lead); err != nil {
		log.Error("webhook lead insert failed", zap.Error(err))
		uc.finishAudit(ctx, audit, err)
		return nil, storeFailure(err)
	}
	uc.finishAudit(ctx, audit, nil)

	span.SetAttributes(attribute.String("lead.id", lead.ID))
	log.Info("webhook lead ingested", zap.String("lead_id", lead.ID))

	publishLeadCreated(ctx, uc.Publisher, lead, log)

	return &IngestWebhookOutput{Success: true, Message: ingestedMessage, ID: lead.ID}, nil
}

// finishAudit moves the audit row to its terminal status. Failures here are
// logged only; the stale sweeper catches rows left pending.
func (uc *IngestWebhookUseCase) finishAudit(ctx context.Context, audit *entity.IntegrationLog, cause error) {
	if audit == nil {
		return
	}

	status, msg := entity.IntegrationStatusSuccess, ""
	if cause != nil {
		status, msg = entity.IntegrationStatusFailed, cause.Error()
	}

	if err := uc.LogRepo.UpdateStatus(ctx, audit.ID, status, msg); err != nil {
		uc.Logger.Warn("audit log status update failed",
			zap.String("integration_log_id", audit.ID),
			zap.String("status", status),
			zap.Error(err),
		)
	}
}

func publishLeadCreated(ctx context.Context, publisher LeadEventPublisher, lead *entity.Lead, log *zap.Logger) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishLeadCreated(ctx, lead); err != nil {
		log.Warn("lead event publish failed", zap.String("lead_id", lead.ID), zap.Error(err))
	}
}
