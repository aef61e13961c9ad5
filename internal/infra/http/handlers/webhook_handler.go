package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/nhfg-leads/internal/infra/http/middleware"
	"github.com/xavierca1/nhfg-leads/internal/usecase"
)

// WebhookHandler receives lead payloads from ad platforms. It is public:
// platforms do not send our bearer tokens.
type WebhookHandler struct {
	IngestUC *usecase.IngestWebhookUseCase
	Logger   *zap.Logger
}

func NewWebhookHandler(uc *usecase.IngestWebhookUseCase, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{IngestUC: uc, Logger: nopIfNil(logger)}
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	platform := chi.URLParam(r, "platform")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil || !json.Valid(body) {
		middleware.RecordWebhook(platform, "invalid")
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	output, err := h.IngestUC.Execute(r.Context(), usecase.IngestWebhookInput{
		Platform: platform,
		Payload:  json.RawMessage(body),
	})
	if err != nil {
		status := writeUseCaseError(w, h.Logger, err)
		if status == http.StatusBadRequest {
			middleware.RecordWebhook("unsupported", "rejected")
		} else {
			middleware.RecordWebhook(platform, "failed")
		}
		return
	}

	middleware.RecordWebhook(platform, "accepted")
	middleware.RecordLeadCreated(platform + "_ads")
	writeJSON(w, http.StatusOK, output)
}
