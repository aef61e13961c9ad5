package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/nhfg-leads/internal/infra/http/middleware"
	"github.com/xavierca1/nhfg-leads/internal/usecase"
)

type LeadHandler struct {
	ListUC   *usecase.ListLeadsUseCase
	CreateUC *usecase.CreateLeadUseCase
	Logger   *zap.Logger
}

func NewLeadHandler(list *usecase.ListLeadsUseCase, create *usecase.CreateLeadUseCase, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{ListUC: list, CreateUC: create, Logger: nopIfNil(logger)}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.ListUC.Execute(r.Context(), usecase.ListLeadsInput{
		AdvisorID: r.URL.Query().Get("advisorId"),
	})
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	output, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	source := input.Source
	if source == "" {
		source = "manual"
	}
	middleware.RecordLeadCreated(source)

	writeJSON(w, http.StatusCreated, output)
}
