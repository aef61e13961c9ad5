package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/nhfg-leads/internal/usecase"
)

type DashboardHandler struct {
	MetricsUC *usecase.DashboardMetricsUseCase
	Logger    *zap.Logger
}

func NewDashboardHandler(uc *usecase.DashboardMetricsUseCase, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{MetricsUC: uc, Logger: nopIfNil(logger)}
}

func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	out, err := h.MetricsUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
