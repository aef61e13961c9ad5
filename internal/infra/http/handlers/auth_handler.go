package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/nhfg-leads/internal/infra/http/middleware"
	"github.com/xavierca1/nhfg-leads/internal/usecase"
)

type AuthHandler struct {
	LoginUC *usecase.LoginUseCase
	Logger  *zap.Logger
}

func NewAuthHandler(uc *usecase.LoginUseCase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{LoginUC: uc, Logger: nopIfNil(logger)}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	output, err := h.LoginUC.Execute(r.Context(), input)
	if err != nil {
		if status := writeUseCaseError(w, h.Logger, err); status == http.StatusUnauthorized {
			middleware.RecordAuthFailure("login")
		}
		return
	}

	writeJSON(w, http.StatusOK, output)
}
