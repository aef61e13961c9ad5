package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/nhfg-leads/internal/usecase"
)

type ClientHandler struct {
	ListUC   *usecase.ListClientsUseCase
	CreateUC *usecase.CreateClientUseCase
	Logger   *zap.Logger
}

func NewClientHandler(list *usecase.ListClientsUseCase, create *usecase.CreateClientUseCase, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{ListUC: list, CreateUC: create, Logger: nopIfNil(logger)}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.ListUC.Execute(r.Context(), usecase.ListClientsInput{
		AdvisorID: r.URL.Query().Get("advisorId"),
	})
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateClientInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	client, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, client)
}
