package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/nhfg-leads/internal/usecase"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeUseCaseError maps the use case error taxonomy onto HTTP statuses.
// Store errors carry the raw driver message.
func writeUseCaseError(w http.ResponseWriter, logger *zap.Logger, err error) int {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		status := http.StatusBadRequest
		switch de.Code {
		case usecase.CodeUnauthorized:
			status = http.StatusUnauthorized
		case usecase.CodeNotFound:
			status = http.StatusNotFound
		}
		writeErrorResponse(w, status, de.Message)
		return status
	}

	logger.Error("request failed", zap.Error(err))
	writeErrorResponse(w, http.StatusInternalServerError, err.Error())
	return http.StatusInternalServerError
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
