package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/nhfg-leads/internal/auth"
)

type TokenVerifier interface {
	Verify(header string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token before the
// wrapped handler runs. Verified claims are stored in the request context.
func RequireAuth(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := verifier.Verify(r.Header.Get("Authorization"))
			if err != nil {
				msg, reason := "Invalid token", "invalid_token"
				if errors.Is(err, auth.ErrMissingToken) {
					msg, reason = "Missing bearer token", "missing_token"
				}
				RecordAuthFailure(reason)
				logger.Debug("request rejected", zap.String("reason", reason), zap.String("path", r.URL.Path))
				writeJSONError(w, http.StatusUnauthorized, msg)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
