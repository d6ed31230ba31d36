package rest

import (
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/port"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// NewAuthMiddleware определяет пользователя запроса.
// Bearer-токен проверяется verifier-ом, если он задан. Без токена используется
// заголовок X-User-ID, который ставит API Gateway.
func NewAuthMiddleware(verifier port.TokenVerifierPort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"component": "AuthMiddleware"})

			if token, ok := bearerToken(r); ok && verifier != nil {
				claims, err := verifier.ValidateToken(r.Context(), token)
				if err != nil {
					logger.Warn("Bearer token rejected", port.Fields{"error": err.Error()})
					WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
					return
				}
				caller := contextkeys.Caller{UserID: claims.UserID, Source: contextkeys.CallerFromToken}
				next.ServeHTTP(w, r.WithContext(contextkeys.ContextWithCaller(r.Context(), caller)))
				return
			}

			userIDStr := r.Header.Get("X-User-ID")
			if userIDStr == "" {
				WriteJSONError(w, http.StatusUnauthorized, "X-User-ID header is missing")
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil || userID == uuid.Nil {
				WriteJSONError(w, http.StatusUnauthorized, "Invalid X-User-ID header format")
				return
			}

			caller := contextkeys.Caller{UserID: userID, Source: contextkeys.CallerFromGateway}
			next.ServeHTTP(w, r.WithContext(contextkeys.ContextWithCaller(r.Context(), caller)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
