package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/notekeeper/internal/server/handlers"
)

// TokenValidator проверяет backend токен и возвращает идентификатор пользователя
//
//go:generate moq -out token_validator_mock_test.go . TokenValidator
type TokenValidator interface {
	Validate(token string) (string, error)
}

// AuthMiddleware создает middleware для проверки Bearer токена
func AuthMiddleware(logger *slog.Logger, tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(ctx, "Missing Authorization header", "path", r.URL.Path)
				handlers.SendError(logger, w, handlers.ErrCodeUnauthorized, "missing token", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			scheme, token, found := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				// сам заголовок не логируем, в нем может быть токен
				logger.WarnContext(ctx, "Invalid Authorization header format", "path", r.URL.Path)
				handlers.SendError(logger, w, handlers.ErrCodeUnauthorized, "invalid token format", http.StatusUnauthorized)
				return
			}

			userID, err := tokens.Validate(token)
			if err != nil {
				logger.WarnContext(ctx, "Invalid access token", "error", err)
				handlers.SendError(logger, w, handlers.ErrCodeUnauthorized, "invalid token", http.StatusUnauthorized)
				return
			}

			logger.DebugContext(ctx, "User authenticated", "user_id", userID)

			next.ServeHTTP(w, r.WithContext(handlers.WithUserID(ctx, userID)))
		})
	}
}
