package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iudanet/notekeeper/internal/server/auth"
	"github.com/iudanet/notekeeper/internal/server/users"
	"github.com/iudanet/notekeeper/pkg/api"
)

//go:generate moq -out auth_mock_test.go . CredentialVerifier TokenIssuer UserResolver

// CredentialVerifier проверяет Google ID token
type CredentialVerifier interface {
	Verify(ctx context.Context, credential string) (*auth.Identity, error)
}

// TokenIssuer выпускает backend токены
type TokenIssuer interface {
	Issue(userID string) (string, int64, error)
}

// UserResolver сопоставляет учетную запись провайдера пользователю
type UserResolver interface {
	ResolveUserID(ctx context.Context, profile users.Profile) (string, error)
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger   *slog.Logger
	verifier CredentialVerifier
	users    UserResolver
	tokens   TokenIssuer
	validate *validator.Validate
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, verifier CredentialVerifier, users UserResolver, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		verifier: verifier,
		users:    users,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// Google обрабатывает POST /auth/google
// Обменивает Google ID token на backend токен доступа
func (h *AuthHandler) Google(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.GoogleAuthRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode auth request", slog.Any("error", err))
		SendError(h.logger, w, ErrCodeInvalidRequest, "invalid request body", http.StatusBadRequest)
		return
	}

	req.IDToken = strings.TrimSpace(req.IDToken)
	if err := h.validate.Struct(req); err != nil {
		SendError(h.logger, w, ErrCodeInvalidRequest, "id_token is required", http.StatusBadRequest)
		return
	}

	identity, err := h.verifier.Verify(ctx, req.IDToken)
	if err != nil {
		h.logger.WarnContext(ctx, "google credential rejected", slog.Any("error", err))
		SendError(h.logger, w, ErrCodeUnauthorized, "invalid credential", http.StatusUnauthorized)
		return
	}

	userID, err := h.users.ResolveUserID(ctx, users.Profile{
		Provider:    users.ProviderGoogle,
		Subject:     identity.Subject,
		Email:       identity.Email,
		DisplayName: identity.Name,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to resolve user", slog.Any("error", err))
		SendError(h.logger, w, ErrCodeTokenIssueFailed, "failed to resolve user", http.StatusInternalServerError)
		return
	}

	token, expiresIn, err := h.tokens.Issue(userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue backend token", slog.Any("error", err))
		SendError(h.logger, w, ErrCodeTokenIssueFailed, "failed to issue token", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user signed in", slog.String("user_id", userID))

	SendJSON(h.logger, w, api.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, http.StatusOK)
}
