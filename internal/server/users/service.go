package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/notekeeper/internal/models"
	"github.com/iudanet/notekeeper/internal/server/storage"
)

// ProviderGoogle имя провайдера для Google ID token
const ProviderGoogle = "google"

// ErrInvalidIdentity возвращается, если у учетной записи провайдера нет subject
var ErrInvalidIdentity = errors.New("users: invalid identity")

// Profile данные пользователя, полученные от провайдера
type Profile struct {
	Provider    string
	Subject     string
	Email       string
	DisplayName string
}

// Service сопоставляет учетные записи провайдеров каноническим идентификаторам пользователей.
// Первый вход создает привязку, где идентификатор пользователя совпадает с subject.
type Service struct {
	users  storage.UserStorage
	logger *slog.Logger
	now    func() time.Time
	cache  sync.Map // provider:subject -> user id
}

// NewService создает сервис пользователей
func NewService(userStorage storage.UserStorage, logger *slog.Logger) *Service {
	return &Service{
		users:  userStorage,
		logger: logger,
		now:    time.Now,
	}
}

// ResolveUserID возвращает канонический идентификатор пользователя, создавая привязку при первом входе.
// Профиль и время последнего входа обновляются при каждом вызове.
func (s *Service) ResolveUserID(ctx context.Context, profile Profile) (string, error) {
	provider := strings.TrimSpace(profile.Provider)
	if provider == "" {
		provider = ProviderGoogle
	}
	subject := strings.TrimSpace(profile.Subject)
	if subject == "" {
		return "", ErrInvalidIdentity
	}
	email := strings.TrimSpace(profile.Email)
	displayName := strings.TrimSpace(profile.DisplayName)
	now := s.now().UTC()

	cacheKey := provider + ":" + subject
	if cached, ok := s.cache.Load(cacheKey); ok {
		if err := s.users.TouchIdentity(ctx, provider, subject, email, displayName, now); err != nil {
			s.logger.Warn("Failed to update identity", "provider", provider, "error", err)
		}
		return cached.(string), nil
	}

	identity, err := s.users.GetIdentity(ctx, provider, subject)
	switch {
	case errors.Is(err, storage.ErrUserNotFound):
		identity, err = s.createIdentity(ctx, provider, subject, email, displayName, now)
		if err != nil {
			return "", err
		}
	case err != nil:
		return "", fmt.Errorf("failed to get identity: %w", err)
	default:
		if err := s.users.TouchIdentity(ctx, provider, subject, email, displayName, now); err != nil {
			s.logger.Warn("Failed to update identity", "provider", provider, "error", err)
		}
	}

	s.cache.Store(cacheKey, identity.UserID)
	return identity.UserID, nil
}

func (s *Service) createIdentity(ctx context.Context, provider, subject, email, displayName string, now time.Time) (*models.UserIdentity, error) {
	identity := &models.UserIdentity{
		Provider:    provider,
		Subject:     subject,
		UserID:      subject,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   now,
		LastSeenAt:  now,
	}

	err := s.users.CreateIdentity(ctx, identity)
	if errors.Is(err, storage.ErrUserAlreadyExists) {
		// Параллельный первый вход уже создал привязку
		existing, getErr := s.users.GetIdentity(ctx, provider, subject)
		if getErr != nil {
			return nil, fmt.Errorf("failed to get identity: %w", getErr)
		}
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	s.logger.Info("New user registered", "provider", provider, "user_id", identity.UserID)
	return identity, nil
}
