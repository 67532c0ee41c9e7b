package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/notekeeper/internal/client/sync"
)

var (
	// ErrSignInFailed возвращается, если backend не принял credential
	ErrSignInFailed = errors.New("sign in failed")

	// ErrNotSignedIn возвращается при выходе без активной сессии
	ErrNotSignedIn = errors.New("not signed in")
)

// LoginResult содержит результат входа
type LoginResult struct {
	UserID          string // UserID субъект credential
	QueueFlushed    bool   // QueueFlushed очередь отправлена полностью
	SnapshotApplied bool   // SnapshotApplied локальный набор заменен снимком сервера
}

// Status описывает текущую сессию
type Status struct {
	ExpiresAt     time.Time
	UserID        string
	Pending       int
	Authenticated bool
}

type service struct {
	sessions SessionManager
	logger   *slog.Logger
	now      func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(sessions SessionManager, logger *slog.Logger) Service {
	return &service{
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// Login выполняет вход по credential провайдера идентификации
func (s *service) Login(ctx context.Context, credential string) (*LoginResult, error) {
	userID, err := SubjectFromCredential(credential)
	if err != nil {
		return nil, err
	}

	result := s.sessions.HandleSignIn(ctx, sync.SignInRequest{UserID: userID, Credential: credential})
	if !result.Authenticated {
		return nil, fmt.Errorf("%w: backend rejected credential for %s", ErrSignInFailed, userID)
	}

	s.logger.Debug("Login completed",
		"user_id", userID,
		"queue_flushed", result.QueueFlushed,
		"snapshot_applied", result.SnapshotApplied)

	return &LoginResult{
		UserID:          userID,
		QueueFlushed:    result.QueueFlushed,
		SnapshotApplied: result.SnapshotApplied,
	}, nil
}

// Logout выполняет выход из системы
func (s *service) Logout(ctx context.Context) error {
	state := s.sessions.DebugState()
	if state.ActiveUserID == "" {
		return ErrNotSignedIn
	}

	s.sessions.HandleSignOut(ctx)
	s.logger.Debug("Logged out", "user_id", state.ActiveUserID)
	return nil
}

// Status возвращает пользователя, состояние токена и размер очереди
func (s *service) Status(ctx context.Context) Status {
	state := s.sessions.DebugState()

	status := Status{
		UserID:  state.ActiveUserID,
		Pending: len(state.PendingOperations),
	}
	if state.BackendToken != nil {
		status.ExpiresAt = time.UnixMilli(state.BackendToken.ExpiresAtMs)
		status.Authenticated = !state.BackendToken.Expired(s.now())
	}
	return status
}
