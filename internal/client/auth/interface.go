package auth

import (
	"context"

	"github.com/iudanet/notekeeper/internal/client/sync"
)

//go:generate moq -out session_manager_mock_test.go . SessionManager
//go:generate moq -out service_mock.go . Service

// SessionManager is the part of the sync manager the auth service drives
type SessionManager interface {
	HandleSignIn(ctx context.Context, req sync.SignInRequest) sync.SignInResult
	HandleSignOut(ctx context.Context)
	DebugState() sync.DebugState
}

// Service defines the main interface for authentication operations
type Service interface {
	// Login обменивает credential провайдера на сессию backend и запускает синхронизацию
	Login(ctx context.Context, credential string) (*LoginResult, error)

	// Logout очищает очередь и метаданные пользователя, локальные заметки остаются
	Logout(ctx context.Context) error

	// Status returns the current session state
	Status(ctx context.Context) Status
}
