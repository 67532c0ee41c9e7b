package sync

import (
	"context"

	"github.com/iudanet/notekeeper/pkg/api"
)

//go:generate moq -out backend_mock_test.go . BackendClient

// BackendClient определяет сетевые вызовы, которые использует Manager.
// Реализация не содержит логики повторов и согласования.
type BackendClient interface {
	// ExchangeGoogleCredential обменивает credential провайдера идентификации на токен backend
	ExchangeGoogleCredential(ctx context.Context, req api.GoogleAuthRequest) (*api.TokenResponse, error)

	// SyncOperations отправляет пакет операций одним запросом
	SyncOperations(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error)

	// FetchSnapshot получает полный список заметок пользователя
	FetchSnapshot(ctx context.Context, accessToken string) (*api.SnapshotResponse, error)
}
