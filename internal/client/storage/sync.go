package storage

import (
	"context"

	"github.com/iudanet/notekeeper/internal/models"
)

//go:generate moq -out metadata_mock.go . MetadataStorage
//go:generate moq -out queue_mock.go . QueueStorage

// MetadataStorage defines interface for per-user sync metadata
type MetadataStorage interface {
	// LoadMetadata returns metadata keyed by note ID.
	// Returns an empty map if nothing was saved for the user
	LoadMetadata(ctx context.Context, userID string) (map[string]models.NoteMetadata, error)

	// SaveMetadata replaces the user's metadata
	SaveMetadata(ctx context.Context, userID string, metadata map[string]models.NoteMetadata) error

	// ClearMetadata removes the user's metadata
	ClearMetadata(ctx context.Context, userID string) error
}

// QueueStorage defines interface for the per-user pending operation queue
type QueueStorage interface {
	// LoadQueue returns queued operations in FIFO order
	LoadQueue(ctx context.Context, userID string) ([]models.PendingOperation, error)

	// SaveQueue replaces the user's queue
	SaveQueue(ctx context.Context, userID string, operations []models.PendingOperation) error

	// ClearQueue removes the user's queue
	ClearQueue(ctx context.Context, userID string) error
}
