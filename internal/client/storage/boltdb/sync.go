package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/notekeeper/internal/models"
)

// LoadMetadata returns the user's sync metadata keyed by note ID
func (s *Storage) LoadMetadata(ctx context.Context, userID string) (map[string]models.NoteMetadata, error) {
	metadata := map[string]models.NoteMetadata{}
	if err := s.getJSON(bucketMetadata, userID, &metadata); err != nil {
		return nil, fmt.Errorf("failed to load metadata: %w", err)
	}
	if metadata == nil {
		metadata = map[string]models.NoteMetadata{}
	}
	return metadata, nil
}

// SaveMetadata replaces the user's sync metadata
func (s *Storage) SaveMetadata(ctx context.Context, userID string, metadata map[string]models.NoteMetadata) error {
	if metadata == nil {
		metadata = map[string]models.NoteMetadata{}
	}
	if err := s.putJSON(bucketMetadata, userID, metadata); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}
	return nil
}

// ClearMetadata removes the user's sync metadata
func (s *Storage) ClearMetadata(ctx context.Context, userID string) error {
	if err := s.deleteKey(bucketMetadata, userID); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return nil
}

// LoadQueue returns the user's pending operations in FIFO order
func (s *Storage) LoadQueue(ctx context.Context, userID string) ([]models.PendingOperation, error) {
	operations := []models.PendingOperation{}
	if err := s.getJSON(bucketQueue, userID, &operations); err != nil {
		return nil, fmt.Errorf("failed to load queue: %w", err)
	}
	if operations == nil {
		operations = []models.PendingOperation{}
	}
	return operations, nil
}

// SaveQueue replaces the user's pending operations
func (s *Storage) SaveQueue(ctx context.Context, userID string, operations []models.PendingOperation) error {
	if operations == nil {
		operations = []models.PendingOperation{}
	}
	if err := s.putJSON(bucketQueue, userID, operations); err != nil {
		return fmt.Errorf("failed to save queue: %w", err)
	}
	return nil
}

// ClearQueue removes the user's pending operations
func (s *Storage) ClearQueue(ctx context.Context, userID string) error {
	if err := s.deleteKey(bucketQueue, userID); err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}
	return nil
}

// getJSON читает значение по ключу; отсутствующий ключ оставляет target без изменений
func (s *Storage) getJSON(name []byte, key string, target any) error {
	return s.view(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, name)
		if err != nil {
			return err
		}

		data := b.Get([]byte(key))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, target)
	})
}

func (s *Storage) putJSON(name []byte, key string, value any) error {
	if key == "" {
		return fmt.Errorf("user id is empty")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, name)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
}

func (s *Storage) deleteKey(name []byte, key string) error {
	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, name)
		if err != nil {
			return err
		}
		return b.Delete([]byte(key))
	})
}
