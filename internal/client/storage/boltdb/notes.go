package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.etcd.io/bbolt"

	"github.com/iudanet/notekeeper/internal/client/storage"
	"github.com/iudanet/notekeeper/internal/models"
)

// LoadAllNotes returns every stored note ordered by note ID
func (s *Storage) LoadAllNotes(ctx context.Context) ([]models.NoteRecord, error) {
	var records []models.NoteRecord

	err := s.view(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketNotes)
		if err != nil {
			return err
		}

		records, err = decodeNotes(b)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}

	return records, nil
}

// ApplyNoteChanges writes upserts and removals in one transaction
func (s *Storage) ApplyNoteChanges(ctx context.Context, changes storage.NoteChanges) error {
	if changes.Empty() {
		return nil
	}

	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketNotes)
		if err != nil {
			return err
		}

		for _, noteID := range changes.Removals {
			if err := b.Delete([]byte(noteID)); err != nil {
				return fmt.Errorf("failed to delete note %s: %w", noteID, err)
			}
		}
		for _, record := range changes.Upserts {
			if err := putNote(b, record); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceNotes replaces the note set, stored notes listed in preserve are kept as is.
// The preserved notes are read inside the same transaction, so a concurrent writer
// can't slip between the read and the replacement.
func (s *Storage) ReplaceNotes(ctx context.Context, records []models.NoteRecord, preserve map[string]bool) ([]models.NoteRecord, error) {
	var result []models.NoteRecord

	err := s.update(func(tx *bbolt.Tx) error {
		kept := map[string][]byte{}
		if old := tx.Bucket(bucketNotes); old != nil {
			for noteID := range preserve {
				if data := old.Get([]byte(noteID)); data != nil {
					// Get возвращает память bbolt, которая недействительна после DeleteBucket
					kept[noteID] = append([]byte(nil), data...)
				}
			}
		}

		// Пересоздаем bucket целиком, чтобы удалить заметки, которых нет в records
		if err := tx.DeleteBucket(bucketNotes); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return fmt.Errorf("failed to drop notes bucket: %w", err)
		}
		b, err := tx.CreateBucket(bucketNotes)
		if err != nil {
			return fmt.Errorf("failed to create notes bucket: %w", err)
		}

		for _, record := range records {
			if _, ok := kept[record.NoteID]; ok {
				continue
			}
			if err := putNote(b, record); err != nil {
				return err
			}
		}
		for noteID, data := range kept {
			if err := b.Put([]byte(noteID), data); err != nil {
				return fmt.Errorf("failed to keep note %s: %w", noteID, err)
			}
		}

		result, err = decodeNotes(b)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to replace notes: %w", err)
	}

	return result, nil
}

// GetByID retrieves a note by ID
func (s *Storage) GetByID(ctx context.Context, noteID string) (*models.NoteRecord, error) {
	var record *models.NoteRecord

	err := s.view(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketNotes)
		if err != nil {
			return err
		}

		data := b.Get([]byte(noteID))
		if data == nil {
			return storage.ErrNoteNotFound
		}

		record = &models.NoteRecord{}
		if err := json.Unmarshal(data, record); err != nil {
			return fmt.Errorf("failed to unmarshal note: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// UpsertNonEmpty stores the note unless its markdown is blank
func (s *Storage) UpsertNonEmpty(ctx context.Context, record models.NoteRecord) error {
	if strings.TrimSpace(record.MarkdownText) == "" {
		return nil
	}

	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketNotes)
		if err != nil {
			return err
		}
		return putNote(b, record)
	})
}

// RemoveByID deletes a note, missing notes are ignored
func (s *Storage) RemoveByID(ctx context.Context, noteID string) error {
	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketNotes)
		if err != nil {
			return err
		}
		if err := b.Delete([]byte(noteID)); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}
		return nil
	})
}

func putNote(b *bbolt.Bucket, record models.NoteRecord) error {
	if record.NoteID == "" {
		return fmt.Errorf("note id is empty")
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal note: %w", err)
	}

	if err := b.Put([]byte(record.NoteID), data); err != nil {
		return fmt.Errorf("failed to save note: %w", err)
	}
	return nil
}

// decodeNotes читает все заметки bucket в порядке ключей
func decodeNotes(b *bbolt.Bucket) ([]models.NoteRecord, error) {
	records := []models.NoteRecord{}
	err := b.ForEach(func(k, v []byte) error {
		var record models.NoteRecord
		if err := json.Unmarshal(v, &record); err != nil {
			return fmt.Errorf("failed to unmarshal note %s: %w", k, err)
		}
		records = append(records, record)
		return nil
	})
	return records, err
}
