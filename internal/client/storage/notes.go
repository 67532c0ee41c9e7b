package storage

import (
	"context"

	"github.com/iudanet/notekeeper/internal/models"
)

//go:generate moq -out notestorage_mock.go . NoteStorage

// NoteChanges набор правок, который применяется к хранилищу одной транзакцией
type NoteChanges struct {
	Upserts  []models.NoteRecord
	Removals []string
}

// Empty reports whether there is nothing to apply
func (c NoteChanges) Empty() bool {
	return len(c.Upserts) == 0 && len(c.Removals) == 0
}

// NoteStorage defines interface for the local durable note store
type NoteStorage interface {
	// LoadAllNotes returns every stored note
	LoadAllNotes(ctx context.Context) ([]models.NoteRecord, error)

	// ApplyNoteChanges writes upserts and removals in one transaction.
	// Notes not mentioned in changes are left untouched.
	ApplyNoteChanges(ctx context.Context, changes NoteChanges) error

	// ReplaceNotes replaces the whole note set with records in one transaction.
	// Stored notes whose IDs are in preserve survive the replacement with their local content.
	// Returns the resulting note set.
	ReplaceNotes(ctx context.Context, records []models.NoteRecord, preserve map[string]bool) ([]models.NoteRecord, error)

	// GetByID retrieves a note by ID
	// Returns ErrNoteNotFound if note doesn't exist
	GetByID(ctx context.Context, noteID string) (*models.NoteRecord, error)

	// UpsertNonEmpty stores the note unless its markdown is blank
	UpsertNonEmpty(ctx context.Context, record models.NoteRecord) error

	// RemoveByID deletes a note. Removing a missing note is not an error
	RemoveByID(ctx context.Context, noteID string) error
}
