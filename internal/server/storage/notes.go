package storage

import (
	"context"

	"github.com/iudanet/notekeeper/internal/models"
)

// NoteStorage defines interface for server side note persistence
type NoteStorage interface {
	// RunInTx runs fn in a single transaction
	// The transaction is committed when fn returns nil and rolled back otherwise
	RunInTx(ctx context.Context, fn func(tx NoteTx) error) error

	// ListNotes retrieves all notes of the user including deleted ones
	// ordered by updated_at_s descending
	// Returns empty slice if no notes found
	ListNotes(ctx context.Context, userID string) ([]*models.StoredNote, error)
}

// NoteTx defines note operations available inside a transaction
type NoteTx interface {
	// GetNote retrieves note by user and note id
	// Returns ErrNoteNotFound if note doesn't exist
	GetNote(ctx context.Context, userID, noteID string) (*models.StoredNote, error)

	// SaveNote creates or replaces the note
	SaveNote(ctx context.Context, note *models.StoredNote) error

	// AppendChange writes an audit record of an applied change
	AppendChange(ctx context.Context, change *models.NoteChange) error
}
