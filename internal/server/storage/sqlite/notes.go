package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/notekeeper/internal/models"
	"github.com/iudanet/notekeeper/internal/server/storage"
)

// querier общий интерфейс *sql.DB и *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// noteTx реализует storage.NoteTx поверх открытой транзакции
type noteTx struct {
	q querier
}

// RunInTx runs fn in a single transaction
func (s *Storage) RunInTx(ctx context.Context, fn func(tx storage.NoteTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&noteTx{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListNotes retrieves all notes of the user ordered by updated_at_s descending
func (s *Storage) ListNotes(ctx context.Context, userID string) ([]*models.StoredNote, error) {
	query := `
		SELECT user_id, note_id, payload_json, created_at_s, updated_at_s,
		       last_writer_edit_seq, version, is_deleted
		FROM notes
		WHERE user_id = ?
		ORDER BY updated_at_s DESC, note_id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*models.StoredNote, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, nil
}

// GetNote retrieves note by user and note id
func (t *noteTx) GetNote(ctx context.Context, userID, noteID string) (*models.StoredNote, error) {
	query := `
		SELECT user_id, note_id, payload_json, created_at_s, updated_at_s,
		       last_writer_edit_seq, version, is_deleted
		FROM notes
		WHERE user_id = ? AND note_id = ?
	`

	note, err := scanNote(t.q.QueryRowContext(ctx, query, userID, noteID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNoteNotFound
		}
		return nil, err
	}

	return note, nil
}

// SaveNote creates or replaces the note
func (t *noteTx) SaveNote(ctx context.Context, note *models.StoredNote) error {
	query := `
		INSERT INTO notes (
			user_id, note_id, payload_json, created_at_s, updated_at_s,
			last_writer_edit_seq, version, is_deleted
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, note_id) DO UPDATE SET
			payload_json = excluded.payload_json,
			created_at_s = excluded.created_at_s,
			updated_at_s = excluded.updated_at_s,
			last_writer_edit_seq = excluded.last_writer_edit_seq,
			version = excluded.version,
			is_deleted = excluded.is_deleted
	`

	_, err := t.q.ExecContext(ctx, query,
		note.UserID,
		note.NoteID,
		note.PayloadJSON,
		note.CreatedAtSeconds,
		note.UpdatedAtSeconds,
		note.LastWriterEditSeq,
		note.Version,
		boolToInt(note.IsDeleted),
	)

	if err != nil {
		return fmt.Errorf("failed to save note: %w", err)
	}

	return nil
}

// AppendChange writes an audit record of an applied change
func (t *noteTx) AppendChange(ctx context.Context, change *models.NoteChange) error {
	query := `
		INSERT INTO note_changes (
			change_id, user_id, note_id, op, payload_json, applied_at_s, client_time_s,
			prev_version, new_version, client_edit_seq, server_edit_seq_seen
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var prevVersion sql.NullInt64
	if change.PreviousVersion != nil {
		prevVersion = sql.NullInt64{Int64: *change.PreviousVersion, Valid: true}
	}

	_, err := t.q.ExecContext(ctx, query,
		change.ChangeID,
		change.UserID,
		change.NoteID,
		string(change.Operation),
		change.PayloadJSON,
		change.AppliedAtSeconds,
		change.ClientTimeSeconds,
		prevVersion,
		change.NewVersion,
		change.ClientEditSeq,
		change.ServerEditSeqSeen,
	)

	if err != nil {
		return fmt.Errorf("failed to insert note change: %w", err)
	}

	return nil
}

// scanner общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanNote(row scanner) (*models.StoredNote, error) {
	note := &models.StoredNote{}
	var deleted int

	err := row.Scan(
		&note.UserID,
		&note.NoteID,
		&note.PayloadJSON,
		&note.CreatedAtSeconds,
		&note.UpdatedAtSeconds,
		&note.LastWriterEditSeq,
		&note.Version,
		&deleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan note: %w", err)
	}

	note.IsDeleted = deleted != 0
	return note, nil
}

// boolToInt converts bool to int for SQLite
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
