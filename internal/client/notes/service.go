package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/notekeeper/internal/models"
	"github.com/iudanet/notekeeper/internal/validation"
)

// ErrEmptyNote возвращается при попытке сохранить заметку без текста
var ErrEmptyNote = errors.New("note text is empty")

//go:generate moq -out recorder_mock_test.go . Recorder

// Recorder пишет локальные изменения в хранилище и ставит их в очередь синхронизации одним шагом.
// Запись вне Recorder могла бы попасть между чтением и записью набора при согласовании с сервером.
type Recorder interface {
	SaveLocalNote(ctx context.Context, record models.NoteRecord) error
	RemoveLocalNote(ctx context.Context, noteID string, prior *models.NoteRecord) error
}

// NoteReader часть хранилища, из которой сервис только читает
type NoteReader interface {
	LoadAllNotes(ctx context.Context) ([]models.NoteRecord, error)
	GetByID(ctx context.Context, noteID string) (*models.NoteRecord, error)
}

// Service определяет операции редактирования заметок на клиенте
type Service interface {
	Create(ctx context.Context, text string, pinned bool) (*models.NoteRecord, error)
	Update(ctx context.Context, noteID, text string) (*models.NoteRecord, error)
	SetPinned(ctx context.Context, noteID string, pinned bool) (*models.NoteRecord, error)
	Delete(ctx context.Context, noteID string) error
	Get(ctx context.Context, noteID string) (*models.NoteRecord, error)
	List(ctx context.Context) ([]models.NoteRecord, error)

	// Export пишет все заметки в w в виде JSON массива и возвращает их количество
	Export(ctx context.Context, w io.Writer) (int, error)

	// Import читает JSON массив заметок и сохраняет валидные, возвращает их количество
	Import(ctx context.Context, r io.Reader) (int, error)
}

// service читает заметки из хранилища, а пишет через Recorder
type service struct {
	notes    NoteReader
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new note service
func NewService(noteStorage NoteReader, recorder Recorder, logger *slog.Logger) Service {
	return &service{
		notes:    noteStorage,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Create adds a new note with a generated ID
func (s *service) Create(ctx context.Context, text string, pinned bool) (*models.NoteRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyNote
	}

	now := models.FormatISO(s.now())
	record := models.NoteRecord{
		NoteID:          uuid.NewString(),
		MarkdownText:    text,
		CreatedAtISO:    now,
		UpdatedAtISO:    now,
		LastActivityISO: now,
		Attachments:     map[string]models.Attachment{},
		Pinned:          pinned,
	}

	if err := s.save(ctx, record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Update replaces note text
func (s *service) Update(ctx context.Context, noteID, text string) (*models.NoteRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyNote
	}

	return s.modify(ctx, noteID, func(record *models.NoteRecord, now string) {
		record.MarkdownText = text
		record.UpdatedAtISO = now
		record.LastActivityISO = now
	})
}

// SetPinned pins or unpins a note
func (s *service) SetPinned(ctx context.Context, noteID string, pinned bool) (*models.NoteRecord, error) {
	return s.modify(ctx, noteID, func(record *models.NoteRecord, now string) {
		record.Pinned = pinned
		record.LastActivityISO = now
	})
}

// Delete removes a note and reports its last state to the recorder
func (s *service) Delete(ctx context.Context, noteID string) error {
	prior, err := s.Get(ctx, noteID)
	if err != nil {
		return err
	}

	if err := s.recorder.RemoveLocalNote(ctx, prior.NoteID, prior); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

// Get retrieves a note by ID
func (s *service) Get(ctx context.Context, noteID string) (*models.NoteRecord, error) {
	if err := validation.ValidateNoteID(noteID); err != nil {
		return nil, err
	}

	record, err := s.notes.GetByID(ctx, strings.TrimSpace(noteID))
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return record, nil
}

// List returns notes with pinned first, then by last activity (newest first)
func (s *service) List(ctx context.Context) ([]models.NoteRecord, error) {
	records, err := s.notes.LoadAllNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		ta, _ := models.ParseISO(a.LastActivityISO)
		tb, _ := models.ParseISO(b.LastActivityISO)
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return a.NoteID < b.NoteID
	})

	return records, nil
}

// Export writes every note as an indented JSON array
func (s *service) Export(ctx context.Context, w io.Writer) (int, error) {
	records, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return 0, fmt.Errorf("failed to encode notes: %w", err)
	}

	return len(records), nil
}

// Import reads a JSON array of notes, invalid entries are skipped
func (s *service) Import(ctx context.Context, r io.Reader) (int, error) {
	var records []models.NoteRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return 0, fmt.Errorf("failed to decode notes: %w", err)
	}

	now := s.now()
	imported := 0
	for i, record := range records {
		record = record.Normalize(now, now)
		if err := validation.ValidateNoteContent(record); err != nil {
			s.logger.Warn("Skipping invalid imported note", "index", i, "error", err)
			continue
		}

		if err := s.save(ctx, record); err != nil {
			return imported, err
		}
		imported++
	}

	s.logger.Info("Notes imported", "imported", imported, "skipped", len(records)-imported)
	return imported, nil
}

func (s *service) modify(ctx context.Context, noteID string, change func(record *models.NoteRecord, now string)) (*models.NoteRecord, error) {
	record, err := s.Get(ctx, noteID)
	if err != nil {
		return nil, err
	}

	change(record, models.FormatISO(s.now()))

	if err := s.save(ctx, *record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *service) save(ctx context.Context, record models.NoteRecord) error {
	if err := s.recorder.SaveLocalNote(ctx, record); err != nil {
		return fmt.Errorf("failed to save note: %w", err)
	}
	return nil
}
