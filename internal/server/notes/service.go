package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/notekeeper/internal/models"
	"github.com/iudanet/notekeeper/internal/server/storage"
)

//go:generate moq -out service_mock.go . Service

const (
	opApplyChanges = "notes.apply_changes"
	opListNotes    = "notes.list_notes"
)

var (
	errMissingUserID = errors.New("user id is required")
	errMissingNoteID = errors.New("note id is required")
)

// ServiceError описывает ошибку сервиса с машинно-читаемым кодом,
// например notes.apply_changes.note_save_failed
type ServiceError struct {
	err  error
	code string
}

func newServiceError(operation, reason string, cause error) *ServiceError {
	return &ServiceError{code: operation + "." + reason, err: cause}
}

func (e *ServiceError) Error() string {
	if e.err == nil {
		return e.code
	}
	return fmt.Sprintf("%s: %v", e.code, e.err)
}

// Code возвращает код ошибки
func (e *ServiceError) Code() string {
	return e.code
}

func (e *ServiceError) Unwrap() error {
	return e.err
}

// ChangeRequest представляет одну нормализованную операцию клиента
type ChangeRequest struct {
	NoteID            string
	Operation         models.OperationType
	PayloadJSON       string // PayloadJSON снимок заметки, пустая строка если не передан
	ClientEditSeq     int64
	ClientTimeSeconds int64
	CreatedAtSeconds  int64
	UpdatedAtSeconds  int64
}

// Outcome итог применения одной операции. Note - состояние заметки после применения
type Outcome struct {
	Note     models.StoredNote
	Accepted bool
}

// Service применяет изменения клиентов к авторитетному набору заметок
type Service interface {
	// ApplyChanges применяет пакет изменений в одной транзакции.
	// Возвращает по одному результату на изменение в исходном порядке.
	ApplyChanges(ctx context.Context, userID string, changes []ChangeRequest) ([]Outcome, error)
	// ListNotes возвращает все заметки пользователя, включая удаленные
	ListNotes(ctx context.Context, userID string) ([]*models.StoredNote, error)
}

// Publisher получает идентификаторы заметок, принятых после фиксации транзакции
type Publisher interface {
	NotifyNoteChanges(userID string, noteIDs []string)
}

// Option настраивает сервис заметок
type Option func(*service)

// WithPublisher подключает рассылку изменений открытым потокам пользователя
func WithPublisher(publisher Publisher) Option {
	return func(s *service) {
		s.publisher = publisher
	}
}

type service struct {
	notes     storage.NoteStorage
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
	newID     func() (uuid.UUID, error)
}

// NewService создает сервис заметок
func NewService(noteStorage storage.NoteStorage, logger *slog.Logger, opts ...Option) Service {
	s := &service{
		notes:  noteStorage,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewV7,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) ApplyChanges(ctx context.Context, userID string, changes []ChangeRequest) ([]Outcome, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, newServiceError(opApplyChanges, "missing_user_id", errMissingUserID)
	}

	outcomes := make([]Outcome, 0, len(changes))
	accepted := 0

	err := s.notes.RunInTx(ctx, func(tx storage.NoteTx) error {
		for _, change := range changes {
			if change.NoteID == "" {
				return newServiceError(opApplyChanges, "missing_note_id", errMissingNoteID)
			}

			existing, err := tx.GetNote(ctx, userID, change.NoteID)
			if err != nil && !errors.Is(err, storage.ErrNoteNotFound) {
				return s.fail("note_select_failed", err, userID, change.NoteID)
			}

			res := resolveChange(existing, userID, change, s.now().UTC().Unix())
			if res.audit != nil {
				if err := tx.SaveNote(ctx, &res.note); err != nil {
					return s.fail("note_save_failed", err, userID, change.NoteID)
				}

				changeID, err := s.newID()
				if err != nil {
					return s.fail("id_generation_failed", err, userID, change.NoteID)
				}
				res.audit.ChangeID = changeID.String()

				if err := tx.AppendChange(ctx, res.audit); err != nil {
					return s.fail("audit_insert_failed", err, userID, change.NoteID)
				}
			}

			if res.accepted {
				accepted++
			} else {
				s.logger.Debug("Stale change rejected",
					"user_id", userID,
					"note_id", change.NoteID,
					"client_edit_seq", change.ClientEditSeq,
					"last_writer_edit_seq", res.note.LastWriterEditSeq)
			}
			outcomes = append(outcomes, Outcome{Note: res.note, Accepted: res.accepted})
		}
		return nil
	})
	if err != nil {
		var serviceErr *ServiceError
		if errors.As(err, &serviceErr) {
			return nil, serviceErr
		}
		return nil, s.fail("transaction_failed", err, userID, "")
	}

	s.logger.Info("Changes applied",
		"user_id", userID,
		"changes", len(changes),
		"accepted", accepted,
		"rejected", len(changes)-accepted)

	s.publish(userID, outcomes)
	return outcomes, nil
}

// publish уведомляет подписчиков о принятых заметках, каждая заметка один раз
func (s *service) publish(userID string, outcomes []Outcome) {
	if s.publisher == nil {
		return
	}

	seen := make(map[string]bool, len(outcomes))
	noteIDs := make([]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		if !outcome.Accepted || seen[outcome.Note.NoteID] {
			continue
		}
		seen[outcome.Note.NoteID] = true
		noteIDs = append(noteIDs, outcome.Note.NoteID)
	}
	if len(noteIDs) == 0 {
		return
	}

	s.logger.Debug("Broadcasting note changes", "user_id", userID, "note_ids", noteIDs)
	s.publisher.NotifyNoteChanges(userID, noteIDs)
}

func (s *service) ListNotes(ctx context.Context, userID string) ([]*models.StoredNote, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, newServiceError(opListNotes, "missing_user_id", errMissingUserID)
	}

	notes, err := s.notes.ListNotes(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list notes", "user_id", userID, "error", err)
		return nil, newServiceError(opListNotes, "query_failed", err)
	}
	return notes, nil
}

// fail логирует и оборачивает ошибку применения изменений
func (s *service) fail(reason string, err error, userID, noteID string) error {
	serviceErr := newServiceError(opApplyChanges, reason, err)
	s.logger.Error("Failed to apply changes",
		"code", serviceErr.Code(),
		"user_id", userID,
		"note_id", noteID,
		"error", err)
	return serviceErr
}
