package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iudanet/notekeeper/internal/models"
	"github.com/iudanet/notekeeper/internal/server/notes"
	"github.com/iudanet/notekeeper/pkg/api"
)

// NotesHandler обрабатывает синхронизацию и снимок заметок
type NotesHandler struct {
	logger   *slog.Logger
	notes    notes.Service
	validate *validator.Validate
	now      func() time.Time
}

// NewNotesHandler создает handler заметок
func NewNotesHandler(logger *slog.Logger, notesService notes.Service) *NotesHandler {
	return &NotesHandler{
		logger:   logger,
		notes:    notesService,
		validate: validator.New(),
		now:      time.Now,
	}
}

// requestError ошибка валидации с кодом для клиента
type requestError struct {
	code    string
	message string
}

func (e *requestError) Error() string {
	return e.code + ": " + e.message
}

// Sync обрабатывает POST /notes/sync
// Применяет пакет операций и возвращает по одному результату на операцию
func (h *NotesHandler) Sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		SendError(h.logger, w, ErrCodeUnauthorized, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.SyncRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode sync request", slog.Any("error", err))
		SendError(h.logger, w, ErrCodeInvalidRequest, "invalid request body", http.StatusBadRequest)
		return
	}

	changes, err := h.parseChanges(&req)
	if err != nil {
		var reqErr *requestError
		if !errors.As(err, &reqErr) {
			reqErr = &requestError{code: ErrCodeInvalidRequest, message: err.Error()}
		}
		h.logger.WarnContext(ctx, "invalid sync request", slog.String("user_id", userID), slog.Any("error", err))
		SendError(h.logger, w, reqErr.code, reqErr.message, http.StatusBadRequest)
		return
	}

	outcomes, err := h.notes.ApplyChanges(ctx, userID, changes)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to apply note changes", slog.String("user_id", userID), slog.Any("error", err))
		SendError(h.logger, w, ErrCodeSyncFailed, "failed to apply changes", http.StatusInternalServerError)
		return
	}

	resp := api.SyncResponse{Results: make([]api.SyncResult, 0, len(outcomes))}
	for _, outcome := range outcomes {
		note := outcome.Note
		resp.Results = append(resp.Results, api.SyncResult{
			NoteID:            note.NoteID,
			Payload:           encodePayload(note.PayloadJSON),
			Version:           note.Version,
			UpdatedAtSeconds:  note.UpdatedAtSeconds,
			LastWriterEditSeq: note.LastWriterEditSeq,
			Accepted:          outcome.Accepted,
			IsDeleted:         note.IsDeleted,
		})
	}

	SendJSON(h.logger, w, resp, http.StatusOK)
}

// List обрабатывает GET /notes
// Возвращает все заметки пользователя, включая удаленные
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		SendError(h.logger, w, ErrCodeUnauthorized, "unauthorized", http.StatusUnauthorized)
		return
	}

	stored, err := h.notes.ListNotes(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list notes", slog.String("user_id", userID), slog.Any("error", err))
		SendError(h.logger, w, ErrCodeListFailed, "failed to list notes", http.StatusInternalServerError)
		return
	}

	resp := api.SnapshotResponse{Notes: make([]api.SnapshotNote, 0, len(stored))}
	for _, note := range stored {
		resp.Notes = append(resp.Notes, api.SnapshotNote{
			NoteID:            note.NoteID,
			Payload:           encodePayload(note.PayloadJSON),
			CreatedAtSeconds:  note.CreatedAtSeconds,
			UpdatedAtSeconds:  note.UpdatedAtSeconds,
			LastWriterEditSeq: note.LastWriterEditSeq,
			Version:           note.Version,
			IsDeleted:         note.IsDeleted,
		})
	}

	h.logger.DebugContext(ctx, "snapshot served", slog.String("user_id", userID), slog.Int("notes", len(resp.Notes)))
	SendJSON(h.logger, w, resp, http.StatusOK)
}

// parseChanges нормализует и проверяет операции запроса
func (h *NotesHandler) parseChanges(req *api.SyncRequest) ([]notes.ChangeRequest, error) {
	for i := range req.Operations {
		op := &req.Operations[i]
		op.Operation = strings.ToLower(strings.TrimSpace(op.Operation))
		op.NoteID = strings.TrimSpace(op.NoteID)
	}

	if err := h.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	now := h.now().UTC()
	changes := make([]notes.ChangeRequest, 0, len(req.Operations))
	for _, op := range req.Operations {
		payload, err := normalizePayload(op)
		if err != nil {
			return nil, err
		}

		clientTime, createdAt, updatedAt := normalizeTimestamps(op, now)
		changes = append(changes, notes.ChangeRequest{
			NoteID:            op.NoteID,
			Operation:         models.OperationType(op.Operation),
			PayloadJSON:       payload,
			ClientEditSeq:     op.ClientEditSeq,
			ClientTimeSeconds: clientTime,
			CreatedAtSeconds:  createdAt,
			UpdatedAtSeconds:  updatedAt,
		})
	}
	return changes, nil
}

// validationError переводит ошибку валидатора в код ответа по первому неверному полю
func validationError(err error) *requestError {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &requestError{code: ErrCodeInvalidRequest, message: err.Error()}
	}

	fieldErr := fieldErrs[0]
	switch fieldErr.StructField() {
	case "Operation":
		return &requestError{code: ErrCodeInvalidOperation, message: fmt.Sprintf("unsupported operation %q", fieldErr.Value())}
	case "NoteID":
		return &requestError{code: ErrCodeInvalidNoteID, message: "note_id is empty or too long"}
	case "ClientEditSeq":
		return &requestError{code: ErrCodeInvalidEditSeq, message: "client_edit_seq must not be negative"}
	case "Operations":
		return &requestError{code: ErrCodeInvalidRequest, message: "operations must not be empty"}
	default:
		return &requestError{code: ErrCodeInvalidRequest, message: fieldErr.Error()}
	}
}

// normalizePayload проверяет снимок заметки и возвращает его в компактном виде.
// Пустая строка означает отсутствие снимка.
func normalizePayload(op api.SyncOperation) (string, error) {
	raw := bytes.TrimSpace(op.Payload)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		if op.Operation == api.OperationUpsert {
			return "", &requestError{code: ErrCodeInvalidPayload, message: "upsert requires a payload"}
		}
		return "", nil
	}

	var snapshot struct {
		NoteID *string `json:"noteId"`
	}
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return "", &requestError{code: ErrCodeInvalidPayload, message: "payload must be a JSON object"}
	}
	if snapshot.NoteID != nil && strings.TrimSpace(*snapshot.NoteID) != op.NoteID {
		return "", &requestError{code: ErrCodeInvalidPayload, message: "payload noteId does not match note_id"}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return "", &requestError{code: ErrCodeInvalidPayload, message: "payload must be valid JSON"}
	}
	return compact.String(), nil
}

// normalizeTimestamps заполняет отсутствующие метки времени.
// Время клиента по умолчанию - время сервера, created и updated берутся из времени клиента.
func normalizeTimestamps(op api.SyncOperation, now time.Time) (clientTime, createdAt, updatedAt int64) {
	clientTime = op.ClientTimeSeconds
	if clientTime <= 0 {
		clientTime = now.Unix()
	}

	createdAt = op.CreatedAtSeconds
	if createdAt <= 0 {
		switch {
		case op.ClientTimeSeconds > 0:
			createdAt = op.ClientTimeSeconds
		case op.UpdatedAtSeconds > 0:
			createdAt = op.UpdatedAtSeconds
		default:
			createdAt = clientTime
		}
	}

	updatedAt = op.UpdatedAtSeconds
	if updatedAt <= 0 {
		switch {
		case op.ClientTimeSeconds > 0:
			updatedAt = op.ClientTimeSeconds
		default:
			updatedAt = createdAt
		}
	}

	return clientTime, createdAt, updatedAt
}

// encodePayload возвращает null вместо пустого снимка
func encodePayload(raw string) json.RawMessage {
	if strings.TrimSpace(raw) == "" {
		return json.RawMessage("null")
	}
	return json.RawMessage(raw)
}
