package sync

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/notekeeper/internal/models"
	"github.com/iudanet/notekeeper/internal/validation"
	"github.com/iudanet/notekeeper/pkg/api"
)

// ErrEmptyPayload возвращается, если сервер прислал результат без заметки
var ErrEmptyPayload = errors.New("payload is empty")

// DecodeNotePayload разбирает и нормализует заметку из ответа сервера.
// Заметка без noteId или markdownText, а также с noteId, отличным от noteID, считается невалидной.
func DecodeNotePayload(raw json.RawMessage, noteID string, createdFallback, updatedFallback time.Time) (models.NoteRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return models.NoteRecord{}, ErrEmptyPayload
	}

	var record models.NoteRecord
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return models.NoteRecord{}, fmt.Errorf("failed to decode payload: %w", err)
	}

	if noteID != "" && strings.TrimSpace(record.NoteID) != noteID {
		return models.NoteRecord{}, fmt.Errorf("payload note id %q does not match %q", record.NoteID, noteID)
	}

	record = record.Normalize(createdFallback, updatedFallback)
	if err := validation.ValidateNoteContent(record); err != nil {
		return models.NoteRecord{}, fmt.Errorf("invalid payload: %w", err)
	}

	return record, nil
}

// encodeOperation конвертирует операцию очереди в формат API
func encodeOperation(op models.PendingOperation) (api.SyncOperation, error) {
	payload := json.RawMessage("null")
	if op.Payload != nil {
		data, err := json.Marshal(op.Payload)
		if err != nil {
			return api.SyncOperation{}, fmt.Errorf("failed to marshal payload of operation %s: %w", op.OperationID, err)
		}
		payload = data
	}

	return api.SyncOperation{
		Operation:         string(op.Operation),
		NoteID:            op.NoteID,
		Payload:           payload,
		ClientEditSeq:     op.ClientEditSeq,
		ClientTimeSeconds: op.ClientTimeSeconds,
		CreatedAtSeconds:  op.CreatedAtSeconds,
		UpdatedAtSeconds:  op.UpdatedAtSeconds,
	}, nil
}

func unixOrZero(seconds int64) time.Time {
	if seconds <= 0 {
		return time.Time{}
	}
	return time.Unix(seconds, 0).UTC()
}
