package notes

import (
	"bytes"
	"encoding/json"

	"github.com/iudanet/notekeeper/internal/models"
)

// resolution итог разрешения одного изменения против сохраненной заметки
type resolution struct {
	audit    *models.NoteChange // audit nil, если заметка не изменилась
	note     models.StoredNote
	accepted bool
}

// resolveChange решает судьбу изменения клиента.
//
// Новая заметка принимается с версией 1. Изменение, совпадающее с сохраненным
// состоянием, принимается без записи. Изменение с client_edit_seq не больше
// last_writer_edit_seq отклоняется, клиент получает сохраненное состояние.
// Остальные изменения принимаются и увеличивают версию.
func resolveChange(existing *models.StoredNote, userID string, change ChangeRequest, appliedAt int64) resolution {
	if existing != nil {
		if changeMatchesStored(*existing, change) {
			return resolution{note: *existing, accepted: true}
		}
		if change.ClientEditSeq <= existing.LastWriterEditSeq {
			return resolution{note: *existing}
		}
	}

	stored := models.StoredNote{UserID: userID, NoteID: change.NoteID}
	if existing != nil {
		stored = *existing
	}

	updated := stored
	if updated.CreatedAtSeconds <= 0 {
		switch {
		case change.CreatedAtSeconds > 0:
			updated.CreatedAtSeconds = change.CreatedAtSeconds
		case change.UpdatedAtSeconds > 0:
			updated.CreatedAtSeconds = change.UpdatedAtSeconds
		default:
			updated.CreatedAtSeconds = appliedAt
		}
	}

	updated.LastWriterEditSeq = change.ClientEditSeq
	updated.IsDeleted = change.Operation == models.OperationDelete
	// Удаление без снимка сохраняет последнее содержимое
	if !updated.IsDeleted || change.PayloadJSON != "" {
		updated.PayloadJSON = change.PayloadJSON
	}

	updated.UpdatedAtSeconds = max(change.UpdatedAtSeconds, stored.UpdatedAtSeconds)
	if updated.UpdatedAtSeconds <= 0 {
		updated.UpdatedAtSeconds = appliedAt
	}
	if updated.CreatedAtSeconds > updated.UpdatedAtSeconds {
		updated.CreatedAtSeconds = updated.UpdatedAtSeconds
	}

	updated.Version = max(stored.Version+1, 1)

	audit := &models.NoteChange{
		UserID:            userID,
		NoteID:            change.NoteID,
		Operation:         change.Operation,
		PayloadJSON:       updated.PayloadJSON,
		AppliedAtSeconds:  appliedAt,
		ClientTimeSeconds: change.ClientTimeSeconds,
		NewVersion:        updated.Version,
		ClientEditSeq:     change.ClientEditSeq,
		ServerEditSeqSeen: stored.LastWriterEditSeq,
	}
	if stored.Version > 0 {
		prev := stored.Version
		audit.PreviousVersion = &prev
	}

	return resolution{note: updated, accepted: true, audit: audit}
}

// changeMatchesStored сообщает, что изменение ничего не меняет в сохраненной заметке
func changeMatchesStored(stored models.StoredNote, change ChangeRequest) bool {
	deleting := change.Operation == models.OperationDelete
	if deleting != stored.IsDeleted {
		return false
	}
	if deleting && change.PayloadJSON == "" {
		return true
	}
	return samePayload(change.PayloadJSON, stored.PayloadJSON)
}

// samePayload сравнивает JSON без учета форматирования
func samePayload(a, b string) bool {
	if a == b {
		return true
	}
	var left, right bytes.Buffer
	if json.Compact(&left, []byte(a)) != nil || json.Compact(&right, []byte(b)) != nil {
		return false
	}
	return bytes.Equal(left.Bytes(), right.Bytes())
}
