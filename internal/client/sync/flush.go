package sync

import (
	"context"
	"errors"
	"strings"

	clientapi "github.com/iudanet/notekeeper/internal/client/api"
	"github.com/iudanet/notekeeper/internal/client/storage"
	"github.com/iudanet/notekeeper/internal/models"
	"github.com/iudanet/notekeeper/internal/validation"
	"github.com/iudanet/notekeeper/pkg/api"
)

// Flush отправляет снимок очереди одним пакетом и применяет результаты сервера.
// Возвращает true, если очередь после этого пуста.
//
// Повторный вызов во время отправки сразу возвращает false. Истекший токен сбрасывается
// без сетевого вызова. При сетевой ошибке очередь не меняется.
func (m *Manager) Flush(ctx context.Context) bool {
	m.mu.Lock()
	if m.state.flushing {
		m.mu.Unlock()
		return false
	}
	accessToken, ok := m.tokenLocked(ctx)
	if !ok {
		m.mu.Unlock()
		return false
	}
	if len(m.state.operations) == 0 {
		m.mu.Unlock()
		return true
	}

	m.state.flushing = true
	generation := m.state.generation
	userID := m.state.userID
	batch := models.CloneOperations(m.state.operations)
	m.mu.Unlock()

	req := api.SyncRequest{Operations: make([]api.SyncOperation, 0, len(batch))}
	for _, op := range batch {
		wireOp, err := encodeOperation(op)
		if err != nil {
			m.logger.Error("Failed to encode operation", "operation_id", op.OperationID, "error", err)
			m.finishFlush(generation)
			return false
		}
		req.Operations = append(req.Operations, wireOp)
	}

	m.logger.Debug("Flushing operations", "user_id", userID, "count", len(batch))
	resp, err := m.backend.SyncOperations(ctx, accessToken, req)

	m.mu.Lock()
	if m.state.generation != generation {
		m.mu.Unlock()
		m.logger.Debug("Discarding flush results of a stale session", "user_id", userID)
		return false
	}
	m.state.flushing = false

	if err != nil {
		m.handleBackendErrorLocked(ctx, err)
		m.mu.Unlock()
		m.logger.Warn("Flush failed, operations stay queued", "user_id", userID, "pending", len(batch), "error", err)
		return false
	}

	records, changed, acknowledged := m.applyResultsLocked(ctx, resp.Results, batch)
	m.removeSentLocked(batch, acknowledged)
	m.persistLocked(ctx)
	emptied := len(m.state.operations) == 0
	remaining := len(m.state.operations)
	m.mu.Unlock()

	m.logger.Info("Flush completed",
		"user_id", userID,
		"sent", len(batch),
		"results", len(resp.Results),
		"remaining", remaining)

	if changed {
		m.events.Dispatch(ReconcileEvent{Source: SourceSyncResults, Records: records})
	}
	return emptied
}

func (m *Manager) finishFlush(generation uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.generation == generation {
		m.state.flushing = false
	}
}

// tokenLocked возвращает действующий токен. Истекший токен сбрасывается, пользователь остается
func (m *Manager) tokenLocked(ctx context.Context) (string, bool) {
	if m.state.userID == "" || m.state.token == nil {
		return "", false
	}

	if m.state.token.Expired(m.now()) {
		m.logger.Info("Backend token expired, sign in again", "user_id", m.state.userID)
		m.state.token = nil
		m.saveSessionLocked(ctx)
		return "", false
	}

	return m.state.token.AccessToken, true
}

// handleBackendErrorLocked сбрасывает токен, если сервер его отклонил
func (m *Manager) handleBackendErrorLocked(ctx context.Context, err error) {
	if errors.Is(err, clientapi.ErrUnauthorized) && m.state.token != nil {
		m.state.token = nil
		m.saveSessionLocked(ctx)
	}
}

// applyResultsLocked продвигает метаданные и переносит заметки из результатов в локальное хранилище.
// В хранилище пишутся только затронутые заметки, одной транзакцией. Остальные заметки,
// в том числе сохраненные во время отправки, не трогаются.
// Возвращает итоговый набор заметок, признак изменений и заметки, получившие результат.
func (m *Manager) applyResultsLocked(ctx context.Context, results []api.SyncResult, batch []models.PendingOperation) ([]models.NoteRecord, bool, map[string]bool) {
	acknowledged := make(map[string]bool, len(results))

	current, loadErr := m.notes.LoadAllNotes(ctx)
	if loadErr != nil {
		m.logger.Error("Failed to load local notes, results applied to metadata only", "error", loadErr)
	}
	set := newNoteSet(current)

	// Заметки с операциями, поставленными во время отправки, сохраняют локальное содержимое
	inFlight := m.queuedAfterLocked(batch)

	var changes storage.NoteChanges
	for _, result := range results {
		noteID := strings.TrimSpace(result.NoteID)
		if err := validation.ValidateNoteID(noteID); err != nil {
			m.logger.Warn("Skipping result with invalid note id", "error", err)
			continue
		}
		acknowledged[noteID] = true

		meta := m.state.metadata[noteID].Advance(result.LastWriterEditSeq, result.Version)
		if inFlight[noteID] {
			m.state.metadata[noteID] = meta
			continue
		}

		if result.IsDeleted {
			delete(m.state.metadata, noteID)
			if set.remove(noteID) {
				changes.Removals = append(changes.Removals, noteID)
			}
			continue
		}
		m.state.metadata[noteID] = meta

		updatedAt := unixOrZero(result.UpdatedAtSeconds)
		record, err := DecodeNotePayload(result.Payload, noteID, updatedAt, updatedAt)
		if err != nil {
			m.logger.Warn("Skipping malformed sync result", "note_id", noteID, "error", err)
			continue
		}

		if set.upsert(record) {
			changes.Upserts = append(changes.Upserts, record)
		}
	}

	if loadErr != nil {
		return set.records(), false, acknowledged
	}
	if err := m.notes.ApplyNoteChanges(ctx, changes); err != nil {
		m.logger.Error("Failed to save notes", "error", err)
	}

	return set.records(), !changes.Empty(), acknowledged
}

// queuedAfterLocked возвращает заметки, для которых в очереди есть операции вне отправленного пакета
func (m *Manager) queuedAfterLocked(batch []models.PendingOperation) map[string]bool {
	sent := make(map[string]bool, len(batch))
	for _, op := range batch {
		sent[op.OperationID] = true
	}

	queued := map[string]bool{}
	for _, op := range m.state.operations {
		if !sent[op.OperationID] {
			queued[op.NoteID] = true
		}
	}
	return queued
}

// removeSentLocked удаляет из очереди ровно отправленные операции, для заметок которых пришел результат.
// Операции, добавленные во время отправки, остаются.
func (m *Manager) removeSentLocked(batch []models.PendingOperation, acknowledged map[string]bool) {
	sent := make(map[string]bool, len(batch))
	for _, op := range batch {
		if acknowledged[op.NoteID] {
			sent[op.OperationID] = true
		}
	}

	remaining := m.state.operations[:0:0]
	for _, op := range m.state.operations {
		if !sent[op.OperationID] {
			remaining = append(remaining, op)
		}
	}
	m.state.operations = remaining
}

// ReconcileSnapshot загружает полный список заметок с сервера и заменяет им локальный набор.
// Заметки с ожидающими операциями сохраняют локальное содержимое.
// Событие snapshot отправляется после каждого успешного получения снимка.
func (m *Manager) ReconcileSnapshot(ctx context.Context) bool {
	m.mu.Lock()
	accessToken, ok := m.tokenLocked(ctx)
	generation := m.state.generation
	userID := m.state.userID
	m.mu.Unlock()
	if !ok {
		return false
	}

	resp, err := m.backend.FetchSnapshot(ctx, accessToken)

	m.mu.Lock()
	if m.state.generation != generation {
		m.mu.Unlock()
		m.logger.Debug("Discarding snapshot of a stale session", "user_id", userID)
		return false
	}
	if err != nil {
		m.handleBackendErrorLocked(ctx, err)
		m.mu.Unlock()
		m.logger.Warn("Snapshot fetch failed", "user_id", userID, "error", err)
		return false
	}

	pending := m.pendingNoteIDsLocked()
	set := newNoteSet(nil)

	skipped := 0
	for _, entry := range resp.Notes {
		noteID := strings.TrimSpace(entry.NoteID)
		if err := validation.ValidateNoteID(noteID); err != nil {
			m.logger.Warn("Skipping snapshot entry with invalid note id", "error", err)
			skipped++
			continue
		}

		meta := m.state.metadata[noteID].Advance(entry.LastWriterEditSeq, entry.Version)
		if pending[noteID] {
			m.state.metadata[noteID] = meta
			continue
		}
		if entry.IsDeleted {
			delete(m.state.metadata, noteID)
			continue
		}
		m.state.metadata[noteID] = meta

		record, err := DecodeNotePayload(entry.Payload, noteID, unixOrZero(entry.CreatedAtSeconds), unixOrZero(entry.UpdatedAtSeconds))
		if err != nil {
			m.logger.Warn("Skipping malformed snapshot entry", "note_id", noteID, "error", err)
			skipped++
			continue
		}
		set.upsert(record)
	}

	// Локальные заметки с ожидающими операциями переживают замену набора.
	// Хранилище выбирает их в той же транзакции, что и замену.
	records, err := m.notes.ReplaceNotes(ctx, set.records(), pending)
	if err != nil {
		m.logger.Error("Failed to replace notes with snapshot", "error", err)
		records = set.records()
	}
	m.persistLocked(ctx)
	m.mu.Unlock()

	m.logger.Info("Snapshot applied", "user_id", userID, "notes", len(records), "skipped", skipped)
	m.events.Dispatch(ReconcileEvent{Source: SourceSnapshot, Records: records})
	return true
}

// noteSet упорядоченный набор заметок с доступом по идентификатору
type noteSet struct {
	index map[string]int
	list  []models.NoteRecord
}

func newNoteSet(records []models.NoteRecord) *noteSet {
	set := &noteSet{index: make(map[string]int, len(records))}
	for _, record := range records {
		set.upsert(record)
	}
	return set
}

// upsert добавляет или заменяет заметку и сообщает, изменился ли набор
func (s *noteSet) upsert(record models.NoteRecord) bool {
	if i, ok := s.index[record.NoteID]; ok {
		if s.list[i].Equal(record) {
			return false
		}
		s.list[i] = record
		return true
	}
	s.index[record.NoteID] = len(s.list)
	s.list = append(s.list, record)
	return true
}

func (s *noteSet) remove(noteID string) bool {
	i, ok := s.index[noteID]
	if !ok {
		return false
	}
	s.list = append(s.list[:i], s.list[i+1:]...)
	delete(s.index, noteID)
	for j := i; j < len(s.list); j++ {
		s.index[s.list[j].NoteID] = j
	}
	return true
}

func (s *noteSet) records() []models.NoteRecord {
	return models.CloneRecords(s.list)
}
