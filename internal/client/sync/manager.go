package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/notekeeper/internal/client/storage"
	"github.com/iudanet/notekeeper/internal/models"
	"github.com/iudanet/notekeeper/internal/validation"
	"github.com/iudanet/notekeeper/pkg/api"
)

// BackendToken токен доступа backend и момент его истечения
type BackendToken struct {
	AccessToken string
	ExpiresAtMs int64
}

// Expired reports whether the token is no longer usable at now
func (t *BackendToken) Expired(now time.Time) bool {
	return t == nil || now.UnixMilli() >= t.ExpiresAtMs
}

// SignInRequest содержит данные для входа
type SignInRequest struct {
	UserID     string // UserID идентификатор пользователя
	Credential string // Credential подписанный credential провайдера идентификации
}

// SignInResult описывает, какие шаги входа завершились успешно
type SignInResult struct {
	Authenticated   bool
	QueueFlushed    bool
	SnapshotApplied bool
}

// DebugState копия состояния сессии для диагностики и тестов
type DebugState struct {
	BackendToken      *BackendToken
	Metadata          map[string]models.NoteMetadata
	ActiveUserID      string
	PendingOperations []models.PendingOperation
}

// Config содержит зависимости Manager
type Config struct {
	Backend         BackendClient
	MetadataStorage storage.MetadataStorage
	QueueStorage    storage.QueueStorage
	NoteStorage     storage.NoteStorage
	SessionStorage  storage.SessionStorage // опционально, без него сессия не переживает перезапуск
	Events          *Dispatcher            // опционально
	Logger          *slog.Logger
	Clock           func() time.Time
	IDGenerator     func() string
}

// Manager владеет состоянием сессии синхронизации: пользователем, токеном,
// метаданными заметок и очередью операций.
//
// Все изменения состояния выполняются под mu. Сетевые вызовы выполняются без блокировки,
// их результаты применяются только если сессия не сменилась (generation).
type Manager struct {
	backend  BackendClient
	metadata storage.MetadataStorage
	queue    storage.QueueStorage
	notes    storage.NoteStorage
	sessions storage.SessionStorage
	events   *Dispatcher
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string

	state sessionState

	wg sync.WaitGroup
	mu sync.Mutex
}

type sessionState struct {
	token      *BackendToken
	metadata   map[string]models.NoteMetadata
	userID     string
	operations []models.PendingOperation
	generation uint64
	flushing   bool
}

// NewManager creates a sync manager with an empty session
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Backend == nil {
		return nil, fmt.Errorf("backend client is required")
	}
	if cfg.MetadataStorage == nil || cfg.QueueStorage == nil || cfg.NoteStorage == nil {
		return nil, fmt.Errorf("metadata, queue and note storage are required")
	}

	m := &Manager{
		backend:  cfg.Backend,
		metadata: cfg.MetadataStorage,
		queue:    cfg.QueueStorage,
		notes:    cfg.NoteStorage,
		sessions: cfg.SessionStorage,
		events:   cfg.Events,
		logger:   cfg.Logger,
		now:      cfg.Clock,
		newID:    cfg.IDGenerator,
		state:    sessionState{metadata: map[string]models.NoteMetadata{}},
	}

	if m.events == nil {
		m.events = NewDispatcher()
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.newID == nil {
		m.newID = newOperationID
	}

	return m, nil
}

// Events returns the dispatcher that receives reconcile events
func (m *Manager) Events() *Dispatcher {
	return m.events
}

// RecordLocalUpsert ставит в очередь создание или изменение заметки и запускает фоновую отправку.
// Ничего не делает, если пользователь не вошел или заметка невалидна.
// Вызывающий сам пишет заметку в хранилище. Если запись идет параллельно с синхронизацией,
// используйте SaveLocalNote.
func (m *Manager) RecordLocalUpsert(ctx context.Context, record models.NoteRecord) {
	m.mu.Lock()
	queued := m.recordUpsertLocked(ctx, record)
	m.mu.Unlock()

	if queued {
		m.scheduleFlush(ctx)
	}
}

// RecordLocalDelete ставит в очередь удаление заметки и запускает фоновую отправку.
// prior - состояние заметки до удаления (может быть nil).
func (m *Manager) RecordLocalDelete(ctx context.Context, noteID string, prior *models.NoteRecord) {
	m.mu.Lock()
	queued := m.recordDeleteLocked(ctx, noteID, prior)
	m.mu.Unlock()

	if queued {
		m.scheduleFlush(ctx)
	}
}

// SaveLocalNote пишет заметку в локальное хранилище и ставит upsert в очередь под одной блокировкой.
// Применение результатов и снимка сервера не может вклиниться между записью и очередью.
func (m *Manager) SaveLocalNote(ctx context.Context, record models.NoteRecord) error {
	record.NoteID = strings.TrimSpace(record.NoteID)

	m.mu.Lock()
	if err := m.notes.UpsertNonEmpty(ctx, record); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to save note: %w", err)
	}
	queued := m.recordUpsertLocked(ctx, record)
	m.mu.Unlock()

	if queued {
		m.scheduleFlush(ctx)
	}
	return nil
}

// RemoveLocalNote удаляет заметку из локального хранилища и ставит delete в очередь под одной блокировкой
func (m *Manager) RemoveLocalNote(ctx context.Context, noteID string, prior *models.NoteRecord) error {
	noteID = strings.TrimSpace(noteID)

	m.mu.Lock()
	if err := m.notes.RemoveByID(ctx, noteID); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to remove note: %w", err)
	}
	queued := m.recordDeleteLocked(ctx, noteID, prior)
	m.mu.Unlock()

	if queued {
		m.scheduleFlush(ctx)
	}
	return nil
}

func (m *Manager) recordUpsertLocked(ctx context.Context, record models.NoteRecord) bool {
	if err := validation.ValidateNoteRecord(record); err != nil {
		m.logger.Debug("Skipping invalid local upsert", "error", err)
		return false
	}

	payload := record.Clone()
	payload.NoteID = strings.TrimSpace(payload.NoteID)
	return m.recordLocalLocked(ctx, models.OperationUpsert, payload.NoteID, &payload)
}

func (m *Manager) recordDeleteLocked(ctx context.Context, noteID string, prior *models.NoteRecord) bool {
	noteID = strings.TrimSpace(noteID)
	if noteID == "" {
		return false
	}

	var payload *models.NoteRecord
	if prior != nil {
		snapshot := prior.Clone()
		payload = &snapshot
	}
	return m.recordLocalLocked(ctx, models.OperationDelete, noteID, payload)
}

func (m *Manager) recordLocalLocked(ctx context.Context, operation models.OperationType, noteID string, payload *models.NoteRecord) bool {
	if m.state.userID == "" {
		return false
	}

	op := m.enqueueLocked(operation, noteID, payload)
	m.persistLocked(ctx)

	m.logger.Debug("Queued local operation",
		"operation", op.Operation,
		"note_id", op.NoteID,
		"client_edit_seq", op.ClientEditSeq,
		"pending", len(m.state.operations))
	return true
}

// enqueueLocked увеличивает clientEditSeq заметки и добавляет операцию в конец очереди.
// payload уже должен быть копией.
func (m *Manager) enqueueLocked(operation models.OperationType, noteID string, payload *models.NoteRecord) models.PendingOperation {
	now := m.now()

	meta := m.state.metadata[noteID].NextLocalEdit()
	m.state.metadata[noteID] = meta

	createdAt, updatedAt := now.Unix(), now.Unix()
	if payload != nil {
		createdAt = payload.CreatedAtSeconds(now)
		updatedAt = payload.UpdatedAtSeconds(now)
	}

	op := models.PendingOperation{
		OperationID:       m.newID(),
		NoteID:            noteID,
		Operation:         operation,
		Payload:           payload,
		ClientEditSeq:     meta.ClientEditSeq,
		CreatedAtSeconds:  createdAt,
		UpdatedAtSeconds:  updatedAt,
		ClientTimeSeconds: now.Unix(),
	}
	m.state.operations = append(m.state.operations, op)
	return op
}

// HandleSignIn выполняет вход: обмен credential, засев операций из локальных заметок,
// отправку очереди и, если очередь опустела, согласование со снимком сервера.
func (m *Manager) HandleSignIn(ctx context.Context, req SignInRequest) SignInResult {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" || req.Credential == "" {
		m.logger.Warn("Sign-in requires user id and credential")
		return SignInResult{}
	}

	// 1. Загружаем сохраненные метаданные и очередь пользователя
	metadata, operations := m.loadUserState(ctx, userID)

	// 2. Обмениваем credential на токен backend
	resp, err := m.backend.ExchangeGoogleCredential(ctx, api.GoogleAuthRequest{IDToken: req.Credential})
	if err != nil {
		m.logger.Warn("Credential exchange failed", "user_id", userID, "error", err)
		return SignInResult{}
	}

	m.mu.Lock()
	// Локальные заметки читаются под блокировкой, иначе заметка, сохраненная до установки
	// сессии, не попадет ни в засев, ни в очередь
	localNotes, err := m.notes.LoadAllNotes(ctx)
	if err != nil {
		m.logger.Error("Failed to load local notes for seeding", "error", err)
	}

	// 3. Устанавливаем сессию
	m.installLocked(userID, metadata, operations)
	m.state.token = &BackendToken{
		AccessToken: resp.AccessToken,
		ExpiresAtMs: m.now().UnixMilli() + resp.ExpiresIn*1000,
	}

	// 4. Засеваем операции для заметок, которые сервер еще не видел
	seeded := m.seedLocked(localNotes)

	// 5. Сохраняем состояние
	m.persistLocked(ctx)
	m.saveSessionLocked(ctx)
	pending := len(m.state.operations)
	m.mu.Unlock()

	m.logger.Info("Signed in", "user_id", userID, "seeded", seeded, "pending", pending)

	result := SignInResult{Authenticated: true}
	result.QueueFlushed = m.Flush(ctx)

	// 6. Полная синхронизация только после успешной отправки всей очереди
	if result.QueueFlushed {
		result.SnapshotApplied = m.ReconcileSnapshot(ctx)
	}

	return result
}

// seedLocked ставит upsert для каждой локальной заметки без ожидающих операций,
// если сервер не подтвердил ее на текущем номере правки
func (m *Manager) seedLocked(localNotes []models.NoteRecord) int {
	pending := m.pendingNoteIDsLocked()

	seeded := 0
	for _, note := range localNotes {
		noteID := strings.TrimSpace(note.NoteID)
		if validation.ValidateNoteRecord(note) != nil || pending[noteID] {
			continue
		}
		if m.state.metadata[noteID].IsServerConfirmed() {
			continue
		}

		payload := note.Clone()
		payload.NoteID = noteID
		m.enqueueLocked(models.OperationUpsert, noteID, &payload)
		pending[noteID] = true
		seeded++
	}
	return seeded
}

// ResumeSession восстанавливает сохраненную сессию после перезапуска.
// Пользователь устанавливается даже с истекшим токеном, чтобы локальные правки продолжали
// попадать в очередь. Возвращает true, если токен еще действителен.
func (m *Manager) ResumeSession(ctx context.Context) bool {
	if m.sessions == nil {
		return false
	}

	session, err := m.sessions.GetSession(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrSessionNotFound) {
			m.logger.Error("Failed to load session", "error", err)
		}
		return false
	}
	if session.UserID == "" {
		return false
	}

	metadata, operations := m.loadUserState(ctx, session.UserID)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.installLocked(session.UserID, metadata, operations)
	if session.HasToken() {
		token := &BackendToken{AccessToken: session.AccessToken, ExpiresAtMs: session.ExpiresAtMs}
		if !token.Expired(m.now()) {
			m.state.token = token
		} else {
			m.logger.Info("Stored token expired, sign in again", "user_id", session.UserID)
			m.saveSessionLocked(ctx)
		}
	}

	m.logger.Debug("Session resumed",
		"user_id", session.UserID,
		"authenticated", m.state.token != nil,
		"pending", len(m.state.operations))
	return m.state.token != nil
}

// HandleSignOut очищает сохраненные метаданные и очередь пользователя и сбрасывает сессию.
// Локальные заметки не трогаются.
func (m *Manager) HandleSignOut(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	userID := m.state.userID
	m.installLocked("", nil, nil)

	if userID != "" {
		if err := m.metadata.ClearMetadata(ctx, userID); err != nil {
			m.logger.Error("Failed to clear metadata", "user_id", userID, "error", err)
		}
		if err := m.queue.ClearQueue(ctx, userID); err != nil {
			m.logger.Error("Failed to clear queue", "user_id", userID, "error", err)
		}
	}
	if m.sessions != nil {
		if err := m.sessions.DeleteSession(ctx); err != nil {
			m.logger.Error("Failed to delete session", "error", err)
		}
	}

	m.logger.Info("Signed out", "user_id", userID)
}

// DebugState returns a deep copy of the session state
func (m *Manager) DebugState() DebugState {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := DebugState{
		ActiveUserID:      m.state.userID,
		Metadata:          models.CloneMetadata(m.state.metadata),
		PendingOperations: models.CloneOperations(m.state.operations),
	}
	if state.PendingOperations == nil {
		state.PendingOperations = []models.PendingOperation{}
	}
	if m.state.token != nil {
		token := *m.state.token
		state.BackendToken = &token
	}
	return state
}

// PendingCount returns the number of queued operations
func (m *Manager) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.operations)
}

// Wait blocks until background flushes started by local edits finish
func (m *Manager) Wait() {
	m.wg.Wait()
}

// scheduleFlush запускает отправку очереди в фоне, ошибки только логируются
func (m *Manager) scheduleFlush(ctx context.Context) {
	bg := context.WithoutCancel(ctx)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.Flush(bg)
	}()
}

// installLocked заменяет сессию и инвалидирует все запросы, начатые в предыдущей
func (m *Manager) installLocked(userID string, metadata map[string]models.NoteMetadata, operations []models.PendingOperation) {
	if metadata == nil {
		metadata = map[string]models.NoteMetadata{}
	}
	m.state = sessionState{
		userID:     userID,
		metadata:   metadata,
		operations: operations,
		generation: m.state.generation + 1,
	}
}

func (m *Manager) loadUserState(ctx context.Context, userID string) (map[string]models.NoteMetadata, []models.PendingOperation) {
	metadata, err := m.metadata.LoadMetadata(ctx, userID)
	if err != nil {
		m.logger.Error("Failed to load metadata", "user_id", userID, "error", err)
		metadata = map[string]models.NoteMetadata{}
	}

	operations, err := m.queue.LoadQueue(ctx, userID)
	if err != nil {
		m.logger.Error("Failed to load queue", "user_id", userID, "error", err)
		operations = nil
	}

	return metadata, operations
}

// persistLocked сохраняет метаданные и очередь. Ошибки логируются, состояние в памяти остается основным
func (m *Manager) persistLocked(ctx context.Context) {
	userID := m.state.userID
	if userID == "" {
		return
	}

	if err := m.metadata.SaveMetadata(ctx, userID, models.CloneMetadata(m.state.metadata)); err != nil {
		m.logger.Error("Failed to persist metadata", "user_id", userID, "error", err)
	}
	if err := m.queue.SaveQueue(ctx, userID, models.CloneOperations(m.state.operations)); err != nil {
		m.logger.Error("Failed to persist queue", "user_id", userID, "error", err)
	}
}

func (m *Manager) saveSessionLocked(ctx context.Context) {
	if m.sessions == nil || m.state.userID == "" {
		return
	}

	session := &storage.Session{UserID: m.state.userID}
	if m.state.token != nil {
		session.AccessToken = m.state.token.AccessToken
		session.ExpiresAtMs = m.state.token.ExpiresAtMs
	}
	if err := m.sessions.SaveSession(ctx, session); err != nil {
		m.logger.Error("Failed to save session", "user_id", m.state.userID, "error", err)
	}
}

func (m *Manager) pendingNoteIDsLocked() map[string]bool {
	pending := make(map[string]bool, len(m.state.operations))
	for _, op := range m.state.operations {
		pending[op.NoteID] = true
	}
	return pending
}

func newOperationID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
