package models

// NoteMetadata хранит служебные счетчики синхронизации одной заметки для одного пользователя.
//
// ClientEditSeq монотонно не убывает: увеличивается ровно на 1 при каждой локальной
// мутации, поставленной в очередь, и поднимается до ServerEditSeq, если сервер ушел вперед.
// ServerEditSeq и ServerVersion - последние значения, полученные от сервера.
type NoteMetadata struct {
	ClientEditSeq int64 `json:"clientEditSeq"`
	ServerEditSeq int64 `json:"serverEditSeq"`
	ServerVersion int64 `json:"serverVersion"`
}

// IsServerConfirmed reports whether the server already holds the note at the current edit sequence.
func (m NoteMetadata) IsServerConfirmed() bool {
	return m.ServerVersion > 0 && m.ClientEditSeq == m.ServerEditSeq
}

// NextLocalEdit returns metadata for one more queued local mutation.
func (m NoteMetadata) NextLocalEdit() NoteMetadata {
	m.ClientEditSeq++
	return m
}

// Advance применяет авторитетные значения сервера.
// ClientEditSeq никогда не уменьшается.
func (m NoteMetadata) Advance(serverEditSeq, serverVersion int64) NoteMetadata {
	if serverEditSeq < 0 {
		serverEditSeq = 0
	}
	if serverVersion < 0 {
		serverVersion = 0
	}
	m.ServerEditSeq = serverEditSeq
	m.ServerVersion = serverVersion
	if m.ClientEditSeq < m.ServerEditSeq {
		m.ClientEditSeq = m.ServerEditSeq
	}
	return m
}

// OperationType тип локальной операции
type OperationType string

const (
	OperationUpsert OperationType = "upsert" // создание или изменение заметки
	OperationDelete OperationType = "delete" // удаление заметки
)

// IsValid reports whether t is a supported operation.
func (t OperationType) IsValid() bool {
	return t == OperationUpsert || t == OperationDelete
}

// PendingOperation представляет локальную мутацию, еще не подтвержденную сервером.
// Очередь только дописывается до подтверждения, порядок FIFO, операции не склеиваются.
type PendingOperation struct {
	Payload           *NoteRecord   `json:"payload"`           // Payload снимок заметки (nil допустим для delete)
	OperationID       string        `json:"operationId"`       // OperationID уникальный идентификатор операции
	NoteID            string        `json:"noteId"`            // NoteID идентификатор заметки
	Operation         OperationType `json:"operation"`         // Operation "upsert" или "delete"
	ClientEditSeq     int64         `json:"clientEditSeq"`     // ClientEditSeq номер локальной правки
	CreatedAtSeconds  int64         `json:"createdAtSeconds"`  // CreatedAtSeconds время создания заметки
	UpdatedAtSeconds  int64         `json:"updatedAtSeconds"`  // UpdatedAtSeconds время изменения заметки
	ClientTimeSeconds int64         `json:"clientTimeSeconds"` // ClientTimeSeconds время постановки в очередь
}

// Clone создает глубокую копию операции вместе со снимком заметки
func (o PendingOperation) Clone() PendingOperation {
	clone := o
	if o.Payload != nil {
		payload := o.Payload.Clone()
		clone.Payload = &payload
	}
	return clone
}

// CloneOperations создает глубокую копию очереди
func CloneOperations(operations []PendingOperation) []PendingOperation {
	if operations == nil {
		return nil
	}
	clones := make([]PendingOperation, len(operations))
	for i, operation := range operations {
		clones[i] = operation.Clone()
	}
	return clones
}

// CloneMetadata копирует карту метаданных
func CloneMetadata(metadata map[string]NoteMetadata) map[string]NoteMetadata {
	clone := make(map[string]NoteMetadata, len(metadata))
	for noteID, value := range metadata {
		clone[noteID] = value
	}
	return clone
}
