package api

import "encoding/json"

// Supported operation names on the wire
const (
	OperationUpsert = "upsert"
	OperationDelete = "delete"
)

// SyncOperation представляет одну локальную операцию, отправляемую на сервер
type SyncOperation struct {
	Operation         string          `json:"operation" validate:"oneof=upsert delete"` // "upsert" или "delete"
	NoteID            string          `json:"note_id" validate:"required,max=190"`      // идентификатор заметки
	Payload           json.RawMessage `json:"payload"`                                  // снимок заметки (может быть null для delete)
	ClientEditSeq     int64           `json:"client_edit_seq" validate:"gte=0"`         // локальный номер правки
	ClientTimeSeconds int64           `json:"client_time_s"`                            // время постановки в очередь (unix seconds)
	CreatedAtSeconds  int64           `json:"created_at_s"`
	UpdatedAtSeconds  int64           `json:"updated_at_s"`
}

// SyncRequest представляет пакет операций от клиента
type SyncRequest struct {
	Operations []SyncOperation `json:"operations" validate:"required,min=1,dive"`
}

// SyncResult представляет итог применения одной операции на сервере
type SyncResult struct {
	NoteID            string          `json:"note_id"`
	Payload           json.RawMessage `json:"payload"`
	Version           int64           `json:"version"`              // серверная версия заметки
	UpdatedAtSeconds  int64           `json:"updated_at_s"`         // серверное время обновления
	LastWriterEditSeq int64           `json:"last_writer_edit_seq"` // номер правки последнего писателя
	Accepted          bool            `json:"accepted"`             // была ли операция принята
	IsDeleted         bool            `json:"is_deleted"`           // заметка удалена на сервере
}

// SyncResponse представляет ответ сервера на пакет операций
type SyncResponse struct {
	Results []SyncResult `json:"results"`
}

// SnapshotNote представляет одну заметку в полном снимке сервера
type SnapshotNote struct {
	NoteID            string          `json:"note_id"`
	Payload           json.RawMessage `json:"payload"`
	CreatedAtSeconds  int64           `json:"created_at_s"`
	UpdatedAtSeconds  int64           `json:"updated_at_s"`
	LastWriterEditSeq int64           `json:"last_writer_edit_seq"`
	Version           int64           `json:"version"`
	IsDeleted         bool            `json:"is_deleted"`
}

// SnapshotResponse представляет полный список заметок пользователя
type SnapshotResponse struct {
	Notes []SnapshotNote `json:"notes"`
}
