package models

import "time"

// StoredNote представляет авторитетное состояние заметки на сервере.
// Ключ - пара (UserID, NoteID). Удаленные заметки хранятся с IsDeleted.
type StoredNote struct {
	UserID            string `json:"user_id"`
	NoteID            string `json:"note_id"`
	PayloadJSON       string `json:"payload_json"`         // PayloadJSON последний принятый снимок заметки
	CreatedAtSeconds  int64  `json:"created_at_s"`         // CreatedAtSeconds время создания (unix seconds)
	UpdatedAtSeconds  int64  `json:"updated_at_s"`         // UpdatedAtSeconds время изменения (unix seconds)
	LastWriterEditSeq int64  `json:"last_writer_edit_seq"` // LastWriterEditSeq client_edit_seq последней принятой правки
	Version           int64  `json:"version"`              // Version серверная версия, растет на 1 при каждой принятой правке
	IsDeleted         bool   `json:"is_deleted"`
}

// NoteChange представляет запись журнала принятых изменений
type NoteChange struct {
	PreviousVersion   *int64        // PreviousVersion версия до изменения (nil для новой заметки)
	ChangeID          string        // ChangeID UUIDv7
	UserID            string        // UserID владелец заметки
	NoteID            string        // NoteID идентификатор заметки
	Operation         OperationType // Operation "upsert" или "delete"
	PayloadJSON       string        // PayloadJSON снимок, присланный клиентом
	AppliedAtSeconds  int64         // AppliedAtSeconds время применения на сервере
	ClientTimeSeconds int64         // ClientTimeSeconds время постановки в очередь на клиенте
	NewVersion        int64         // NewVersion версия после изменения
	ClientEditSeq     int64         // ClientEditSeq номер правки клиента
	ServerEditSeqSeen int64         // ServerEditSeqSeen last_writer_edit_seq сервера на момент применения
}

// UserIdentity связывает учетную запись провайдера с каноническим идентификатором пользователя
type UserIdentity struct {
	LastSeenAt  time.Time
	CreatedAt   time.Time
	Provider    string // Provider "google"
	Subject     string // Subject sub из ID token провайдера
	UserID      string // UserID канонический идентификатор пользователя
	Email       string
	DisplayName string
}
