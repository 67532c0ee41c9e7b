package api

// Server-sent event names of GET /notes/stream
const (
	StreamEventNoteChange = "note-change"
	StreamEventHeartbeat  = "heartbeat"
)

// StreamSource значение поля source в событиях потока
const StreamSource = "notekeeper-server"

// StreamEvent данные события потока изменений
type StreamEvent struct {
	Timestamp string   `json:"timestamp"`          // RFC 3339 с наносекундами, UTC
	Source    string   `json:"source"`             // источник события
	NoteIDs   []string `json:"note_ids,omitempty"` // принятые заметки, только для note-change
}
