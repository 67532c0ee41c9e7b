package models

import (
	"reflect"
	"strings"
	"time"
)

// isoLayout повторяет формат Date.prototype.toISOString, которым пишутся заметки
const isoLayout = "2006-01-02T15:04:05.000Z"

// Attachment представляет вложение, встроенное в markdown заметки по ключу-плейсхолдеру.
type Attachment struct {
	DataURL string `json:"dataUrl"` // DataURL содержимое вложения в виде data: URL
	AltText string `json:"altText"` // AltText альтернативный текст
}

// NoteRecord представляет одну заметку в локальном хранилище.
// Идентичность определяется NoteID (генерируется клиентом).
type NoteRecord struct {
	Attachments     map[string]Attachment `json:"attachments"`              // Attachments вложения по ключу плейсхолдера
	Classification  map[string]any        `json:"classification,omitempty"` // Classification произвольная классификация (опционально)
	NoteID          string                `json:"noteId"`                   // NoteID непрозрачный идентификатор заметки
	MarkdownText    string                `json:"markdownText"`             // MarkdownText текст заметки
	CreatedAtISO    string                `json:"createdAtIso"`             // CreatedAtISO время создания (RFC3339)
	UpdatedAtISO    string                `json:"updatedAtIso"`             // UpdatedAtISO время последнего изменения (RFC3339)
	LastActivityISO string                `json:"lastActivityIso"`          // LastActivityISO время последней активности (RFC3339)
	Pinned          bool                  `json:"pinned"`                   // Pinned закреплена ли заметка
}

// Clone создает глубокую копию заметки.
// Вложения и классификация копируются, поэтому изменения оригинала не влияют на копию.
func (n NoteRecord) Clone() NoteRecord {
	clone := n
	if n.Attachments != nil {
		clone.Attachments = make(map[string]Attachment, len(n.Attachments))
		for key, attachment := range n.Attachments {
			clone.Attachments[key] = attachment
		}
	}
	if n.Classification != nil {
		clone.Classification = deepCopyMap(n.Classification)
	}
	return clone
}

// Equal reports whether two records carry the same content.
// Nil and empty maps are treated as equal.
func (n NoteRecord) Equal(other NoteRecord) bool {
	if n.NoteID != other.NoteID ||
		n.MarkdownText != other.MarkdownText ||
		n.CreatedAtISO != other.CreatedAtISO ||
		n.UpdatedAtISO != other.UpdatedAtISO ||
		n.LastActivityISO != other.LastActivityISO ||
		n.Pinned != other.Pinned {
		return false
	}

	if len(n.Attachments) != len(other.Attachments) {
		return false
	}
	for key, attachment := range n.Attachments {
		otherAttachment, ok := other.Attachments[key]
		if !ok || otherAttachment != attachment {
			return false
		}
	}

	if len(n.Classification) == 0 && len(other.Classification) == 0 {
		return true
	}
	return reflect.DeepEqual(n.Classification, other.Classification)
}

// Normalize возвращает копию заметки с заполненными служебными полями.
// Пустые временные метки заполняются из fallback значений, nil вложения заменяются пустой картой.
func (n NoteRecord) Normalize(createdFallback, updatedFallback time.Time) NoteRecord {
	normalized := n.Clone()
	normalized.NoteID = strings.TrimSpace(normalized.NoteID)

	if normalized.Attachments == nil {
		normalized.Attachments = map[string]Attachment{}
	}

	if updatedFallback.IsZero() {
		updatedFallback = createdFallback
	}
	if createdFallback.IsZero() {
		createdFallback = updatedFallback
	}

	if strings.TrimSpace(normalized.CreatedAtISO) == "" && !createdFallback.IsZero() {
		normalized.CreatedAtISO = FormatISO(createdFallback)
	}
	if strings.TrimSpace(normalized.UpdatedAtISO) == "" {
		if !updatedFallback.IsZero() {
			normalized.UpdatedAtISO = FormatISO(updatedFallback)
		} else {
			normalized.UpdatedAtISO = normalized.CreatedAtISO
		}
	}
	if strings.TrimSpace(normalized.LastActivityISO) == "" {
		normalized.LastActivityISO = normalized.UpdatedAtISO
	}

	return normalized
}

// CreatedAtSeconds returns the creation time in unix seconds or fallback if the field is unparsable.
func (n NoteRecord) CreatedAtSeconds(fallback time.Time) int64 {
	if t, ok := ParseISO(n.CreatedAtISO); ok {
		return t.Unix()
	}
	return fallback.Unix()
}

// UpdatedAtSeconds returns the last update time in unix seconds.
// Falls back to the creation time and then to fallback.
func (n NoteRecord) UpdatedAtSeconds(fallback time.Time) int64 {
	if t, ok := ParseISO(n.UpdatedAtISO); ok {
		return t.Unix()
	}
	return n.CreatedAtSeconds(fallback)
}

// FormatISO форматирует время в UTC с миллисекундами
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ParseISO разбирает RFC3339 метку (дробная часть секунд опциональна)
func ParseISO(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CloneRecords создает глубокую копию среза заметок
func CloneRecords(records []NoteRecord) []NoteRecord {
	if records == nil {
		return nil
	}
	clones := make([]NoteRecord, len(records))
	for i, record := range records {
		clones[i] = record.Clone()
	}
	return clones
}

func deepCopyMap(source map[string]any) map[string]any {
	result := make(map[string]any, len(source))
	for key, value := range source {
		result[key] = deepCopyValue(value)
	}
	return result
}

func deepCopyValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return deepCopyMap(typed)
	case []any:
		copied := make([]any, len(typed))
		for i, item := range typed {
			copied[i] = deepCopyValue(item)
		}
		return copied
	case []string:
		return append([]string(nil), typed...)
	default:
		return typed
	}
}
