package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iudanet/notekeeper/internal/models"
)

// MaxNoteIDLen максимальная длина идентификатора заметки (совпадает с размером колонки note_id)
const MaxNoteIDLen = 190

// ValidateNoteID проверяет идентификатор заметки
// Не пустой после trim, не длиннее MaxNoteIDLen символов
func ValidateNoteID(noteID string) error {
	trimmed := strings.TrimSpace(noteID)
	if trimmed == "" {
		return fmt.Errorf("note id cannot be empty")
	}

	if utf8.RuneCountInString(trimmed) > MaxNoteIDLen {
		return fmt.Errorf("note id must not exceed %d characters", MaxNoteIDLen)
	}

	return nil
}

// ValidateNoteRecord проверяет минимальную валидность заметки перед постановкой в очередь
func ValidateNoteRecord(record models.NoteRecord) error {
	return ValidateNoteID(record.NoteID)
}

// ValidateNoteContent проверяет заметку, полученную от сервера или из файла импорта.
// Требует непустой текст в дополнение к валидному идентификатору.
func ValidateNoteContent(record models.NoteRecord) error {
	if err := ValidateNoteID(record.NoteID); err != nil {
		return err
	}

	if strings.TrimSpace(record.MarkdownText) == "" {
		return fmt.Errorf("note %s has empty markdown text", record.NoteID)
	}

	return nil
}

// ValidateOperation проверяет поля операции синхронизации
func ValidateOperation(operation, noteID string, clientEditSeq int64) error {
	if !models.OperationType(operation).IsValid() {
		return fmt.Errorf("unsupported operation %q", operation)
	}

	if err := ValidateNoteID(noteID); err != nil {
		return err
	}

	if clientEditSeq < 0 {
		return fmt.Errorf("client edit seq must not be negative")
	}

	return nil
}
