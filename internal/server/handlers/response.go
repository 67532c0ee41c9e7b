package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/notekeeper/pkg/api"
)

// Коды ошибок в теле ответа
const (
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodeInvalidNoteID    = "invalid_note_id"
	ErrCodeInvalidEditSeq   = "invalid_edit_seq"
	ErrCodeInvalidPayload   = "invalid_payload"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeTokenIssueFailed = "token_issue_failed"
	ErrCodeSyncFailed       = "sync_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeInternal         = "internal_error"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)

// maxBodyBytes ограничение размера тела запроса (заметки со встроенными вложениями)
const maxBodyBytes = 16 << 20

// SendJSON отправляет JSON ответ
func SendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// SendError отправляет JSON ответ с кодом ошибки
func SendError(logger *slog.Logger, w http.ResponseWriter, code, message string, statusCode int) {
	SendJSON(logger, w, api.ErrorResponse{Error: code, Message: message}, statusCode)
}

// decodeJSON читает тело запроса с ограничением размера
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
