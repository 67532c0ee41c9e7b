package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/sse"

	"github.com/iudanet/notekeeper/internal/server/realtime"
	"github.com/iudanet/notekeeper/pkg/api"
)

// StreamSubscriber выдает поток уведомлений пользователя
type StreamSubscriber interface {
	Subscribe(userID string) (<-chan realtime.Message, func())
}

// StreamHandler отдает изменения заметок как server-sent events
type StreamHandler struct {
	logger     *slog.Logger
	subscriber StreamSubscriber
	now        func() time.Time
	heartbeat  time.Duration
}

// NewStreamHandler создает handler потока. heartbeat интервал пустых событий,
// которые держат соединение открытым через прокси.
func NewStreamHandler(logger *slog.Logger, subscriber StreamSubscriber, heartbeat time.Duration) *StreamHandler {
	return &StreamHandler{
		logger:     logger,
		subscriber: subscriber,
		now:        time.Now,
		heartbeat:  heartbeat,
	}
}

// Stream обрабатывает GET /notes/stream
// Держит соединение до отключения клиента или остановки сервера
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		SendError(h.logger, w, ErrCodeUnauthorized, "unauthorized", http.StatusUnauthorized)
		return
	}

	rc := http.NewResponseController(w)
	// WriteTimeout сервера рассчитан на обычные запросы
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.logger.WarnContext(ctx, "Failed to clear write deadline", "error", err)
	}

	stream, dispose := h.subscriber.Subscribe(userID)
	defer dispose()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		h.logger.ErrorContext(ctx, "Streaming is not supported", "error", err)
		return
	}

	h.logger.InfoContext(ctx, "Stream subscribed", "user_id", userID)
	defer h.logger.InfoContext(ctx, "Stream closed", "user_id", userID)

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-stream:
			if !ok {
				return
			}
			timestamp := msg.Timestamp
			if timestamp.IsZero() {
				timestamp = h.now()
			}
			event := api.StreamEvent{
				NoteIDs:   msg.NoteIDs,
				Timestamp: timestamp.UTC().Format(time.RFC3339Nano),
				Source:    api.StreamSource,
			}
			if err := h.send(rc, w, msg.EventType, event); err != nil {
				h.logger.DebugContext(ctx, "Stream write failed", "user_id", userID, "error", err)
				return
			}
			heartbeat.Reset(h.heartbeat)
		case <-heartbeat.C:
			event := api.StreamEvent{
				Timestamp: h.now().UTC().Format(time.RFC3339Nano),
				Source:    api.StreamSource,
			}
			if err := h.send(rc, w, api.StreamEventHeartbeat, event); err != nil {
				h.logger.DebugContext(ctx, "Stream write failed", "user_id", userID, "error", err)
				return
			}
		}
	}
}

func (h *StreamHandler) send(rc *http.ResponseController, w http.ResponseWriter, name string, event api.StreamEvent) error {
	if err := sse.Encode(w, sse.Event{Event: name, Data: event}); err != nil {
		return err
	}
	return rc.Flush()
}
