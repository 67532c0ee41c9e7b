// Package realtime рассылает уведомления об изменениях заметок открытым потокам пользователя.
package realtime

import (
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/notekeeper/pkg/api"
)

// EventNoteChange тип события об изменении заметок
const EventNoteChange = api.StreamEventNoteChange

// subscriberBuffer размер очереди одного подписчика, сверх нее сообщения отбрасываются
const subscriberBuffer = 16

// Message уведомление для всех потоков одного пользователя
type Message struct {
	Timestamp time.Time
	UserID    string
	EventType string
	NoteIDs   []string
}

type subscriber struct {
	stream chan Message
	id     int64
}

// Dispatcher хранит подписчиков по пользователям. Безопасен для конкурентного использования.
type Dispatcher struct {
	logger      *slog.Logger
	subscribers map[string]map[int64]*subscriber
	now         func() time.Time
	mu          sync.RWMutex
	nextID      int64
	closed      bool
}

// NewDispatcher создает диспетчер без подписчиков
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		logger:      logger,
		subscribers: make(map[string]map[int64]*subscriber),
		now:         time.Now,
	}
}

// Subscribe регистрирует поток пользователя. Канал закрывается вызовом dispose
// или Close. Для пустого userID и после Close возвращается уже закрытый канал.
func (d *Dispatcher) Subscribe(userID string) (<-chan Message, func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if userID == "" || d.closed {
		ch := make(chan Message)
		close(ch)
		return ch, func() {}
	}

	d.nextID++
	sub := &subscriber{id: d.nextID, stream: make(chan Message, subscriberBuffer)}
	if d.subscribers[userID] == nil {
		d.subscribers[userID] = make(map[int64]*subscriber)
	}
	d.subscribers[userID][sub.id] = sub

	return sub.stream, func() { d.unsubscribe(userID, sub.id) }
}

// Publish отправляет сообщение всем потокам пользователя без блокировки
func (d *Dispatcher) Publish(message Message) {
	if message.UserID == "" || message.EventType == "" {
		return
	}

	// Отправка под RLock: unsubscribe и Close закрывают каналы только под Lock
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, sub := range d.subscribers[message.UserID] {
		select {
		case sub.stream <- message:
		default:
			d.logger.Warn("Realtime subscriber is slow, message dropped",
				"user_id", message.UserID,
				"subscriber_id", sub.id)
		}
	}
}

// NotifyNoteChanges публикует note-change с идентификаторами принятых заметок
func (d *Dispatcher) NotifyNoteChanges(userID string, noteIDs []string) {
	if len(noteIDs) == 0 {
		return
	}
	d.Publish(Message{
		UserID:    userID,
		EventType: EventNoteChange,
		NoteIDs:   append([]string(nil), noteIDs...),
		Timestamp: d.now().UTC(),
	})
}

// Subscribers возвращает число открытых потоков пользователя
func (d *Dispatcher) Subscribers(userID string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subscribers[userID])
}

// Close закрывает все потоки, новые подписки сразу получают закрытый канал.
// Должен вызываться до ожидания соединений при остановке сервера.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	for userID, subs := range d.subscribers {
		for _, sub := range subs {
			close(sub.stream)
		}
		delete(d.subscribers, userID)
	}
}

func (d *Dispatcher) unsubscribe(userID string, id int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	subs := d.subscribers[userID]
	sub, ok := subs[id]
	if !ok {
		return
	}
	close(sub.stream)
	delete(subs, id)
	if len(subs) == 0 {
		delete(d.subscribers, userID)
	}
}
