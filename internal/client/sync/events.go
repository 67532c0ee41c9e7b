package sync

import (
	"sync"

	"github.com/iudanet/notekeeper/internal/models"
)

// EventSource указывает, какой путь синхронизации изменил заметки
type EventSource string

const (
	SourceSyncResults EventSource = "sync-results" // применены результаты пакета операций
	SourceSnapshot    EventSource = "snapshot"     // локальный набор заменен снимком сервера
)

// ReconcileEvent уведомляет слой отображения о новом наборе заметок
type ReconcileEvent struct {
	Source  EventSource
	Records []models.NoteRecord
}

// Listener получает события согласования
type Listener func(event ReconcileEvent)

type subscription struct {
	listener Listener
	id       uint64
}

// Dispatcher доставляет события согласования подписчикам в порядке подписки.
// Каждый подписчик получает собственную копию заметок.
type Dispatcher struct {
	subscriptions []subscription
	nextID        uint64
	mu            sync.RWMutex
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers listener and returns a function that removes it
func (d *Dispatcher) Subscribe(listener Listener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	d.subscriptions = append(d.subscriptions, subscription{id: id, listener: listener})

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		for i, sub := range d.subscriptions {
			if sub.id == id {
				d.subscriptions = append(d.subscriptions[:i:i], d.subscriptions[i+1:]...)
				return
			}
		}
	}
}

// Dispatch calls every listener synchronously
func (d *Dispatcher) Dispatch(event ReconcileEvent) {
	d.mu.RLock()
	subscriptions := append([]subscription(nil), d.subscriptions...)
	d.mu.RUnlock()

	for _, sub := range subscriptions {
		sub.listener(ReconcileEvent{
			Source:  event.Source,
			Records: models.CloneRecords(event.Records),
		})
	}
}
