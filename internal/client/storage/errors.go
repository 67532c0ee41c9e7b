package storage

import "errors"

// Common client storage errors
var (
	// ErrNoteNotFound indicates that note was not found in the local store
	ErrNoteNotFound = errors.New("note not found")

	// ErrSessionNotFound indicates that no persisted session exists
	ErrSessionNotFound = errors.New("session not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
