package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that no identity is linked to the provider subject
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that the provider subject is already linked
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrNoteNotFound indicates that the note was never synced by the user
	ErrNoteNotFound = errors.New("note not found")
)
