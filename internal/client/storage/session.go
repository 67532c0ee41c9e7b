package storage

import "context"

// Session представляет сохраненную сессию пользователя на клиенте.
// AccessToken пустой, если токен истек и был сброшен.
type Session struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
	ExpiresAtMs int64  `json:"expires_at_ms"`
}

// HasToken reports whether the session still carries a backend token
func (s *Session) HasToken() bool {
	return s != nil && s.AccessToken != ""
}

// SessionStorage defines interface for the persisted session
type SessionStorage interface {
	// SaveSession stores the session, overwriting the previous one
	SaveSession(ctx context.Context, session *Session) error

	// GetSession retrieves the stored session
	// Returns ErrSessionNotFound if no session exists
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the stored session. Deleting a missing session is not an error
	DeleteSession(ctx context.Context) error
}
