package storage

import (
	"context"
	"time"

	"github.com/iudanet/notekeeper/internal/models"
)

// UserStorage defines interface for user identity persistence
type UserStorage interface {
	// GetIdentity retrieves identity by provider and subject
	// Returns ErrUserNotFound if the subject was never seen
	GetIdentity(ctx context.Context, provider, subject string) (*models.UserIdentity, error)

	// CreateIdentity links a provider subject to a canonical user id
	// Returns ErrUserAlreadyExists if the subject is already linked
	CreateIdentity(ctx context.Context, identity *models.UserIdentity) error

	// TouchIdentity updates profile fields and the last seen timestamp
	// Empty email or display name keep the stored value
	// Returns ErrUserNotFound if identity doesn't exist
	TouchIdentity(ctx context.Context, provider, subject, email, displayName string, seenAt time.Time) error
}
