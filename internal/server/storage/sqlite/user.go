package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/notekeeper/internal/models"
	"github.com/iudanet/notekeeper/internal/server/storage"
)

// GetIdentity retrieves identity by provider and subject
func (s *Storage) GetIdentity(ctx context.Context, provider, subject string) (*models.UserIdentity, error) {
	query := `
		SELECT provider, subject, user_id, email, display_name, created_at, last_seen_at
		FROM user_identities
		WHERE provider = ? AND subject = ?
	`

	identity := &models.UserIdentity{}
	var createdAt, lastSeenAt int64

	err := s.db.QueryRowContext(ctx, query, provider, subject).Scan(
		&identity.Provider,
		&identity.Subject,
		&identity.UserID,
		&identity.Email,
		&identity.DisplayName,
		&createdAt,
		&lastSeenAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	identity.CreatedAt = time.Unix(createdAt, 0).UTC()
	identity.LastSeenAt = time.Unix(lastSeenAt, 0).UTC()

	return identity, nil
}

// CreateIdentity links a provider subject to a canonical user id
func (s *Storage) CreateIdentity(ctx context.Context, identity *models.UserIdentity) error {
	query := `
		INSERT INTO user_identities (provider, subject, user_id, email, display_name, created_at, last_seen_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		identity.Provider,
		identity.Subject,
		identity.UserID,
		identity.Email,
		identity.DisplayName,
		identity.CreatedAt.Unix(),
		identity.LastSeenAt.Unix(),
	)

	if err != nil {
		// Проверяем на повторную привязку того же subject
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert identity: %w", err)
	}

	return nil
}

// TouchIdentity updates profile fields and the last seen timestamp
func (s *Storage) TouchIdentity(ctx context.Context, provider, subject, email, displayName string, seenAt time.Time) error {
	query := `
		UPDATE user_identities
		SET email = CASE WHEN ? <> '' THEN ? ELSE email END,
		    display_name = CASE WHEN ? <> '' THEN ? ELSE display_name END,
		    last_seen_at = ?
		WHERE provider = ? AND subject = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		email, email,
		displayName, displayName,
		seenAt.Unix(),
		provider, subject,
	)

	if err != nil {
		return fmt.Errorf("failed to update identity: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}
