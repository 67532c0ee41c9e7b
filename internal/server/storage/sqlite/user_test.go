package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/notekeeper/internal/models"
	"github.com/iudanet/notekeeper/internal/server/storage"
)

func testIdentity(subject string) *models.UserIdentity {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &models.UserIdentity{
		Provider:    "google",
		Subject:     subject,
		UserID:      subject,
		Email:       "ada@example.com",
		DisplayName: "Ada",
		CreatedAt:   now,
		LastSeenAt:  now,
	}
}

func TestUserStorage_CreateAndGetIdentity(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	identity := testIdentity("sub-1")
	require.NoError(t, s.CreateIdentity(ctx, identity))

	got, err := s.GetIdentity(ctx, "google", "sub-1")
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestUserStorage_CreateIdentity_Duplicate(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.CreateIdentity(ctx, testIdentity("sub-1")))
	err := s.CreateIdentity(ctx, testIdentity("sub-1"))
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)

	// Тот же subject у другого провайдера - другая учетная запись
	other := testIdentity("sub-1")
	other.Provider = "github"
	assert.NoError(t, s.CreateIdentity(ctx, other))
}

func TestUserStorage_GetIdentity_NotFound(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.GetIdentity(context.Background(), "google", "missing")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUserStorage_TouchIdentity(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.CreateIdentity(ctx, testIdentity("sub-1")))

	seen := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name        string
		email       string
		displayName string
		wantEmail   string
		wantName    string
	}{
		{name: "empty values keep stored profile", wantEmail: "ada@example.com", wantName: "Ada"},
		{name: "new email", email: "ada@lovelace.dev", wantEmail: "ada@lovelace.dev", wantName: "Ada"},
		{name: "new display name", displayName: "Ada L.", wantEmail: "ada@lovelace.dev", wantName: "Ada L."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, s.TouchIdentity(ctx, "google", "sub-1", tt.email, tt.displayName, seen))

			got, err := s.GetIdentity(ctx, "google", "sub-1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantEmail, got.Email)
			assert.Equal(t, tt.wantName, got.DisplayName)
			assert.Equal(t, seen, got.LastSeenAt)
		})
	}
}

func TestUserStorage_TouchIdentity_NotFound(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.TouchIdentity(context.Background(), "google", "missing", "", "", time.Now())
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}
