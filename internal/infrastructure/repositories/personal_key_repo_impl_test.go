package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"keygate.backend/internal/domain/entities"
	domainerrors "keygate.backend/internal/domain/errors"
)

func seedPersonalKey(t *testing.T, repo *PersonalKeyRepository, userID uuid.UUID) *entities.PersonalKey {
	t.Helper()
	key := &entities.PersonalKey{
		UserID:         userID,
		Key:            "pub_" + uuid.NewString()[:8],
		SecretHash:     "hash",
		SecretSalt:     "salt",
		MaxCount:       100,
		Permissions:    []string{"data:read"},
		WhitelistRange: []string{"10.0.0.0/8"},
		ActivatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), key))
	return key
}

func TestPersonalKeyRepo_CreateAndFindScoped(t *testing.T) {
	db := newTestDB(t)
	createPersonalKeyTable(t, db)
	repo := NewPersonalKeyRepository(db)

	userID := uuid.New()
	key := seedPersonalKey(t, repo, userID)
	assert.NotEqual(t, uuid.Nil, key.ID)

	found, err := repo.FindScoped(context.Background(), userID, key.ID)
	require.NoError(t, err)
	assert.Equal(t, key.Key, found.Key)
	assert.Equal(t, []string{"data:read"}, found.Permissions)
	assert.Equal(t, []string{"10.0.0.0/8"}, found.WhitelistRange)
	assert.Nil(t, found.ExpiresAt)
}

func TestPersonalKeyRepo_ScopedLookupHidesOtherOwners(t *testing.T) {
	db := newTestDB(t)
	createPersonalKeyTable(t, db)
	repo := NewPersonalKeyRepository(db)

	key := seedPersonalKey(t, repo, uuid.New())

	_, err := repo.FindScoped(context.Background(), uuid.New(), key.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestPersonalKeyRepo_FindByOwner(t *testing.T) {
	db := newTestDB(t)
	createPersonalKeyTable(t, db)
	repo := NewPersonalKeyRepository(db)

	userID := uuid.New()
	seedPersonalKey(t, repo, userID)
	seedPersonalKey(t, repo, userID)
	seedPersonalKey(t, repo, uuid.New())

	keys, err := repo.FindByOwner(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	keys, err = repo.FindByOwner(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestPersonalKeyRepo_Update(t *testing.T) {
	db := newTestDB(t)
	createPersonalKeyTable(t, db)
	repo := NewPersonalKeyRepository(db)

	userID := uuid.New()
	key := seedPersonalKey(t, repo, userID)

	key.MaxCount = -1
	key.Permissions = []string{"*"}
	expiry := time.Now().UTC().Add(time.Hour)
	key.ExpiresAt = &expiry

	require.NoError(t, repo.Update(context.Background(), key))

	found, err := repo.FindScoped(context.Background(), userID, key.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), found.MaxCount)
	assert.Equal(t, []string{"*"}, found.Permissions)
	require.NotNil(t, found.ExpiresAt)
	assert.WithinDuration(t, expiry, *found.ExpiresAt, time.Second)

	// Clearing expiry persists NULL.
	key.ExpiresAt = nil
	require.NoError(t, repo.Update(context.Background(), key))
	found, err = repo.FindScoped(context.Background(), userID, key.ID)
	require.NoError(t, err)
	assert.Nil(t, found.ExpiresAt)
}

func TestPersonalKeyRepo_UpdateMissingKey(t *testing.T) {
	db := newTestDB(t)
	createPersonalKeyTable(t, db)
	repo := NewPersonalKeyRepository(db)

	key := &entities.PersonalKey{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		Permissions:    []string{},
		WhitelistRange: []string{},
	}
	err := repo.Update(context.Background(), key)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestPersonalKeyRepo_ResetCredential(t *testing.T) {
	db := newTestDB(t)
	createPersonalKeyTable(t, db)
	repo := NewPersonalKeyRepository(db)

	userID := uuid.New()
	key := seedPersonalKey(t, repo, userID)

	reset, err := repo.ResetCredential(context.Background(), userID, key.ID, "newpublic", "newhash", "newsalt")
	require.NoError(t, err)

	assert.Equal(t, key.ID, reset.ID)
	assert.Equal(t, "newpublic", reset.Key)
	assert.Equal(t, "newhash", reset.SecretHash)
	assert.Equal(t, "newsalt", reset.SecretSalt)
	// Everything else survives the reset.
	assert.Equal(t, key.UserID, reset.UserID)
	assert.Equal(t, key.MaxCount, reset.MaxCount)
	assert.Equal(t, key.Permissions, reset.Permissions)
	assert.Equal(t, key.WhitelistRange, reset.WhitelistRange)
}

func TestPersonalKeyRepo_ResetCredentialScoped(t *testing.T) {
	db := newTestDB(t)
	createPersonalKeyTable(t, db)
	repo := NewPersonalKeyRepository(db)

	key := seedPersonalKey(t, repo, uuid.New())

	_, err := repo.ResetCredential(context.Background(), uuid.New(), key.ID, "p", "h", "s")
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestPersonalKeyRepo_DeleteCascadesLogs(t *testing.T) {
	db := newTestDB(t)
	createPersonalKeyTable(t, db)
	createLogTable(t, db)
	repo := NewPersonalKeyRepository(db)
	logRepo := NewAccessLogRepository(db)

	userID := uuid.New()
	key := seedPersonalKey(t, repo, userID)

	for i := 0; i < 3; i++ {
		require.NoError(t, logRepo.Create(context.Background(), &entities.AccessLogEntry{
			KeyID:     key.ID,
			RequestID: uuid.NewString(),
			AccessIP:  "10.0.0.1",
			CreatedAt: time.Now().UTC(),
		}))
	}

	require.NoError(t, repo.Delete(context.Background(), userID, key.ID))

	_, err := repo.FindScoped(context.Background(), userID, key.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	var logCount int64
	require.NoError(t, db.Table("logs").Where("key_id = ?", key.ID).Count(&logCount).Error)
	assert.Zero(t, logCount)
}

func TestPersonalKeyRepo_DeleteMissingKey(t *testing.T) {
	db := newTestDB(t)
	createPersonalKeyTable(t, db)
	createLogTable(t, db)
	repo := NewPersonalKeyRepository(db)

	err := repo.Delete(context.Background(), uuid.New(), uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
