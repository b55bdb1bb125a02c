package repositories

import (
	"context"

	"github.com/google/uuid"
	"keygate.backend/internal/domain/entities"
)

// PersonalKeyRepository owns personal key persistence. Scoped lookups filter
// by owner: a key under a different owner is reported as not found.
type PersonalKeyRepository interface {
	Create(ctx context.Context, key *entities.PersonalKey) error
	FindScoped(ctx context.Context, userID, keyID uuid.UUID) (*entities.PersonalKey, error)
	FindByOwner(ctx context.Context, userID uuid.UUID) ([]*entities.PersonalKey, error)
	Update(ctx context.Context, key *entities.PersonalKey) error
	// ResetCredential atomically replaces the public part, secret hash and
	// salt of the scoped key and returns the refreshed record.
	ResetCredential(ctx context.Context, userID, keyID uuid.UUID, publicPart, secretHash, secretSalt string) (*entities.PersonalKey, error)
	// Delete hard-deletes the scoped key and cascades to its log entries.
	Delete(ctx context.Context, userID, keyID uuid.UUID) error
}
