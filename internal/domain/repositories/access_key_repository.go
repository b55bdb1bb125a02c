package repositories

import (
	"context"

	"keygate.backend/internal/domain/entities"
)

// AccessKeyRepository resolves operator bearer tokens for the admin surface.
type AccessKeyRepository interface {
	Create(ctx context.Context, key *entities.AccessKey) error
	FindByToken(ctx context.Context, token string) (*entities.AccessKey, error)
}
