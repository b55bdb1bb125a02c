package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"keygate.backend/internal/domain/entities"
	domainerrors "keygate.backend/internal/domain/errors"
	"keygate.backend/internal/infrastructure/models"
)

// AccessKeyRepository implements operator access key data operations
type AccessKeyRepository struct {
	db *gorm.DB
}

// NewAccessKeyRepository creates a new access key repository
func NewAccessKeyRepository(db *gorm.DB) *AccessKeyRepository {
	return &AccessKeyRepository{db: db}
}

// Create persists a new access key
func (r *AccessKeyRepository) Create(ctx context.Context, key *entities.AccessKey) error {
	permissions, err := json.Marshal(key.Permissions)
	if err != nil {
		return err
	}
	whitelist, err := json.Marshal(key.WhitelistRange)
	if err != nil {
		return err
	}

	m := &models.AccessKey{
		ID:             key.ID,
		Token:          key.Token,
		Permissions:    string(permissions),
		WhitelistRange: string(whitelist),
		RateLimit:      key.RateLimit,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}

	key.ID = m.ID
	key.CreatedAt = m.CreatedAt
	key.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByToken resolves a bearer token to its access key
func (r *AccessKeyRepository) FindByToken(ctx context.Context, token string) (*entities.AccessKey, error) {
	var m models.AccessKey
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	var permissions []string
	if err := json.Unmarshal([]byte(m.Permissions), &permissions); err != nil {
		return nil, err
	}
	var whitelist []string
	if err := json.Unmarshal([]byte(m.WhitelistRange), &whitelist); err != nil {
		return nil, err
	}

	return &entities.AccessKey{
		ID:             m.ID,
		Token:          m.Token,
		Permissions:    permissions,
		WhitelistRange: whitelist,
		RateLimit:      m.RateLimit,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}
