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

// PersonalKeyRepository implements personal key data operations
type PersonalKeyRepository struct {
	db *gorm.DB
}

// NewPersonalKeyRepository creates a new personal key repository
func NewPersonalKeyRepository(db *gorm.DB) *PersonalKeyRepository {
	return &PersonalKeyRepository{db: db}
}

// Create persists a new personal key
func (r *PersonalKeyRepository) Create(ctx context.Context, key *entities.PersonalKey) error {
	m, err := r.toModel(key)
	if err != nil {
		return err
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}

	created, err := r.toEntity(m)
	if err != nil {
		return err
	}
	*key = *created
	return nil
}

// FindScoped gets a key by ID filtered by owner. A key under a different
// owner is indistinguishable from a nonexistent one.
func (r *PersonalKeyRepository) FindScoped(ctx context.Context, userID, keyID uuid.UUID) (*entities.PersonalKey, error) {
	var m models.PersonalKey
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", keyID, userID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// FindByOwner gets all keys for an owner
func (r *PersonalKeyRepository) FindByOwner(ctx context.Context, userID uuid.UUID) ([]*entities.PersonalKey, error) {
	var ms []models.PersonalKey
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	keys := make([]*entities.PersonalKey, 0, len(ms))
	for _, m := range ms {
		model := m
		key, err := r.toEntity(&model)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Update saves the mutable fields of an existing key
func (r *PersonalKeyRepository) Update(ctx context.Context, key *entities.PersonalKey) error {
	m, err := r.toModel(key)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&models.PersonalKey{}).
		Where("id = ? AND user_id = ?", m.ID, m.UserID).
		Updates(map[string]interface{}{
			"max_count":       m.MaxCount,
			"permissions":     m.Permissions,
			"whitelist_range": m.WhitelistRange,
			"activated_at":    m.ActivatedAt,
			"expires_at":      m.ExpiresAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}

	refreshed, err := r.FindScoped(ctx, key.UserID, key.ID)
	if err != nil {
		return err
	}
	*key = *refreshed
	return nil
}

// ResetCredential atomically replaces the credential triple of the scoped
// key. The single UPDATE statement acts as the compare-and-swap: concurrent
// resets serialize at the row and each one fully replaces a consistent prior
// state.
func (r *PersonalKeyRepository) ResetCredential(ctx context.Context, userID, keyID uuid.UUID, publicPart, secretHash, secretSalt string) (*entities.PersonalKey, error) {
	res := r.db.WithContext(ctx).Model(&models.PersonalKey{}).
		Where("id = ? AND user_id = ?", keyID, userID).
		Updates(map[string]interface{}{
			"key":         publicPart,
			"secret":      secretHash,
			"secret_salt": secretSalt,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}

	return r.FindScoped(ctx, userID, keyID)
}

// Delete hard-deletes the scoped key and cascades to its log entries
func (r *PersonalKeyRepository) Delete(ctx context.Context, userID, keyID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", keyID, userID).
			Delete(&models.PersonalKey{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainerrors.ErrNotFound
		}

		return tx.Where("key_id = ?", keyID).Delete(&models.AccessLog{}).Error
	})
}

func (r *PersonalKeyRepository) toModel(key *entities.PersonalKey) (*models.PersonalKey, error) {
	permissions, err := json.Marshal(key.Permissions)
	if err != nil {
		return nil, err
	}
	whitelist, err := json.Marshal(key.WhitelistRange)
	if err != nil {
		return nil, err
	}

	return &models.PersonalKey{
		ID:             key.ID,
		UserID:         key.UserID,
		Key:            key.Key,
		Secret:         key.SecretHash,
		SecretSalt:     key.SecretSalt,
		MaxCount:       key.MaxCount,
		Permissions:    string(permissions),
		WhitelistRange: string(whitelist),
		ActivatedAt:    key.ActivatedAt,
		ExpiresAt:      key.ExpiresAt,
		CreatedAt:      key.CreatedAt,
		UpdatedAt:      key.UpdatedAt,
	}, nil
}

func (r *PersonalKeyRepository) toEntity(m *models.PersonalKey) (*entities.PersonalKey, error) {
	var permissions []string
	if err := json.Unmarshal([]byte(m.Permissions), &permissions); err != nil {
		return nil, err
	}
	var whitelist []string
	if err := json.Unmarshal([]byte(m.WhitelistRange), &whitelist); err != nil {
		return nil, err
	}

	return &entities.PersonalKey{
		ID:             m.ID,
		UserID:         m.UserID,
		Key:            m.Key,
		SecretHash:     m.Secret,
		SecretSalt:     m.SecretSalt,
		MaxCount:       m.MaxCount,
		Permissions:    permissions,
		WhitelistRange: whitelist,
		ActivatedAt:    m.ActivatedAt,
		ExpiresAt:      m.ExpiresAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}
