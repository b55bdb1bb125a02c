package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"keygate.backend/internal/domain/entities"
	domainerrors "keygate.backend/internal/domain/errors"
	"keygate.backend/internal/domain/repositories"
	"keygate.backend/pkg/credentials"
	"keygate.backend/pkg/ipfilter"
)

var (
	generateCredential = credentials.Generate
	hashSecret         = credentials.Hash
	timeNow            = time.Now
)

// updateDateLayout is the only accepted format for date fields on update.
// Values that fail it are silently ignored, matching the lenient update
// contract; whitelist errors, in contrast, reject the whole request.
const updateDateLayout = "2006-01-02 15:04:05"

// PersonalKeyUsecase owns the personal key lifecycle.
type PersonalKeyUsecase struct {
	keyRepo repositories.PersonalKeyRepository
}

func NewPersonalKeyUsecase(keyRepo repositories.PersonalKeyRepository) *PersonalKeyUsecase {
	return &PersonalKeyUsecase{keyRepo: keyRepo}
}

// Issue creates a new personal key. The returned view is the only place the
// plaintext credential ever appears.
func (u *PersonalKeyUsecase) Issue(ctx context.Context, input *entities.CreatePersonalKeyInput) (*entities.PersonalKeyView, error) {
	if err := validateWhitelist(input.WhitelistRange); err != nil {
		return nil, err
	}

	monthlyUsage := *input.MonthlyUsage
	if monthlyUsage < -1 {
		return nil, domainerrors.Validation("monthly usage must be -1 or a non-negative integer")
	}
	hours := *input.Hours
	if hours < -1 {
		return nil, domainerrors.Validation("hours must be -1 or a non-negative integer")
	}

	publicPart, secretPlain, err := generateCredential()
	if err != nil {
		return nil, domainerrors.Internal(err)
	}
	secretHash, secretSalt, err := hashSecret(secretPlain)
	if err != nil {
		return nil, domainerrors.Internal(err)
	}

	now := timeNow()
	key := &entities.PersonalKey{
		UserID:         input.UserID,
		Key:            publicPart,
		SecretHash:     secretHash,
		SecretSalt:     secretSalt,
		MaxCount:       monthlyUsage,
		Permissions:    input.Permissions,
		WhitelistRange: input.WhitelistRange,
		ActivatedAt:    now,
	}
	if hours != entities.NeverExpires {
		expiresAt := now.Add(time.Duration(hours) * time.Hour)
		key.ExpiresAt = &expiresAt
	}

	if err := u.keyRepo.Create(ctx, key); err != nil {
		return nil, repoError(err)
	}

	return entities.NewPersonalKeyView(key, publicPart+secretPlain), nil
}

// Update applies the fields present in the input; everything else stays
// untouched. With no mutating field present it degenerates to a read.
func (u *PersonalKeyUsecase) Update(ctx context.Context, userID, keyID uuid.UUID, input *entities.UpdatePersonalKeyInput) (*entities.PersonalKeyView, error) {
	key, err := u.keyRepo.FindScoped(ctx, userID, keyID)
	if err != nil {
		return nil, repoError(err)
	}

	if input.Empty() {
		return entities.NewPersonalKeyView(key, ""), nil
	}

	if input.MonthlyUsage.Valid {
		if input.MonthlyUsage.Int64 < -1 {
			return nil, domainerrors.Validation("monthly usage must be -1 or a non-negative integer")
		}
		key.MaxCount = input.MonthlyUsage.Int64
	}

	if input.Permissions != nil {
		key.Permissions = *input.Permissions
	}

	if input.WhitelistRange != nil {
		if err := validateWhitelist(*input.WhitelistRange); err != nil {
			return nil, err
		}
		key.WhitelistRange = *input.WhitelistRange
	}

	if input.ActivatedAt.Valid {
		if t, ok := parseUpdateDate(input.ActivatedAt.String); ok {
			key.ActivatedAt = t
		}
	}

	if input.ExpiresAt.Valid {
		if input.ExpiresAt.String == "-1" {
			key.ExpiresAt = nil
		} else if t, ok := parseUpdateDate(input.ExpiresAt.String); ok {
			key.ExpiresAt = &t
		}
	}

	if err := u.keyRepo.Update(ctx, key); err != nil {
		return nil, repoError(err)
	}

	return entities.NewPersonalKeyView(key, ""), nil
}

// Reset replaces the credential pair; the old credential is permanently
// invalid the moment this returns.
func (u *PersonalKeyUsecase) Reset(ctx context.Context, userID, keyID uuid.UUID) (*entities.PersonalKeyView, error) {
	publicPart, secretPlain, err := generateCredential()
	if err != nil {
		return nil, domainerrors.Internal(err)
	}
	secretHash, secretSalt, err := hashSecret(secretPlain)
	if err != nil {
		return nil, domainerrors.Internal(err)
	}

	key, err := u.keyRepo.ResetCredential(ctx, userID, keyID, publicPart, secretHash, secretSalt)
	if err != nil {
		return nil, repoError(err)
	}

	return entities.NewPersonalKeyView(key, publicPart+secretPlain), nil
}

// Delete removes the scoped key and all of its log entries.
func (u *PersonalKeyUsecase) Delete(ctx context.Context, userID, keyID uuid.UUID) error {
	if err := u.keyRepo.Delete(ctx, userID, keyID); err != nil {
		return repoError(err)
	}
	return nil
}

// Get returns a single scoped key.
func (u *PersonalKeyUsecase) Get(ctx context.Context, userID, keyID uuid.UUID) (*entities.PersonalKeyView, error) {
	key, err := u.keyRepo.FindScoped(ctx, userID, keyID)
	if err != nil {
		return nil, repoError(err)
	}
	return entities.NewPersonalKeyView(key, ""), nil
}

// List returns every key of an owner.
func (u *PersonalKeyUsecase) List(ctx context.Context, userID uuid.UUID) ([]*entities.PersonalKeyView, error) {
	keys, err := u.keyRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, repoError(err)
	}

	views := make([]*entities.PersonalKeyView, 0, len(keys))
	for _, key := range keys {
		views = append(views, entities.NewPersonalKeyView(key, ""))
	}
	return views, nil
}

// Helpers

func validateWhitelist(ranges []string) error {
	for _, entry := range ranges {
		if !ipfilter.Valid(entry) {
			return domainerrors.Validation(fmt.Sprintf("IP %s in the whitelist range field is invalid.", entry))
		}
	}
	return nil
}

func parseUpdateDate(value string) (time.Time, bool) {
	t, err := time.Parse(updateDateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// repoError maps persistence errors onto the API error kinds. Persistence
// failures are surfaced, never retried here: a retried credential mutation
// could duplicate its effect.
func repoError(err error) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound()
	}
	return domainerrors.Internal(err)
}
