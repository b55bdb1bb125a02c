package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"keygate.backend/internal/domain/entities"
	"keygate.backend/pkg/utils"
)

type MockPersonalKeyRepository struct {
	mock.Mock
}

func (m *MockPersonalKeyRepository) Create(ctx context.Context, key *entities.PersonalKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockPersonalKeyRepository) FindScoped(ctx context.Context, userID, keyID uuid.UUID) (*entities.PersonalKey, error) {
	args := m.Called(ctx, userID, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PersonalKey), args.Error(1)
}

func (m *MockPersonalKeyRepository) FindByOwner(ctx context.Context, userID uuid.UUID) ([]*entities.PersonalKey, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PersonalKey), args.Error(1)
}

func (m *MockPersonalKeyRepository) Update(ctx context.Context, key *entities.PersonalKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockPersonalKeyRepository) ResetCredential(ctx context.Context, userID, keyID uuid.UUID, publicPart, secretHash, secretSalt string) (*entities.PersonalKey, error) {
	args := m.Called(ctx, userID, keyID, publicPart, secretHash, secretSalt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PersonalKey), args.Error(1)
}

func (m *MockPersonalKeyRepository) Delete(ctx context.Context, userID, keyID uuid.UUID) error {
	args := m.Called(ctx, userID, keyID)
	return args.Error(0)
}

type MockAccessLogRepository struct {
	mock.Mock
}

func (m *MockAccessLogRepository) Create(ctx context.Context, entry *entities.AccessLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAccessLogRepository) FindPageByKey(ctx context.Context, keyID uuid.UUID, p utils.PaginationParams) ([]*entities.AccessLogEntry, int64, error) {
	args := m.Called(ctx, keyID, p)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entities.AccessLogEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccessLogRepository) CountByMonth(ctx context.Context, keyID uuid.UUID, year int, month time.Month) (int64, error) {
	args := m.Called(ctx, keyID, year, month)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccessLogRepository) CountPerDay(ctx context.Context, keyID uuid.UUID, year int, month time.Month) (map[int]int64, error) {
	args := m.Called(ctx, keyID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]int64), args.Error(1)
}
