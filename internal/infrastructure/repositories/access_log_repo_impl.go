package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"keygate.backend/internal/domain/entities"
	"keygate.backend/internal/infrastructure/models"
	"keygate.backend/pkg/utils"
)

// AccessLogRepository implements access log reads and aggregation
type AccessLogRepository struct {
	db *gorm.DB
}

// NewAccessLogRepository creates a new access log repository
func NewAccessLogRepository(db *gorm.DB) *AccessLogRepository {
	return &AccessLogRepository{db: db}
}

// Create appends one log entry. Used by the ingestion collaborator.
func (r *AccessLogRepository) Create(ctx context.Context, entry *entities.AccessLogEntry) error {
	info, err := json.Marshal(entry.RequestInfo)
	if err != nil {
		return err
	}

	m := &models.AccessLog{
		ID:          entry.ID,
		KeyID:       entry.KeyID,
		RequestID:   entry.RequestID,
		RequestInfo: string(info),
		AccessIP:    entry.AccessIP,
		CreatedAt:   entry.CreatedAt,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}

	entry.ID = m.ID
	entry.CreatedAt = m.CreatedAt
	return nil
}

// FindPageByKey returns one page of a key's entries, newest first
func (r *AccessLogRepository) FindPageByKey(ctx context.Context, keyID uuid.UUID, p utils.PaginationParams) ([]*entities.AccessLogEntry, int64, error) {
	var totalCount int64
	query := r.db.WithContext(ctx).Model(&models.AccessLog{}).
		Where("key_id = ?", keyID)

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.AccessLog
	if err := query.Order("created_at DESC").
		Limit(p.Limit).
		Offset(p.CalculateOffset()).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*entities.AccessLogEntry, 0, len(ms))
	for _, m := range ms {
		model := m
		entry, err := r.toEntity(&model)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	return entries, totalCount, nil
}

// CountByMonth counts a key's entries within a calendar month
func (r *AccessLogRepository) CountByMonth(ctx context.Context, keyID uuid.UUID, year int, month time.Month) (int64, error) {
	start, end := monthRange(year, month)

	var count int64
	err := r.db.WithContext(ctx).Model(&models.AccessLog{}).
		Where("key_id = ? AND created_at >= ? AND created_at < ?", keyID, start, end).
		Count(&count).Error
	return count, err
}

// CountPerDay buckets a month's entries by day of month. Bucketing happens
// here rather than in SQL so postgres and the sqlite test databases agree.
func (r *AccessLogRepository) CountPerDay(ctx context.Context, keyID uuid.UUID, year int, month time.Month) (map[int]int64, error) {
	start, end := monthRange(year, month)

	var createdAts []time.Time
	if err := r.db.WithContext(ctx).Model(&models.AccessLog{}).
		Where("key_id = ? AND created_at >= ? AND created_at < ?", keyID, start, end).
		Pluck("created_at", &createdAts).Error; err != nil {
		return nil, err
	}

	counts := make(map[int]int64)
	for _, ts := range createdAts {
		counts[ts.Day()]++
	}
	return counts, nil
}

func monthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func (r *AccessLogRepository) toEntity(m *models.AccessLog) (*entities.AccessLogEntry, error) {
	var info map[string]interface{}
	if m.RequestInfo != "" {
		if err := json.Unmarshal([]byte(m.RequestInfo), &info); err != nil {
			return nil, err
		}
	}

	return &entities.AccessLogEntry{
		ID:          m.ID,
		KeyID:       m.KeyID,
		RequestID:   m.RequestID,
		RequestInfo: info,
		AccessIP:    m.AccessIP,
		CreatedAt:   m.CreatedAt,
	}, nil
}
