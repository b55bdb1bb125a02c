package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"keygate.backend/internal/domain/entities"
	"keygate.backend/pkg/utils"
)

// AccessLogRepository reads and aggregates access log entries. Create exists
// for the upstream ingestion collaborator; this service otherwise only reads.
type AccessLogRepository interface {
	Create(ctx context.Context, entry *entities.AccessLogEntry) error
	// FindPageByKey returns one page of a key's entries, newest first, and
	// the total entry count.
	FindPageByKey(ctx context.Context, keyID uuid.UUID, p utils.PaginationParams) ([]*entities.AccessLogEntry, int64, error)
	// CountByMonth counts a key's entries whose created_at falls in the
	// given calendar month.
	CountByMonth(ctx context.Context, keyID uuid.UUID, year int, month time.Month) (int64, error)
	// CountPerDay buckets the same range by day of month.
	CountPerDay(ctx context.Context, keyID uuid.UUID, year int, month time.Month) (map[int]int64, error)
}
