package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"keygate.backend/internal/domain/entities"
	"keygate.backend/pkg/utils"
)

func seedLog(t *testing.T, repo *AccessLogRepository, keyID uuid.UUID, createdAt time.Time) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &entities.AccessLogEntry{
		KeyID:       keyID,
		RequestID:   uuid.NewString(),
		RequestInfo: map[string]interface{}{"method": "GET", "path": "/example"},
		AccessIP:    "10.0.0.1",
		CreatedAt:   createdAt,
	}))
}

func TestAccessLogRepo_FindPageByKey(t *testing.T) {
	db := newTestDB(t)
	createLogTable(t, db)
	repo := NewAccessLogRepository(db)

	keyID := uuid.New()
	base := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		seedLog(t, repo, keyID, base.Add(time.Duration(i)*time.Minute))
	}
	// Another key's entries never bleed into the page.
	seedLog(t, repo, uuid.New(), base)

	page, total, err := repo.FindPageByKey(context.Background(), keyID, utils.GetPaginationParams(1, 25))
	require.NoError(t, err)
	assert.Equal(t, int64(30), total)
	require.Len(t, page, 25)

	// Newest first.
	for i := 1; i < len(page); i++ {
		assert.False(t, page[i].CreatedAt.After(page[i-1].CreatedAt))
	}
	assert.Equal(t, map[string]interface{}{"method": "GET", "path": "/example"}, page[0].RequestInfo)

	page2, _, err := repo.FindPageByKey(context.Background(), keyID, utils.GetPaginationParams(2, 25))
	require.NoError(t, err)
	assert.Len(t, page2, 5)
}

func TestAccessLogRepo_CountByMonth(t *testing.T) {
	db := newTestDB(t)
	createLogTable(t, db)
	repo := NewAccessLogRepository(db)

	keyID := uuid.New()
	seedLog(t, repo, keyID, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC))
	seedLog(t, repo, keyID, time.Date(2026, time.February, 28, 23, 59, 59, 0, time.UTC))
	seedLog(t, repo, keyID, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	seedLog(t, repo, keyID, time.Date(2026, time.January, 31, 23, 59, 59, 0, time.UTC))

	count, err := repo.CountByMonth(context.Background(), keyID, 2026, time.February)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByMonth(context.Background(), keyID, 2026, time.April)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAccessLogRepo_CountPerDay(t *testing.T) {
	db := newTestDB(t)
	createLogTable(t, db)
	repo := NewAccessLogRepository(db)

	keyID := uuid.New()
	for i := 0; i < 3; i++ {
		seedLog(t, repo, keyID, time.Date(2026, time.March, 3, 10, i, 0, 0, time.UTC))
	}
	seedLog(t, repo, keyID, time.Date(2026, time.March, 17, 8, 0, 0, 0, time.UTC))
	seedLog(t, repo, keyID, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC))

	counts, err := repo.CountPerDay(context.Background(), keyID, 2026, time.March)
	require.NoError(t, err)

	assert.Equal(t, int64(3), counts[3])
	assert.Equal(t, int64(1), counts[17])
	_, hasDay1 := counts[1]
	assert.False(t, hasDay1, "days without traffic stay absent from the raw buckets")
	assert.Len(t, counts, 2)
}

func TestAccessLogRepo_CreateAssignsID(t *testing.T) {
	db := newTestDB(t)
	createLogTable(t, db)
	repo := NewAccessLogRepository(db)

	entry := &entities.AccessLogEntry{
		KeyID:     uuid.New(),
		RequestID: "req-1",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.NotEqual(t, uuid.Nil, entry.ID)

	var stored string
	require.NoError(t, db.Table("logs").Where("id = ?", entry.ID).Pluck("request_id", &stored).Error)
	assert.Equal(t, "req-1", stored)
}

func TestAccessLogRepo_PaginationMetaShape(t *testing.T) {
	// 26 entries at 25 per page gives 2 pages.
	db := newTestDB(t)
	createLogTable(t, db)
	repo := NewAccessLogRepository(db)

	keyID := uuid.New()
	base := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 26; i++ {
		seedLog(t, repo, keyID, base.Add(time.Duration(i)*time.Second))
	}

	_, total, err := repo.FindPageByKey(context.Background(), keyID, utils.GetPaginationParams(1, 25))
	require.NoError(t, err)

	meta := utils.CalculateMeta(total, 1, 25)
	assert.Equal(t, fmt.Sprintf("%d", 2), fmt.Sprintf("%d", meta.Total))
	assert.Equal(t, 25, meta.PerPage)
	assert.Equal(t, 1, meta.Current)
}
