package usecases

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"keygate.backend/internal/domain/entities"
	domainerrors "keygate.backend/internal/domain/errors"
	"keygate.backend/internal/domain/repositories"
	"keygate.backend/pkg/utils"
)

// monthLayout is the billing month format of the stats date parameter.
const monthLayout = "2006-01"

// UsageUsecase aggregates access logs into usage statistics and paginated
// log listings.
type UsageUsecase struct {
	keyRepo repositories.PersonalKeyRepository
	logRepo repositories.AccessLogRepository
}

func NewUsageUsecase(keyRepo repositories.PersonalKeyRepository, logRepo repositories.AccessLogRepository) *UsageUsecase {
	return &UsageUsecase{
		keyRepo: keyRepo,
		logRepo: logRepo,
	}
}

// Stats reports quota utilization and per-day counts for one billing month.
// date is YYYY-MM; empty defaults to the current month.
func (u *UsageUsecase) Stats(ctx context.Context, userID, keyID uuid.UUID, date string) (*entities.UsageStats, error) {
	key, err := u.keyRepo.FindScoped(ctx, userID, keyID)
	if err != nil {
		return nil, repoError(err)
	}

	now := timeNow()
	if date == "" {
		date = now.Format(monthLayout)
	}
	month, err := time.Parse(monthLayout, date)
	if err != nil {
		return nil, domainerrors.Validation("date must be a valid YYYY-MM month")
	}

	// For the current month, report through today; for any other month,
	// through its final calendar day.
	lastDay := daysInMonth(month.Year(), month.Month())
	if month.Year() == now.Year() && month.Month() == now.Month() {
		lastDay = now.Day()
	}

	totalCount, err := u.logRepo.CountByMonth(ctx, keyID, month.Year(), month.Month())
	if err != nil {
		return nil, domainerrors.Internal(err)
	}
	perDay, err := u.logRepo.CountPerDay(ctx, keyID, month.Year(), month.Month())
	if err != nil {
		return nil, domainerrors.Internal(err)
	}

	details := make([]entities.DayCount, 0, lastDay)
	for day := 1; day <= lastDay; day++ {
		details = append(details, entities.DayCount{
			Date:  fmt.Sprintf("%s-%02d", month.Format(monthLayout), day),
			Count: perDay[day],
		})
	}

	usage := entities.UsageView{Current: totalCount}
	if key.MaxCount != -1 {
		maxCount := key.MaxCount
		usage.Max = &maxCount
		if maxCount > 0 {
			percent := math.Round(float64(totalCount)*100/float64(maxCount)*100) / 100
			usage.Percent = &percent
		}
	}

	return &entities.UsageStats{
		Usage:   usage,
		Details: details,
	}, nil
}

// Logs returns one page of a key's access log, newest entries first.
func (u *UsageUsecase) Logs(ctx context.Context, userID, keyID uuid.UUID, page int) (*entities.AccessLogPage, error) {
	if _, err := u.keyRepo.FindScoped(ctx, userID, keyID); err != nil {
		return nil, repoError(err)
	}

	params := utils.GetPaginationParams(page, utils.DefaultLogPageSize)
	entries, totalCount, err := u.logRepo.FindPageByKey(ctx, keyID, params)
	if err != nil {
		return nil, domainerrors.Internal(err)
	}

	items := make([]*entities.AccessLogView, 0, len(entries))
	for _, entry := range entries {
		items = append(items, entities.NewAccessLogView(entry))
	}

	return &entities.AccessLogPage{
		Pagination: utils.CalculateMeta(totalCount, params.Page, params.Limit),
		Items:      items,
	}, nil
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
