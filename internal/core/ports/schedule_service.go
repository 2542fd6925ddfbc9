package ports

import (
	"context"

	"github.com/bookinglab/admin-portal/internal/core/domain"
)

// ScheduleService answers dependent-selection queries for the day → schedule
// dropdown. It is a read-only projection over the catalog.
type ScheduleService interface {
	// ListDays returns the parent options ordered by sort key then id.
	ListDays(ctx context.Context) ([]domain.Day, error)
	// ListByDay returns the schedules belonging to dayID ordered by sort key
	// then id. An empty or malformed dayID yields an empty slice and no error;
	// a storage failure surfaces wrapped in domain.ErrUnavailable and is never
	// converted to an empty result.
	ListByDay(ctx context.Context, dayID string) ([]domain.Schedule, error)
}
