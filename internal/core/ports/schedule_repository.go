package ports

import (
	"context"

	"github.com/bookinglab/admin-portal/internal/core/domain"
)

// ScheduleRepository defines read-only access to the day/schedule catalog.
type ScheduleRepository interface {
	// ListDays returns every day in the catalog, in storage order.
	ListDays(ctx context.Context) ([]domain.Day, error)
	// ListByDay returns every schedule whose day reference equals dayID,
	// in storage order. An unknown dayID yields an empty slice, not an error.
	ListByDay(ctx context.Context, dayID string) ([]domain.Schedule, error)
}
