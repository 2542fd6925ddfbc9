package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/bookinglab/admin-portal/internal/core/domain"
	"github.com/bookinglab/admin-portal/internal/core/ports"
)

// ScheduleService serves the day → schedule dependent queries. All operations
// are read-only projections over the catalog repository.
type ScheduleService struct {
	repo   ports.ScheduleRepository
	logger zerolog.Logger
}

func NewScheduleService(repo ports.ScheduleRepository, logger zerolog.Logger) *ScheduleService {
	return &ScheduleService{repo: repo, logger: logger}
}

// ListDays returns the parent options for the dropdown, ordered by sort key
// then id.
func (s *ScheduleService) ListDays(ctx context.Context) ([]domain.Day, error) {
	days, err := s.repo.ListDays(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("day listing failed")
		return nil, fmt.Errorf("list days: %w", domain.ErrUnavailable)
	}

	sort.Slice(days, func(i, j int) bool {
		if days[i].SortOrder != days[j].SortOrder {
			return days[i].SortOrder < days[j].SortOrder
		}
		return days[i].ID < days[j].ID
	})
	return days, nil
}

// ListByDay returns every schedule belonging to dayID, ordered by sort key then
// id. A dropdown with no selection sends an empty or malformed id; that is a
// benign empty result, not an error, and never reaches the repository. A
// repository failure is surfaced as ErrUnavailable so callers can tell "no
// schedules today" from "could not read".
func (s *ScheduleService) ListByDay(ctx context.Context, dayID string) ([]domain.Schedule, error) {
	if !domain.ValidID(dayID) {
		return []domain.Schedule{}, nil
	}

	schedules, err := s.repo.ListByDay(ctx, dayID)
	if err != nil {
		s.logger.Error().Err(err).Str("day_id", dayID).Msg("schedule listing failed")
		return nil, fmt.Errorf("list schedules for %s: %w", dayID, domain.ErrUnavailable)
	}

	sort.Slice(schedules, func(i, j int) bool {
		if schedules[i].SortOrder != schedules[j].SortOrder {
			return schedules[i].SortOrder < schedules[j].SortOrder
		}
		return schedules[i].ID < schedules[j].ID
	})

	if schedules == nil {
		schedules = []domain.Schedule{}
	}
	return schedules, nil
}
