package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookinglab/admin-portal/internal/api/metrics"
	"github.com/bookinglab/admin-portal/internal/core/domain"
	"github.com/bookinglab/admin-portal/internal/core/ports"
)

type ScheduleHandler struct {
	schedules ports.ScheduleService
}

func NewScheduleHandler(schedules ports.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

// Response-only types owned by the transport layer, kept separate from the
// domain so the JSON contract is not coupled to internal changes.

type dayResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type scheduleResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Time  string `json:"time"`
}

// ListDays returns the parent options for the day dropdown.
//
// @Summary      List days
// @Tags         schedules
// @Produce      json
// @Success      200  {array}  dayResponse
// @Failure      503  {object}  map[string]string
// @Router       /api/days [get]
func (h *ScheduleHandler) ListDays(c echo.Context) error {
	days, err := h.schedules.ListDays(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]dayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, dayResponse{ID: d.ID, Label: d.Label})
	}
	return c.JSON(http.StatusOK, out)
}

// ListSchedules returns the schedules for the selected day, ordered for direct
// rendering into the dependent dropdown. A missing or malformed day_id yields
// an empty array with 200, never an error: a dropdown with no selection is a
// normal state.
//
// @Summary      List schedules for a day
// @Tags         schedules
// @Produce      json
// @Param        day_id  query    string  false  "Parent day identifier"
// @Success      200  {array}  scheduleResponse
// @Failure      503  {object}  map[string]string
// @Router       /api/schedules [get]
func (h *ScheduleHandler) ListSchedules(c echo.Context) error {
	dayID := c.QueryParam("day_id")

	schedules, err := h.schedules.ListByDay(c.Request().Context(), dayID)
	if err != nil {
		metrics.ScheduleQueriesTotal.WithLabelValues("error").Inc()
		return err
	}

	if len(schedules) == 0 {
		metrics.ScheduleQueriesTotal.WithLabelValues("empty").Inc()
	} else {
		metrics.ScheduleQueriesTotal.WithLabelValues("ok").Inc()
	}

	return c.JSON(http.StatusOK, toScheduleResponses(schedules))
}

func toScheduleResponses(schedules []domain.Schedule) []scheduleResponse {
	out := make([]scheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, scheduleResponse{ID: s.ID, Label: s.Label, Time: s.Time})
	}
	return out
}
