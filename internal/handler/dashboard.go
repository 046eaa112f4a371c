package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/renderatl/volunteer-checkin/internal/model"
    "github.com/renderatl/volunteer-checkin/internal/repository"
    "github.com/renderatl/volunteer-checkin/internal/workflow"
)

// DashboardHandler serves the admin dashboard's polled data. Responses
// sit behind the Redis response cache, so repeated polls within the
// cache TTL never reach the database.
type DashboardHandler struct {
    CheckIns  *repository.CheckInRepo
    Tasks     *repository.TaskRepo
    Schedules *repository.ScheduleRepo
    Traffic   *repository.TrafficRepo
}

func NewDashboardHandler(ci *repository.CheckInRepo, t *repository.TaskRepo, s *repository.ScheduleRepo, tr *repository.TrafficRepo) *DashboardHandler {
    if ci == nil || t == nil || s == nil || tr == nil {
        panic("nil repository passed to NewDashboardHandler")
    }
    return &DashboardHandler{CheckIns: ci, Tasks: t, Schedules: s, Traffic: tr}
}

type dashboardStats struct {
    Event          string                       `json:"event"`
    Date           string                       `json:"date"`
    CheckedIn      int                          `json:"checked_in"`
    CheckedOut     int                          `json:"checked_out"`
    Scheduled      int                          `json:"scheduled"`
    NoShows        int                          `json:"no_shows"`
    ActiveOnTask   int                          `json:"active_on_task"`
    CoverageRate   float64                      `json:"coverage_rate"`
    Overdue        []workflow.OverdueAssignment `json:"overdue"`
    OverdueBreaks  []workflow.BreakOverdue      `json:"overdue_breaks"`
    TrafficLevels  []model.TrafficLevel         `json:"traffic_levels"`
}

// Stats handles GET /v1/admin/dashboard/stats?event=X. It assembles the
// stat cards in one response: the day's check-in and check-out counts,
// scheduled headcount, no-shows, active task coverage, the overdue
// lists and the current traffic levels. No-shows are scheduled people
// with no check-in under their name, so walk-ins never mask an
// absentee.
func (h *DashboardHandler) Stats(c echo.Context) error {
    event := queryOr(c, "event", "")
    if event == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "event required"})
    }
    date := dateParam(c)

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    start, end := dayBoundsFor(date)
    now := time.Now().UTC()

    ins, err := h.CheckIns.ListForDay(ctx, event, model.StatusCheckedIn, start, end)
    if err != nil {
        return respondError(c, err)
    }
    checkedOut, err := h.CheckIns.CountForDay(ctx, event, model.StatusCheckedOut, start, end)
    if err != nil {
        return respondError(c, err)
    }
    roster, err := h.Schedules.ListForDate(ctx, event, date)
    if err != nil {
        return respondError(c, err)
    }
    open, err := h.Tasks.ListOpenByEvent(ctx, event)
    if err != nil {
        return respondError(c, err)
    }
    dayRows, err := h.Tasks.ListForDay(ctx, event, start, end)
    if err != nil {
        return respondError(c, err)
    }
    levels, err := h.Traffic.ListByEvent(ctx, event)
    if err != nil {
        return respondError(c, err)
    }

    stats := dashboardStats{
        Event:         event,
        Date:          date,
        CheckedIn:     len(ins),
        CheckedOut:    checkedOut,
        Scheduled:     len(roster),
        NoShows:       len(workflow.NoShows(roster, ins)),
        ActiveOnTask:  len(open),
        Overdue:       workflow.OverdueAssignments(open, now),
        OverdueBreaks: workflow.OverdueBreaks(dayRows, now),
        TrafficLevels: levels,
    }
    if len(roster) > 0 {
        stats.CoverageRate = float64(len(open)) / float64(len(roster)) * 100
    }
    return c.JSON(http.StatusOK, stats)
}
