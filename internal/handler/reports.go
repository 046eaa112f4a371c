package handler

import (
    "context"
    "net/http"
    "sort"

    "github.com/labstack/echo/v4"

    "github.com/renderatl/volunteer-checkin/internal/model"
    "github.com/renderatl/volunteer-checkin/internal/repository"
    "github.com/renderatl/volunteer-checkin/internal/workflow"
)

// ReportsHandler builds the end-of-day report admins export after an
// event: every check-in and check-out for the date, who was scheduled
// but never showed, and a per-task breakdown of the day's task records.
type ReportsHandler struct {
    CheckIns  *repository.CheckInRepo
    Tasks     *repository.TaskRepo
    Schedules *repository.ScheduleRepo
}

func NewReportsHandler(ci *repository.CheckInRepo, t *repository.TaskRepo, s *repository.ScheduleRepo) *ReportsHandler {
    if ci == nil || t == nil || s == nil {
        panic("nil repository passed to NewReportsHandler")
    }
    return &ReportsHandler{CheckIns: ci, Tasks: t, Schedules: s}
}

type taskBreakdown struct {
    Task    string                    `json:"task"`
    Records []model.TaskCheckinRecord `json:"records"`
}

type dailyReport struct {
    Event     string                     `json:"event"`
    Date      string                     `json:"date"`
    CheckIns  []model.CheckInEvent       `json:"check_ins"`
    CheckOuts []model.CheckInEvent       `json:"check_outs"`
    NoShows   []model.ScheduledVolunteer `json:"no_shows"`
    Tasks     []taskBreakdown            `json:"tasks"`
}

// Daily handles GET /v1/admin/reports/daily?event=X&date=YYYY-MM-DD.
// The date defaults to today so the end-of-day export needs no
// parameters, but any past date can be replayed.
func (h *ReportsHandler) Daily(c echo.Context) error {
    event := queryOr(c, "event", "")
    if event == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "event required"})
    }
    date := dateParam(c)

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    start, end := dayBoundsFor(date)

    ins, err := h.CheckIns.ListForDay(ctx, event, model.StatusCheckedIn, start, end)
    if err != nil {
        return respondError(c, err)
    }
    outs, err := h.CheckIns.ListForDay(ctx, event, model.StatusCheckedOut, start, end)
    if err != nil {
        return respondError(c, err)
    }
    roster, err := h.Schedules.ListForDate(ctx, event, date)
    if err != nil {
        return respondError(c, err)
    }
    rows, err := h.Tasks.ListForDay(ctx, event, start, end)
    if err != nil {
        return respondError(c, err)
    }

    byTask := map[string][]model.TaskCheckinRecord{}
    for _, r := range rows {
        byTask[r.Task] = append(byTask[r.Task], r)
    }
    tasks := make([]taskBreakdown, 0, len(byTask))
    for name, recs := range byTask {
        sort.Slice(recs, func(i, j int) bool { return recs[i].CheckinTime.Before(recs[j].CheckinTime) })
        tasks = append(tasks, taskBreakdown{Task: name, Records: recs})
    }
    sort.Slice(tasks, func(i, j int) bool { return tasks[i].Task < tasks[j].Task })

    return c.JSON(http.StatusOK, dailyReport{
        Event:     event,
        Date:      date,
        CheckIns:  ins,
        CheckOuts: outs,
        NoShows:   workflow.NoShows(roster, ins),
        Tasks:     tasks,
    })
}
