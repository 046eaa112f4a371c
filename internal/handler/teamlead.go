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

// TeamLeadHandler serves the team lead's task page: who is on their
// task right now, how covered the shift is, who is late back from
// break and which alerts concern them.
type TeamLeadHandler struct {
    Tasks     *repository.TaskRepo
    Schedules *repository.ScheduleRepo
    Alerts    *repository.AlertRepo
}

func NewTeamLeadHandler(t *repository.TaskRepo, s *repository.ScheduleRepo, a *repository.AlertRepo) *TeamLeadHandler {
    if t == nil || s == nil || a == nil {
        panic("nil repository passed to NewTeamLeadHandler")
    }
    return &TeamLeadHandler{Tasks: t, Schedules: s, Alerts: a}
}

type teamLeadOverview struct {
    Task          string                    `json:"task"`
    Event         string                    `json:"event"`
    Active        []model.TaskCheckinRecord `json:"active"`
    ActiveCount   int                       `json:"active_count"`
    Scheduled     int                       `json:"scheduled"`
    CoverageRate  float64                   `json:"coverage_rate"`
    OverdueBreaks []workflow.BreakOverdue   `json:"overdue_breaks"`
    Alerts        []model.Alert             `json:"alerts"`
}

// Overview handles GET /v1/teamlead/overview. The task and event come
// from the verified session token, never from the query string, so a
// lead cannot browse another task's roster.
func (h *TeamLeadHandler) Overview(c echo.Context) error {
    id, ok := currentIdentity(c)
    if !ok || id.Task == "" {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "no task bound to this session"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    rows, err := h.Tasks.ListByTask(ctx, id.Task, id.Event)
    if err != nil {
        return respondError(c, err)
    }
    scheduled, err := h.Schedules.CountForTask(ctx, id.Task, id.Event, dateParam(c))
    if err != nil {
        return respondError(c, err)
    }
    alerts, err := h.Alerts.ListByEvent(ctx, id.Event)
    if err != nil {
        return respondError(c, err)
    }

    now := time.Now().UTC()
    active := make([]model.TaskCheckinRecord, 0)
    for _, r := range rows {
        if r.Open() {
            active = append(active, r)
        }
    }

    ov := teamLeadOverview{
        Task:          id.Task,
        Event:         id.Event,
        Active:        active,
        ActiveCount:   len(active),
        Scheduled:     scheduled,
        OverdueBreaks: workflow.OverdueBreaks(rows, now),
        Alerts:        filterAlertsForTeamLead(alerts, id.Task),
    }
    if scheduled > 0 {
        ov.CoverageRate = float64(len(active)) / float64(scheduled) * 100
    }
    return c.JSON(http.StatusOK, ov)
}

// filterAlertsForTeamLead keeps the alerts a team lead should see:
// everyone-audience alerts, the teamlead-wide audiences, and direct
// alerts whose task matches theirs.
func filterAlertsForTeamLead(alerts []model.Alert, task string) []model.Alert {
    out := make([]model.Alert, 0)
    for _, a := range alerts {
        switch a.Audience {
        case model.AudienceEveryone, model.AudienceTeamLeadAll:
            out = append(out, a)
        case model.AudienceTeamLeadDirect:
            if a.Task != nil && *a.Task == task {
                out = append(out, a)
            }
        }
    }
    return out
}
