package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/renderatl/volunteer-checkin/internal/repository"
)

// ScheduleHandler exposes the imported volunteer schedule to the admin
// dashboard.
type ScheduleHandler struct {
    Schedules *repository.ScheduleRepo
}

func NewScheduleHandler(s *repository.ScheduleRepo) *ScheduleHandler {
    if s == nil {
        panic("nil repository passed to NewScheduleHandler")
    }
    return &ScheduleHandler{Schedules: s}
}

// List handles GET /v1/admin/schedule?event=X&date=YYYY-MM-DD.
func (h *ScheduleHandler) List(c echo.Context) error {
    event := queryOr(c, "event", "")
    if event == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "event required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    rows, err := h.Schedules.ListForDate(ctx, event, dateParam(c))
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, rows)
}
