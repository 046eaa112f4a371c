package handler

import (
    "context"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/renderatl/volunteer-checkin/internal/repository"
)

// TrafficHandler lets admins set zone traffic levels and everyone poll
// them.
type TrafficHandler struct {
    Traffic *repository.TrafficRepo
}

func NewTrafficHandler(t *repository.TrafficRepo) *TrafficHandler {
    if t == nil {
        panic("nil repository passed to NewTrafficHandler")
    }
    return &TrafficHandler{Traffic: t}
}

// Set handles POST /v1/admin/traffic. Levels run 1 (quiet) to 5
// (overwhelmed).
func (h *TrafficHandler) Set(c echo.Context) error {
    var req struct {
        Zone  string `json:"zone"`
        Event string `json:"event"`
        Level int    `json:"level"`
    }
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Zone = strings.TrimSpace(req.Zone)
    if req.Zone == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "zone required"})
    }
    if req.Level < 1 || req.Level > 5 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "level must be 1-5"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.Traffic.Upsert(ctx, req.Zone, req.Event, req.Level); err != nil {
        return respondError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/traffic?event=X.
func (h *TrafficHandler) List(c echo.Context) error {
    event := queryOr(c, "event", "")
    if event == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "event required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    levels, err := h.Traffic.ListByEvent(ctx, event)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, levels)
}
