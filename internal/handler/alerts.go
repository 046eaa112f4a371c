package handler

import (
    "context"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/renderatl/volunteer-checkin/internal/model"
    "github.com/renderatl/volunteer-checkin/internal/notify"
    "github.com/renderatl/volunteer-checkin/internal/repository"
)

// AlertHandler lets admins compose, list and dismiss alerts. Error
// severity alerts aimed at admins additionally fan out to the chat
// webhook.
type AlertHandler struct {
    Alerts   *repository.AlertRepo
    Notifier *notify.Notifier
}

func NewAlertHandler(a *repository.AlertRepo, n *notify.Notifier) *AlertHandler {
    if a == nil {
        panic("nil repository passed to NewAlertHandler")
    }
    return &AlertHandler{Alerts: a, Notifier: n}
}

type createAlertReq struct {
    Message  string `json:"message"`
    Severity string `json:"severity"`
    Audience string `json:"audience"`
    Task     string `json:"task"`
    Event    string `json:"event"`
}

func validAudience(a string) bool {
    switch a {
    case model.AudienceEveryone, model.AudienceAdminAll, model.AudienceAdminOnly,
        model.AudienceTeamLeadAll, model.AudienceTeamLeadDirect:
        return true
    }
    return false
}

// Create handles POST /v1/admin/alerts.
func (h *AlertHandler) Create(c echo.Context) error {
    var req createAlertReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Message = strings.TrimSpace(req.Message)
    if req.Message == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "message required"})
    }
    if !validAudience(req.Audience) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown audience"})
    }
    sev := model.AlertSeverity(strings.ToLower(req.Severity))
    if sev != model.SeverityInfo && sev != model.SeverityWarning && sev != model.SeverityError {
        sev = model.SeverityInfo
    }
    if req.Audience == model.AudienceTeamLeadDirect && strings.TrimSpace(req.Task) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "task required for direct alerts"})
    }

    a := model.Alert{
        Message:   req.Message,
        Severity:  sev,
        Audience:  req.Audience,
        Event:     req.Event,
        CreatedAt: time.Now().UTC(),
    }
    if t := strings.TrimSpace(req.Task); t != "" {
        a.Task = &t
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    id, err := h.Alerts.Insert(ctx, a)
    if err != nil {
        return respondError(c, err)
    }
    a.ID = id

    // Fire-and-forget; the row is already durable.
    h.Notifier.AlertCreated(ctx, a)

    return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// List handles GET /v1/alerts?event=X. Without a session it only
// returns everyone-audience alerts; authenticated admins see the full
// set through the admin route.
func (h *AlertHandler) List(c echo.Context) error {
    event := queryOr(c, "event", "")
    if event == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "event required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    alerts, err := h.Alerts.ListByEvent(ctx, event)
    if err != nil {
        return respondError(c, err)
    }
    out := make([]model.Alert, 0)
    for _, a := range alerts {
        if a.Audience == model.AudienceEveryone {
            out = append(out, a)
        }
    }
    return c.JSON(http.StatusOK, out)
}

// ListAll handles GET /v1/admin/alerts?event=X: the unfiltered set.
func (h *AlertHandler) ListAll(c echo.Context) error {
    event := queryOr(c, "event", "")
    if event == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "event required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    alerts, err := h.Alerts.ListByEvent(ctx, event)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, alerts)
}

// Delete handles DELETE /v1/admin/alerts/:id.
func (h *AlertHandler) Delete(c echo.Context) error {
    id, err := strconv.ParseInt(c.Param("id"), 10, 64)
    if err != nil || id <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.Alerts.Delete(ctx, id); err != nil {
        return respondError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
