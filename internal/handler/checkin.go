package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/renderatl/volunteer-checkin/internal/workflow"
)

// CheckInHandler serves the staff check-in and check-out forms.
type CheckInHandler struct {
    WF *workflow.Workflow
}

func NewCheckInHandler(wf *workflow.Workflow) *CheckInHandler {
    if wf == nil {
        panic("nil workflow passed to NewCheckInHandler")
    }
    return &CheckInHandler{WF: wf}
}

// CheckIn handles POST /v1/checkin. The response shape depends on the
// submitter's role: volunteers get a confirmation message, team leads
// additionally get an expiring link, admins get a redirect instead of
// an event.
func (h *CheckInHandler) CheckIn(c echo.Context) error {
    var req workflow.CheckInRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    res, err := h.WF.CheckIn(ctx, req)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, res)
}

// CheckOut handles POST /v1/checkout. A check-out without a matching
// same-day check-in is rejected with 409.
func (h *CheckInHandler) CheckOut(c echo.Context) error {
    var req workflow.CheckInRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    res, err := h.WF.CheckOut(ctx, req)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, res)
}

// Logout handles POST /v1/auth/logout: it drops the cached device
// session. The body carries the device id issued at check-in.
func (h *CheckInHandler) Logout(c echo.Context) error {
    var req struct {
        DeviceID string `json:"deviceId"`
    }
    if err := c.Bind(&req); err != nil || req.DeviceID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "deviceId required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.WF.Logout(ctx, req.DeviceID); err != nil {
        return respondError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
