package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/renderatl/volunteer-checkin/internal/workflow"
)

// RecoveryHandler serves the team-lead link recovery page.
type RecoveryHandler struct {
    WF *workflow.Workflow
}

func NewRecoveryHandler(wf *workflow.Workflow) *RecoveryHandler {
    if wf == nil {
        panic("nil workflow passed to NewRecoveryHandler")
    }
    return &RecoveryHandler{WF: wf}
}

// Recover handles POST /v1/recovery. A team lead who lost their link
// types their name and, if the directory confirms the role and the
// lifetime cap allows, receives a fresh link and session.
func (h *RecoveryHandler) Recover(c echo.Context) error {
    var req struct {
        FirstName string `json:"firstName"`
        LastName  string `json:"lastName"`
        DeviceID  string `json:"deviceId"`
    }
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    res, err := h.WF.RecoverTeamLeadLink(ctx, req.FirstName, req.LastName, req.DeviceID)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}
