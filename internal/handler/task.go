package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/renderatl/volunteer-checkin/internal/workflow"
)

// TaskHandler serves the task check-in form reached through a team
// lead's link.
type TaskHandler struct {
    WF *workflow.Workflow
}

func NewTaskHandler(wf *workflow.Workflow) *TaskHandler {
    if wf == nil {
        panic("nil workflow passed to NewTaskHandler")
    }
    return &TaskHandler{WF: wf}
}

// Submit handles POST /v1/task. Task, team lead and event normally
// arrive pre-filled from the scanned link's query parameters; the
// volunteer only types their name and picks a status.
func (h *TaskHandler) Submit(c echo.Context) error {
    var req workflow.TaskRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    // Link parameters may also ride on the query string when the form
    // posts without JavaScript.
    if req.Task == "" {
        req.Task = c.QueryParam("task")
    }
    if req.TeamLead == "" {
        req.TeamLead = c.QueryParam("teamLead")
    }
    if req.Event == "" {
        req.Event = c.QueryParam("event")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    res, err := h.WF.TaskSubmit(ctx, req)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, res)
}

// Reassign handles POST /v1/admin/reassign and
// POST /v1/teamlead/reassign: an authenticated admin or team lead
// moves a volunteer onto a task, closing whatever they held before.
func (h *TaskHandler) Reassign(c echo.Context) error {
    var req workflow.TaskRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if id, ok := currentIdentity(c); ok && req.TeamLead == "" {
        req.TeamLead = id.FirstName + " " + id.LastName
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    res, err := h.WF.Reassign(ctx, req)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}
