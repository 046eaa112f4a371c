package workflow

import (
    "context"
    "fmt"
    "math"
    "strings"

    "github.com/google/uuid"
    "go.uber.org/zap"

    "github.com/renderatl/volunteer-checkin/internal/model"
)

// TaskRequest is a submission on the task check-in form. TeamLead,
// Task and Event normally arrive pre-filled from a scanned link.
type TaskRequest struct {
    FirstName string           `json:"firstName" validate:"required"`
    LastName  string           `json:"lastName" validate:"required"`
    Task      string           `json:"task" validate:"required"`
    TeamLead  string           `json:"teamLead"`
    Event     string           `json:"event"`
    Status    model.TaskStatus `json:"status" validate:"required"`
}

// TaskResult reports the record a task submission touched.
type TaskResult struct {
    RecordID string `json:"record_id,omitempty"`
    ClosedID string `json:"closed_id,omitempty"`
    Message  string `json:"message"`
}

func (w *Workflow) validateTask(req *TaskRequest) error {
    req.FirstName = strings.TrimSpace(req.FirstName)
    req.LastName = strings.TrimSpace(req.LastName)
    req.Task = strings.TrimSpace(req.Task)
    if req.FirstName == "" || req.LastName == "" {
        return invalid("name", "Please enter both first and last name.")
    }
    if req.Task == "" {
        return invalid("task", "Please select a task.")
    }
    if !model.ValidTaskStatus(req.Status) {
        return invalid("status", "Please choose a valid check-in status.")
    }
    return nil
}

// requireStaffCheckIn enforces the task-form precondition: the person
// must have a "Checked In" staff event from today, and that event must
// be at least MinTaskWait old so a volunteer cannot walk straight from
// the front desk onto a task before the record settles.
func (w *Workflow) requireStaffCheckIn(ctx context.Context, first, last string) error {
    start, end := dayWindow(w.now())
    ev, err := w.events.LatestForDay(ctx, first, last, model.StatusCheckedIn, start, end)
    if err != nil {
        if isNotFound(err) {
            return blocked("No staff check-in found for today.")
        }
        return err
    }
    age := w.now().Sub(ev.CreatedAt)
    if age < w.cfg.MinTaskWait {
        remaining := w.cfg.MinTaskWait - age
        mins := int(math.Ceil(remaining.Minutes()))
        if mins < 1 {
            mins = 1
        }
        return blocked(fmt.Sprintf("Please wait %d more minute(s) before checking in for a task.", mins))
    }
    return nil
}

// TaskSubmit handles one submission on the task form. Opening a task
// requires today's staff check-in to have settled; breaks only append
// events; checking out closes the open interval.
func (w *Workflow) TaskSubmit(ctx context.Context, req TaskRequest) (TaskResult, error) {
    if err := w.validateTask(&req); err != nil {
        return TaskResult{}, err
    }
    if req.Status == model.TaskCheckIn {
        if err := w.requireStaffCheckIn(ctx, req.FirstName, req.LastName); err != nil {
            return TaskResult{}, err
        }
    }
    return w.applyTask(ctx, req)
}

// Reassign moves a volunteer onto a task on an admin's or team lead's
// behalf. The close-old/open-new sequence is the same as a volunteer
// task check-in; the staff settling wait is skipped because the
// initiator is already authenticated.
func (w *Workflow) Reassign(ctx context.Context, req TaskRequest) (TaskResult, error) {
    req.Status = model.TaskCheckIn
    if err := w.validateTask(&req); err != nil {
        return TaskResult{}, err
    }
    return w.applyTask(ctx, req)
}

func (w *Workflow) applyTask(ctx context.Context, req TaskRequest) (TaskResult, error) {
    rec := model.TaskCheckinRecord{
        ID:          uuid.NewString(),
        FirstName:   req.FirstName,
        LastName:    req.LastName,
        Task:        req.Task,
        TeamLead:    req.TeamLead,
        Event:       req.Event,
        Status:      req.Status,
        CheckinTime: w.now(),
    }

    switch req.Status {
    case model.TaskCheckIn:
        outcome, err := w.tasks.Assign(ctx, rec)
        if err != nil {
            return TaskResult{}, err
        }
        if !outcome.Created {
            // Same task, already open.
            return TaskResult{Message: fmt.Sprintf("Already checked in for %s.", req.Task)}, nil
        }
        w.log.Info("task check-in",
            zap.String("name", req.FirstName+" "+req.LastName),
            zap.String("task", req.Task),
            zap.String("closed", outcome.ClosedID))
        msg := fmt.Sprintf("Checked in for %s!", req.Task)
        if outcome.ClosedID != "" {
            msg = fmt.Sprintf("Reassigned to %s. Your previous task was checked out.", req.Task)
        }
        return TaskResult{RecordID: rec.ID, ClosedID: outcome.ClosedID, Message: msg}, nil

    case model.TaskBreakOut, model.TaskBreakReturn:
        if err := w.tasks.AppendEvent(ctx, rec); err != nil {
            return TaskResult{}, err
        }
        msg := "Enjoy your break!"
        if req.Status == model.TaskBreakReturn {
            msg = "Welcome back from break!"
        }
        return TaskResult{RecordID: rec.ID, Message: msg}, nil

    case model.TaskCheckOut:
        closedID, err := w.tasks.CloseOpen(ctx, rec)
        if err != nil {
            if isNotFound(err) {
                return TaskResult{}, blocked("No active task check-in found to check out from.")
            }
            return TaskResult{}, err
        }
        return TaskResult{RecordID: rec.ID, ClosedID: closedID,
            Message: fmt.Sprintf("Checked out from %s. Thank you!", req.Task)}, nil
    }

    return TaskResult{}, invalid("status", "Please choose a valid check-in status.")
}
