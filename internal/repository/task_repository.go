package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/renderatl/volunteer-checkin/internal/model"
)

// TaskRepo owns the `task_checkins` table and the volunteers'
// current-task pointer. The close-old/open-new sequence runs inside a
// single transaction so two concurrent submissions for the same person
// cannot leave two open records.
type TaskRepo struct{ DB *sql.DB }

func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{DB: db} }

const taskCols = "id, first_name, last_name, task, team_lead, event, status, checkin_time, checkout_time"

func scanTask(row interface{ Scan(...any) error }) (model.TaskCheckinRecord, error) {
    var rec model.TaskCheckinRecord
    var status string
    var out sql.NullTime
    err := row.Scan(&rec.ID, &rec.FirstName, &rec.LastName, &rec.Task, &rec.TeamLead,
        &rec.Event, &status, &rec.CheckinTime, &out)
    if err != nil {
        return model.TaskCheckinRecord{}, err
    }
    rec.Status = model.TaskStatus(status)
    if out.Valid {
        t := out.Time
        rec.CheckoutTime = &t
    }
    return rec, nil
}

// AssignOutcome describes what the transactional assignment did.
type AssignOutcome struct {
    Created  bool   // a new open record was inserted
    ClosedID string // id of the previous open record that was closed, if any
}

// Assign checks a volunteer into a task. Within one transaction it
// locks the person's open record (if any), treats a same-task
// submission as a no-op, closes a different-task record by stamping its
// checkout time, inserts the new open record and repoints the
// directory's current-task pointer at it. The record's ID and
// CheckinTime must be set by the caller.
func (r *TaskRepo) Assign(ctx context.Context, rec model.TaskCheckinRecord) (AssignOutcome, error) {
    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return AssignOutcome{}, err
    }
    defer func() { _ = tx.Rollback() }()

    // Lock the open record so a concurrent submission serializes here.
    var open model.TaskCheckinRecord
    haveOpen := true
    row := tx.QueryRowContext(ctx,
        "SELECT "+taskCols+" FROM task_checkins WHERE first_name=? AND last_name=? AND status=? AND checkout_time IS NULL LIMIT 1 FOR UPDATE",
        rec.FirstName, rec.LastName, string(model.TaskCheckIn))
    open, err = scanTask(row)
    if err == sql.ErrNoRows {
        haveOpen = false
    } else if err != nil {
        return AssignOutcome{}, err
    }

    if haveOpen && open.Task == rec.Task {
        // Re-checking into the same task must not create a duplicate
        // open record.
        return AssignOutcome{}, tx.Commit()
    }

    var outcome AssignOutcome
    if haveOpen {
        if _, err := tx.ExecContext(ctx,
            "UPDATE task_checkins SET checkout_time=? WHERE id=?",
            rec.CheckinTime.UTC(), open.ID); err != nil {
            return AssignOutcome{}, err
        }
        outcome.ClosedID = open.ID
    }

    if _, err := tx.ExecContext(ctx,
        `INSERT INTO task_checkins (id, first_name, last_name, task, team_lead, event, status, checkin_time, checkout_time)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL)`,
        rec.ID, rec.FirstName, rec.LastName, rec.Task, rec.TeamLead, rec.Event,
        string(model.TaskCheckIn), rec.CheckinTime.UTC()); err != nil {
        return AssignOutcome{}, err
    }
    outcome.Created = true

    if _, err := tx.ExecContext(ctx,
        "UPDATE volunteers SET current_task_checkin_id=? WHERE first_name=? AND last_name=?",
        rec.ID, rec.FirstName, rec.LastName); err != nil {
        return AssignOutcome{}, err
    }

    return outcome, tx.Commit()
}

// AppendEvent inserts a break event row ("Check Out for Break" /
// "Check In from Break"). Break rows never carry a checkout time; they
// only feed break-overdue detection.
func (r *TaskRepo) AppendEvent(ctx context.Context, rec model.TaskCheckinRecord) error {
    _, err := r.DB.ExecContext(ctx,
        `INSERT INTO task_checkins (id, first_name, last_name, task, team_lead, event, status, checkin_time, checkout_time)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL)`,
        rec.ID, rec.FirstName, rec.LastName, rec.Task, rec.TeamLead, rec.Event,
        string(rec.Status), rec.CheckinTime.UTC())
    return err
}

// CloseOpen ends a volunteer's active assignment. In one transaction it
// stamps the open record's checkout time, appends the "Check Out from
// Task" event row and clears the directory pointer. It returns the id
// of the record that was closed, or ErrNotFound when the person has no
// open assignment.
func (r *TaskRepo) CloseOpen(ctx context.Context, rec model.TaskCheckinRecord) (string, error) {
    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return "", err
    }
    defer func() { _ = tx.Rollback() }()

    row := tx.QueryRowContext(ctx,
        "SELECT "+taskCols+" FROM task_checkins WHERE first_name=? AND last_name=? AND status=? AND checkout_time IS NULL LIMIT 1 FOR UPDATE",
        rec.FirstName, rec.LastName, string(model.TaskCheckIn))
    open, err := scanTask(row)
    if err == sql.ErrNoRows {
        return "", ErrNotFound
    }
    if err != nil {
        return "", err
    }

    if _, err := tx.ExecContext(ctx,
        "UPDATE task_checkins SET checkout_time=? WHERE id=?",
        rec.CheckinTime.UTC(), open.ID); err != nil {
        return "", err
    }
    if _, err := tx.ExecContext(ctx,
        `INSERT INTO task_checkins (id, first_name, last_name, task, team_lead, event, status, checkin_time, checkout_time)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL)`,
        rec.ID, rec.FirstName, rec.LastName, open.Task, rec.TeamLead, rec.Event,
        string(model.TaskCheckOut), rec.CheckinTime.UTC()); err != nil {
        return "", err
    }
    if _, err := tx.ExecContext(ctx,
        "UPDATE volunteers SET current_task_checkin_id=NULL WHERE first_name=? AND last_name=?",
        rec.FirstName, rec.LastName); err != nil {
        return "", err
    }

    return open.ID, tx.Commit()
}

// ListOpenByEvent returns every open assignment record for an event.
// The dashboard classifies these against the task-overdue thresholds.
func (r *TaskRepo) ListOpenByEvent(ctx context.Context, event string) ([]model.TaskCheckinRecord, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+taskCols+" FROM task_checkins WHERE event=? AND status=? AND checkout_time IS NULL",
        event, string(model.TaskCheckIn))
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectTasks(rows)
}

// ListByTask returns all rows (including break events) for a task and
// event. Team lead pages derive coverage and break-overdue lists from
// this set.
func (r *TaskRepo) ListByTask(ctx context.Context, task, event string) ([]model.TaskCheckinRecord, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+taskCols+" FROM task_checkins WHERE task=? AND event=?",
        task, event)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectTasks(rows)
}

// ListForDay returns all rows for an event within a day window, used by
// the per-task dashboard breakdown.
func (r *TaskRepo) ListForDay(ctx context.Context, event string, dayStart, dayEnd time.Time) ([]model.TaskCheckinRecord, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+taskCols+" FROM task_checkins WHERE event=? AND checkin_time>=? AND checkin_time<=?",
        event, dayStart.UTC(), dayEnd.UTC())
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectTasks(rows)
}

// CountActive returns how many volunteers currently hold an open
// assignment for a task and event.
func (r *TaskRepo) CountActive(ctx context.Context, task, event string) (int, error) {
    var n int
    err := r.DB.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM task_checkins WHERE task=? AND event=? AND status=? AND checkout_time IS NULL",
        task, event, string(model.TaskCheckIn)).Scan(&n)
    return n, err
}

func collectTasks(rows *sql.Rows) ([]model.TaskCheckinRecord, error) {
    out := make([]model.TaskCheckinRecord, 0)
    for rows.Next() {
        rec, err := scanTask(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, rec)
    }
    return out, rows.Err()
}
