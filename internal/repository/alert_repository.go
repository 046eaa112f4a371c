package repository

import (
    "context"
    "database/sql"

    "github.com/renderatl/volunteer-checkin/internal/model"
)

// AlertRepo owns the `alerts` table.
type AlertRepo struct{ DB *sql.DB }

func NewAlertRepo(db *sql.DB) *AlertRepo { return &AlertRepo{DB: db} }

// Insert writes one alert and returns its generated id.
func (r *AlertRepo) Insert(ctx context.Context, a model.Alert) (int64, error) {
    var task sql.NullString
    if a.Task != nil {
        task = sql.NullString{String: *a.Task, Valid: true}
    }
    res, err := r.DB.ExecContext(ctx,
        `INSERT INTO alerts (message, severity, audience, task, event, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
        a.Message, string(a.Severity), a.Audience, task, a.Event, a.CreatedAt.UTC())
    if err != nil {
        return 0, err
    }
    return res.LastInsertId()
}

// ListByEvent returns all alerts for an event, newest first. Audience
// filtering happens in the handler because team lead pages additionally
// match on the task name.
func (r *AlertRepo) ListByEvent(ctx context.Context, event string) ([]model.Alert, error) {
    rows, err := r.DB.QueryContext(ctx,
        `SELECT id, message, severity, audience, task, event, created_at
         FROM alerts WHERE event=? ORDER BY created_at DESC`,
        event)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Alert, 0)
    for rows.Next() {
        var a model.Alert
        var sev string
        var task sql.NullString
        if err := rows.Scan(&a.ID, &a.Message, &sev, &a.Audience, &task, &a.Event, &a.CreatedAt); err != nil {
            return nil, err
        }
        a.Severity = model.AlertSeverity(sev)
        if task.Valid {
            t := task.String
            a.Task = &t
        }
        out = append(out, a)
    }
    return out, rows.Err()
}

// Delete dismisses an alert by id. Deleting an alert that is already
// gone is not an error.
func (r *AlertRepo) Delete(ctx context.Context, id int64) error {
    _, err := r.DB.ExecContext(ctx, "DELETE FROM alerts WHERE id=?", id)
    return err
}
