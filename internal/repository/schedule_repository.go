package repository

import (
    "context"
    "database/sql"

    "github.com/renderatl/volunteer-checkin/internal/model"
)

// ScheduleRepo reads the `scheduled_volunteers` table. Schedules are
// imported ahead of an event day; this service never writes them.
type ScheduleRepo struct{ DB *sql.DB }

func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{DB: db} }

// ListForDate returns everyone scheduled for an event on a date
// (YYYY-MM-DD).
func (r *ScheduleRepo) ListForDate(ctx context.Context, event, date string) ([]model.ScheduledVolunteer, error) {
    rows, err := r.DB.QueryContext(ctx,
        `SELECT id, first_name, last_name, task, shift, role, event, date
         FROM scheduled_volunteers WHERE event=? AND date=?
         ORDER BY last_name, first_name`,
        event, date)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.ScheduledVolunteer, 0)
    for rows.Next() {
        var s model.ScheduledVolunteer
        if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Task, &s.Shift, &s.Role, &s.Event, &s.Date); err != nil {
            return nil, err
        }
        if s.Role == "" {
            s.Role = "Volunteer"
        }
        out = append(out, s)
    }
    return out, rows.Err()
}

// CountForDate returns the scheduled headcount for an event on a date.
func (r *ScheduleRepo) CountForDate(ctx context.Context, event, date string) (int, error) {
    var n int
    err := r.DB.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM scheduled_volunteers WHERE event=? AND date=?",
        event, date).Scan(&n)
    return n, err
}

// CountForTask returns the scheduled headcount for one task on a date,
// the denominator of the coverage percentage.
func (r *ScheduleRepo) CountForTask(ctx context.Context, task, event, date string) (int, error) {
    var n int
    err := r.DB.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM scheduled_volunteers WHERE task=? AND event=? AND date=?",
        task, event, date).Scan(&n)
    return n, err
}
