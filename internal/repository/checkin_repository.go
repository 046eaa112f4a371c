package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/renderatl/volunteer-checkin/internal/model"
)

// CheckInRepo appends to and queries the append-only `check_ins` table.
// Rows are never updated or deleted; current status for a person is
// derived from their most recent event within a day window.
type CheckInRepo struct{ DB *sql.DB }

func NewCheckInRepo(db *sql.DB) *CheckInRepo { return &CheckInRepo{DB: db} }

// Insert writes one check-in event and returns its generated id.
func (r *CheckInRepo) Insert(ctx context.Context, ev model.CheckInEvent) (int64, error) {
    res, err := r.DB.ExecContext(ctx,
        `INSERT INTO check_ins (first_name, last_name, status, staff_qr, event, is_special_event, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
        ev.FirstName, ev.LastName, string(ev.Status), ev.StaffQR, ev.Event, ev.SpecialEvent, ev.CreatedAt.UTC())
    if err != nil {
        return 0, err
    }
    return res.LastInsertId()
}

// LatestForDay returns the most recent event for a person with the
// given status between dayStart and dayEnd, or ErrNotFound when none
// exists. The task check-in precondition and the check-out guard both
// build on this query.
func (r *CheckInRepo) LatestForDay(ctx context.Context, first, last string, status model.CheckInStatus, dayStart, dayEnd time.Time) (model.CheckInEvent, error) {
    var ev model.CheckInEvent
    var st string
    err := r.DB.QueryRowContext(ctx,
        `SELECT id, first_name, last_name, status, staff_qr, event, is_special_event, created_at
         FROM check_ins
         WHERE first_name=? AND last_name=? AND status=? AND created_at>=? AND created_at<=?
         ORDER BY created_at DESC LIMIT 1`,
        first, last, string(status), dayStart.UTC(), dayEnd.UTC()).
        Scan(&ev.ID, &ev.FirstName, &ev.LastName, &st, &ev.StaffQR, &ev.Event, &ev.SpecialEvent, &ev.CreatedAt)
    if err == sql.ErrNoRows {
        return model.CheckInEvent{}, ErrNotFound
    }
    if err != nil {
        return model.CheckInEvent{}, err
    }
    ev.Status = model.CheckInStatus(st)
    return ev, nil
}

// CountForDay returns how many events with the given status were
// written for an event label between dayStart and dayEnd. Dashboard
// stat cards are built from these counts.
func (r *CheckInRepo) CountForDay(ctx context.Context, event string, status model.CheckInStatus, dayStart, dayEnd time.Time) (int, error) {
    var n int
    err := r.DB.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM check_ins WHERE event=? AND status=? AND created_at>=? AND created_at<=?`,
        event, string(status), dayStart.UTC(), dayEnd.UTC()).Scan(&n)
    return n, err
}

// ListForDay returns all events with the given status for an event
// label within a day window, newest first. Reports read these rows.
func (r *CheckInRepo) ListForDay(ctx context.Context, event string, status model.CheckInStatus, dayStart, dayEnd time.Time) ([]model.CheckInEvent, error) {
    rows, err := r.DB.QueryContext(ctx,
        `SELECT id, first_name, last_name, status, staff_qr, event, is_special_event, created_at
         FROM check_ins
         WHERE event=? AND status=? AND created_at>=? AND created_at<=?
         ORDER BY created_at DESC`,
        event, string(status), dayStart.UTC(), dayEnd.UTC())
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.CheckInEvent, 0)
    for rows.Next() {
        var ev model.CheckInEvent
        var st string
        if err := rows.Scan(&ev.ID, &ev.FirstName, &ev.LastName, &st, &ev.StaffQR, &ev.Event, &ev.SpecialEvent, &ev.CreatedAt); err != nil {
            return nil, err
        }
        ev.Status = model.CheckInStatus(st)
        out = append(out, ev)
    }
    return out, rows.Err()
}
