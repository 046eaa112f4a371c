package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/renderatl/volunteer-checkin/internal/model"
)

// TrafficRepo owns the `traffic_levels` table. One row per zone,
// upserted when an admin taps a level on the dashboard.
type TrafficRepo struct{ DB *sql.DB }

func NewTrafficRepo(db *sql.DB) *TrafficRepo { return &TrafficRepo{DB: db} }

// Upsert sets the level for a zone, creating the row if needed.
func (r *TrafficRepo) Upsert(ctx context.Context, zone, event string, level int) error {
    _, err := r.DB.ExecContext(ctx,
        `INSERT INTO traffic_levels (zone, event, level, updated_at)
         VALUES (?, ?, ?, ?)
         ON DUPLICATE KEY UPDATE event=VALUES(event), level=VALUES(level), updated_at=VALUES(updated_at)`,
        zone, event, level, time.Now().UTC())
    return err
}

// ListByEvent returns all zone levels for an event.
func (r *TrafficRepo) ListByEvent(ctx context.Context, event string) ([]model.TrafficLevel, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT zone, event, level, updated_at FROM traffic_levels WHERE event=? ORDER BY zone",
        event)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.TrafficLevel, 0)
    for rows.Next() {
        var t model.TrafficLevel
        if err := rows.Scan(&t.Zone, &t.Event, &t.Level, &t.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, t)
    }
    return out, rows.Err()
}
