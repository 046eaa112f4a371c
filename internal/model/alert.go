package model

import "time"

// AlertSeverity mirrors the severity levels the dashboard lets an admin
// pick when composing an alert.
type AlertSeverity string

const (
    SeverityInfo    AlertSeverity = "info"
    SeverityWarning AlertSeverity = "warning"
    SeverityError   AlertSeverity = "error"
)

// Alert audiences.  The audience string controls which screens surface
// the alert: admin-only alerts stay on the admin dashboard, the
// teamlead audiences show up on team lead pages, and "teamlead-direct"
// additionally matches on the task name.
const (
    AudienceEveryone       = "everyone"
    AudienceAdminAll       = "admin-all"
    AudienceAdminOnly      = "admin-only"
    AudienceTeamLeadAll    = "teamlead-all"
    AudienceTeamLeadDirect = "teamlead-direct"
)

// Alert is a row of the `alerts` table.
//
// Fields:
//  ID        – primary key identifier.
//  Message   – alert text shown to the audience.
//  Severity  – info, warning or error.
//  Audience  – one of the audience constants above.
//  Task      – task filter for teamlead-direct alerts (nullable).
//  Event     – event affiliation label.
//  CreatedAt – creation timestamp.
type Alert struct {
    ID        int64         // alerts.id
    Message   string        // alerts.message
    Severity  AlertSeverity // alerts.severity
    Audience  string        // alerts.audience
    Task      *string       // alerts.task (nullable)
    Event     string        // alerts.event
    CreatedAt time.Time     // alerts.created_at
}

// TrafficLevel is one row of the `traffic_levels` table.  Levels are
// upserted per zone by admins and polled by the dashboard.
type TrafficLevel struct {
    Zone      string    // traffic_levels.zone
    Event     string    // traffic_levels.event
    Level     int       // traffic_levels.level (1..5)
    UpdatedAt time.Time // traffic_levels.updated_at
}
