package model

// ScheduledVolunteer is a row of the `scheduled_volunteers` table.
// Scheduled entries are loaded ahead of an event day and are used for
// no-show and coverage calculations; the workflow never writes them.
//
// Fields:
//  ID        – primary key identifier.
//  FirstName – scheduled_volunteers.first_name.
//  LastName  – scheduled_volunteers.last_name.
//  Task      – task the volunteer is scheduled for.
//  Shift     – human-readable shift label ("9am-1pm").
//  Role      – free-form role label for display ("Volunteer" when empty).
//  Event     – event affiliation label.
//  Date      – schedule date as YYYY-MM-DD.
type ScheduledVolunteer struct {
    ID        uint64 // scheduled_volunteers.id
    FirstName string // scheduled_volunteers.first_name
    LastName  string // scheduled_volunteers.last_name
    Task      string // scheduled_volunteers.task
    Shift     string // scheduled_volunteers.shift
    Role      string // scheduled_volunteers.role
    Event     string // scheduled_volunteers.event
    Date      string // scheduled_volunteers.date (YYYY-MM-DD)
}
