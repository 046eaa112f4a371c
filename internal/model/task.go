package model

import "time"

// TaskStatus enumerates the submission kinds accepted by the task
// check-in form.  "Check In for Task" opens an assignment interval;
// "Check Out from Task" closes it; the two break statuses are appended
// as plain events and only matter for break-overdue detection.
type TaskStatus string

const (
    TaskCheckIn      TaskStatus = "Check In for Task"
    TaskBreakOut     TaskStatus = "Check Out for Break"
    TaskBreakReturn  TaskStatus = "Check In from Break"
    TaskCheckOut     TaskStatus = "Check Out from Task"
)

// ValidTaskStatus reports whether s is one of the four accepted task
// submission statuses.
func ValidTaskStatus(s TaskStatus) bool {
    switch s {
    case TaskCheckIn, TaskBreakOut, TaskBreakReturn, TaskCheckOut:
        return true
    }
    return false
}

// TaskCheckinRecord is a row of the `task_checkins` table.  A record
// with status "Check In for Task" and a null checkout time is an open
// assignment interval; the workflow enforces at most one open interval
// per person by closing the previous one in the same transaction that
// opens a new one.
//
// Fields:
//  ID           – uuid primary key, generated by the workflow.
//  FirstName    – task_checkins.first_name.
//  LastName     – task_checkins.last_name.
//  Task         – task name the volunteer is working.
//  TeamLead     – full name of the team lead whose link was scanned.
//  Event        – event affiliation label.
//  Status       – one of the four TaskStatus values.
//  CheckinTime  – when this record was created.
//  CheckoutTime – when the interval was closed (null while active).
type TaskCheckinRecord struct {
    ID           string     // task_checkins.id (uuid)
    FirstName    string     // task_checkins.first_name
    LastName     string     // task_checkins.last_name
    Task         string     // task_checkins.task
    TeamLead     string     // task_checkins.team_lead
    Event        string     // task_checkins.event
    Status       TaskStatus // task_checkins.status
    CheckinTime  time.Time  // task_checkins.checkin_time
    CheckoutTime *time.Time // task_checkins.checkout_time (nullable)
}

// Open reports whether the record is an active assignment interval.
func (r TaskCheckinRecord) Open() bool {
    return r.Status == TaskCheckIn && r.CheckoutTime == nil
}
