package model

import "time"

// CheckInStatus enumerates the two states a check-in event can record.
// The strings match what the store holds so equality filters keep
// working against data written by earlier revisions of the app.
type CheckInStatus string

const (
    StatusCheckedIn  CheckInStatus = "Checked In"
    StatusCheckedOut CheckInStatus = "Checked Out"
)

// CheckInEvent is one row of the append-only `check_ins` table.  The
// workflow never updates or deletes these rows; a person's current
// status is derived by querying their most recent event within the
// current day.
//
// Fields:
//  ID           – primary key identifier.
//  FirstName    – check_ins.first_name.
//  LastName     – check_ins.last_name.
//  Status       – "Checked In" or "Checked Out".
//  StaffQR      – identifying code of the staff/station that processed it.
//  Event        – event affiliation label.
//  SpecialEvent – whether the volunteer belongs to the special event track.
//  CreatedAt    – creation timestamp, set by the workflow.
type CheckInEvent struct {
    ID           int64         // check_ins.id
    FirstName    string        // check_ins.first_name
    LastName     string        // check_ins.last_name
    Status       CheckInStatus // check_ins.status
    StaffQR      string        // check_ins.staff_qr
    Event        string        // check_ins.event
    SpecialEvent bool          // check_ins.is_special_event
    CreatedAt    time.Time     // check_ins.created_at
}
