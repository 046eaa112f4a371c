// Package queue defines message payloads exchanged over the message broker.
package queue

// CheckInRecordedEvent is published whenever a staff check-in or
// check-out event row is written. It carries enough for downstream
// consumers to build an audit trail without querying the primary
// database.
type CheckInRecordedEvent struct {
    EventID      int64  `json:"event_id"`
    FirstName    string `json:"first_name"`
    LastName     string `json:"last_name"`
    Status       string `json:"status"`
    StaffQR      string `json:"staff_qr"`
    Event        string `json:"event"`
    SpecialEvent bool   `json:"special_event"`
    RecordedAt   string `json:"recorded_at"`
}
