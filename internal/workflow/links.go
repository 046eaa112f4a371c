package workflow

import (
    "net/url"
    "time"
)

// Link is a generated access link. Team-lead links expire after the
// configured countdown window; admin links carry no expiry (the admin
// dashboard re-verifies the session token instead).
type Link struct {
    URL       string    `json:"url"`
    ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// adminLink builds the admin QR page link for a checked-in admin.
func adminLink(base, first, last string) string {
    q := url.Values{}
    q.Set("firstName", first)
    q.Set("lastName", last)
    return base + "/admin/qr-code?" + q.Encode()
}

// teamLeadLink builds the team lead QR page link carrying the
// directory's assigned task and event. Volunteers scanning the QR
// rendered from this link land on the task check-in form with the
// team lead, task and event pre-filled.
func teamLeadLink(base, first, last, task, event string) string {
    q := url.Values{}
    q.Set("firstName", first)
    q.Set("lastName", last)
    q.Set("task", task)
    q.Set("event", event)
    return base + "/teamlead-qr?" + q.Encode()
}
