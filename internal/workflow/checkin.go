package workflow

import (
    "context"
    "fmt"
    "strings"
    "time"

    "github.com/go-playground/validator/v10"
    "go.uber.org/zap"

    "github.com/renderatl/volunteer-checkin/internal/model"
    "github.com/renderatl/volunteer-checkin/internal/session"
)

var validate = validator.New()

// CheckInRequest is a check-in or check-out submission. The same
// struct is populated from the interactive form and from decoded link
// parameters; the rules below do not care which channel supplied the
// fields.
type CheckInRequest struct {
    FirstName    string `json:"firstName" validate:"required"`
    LastName     string `json:"lastName" validate:"required"`
    Staff        string `json:"staff"`
    Event        string `json:"event"`
    SpecialEvent bool   `json:"specialEvent"`
    AdminStation bool   `json:"adminStation"` // the acting station is the admin check-in desk
    PrivacyAck   bool   `json:"privacyAck"`
    DeviceID     string `json:"deviceId"`
}

// CheckInResult describes what a submission produced. EventID is zero
// when no event row was written (admin check-in). Link and RedirectTo
// are set for admins and team leads only.
type CheckInResult struct {
    Role         model.Role `json:"role"`
    EventID      int64      `json:"event_id,omitempty"`
    Link         *Link      `json:"link,omitempty"`
    RedirectTo   string     `json:"redirect_to,omitempty"`
    Token        string     `json:"token,omitempty"`
    TokenExpires time.Time  `json:"token_expires,omitempty"`
    DeviceID     string     `json:"device_id,omitempty"`
    Message      string     `json:"message"`
}

func (w *Workflow) validateNames(req *CheckInRequest) error {
    req.FirstName = strings.TrimSpace(req.FirstName)
    req.LastName = strings.TrimSpace(req.LastName)
    if err := validate.Struct(req); err != nil {
        return invalid("name", "Please enter both first and last name.")
    }
    return nil
}

// CheckIn validates a check-in submission, resolves the submitter's
// role and branches on it: volunteers get one event row, team leads
// get one event row plus an expiring task link, admins get no event
// row and a dashboard redirect. Duplicate submissions are not
// deduplicated; every accepted check-in appends a fresh event.
func (w *Workflow) CheckIn(ctx context.Context, req CheckInRequest) (CheckInResult, error) {
    if err := w.validateNames(&req); err != nil {
        return CheckInResult{}, err
    }
    if !req.AdminStation && req.Staff == "" {
        return CheckInResult{}, invalid("staff", "Please select the staff member checking in the volunteer.")
    }
    if !req.PrivacyAck {
        return CheckInResult{}, invalid("privacyAck", "Please acknowledge the privacy policy.")
    }

    person, found, err := w.ResolveIdentity(ctx, req.FirstName, req.LastName)
    if err != nil {
        return CheckInResult{}, err
    }
    if found && req.Event == "" {
        req.Event = person.Event
    }

    switch person.Role {
    case model.RoleAdmin:
        return w.adminCheckIn(ctx, req, person)
    case model.RoleTeamLead:
        return w.teamLeadCheckIn(ctx, req, person)
    case model.RoleVolunteer:
        return w.volunteerCheckIn(ctx, req)
    }
    return w.volunteerCheckIn(ctx, req)
}

// adminCheckIn writes no event. The admin's identity is cached for the
// device, exchanged for a session token and the caller is redirected
// to the dashboard.
func (w *Workflow) adminCheckIn(ctx context.Context, req CheckInRequest, person model.Volunteer) (CheckInResult, error) {
    deviceID, err := w.sessions.Put(ctx, session.Entry{
        DeviceID:  req.DeviceID,
        FirstName: person.FirstName,
        LastName:  person.LastName,
        Role:      model.RoleAdmin,
        Event:     person.Event,
    })
    if err != nil {
        w.log.Warn("session cache unavailable", zap.Error(err))
        deviceID = req.DeviceID
    }
    token, exp, err := issueToken(w.cfg, identityFor(person))
    if err != nil {
        return CheckInResult{}, err
    }
    w.log.Info("admin checked in",
        zap.String("name", person.FullName()), zap.String("event", person.Event))
    return CheckInResult{
        Role:         model.RoleAdmin,
        Link:         &Link{URL: adminLink(w.cfg.BaseURL, person.FirstName, person.LastName)},
        RedirectTo:   "/admin/dashboard",
        Token:        token,
        TokenExpires: exp,
        DeviceID:     deviceID,
        Message:      "Admin successfully checked in. Redirecting...",
    }, nil
}

// teamLeadCheckIn writes exactly one event and returns a one-time link
// to the lead's task page. The link expires after the configured
// countdown window.
func (w *Workflow) teamLeadCheckIn(ctx context.Context, req CheckInRequest, person model.Volunteer) (CheckInResult, error) {
    ev := model.CheckInEvent{
        FirstName:    req.FirstName,
        LastName:     req.LastName,
        Status:       model.StatusCheckedIn,
        StaffQR:      req.Staff,
        Event:        req.Event,
        SpecialEvent: req.SpecialEvent,
        CreatedAt:    w.now(),
    }
    id, err := w.events.Insert(ctx, ev)
    if err != nil {
        return CheckInResult{}, err
    }
    w.publishRecorded(ctx, id, ev)

    task := ""
    if person.AssignedTask != nil {
        task = *person.AssignedTask
    }
    deviceID, err := w.sessions.Put(ctx, session.Entry{
        DeviceID:  req.DeviceID,
        FirstName: person.FirstName,
        LastName:  person.LastName,
        Role:      model.RoleTeamLead,
        Task:      task,
        Event:     person.Event,
    })
    if err != nil {
        w.log.Warn("session cache unavailable", zap.Error(err))
        deviceID = req.DeviceID
    }
    token, exp, err := issueToken(w.cfg, identityFor(person))
    if err != nil {
        return CheckInResult{}, err
    }
    link := &Link{
        URL:       teamLeadLink(w.cfg.BaseURL, person.FirstName, person.LastName, task, person.Event),
        ExpiresAt: w.now().Add(w.cfg.LinkTTL),
    }
    w.log.Info("team lead checked in",
        zap.String("name", person.FullName()),
        zap.String("task", task),
        zap.Int64("event_id", id))
    return CheckInResult{
        Role:         model.RoleTeamLead,
        EventID:      id,
        Link:         link,
        Token:        token,
        TokenExpires: exp,
        DeviceID:     deviceID,
        Message: fmt.Sprintf("Team Lead checked in. Your link expires in %d seconds.",
            int(w.cfg.LinkTTL.Seconds())),
    }, nil
}

// volunteerCheckIn writes one event; no link, no redirect.
func (w *Workflow) volunteerCheckIn(ctx context.Context, req CheckInRequest) (CheckInResult, error) {
    ev := model.CheckInEvent{
        FirstName:    req.FirstName,
        LastName:     req.LastName,
        Status:       model.StatusCheckedIn,
        StaffQR:      req.Staff,
        Event:        req.Event,
        SpecialEvent: req.SpecialEvent,
        CreatedAt:    w.now(),
    }
    id, err := w.events.Insert(ctx, ev)
    if err != nil {
        return CheckInResult{}, err
    }
    w.publishRecorded(ctx, id, ev)
    return CheckInResult{
        Role:    model.RoleVolunteer,
        EventID: id,
        Message: "Volunteer successfully checked in!",
    }, nil
}

// CheckOut appends a "Checked Out" event. It requires a prior
// "Checked In" event for the same person today; without one the
// transition is rejected and nothing is written.
func (w *Workflow) CheckOut(ctx context.Context, req CheckInRequest) (CheckInResult, error) {
    if err := w.validateNames(&req); err != nil {
        return CheckInResult{}, err
    }

    start, end := dayWindow(w.now())
    if _, err := w.events.LatestForDay(ctx, req.FirstName, req.LastName, model.StatusCheckedIn, start, end); err != nil {
        if isNotFound(err) {
            return CheckInResult{}, blocked("No check-in found for today. Please check in first.")
        }
        return CheckInResult{}, err
    }

    ev := model.CheckInEvent{
        FirstName:    req.FirstName,
        LastName:     req.LastName,
        Status:       model.StatusCheckedOut,
        StaffQR:      req.Staff,
        Event:        req.Event,
        SpecialEvent: req.SpecialEvent,
        CreatedAt:    w.now(),
    }
    id, err := w.events.Insert(ctx, ev)
    if err != nil {
        return CheckInResult{}, err
    }
    w.publishRecorded(ctx, id, ev)
    return CheckInResult{
        Role:    model.RoleVolunteer,
        EventID: id,
        Message: "Volunteer successfully checked out!",
    }, nil
}

// Logout clears the device session entry. The token itself simply
// expires; only the cache is invalidated.
func (w *Workflow) Logout(ctx context.Context, deviceID string) error {
    return w.sessions.Delete(ctx, deviceID)
}
