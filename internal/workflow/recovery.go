package workflow

import (
    "context"
    "errors"
    "fmt"
    "strings"
    "time"

    "go.uber.org/zap"

    "github.com/renderatl/volunteer-checkin/internal/model"
    "github.com/renderatl/volunteer-checkin/internal/repository"
    "github.com/renderatl/volunteer-checkin/internal/session"
)

// RecoveryResult is a regenerated team-lead link plus the session
// issued alongside it.
type RecoveryResult struct {
    Link         Link      `json:"link"`
    Attempts     int       `json:"attempts"`
    Token        string    `json:"token,omitempty"`
    TokenExpires time.Time `json:"token_expires,omitempty"`
    DeviceID     string    `json:"device_id,omitempty"`
    Message      string    `json:"message"`
}

// RecoverTeamLeadLink regenerates a team lead's access link after they
// lost theirs (expired countdown, closed tab). Each name pair gets a
// lifetime-capped number of regenerations; every successful one leaves
// an admin-facing alert so the desk can spot abuse.
func (w *Workflow) RecoverTeamLeadLink(ctx context.Context, first, last, deviceID string) (RecoveryResult, error) {
    first = strings.TrimSpace(first)
    last = strings.TrimSpace(last)
    if first == "" || last == "" {
        return RecoveryResult{}, invalid("name", "Please enter both first and last name.")
    }

    lead, err := w.dir.FindTeamLead(ctx, first, last)
    if err != nil {
        if isNotFound(err) {
            return RecoveryResult{}, blocked("Team lead not found or role mismatch.")
        }
        return RecoveryResult{}, err
    }
    if lead.AssignedTask == nil || *lead.AssignedTask == "" {
        return RecoveryResult{}, blocked("No task is assigned to this team lead. Please contact an admin.")
    }
    task := *lead.AssignedTask

    count, err := w.recovery.Increment(ctx, repository.RecoveryKey(first, last), w.cfg.MaxRecovery)
    if err != nil {
        if errors.Is(err, repository.ErrRecoveryExhausted) {
            return RecoveryResult{}, blocked("Maximum QR code regenerations reached. Please contact an admin.")
        }
        return RecoveryResult{}, err
    }

    devID, err := w.sessions.Put(ctx, session.Entry{
        DeviceID:  deviceID,
        FirstName: lead.FirstName,
        LastName:  lead.LastName,
        Role:      model.RoleTeamLead,
        Task:      task,
        Event:     lead.Event,
    })
    if err != nil {
        w.log.Warn("session cache unavailable", zap.Error(err))
        devID = deviceID
    }
    token, exp, err := issueToken(w.cfg, identityFor(lead))
    if err != nil {
        return RecoveryResult{}, err
    }

    if _, err := w.alerts.Insert(ctx, model.Alert{
        Message:   fmt.Sprintf("QR code regenerated by %s for task %s", lead.FullName(), task),
        Severity:  model.SeverityWarning,
        Audience:  model.AudienceAdminAll,
        Event:     lead.Event,
        CreatedAt: w.now(),
    }); err != nil {
        // The link is already out; losing the notice is the lesser evil.
        w.log.Warn("recovery alert insert failed", zap.Error(err))
    }

    w.log.Info("team lead link regenerated",
        zap.String("name", lead.FullName()),
        zap.String("task", task),
        zap.Int("attempts", count))

    return RecoveryResult{
        Link: Link{
            URL:       teamLeadLink(w.cfg.BaseURL, lead.FirstName, lead.LastName, task, lead.Event),
            ExpiresAt: w.now().Add(w.cfg.LinkTTL),
        },
        Attempts:     count,
        Token:        token,
        TokenExpires: exp,
        DeviceID:     devID,
        Message:      fmt.Sprintf("New QR code generated (%d of %d regenerations used).", count, w.cfg.MaxRecovery),
    }, nil
}
