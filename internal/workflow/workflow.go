// Package workflow implements the check-in rules: who may check in or
// out, how roles change the outcome of a submission, how task
// assignment opens and closes records, and when a volunteer counts as
// overdue. Handlers stay thin; every rule that the forms used to
// enforce ad hoc lives here, against small store interfaces so the
// rules are testable without a database.
package workflow

import (
    "context"
    "time"

    "go.uber.org/zap"

    "github.com/renderatl/volunteer-checkin/internal/config"
    "github.com/renderatl/volunteer-checkin/internal/model"
    "github.com/renderatl/volunteer-checkin/internal/queue"
    "github.com/renderatl/volunteer-checkin/internal/repository"
    "github.com/renderatl/volunteer-checkin/internal/session"
)

// DirectoryStore is the read side of the volunteer directory.
type DirectoryStore interface {
    FindByName(ctx context.Context, first, last string) ([]model.Volunteer, error)
    FindTeamLead(ctx context.Context, first, last string) (model.Volunteer, error)
}

// CheckInStore appends and queries check-in events.
type CheckInStore interface {
    Insert(ctx context.Context, ev model.CheckInEvent) (int64, error)
    LatestForDay(ctx context.Context, first, last string, status model.CheckInStatus, dayStart, dayEnd time.Time) (model.CheckInEvent, error)
}

// TaskStore owns task check-in records and the transactional
// close-old/open-new sequence.
type TaskStore interface {
    Assign(ctx context.Context, rec model.TaskCheckinRecord) (repository.AssignOutcome, error)
    AppendEvent(ctx context.Context, rec model.TaskCheckinRecord) error
    CloseOpen(ctx context.Context, rec model.TaskCheckinRecord) (string, error)
}

// RecoveryStore increments the per-name link regeneration counter.
type RecoveryStore interface {
    Increment(ctx context.Context, key string, max int) (int, error)
}

// AlertStore writes alerts; the workflow only ever inserts (QR
// regeneration notices).
type AlertStore interface {
    Insert(ctx context.Context, a model.Alert) (int64, error)
}

// SessionCache stores device session entries for role-gated screens.
type SessionCache interface {
    Put(ctx context.Context, e session.Entry) (string, error)
    Delete(ctx context.Context, deviceID string) error
}

// Publisher fans recorded check-ins out to the message broker. A nil
// Publisher disables publishing; publish failures are logged and never
// fail the submission.
type Publisher interface {
    CheckInRecorded(ctx context.Context, ev queue.CheckInRecordedEvent) error
}

// Workflow bundles the stores and configuration behind the check-in
// rules.
type Workflow struct {
    cfg      config.Config
    log      *zap.Logger
    dir      DirectoryStore
    events   CheckInStore
    tasks    TaskStore
    recovery RecoveryStore
    alerts   AlertStore
    sessions SessionCache
    pub      Publisher

    now func() time.Time // swapped out by tests
}

// New wires a Workflow. log must be non-nil; pub may be nil.
func New(cfg config.Config, log *zap.Logger, dir DirectoryStore, events CheckInStore,
    tasks TaskStore, recovery RecoveryStore, alerts AlertStore, sessions SessionCache,
    pub Publisher) *Workflow {
    return &Workflow{
        cfg:      cfg,
        log:      log,
        dir:      dir,
        events:   events,
        tasks:    tasks,
        recovery: recovery,
        alerts:   alerts,
        sessions: sessions,
        pub:      pub,
        now:      time.Now,
    }
}

// dayWindow returns the UTC start and end of the day containing t.
// "Today" checks (check-out guard, task check-in precondition) all use
// this window.
func dayWindow(t time.Time) (time.Time, time.Time) {
    u := t.UTC()
    start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
    end := time.Date(u.Year(), u.Month(), u.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC)
    return start, end
}

// publishRecorded fans a freshly written event out to the broker. Loss
// here is acceptable: the row is already durable, the queue only feeds
// the audit log.
func (w *Workflow) publishRecorded(ctx context.Context, id int64, ev model.CheckInEvent) {
    if w.pub == nil {
        return
    }
    msg := queue.CheckInRecordedEvent{
        EventID:      id,
        FirstName:    ev.FirstName,
        LastName:     ev.LastName,
        Status:       string(ev.Status),
        StaffQR:      ev.StaffQR,
        Event:        ev.Event,
        SpecialEvent: ev.SpecialEvent,
        RecordedAt:   ev.CreatedAt.UTC().Format(time.RFC3339),
    }
    if err := w.pub.CheckInRecorded(ctx, msg); err != nil {
        w.log.Warn("publish check-in event failed",
            zap.Int64("event_id", id), zap.Error(err))
    }
}
