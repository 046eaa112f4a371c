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

// In-memory stand-ins for the store interfaces. They model just enough
// behavior for the rules under test: the directory is a fixed slice,
// events append to a slice, task assignment mimics the close-old/open-
// new transaction, and the recovery counter caps like the real table.

type fakeDirectory struct {
    people []model.Volunteer
}

func (f *fakeDirectory) FindByName(_ context.Context, first, last string) ([]model.Volunteer, error) {
    var out []model.Volunteer
    for _, p := range f.people {
        if p.FirstName == first && p.LastName == last {
            out = append(out, p)
        }
    }
    return out, nil
}

func (f *fakeDirectory) FindTeamLead(_ context.Context, first, last string) (model.Volunteer, error) {
    var leads []model.Volunteer
    for _, p := range f.people {
        if p.FirstName == first && p.LastName == last && p.Role == model.RoleTeamLead {
            leads = append(leads, p)
        }
    }
    switch len(leads) {
    case 0:
        return model.Volunteer{}, repository.ErrNotFound
    case 1:
        return leads[0], nil
    default:
        return model.Volunteer{}, repository.ErrAmbiguousName
    }
}

type fakeEvents struct {
    rows   []model.CheckInEvent
    nextID int64
}

func (f *fakeEvents) Insert(_ context.Context, ev model.CheckInEvent) (int64, error) {
    f.nextID++
    ev.ID = f.nextID
    f.rows = append(f.rows, ev)
    return ev.ID, nil
}

func (f *fakeEvents) LatestForDay(_ context.Context, first, last string, status model.CheckInStatus, dayStart, dayEnd time.Time) (model.CheckInEvent, error) {
    var found *model.CheckInEvent
    for i := range f.rows {
        ev := f.rows[i]
        if ev.FirstName != first || ev.LastName != last || ev.Status != status {
            continue
        }
        if ev.CreatedAt.Before(dayStart) || ev.CreatedAt.After(dayEnd) {
            continue
        }
        if found == nil || ev.CreatedAt.After(found.CreatedAt) {
            found = &ev
        }
    }
    if found == nil {
        return model.CheckInEvent{}, repository.ErrNotFound
    }
    return *found, nil
}

type fakeTasks struct {
    rows []model.TaskCheckinRecord
}

func (f *fakeTasks) openFor(first, last string) *model.TaskCheckinRecord {
    for i := range f.rows {
        r := &f.rows[i]
        if r.FirstName == first && r.LastName == last && r.Open() {
            return r
        }
    }
    return nil
}

func (f *fakeTasks) Assign(_ context.Context, rec model.TaskCheckinRecord) (repository.AssignOutcome, error) {
    var outcome repository.AssignOutcome
    if open := f.openFor(rec.FirstName, rec.LastName); open != nil {
        if open.Task == rec.Task {
            return outcome, nil
        }
        t := rec.CheckinTime
        open.CheckoutTime = &t
        outcome.ClosedID = open.ID
    }
    rec.Status = model.TaskCheckIn
    f.rows = append(f.rows, rec)
    outcome.Created = true
    return outcome, nil
}

func (f *fakeTasks) AppendEvent(_ context.Context, rec model.TaskCheckinRecord) error {
    f.rows = append(f.rows, rec)
    return nil
}

func (f *fakeTasks) CloseOpen(_ context.Context, rec model.TaskCheckinRecord) (string, error) {
    open := f.openFor(rec.FirstName, rec.LastName)
    if open == nil {
        return "", repository.ErrNotFound
    }
    t := rec.CheckinTime
    open.CheckoutTime = &t
    rec.Status = model.TaskCheckOut
    rec.Task = open.Task
    f.rows = append(f.rows, rec)
    return open.ID, nil
}

type fakeRecovery struct {
    counts map[string]int
}

func (f *fakeRecovery) Increment(_ context.Context, key string, max int) (int, error) {
    if f.counts == nil {
        f.counts = map[string]int{}
    }
    if f.counts[key] >= max {
        return f.counts[key], repository.ErrRecoveryExhausted
    }
    f.counts[key]++
    return f.counts[key], nil
}

type fakeAlerts struct {
    rows []model.Alert
}

func (f *fakeAlerts) Insert(_ context.Context, a model.Alert) (int64, error) {
    a.ID = int64(len(f.rows) + 1)
    f.rows = append(f.rows, a)
    return a.ID, nil
}

type fakeSessions struct {
    entries map[string]session.Entry
}

func (f *fakeSessions) Put(_ context.Context, e session.Entry) (string, error) {
    if f.entries == nil {
        f.entries = map[string]session.Entry{}
    }
    if e.DeviceID == "" {
        e.DeviceID = "device-1"
    }
    f.entries[e.DeviceID] = e
    return e.DeviceID, nil
}

func (f *fakeSessions) Delete(_ context.Context, deviceID string) error {
    delete(f.entries, deviceID)
    return nil
}

type fakePublisher struct {
    published []queue.CheckInRecordedEvent
}

func (f *fakePublisher) CheckInRecorded(_ context.Context, ev queue.CheckInRecordedEvent) error {
    f.published = append(f.published, ev)
    return nil
}

// fixture bundles a workflow with its fakes and a frozen clock.
type fixture struct {
    wf       *Workflow
    dir      *fakeDirectory
    events   *fakeEvents
    tasks    *fakeTasks
    recovery *fakeRecovery
    alerts   *fakeAlerts
    sessions *fakeSessions
    pub      *fakePublisher
    now      time.Time
}

func strptr(s string) *string { return &s }

func newFixture(people ...model.Volunteer) *fixture {
    f := &fixture{
        dir:      &fakeDirectory{people: people},
        events:   &fakeEvents{},
        tasks:    &fakeTasks{},
        recovery: &fakeRecovery{},
        alerts:   &fakeAlerts{},
        sessions: &fakeSessions{},
        pub:      &fakePublisher{},
        now:      time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
    }
    cfg := config.Config{
        JWTSecret:   "test-secret",
        TokenTTLMin: 30,
        BaseURL:     "http://localhost:5173",
        LinkTTL:     30 * time.Second,
        MinTaskWait: time.Minute,
        MaxRecovery: 5,
        SessionTTL:  12 * time.Hour,
    }
    f.wf = New(cfg, zap.NewNop(), f.dir, f.events, f.tasks, f.recovery, f.alerts, f.sessions, f.pub)
    f.wf.now = func() time.Time { return f.now }
    return f
}

// advance moves the frozen clock forward.
func (f *fixture) advance(d time.Duration) { f.now = f.now.Add(d) }
