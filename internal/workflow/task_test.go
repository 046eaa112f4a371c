package workflow

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/renderatl/volunteer-checkin/internal/model"
)

func taskRequest(status model.TaskStatus) TaskRequest {
    return TaskRequest{
        FirstName: "Jane",
        LastName:  "Doe",
        Task:      "Registration",
        TeamLead:  "Morgan Reed",
        Event:     "render-2026",
        Status:    status,
    }
}

// checkInAndWait runs the staff check-in and moves the clock past the
// settling wait so task submissions are allowed.
func checkInAndWait(t *testing.T, f *fixture) {
    t.Helper()
    _, err := f.wf.CheckIn(context.Background(), baseRequest())
    require.NoError(t, err)
    f.advance(2 * time.Minute)
}

func TestTaskCheckInRequiresStaffCheckIn(t *testing.T) {
    f := newFixture()

    _, err := f.wf.TaskSubmit(context.Background(), taskRequest(model.TaskCheckIn))

    var pe *PreconditionError
    require.ErrorAs(t, err, &pe)
    assert.Equal(t, "No staff check-in found for today.", pe.Message)
    assert.Empty(t, f.tasks.rows)
}

func TestTaskCheckInEnforcesSettlingWait(t *testing.T) {
    f := newFixture()
    _, err := f.wf.CheckIn(context.Background(), baseRequest())
    require.NoError(t, err)

    f.advance(10 * time.Second) // still inside the one-minute wait

    _, err = f.wf.TaskSubmit(context.Background(), taskRequest(model.TaskCheckIn))

    var pe *PreconditionError
    require.ErrorAs(t, err, &pe)
    assert.Contains(t, pe.Message, "Please wait 1 more minute(s)")
}

func TestTaskCheckInOpensRecord(t *testing.T) {
    f := newFixture()
    checkInAndWait(t, f)

    res, err := f.wf.TaskSubmit(context.Background(), taskRequest(model.TaskCheckIn))

    require.NoError(t, err)
    assert.NotEmpty(t, res.RecordID)
    assert.Empty(t, res.ClosedID)
    require.Len(t, f.tasks.rows, 1)
    assert.True(t, f.tasks.rows[0].Open())
    assert.Equal(t, "Morgan Reed", f.tasks.rows[0].TeamLead)
}

func TestSameTaskResubmitIsIdempotent(t *testing.T) {
    f := newFixture()
    checkInAndWait(t, f)

    _, err := f.wf.TaskSubmit(context.Background(), taskRequest(model.TaskCheckIn))
    require.NoError(t, err)

    res, err := f.wf.TaskSubmit(context.Background(), taskRequest(model.TaskCheckIn))
    require.NoError(t, err)
    assert.Empty(t, res.RecordID)
    assert.Len(t, f.tasks.rows, 1, "no duplicate open record for the same task")
}

func TestReassignClosesOldAndOpensNew(t *testing.T) {
    f := newFixture()
    checkInAndWait(t, f)

    first, err := f.wf.TaskSubmit(context.Background(), taskRequest(model.TaskCheckIn))
    require.NoError(t, err)

    req := taskRequest(model.TaskCheckIn)
    req.Task = "Food Service"
    res, err := f.wf.Reassign(context.Background(), req)
    require.NoError(t, err)

    assert.Equal(t, first.RecordID, res.ClosedID)
    require.Len(t, f.tasks.rows, 2)
    assert.NotNil(t, f.tasks.rows[0].CheckoutTime, "old record must be closed")
    assert.True(t, f.tasks.rows[1].Open())
    assert.Equal(t, "Food Service", f.tasks.rows[1].Task)

    // Exactly one open record remains.
    open := 0
    for _, r := range f.tasks.rows {
        if r.Open() {
            open++
        }
    }
    assert.Equal(t, 1, open)
}

func TestBreakEventsAppendOnly(t *testing.T) {
    f := newFixture()
    checkInAndWait(t, f)

    _, err := f.wf.TaskSubmit(context.Background(), taskRequest(model.TaskCheckIn))
    require.NoError(t, err)

    out, err := f.wf.TaskSubmit(context.Background(), taskRequest(model.TaskBreakOut))
    require.NoError(t, err)
    assert.Equal(t, "Enjoy your break!", out.Message)

    back, err := f.wf.TaskSubmit(context.Background(), taskRequest(model.TaskBreakReturn))
    require.NoError(t, err)
    assert.Equal(t, "Welcome back from break!", back.Message)

    require.Len(t, f.tasks.rows, 3)
    assert.True(t, f.tasks.rows[0].Open(), "breaks never close the assignment")
}

func TestTaskCheckOutClosesOpenRecord(t *testing.T) {
    f := newFixture()
    checkInAndWait(t, f)

    opened, err := f.wf.TaskSubmit(context.Background(), taskRequest(model.TaskCheckIn))
    require.NoError(t, err)

    res, err := f.wf.TaskSubmit(context.Background(), taskRequest(model.TaskCheckOut))
    require.NoError(t, err)
    assert.Equal(t, opened.RecordID, res.ClosedID)
    assert.NotNil(t, f.tasks.rows[0].CheckoutTime)
}

func TestTaskCheckOutWithoutOpenRecord(t *testing.T) {
    f := newFixture()
    checkInAndWait(t, f)

    _, err := f.wf.TaskSubmit(context.Background(), taskRequest(model.TaskCheckOut))

    var pe *PreconditionError
    require.ErrorAs(t, err, &pe)
    assert.Contains(t, pe.Message, "No active task check-in")
}

func TestTaskValidation(t *testing.T) {
    tests := []struct {
        name   string
        mutate func(*TaskRequest)
        field  string
    }{
        {"missing name", func(r *TaskRequest) { r.FirstName = "" }, "name"},
        {"missing task", func(r *TaskRequest) { r.Task = "  " }, "task"},
        {"bogus status", func(r *TaskRequest) { r.Status = "Dancing" }, "status"},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            f := newFixture()
            req := taskRequest(model.TaskCheckIn)
            tt.mutate(&req)

            _, err := f.wf.TaskSubmit(context.Background(), req)

            var ve *ValidationError
            require.ErrorAs(t, err, &ve)
            assert.Equal(t, tt.field, ve.Field)
        })
    }
}

func TestReassignSkipsSettlingWait(t *testing.T) {
    f := newFixture()
    // No staff check-in at all; an admin-driven reassign still works.
    res, err := f.wf.Reassign(context.Background(), taskRequest(model.TaskCheckIn))
    require.NoError(t, err)
    assert.NotEmpty(t, res.RecordID)
}
