package workflow

import (
    "context"
    "errors"
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/renderatl/volunteer-checkin/internal/model"
    "github.com/renderatl/volunteer-checkin/internal/utils"
)

func baseRequest() CheckInRequest {
    return CheckInRequest{
        FirstName:  "Jane",
        LastName:   "Doe",
        Staff:      "Ashley",
        Event:      "render-2026",
        PrivacyAck: true,
    }
}

func TestCheckInValidation(t *testing.T) {
    tests := []struct {
        name   string
        mutate func(*CheckInRequest)
        field  string
    }{
        {"missing first name", func(r *CheckInRequest) { r.FirstName = " " }, "name"},
        {"missing last name", func(r *CheckInRequest) { r.LastName = "" }, "name"},
        {"missing staff", func(r *CheckInRequest) { r.Staff = "" }, "staff"},
        {"missing privacy ack", func(r *CheckInRequest) { r.PrivacyAck = false }, "privacyAck"},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            f := newFixture()
            req := baseRequest()
            tt.mutate(&req)

            _, err := f.wf.CheckIn(context.Background(), req)

            var ve *ValidationError
            require.ErrorAs(t, err, &ve)
            assert.Equal(t, tt.field, ve.Field)
            assert.Empty(t, f.events.rows, "nothing may be written on a rejected submission")
        })
    }
}

func TestCheckInAdminStationSkipsStaffField(t *testing.T) {
    f := newFixture()
    req := baseRequest()
    req.Staff = ""
    req.AdminStation = true

    res, err := f.wf.CheckIn(context.Background(), req)

    require.NoError(t, err)
    assert.Equal(t, model.RoleVolunteer, res.Role)
    require.Len(t, f.events.rows, 1)
    assert.Empty(t, f.events.rows[0].StaffQR)
}

func TestVolunteerCheckInWritesOneEvent(t *testing.T) {
    f := newFixture()

    res, err := f.wf.CheckIn(context.Background(), baseRequest())

    require.NoError(t, err)
    assert.Equal(t, model.RoleVolunteer, res.Role)
    assert.Nil(t, res.Link)
    assert.Empty(t, res.RedirectTo)
    assert.Empty(t, res.Token)
    require.Len(t, f.events.rows, 1)
    ev := f.events.rows[0]
    assert.Equal(t, "Jane", ev.FirstName)
    assert.Equal(t, "Ashley", ev.StaffQR)
    assert.Equal(t, model.StatusCheckedIn, ev.Status)
    require.Len(t, f.pub.published, 1)
    assert.Equal(t, res.EventID, f.pub.published[0].EventID)
}

func TestUnknownNameIsTreatedAsVolunteer(t *testing.T) {
    f := newFixture(model.Volunteer{
        FirstName: "Sam", LastName: "Lee", Role: model.RoleAdmin, Event: "render-2026",
    })
    req := baseRequest() // Jane Doe is not in the directory

    res, err := f.wf.CheckIn(context.Background(), req)

    require.NoError(t, err)
    assert.Equal(t, model.RoleVolunteer, res.Role)
    assert.Len(t, f.events.rows, 1)
}

func TestAdminCheckInWritesNoEventAndRedirects(t *testing.T) {
    f := newFixture(model.Volunteer{
        FirstName: "Sam", LastName: "Lee", Role: model.RoleAdmin, Event: "render-2026",
    })
    req := baseRequest()
    req.FirstName, req.LastName = "Sam", "Lee"

    res, err := f.wf.CheckIn(context.Background(), req)

    require.NoError(t, err)
    assert.Equal(t, model.RoleAdmin, res.Role)
    assert.Empty(t, f.events.rows, "admin check-in must not write an event")
    assert.Empty(t, f.pub.published)
    assert.Equal(t, "/admin/dashboard", res.RedirectTo)
    require.NotNil(t, res.Link)
    assert.Contains(t, res.Link.URL, "/admin/qr-code?")
    assert.Contains(t, res.Link.URL, "firstName=Sam")
    assert.True(t, res.Link.ExpiresAt.IsZero(), "admin links carry no expiry")

    id, err := utils.VerifyToken("test-secret", res.Token)
    require.NoError(t, err)
    assert.Equal(t, model.RoleAdmin, id.Role)

    entry, ok := f.sessions.entries[res.DeviceID]
    require.True(t, ok)
    assert.Equal(t, model.RoleAdmin, entry.Role)
}

func TestTeamLeadCheckInWritesExactlyOneEventWithExpiringLink(t *testing.T) {
    f := newFixture(model.Volunteer{
        FirstName: "Morgan", LastName: "Reed", Role: model.RoleTeamLead,
        AssignedTask: strptr("Registration"), Event: "render-2026",
    })
    req := baseRequest()
    req.FirstName, req.LastName = "Morgan", "Reed"

    res, err := f.wf.CheckIn(context.Background(), req)

    require.NoError(t, err)
    assert.Equal(t, model.RoleTeamLead, res.Role)
    require.Len(t, f.events.rows, 1, "team lead check-in writes exactly one event")
    require.NotNil(t, res.Link)
    assert.Contains(t, res.Link.URL, "/teamlead-qr?")
    assert.Contains(t, res.Link.URL, "task=Registration")
    assert.Contains(t, res.Link.URL, "event=render-2026")
    assert.Equal(t, f.now.Add(30*time.Second), res.Link.ExpiresAt)

    id, err := utils.VerifyToken("test-secret", res.Token)
    require.NoError(t, err)
    assert.Equal(t, "Registration", id.Task)

    require.Len(t, f.pub.published, 1)
}

func TestCheckOutRequiresSameDayCheckIn(t *testing.T) {
    f := newFixture()
    req := baseRequest()

    _, err := f.wf.CheckOut(context.Background(), req)

    var pe *PreconditionError
    require.ErrorAs(t, err, &pe)
    assert.True(t, strings.Contains(pe.Message, "check in first"), pe.Message)
    assert.Empty(t, f.events.rows)
}

func TestCheckOutAfterCheckIn(t *testing.T) {
    f := newFixture()
    req := baseRequest()

    _, err := f.wf.CheckIn(context.Background(), req)
    require.NoError(t, err)

    f.advance(4 * time.Hour)

    res, err := f.wf.CheckOut(context.Background(), req)
    require.NoError(t, err)
    require.Len(t, f.events.rows, 2)
    assert.Equal(t, model.StatusCheckedOut, f.events.rows[1].Status)
    assert.NotZero(t, res.EventID)
}

func TestCheckOutIgnoresYesterdaysCheckIn(t *testing.T) {
    f := newFixture()
    req := baseRequest()

    _, err := f.wf.CheckIn(context.Background(), req)
    require.NoError(t, err)

    f.advance(24 * time.Hour)

    _, err = f.wf.CheckOut(context.Background(), req)
    var pe *PreconditionError
    require.ErrorAs(t, err, &pe)
}

func TestAmbiguousNameIsRejected(t *testing.T) {
    twin := model.Volunteer{FirstName: "Jane", LastName: "Doe", Role: model.RoleTeamLead, Event: "render-2026"}
    f := newFixture(twin, twin)

    _, err := f.wf.CheckIn(context.Background(), baseRequest())

    assert.Error(t, err)
    assert.Empty(t, f.events.rows)
}

func TestLogoutClearsSession(t *testing.T) {
    f := newFixture(model.Volunteer{
        FirstName: "Sam", LastName: "Lee", Role: model.RoleAdmin, Event: "render-2026",
    })
    req := baseRequest()
    req.FirstName, req.LastName = "Sam", "Lee"

    res, err := f.wf.CheckIn(context.Background(), req)
    require.NoError(t, err)
    require.Contains(t, f.sessions.entries, res.DeviceID)

    require.NoError(t, f.wf.Logout(context.Background(), res.DeviceID))
    assert.NotContains(t, f.sessions.entries, res.DeviceID)
}

func TestCheckInErrorsAreTyped(t *testing.T) {
    f := newFixture()
    req := baseRequest()
    req.PrivacyAck = false

    _, err := f.wf.CheckIn(context.Background(), req)

    var pe *PreconditionError
    assert.False(t, errors.As(err, &pe), "validation failures are not precondition failures")
}
