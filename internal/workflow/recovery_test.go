package workflow

import (
    "context"
    "fmt"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/renderatl/volunteer-checkin/internal/model"
)

func leadFixture() *fixture {
    return newFixture(model.Volunteer{
        FirstName: "Morgan", LastName: "Reed", Role: model.RoleTeamLead,
        AssignedTask: strptr("Registration"), Event: "render-2026",
    })
}

func TestRecoverUnknownName(t *testing.T) {
    f := leadFixture()

    _, err := f.wf.RecoverTeamLeadLink(context.Background(), "Jane", "Doe", "")

    var pe *PreconditionError
    require.ErrorAs(t, err, &pe)
    assert.Equal(t, "Team lead not found or role mismatch.", pe.Message)
}

func TestRecoverRoleMismatch(t *testing.T) {
    f := newFixture(model.Volunteer{
        FirstName: "Jane", LastName: "Doe", Role: model.RoleVolunteer, Event: "render-2026",
    })

    _, err := f.wf.RecoverTeamLeadLink(context.Background(), "Jane", "Doe", "")

    var pe *PreconditionError
    require.ErrorAs(t, err, &pe)
    assert.Equal(t, "Team lead not found or role mismatch.", pe.Message)
}

func TestRecoverWithoutAssignedTask(t *testing.T) {
    f := newFixture(model.Volunteer{
        FirstName: "Morgan", LastName: "Reed", Role: model.RoleTeamLead, Event: "render-2026",
    })

    _, err := f.wf.RecoverTeamLeadLink(context.Background(), "Morgan", "Reed", "")

    var pe *PreconditionError
    require.ErrorAs(t, err, &pe)
    assert.Contains(t, pe.Message, "No task is assigned")
}

func TestRecoverIssuesLinkAndAlert(t *testing.T) {
    f := leadFixture()

    res, err := f.wf.RecoverTeamLeadLink(context.Background(), "Morgan", "Reed", "kiosk-7")

    require.NoError(t, err)
    assert.Equal(t, 1, res.Attempts)
    assert.Contains(t, res.Link.URL, "/teamlead-qr?")
    assert.Contains(t, res.Link.URL, "task=Registration")
    assert.Equal(t, "kiosk-7", res.DeviceID)
    assert.NotEmpty(t, res.Token)

    require.Len(t, f.alerts.rows, 1)
    a := f.alerts.rows[0]
    assert.Equal(t, model.SeverityWarning, a.Severity)
    assert.Equal(t, model.AudienceAdminAll, a.Audience)
    assert.Equal(t, "QR code regenerated by Morgan Reed for task Registration", a.Message)
}

func TestRecoveryLifetimeCap(t *testing.T) {
    f := leadFixture()

    for i := 1; i <= 5; i++ {
        res, err := f.wf.RecoverTeamLeadLink(context.Background(), "Morgan", "Reed", "")
        require.NoError(t, err, "attempt %d should be allowed", i)
        assert.Equal(t, i, res.Attempts)
        assert.Equal(t, fmt.Sprintf("New QR code generated (%d of 5 regenerations used).", i), res.Message)
    }

    _, err := f.wf.RecoverTeamLeadLink(context.Background(), "Morgan", "Reed", "")
    var pe *PreconditionError
    require.ErrorAs(t, err, &pe)
    assert.Equal(t, "Maximum QR code regenerations reached. Please contact an admin.", pe.Message)
    assert.Len(t, f.alerts.rows, 5, "no alert for the rejected attempt")
}

func TestRecoveryCounterNeverResets(t *testing.T) {
    f := leadFixture()

    for i := 0; i < 5; i++ {
        _, err := f.wf.RecoverTeamLeadLink(context.Background(), "Morgan", "Reed", "")
        require.NoError(t, err)
    }

    // A new day does not help; the cap is lifetime.
    f.advance(48 * time.Hour)
    _, err := f.wf.RecoverTeamLeadLink(context.Background(), "Morgan", "Reed", "")
    assert.Error(t, err)
}
