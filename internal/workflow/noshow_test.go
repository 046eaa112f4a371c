package workflow

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/renderatl/volunteer-checkin/internal/model"
)

func sched(first, last string) model.ScheduledVolunteer {
    return model.ScheduledVolunteer{FirstName: first, LastName: last, Task: "Registration"}
}

func checkedIn(first, last string) model.CheckInEvent {
    return model.CheckInEvent{FirstName: first, LastName: last, Status: model.StatusCheckedIn}
}

func TestNoShowsMatchesByName(t *testing.T) {
    scheduled := []model.ScheduledVolunteer{
        sched("Jane", "Doe"),
        sched("Sam", "Lee"),
        sched("Pat", "Kim"),
    }
    ins := []model.CheckInEvent{
        checkedIn("Jane", "Doe"),
        // Walk-ins never scheduled must not offset absentees.
        checkedIn("Alex", "Nguyen"),
        checkedIn("Riley", "Chen"),
    }

    missing := NoShows(scheduled, ins)

    require.Len(t, missing, 2)
    assert.Equal(t, "Sam", missing[0].FirstName)
    assert.Equal(t, "Pat", missing[1].FirstName)
}

func TestNoShowsIgnoresCaseAndWhitespace(t *testing.T) {
    scheduled := []model.ScheduledVolunteer{sched("Jane", "Doe")}
    ins := []model.CheckInEvent{checkedIn("  jane ", "DOE")}

    assert.Empty(t, NoShows(scheduled, ins))
}

func TestNoShowsEmptyInputs(t *testing.T) {
    assert.Empty(t, NoShows(nil, nil))

    scheduled := []model.ScheduledVolunteer{sched("Jane", "Doe")}
    missing := NoShows(scheduled, nil)
    require.Len(t, missing, 1)
    assert.Equal(t, "Jane", missing[0].FirstName)
}
