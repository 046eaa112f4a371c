package workflow

import (
    "strings"

    "github.com/renderatl/volunteer-checkin/internal/model"
)

// NoShows returns the scheduled volunteers with no check-in event among
// ins. Matching is by trimmed, case-insensitive name pair, so a
// walk-in who was never scheduled cannot mask a scheduled absentee the
// way a raw count subtraction would.
func NoShows(scheduled []model.ScheduledVolunteer, ins []model.CheckInEvent) []model.ScheduledVolunteer {
    seen := make(map[string]bool, len(ins))
    for _, ev := range ins {
        seen[nameKey(ev.FirstName, ev.LastName)] = true
    }
    out := make([]model.ScheduledVolunteer, 0)
    for _, s := range scheduled {
        if !seen[nameKey(s.FirstName, s.LastName)] {
            out = append(out, s)
        }
    }
    return out
}

func nameKey(first, last string) string {
    return strings.ToLower(strings.TrimSpace(first)) + "|" + strings.ToLower(strings.TrimSpace(last))
}
