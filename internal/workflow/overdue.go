package workflow

import (
    "sort"
    "strings"
    "time"

    "github.com/renderatl/volunteer-checkin/internal/model"
)

// Task-overdue thresholds. Food crews rotate faster than everyone
// else, so their interval is shorter.
const (
    foodTaskThreshold  = 2 * time.Hour
    otherTaskThreshold = 3 * time.Hour
    breakThreshold     = 30 * time.Minute
)

// TaskThreshold returns the overdue threshold for a task. Any task
// whose name contains "food" (case-insensitive) uses the shorter food
// interval.
func TaskThreshold(task string) time.Duration {
    if strings.Contains(strings.ToLower(task), "food") {
        return foodTaskThreshold
    }
    return otherTaskThreshold
}

// OverdueStatus classifies one open assignment against its threshold.
type OverdueStatus struct {
    Overdue   bool          `json:"overdue"`
    OverdueBy time.Duration `json:"overdue_by,omitempty"`
}

// ClassifyTask reports whether an assignment opened at checkin is
// overdue as of now, and by how much.
func ClassifyTask(task string, checkin, now time.Time) OverdueStatus {
    elapsed := now.Sub(checkin)
    limit := TaskThreshold(task)
    if elapsed <= limit {
        return OverdueStatus{}
    }
    return OverdueStatus{Overdue: true, OverdueBy: elapsed - limit}
}

// BreakOverdue is one volunteer who left for a break and has not come
// back within the break threshold.
type BreakOverdue struct {
    FirstName string        `json:"first_name"`
    LastName  string        `json:"last_name"`
    Task      string        `json:"task"`
    LeftAt    time.Time     `json:"left_at"`
    OverdueBy time.Duration `json:"overdue_by"`
}

// OverdueBreaks scans a set of task rows for volunteers whose latest
// break-out has no newer break-return and is older than the break
// threshold. Rows may span several people and tasks; only the newest
// break pair per person decides.
func OverdueBreaks(rows []model.TaskCheckinRecord, now time.Time) []BreakOverdue {
    type key struct{ first, last string }
    lastOut := map[key]model.TaskCheckinRecord{}
    lastBack := map[key]time.Time{}

    for _, r := range rows {
        k := key{r.FirstName, r.LastName}
        switch r.Status {
        case model.TaskBreakOut:
            if prev, ok := lastOut[k]; !ok || r.CheckinTime.After(prev.CheckinTime) {
                lastOut[k] = r
            }
        case model.TaskBreakReturn:
            if prev, ok := lastBack[k]; !ok || r.CheckinTime.After(prev) {
                lastBack[k] = r.CheckinTime
            }
        }
    }

    var out []BreakOverdue
    for k, r := range lastOut {
        if back, ok := lastBack[k]; ok && back.After(r.CheckinTime) {
            continue // came back
        }
        elapsed := now.Sub(r.CheckinTime)
        if elapsed <= breakThreshold {
            continue
        }
        out = append(out, BreakOverdue{
            FirstName: k.first,
            LastName:  k.last,
            Task:      r.Task,
            LeftAt:    r.CheckinTime,
            OverdueBy: elapsed - breakThreshold,
        })
    }
    sort.Slice(out, func(i, j int) bool { return out[i].OverdueBy > out[j].OverdueBy })
    return out
}

// OverdueAssignment is one open assignment past its task threshold.
type OverdueAssignment struct {
    Record    model.TaskCheckinRecord `json:"record"`
    OverdueBy time.Duration           `json:"overdue_by"`
}

// OverdueAssignments filters open records down to the ones past their
// per-task threshold, longest overdue first.
func OverdueAssignments(open []model.TaskCheckinRecord, now time.Time) []OverdueAssignment {
    var out []OverdueAssignment
    for _, r := range open {
        st := ClassifyTask(r.Task, r.CheckinTime, now)
        if !st.Overdue {
            continue
        }
        out = append(out, OverdueAssignment{Record: r, OverdueBy: st.OverdueBy})
    }
    sort.Slice(out, func(i, j int) bool { return out[i].OverdueBy > out[j].OverdueBy })
    return out
}
