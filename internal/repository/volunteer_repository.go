package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/renderatl/volunteer-checkin/internal/model"
)

// VolunteerRepo reads the `volunteers` directory table. The directory
// is maintained outside this service; the workflow only ever reads it,
// except for the current-task pointer which the transactional task
// reassignment updates.
type VolunteerRepo struct{ DB *sql.DB }

func NewVolunteerRepo(db *sql.DB) *VolunteerRepo { return &VolunteerRepo{DB: db} }

const volunteerCols = "id, first_name, last_name, role, assigned_task, event, current_task_checkin_id, created_at"

func scanVolunteer(row interface{ Scan(...any) error }) (model.Volunteer, error) {
    var v model.Volunteer
    var role string
    var task, pointer sql.NullString
    err := row.Scan(&v.ID, &v.FirstName, &v.LastName, &role, &task, &v.Event, &pointer, &v.CreatedAt)
    if err != nil {
        return model.Volunteer{}, err
    }
    v.Role = model.ParseRole(role)
    if task.Valid {
        t := task.String
        v.AssignedTask = &t
    }
    if pointer.Valid {
        p := pointer.String
        v.CurrentTaskCheckin = &p
    }
    return v, nil
}

// FindByName returns all directory rows matching the exact
// (first name, last name) pair. Names are trimmed before comparison;
// matching is otherwise exact, the same equality filter the check-in
// form has always used. Callers decide how to treat zero or multiple
// matches.
func (r *VolunteerRepo) FindByName(ctx context.Context, first, last string) ([]model.Volunteer, error) {
    first = strings.TrimSpace(first)
    last = strings.TrimSpace(last)
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+volunteerCols+" FROM volunteers WHERE first_name=? AND last_name=?",
        first, last)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Volunteer
    for rows.Next() {
        v, err := scanVolunteer(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, v)
    }
    return out, rows.Err()
}

// FindTeamLead returns the directory row for a team lead with the given
// name. It returns ErrNotFound when no row matches the name with the
// teamlead role and ErrAmbiguousName when more than one does.
func (r *VolunteerRepo) FindTeamLead(ctx context.Context, first, last string) (model.Volunteer, error) {
    matches, err := r.FindByName(ctx, first, last)
    if err != nil {
        return model.Volunteer{}, err
    }
    var leads []model.Volunteer
    for _, m := range matches {
        if m.Role == model.RoleTeamLead {
            leads = append(leads, m)
        }
    }
    switch len(leads) {
    case 0:
        return model.Volunteer{}, ErrNotFound
    case 1:
        return leads[0], nil
    default:
        return model.Volunteer{}, ErrAmbiguousName
    }
}
