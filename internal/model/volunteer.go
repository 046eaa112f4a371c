package model

import (
    "strings"
    "time"
)

// Role is the closed set of roles a directory entry can carry.  Role
// checks throughout the workflow switch exhaustively over these three
// values instead of comparing free-form strings; any unknown value read
// from the store collapses to RoleVolunteer via ParseRole.
type Role string

const (
    RoleVolunteer Role = "volunteer" // default role when no directory match exists
    RoleTeamLead  Role = "teamlead"  // receives a scannable task link on check-in
    RoleAdmin     Role = "admin"     // redirected to the admin dashboard, no event written
)

// ParseRole normalizes a raw role string from the directory into a Role.
// Comparison is case-insensitive; anything that is not "teamlead" or
// "admin" is treated as a plain volunteer.
func ParseRole(s string) Role {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case string(RoleAdmin):
        return RoleAdmin
    case string(RoleTeamLead):
        return RoleTeamLead
    default:
        return RoleVolunteer
    }
}

// Volunteer represents a row in the `volunteers` directory table.  The
// directory is read-only to the check-in workflow: it is maintained by
// event staff ahead of time and consulted to resolve a submitted name
// into a role and task assignment.  The (first_name, last_name) pair is
// unique at the schema level so name lookups cannot silently pick an
// arbitrary record among duplicates.
//
// Fields:
//  ID                 – primary key identifier.
//  FirstName          – volunteers.first_name.
//  LastName           – volunteers.last_name.
//  Role               – closed role enumeration (volunteer/teamlead/admin).
//  AssignedTask       – task assigned to a team lead (nullable).
//  Event              – event affiliation ("Render", "ATL Tech Week", ...).
//  CurrentTaskCheckin – id of the person's open task check-in record, if any.
//  CreatedAt          – timestamp of creation.
type Volunteer struct {
    ID                 uint64     // volunteers.id
    FirstName          string     // volunteers.first_name
    LastName           string     // volunteers.last_name
    Role               Role       // volunteers.role
    AssignedTask       *string    // volunteers.assigned_task (nullable)
    Event              string     // volunteers.event
    CurrentTaskCheckin *string    // volunteers.current_task_checkin_id (nullable)
    CreatedAt          time.Time  // volunteers.created_at
}

// FullName returns "First Last" as shown on dashboards and in generated
// links.
func (v Volunteer) FullName() string {
    return v.FirstName + " " + v.LastName
}
