package workflow

import (
    "context"
    "errors"
    "time"

    "github.com/renderatl/volunteer-checkin/internal/config"
    "github.com/renderatl/volunteer-checkin/internal/model"
    "github.com/renderatl/volunteer-checkin/internal/repository"
    "github.com/renderatl/volunteer-checkin/internal/utils"
)

// ResolveIdentity looks a submitted name up in the volunteer
// directory. A miss is not an error: the submitter simply acts as a
// plain volunteer and found is false. A lookup matching more than one
// row returns repository.ErrAmbiguousName; the workflow refuses to
// guess which record wins.
func (w *Workflow) ResolveIdentity(ctx context.Context, first, last string) (model.Volunteer, bool, error) {
    matches, err := w.dir.FindByName(ctx, first, last)
    if err != nil {
        return model.Volunteer{}, false, err
    }
    switch len(matches) {
    case 0:
        return model.Volunteer{Role: model.RoleVolunteer}, false, nil
    case 1:
        return matches[0], true, nil
    default:
        return model.Volunteer{}, false, repository.ErrAmbiguousName
    }
}

// identityFor converts a directory record into the token payload for
// an admin or team lead session.
func identityFor(v model.Volunteer) utils.Identity {
    id := utils.Identity{
        FirstName: v.FirstName,
        LastName:  v.LastName,
        Role:      v.Role,
        Event:     v.Event,
    }
    if v.AssignedTask != nil {
        id.Task = *v.AssignedTask
    }
    return id
}

// issueToken signs a session token for a resolved identity using the
// configured secret and TTL.
func issueToken(cfg config.Config, id utils.Identity) (string, time.Time, error) {
    return utils.IssueToken(cfg.JWTSecret, id, cfg.TokenTTLMin)
}

func isNotFound(err error) bool {
    return errors.Is(err, repository.ErrNotFound)
}
