package handler // handler defines http handlers

import (
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/renderatl/volunteer-checkin/internal/repository"
    "github.com/renderatl/volunteer-checkin/internal/utils"
    "github.com/renderatl/volunteer-checkin/internal/workflow"
)

// dbTimeout bounds every handler-initiated database call.
const dbTimeout = 5 * time.Second

// respondError maps workflow and repository errors onto HTTP statuses.
// Validation failures re-render the form (400), precondition failures
// are conflicts the user can resolve (409), ambiguous names are
// conflicts an admin must resolve (409), and anything else is a 500
// with a generic message so internals never leak.
func respondError(c echo.Context, err error) error {
    var ve *workflow.ValidationError
    if errors.As(err, &ve) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Message, "field": ve.Field})
    }
    var pe *workflow.PreconditionError
    if errors.As(err, &pe) {
        return c.JSON(http.StatusConflict, echo.Map{"error": pe.Message})
    }
    if errors.Is(err, repository.ErrAmbiguousName) {
        return c.JSON(http.StatusConflict, echo.Map{"error": "Multiple people share this name. Please contact an admin."})
    }
    if errors.Is(err, repository.ErrNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// currentIdentity returns the verified identity stored by the JWT
// middleware, or false when the route was somehow reached without one.
func currentIdentity(c echo.Context) (utils.Identity, bool) {
    id, ok := c.Get("identity").(utils.Identity)
    return id, ok
}

// queryOr returns the named query parameter or a default.
func queryOr(c echo.Context, name, def string) string {
    if v := strings.TrimSpace(c.QueryParam(name)); v != "" {
        return v
    }
    return def
}

// dateParam returns the ?date= query parameter, defaulting to today's
// UTC date. Schedules key on YYYY-MM-DD strings.
func dateParam(c echo.Context) string {
    return queryOr(c, "date", time.Now().UTC().Format("2006-01-02"))
}

// dayBoundsFor returns the UTC start and end of the given YYYY-MM-DD
// date, falling back to today when the date does not parse. Dashboard
// counts and report listings all use this window.
func dayBoundsFor(date string) (time.Time, time.Time) {
    day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
    if err != nil {
        u := time.Now().UTC()
        day = time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
    }
    return day, day.Add(24*time.Hour - time.Nanosecond)
}
