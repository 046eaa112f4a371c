package middleware

// identity.go defines helper functions shared across middleware files.
// Currently it provides a requesterKey function that derives a stable
// per-person key from the verified identity stored in the Echo context.
// When no identity is present, "anon" is returned so unauthenticated
// traffic still buckets predictably.

import (
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/renderatl/volunteer-checkin/internal/utils"
)

// requesterKey extracts a person identifier from the identity stored in
// context. It returns "anon" when nobody is authenticated.
func requesterKey(c echo.Context) string {
    v := c.Get("identity")
    if v == nil {
        return "anon"
    }
    if id, ok := v.(utils.Identity); ok {
        k := strings.ToLower(id.FirstName + "." + id.LastName)
        if k != "." {
            return k
        }
    }
    return "anon"
}
