package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/renderatl/volunteer-checkin/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer session token and
// injects the resolved identity into the request context.  The provided secret
// must match the one used when issuing tokens.  This middleware should wrap
// role-gated routes so that handlers can access the authenticated person via
// `c.Get("identity")` and `c.Get("role")`.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        // The returned handler is invoked for each incoming HTTP request.
        return func(c echo.Context) error {
            // Read the Authorization header.  A valid header should start
            // with "Bearer " followed by the JWT.  If it doesn't, respond
            // with 401 Unauthorized indicating that authentication is
            // required.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            // Remove the "Bearer " prefix to obtain the raw token string.
            raw := strings.TrimPrefix(auth, "Bearer ")

            // VerifyToken pins the signing method to HMAC, checks the
            // expiry and requires a resolvable name pair.  Any failure
            // collapses into a single 401 so callers never learn which
            // check failed.
            id, err := utils.VerifyToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            // Store the identity and its role in the context.  Handlers
            // and downstream middleware access these via c.Get().
            c.Set("identity", id)
            c.Set("role", string(id.Role))
            // Call the next handler in the chain and return its result.
            return next(c)
        }
    }
}
