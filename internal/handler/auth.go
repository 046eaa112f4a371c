package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/renderatl/volunteer-checkin/internal/config"
    "github.com/renderatl/volunteer-checkin/internal/session"
    "github.com/renderatl/volunteer-checkin/internal/utils"
)

// AuthHandler verifies session tokens and resolves cached device
// sessions. Check-in is the only way to obtain a token; there are no
// credentials to log in with.
type AuthHandler struct {
    Cfg      config.Config
    Sessions *session.Store
}

func NewAuthHandler(cfg config.Config, s *session.Store) *AuthHandler {
    if s == nil {
        panic("nil session store passed to NewAuthHandler")
    }
    return &AuthHandler{Cfg: cfg, Sessions: s}
}

type verifyReq struct {
    Token string `json:"token"`
}

type identityResp struct {
    FirstName string `json:"first_name"`
    LastName  string `json:"last_name"`
    Role      string `json:"role"`
    Task      string `json:"task,omitempty"`
    Event     string `json:"event,omitempty"`
}

func identityJSON(id utils.Identity) identityResp {
    return identityResp{
        FirstName: id.FirstName,
        LastName:  id.LastName,
        Role:      string(id.Role),
        Task:      id.Task,
        Event:     id.Event,
    }
}

// Verify handles POST /v1/auth/verify. Role-gated pages call it on
// every load; an invalid or expired token bounces the visitor back to
// the check-in form.
func (h *AuthHandler) Verify(c echo.Context) error {
    var req verifyReq
    if err := c.Bind(&req); err != nil || req.Token == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
    }
    id, err := utils.VerifyToken(h.Cfg.JWTSecret, req.Token)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
    }
    return c.JSON(http.StatusOK, identityJSON(id))
}

// Session handles GET /v1/auth/session?deviceId=X: a device returning
// within the session TTL skips the form and goes straight to its page.
func (h *AuthHandler) Session(c echo.Context) error {
    deviceID := c.QueryParam("deviceId")
    if deviceID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "deviceId required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    e, err := h.Sessions.Get(ctx, deviceID)
    if err != nil {
        if errors.Is(err, session.ErrNoSession) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "no session"})
        }
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, e)
}

// Me handles GET /v1/me behind the JWT middleware.
func (h *AuthHandler) Me(c echo.Context) error {
    id, ok := currentIdentity(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
    }
    return c.JSON(http.StatusOK, identityJSON(id))
}

// ExpiredLink handles GET /v1/links/check?expires=RFC3339: the QR page
// polls it to flip to the expired state exactly when the countdown
// ends. QueryParam already percent-decodes the value.
func (h *AuthHandler) ExpiredLink(c echo.Context) error {
    raw := c.QueryParam("expires")
    if raw == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "expires required"})
    }
    exp, err := time.Parse(time.RFC3339, raw)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid expires"})
    }
    return c.JSON(http.StatusOK, echo.Map{"expired": time.Now().UTC().After(exp)})
}
