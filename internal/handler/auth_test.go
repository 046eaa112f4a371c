package handler

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "net/url"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/renderatl/volunteer-checkin/internal/config"
    "github.com/renderatl/volunteer-checkin/internal/session"
)

func newAuthHandler() *AuthHandler {
    return NewAuthHandler(config.Config{JWTSecret: "test-secret"}, session.NewStore(nil, time.Hour))
}

func expiredLinkCheck(t *testing.T, h *AuthHandler, expires string) (int, map[string]any) {
    t.Helper()
    e := echo.New()
    q := url.Values{}
    if expires != "" {
        q.Set("expires", expires)
    }
    req := httptest.NewRequest(http.MethodGet, "/v1/links/check?"+q.Encode(), nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    require.NoError(t, h.ExpiredLink(c))

    var body map[string]any
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
    return rec.Code, body
}

func TestExpiredLink(t *testing.T) {
    h := newAuthHandler()

    tests := []struct {
        name    string
        expires time.Time
        expired bool
    }{
        {"future UTC expiry", time.Now().UTC().Add(time.Hour), false},
        {"past UTC expiry", time.Now().UTC().Add(-time.Hour), true},
        // Offsets survive percent-encoding: the "+" in "+02:00" must
        // not be decoded twice into a space.
        {"future with zone offset", time.Now().In(time.FixedZone("CEST", 2*3600)).Add(time.Hour), false},
        {"past with zone offset", time.Now().In(time.FixedZone("CEST", 2*3600)).Add(-time.Hour), true},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            code, body := expiredLinkCheck(t, h, tt.expires.Format(time.RFC3339))
            assert.Equal(t, http.StatusOK, code)
            assert.Equal(t, tt.expired, body["expired"])
        })
    }
}

func TestExpiredLinkRejectsBadInput(t *testing.T) {
    h := newAuthHandler()

    code, body := expiredLinkCheck(t, h, "")
    assert.Equal(t, http.StatusBadRequest, code)
    assert.Equal(t, "expires required", body["error"])

    code, body = expiredLinkCheck(t, h, "next tuesday")
    assert.Equal(t, http.StatusBadRequest, code)
    assert.Equal(t, "invalid expires", body["error"])
}

func TestNewAuthHandlerRejectsNilStore(t *testing.T) {
    assert.Panics(t, func() { NewAuthHandler(config.Config{}, nil) })
}
