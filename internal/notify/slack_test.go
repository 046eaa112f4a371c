package notify

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"

    "github.com/renderatl/volunteer-checkin/internal/model"
)

func adminErrorAlert() model.Alert {
    return model.Alert{
        Message:  "Registration desk is down",
        Severity: model.SeverityError,
        Audience: model.AudienceAdminAll,
        Event:    "render-2026",
    }
}

func TestAlertCreatedDoesNotBlockOnSlowWebhook(t *testing.T) {
    delivered := make(chan webhookPayload, 1)
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        time.Sleep(500 * time.Millisecond)
        var p webhookPayload
        _ = json.NewDecoder(r.Body).Decode(&p)
        delivered <- p
        w.WriteHeader(http.StatusOK)
    }))
    defer srv.Close()

    n := New(srv.URL, zap.NewNop())

    start := time.Now()
    n.AlertCreated(context.Background(), adminErrorAlert())
    elapsed := time.Since(start)

    assert.Less(t, elapsed, 100*time.Millisecond, "caller must not wait for the webhook round-trip")

    select {
    case p := <-delivered:
        assert.Contains(t, p.Text, "Registration desk is down")
        assert.Contains(t, p.Text, "render-2026")
    case <-time.After(3 * time.Second):
        t.Fatal("webhook was never called")
    }
}

func TestAlertCreatedSurvivesCancelledRequestContext(t *testing.T) {
    delivered := make(chan struct{}, 1)
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        delivered <- struct{}{}
        w.WriteHeader(http.StatusOK)
    }))
    defer srv.Close()

    n := New(srv.URL, zap.NewNop())

    // The HTTP request that created the alert is already finished.
    ctx, cancel := context.WithCancel(context.Background())
    cancel()
    n.AlertCreated(ctx, adminErrorAlert())

    select {
    case <-delivered:
    case <-time.After(3 * time.Second):
        t.Fatal("delivery must not depend on the caller's context")
    }
}

func TestAlertCreatedFilters(t *testing.T) {
    tests := []struct {
        name   string
        mutate func(*model.Alert)
    }{
        {"warning severity stays on the dashboard", func(a *model.Alert) { a.Severity = model.SeverityWarning }},
        {"info severity stays on the dashboard", func(a *model.Alert) { a.Severity = model.SeverityInfo }},
        {"everyone audience is not posted", func(a *model.Alert) { a.Audience = model.AudienceEveryone }},
        {"teamlead audience is not posted", func(a *model.Alert) { a.Audience = model.AudienceTeamLeadAll }},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            called := make(chan struct{}, 1)
            srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
                called <- struct{}{}
            }))
            defer srv.Close()

            n := New(srv.URL, zap.NewNop())
            a := adminErrorAlert()
            tt.mutate(&a)
            n.AlertCreated(context.Background(), a)

            select {
            case <-called:
                t.Fatal("webhook must not be called for this alert")
            case <-time.After(200 * time.Millisecond):
            }
        })
    }
}

func TestNilAndDisabledNotifier(t *testing.T) {
    var n *Notifier
    require.NotPanics(t, func() { n.AlertCreated(context.Background(), adminErrorAlert()) })

    disabled := New("", zap.NewNop())
    require.NotPanics(t, func() { disabled.AlertCreated(context.Background(), adminErrorAlert()) })
}
