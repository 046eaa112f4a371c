// Package notify posts alert notifications to an incoming-webhook URL.
package notify

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "time"

    "go.uber.org/zap"

    "github.com/renderatl/volunteer-checkin/internal/model"
)

// Notifier posts admin-facing alerts to a chat webhook. An empty URL
// disables posting entirely. Delivery is fire-and-forget: failures are
// logged and never retried, and the alert row is already durable by
// the time a post is attempted.
type Notifier struct {
    URL    string
    Client *http.Client
    Log    *zap.Logger
}

func New(url string, log *zap.Logger) *Notifier {
    return &Notifier{
        URL:    url,
        Client: &http.Client{Timeout: 5 * time.Second},
        Log:    log,
    }
}

type webhookPayload struct {
    Text string `json:"text"`
}

// AlertCreated posts a new alert when it is both admin-facing and an
// error. Info and warning alerts stay on the dashboards. The POST runs
// on its own goroutine with a detached timeout so a slow webhook never
// holds up the alert response.
func (n *Notifier) AlertCreated(_ context.Context, a model.Alert) {
    if n == nil || n.URL == "" {
        return
    }
    if a.Severity != model.SeverityError {
        return
    }
    if a.Audience != model.AudienceAdminAll && a.Audience != model.AudienceAdminOnly {
        return
    }

    text := fmt.Sprintf(":rotating_light: [%s] %s (event: %s)", a.Severity, a.Message, a.Event)
    body, err := json.Marshal(webhookPayload{Text: text})
    if err != nil {
        n.Log.Warn("webhook payload marshal failed", zap.Error(err))
        return
    }

    go n.post(body)
}

// post delivers one payload. It deliberately does not inherit the
// request context: the caller's response has already been written by
// the time the webhook round-trip finishes.
func (n *Notifier) post(body []byte) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
    if err != nil {
        n.Log.Warn("webhook request build failed", zap.Error(err))
        return
    }
    req.Header.Set("Content-Type", "application/json")

    resp, err := n.Client.Do(req)
    if err != nil {
        n.Log.Warn("webhook post failed", zap.Error(err))
        return
    }
    defer resp.Body.Close()
    if resp.StatusCode >= 300 {
        n.Log.Warn("webhook post rejected", zap.Int("status", resp.StatusCode))
    }
}
