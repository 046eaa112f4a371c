package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing
    "github.com/redis/go-redis/v9"

    "github.com/renderatl/volunteer-checkin/internal/config"
    "github.com/renderatl/volunteer-checkin/internal/handler"    // import the handlers that implement business logic
    "github.com/renderatl/volunteer-checkin/internal/middleware" // import middleware for JWT authentication and role enforcement
    "github.com/renderatl/volunteer-checkin/internal/model"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
    CheckIn   *handler.CheckInHandler
    Task      *handler.TaskHandler
    Recovery  *handler.RecoveryHandler
    Auth      *handler.AuthHandler
    Dashboard *handler.DashboardHandler
    TeamLead  *handler.TeamLeadHandler
    Alerts    *handler.AlertHandler
    Traffic   *handler.TrafficHandler
    Schedule  *handler.ScheduleHandler
    Reports   *handler.ReportsHandler
}

// Register mounts every route on the provided Echo instance.
//
// Route layout:
//   - /healthz and the check-in forms are open; anyone at a kiosk can
//     submit them.
//   - /v1/admin/* requires an admin session token.
//   - /v1/teamlead/* accepts team lead or admin tokens.
//
// Dashboard reads sit behind the Redis response cache so polling
// kiosks are served from Redis within the cache TTL. The token-bucket
// rate limiter wraps everything.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    // Health check for load balancers and monitors.
    e.GET("/healthz", handler.Health)

    // Check-in and check-out forms. Open by design: the kiosk has no
    // session before the first check-in of the day.
    e.POST("/v1/checkin", h.CheckIn.CheckIn)
    e.POST("/v1/checkout", h.CheckIn.CheckOut)

    // Task check-in form, reached through a team lead's link.
    e.POST("/v1/task", h.Task.Submit)

    // Team lead link recovery.
    e.POST("/v1/recovery", h.Recovery.Recover)

    // Session plumbing.
    e.POST("/v1/auth/verify", h.Auth.Verify)
    e.GET("/v1/auth/session", h.Auth.Session)
    e.POST("/v1/auth/logout", h.CheckIn.Logout)
    e.GET("/v1/links/check", h.Auth.ExpiredLink)

    // Public polls: everyone-audience alerts and traffic levels.
    cached := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
    e.GET("/v1/alerts", h.Alerts.List, cached)
    e.GET("/v1/traffic", h.Traffic.List, cached)

    // Admin surface.
    admin := e.Group("/v1/admin")
    admin.Use(middleware.JWTAuth(cfg.JWTSecret))
    admin.Use(middleware.RequireRole(model.RoleAdmin))
    admin.GET("/dashboard/stats", h.Dashboard.Stats, cached)
    admin.GET("/schedule", h.Schedule.List, cached)
    admin.GET("/reports/daily", h.Reports.Daily)
    admin.GET("/alerts", h.Alerts.ListAll)
    admin.POST("/alerts", h.Alerts.Create)
    admin.DELETE("/alerts/:id", h.Alerts.Delete)
    admin.POST("/traffic", h.Traffic.Set)
    admin.POST("/reassign", h.Task.Reassign)

    // Team lead surface. Admins may act on any lead's behalf.
    lead := e.Group("/v1/teamlead")
    lead.Use(middleware.JWTAuth(cfg.JWTSecret))
    lead.Use(middleware.RequireRole(model.RoleTeamLead, model.RoleAdmin))
    lead.GET("/overview", h.TeamLead.Overview, cached)
    lead.POST("/reassign", h.Task.Reassign)

    // Authenticated identity echo, any role.
    me := e.Group("/v1")
    me.Use(middleware.JWTAuth(cfg.JWTSecret))
    me.GET("/me", h.Auth.Me)
}
