package main // Entry point package

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/renderatl/volunteer-checkin/internal/config"
    "github.com/renderatl/volunteer-checkin/internal/database"
    "github.com/renderatl/volunteer-checkin/internal/handler"
    "github.com/renderatl/volunteer-checkin/internal/notify"
    "github.com/renderatl/volunteer-checkin/internal/queue"
    "github.com/renderatl/volunteer-checkin/internal/repository"
    "github.com/renderatl/volunteer-checkin/internal/router"
    queue_publisher "github.com/renderatl/volunteer-checkin/internal/service"
    "github.com/renderatl/volunteer-checkin/internal/session"
    "github.com/renderatl/volunteer-checkin/internal/workflow"
)

func main() {
    // .env is optional; production injects real environment variables.
    _ = godotenv.Load()

    cfg := config.Load()

    logger, err := zap.NewProduction()
    if cfg.Env == "dev" {
        logger, err = zap.NewDevelopment()
    }
    if err != nil {
        log.Fatalf("logger init: %v", err)
    }
    defer func() { _ = logger.Sync() }()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        logger.Fatal("database open failed", zap.Error(err))
    }
    defer func() { _ = db.Close() }()

    // Redis powers the device session cache, the response cache and the
    // rate limiter. A nil client degrades all three gracefully.
    rdb := config.NewRedisClient()
    if rdb == nil {
        logger.Warn("redis unavailable; sessions, caching and rate limiting degraded")
    }

    // Background consumer appends recorded check-ins to the audit log.
    go func() {
        if err := queue.StartCheckInConsumer(); err != nil {
            logger.Warn("check-in consumer stopped", zap.Error(err))
        }
    }()

    volunteers := repository.NewVolunteerRepo(db)
    checkins := repository.NewCheckInRepo(db)
    tasks := repository.NewTaskRepo(db)
    schedules := repository.NewScheduleRepo(db)
    alerts := repository.NewAlertRepo(db)
    traffic := repository.NewTrafficRepo(db)
    recovery := repository.NewRecoveryRepo(db)

    sessions := session.NewStore(rdb, cfg.SessionTTL)
    notifier := notify.New(cfg.WebhookURL, logger)

    wf := workflow.New(cfg, logger, volunteers, checkins, tasks, recovery,
        alerts, sessions, queue_publisher.New())

    h := router.Handlers{
        CheckIn:   handler.NewCheckInHandler(wf),
        Task:      handler.NewTaskHandler(wf),
        Recovery:  handler.NewRecoveryHandler(wf),
        Auth:      handler.NewAuthHandler(cfg, sessions),
        Dashboard: handler.NewDashboardHandler(checkins, tasks, schedules, traffic),
        TeamLead:  handler.NewTeamLeadHandler(tasks, schedules, alerts),
        Alerts:    handler.NewAlertHandler(alerts, notifier),
        Traffic:   handler.NewTrafficHandler(traffic),
        Schedule:  handler.NewScheduleHandler(schedules),
        Reports:   handler.NewReportsHandler(checkins, tasks, schedules),
    }

    e := echo.New()
    e.HideBanner = true
    router.Register(e, cfg, h, rdb)

    addr := ":" + cfg.Port
    logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
    if err := e.Start(addr); err != nil {
        logger.Fatal("server stopped", zap.Error(err))
    }
}
