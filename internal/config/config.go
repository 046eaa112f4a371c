package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "time"    // time parses the duration-valued settings
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Durations that tune the check-in workflow
// (link lifetime, minimum wait before task check-in) default to the
// values the production deployment settled on and can be overridden per
// environment.
type Config struct {
    Env         string        // application environment (e.g. "dev", "prod")
    Port        string        // HTTP port to listen on
    DBUser      string        // database username
    DBPass      string        // database password (optional)
    DBHost      string        // database host address
    DBPort      string        // database port number
    DBName      string        // database name
    JWTSecret   string        // secret used to sign session tokens
    TokenTTLMin int           // session token time-to-live in minutes
    BaseURL     string        // public origin used when building QR links
    LinkTTL     time.Duration // how long a generated team-lead link stays valid
    MinTaskWait time.Duration // minimum age of a staff check-in before task check-in
    MaxRecovery int           // lifetime cap on QR link regenerations per name
    WebhookURL  string        // outbound alert webhook (empty disables posting)
    SessionTTL  time.Duration // lifetime of a cached device session entry
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Workflow tunables
// fall back to defaults so a bare development environment still boots.
func Load() Config {
    return Config{
        Env:         must("APP_ENV"),          // environment (dev/test/prod)
        Port:        must("APP_PORT"),         // port to bind the HTTP server
        DBUser:      must("DB_USER"),          // database user
        DBPass:      os.Getenv("DB_PASS"),     // database password (empty allowed)
        DBHost:      must("DB_HOST"),          // database host
        DBPort:      must("DB_PORT"),          // database port
        DBName:      must("DB_NAME"),          // database name
        JWTSecret:   must("JWT_SECRET"),       // secret used for signing tokens
        TokenTTLMin: mustInt("TOKEN_TTL_MIN"), // TTL for session tokens in minutes
        BaseURL:     envStr("BASE_URL", "http://localhost:5173"),
        LinkTTL:     envDur("QR_LINK_TTL", 30*time.Second),
        MinTaskWait: envDur("TASK_MIN_WAIT", time.Minute),
        MaxRecovery: envInt("QR_MAX_RECOVERY", 5),
        WebhookURL:  os.Getenv("ALERT_WEBHOOK_URL"),
        SessionTTL:  envDur("SESSION_TTL", 12*time.Hour),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
