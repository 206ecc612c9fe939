package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	LogFormat         string
	DefaultWorld      string
	StatsTimezone     string
	RegistryFile      string
	CORSAllowOrigins  []string
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	MaxDumpBytes      int64
	DumpSourceURL     string
	FetchSchedule     string
	UploadRetention   int
	PruneSchedule     string
	WorkerCount       int
	QueueSize         int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:killstats.db"),
		LogLevel:          strings.ToUpper(envOr("LOG_LEVEL", "INFO")),
		LogFormat:         strings.ToLower(envOr("LOG_FORMAT", "text")),
		DefaultWorld:      envOr("DEFAULT_WORLD", "Lunarian"),
		StatsTimezone:     envOr("STATS_TIMEZONE", "UTC"),
		RegistryFile:      os.Getenv("REGISTRY_FILE"),
		CORSAllowOrigins:  envListOr("CORS_ALLOW_ORIGINS", []string{"*"}),
		RateLimitEnabled:  envBoolOr("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envIntOr("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindow:   envDurationOr("RATE_LIMIT_WINDOW", time.Minute),
		MaxDumpBytes:      int64(envIntOr("MAX_DUMP_BYTES", 10<<20)),
		DumpSourceURL:     os.Getenv("DUMP_SOURCE_URL"),
		FetchSchedule:     envOr("FETCH_SCHEDULE", "@every 1h"),
		UploadRetention:   envIntOr("UPLOAD_RETENTION", 0),
		PruneSchedule:     envOr("PRUNE_SCHEDULE", "@daily"),
		WorkerCount:       envIntOr("WORKER_COUNT", 1),
		QueueSize:         envIntOr("QUEUE_SIZE", 16),
	}
}

// Location returns the time zone used to decide which day is "today".
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.StatsTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Validate reports every invalid setting in a single error.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("LOG_FORMAT must be text or json (got %q)", c.LogFormat))
	}
	if strings.TrimSpace(c.DefaultWorld) == "" {
		problems = append(problems, "DEFAULT_WORLD cannot be empty")
	}
	if _, err := time.LoadLocation(c.StatsTimezone); err != nil {
		problems = append(problems, fmt.Sprintf("STATS_TIMEZONE is not a known time zone: %v", err))
	}
	if c.RegistryFile != "" {
		if _, err := os.Stat(c.RegistryFile); err != nil {
			problems = append(problems, fmt.Sprintf("REGISTRY_FILE not readable: %v", err))
		}
	}
	if c.RateLimitEnabled {
		if c.RateLimitRequests <= 0 {
			problems = append(problems, "RATE_LIMIT_REQUESTS must be positive")
		}
		if c.RateLimitWindow <= 0 {
			problems = append(problems, "RATE_LIMIT_WINDOW must be positive")
		}
	}
	if c.MaxDumpBytes <= 0 {
		problems = append(problems, "MAX_DUMP_BYTES must be positive")
	}
	if c.DumpSourceURL != "" {
		if !strings.HasPrefix(c.DumpSourceURL, "http://") && !strings.HasPrefix(c.DumpSourceURL, "https://") {
			problems = append(problems, "DUMP_SOURCE_URL must be an http(s) URL")
		}
		if err := validSchedule(c.FetchSchedule); err != nil {
			problems = append(problems, fmt.Sprintf("FETCH_SCHEDULE is invalid: %v", err))
		}
	}
	if c.UploadRetention < 0 {
		problems = append(problems, "UPLOAD_RETENTION cannot be negative")
	}
	if c.UploadRetention > 0 {
		if err := validSchedule(c.PruneSchedule); err != nil {
			problems = append(problems, fmt.Sprintf("PRUNE_SCHEDULE is invalid: %v", err))
		}
	}
	if c.WorkerCount <= 0 {
		problems = append(problems, "WORKER_COUNT must be positive")
	}
	if c.QueueSize <= 0 {
		problems = append(problems, "QUEUE_SIZE must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func validSchedule(spec string) error {
	if strings.TrimSpace(spec) == "" {
		return fmt.Errorf("empty schedule")
	}
	_, err := cron.ParseStandard(spec)
	return err
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}

func envListOr(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
