package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	APIBaseURL        string
	APITimeout        time.Duration
	PageStore         string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	PageSessionTTL    time.Duration
	CookieSecure      bool
	EventRatePerSec   float64
	EventBurst        int
	AnalyzeRatePerMin float64
	DisplayZone       *time.Location
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	apiBase := strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:5000"), "/")
	if env == "production" && os.Getenv("API_BASE_URL") == "" {
		log.Printf("API_BASE_URL is required in production")
	}

	return Config{
		Port:              getEnv("PORT", "8080"),
		Env:               env,
		APIBaseURL:        apiBase,
		APITimeout:        getDuration("API_TIMEOUT", 30*time.Second),
		PageStore:         normalizeStoreType(getEnv("PAGE_STORE", "memory")),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getInt("REDIS_DB", 0),
		PageSessionTTL:    getDuration("PAGE_SESSION_TTL", 2*time.Hour),
		CookieSecure:      getBool("COOKIE_SECURE", env == "production"),
		EventRatePerSec:   getFloat("RATE_LIMIT_EVENTS_PER_SEC", 5),
		EventBurst:        getInt("RATE_LIMIT_BURST", 20),
		AnalyzeRatePerMin: getFloat("ANALYZE_RATE_PER_MIN", 6),
		DisplayZone:       getLocation("DISPLAY_TZ", time.UTC),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getLocation(key string, def *time.Location) *time.Location {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	loc, err := time.LoadLocation(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, raw, def)
		return def
	}
	return loc
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("invalid %s=%q, using %s", key, raw, def)
		return def
	}
	return d
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return n
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %v", key, raw, def)
		return def
	}
	return f
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "redis":
		return "redis"
	default:
		return "memory"
	}
}
