package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Backend
	BackendDriver  string // postgres or memory
	DemoAdminEmail string // admin seeded in memory mode

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Session tokens issued by the backend's auth service
	JWTSecret     string
	SessionCookie string

	// Server
	Port        string
	CORSOrigins string
	AppEnv      string
	SentryDSN   string

	// Dashboard
	LabelsPath          string
	MapCenterLat        float64
	MapCenterLng        float64
	MapZoom             int
	StatusWorkflow      string
	CounterSyncInterval time.Duration

	// Object storage for report images
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIORegion    string
	MinIOUseSSL    bool
	ImageURLTTL    time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		slog.Info(".env file loaded")
	}

	return &Config{
		BackendDriver:  strings.ToLower(getEnv("BACKEND_DRIVER", "postgres")),
		DemoAdminEmail: getEnv("DEMO_ADMIN_EMAIL", "admin@example.com"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "postgres"),
		DBSSLMode:  getEnv("DB_SSLMODE", "require"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		SessionCookie: getEnv("SESSION_COOKIE", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		AppEnv:      getEnv("APP_ENV", "development"),
		SentryDSN:   getEnv("SENTRY_DSN", ""),

		LabelsPath:          getEnv("LABELS_PATH", ""),
		MapCenterLat:        parseFloat(getEnv("MAP_CENTER_LAT", "55.751244"), 55.751244),
		MapCenterLng:        parseFloat(getEnv("MAP_CENTER_LNG", "37.618423"), 37.618423),
		MapZoom:             parseInt(getEnv("MAP_ZOOM", "10"), 10),
		StatusWorkflow:      getEnv("STATUS_WORKFLOW", "open"),
		CounterSyncInterval: parseDuration(getEnv("COUNTER_SYNC_INTERVAL", "15m"), 15*time.Minute),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:    getEnv("MINIO_BUCKET", "trash-images"),
		MinIORegion:    getEnv("MINIO_REGION", "us-east-1"),
		MinIOUseSSL:    parseBool(getEnv("MINIO_USE_SSL", "true"), true),
		ImageURLTTL:    parseDuration(getEnv("IMAGE_URL_TTL", "1h"), time.Hour),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// UsesMemoryBackend reports whether the in-process demo backend is selected.
func (c *Config) UsesMemoryBackend() bool {
	return c.BackendDriver == "memory"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseFloat(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseBool(s string, fallback bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return b
}
