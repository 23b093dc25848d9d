package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Optional read replica DSN; removal verification polls it.
	DBReadDSN string

	// JWT issued by the community site's auth service
	JWTSecret string

	// Comma-separated user IDs always treated as super_admin
	AdminUserIDs string

	// Moderation
	VerifyInterval time.Duration
	VerifyAttempts int
	PolicyPath     string

	// Logging
	LogRetention time.Duration

	// Server
	Port        string
	CORSOrigins string

	// Error tracking
	SentryDSN string
	AppEnv    string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "community"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		DBReadDSN: getEnv("DB_READ_DSN", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),

		AdminUserIDs: getEnv("ADMIN_USER_IDS", ""),

		VerifyInterval: parseDuration(getEnv("VERIFY_INTERVAL", "1s"), time.Second),
		VerifyAttempts: parseInt(getEnv("VERIFY_ATTEMPTS", "5"), 5),
		PolicyPath:     getEnv("MODERATION_POLICY_PATH", ""),

		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 30*24*time.Hour),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		SentryDSN: getEnv("SENTRY_DSN", ""),
		AppEnv:    getEnv("APP_ENV", "development"),
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

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
