package config

import (
	"os"
	"time"
)

type Config struct {
	// Server
	Port        string
	CORSOrigins string

	// Storage: "postgres" or "file"
	StorageDriver string
	DataDir       string

	// Database (postgres driver)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Auth
	JWTSecret string
	JWTExpiry time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "9000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		StorageDriver: getEnv("STORAGE_DRIVER", "postgres"),
		DataDir:       getEnv("DATA_DIR", "data"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "sentreats"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "24h")),
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

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
