package config

import (
	"fmt"
	"os"
	"strconv"
)

// Database holds PostgreSQL connection settings
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the postgres connection string for gorm
func (d Database) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// Log holds logger settings
type Log struct {
	Level string
	JSON  bool
	File  string // empty disables file output
}

// Config is the full application configuration, read from the environment
// (a configs/.env file is loaded first when present).
type Config struct {
	Port      string
	PageLimit int
	JWTSecret string
	Database  Database
	Log       Log
}

// Load reads configuration from environment variables, applying development
// defaults for anything unset.
func Load() *Config {
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		PageLimit: getEnvInt("PAGE_LIMIT", 10),
		JWTSecret: getEnv("JWT_SECRET", ""),
		Database: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "workhive"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Log: Log{
			Level: getEnv("LOG_LEVEL", "info"),
			JSON:  getEnv("LOG_JSON", "") == "true",
			File:  getEnv("LOG_FILE", ""),
		},
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
