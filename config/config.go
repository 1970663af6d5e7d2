// Package config loads and validates application configuration from
// environment variables. Loading collects every problem it finds and reports
// them together instead of failing on the first, so a misconfigured deploy
// surfaces all of its mistakes at once.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// PoolConfig configures the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds everything the authentication pipeline needs: the HMAC
// signing secret (loaded once, immutable afterwards) and the token lifetime.
type AuthConfig struct {
	HMACSecret    string
	TokenLifetime time.Duration
}

// HashingConfig bounds the password-hashing worker pool.
type HashingConfig struct {
	Workers    int
	QueueDepth int
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// AppConfig is the top-level configuration structure.
type AppConfig struct {
	DB      *PoolConfig
	Auth    *AuthConfig
	Hashing *HashingConfig
	Server  *ServerConfig
}

// getRequiredEnv fetches a required variable, collecting an error when absent.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv fetches an optional variable with a default.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt fetches an optional integer variable; a malformed value is
// collected as an error and the default used.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvDuration fetches an optional duration variable ("15m", "336h").
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// clampPoolSize keeps the connection pool within sane bounds.
func clampPoolSize(size int, varName string, errors *[]string) int {
	if size < 5 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is less than minimum 5, clamping to 5", varName, size))
		return 5
	}
	if size > 100 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		return 100
	}
	return size
}

// LoadConfig reads and validates every setting, returning a single aggregated
// error when anything is missing or malformed.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// Database
	dbUser := getRequiredEnv("DB_USER", &errors)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errors)
	dbName := getRequiredEnv("DB_NAME", &errors)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errors)
	poolSize := clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 100, &errors), "DB_POOL_SIZE", &errors)

	dbConfig := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	// Auth
	hmacSecret := getRequiredEnv("HMAC_SECRET", &errors)
	tokenLifetime := getOptionalEnvDuration("TOKEN_LIFETIME", 336*time.Hour, &errors) // 2 weeks

	authConfig := &AuthConfig{
		HMACSecret:    hmacSecret,
		TokenLifetime: tokenLifetime,
	}

	// Password hashing pool
	hashingConfig := &HashingConfig{
		Workers:    getOptionalEnvInt("HASH_WORKERS", 4, &errors),
		QueueDepth: getOptionalEnvInt("HASH_QUEUE_DEPTH", 64, &errors),
	}

	// Server
	serverConfig := &ServerConfig{
		Port: getOptionalEnv("PORT", "8080"),
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		DB:      dbConfig,
		Auth:    authConfig,
		Hashing: hashingConfig,
		Server:  serverConfig,
	}, nil
}
