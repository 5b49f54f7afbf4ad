package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	devSessionSecret = "a-very-secret-key"
	devCSRFKey       = "0123456789abcdef0123456789abcdef"
)

type Config struct {
	Name string
	Port string
	Env  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionSecret  string
	SessionMaxAge  int
	CSRFKey        string
	TrustedOrigins []string
}

// Load reads the environment. A .env file in the working directory is
// applied first when present; real environment variables win over it.
func Load() *Config {
	_ = godotenv.Load()

	env := getEnv("APP_ENV", getEnv("NODE_ENV", "development"))

	return &Config{
		Name: getEnv("NAME", "Student"),
		Port: getEnv("PORT", "8080"),
		Env:  env,

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "1234"),
		DBName:     getEnv("DB_NAME", "unicatalog"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		SessionSecret:  getEnv("SESSION_SECRET", devSessionSecret),
		SessionMaxAge:  getEnvInt("SESSION_MAX_AGE", 86400),
		CSRFKey:        getEnv("CSRF_KEY", devCSRFKey),
		TrustedOrigins: splitList(getEnv("TRUSTED_ORIGINS", "")),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Validate rejects configurations that cannot run. In production the
// built-in development secrets are refused.
func (c *Config) Validate() error {
	if len(c.CSRFKey) != 32 {
		return errors.New("CSRF_KEY must be exactly 32 bytes")
	}
	if c.SessionMaxAge <= 0 {
		return errors.New("SESSION_MAX_AGE must be positive")
	}
	if c.IsProduction() {
		if c.SessionSecret == devSessionSecret {
			return errors.New("SESSION_SECRET must be set in production")
		}
		if c.CSRFKey == devCSRFKey {
			return errors.New("CSRF_KEY must be set in production")
		}
	}
	return nil
}
