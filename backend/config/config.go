package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	AppEnv     string `validate:"oneof=development production test"`
	ServerPort string `validate:"required,numeric"`

	DBDriver   string `validate:"oneof=postgres sqlite"`
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string `validate:"oneof=disable require verify-full"`
	SQLitePath string

	JWTSecret  string `validate:"required"`
	BcryptCost int    `validate:"min=4,max=31"`

	SessionCookieName string        `validate:"required"`
	SessionTTL        time.Duration `validate:"gt=0"`
	SessionSecure     bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int `validate:"min=0"`

	AdminEmails    []string
	CORSOrigins    string        `validate:"required"`
	RequestTimeout time.Duration `validate:"gt=0"`
	AutoSeed       bool

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

// defaultJWTSecret only suits local development.
const defaultJWTSecret = "secret"

func LoadConfig() (*Config, error) {
	loaded := godotenv.Load() == nil

	cfg := &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "signlearn"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "data/app.db"),

		JWTSecret:  getEnv("JWT_SECRET", defaultJWTSecret),
		BcryptCost: getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),

		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "signlearn_sid"),
		SessionTTL:        getEnvDuration("SESSION_TTL", 24*time.Hour),
		SessionSecure:     getEnvBool("SESSION_SECURE", false),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		AdminEmails:    splitList(getEnv("ADMIN_EMAILS", "")),
		CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		AutoSeed:       getEnvBool("AUTO_SEED", false),

		EnvFileLoaded: loaded,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.AppEnv == "production" && (c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret) {
		return errors.New("invalid configuration: JWT_SECRET must be set in production")
	}
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s (%s=%s)", fe.Field(), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// IsAdminEmail reports whether accounts registered with email get the admin role.
func (c *Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range c.AdminEmails {
		if e == email {
			return true
		}
	}
	return false
}

// PostgresDSN builds the connection string used by the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
